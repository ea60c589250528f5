// =============================================================================
// X3 Flat Bridge - SOAP Client
// =============================================================================
//
// One HTTP POST per call against the backend's generic web service, with
// basic authentication and the SOAPAction header the service requires. The
// client owns no session state: each call is independent, authenticated, and
// bounded by the configured timeout (or the caller's context, whichever ends
// first).
//
// ERROR MAPPING:
//   401 -> ErrAuthFailed      (wrong username/password)
//   403 -> ErrAccessDenied    (user lacks rights on the public name)
//   other non-2xx -> plain error with the status
//
// =============================================================================

package soap

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ginjaninja78/X3-flat-bridge/internal/config"
)

// ErrAuthFailed reports rejected credentials.
var ErrAuthFailed = errors.New("authentication failed - please check your username and password")

// ErrAccessDenied reports missing permission on the called service.
var ErrAccessDenied = errors.New("access denied - you don't have permission to access this resource")

// Credentials carry the basic-auth identity for one call.
type Credentials struct {
	Username string
	Password string
}

// Client calls the ERP web service. It is safe for concurrent use.
type Client struct {
	url        string
	language   string
	poolAlias  string
	poolID     string
	exportName string
	importName string

	httpClient *http.Client
	log        *zap.SugaredLogger
}

// NewClient builds a client from the endpoint configuration. A nil logger
// silences request logging.
func NewClient(cfg config.EndpointConfig, log *zap.SugaredLogger) *Client {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Client{
		url:        cfg.URL,
		language:   cfg.Language,
		poolAlias:  cfg.PoolAlias,
		poolID:     cfg.PoolID,
		exportName: cfg.ExportPublicName,
		importName: cfg.ImportPublicName,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		log:        log,
	}
}

// =============================================================================
// HIGH-LEVEL CALLS
// =============================================================================

// Export runs an export model and returns the flat export text. Criteria
// lines restrict the export (see QuoteCriterion); pass nil for a full
// export.
func (c *Client) Export(ctx context.Context, creds Credentials, module string, criteria []string) (string, error) {
	envelope, err := c.buildExportEnvelope(module, criteria)
	if err != nil {
		return "", err
	}

	body, err := c.call(ctx, creds, envelope)
	if err != nil {
		return "", err
	}

	return ExtractExportFile(body)
}

// ExportLogin runs the login export with the user/password selection
// criteria the profile export is filtered by.
func (c *Client) ExportLogin(ctx context.Context, creds Credentials, module, user, password string) (string, error) {
	criteria := []string{
		QuoteCriterion("ZUSER", user),
		QuoteCriterion("ZPWD", password),
	}
	return c.Export(ctx, creds, module, criteria)
}

// ImportOrder submits a built flat order file to the import model and
// returns the raw response body for the caller to log or display. Import
// responses are not extracted: the backend acknowledges in free form.
func (c *Client) ImportOrder(ctx context.Context, creds Credentials, module, flatFile string) (string, error) {
	envelope, err := c.buildImportEnvelope(module, flatFile)
	if err != nil {
		return "", err
	}

	body, err := c.call(ctx, creds, envelope)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

// call performs one authenticated POST and returns the response body.
func (c *Client) call(ctx context.Context, creds Credentials, envelope string) ([]byte, error) {
	if c.url == "" {
		return nil, fmt.Errorf("endpoint URL is not configured")
	}

	requestID := uuid.New().String()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(envelope))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", "run")
	req.Header.Set("Authorization", basicAuth(creds))

	c.log.Debugw("calling web service",
		"request_id", requestID,
		"url", c.url,
		"bytes", len(envelope),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrAuthFailed
	case resp.StatusCode == http.StatusForbidden:
		return nil, ErrAccessDenied
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("unexpected response status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debugw("web service responded",
		"request_id", requestID,
		"status", resp.StatusCode,
		"bytes", len(body),
	)

	return body, nil
}

// basicAuth renders the Authorization header value.
func basicAuth(creds Credentials) string {
	token := base64.StdEncoding.EncodeToString([]byte(creds.Username + ":" + creds.Password))
	return "Basic " + token
}
