package soap

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/X3-flat-bridge/internal/config"
)

func testClient(url string) *Client {
	return NewClient(config.EndpointConfig{
		URL:              url,
		PoolAlias:        "ZBPI",
		Language:         "FRA",
		ExportPublicName: "AOWSEXPORT",
		ImportPublicName: "AOWSIMPORT",
		TimeoutSeconds:   5,
	}, nil)
}

func TestExportCallShape(t *testing.T) {
	var captured struct {
		contentType string
		soapAction  string
		body        string
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.contentType = r.Header.Get("Content-Type")
		captured.soapAction = r.Header.Get("SOAPAction")

		username, password, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "admin", username)
		assert.Equal(t, "secret", password)

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		captured.body = string(raw)

		w.Write(exportResponse(`{"GRP3":{"O_FILE":"I;FAM1;ITM001|"}}`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	creds := Credentials{Username: "admin", Password: "secret"}

	flat, err := client.Export(context.Background(), creds, "ZARTICLE", []string{QuoteCriterion("ZSITE", "FR011")})

	require.NoError(t, err)
	assert.Equal(t, "I;FAM1;ITM001|", flat)
	assert.Equal(t, "text/xml; charset=utf-8", captured.contentType)
	assert.Equal(t, "run", captured.soapAction)
	assert.Contains(t, captured.body, "<publicName xsi:type=\"xsd:string\">AOWSEXPORT</publicName>")
	assert.Contains(t, captured.body, "<poolAlias xsi:type=\"xsd:string\">ZBPI</poolAlias>")
	assert.Contains(t, captured.body, "I_MODEXP")
	assert.Contains(t, captured.body, "ZARTICLE")
	assert.Contains(t, captured.body, "ZSITE=&apos;FR011&apos;")
}

func TestImportOrderCarriesFlatFile(t *testing.T) {
	var body string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		body = string(raw)
		w.Write([]byte("accepted"))
	}))
	defer server.Close()

	client := testClient(server.URL)
	flatFile := "E;FR011;SOI;;CUS1;20240101;;FR011;EUR;;;;;|L;A1;;UN;3;9.99;0;0;0;|END"

	resp, err := client.ImportOrder(context.Background(), Credentials{}, "ZSOH", flatFile)

	require.NoError(t, err)
	assert.Equal(t, "accepted", resp)
	assert.Contains(t, body, "<publicName xsi:type=\"xsd:string\">AOWSIMPORT</publicName>")
	assert.Contains(t, body, "<![CDATA[")
	// The flat file's delimiters must survive JSON encoding untouched.
	assert.Contains(t, body, `E;FR011;SOI;;CUS1;20240101;;FR011;EUR;;;;;|L;A1;;UN;3;9.99;0;0;0;|END`)
	assert.Contains(t, body, "I_MODIMP")
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrAuthFailed},
		{"forbidden", http.StatusForbidden, ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			_, err := testClient(server.URL).Export(context.Background(), Credentials{}, "ZCLIENT", nil)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := testClient(server.URL).Export(context.Background(), Credentials{}, "ZCLIENT", nil)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAuthFailed)
	assert.NotErrorIs(t, err, ErrAccessDenied)
}

func TestExportLoginCriteria(t *testing.T) {
	var body string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		body = string(raw)
		w.Write(exportResponse(`{"GRP3":{"O_FILE":"B;FR;CUS1|"}}`))
	}))
	defer server.Close()

	flat, err := testClient(server.URL).ExportLogin(context.Background(), Credentials{}, "ZCLIENT", "john", "o'brien")

	require.NoError(t, err)
	assert.Equal(t, "B;FR;CUS1|", flat)
	assert.Contains(t, body, "ZUSER=&apos;john&apos;")
	// Embedded quotes double so the value stays inside the literal.
	assert.Contains(t, body, "ZPWD=&apos;o&apos;&apos;brien&apos;")
}

func TestQuoteCriterion(t *testing.T) {
	assert.Equal(t, "ZUSER='john'", QuoteCriterion("ZUSER", "john"))
	assert.Equal(t, "ZPWD='o''brien'", QuoteCriterion("ZPWD", "o'brien"))
}

func TestWrapCDATA(t *testing.T) {
	assert.Equal(t, "<![CDATA[plain]]>", wrapCDATA("plain"))
	// An embedded terminator closes the section and reopens a new one.
	assert.Equal(t, "<![CDATA[before]]]]><![CDATA[>after]]>", wrapCDATA("before]]>after"))
}
