// =============================================================================
// X3 Flat Bridge - Order Request Validation
// =============================================================================
//
// Validates an order request before it is rendered to the flat interchange
// format and submitted. The flat format itself is total - any request can be
// rendered - so this module is the only gate between a user's request file
// and the backend.
//
// VALIDATION STRATEGY:
//   1. Header-level: required identifiers (site, order type, customer,
//      currency) and the date format.
//   2. Line-level: item code, quantity, and price checks per line.
//
// ERROR HANDLING:
//   - Errors are collected, not thrown immediately
//   - Each error includes the field, offending value, and the line number
//     for line-level checks
//   - Errors can be warnings (continue processing) or fatal (stop processing)
//
// =============================================================================

package validation

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ginjaninja78/X3-flat-bridge/internal/types"
)

// dateLayout is the order date format the backend accepts.
const dateLayout = "20060102"

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError represents a single validation error.
type ValidationError struct {
	// Severity indicates the severity of the error.
	// "error" = fatal, the request must not be submitted
	// "warning" = non-fatal, submission can continue
	Severity string

	// Field is the name of the field that failed validation.
	Field string

	// Value is the actual value that failed validation.
	Value string

	// Rule is the validation rule that was violated.
	Rule string

	// Message is a human-readable error message.
	Message string

	// LineNumber is the 1-based order line the error belongs to.
	// Zero for header-level errors.
	LineNumber int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	location := "Header"
	if e.LineNumber > 0 {
		location = fmt.Sprintf("Line %d", e.LineNumber)
	}
	return fmt.Sprintf("[%s] %s, Field '%s': %s (value: '%s')",
		strings.ToUpper(e.Severity),
		location,
		e.Field,
		e.Message,
		e.Value,
	)
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult contains the results of validation.
type ValidationResult struct {
	// IsValid is true if there are no fatal errors.
	IsValid bool

	// Errors contains all validation errors (including warnings).
	Errors []*ValidationError

	// ErrorCount is the number of fatal errors.
	ErrorCount int

	// WarningCount is the number of warnings.
	WarningCount int

	// LinesValidated is the number of order lines checked.
	LinesValidated int
}

// =============================================================================
// MAIN VALIDATION FUNCTION
// =============================================================================

// Validate checks an order request and returns all violations. This is the
// main entry point for validation.
func Validate(req types.OrderRequest) []*ValidationError {
	return ValidateRequest(req).Errors
}

// ValidateRequest checks an order request and returns a detailed result.
func ValidateRequest(req types.OrderRequest) *ValidationResult {
	result := &ValidationResult{
		IsValid:        true,
		Errors:         make([]*ValidationError, 0),
		LinesValidated: len(req.Lines),
	}

	collect := func(errs ...*ValidationError) {
		for _, err := range errs {
			result.Errors = append(result.Errors, err)
			if err.Severity == "error" {
				result.ErrorCount++
				result.IsValid = false
			} else {
				result.WarningCount++
			}
		}
	}

	collect(validateHeader(req)...)

	if len(req.Lines) == 0 {
		collect(&ValidationError{
			Severity: "error",
			Field:    "lines",
			Rule:     "required",
			Message:  "Order has no lines",
		})
	}

	for i := range req.Lines {
		collect(validateLine(i+1, req.Lines[i])...)
	}

	return result
}

// =============================================================================
// HEADER VALIDATION
// =============================================================================

// validateHeader checks the header identifiers and the order date.
func validateHeader(req types.OrderRequest) []*ValidationError {
	var errors []*ValidationError

	required := []struct {
		field string
		value string
	}{
		{"site", req.Site},
		{"order_type", req.OrderType},
		{"customer", req.Customer},
		{"currency", req.Currency},
	}

	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			errors = append(errors, &ValidationError{
				Severity: "error",
				Field:    f.field,
				Value:    f.value,
				Rule:     "required",
				Message:  fmt.Sprintf("Required field '%s' is empty", f.field),
			})
		}
	}

	if req.Date == "" {
		errors = append(errors, &ValidationError{
			Severity: "error",
			Field:    "date",
			Rule:     "required",
			Message:  "Required field 'date' is empty",
		})
	} else if _, err := time.Parse(dateLayout, req.Date); err != nil {
		errors = append(errors, &ValidationError{
			Severity: "error",
			Field:    "date",
			Value:    req.Date,
			Rule:     "date_format",
			Message:  "Order date must be in YYYYMMDD format",
		})
	}

	if strings.TrimSpace(req.ShipSite) == "" {
		errors = append(errors, &ValidationError{
			Severity: "warning",
			Field:    "ship_site",
			Rule:     "recommended",
			Message:  "No shipping site set; the backend will apply its default",
		})
	}

	return errors
}

// =============================================================================
// LINE VALIDATION
// =============================================================================

// validateLine checks one order line.
func validateLine(lineNumber int, line types.OrderRequestLine) []*ValidationError {
	var errors []*ValidationError

	if strings.TrimSpace(line.ItemCode) == "" {
		errors = append(errors, &ValidationError{
			Severity:   "error",
			Field:      "item_code",
			Value:      line.ItemCode,
			Rule:       "required",
			Message:    "Required field 'item_code' is empty",
			LineNumber: lineNumber,
		})
	}

	switch {
	case math.IsNaN(line.Qty) || math.IsInf(line.Qty, 0):
		errors = append(errors, &ValidationError{
			Severity:   "error",
			Field:      "qty",
			Value:      fmt.Sprintf("%v", line.Qty),
			Rule:       "numeric",
			Message:    "Quantity is not a finite number",
			LineNumber: lineNumber,
		})
	case line.Qty <= 0:
		errors = append(errors, &ValidationError{
			Severity:   "error",
			Field:      "qty",
			Value:      fmt.Sprintf("%v", line.Qty),
			Rule:       "positive",
			Message:    "Quantity must be greater than zero",
			LineNumber: lineNumber,
		})
	}

	if line.Price != nil {
		switch {
		case math.IsNaN(*line.Price) || math.IsInf(*line.Price, 0):
			errors = append(errors, &ValidationError{
				Severity:   "error",
				Field:      "price",
				Value:      fmt.Sprintf("%v", *line.Price),
				Rule:       "numeric",
				Message:    "Price is not a finite number",
				LineNumber: lineNumber,
			})
		case *line.Price < 0:
			errors = append(errors, &ValidationError{
				Severity:   "error",
				Field:      "price",
				Value:      fmt.Sprintf("%v", *line.Price),
				Rule:       "non_negative",
				Message:    "Price cannot be negative",
				LineNumber: lineNumber,
			})
		}
	}

	return errors
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatErrors formats validation errors for display or logging.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Validation completed with %d error(s):\n\n", len(errors)))

	for i, err := range errors {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}

	return builder.String()
}
