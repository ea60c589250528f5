// =============================================================================
// X3 Flat Bridge - Outbound Order Builder
// =============================================================================
//
// Serializes a typed order request into the flat-record text the backend's
// import service expects as its I_FILE payload. This is the inverse of the
// decoders but shares nothing with them: it is a pure function over the
// request and is total, producing a well-formed record stream for any
// well-typed input, including an empty line list.
//
// OUTPUT SHAPE:
//   E;<site>;<orderType>;;<customer>;<date>;;<shipSite>;<currency>;;;;;
//   L;<itemCode>;<designation>;<salesUoM>;<qty>;<price>;0;0;0;
//   ... one L per line ...
//   END
//
// joined by the record separator. The document number field is always empty:
// the backend assigns it. Designation defaults to the empty string, the
// sales unit to "UN", and an absent price to an empty field (the backend
// then applies its own price list).
//
// =============================================================================

package flatfile

import (
	"strconv"
	"strings"

	"github.com/ginjaninja78/X3-flat-bridge/internal/types"
)

// DefaultSalesUnit is emitted for lines that do not name a sales unit.
const DefaultSalesUnit = "UN"

// endRecord terminates every outbound order file.
const endRecord = "END"

// BuildOrderFile serializes an order request into the flat import payload.
func BuildOrderFile(req types.OrderRequest) string {
	var b strings.Builder

	// Header record. The empty field after the order type is the document
	// number slot; the one after the date is the reference slot.
	b.WriteString("E")
	b.WriteString(FieldSeparator)
	b.WriteString(req.Site)
	b.WriteString(FieldSeparator)
	b.WriteString(req.OrderType)
	b.WriteString(FieldSeparator)
	b.WriteString(FieldSeparator)
	b.WriteString(req.Customer)
	b.WriteString(FieldSeparator)
	b.WriteString(req.Date)
	b.WriteString(FieldSeparator)
	b.WriteString(FieldSeparator)
	b.WriteString(req.ShipSite)
	b.WriteString(FieldSeparator)
	b.WriteString(req.Currency)
	b.WriteString(strings.Repeat(FieldSeparator, 5))

	for _, line := range req.Lines {
		b.WriteString(RecordSeparator)
		b.WriteString(buildOrderLine(line))
	}

	b.WriteString(RecordSeparator)
	b.WriteString(endRecord)

	return b.String()
}

// buildOrderLine serializes one L record.
func buildOrderLine(line types.OrderRequestLine) string {
	unit := line.SalesUoM
	if unit == "" {
		unit = DefaultSalesUnit
	}

	price := ""
	if line.Price != nil {
		price = formatAmount(*line.Price)
	}

	parts := []string{
		"L",
		line.ItemCode,
		line.Designation,
		unit,
		formatAmount(line.Qty),
		price,
		"0", "0", "0",
		"", // records end in a field separator; keep the trailing empty field
	}

	return strings.Join(parts, FieldSeparator)
}

// formatAmount renders a numeric field the way the backend parses it: no
// exponent, no trailing zeros ("3", "9.99").
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
