// =============================================================================
// X3 Flat Bridge - Order-Document Decoder
// =============================================================================
//
// Decodes the sales-order export: E records open a document, L records attach
// lines to the currently open one.
//
// RECORD LAYOUTS (field 0 is the tag):
//   E: 1 site, 2 type, 3 number, 4 customer, 5 date, 6 reference,
//      7 (unused), 8 currency
//   L: 1 code, 2 description, 3 unit, 4 quantity, 5 price
//
// GROUPING:
//   An E record closes the document currently being assembled (if any) and
//   opens a new one; end of stream closes the last document. An L record
//   with no open document has nothing to attach to and is dropped.
//
// NUMERIC POLICY:
//   Line quantity and price carry the parse result as-is. Non-numeric
//   upstream data becomes NaN and the line is still appended; this mirrors
//   the backend contract and is intentionally not "corrected" here (the
//   sales-price record in catalog.go has the opposite policy).
//
// =============================================================================

package flatfile

import (
	"github.com/ginjaninja78/X3-flat-bridge/internal/types"
)

// orderState is the accumulator threaded through the order fold.
type orderState struct {
	documents []types.OrderDocument
	current   *types.OrderDocument
}

// DecodeOrderDocuments decodes a sales-order export block into documents in
// stream order. It never fails; the anomaly tally covers unknown tags and
// orphan L records.
func (d *Decoder) DecodeOrderDocuments(raw string) ([]types.OrderDocument, *Anomalies) {
	records := Tokenize(raw)
	anomalies := newAnomalies()

	transitions := map[string]transition[orderState]{
		"E": openDocumentRecord,
		"L": func(s orderState, r Record) orderState {
			return orderLineRecord(s, r, anomalies)
		},
	}

	state := fold(d, records, orderState{}, transitions, anomalies)

	// End of stream closes the last open document. This flush is the one
	// mandatory post-loop step; without it the trailing document would be
	// lost whenever the export has no terminator.
	if state.current != nil {
		state.documents = append(state.documents, *state.current)
	}

	d.log.Debugw("decoded order export",
		"records", len(records),
		"documents", len(state.documents),
		"anomalies", anomalies.Total(),
	)

	return state.documents, anomalies
}

// openDocumentRecord handles an E record: close-then-open.
func openDocumentRecord(s orderState, r Record) orderState {
	if s.current != nil {
		s.documents = append(s.documents, *s.current)
	}

	s.current = &types.OrderDocument{
		Site:      r.Field(1),
		Type:      r.Field(2),
		Number:    r.Field(3),
		Customer:  r.Field(4),
		Date:      r.Field(5),
		Reference: r.Field(6),
		Currency:  r.Field(8),
	}
	return s
}

// orderLineRecord handles an L record: append to the open document, or drop
// the record when no document is open.
func orderLineRecord(s orderState, r Record, anomalies *Anomalies) orderState {
	if s.current == nil {
		anomalies.droppedOrphan("L")
		return s
	}

	s.current.Lines = append(s.current.Lines, types.OrderLine{
		Code:        r.Field(1),
		Description: r.Field(2),
		Unit:        r.Field(3),
		Quantity:    r.FloatOrNaN(4),
		Price:       r.FloatOrNaN(5),
	})
	return s
}
