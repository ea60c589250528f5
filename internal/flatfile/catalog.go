// =============================================================================
// X3 Flat Bridge - Material-Catalog Decoder
// =============================================================================
//
// Decodes the material export: I records open a catalog entry, S records set
// its sales price, P records attach per-plant stock.
//
// RECORD LAYOUTS (field 0 is the tag):
//   I: 1 family, 2 itemCode, 3 description, 4-5 (unused), 6 baseUoM,
//      7 salesUoM, 8 weightPerUoM, 9 purchaseUoM, 10 purchaseConversion,
//      11-13 (unused), 14 minStockLevel, 15 (unused), 16 category, 17 status
//   S: 1-3 (unused), 4 price
//   P: 1 plant, 2 location, 3 stockStatus, 4 onHandQty, 5 uom,
//      6 uomConversion
//
// The item description arrives suffixed with a language marker the export
// keeps for its own localization ("Widget~~FRA"); the marker is stripped.
//
// NUMERIC POLICY:
//   I and P numeric fields default to zero on parse failure. The S price is
//   different: it is written only when the parse succeeds, leaving any prior
//   value untouched otherwise.
//
// =============================================================================

package flatfile

import (
	"regexp"

	"github.com/ginjaninja78/X3-flat-bridge/internal/types"
)

// languageMarker matches the embedded localization marker the export leaves
// in item descriptions: the "~~" prefix followed by a three-letter language
// code (e.g. "~~FRA", "~~ENG").
var languageMarker = regexp.MustCompile(`~~[A-Z]{3}`)

// catalogState is the accumulator threaded through the catalog fold.
type catalogState struct {
	entries []types.Material
	current *types.Material
}

// DecodeMaterials decodes a material export block into catalog entries in
// stream order. It never fails; the anomaly tally covers unknown tags and
// orphan S/P records.
func (d *Decoder) DecodeMaterials(raw string) ([]types.Material, *Anomalies) {
	records := Tokenize(raw)
	anomalies := newAnomalies()

	transitions := map[string]transition[catalogState]{
		"I": openMaterialRecord,
		"S": func(s catalogState, r Record) catalogState {
			return salesPriceRecord(s, r, anomalies)
		},
		"P": func(s catalogState, r Record) catalogState {
			return partyStockRecord(s, r, anomalies)
		},
	}

	state := fold(d, records, catalogState{}, transitions, anomalies)

	// Same end-of-stream flush as the order decoder.
	if state.current != nil {
		state.entries = append(state.entries, *state.current)
	}

	d.log.Debugw("decoded material export",
		"records", len(records),
		"entries", len(state.entries),
		"anomalies", anomalies.Total(),
	)

	return state.entries, anomalies
}

// openMaterialRecord handles an I record: close-then-open.
func openMaterialRecord(s catalogState, r Record) catalogState {
	if s.current != nil {
		s.entries = append(s.entries, *s.current)
	}

	s.current = &types.Material{
		Family:             r.Field(1),
		ItemCode:           r.Field(2),
		Description:        languageMarker.ReplaceAllString(r.Field(3), ""),
		BaseUoM:            r.Field(6),
		SalesUoM:           r.Field(7),
		WeightPerUoM:       r.FloatOr(8, 0),
		PurchaseUoM:        r.Field(9),
		PurchaseConversion: r.FloatOr(10, 0),
		MinStockLevel:      r.FloatOr(14, 0),
		Category:           r.Field(16),
		Status:             r.Field(17),
	}
	return s
}

// salesPriceRecord handles an S record. The price is set only when the
// field parses; a malformed price leaves the entry's previous value (usually
// nil) unchanged rather than writing NaN.
func salesPriceRecord(s catalogState, r Record, anomalies *Anomalies) catalogState {
	if s.current == nil {
		anomalies.droppedOrphan("S")
		return s
	}

	if price, ok := r.Float(4); ok {
		s.current.SalesPrice = &price
	}
	return s
}

// partyStockRecord handles a P record: append to the open entry, or drop
// the record when no entry is open.
func partyStockRecord(s catalogState, r Record, anomalies *Anomalies) catalogState {
	if s.current == nil {
		anomalies.droppedOrphan("P")
		return s
	}

	s.current.Parties = append(s.current.Parties, types.PartyStock{
		Plant:         r.Field(1),
		Location:      r.Field(2),
		StockStatus:   r.Field(3),
		OnHandQty:     r.FloatOr(4, 0),
		UoM:           r.Field(5),
		UoMConversion: r.FloatOr(6, 0),
	})
	return s
}
