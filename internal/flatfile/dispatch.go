// =============================================================================
// X3 Flat Bridge - Type Dispatcher
// =============================================================================
//
// This file contains the dispatch scaffolding shared by the three decoders.
// Decoding is a left fold over the record sequence: each record's tag selects
// a transition function that takes the accumulator and the record and returns
// the next accumulator. The accumulator shape and the transition table are
// the only things that differ between the login, order-document, and
// material-catalog decoders.
//
// ERROR POLICY:
//   Transitions never fail. A record with an unknown tag leaves the
//   accumulator unchanged and is counted as an anomaly; a detail record with
//   no open parent is counted as dropped. Callers always receive a complete,
//   best-effort result plus the anomaly tally.
//
// =============================================================================

package flatfile

import (
	"go.uber.org/zap"
)

// =============================================================================
// ANOMALIES
// =============================================================================

// Anomalies tallies the non-fatal oddities observed during one decode call.
// A fresh value is allocated per call, so decoders stay safe for concurrent
// use.
type Anomalies struct {
	// UnknownTags counts records per unrecognized tag.
	UnknownTags map[string]int

	// DroppedOrphans counts detail records (L, S, P) that arrived with no
	// open parent entity, per tag.
	DroppedOrphans map[string]int
}

func newAnomalies() *Anomalies {
	return &Anomalies{
		UnknownTags:    make(map[string]int),
		DroppedOrphans: make(map[string]int),
	}
}

// Total returns the total number of anomalies recorded.
func (a *Anomalies) Total() int {
	n := 0
	for _, c := range a.UnknownTags {
		n += c
	}
	for _, c := range a.DroppedOrphans {
		n += c
	}
	return n
}

func (a *Anomalies) unknownTag(tag string) {
	a.UnknownTags[tag]++
}

func (a *Anomalies) droppedOrphan(tag string) {
	a.DroppedOrphans[tag]++
}

// =============================================================================
// DECODER
// =============================================================================

// Decoder decodes flat export blocks into typed entity collections. The zero
// value is not usable; use NewDecoder. A single Decoder may be shared across
// goroutines: it holds only the logger, and every decode call allocates its
// own accumulator.
type Decoder struct {
	log *zap.SugaredLogger
}

// NewDecoder returns a Decoder logging through the given logger. A nil
// logger silences diagnostics.
func NewDecoder(log *zap.SugaredLogger) *Decoder {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Decoder{log: log}
}

// =============================================================================
// FOLD
// =============================================================================

// transition advances an accumulator by one record.
type transition[S any] func(S, Record) S

// fold runs the dispatch loop: for each record, the tag selects a transition
// from the table; unknown tags are counted and logged without touching the
// accumulator. The final accumulator is returned for the decoder to convert
// into its public result (including any end-of-stream flush).
func fold[S any](d *Decoder, records []Record, acc S, transitions map[string]transition[S], anomalies *Anomalies) S {
	for _, record := range records {
		t, ok := transitions[record.Tag()]
		if !ok {
			anomalies.unknownTag(record.Tag())
			d.log.Warnw("skipping record with unknown tag",
				"tag", record.Tag(),
				"fields", record.Len(),
			)
			continue
		}
		acc = t(acc, record)
	}
	return acc
}
