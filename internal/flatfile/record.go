// =============================================================================
// X3 Flat Bridge - Record Tokenizer & Field Splitter
// =============================================================================
//
// This file implements the first two stages of the flat-record codec: cutting
// a raw export block into records on the outer delimiter, and cutting each
// record into fields on the inner delimiter. The first field of every record
// is its type tag.
//
// FORMAT:
//   B;FR;CUS1;...|A;ADR1;Paris;...|C;CNT1;...|
//
//   - Records are separated by "|" (the backend's I_RECORDSEP).
//   - Fields are separated by ";".
//   - Empty or whitespace-only segments between record separators carry no
//     record and are dropped.
//
// TOTALITY:
//   Tokenization never fails. Any string input, including the empty string,
//   produces a (possibly empty) record sequence. Field access beyond a
//   record's length yields the declared per-field default instead of a
//   panic; the default policy (zero, NaN, empty string, unchanged) is
//   chosen by the accessor, not inferred at the call site.
//
// =============================================================================

package flatfile

import (
	"math"
	"strconv"
	"strings"
)

// =============================================================================
// DELIMITERS
// =============================================================================

// RecordSeparator is the outer delimiter between records. It matches the
// I_RECORDSEP value requested from the backend on every export call.
const RecordSeparator = "|"

// FieldSeparator is the inner delimiter between fields of one record.
const FieldSeparator = ";"

// =============================================================================
// RECORD
// =============================================================================

// Record is one flat interchange record: an ordered field list whose first
// field is the type tag. Records are immutable once produced by Tokenize.
type Record struct {
	fields []string
}

// Tag returns the record's type tag (field 0), or the empty string for a
// record with no fields.
func (r Record) Tag() string {
	if len(r.fields) == 0 {
		return ""
	}
	return r.fields[0]
}

// Len returns the number of fields, including the tag.
func (r Record) Len() int {
	return len(r.fields)
}

// Field returns the field at index i, or the empty string when the record
// is too short. Fields are returned exactly as exported, untrimmed.
func (r Record) Field(i int) string {
	if i < 0 || i >= len(r.fields) {
		return ""
	}
	return r.fields[i]
}

// Fields returns a copy of the full field list.
func (r Record) Fields() []string {
	out := make([]string, len(r.fields))
	copy(out, r.fields)
	return out
}

// =============================================================================
// NUMERIC ACCESSORS
// =============================================================================
// Each accessor declares one coercion policy over untrusted upstream data.
// The decoders pick the accessor matching the field's documented behavior
// rather than correcting values locally.

// FloatOr parses field i as a floating-point number, returning def when the
// field is missing or not a number.
func (r Record) FloatOr(i int, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(r.Field(i)), 64)
	if err != nil {
		return def
	}
	return v
}

// FloatOrNaN parses field i as a floating-point number, returning NaN when
// the field is missing or not a number. Order lines use this policy: a
// malformed quantity still produces a line, carrying NaN.
func (r Record) FloatOrNaN(i int) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(r.Field(i)), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Float parses field i as a floating-point number and reports whether the
// parse succeeded. Sales-price records use this policy: on failure the
// previous value is left unchanged.
func (r Record) Float(i int) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(r.Field(i)), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// IntOr parses field i as an integer, returning def when the field is
// missing or not an integer.
func (r Record) IntOr(i int, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(r.Field(i)))
	if err != nil {
		return def
	}
	return v
}

// =============================================================================
// TOKENIZER
// =============================================================================

// Tokenize splits a raw export block into records using the default
// delimiters.
func Tokenize(raw string) []Record {
	return TokenizeWith(raw, RecordSeparator, FieldSeparator)
}

// TokenizeWith splits a raw block into records with explicit delimiters.
//
// Segments between record separators that are empty or whitespace-only are
// dropped: a trailing separator, doubled separators, or a blank export all
// yield fewer (or zero) records rather than empty ones. Field order within
// a record is preserved exactly and fields are not trimmed.
func TokenizeWith(raw, recordSep, fieldSep string) []Record {
	segments := strings.Split(raw, recordSep)

	records := make([]Record, 0, len(segments))
	for _, segment := range segments {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		records = append(records, Record{fields: strings.Split(segment, fieldSep)})
	}

	return records
}
