package flatfile

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeOrderDocuments(t *testing.T) {
	d := NewDecoder(nil)

	docs, anomalies := d.DecodeOrderDocuments(
		"E;FR011;SOI;SO001;CUS1;20240101;;FR011;EUR|L;ITM1;Desc;UN;2;10.5|")

	require.Len(t, docs, 1)
	assert.Equal(t, 0, anomalies.Total())

	doc := docs[0]
	assert.Equal(t, "FR011", doc.Site)
	assert.Equal(t, "SOI", doc.Type)
	assert.Equal(t, "SO001", doc.Number)
	assert.Equal(t, "CUS1", doc.Customer)
	assert.Equal(t, "20240101", doc.Date)
	assert.Equal(t, "", doc.Reference)
	assert.Equal(t, "EUR", doc.Currency)

	require.Len(t, doc.Lines, 1)
	assert.Equal(t, "ITM1", doc.Lines[0].Code)
	assert.Equal(t, "Desc", doc.Lines[0].Description)
	assert.Equal(t, "UN", doc.Lines[0].Unit)
	assert.Equal(t, 2.0, doc.Lines[0].Quantity)
	assert.Equal(t, 10.5, doc.Lines[0].Price)
}

// A stream of only L records has no document to attach to: the result is
// empty and every line counts as a dropped orphan.
func TestOrphanLinesAreDropped(t *testing.T) {
	d := NewDecoder(nil)

	docs, anomalies := d.DecodeOrderDocuments("L;A;x;UN;1;2|L;B;y;UN;3;4|")

	assert.Empty(t, docs)
	assert.Equal(t, 2, anomalies.DroppedOrphans["L"])
}

// Two consecutive E records with no L between them yield two documents, the
// first with an empty line list.
func TestConsecutiveHeadersCloseDocuments(t *testing.T) {
	d := NewDecoder(nil)

	docs, _ := d.DecodeOrderDocuments(
		"E;S1;SOI;N1;C1;20240101|E;S2;SOI;N2;C2;20240102|L;I1;;UN;1;1|")

	require.Len(t, docs, 2)
	assert.Equal(t, "N1", docs[0].Number)
	assert.Empty(t, docs[0].Lines)
	assert.Equal(t, "N2", docs[1].Number)
	assert.Len(t, docs[1].Lines, 1)
}

// A stream ending with an open document (no trailing terminator) still
// includes it in the result.
func TestFinalFlushKeepsTrailingDocument(t *testing.T) {
	d := NewDecoder(nil)

	docs, _ := d.DecodeOrderDocuments("E;S1;SOI;N1;C1;20240101;;S1;EUR")

	require.Len(t, docs, 1)
	assert.Equal(t, "N1", docs[0].Number)
}

// Non-numeric quantity or price does not drop the line; the parsed NaN is
// carried through untouched.
func TestMalformedLineAmountsCarryNaN(t *testing.T) {
	d := NewDecoder(nil)

	docs, _ := d.DecodeOrderDocuments(
		"E;S1;SOI;N1;C1;20240101|L;I1;;UN;many;cheap|")

	require.Len(t, docs, 1)
	require.Len(t, docs[0].Lines, 1)
	assert.True(t, math.IsNaN(docs[0].Lines[0].Quantity))
	assert.True(t, math.IsNaN(docs[0].Lines[0].Price))
}

// An unknown tag is skipped with an anomaly; the entity collection is the
// same as if the record were absent.
func TestUnknownTagIsSkippedWithAnomaly(t *testing.T) {
	d := NewDecoder(nil)

	withZ, anomalies := d.DecodeOrderDocuments(
		"E;S1;SOI;N1;C1;20240101|Z;foo;bar|L;I1;;UN;1;5|")
	without, _ := d.DecodeOrderDocuments(
		"E;S1;SOI;N1;C1;20240101|L;I1;;UN;1;5|")

	assert.Equal(t, without, withZ)
	assert.Equal(t, 1, anomalies.UnknownTags["Z"])
}

func TestEmptyExportYieldsNoDocuments(t *testing.T) {
	d := NewDecoder(nil)

	docs, anomalies := d.DecodeOrderDocuments("")

	assert.Empty(t, docs)
	assert.Equal(t, 0, anomalies.Total())
}
