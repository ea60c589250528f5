package flatfile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/X3-flat-bridge/internal/types"
)

func floatPtr(v float64) *float64 { return &v }

func TestBuildOrderFile(t *testing.T) {
	req := types.OrderRequest{
		Site:      "FR011",
		OrderType: "SOI",
		Customer:  "CUS1",
		Date:      "20240101",
		ShipSite:  "FR011",
		Currency:  "EUR",
		Lines: []types.OrderRequestLine{
			{ItemCode: "A1", Qty: 3, Price: floatPtr(9.99)},
		},
	}

	out := BuildOrderFile(req)

	assert.True(t, strings.HasSuffix(out, "|END"))
	assert.Equal(t, 1, strings.Count(out, "L;A1;;UN;3;9.99;0;0;0;"),
		"designation empty, sales unit defaulted")
	assert.True(t, strings.HasPrefix(out, "E;FR011;SOI;;CUS1;20240101;;FR011;EUR;;;;;"),
		"document number field stays empty for the backend to assign")
}

func TestBuildOrderFileDefaults(t *testing.T) {
	req := types.OrderRequest{
		Site: "S1", OrderType: "SOI", Customer: "C1", Date: "20240102",
		ShipSite: "S1", Currency: "EUR",
		Lines: []types.OrderRequestLine{
			{ItemCode: "B2", Qty: 1.25, Designation: "Blue widget", SalesUoM: "BOX"},
			{ItemCode: "C3", Qty: 10},
		},
	}

	out := BuildOrderFile(req)

	assert.Contains(t, out, "|L;B2;Blue widget;BOX;1.25;;0;0;0;|")
	// Absent price is an empty field, not a zero.
	assert.Contains(t, out, "|L;C3;;UN;10;;0;0;0;|END")
}

func TestBuildOrderFileEmptyLineList(t *testing.T) {
	out := BuildOrderFile(types.OrderRequest{
		Site: "S1", OrderType: "SOI", Customer: "C1", Date: "20240101",
		ShipSite: "S1", Currency: "EUR",
	})

	assert.Equal(t, "E;S1;SOI;;C1;20240101;;S1;EUR;;;;;|END", out)
}

// Re-tokenizing builder output yields exactly the expected tag sequence in
// line order.
func TestBuildOrderFileRoundTrip(t *testing.T) {
	req := types.OrderRequest{
		Site: "FR011", OrderType: "SOI", Customer: "CUS1", Date: "20240101",
		ShipSite: "FR011", Currency: "EUR",
		Lines: []types.OrderRequestLine{
			{ItemCode: "A1", Qty: 1},
			{ItemCode: "B2", Qty: 2},
			{ItemCode: "C3", Qty: 3},
		},
	}

	records := Tokenize(BuildOrderFile(req))

	tags := make([]string, len(records))
	for i, r := range records {
		tags[i] = r.Tag()
	}
	require.Equal(t, []string{"E", "L", "L", "L", "END"}, tags)

	// Line order is preserved.
	assert.Equal(t, "A1", records[1].Field(1))
	assert.Equal(t, "B2", records[2].Field(1))
	assert.Equal(t, "C3", records[3].Field(1))
}

// The decoder accepts the builder's own output, which is how a submitted
// order comes back in a later order export.
func TestBuilderOutputDecodes(t *testing.T) {
	req := types.OrderRequest{
		Site: "FR011", OrderType: "SOI", Customer: "CUS1", Date: "20240101",
		ShipSite: "FR011", Currency: "EUR",
		Lines: []types.OrderRequestLine{{ItemCode: "A1", Qty: 3, Price: floatPtr(9.99)}},
	}

	d := NewDecoder(nil)
	docs, anomalies := d.DecodeOrderDocuments(BuildOrderFile(req))

	require.Len(t, docs, 1)
	assert.Equal(t, "CUS1", docs[0].Customer)
	assert.Equal(t, "", docs[0].Number)
	assert.Equal(t, "EUR", docs[0].Currency)
	require.Len(t, docs[0].Lines, 1)
	assert.Equal(t, 3.0, docs[0].Lines[0].Quantity)
	assert.Equal(t, 9.99, docs[0].Lines[0].Price)
	// The END terminator is not an order record; it surfaces as an unknown
	// tag rather than corrupting the document list.
	assert.Equal(t, 1, anomalies.UnknownTags["END"])
}
