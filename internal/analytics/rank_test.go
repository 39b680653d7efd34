package analytics

import (
	"testing"

	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	gerr "github.com/jekabolt/grbpwr-analytics/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metricRows(metric string, kv ...string) []Row {
	rows := make([]Row, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		r := NewRow(kv[i])
		r.Set(metric, dec(kv[i+1]))
		rows = append(rows, r)
	}
	return rows
}

func keys(rows []Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Key)
	}
	return out
}

func TestTopN(t *testing.T) {
	rows := metricRows("totalSold", "A", "5", "B", "9", "C", "5", "D", "1")

	top, err := TopN(rows, "totalSold", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A", "C"}, keys(top))

	all, err := TopN(rows, "totalSold", 10)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	assert.Equal(t, []string{"A", "B", "C", "D"}, keys(rows), "input must not be reordered")
}

func TestTopNInvalidLimit(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := TopN(metricRows("x", "A", "1"), "x", n)
		assert.True(t, gerr.IsValidation(err))
	}
}

func TestTopNProperties(t *testing.T) {
	rows := metricRows("v", "e", "3", "a", "3", "c", "7", "b", "0", "d", "7", "f", "-2")
	for n := 1; n <= len(rows)+2; n++ {
		top, err := TopN(rows, "v", n)
		require.NoError(t, err)
		assert.Len(t, top, min(n, len(rows)))
		for i := 1; i < len(top); i++ {
			prev, cur := top[i-1], top[i]
			c := prev.Value("v").Cmp(cur.Value("v"))
			assert.True(t, c > 0 || (c == 0 && prev.Key < cur.Key), "rows %s and %s out of order", prev.Key, cur.Key)
		}
	}
}

func TestEnrich(t *testing.T) {
	rows := metricRows("totalSold", "p1", "3", "ghost", "9")
	table := TableOf([]entity.Product{
		{ID: "p1", Name: "Shirt", SKU: "SH-1", Price: dec("20")},
	}, func(p entity.Product) string { return p.ID }, ProductReference)

	t.Run("unmatched rows are dropped", func(t *testing.T) {
		out := Enrich(rows, Join{Ref: ByKey, Table: table, Fields: []string{"name", "sku", "currentPrice"}})
		require.Len(t, out, 1)
		assert.Equal(t, "Shirt", out[0].Attr("name"))
		assert.Equal(t, "SH-1", out[0].Attr("sku"))
		assert.Equal(t, "20", out[0].Value("currentPrice").String())
		assert.Empty(t, rows[0].Attrs, "input rows must not be modified")
	})

	t.Run("keep unmatched", func(t *testing.T) {
		out := Enrich(rows, Join{Ref: ByKey, Table: table, Fields: []string{"name"}, KeepUnmatched: true})
		require.Len(t, out, 2)
		assert.Equal(t, "ghost", out[1].Key)
		assert.Empty(t, out[1].Attr("name"))
		_, has := out[1].Attrs["name"]
		assert.False(t, has)
	})

	t.Run("by attribute", func(t *testing.T) {
		r := NewRow("o1")
		r.Attrs = map[string]string{"productId": "p1"}
		out := Enrich([]Row{r}, Join{Ref: ByAttr("productId"), Table: table, Fields: []string{"name"}})
		require.Len(t, out, 1)
		assert.Equal(t, "Shirt", out[0].Attr("name"))
	})
}

func TestJoinRecords(t *testing.T) {
	lines := Lines([]entity.Order{
		order("o1", "c1", date(2024, 1, 1), entity.OrderStatusDelivered, item("p1", 1, "10"), item("gone", 2, "5")),
	})
	index := IndexBy([]entity.Product{{ID: "p1"}}, func(p entity.Product) string { return p.ID })

	joined := JoinRecords(lines, func(l Line) string { return l.ProductID }, index, false)
	require.Len(t, joined, 1)
	assert.Equal(t, "p1", joined[0].Ref.ID)
	assert.True(t, joined[0].Matched)

	kept := JoinRecords(lines, func(l Line) string { return l.ProductID }, index, true)
	require.Len(t, kept, 2)
	assert.False(t, kept[1].Matched)
}
