package analytics

import (
	"testing"

	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentChange(t *testing.T) {
	assert.Equal(t, "50", PercentChange(dec("100"), dec("150")).String())
	assert.Equal(t, "-25", PercentChange(dec("200"), dec("150")).String())
	assert.Equal(t, "33.33", PercentChange(dec("3"), dec("4")).String())
	assert.True(t, PercentChange(decimal.Zero, dec("5")).IsZero())
	assert.True(t, PercentChange(decimal.Zero, decimal.Zero).IsZero())
}

func TestCompare(t *testing.T) {
	d := Compare(
		map[string]decimal.Decimal{"orders": dec("0"), "revenue": dec("100")},
		map[string]decimal.Decimal{"orders": dec("5"), "revenue": dec("150"), "refunds": dec("2")},
	)
	require.Len(t, d, 3)

	assert.Equal(t, "5", d["orders"].Change.String())
	assert.True(t, d["orders"].PercentChange.IsZero())

	assert.Equal(t, "50", d["revenue"].Change.String())
	assert.Equal(t, "50", d["revenue"].PercentChange.String())

	assert.True(t, d["refunds"].Period1.IsZero())
	assert.Equal(t, "2", d["refunds"].Change.String())
}

func TestCompareSnapshots(t *testing.T) {
	p1Orders := []entity.Order{
		order("o1", "c1", date(2024, 1, 1), entity.OrderStatusDelivered, item("p1", 1, "100")),
	}
	p2Orders := []entity.Order{
		order("o2", "c1", date(2024, 2, 1), entity.OrderStatusDelivered, item("p1", 1, "100")),
		order("o3", "c2", date(2024, 2, 2), entity.OrderStatusDelivered, item("p1", 1, "50")),
	}
	s1, err := SnapshotOf(entity.TimeRange{From: date(2024, 1, 1), To: date(2024, 1, 31)}, p1Orders)
	require.NoError(t, err)
	s2, err := SnapshotOf(entity.TimeRange{From: date(2024, 2, 1), To: date(2024, 2, 29)}, p2Orders)
	require.NoError(t, err)

	c := CompareSnapshots(s1, s2)
	assert.Equal(t, "1", c.Orders.Change.String())
	assert.Equal(t, "100", c.Orders.PercentChange.String())
	assert.Equal(t, "50", c.Revenue.Change.String())
	assert.Equal(t, "50", c.Revenue.PercentChange.String())
	assert.Equal(t, "-25", c.AverageOrderValue.Change.String())
	assert.Equal(t, "-25", c.AverageOrderValue.PercentChange.String())
}

func TestCompareSnapshotsEmptyBaseline(t *testing.T) {
	s1, err := SnapshotOf(entity.TimeRange{}, nil)
	require.NoError(t, err)
	s2, err := SnapshotOf(entity.TimeRange{}, []entity.Order{
		order("o1", "c1", date(2024, 2, 1), entity.OrderStatusDelivered, item("p1", 1, "10")),
	})
	require.NoError(t, err)

	c := CompareSnapshots(s1, s2)
	assert.True(t, c.Orders.PercentChange.IsZero())
	assert.True(t, c.Revenue.PercentChange.IsZero())
	assert.Equal(t, "10", c.Revenue.Change.String())
}
