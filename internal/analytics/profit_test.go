package analytics

import (
	"testing"

	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfitability(t *testing.T) {
	products := []entity.Product{
		{ID: "p1", Name: "Coat", SKU: "C-1", Price: dec("200"), CostPrice: dec("120")},
		{ID: "p2", Name: "Scarf", SKU: "S-1", Price: dec("40"), CostPrice: dec("10")},
		{ID: "p3", Name: "Gift", SKU: "G-1", Price: dec("0"), CostPrice: dec("5")},
	}
	lines := Lines([]entity.Order{
		order("o1", "c1", date(2024, 1, 1), entity.OrderStatusDelivered, item("p1", 2, "200"), item("p2", 1, "40")),
		order("o2", "c2", date(2024, 1, 2), entity.OrderStatusDelivered, item("p2", 3, "40"), item("p3", 1, "0"), item("missing", 5, "999")),
	})

	got, err := Profitability(lines, products)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "p1", got[0].ProductID)
	assert.Equal(t, "Coat", got[0].ProductName)
	assert.Equal(t, 2, got[0].UnitsSold)
	assert.Equal(t, "400", got[0].TotalRevenue.String())
	assert.Equal(t, "240", got[0].TotalCost.String())
	assert.Equal(t, "160", got[0].TotalProfit.String())
	assert.Equal(t, "40", got[0].ProfitMargin.String())

	assert.Equal(t, "p2", got[1].ProductID)
	assert.Equal(t, "120", got[1].TotalProfit.String())
	assert.Equal(t, "75", got[1].ProfitMargin.String())

	assert.Equal(t, "p3", got[2].ProductID)
	assert.Equal(t, "-5", got[2].TotalProfit.String())
	assert.True(t, got[2].ProfitMargin.IsZero(), "zero revenue has zero margin")
}

func TestMargin(t *testing.T) {
	assert.True(t, Margin(dec("-5"), dec("0")).IsZero())
	assert.Equal(t, "33.33", Margin(dec("1"), dec("3")).String())
}
