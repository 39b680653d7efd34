package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	gerr "github.com/jekabolt/grbpwr-analytics/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func order(id, customer string, at time.Time, status entity.OrderStatus, items ...entity.OrderItem) entity.Order {
	for i := range items {
		items[i].OrderID = id
	}
	return entity.Order{
		ID:         id,
		CustomerID: customer,
		CreatedAt:  at,
		Status:     status,
		Items:      items,
	}
}

func item(productID string, qty int, price string) entity.OrderItem {
	return entity.NewOrderItem("", productID, qty, dec(price))
}

func TestAggregateMonthlyRollup(t *testing.T) {
	orders := []entity.Order{
		order("o1", "c1", date(2024, 1, 5), entity.OrderStatusDelivered, item("p1", 1, "100")),
		order("o2", "c2", date(2024, 1, 20), entity.OrderStatusDelivered, item("p1", 2, "100")),
		order("o3", "c1", date(2024, 2, 3), entity.OrderStatusDelivered, item("p2", 1, "50")),
	}

	rows, err := Aggregate(orders,
		func(o entity.Order) string { return BucketKey(o.CreatedAt, entity.GranularityMonthly) },
		Sum("revenue", OrderRevenue),
		Count[entity.Order]("orders"),
	)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2024-01", rows[0].Key)
	assert.Equal(t, "300", rows[0].Value("revenue").String())
	assert.Equal(t, 2, rows[0].Int("orders"))
	assert.Equal(t, "2024-02", rows[1].Key)
	assert.Equal(t, "50", rows[1].Value("revenue").String())
	assert.Equal(t, 1, rows[1].Int("orders"))
}

func TestAggregateFirstSeenOrder(t *testing.T) {
	rows, err := Aggregate([]string{"b", "a", "b", "c"}, func(s string) string { return s }, Count[string]("n"))
	require.NoError(t, err)
	keys := make([]string, 0, len(rows))
	for _, r := range rows {
		keys = append(keys, r.Key)
	}
	assert.Equal(t, []string{"b", "a", "c"}, keys)
	assert.Equal(t, 2, rows[0].Int("n"))
}

func TestAggregateWindowRevenueMatchesSum(t *testing.T) {
	orders := []entity.Order{
		order("o1", "c1", date(2024, 1, 1), entity.OrderStatusPending, item("p1", 3, "9.99")),
		order("o2", "c2", date(2024, 1, 2), entity.OrderStatusCancelled, item("p2", 1, "0.01"), item("p3", 4, "12.50")),
		order("o3", "c3", date(2024, 1, 9), entity.OrderStatusDelivered),
	}
	want := decimal.Zero
	for i := range orders {
		want = want.Add(orders[i].Revenue())
	}

	rows, err := Aggregate(orders,
		func(o entity.Order) string { return BucketKey(o.CreatedAt, entity.GranularityWeekly) },
		Sum("revenue", OrderRevenue),
	)
	require.NoError(t, err)
	got := decimal.Zero
	for _, r := range rows {
		got = got.Add(r.Value("revenue"))
	}
	assert.True(t, want.Equal(got), "want %s got %s", want, got)
}

func TestSummarize(t *testing.T) {
	t.Run("empty input yields zero row", func(t *testing.T) {
		row, err := Summarize([]entity.Order{},
			Count[entity.Order]("orders"),
			Sum("revenue", OrderRevenue),
			Avg("aov", OrderRevenue),
			CountIf("delivered", Delivered),
			Min("first", func(o entity.Order) decimal.Decimal { return TimeValue(o.CreatedAt) }),
			Max("last", func(o entity.Order) decimal.Decimal { return TimeValue(o.CreatedAt) }),
		)
		require.NoError(t, err)
		for _, name := range []string{"orders", "revenue", "aov", "delivered", "first", "last"} {
			assert.True(t, row.Value(name).IsZero(), name)
		}
	})

	t.Run("all accumulators", func(t *testing.T) {
		orders := []entity.Order{
			order("o1", "c1", date(2024, 1, 1), entity.OrderStatusDelivered, item("p1", 1, "10")),
			order("o2", "c1", date(2024, 1, 3), entity.OrderStatusPending, item("p1", 2, "10")),
			order("o3", "c2", date(2024, 1, 2), entity.OrderStatusDelivered, item("p2", 1, "30")),
		}
		row, err := Summarize(orders,
			Count[entity.Order]("orders"),
			Sum("revenue", OrderRevenue),
			Avg("aov", OrderRevenue),
			CountIf("delivered", Delivered),
			Min("first", func(o entity.Order) decimal.Decimal { return TimeValue(o.CreatedAt) }),
			Max("last", func(o entity.Order) decimal.Decimal { return TimeValue(o.CreatedAt) }),
		)
		require.NoError(t, err)
		assert.Equal(t, 3, row.Int("orders"))
		assert.Equal(t, "60", row.Value("revenue").String())
		assert.Equal(t, "20", row.Value("aov").String())
		assert.Equal(t, 2, row.Int("delivered"))
		assert.Equal(t, date(2024, 1, 1), ValueTime(row.Value("first")))
		assert.Equal(t, date(2024, 1, 3), ValueTime(row.Value("last")))
	})
}

func TestAggregateDuplicateNames(t *testing.T) {
	_, err := Aggregate([]int{1}, func(int) string { return "k" }, Count[int]("n"), Count[int]("n"))
	require.Error(t, err)
	assert.Equal(t, gerr.KindComputation, gerr.KindOf(err))

	_, err = Summarize([]int{1}, Count[int]("n"), Count[int]("n"))
	assert.Equal(t, gerr.KindComputation, gerr.KindOf(err))
}

func TestAggregateContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rows, err := AggregateContext(ctx, []int{1, 2, 3}, func(int) string { return "k" }, Count[int]("n"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, rows)
}

func TestTwoPassAggregation(t *testing.T) {
	orders := []entity.Order{
		order("o1", "c1", date(2024, 1, 1), entity.OrderStatusDelivered, item("p1", 1, "10")),
		order("o2", "c1", date(2024, 1, 2), entity.OrderStatusDelivered, item("p1", 1, "30")),
		order("o3", "c2", date(2024, 1, 3), entity.OrderStatusDelivered, item("p1", 1, "20")),
	}
	perCustomer, err := Aggregate(orders,
		func(o entity.Order) string { return o.CustomerID },
		Count[entity.Order]("orderCount"),
		Sum("totalSpent", OrderRevenue),
	)
	require.NoError(t, err)

	summary, err := Summarize(perCustomer,
		CountIf("returning", func(r Row) bool { return r.Int("orderCount") > 1 }),
		Avg("avgSpent", Field("totalSpent")),
	)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Int("returning"))
	assert.Equal(t, "30", summary.Value("avgSpent").String())
}
