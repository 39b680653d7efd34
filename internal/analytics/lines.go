package analytics

import (
	"time"

	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/shopspring/decimal"
)

// Line is an order item together with the order fields reports filter and group on.
type Line struct {
	entity.OrderItem
	CustomerID string
	CreatedAt  time.Time
	Status     entity.OrderStatus
}

// Lines flattens orders into their items.
func Lines(orders []entity.Order) []Line {
	n := 0
	for i := range orders {
		n += len(orders[i].Items)
	}
	lines := make([]Line, 0, n)
	for i := range orders {
		o := &orders[i]
		for _, it := range o.Items {
			lines = append(lines, Line{
				OrderItem:  it,
				CustomerID: o.CustomerID,
				CreatedAt:  o.CreatedAt,
				Status:     o.Status,
			})
		}
	}
	return lines
}

// FilterOrders keeps the orders matching pred.
func FilterOrders(orders []entity.Order, pred func(entity.Order) bool) []entity.Order {
	out := make([]entity.Order, 0, len(orders))
	for _, o := range orders {
		if pred(o) {
			out = append(out, o)
		}
	}
	return out
}

// InWindow matches orders created inside tr.
func InWindow(tr entity.TimeRange) func(entity.Order) bool {
	return func(o entity.Order) bool {
		return tr.Contains(o.CreatedAt)
	}
}

// Delivered matches completed orders.
func Delivered(o entity.Order) bool {
	return o.Status.IsCompleted()
}

// RevenueBearing matches shipped or delivered orders.
func RevenueBearing(o entity.Order) bool {
	return o.Status.IsRevenueBearing()
}

// OrderRevenue is the accumulator field for order value.
func OrderRevenue(o entity.Order) decimal.Decimal {
	return o.Revenue()
}

// LineQuantity is the accumulator field for units sold.
func LineQuantity(l Line) decimal.Decimal {
	return decimal.NewFromInt(int64(l.Quantity))
}

// LineRevenue is the accumulator field for item revenue.
func LineRevenue(l Line) decimal.Decimal {
	return l.TotalPrice
}

// LinePrice is the accumulator field for the unit price paid.
func LinePrice(l Line) decimal.Decimal {
	return l.Price
}

// TimeValue encodes t as unix milliseconds so Min and Max can fold timestamps.
func TimeValue(t time.Time) decimal.Decimal {
	return decimal.NewFromInt(t.UnixMilli())
}

// ValueTime decodes a TimeValue.
func ValueTime(d decimal.Decimal) time.Time {
	return time.UnixMilli(d.IntPart()).UTC()
}
