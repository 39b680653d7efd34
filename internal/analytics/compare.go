package analytics

import (
	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PercentChange is (current - base) / base in percent, rounded to 2 places.
// A zero base yields 0 instead of an infinite change.
func PercentChange(base, current decimal.Decimal) decimal.Decimal {
	if base.IsZero() {
		return decimal.Zero
	}
	return current.Sub(base).Div(base).Mul(hundred).Round(2)
}

// NewDelta compares one metric between two periods.
func NewDelta(p1, p2 decimal.Decimal) entity.Delta {
	return entity.Delta{
		Period1:       p1,
		Period2:       p2,
		Change:        p2.Sub(p1),
		PercentChange: PercentChange(p1, p2),
	}
}

// Compare builds a delta for every metric present in either period.
// A metric missing from one side counts as zero there.
func Compare(p1, p2 map[string]decimal.Decimal) map[string]entity.Delta {
	out := make(map[string]entity.Delta, len(p1)+len(p2))
	for k, v := range p1 {
		out[k] = NewDelta(v, p2[k])
	}
	for k, v := range p2 {
		if _, ok := p1[k]; !ok {
			out[k] = NewDelta(decimal.Zero, v)
		}
	}
	return out
}

// SnapshotOf summarizes the orders of one period.
func SnapshotOf(tr entity.TimeRange, orders []entity.Order) (entity.PeriodSnapshot, error) {
	row, err := Summarize(orders,
		Count[entity.Order]("totalOrders"),
		Sum("totalRevenue", OrderRevenue),
		Avg("averageOrderValue", OrderRevenue),
	)
	if err != nil {
		return entity.PeriodSnapshot{}, err
	}
	return entity.PeriodSnapshot{
		Range:             tr,
		TotalOrders:       row.Int("totalOrders"),
		TotalRevenue:      row.Value("totalRevenue"),
		AverageOrderValue: row.Value("averageOrderValue").Round(2),
	}, nil
}

func snapshotValues(s entity.PeriodSnapshot) map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"orders":            decimal.NewFromInt(int64(s.TotalOrders)),
		"revenue":           s.TotalRevenue,
		"averageOrderValue": s.AverageOrderValue,
	}
}

// CompareSnapshots reports the order, revenue and average order value deltas of two periods.
func CompareSnapshots(p1, p2 entity.PeriodSnapshot) entity.Comparison {
	d := Compare(snapshotValues(p1), snapshotValues(p2))
	return entity.Comparison{
		Period1:           p1,
		Period2:           p2,
		Orders:            d["orders"],
		Revenue:           d["revenue"],
		AverageOrderValue: d["averageOrderValue"],
	}
}
