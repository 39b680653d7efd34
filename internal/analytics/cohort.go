package analytics

import (
	"context"

	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// BuildCohorts groups customers by the month of their earliest order.
// Each cohort carries the all-time revenue of its members. Cohorts are sorted by month.
// Pass the full order history: a windowed slice would move customers into later cohorts.
func BuildCohorts(ctx context.Context, orders []entity.Order) ([]entity.Cohort, error) {
	acts, err := CustomerActivities(ctx, orders)
	if err != nil {
		return nil, err
	}

	cohortOf := func(a CustomerActivity) string {
		return BucketKey(a.FirstOrder, entity.GranularityMonthly)
	}
	rows, err := AggregateContext(ctx, acts, cohortOf,
		Count[CustomerActivity]("customers"),
		Sum("totalRevenue", func(a CustomerActivity) decimal.Decimal { return a.TotalSpent }),
	)
	if err != nil {
		return nil, err
	}

	members := make(map[string][]string, len(rows))
	for _, a := range acts {
		k := cohortOf(a)
		members[k] = append(members[k], a.CustomerID)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows = SortByKey(rows)
	cohorts := make([]entity.Cohort, 0, len(rows))
	for _, r := range rows {
		ids := members[r.Key]
		slices.Sort(ids)
		cohorts = append(cohorts, entity.Cohort{
			CohortMonth:  r.Key,
			Customers:    r.Int("customers"),
			TotalRevenue: r.Value("totalRevenue"),
			CustomerIDs:  ids,
		})
	}
	return cohorts, nil
}
