package report

import (
	"context"

	"github.com/jekabolt/grbpwr-analytics/internal/analytics"
	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/shopspring/decimal"
)

const defaultTopCustomers = 10

func customerOf(o entity.Order) string { return o.CustomerID }

// Customers splits the customers of the window into new and returning and lists the top spenders.
// The split is a second pass over the per customer rows.
func (s *Service) Customers(ctx context.Context, q Query) (*entity.CustomerReport, error) {
	return run(ctx, s, "customers", func(ctx context.Context) (*entity.CustomerReport, error) {
		snap, err := s.load(ctx, need{orders: true, window: q.Window, customers: true})
		if err != nil {
			return nil, err
		}
		perCustomer, err := analytics.AggregateContext(ctx, snap.orders, customerOf,
			analytics.Count[entity.Order]("orderCount"),
			analytics.Sum("totalSpent", analytics.OrderRevenue),
			analytics.Avg("averageOrderValue", analytics.OrderRevenue),
		)
		if err != nil {
			return nil, err
		}

		summary, err := analytics.Summarize(perCustomer,
			analytics.CountIf("newCustomers", func(r analytics.Row) bool { return r.Int("orderCount") == 1 }),
			analytics.CountIf("returningCustomers", func(r analytics.Row) bool { return r.Int("orderCount") > 1 }),
			analytics.Count[analytics.Row]("totalCustomers"),
			analytics.Avg("averageOrdersPerCustomer", analytics.Field("orderCount")),
			analytics.Avg("averageSpentPerCustomer", analytics.Field("totalSpent")),
		)
		if err != nil {
			return nil, err
		}

		enriched := analytics.Enrich(perCustomer, analytics.Join{
			Ref:    analytics.ByKey,
			Table:  customerTable(snap.customers),
			Fields: []string{"customerName", "customerEmail"},
		})
		top, err := analytics.TopN(enriched, "totalSpent", orDefault(q.Limit, defaultTopCustomers))
		if err != nil {
			return nil, err
		}
		topCustomers := make([]entity.CustomerValue, 0, len(top))
		for _, r := range top {
			topCustomers = append(topCustomers, entity.CustomerValue{
				CustomerID:        r.Key,
				CustomerName:      r.Attr("customerName"),
				CustomerEmail:     r.Attr("customerEmail"),
				TotalSpent:        r.Value("totalSpent"),
				OrderCount:        r.Int("orderCount"),
				AverageOrderValue: r.Value("averageOrderValue").Round(2),
			})
		}

		return &entity.CustomerReport{
			Summary: entity.CustomerSummary{
				NewCustomers:             summary.Int("newCustomers"),
				ReturningCustomers:       summary.Int("returningCustomers"),
				TotalCustomers:           summary.Int("totalCustomers"),
				AverageOrdersPerCustomer: summary.Value("averageOrdersPerCustomer").Round(2),
				AverageSpentPerCustomer:  summary.Value("averageSpentPerCustomer").Round(2),
			},
			TopCustomers: topCustomers,
		}, nil
	})
}

// CustomerSegments groups customers into spend tiers, highest tier first.
func (s *Service) CustomerSegments(ctx context.Context, q Query) ([]entity.SegmentSummary, error) {
	return run(ctx, s, "customer_segments", func(ctx context.Context) ([]entity.SegmentSummary, error) {
		snap, err := s.load(ctx, need{orders: true, window: q.Window})
		if err != nil {
			return nil, err
		}
		acts, err := analytics.CustomerActivities(ctx, snap.orders)
		if err != nil {
			return nil, err
		}
		rows, err := analytics.AggregateContext(ctx, acts,
			func(a analytics.CustomerActivity) string { return string(analytics.SpendTier(a.TotalSpent)) },
			analytics.Count[analytics.CustomerActivity]("customerCount"),
			analytics.Sum("totalRevenue", func(a analytics.CustomerActivity) decimal.Decimal { return a.TotalSpent }),
			analytics.Avg("averageOrderValue", func(a analytics.CustomerActivity) decimal.Decimal { return a.AverageOrderValue() }),
		)
		if err != nil {
			return nil, err
		}
		byTier := analytics.IndexBy(rows, analytics.ByKey)
		out := make([]entity.SegmentSummary, 0, len(rows))
		for _, tier := range analytics.Tiers {
			r, ok := byTier[string(tier)]
			if !ok {
				continue
			}
			out = append(out, entity.SegmentSummary{
				Segment:           r.Key,
				CustomerCount:     r.Int("customerCount"),
				TotalRevenue:      r.Value("totalRevenue"),
				AverageOrderValue: r.Value("averageOrderValue").Round(2),
			})
		}
		return out, nil
	})
}

// CustomerLifetimeValue lists the all-time value of each known customer, highest first.
func (s *Service) CustomerLifetimeValue(ctx context.Context, q Query) ([]entity.CustomerLifetimeValue, error) {
	return run(ctx, s, "customer_lifetime_value", func(ctx context.Context) ([]entity.CustomerLifetimeValue, error) {
		snap, err := s.load(ctx, need{orders: true, window: q.Window, customers: true})
		if err != nil {
			return nil, err
		}
		acts, err := analytics.CustomerActivities(ctx, snap.orders)
		if err != nil {
			return nil, err
		}
		byID := analytics.IndexBy(acts, func(a analytics.CustomerActivity) string { return a.CustomerID })

		rows := make([]analytics.Row, 0, len(acts))
		for _, a := range acts {
			r := analytics.NewRow(a.CustomerID)
			r.Set("totalValue", a.TotalSpent)
			rows = append(rows, r)
		}
		rows = analytics.Enrich(rows, analytics.Join{
			Ref:    analytics.ByKey,
			Table:  customerTable(snap.customers),
			Fields: []string{"customerName", "customerEmail"},
		})
		if q.Limit > 0 {
			if rows, err = analytics.TopN(rows, "totalValue", q.Limit); err != nil {
				return nil, err
			}
		} else {
			rows = analytics.SortDesc(rows, "totalValue")
		}

		out := make([]entity.CustomerLifetimeValue, 0, len(rows))
		for _, r := range rows {
			a := byID[r.Key]
			out = append(out, entity.CustomerLifetimeValue{
				CustomerID:        a.CustomerID,
				CustomerName:      r.Attr("customerName"),
				CustomerEmail:     r.Attr("customerEmail"),
				TotalValue:        a.TotalSpent,
				OrderCount:        a.OrderCount,
				AverageOrderValue: a.AverageOrderValue().Round(2),
				FirstOrder:        a.FirstOrder,
				LastOrder:         a.LastOrder,
				LifetimeDays:      a.LifetimeDays().Round(2),
			})
		}
		return out, nil
	})
}

type scoredCustomer struct {
	analytics.CustomerActivity
	recency decimal.Decimal
	segment analytics.Segment
}

// RFM segments customers by recency, frequency and monetary value.
// Segments come back in rule order and empty segments are omitted.
func (s *Service) RFM(ctx context.Context) ([]entity.RFMSegmentSummary, error) {
	return run(ctx, s, "rfm_analysis", func(ctx context.Context) ([]entity.RFMSegmentSummary, error) {
		snap, err := s.load(ctx, need{orders: true})
		if err != nil {
			return nil, err
		}
		acts, err := analytics.CustomerActivities(ctx, snap.orders)
		if err != nil {
			return nil, err
		}
		now := s.Now()
		scored := make([]scoredCustomer, 0, len(acts))
		for _, a := range acts {
			recency := a.RecencyDays(now)
			scored = append(scored, scoredCustomer{
				CustomerActivity: a,
				recency:          recency,
				segment:          analytics.AssignSegment(recency, a.OrderCount, a.TotalSpent),
			})
		}

		rows, err := analytics.AggregateContext(ctx, scored,
			func(c scoredCustomer) string { return string(c.segment) },
			analytics.Count[scoredCustomer]("customerCount"),
			analytics.Sum("totalValue", func(c scoredCustomer) decimal.Decimal { return c.TotalSpent }),
			analytics.Avg("avgRecency", func(c scoredCustomer) decimal.Decimal { return c.recency }),
			analytics.Avg("avgFrequency", func(c scoredCustomer) decimal.Decimal { return decimal.NewFromInt(int64(c.OrderCount)) }),
			analytics.Avg("avgMonetary", func(c scoredCustomer) decimal.Decimal { return c.TotalSpent }),
		)
		if err != nil {
			return nil, err
		}
		bySegment := analytics.IndexBy(rows, analytics.ByKey)
		out := make([]entity.RFMSegmentSummary, 0, len(rows))
		for _, seg := range analytics.Segments {
			r, ok := bySegment[string(seg)]
			if !ok {
				continue
			}
			out = append(out, entity.RFMSegmentSummary{
				Segment:          r.Key,
				CustomerCount:    r.Int("customerCount"),
				TotalValue:       r.Value("totalValue"),
				AverageRecency:   r.Value("avgRecency").Round(2),
				AverageFrequency: r.Value("avgFrequency").Round(2),
				AverageMonetary:  r.Value("avgMonetary").Round(2),
			})
		}
		return out, nil
	})
}

// Cohorts groups customers by the month of their first order over the full history.
func (s *Service) Cohorts(ctx context.Context) ([]entity.Cohort, error) {
	return run(ctx, s, "cohort_analysis", func(ctx context.Context) ([]entity.Cohort, error) {
		snap, err := s.load(ctx, need{orders: true})
		if err != nil {
			return nil, err
		}
		return analytics.BuildCohorts(ctx, snap.orders)
	})
}
