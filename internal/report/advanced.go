package report

import (
	"context"

	"github.com/jekabolt/grbpwr-analytics/internal/analytics"
	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// DefaultForecastMonths is the projection length used when the caller does not pick one.
const DefaultForecastMonths = 6

// Profitability reports revenue, cost and profit per product for the orders of the window.
func (s *Service) Profitability(ctx context.Context, q Query) ([]entity.ProductProfit, error) {
	return run(ctx, s, "profitability", func(ctx context.Context) ([]entity.ProductProfit, error) {
		snap, err := s.load(ctx, need{orders: true, window: q.Window, products: true})
		if err != nil {
			return nil, err
		}
		out, err := analytics.Profitability(analytics.Lines(snap.orders), snap.products)
		if err != nil {
			return nil, err
		}
		if q.Limit > 0 && len(out) > q.Limit {
			out = out[:q.Limit]
		}
		return out, nil
	})
}

// Forecast projects monthly revenue from the configured number of past months.
// An empty history yields an empty projection rather than a run of zeros.
func (s *Service) Forecast(ctx context.Context, months int) (*entity.ForecastReport, error) {
	return run(ctx, s, "forecast", func(ctx context.Context) (*entity.ForecastReport, error) {
		if months == 0 {
			months = DefaultForecastMonths
		}
		if err := analytics.ValidateForecastPeriods(months); err != nil {
			return nil, err
		}
		now := s.Now()
		window := entity.TimeRange{
			From: analytics.BucketStart(now.AddDate(0, -s.c.ForecastHistoryMonths, 0), entity.GranularityMonthly),
			To:   now,
		}
		snap, err := s.load(ctx, need{orders: true, window: window})
		if err != nil {
			return nil, err
		}
		rows, err := analytics.AggregateContext(ctx, snap.orders, bucketOf(entity.GranularityMonthly),
			analytics.Sum("totalRevenue", analytics.OrderRevenue),
			analytics.Count[entity.Order]("orderCount"),
		)
		if err != nil {
			return nil, err
		}
		rows = analytics.SortByKey(rows)

		historical := make([]entity.MonthlyRevenue, 0, len(rows))
		history := make([]decimal.Decimal, 0, len(rows))
		for _, r := range rows {
			historical = append(historical, entity.MonthlyRevenue{
				Period:       r.Key,
				TotalRevenue: r.Value("totalRevenue"),
				OrderCount:   r.Int("orderCount"),
			})
			history = append(history, r.Value("totalRevenue"))
		}
		if len(history) == 0 {
			return &entity.ForecastReport{
				Historical: historical,
				Forecast:   []entity.ForecastPoint{},
				Message:    "no revenue history to project from",
			}, nil
		}

		points, err := analytics.Forecast(history, months, now, s.rnd)
		if err != nil {
			return nil, err
		}
		return &entity.ForecastReport{Historical: historical, Forecast: points}, nil
	})
}

// Comparison compares order count, revenue and average order value of two periods.
// Both periods are read concurrently.
func (s *Service) Comparison(ctx context.Context, p1, p2 entity.TimeRange) (*entity.Comparison, error) {
	return run(ctx, s, "comparison", func(ctx context.Context) (*entity.Comparison, error) {
		var snaps [2]entity.PeriodSnapshot
		g, gctx := errgroup.WithContext(ctx)
		for i, tr := range []entity.TimeRange{p1, p2} {
			g.Go(func() error {
				orders, err := s.orders(gctx, tr)
				if err != nil {
					return err
				}
				snaps[i], err = analytics.SnapshotOf(tr, orders)
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		cmp := analytics.CompareSnapshots(snaps[0], snaps[1])
		return &cmp, nil
	})
}
