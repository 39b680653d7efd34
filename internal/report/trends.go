package report

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jekabolt/grbpwr-analytics/internal/analytics"
	"github.com/jekabolt/grbpwr-analytics/internal/entity"
)

// OrderTrends buckets the orders of the window by q.Granularity, daily by default.
// Empty buckets inside the window are reported as zero.
func (s *Service) OrderTrends(ctx context.Context, q Query) ([]entity.OrderTrend, error) {
	return run(ctx, s, "order_trends", func(ctx context.Context) ([]entity.OrderTrend, error) {
		snap, err := s.load(ctx, need{orders: true, window: q.Window})
		if err != nil {
			return nil, err
		}
		g := q.Granularity
		if g == "" {
			g = entity.GranularityDaily
		}
		rows, err := analytics.AggregateContext(ctx, snap.orders, bucketOf(g), orderSummaryAccumulators()...)
		if err != nil {
			return nil, err
		}
		rows = analytics.FillGaps(analytics.SortByKey(rows), q.Window, g)
		out := make([]entity.OrderTrend, 0, len(rows))
		for _, r := range rows {
			out = append(out, entity.OrderTrend{
				Period:            r.Key,
				TotalOrders:       r.Int("totalOrders"),
				TotalRevenue:      r.Value("totalRevenue"),
				AverageOrderValue: r.Value("averageOrderValue").Round(2),
				CompletedOrders:   r.Int("completedOrders"),
				CancelledOrders:   r.Int("cancelledOrders"),
			})
		}
		return out, nil
	})
}

// SeasonalTrends folds orders of every year onto their calendar month.
// Months without orders are omitted.
func (s *Service) SeasonalTrends(ctx context.Context, q Query) ([]entity.SeasonalTrend, error) {
	return run(ctx, s, "seasonal_trends", func(ctx context.Context) ([]entity.SeasonalTrend, error) {
		snap, err := s.load(ctx, need{orders: true, window: q.Window})
		if err != nil {
			return nil, err
		}
		rows, err := analytics.AggregateContext(ctx, snap.orders,
			func(o entity.Order) string { return fmt.Sprintf("%02d", int(o.CreatedAt.UTC().Month())) },
			orderSummaryAccumulators()[:3]...,
		)
		if err != nil {
			return nil, err
		}
		rows = analytics.SortByKey(rows)
		out := make([]entity.SeasonalTrend, 0, len(rows))
		for _, r := range rows {
			m, err := strconv.Atoi(r.Key)
			if err != nil {
				return nil, fmt.Errorf("seasonal month key %q: %w", r.Key, err)
			}
			out = append(out, entity.SeasonalTrend{
				Month:             m,
				MonthName:         time.Month(m).String(),
				TotalOrders:       r.Int("totalOrders"),
				TotalRevenue:      r.Value("totalRevenue"),
				AverageOrderValue: r.Value("averageOrderValue").Round(2),
			})
		}
		return out, nil
	})
}

func periodTotals(orders []entity.Order) (entity.PeriodTotals, error) {
	row, err := analytics.Summarize(orders, orderSummaryAccumulators()[:2]...)
	if err != nil {
		return entity.PeriodTotals{}, err
	}
	return entity.PeriodTotals{
		Orders:  row.Int("totalOrders"),
		Revenue: row.Value("totalRevenue"),
	}, nil
}

// Dashboard reports the orders of today and of the current month next to the catalog and customer counts.
// Days and months start at UTC midnight.
func (s *Service) Dashboard(ctx context.Context) (*entity.DashboardStats, error) {
	return run(ctx, s, "dashboard", func(ctx context.Context) (*entity.DashboardStats, error) {
		now := s.Now()
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

		snap, err := s.load(ctx, need{
			orders:    true,
			window:    entity.TimeRange{From: monthStart, To: now},
			products:  true,
			customers: true,
		})
		if err != nil {
			return nil, err
		}
		month, err := periodTotals(snap.orders)
		if err != nil {
			return nil, err
		}
		today, err := periodTotals(analytics.FilterOrders(snap.orders, analytics.InWindow(entity.TimeRange{From: dayStart, To: now})))
		if err != nil {
			return nil, err
		}
		lowStock := 0
		for i := range snap.products {
			if snap.products[i].IsLowStock() {
				lowStock++
			}
		}
		return &entity.DashboardStats{
			Today:         today,
			Month:         month,
			TotalProducts: len(snap.products),
			LowStock:      lowStock,
			Customers:     len(snap.customers),
		}, nil
	})
}
