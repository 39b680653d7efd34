package report

import (
	"context"

	"github.com/jekabolt/grbpwr-analytics/internal/analytics"
	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/shopspring/decimal"
)

const (
	defaultTopProducts   = 10
	defaultTopCategories = 10
	defaultPerformance   = 50
)

// ProductSortKeys are the metrics product performance can be ranked by.
var ProductSortKeys = []string{"totalSold", "totalRevenue", "orderCount", "averagePrice", "profitMargin"}

func isPending(o entity.Order) bool   { return o.Status == entity.OrderStatusPending }
func isCancelled(o entity.Order) bool { return o.Status == entity.OrderStatusCancelled }
func isPaid(o entity.Order) bool      { return o.PaymentStatus == entity.PaymentStatusPaid }

func orderSummaryAccumulators() []analytics.Accumulator[entity.Order] {
	return []analytics.Accumulator[entity.Order]{
		analytics.Count[entity.Order]("totalOrders"),
		analytics.Sum("totalRevenue", analytics.OrderRevenue),
		analytics.Avg("averageOrderValue", analytics.OrderRevenue),
		analytics.CountIf("completedOrders", analytics.Delivered),
		analytics.CountIf("pendingOrders", isPending),
		analytics.CountIf("cancelledOrders", isCancelled),
	}
}

func salesSummary(orders []entity.Order) (entity.SalesSummary, error) {
	row, err := analytics.Summarize(orders, orderSummaryAccumulators()...)
	if err != nil {
		return entity.SalesSummary{}, err
	}
	return entity.SalesSummary{
		TotalOrders:       row.Int("totalOrders"),
		TotalRevenue:      row.Value("totalRevenue"),
		AverageOrderValue: row.Value("averageOrderValue").Round(2),
		CompletedOrders:   row.Int("completedOrders"),
		PendingOrders:     row.Int("pendingOrders"),
		CancelledOrders:   row.Int("cancelledOrders"),
	}, nil
}

func bucketOf(g entity.Granularity) func(entity.Order) string {
	return func(o entity.Order) string {
		return analytics.BucketKey(o.CreatedAt, g)
	}
}

func timeSeries(orders []entity.Order, g entity.Granularity, window entity.TimeRange) ([]entity.TimeSeriesPoint, error) {
	rows, err := analytics.Aggregate(orders, bucketOf(g),
		analytics.Count[entity.Order]("orders"),
		analytics.Sum("revenue", analytics.OrderRevenue),
		analytics.Avg("averageOrderValue", analytics.OrderRevenue),
	)
	if err != nil {
		return nil, err
	}
	rows = analytics.FillGaps(analytics.SortByKey(rows), window, g)
	points := make([]entity.TimeSeriesPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, entity.TimeSeriesPoint{
			Period:            r.Key,
			Orders:            r.Int("orders"),
			Revenue:           r.Value("revenue"),
			AverageOrderValue: r.Value("averageOrderValue").Round(2),
		})
	}
	return points, nil
}

// productSales aggregates lines per product and resolves the product fields.
// Lines of unknown products are dropped.
func productSales(lines []analytics.Line, products []entity.Product) ([]analytics.Row, error) {
	rows, err := analytics.Aggregate(lines,
		func(l analytics.Line) string { return l.ProductID },
		analytics.Sum("totalSold", analytics.LineQuantity),
		analytics.Sum("totalRevenue", analytics.LineRevenue),
		analytics.Count[analytics.Line]("orderCount"),
		analytics.Avg("averagePrice", analytics.LinePrice),
	)
	if err != nil {
		return nil, err
	}
	return analytics.Enrich(rows, analytics.Join{
		Ref:    analytics.ByKey,
		Table:  productTable(products),
		Fields: []string{"name", "sku", "categoryId", "currentPrice", "profitMargin"},
	}), nil
}

func toProductSales(rows []analytics.Row) []entity.ProductSales {
	out := make([]entity.ProductSales, 0, len(rows))
	for _, r := range rows {
		out = append(out, entity.ProductSales{
			ProductID:    r.Key,
			ProductName:  r.Attr("name"),
			SKU:          r.Attr("sku"),
			CategoryID:   r.Attr("categoryId"),
			TotalSold:    r.Int("totalSold"),
			TotalRevenue: r.Value("totalRevenue"),
			OrderCount:   r.Int("orderCount"),
			AveragePrice: r.Value("averagePrice").Round(2),
			CurrentPrice: r.Value("currentPrice"),
			ProfitMargin: r.Value("profitMargin"),
		})
	}
	return out
}

func rankedProducts(orders []entity.Order, products []entity.Product, metric string, limit int) ([]entity.ProductSales, error) {
	rows, err := productSales(analytics.Lines(orders), products)
	if err != nil {
		return nil, err
	}
	top, err := analytics.TopN(rows, metric, limit)
	if err != nil {
		return nil, err
	}
	return toProductSales(top), nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// Sales returns the order summary, the order time series and the best selling products of the window.
func (s *Service) Sales(ctx context.Context, q Query) (*entity.SalesReport, error) {
	return run(ctx, s, "sales", func(ctx context.Context) (*entity.SalesReport, error) {
		snap, err := s.load(ctx, need{orders: true, window: q.Window, products: true})
		if err != nil {
			return nil, err
		}
		summary, err := salesSummary(snap.orders)
		if err != nil {
			return nil, err
		}
		g := q.Granularity
		if g == "" {
			g = entity.GranularityMonthly
		}
		chart, err := timeSeries(snap.orders, g, q.Window)
		if err != nil {
			return nil, err
		}
		top, err := rankedProducts(snap.orders, snap.products, "totalSold", orDefault(q.Limit, defaultTopProducts))
		if err != nil {
			return nil, err
		}
		return &entity.SalesReport{
			Summary:     summary,
			ChartData:   chart,
			TopProducts: top,
		}, nil
	})
}

// Revenue returns the daily realized revenue and the paid revenue per payment method.
func (s *Service) Revenue(ctx context.Context, q Query) (*entity.RevenueReport, error) {
	return run(ctx, s, "revenue", func(ctx context.Context) (*entity.RevenueReport, error) {
		snap, err := s.load(ctx, need{orders: true, window: q.Window})
		if err != nil {
			return nil, err
		}
		daily, err := timeSeries(analytics.FilterOrders(snap.orders, analytics.RevenueBearing), entity.GranularityDaily, q.Window)
		if err != nil {
			return nil, err
		}

		rows, err := analytics.Aggregate(analytics.FilterOrders(snap.orders, isPaid),
			func(o entity.Order) string { return o.PaymentMethod },
			analytics.Sum("revenue", analytics.OrderRevenue),
			analytics.Count[entity.Order]("count"),
		)
		if err != nil {
			return nil, err
		}
		rows = analytics.SortDesc(rows, "revenue")
		methods := make([]entity.PaymentMethodRevenue, 0, len(rows))
		for _, r := range rows {
			methods = append(methods, entity.PaymentMethodRevenue{
				PaymentMethod: r.Key,
				Revenue:       r.Value("revenue"),
				Count:         r.Int("count"),
			})
		}
		return &entity.RevenueReport{
			DailyRevenue:           daily,
			PaymentMethodBreakdown: methods,
		}, nil
	})
}

// ProductPerformance ranks products of delivered orders by q.SortBy.
func (s *Service) ProductPerformance(ctx context.Context, q Query) ([]entity.ProductSales, error) {
	return run(ctx, s, "product_performance", func(ctx context.Context) ([]entity.ProductSales, error) {
		snap, err := s.load(ctx, need{orders: true, window: q.Window, products: true})
		if err != nil {
			return nil, err
		}
		sortBy := q.SortBy
		if sortBy == "" {
			sortBy = "totalRevenue"
		}
		return rankedProducts(analytics.FilterOrders(snap.orders, analytics.Delivered), snap.products, sortBy, orDefault(q.Limit, defaultPerformance))
	})
}

// TopSellingProducts ranks products of delivered orders by units sold.
func (s *Service) TopSellingProducts(ctx context.Context, q Query) ([]entity.ProductSales, error) {
	return run(ctx, s, "top_selling_products", func(ctx context.Context) ([]entity.ProductSales, error) {
		snap, err := s.load(ctx, need{orders: true, window: q.Window, products: true})
		if err != nil {
			return nil, err
		}
		return rankedProducts(analytics.FilterOrders(snap.orders, analytics.Delivered), snap.products, "totalSold", orDefault(q.Limit, defaultTopProducts))
	})
}

type productLine = analytics.Joined[analytics.Line, entity.Product]

func categorySales(orders []entity.Order, products []entity.Product, categories []entity.Category) ([]analytics.Row, error) {
	joined := analytics.JoinRecords(analytics.Lines(orders),
		func(l analytics.Line) string { return l.ProductID },
		analytics.IndexBy(products, productID),
		false,
	)
	rows, err := analytics.Aggregate(joined,
		func(j productLine) string { return j.Ref.CategoryID },
		analytics.Sum("totalSold", func(j productLine) decimal.Decimal { return analytics.LineQuantity(j.Record) }),
		analytics.Sum("totalRevenue", func(j productLine) decimal.Decimal { return j.Record.TotalPrice }),
		analytics.Count[productLine]("orderCount"),
	)
	if err != nil {
		return nil, err
	}
	return analytics.Enrich(rows, analytics.Join{
		Ref:    analytics.ByKey,
		Table:  categoryTable(categories),
		Fields: []string{"categoryName"},
	}), nil
}

func toCategorySales(rows []analytics.Row) []entity.CategorySales {
	out := make([]entity.CategorySales, 0, len(rows))
	for _, r := range rows {
		out = append(out, entity.CategorySales{
			CategoryID:   r.Key,
			CategoryName: r.Attr("categoryName"),
			TotalSold:    r.Int("totalSold"),
			TotalRevenue: r.Value("totalRevenue"),
			OrderCount:   r.Int("orderCount"),
		})
	}
	return out
}

// SalesByCategory totals delivered sales per category, highest revenue first.
func (s *Service) SalesByCategory(ctx context.Context, q Query) ([]entity.CategorySales, error) {
	return run(ctx, s, "sales_by_category", func(ctx context.Context) ([]entity.CategorySales, error) {
		snap, err := s.load(ctx, need{orders: true, window: q.Window, products: true, categories: true})
		if err != nil {
			return nil, err
		}
		rows, err := categorySales(analytics.FilterOrders(snap.orders, analytics.Delivered), snap.products, snap.categories)
		if err != nil {
			return nil, err
		}
		return toCategorySales(analytics.SortDesc(rows, "totalRevenue")), nil
	})
}

// TopCategories ranks categories by the sales of all orders in the window.
func (s *Service) TopCategories(ctx context.Context, q Query) ([]entity.CategorySales, error) {
	return run(ctx, s, "top_categories", func(ctx context.Context) ([]entity.CategorySales, error) {
		snap, err := s.load(ctx, need{orders: true, window: q.Window, products: true, categories: true})
		if err != nil {
			return nil, err
		}
		rows, err := categorySales(snap.orders, snap.products, snap.categories)
		if err != nil {
			return nil, err
		}
		top, err := analytics.TopN(rows, "totalRevenue", orDefault(q.Limit, defaultTopCategories))
		if err != nil {
			return nil, err
		}
		return toCategorySales(top), nil
	})
}
