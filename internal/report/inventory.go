package report

import (
	"context"

	"github.com/jekabolt/grbpwr-analytics/internal/analytics"
	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/shopspring/decimal"
)

func stockValue(p entity.Product) decimal.Decimal { return p.StockValue() }
func productPrice(p entity.Product) decimal.Decimal { return p.Price }
func stockQuantity(p entity.Product) decimal.Decimal {
	return decimal.NewFromInt(int64(p.StockQuantity))
}

// Inventory totals the current catalog stock and breaks it down per category.
// Products without a known category are left out of the breakdown only.
func (s *Service) Inventory(ctx context.Context) (*entity.InventoryReport, error) {
	return run(ctx, s, "inventory", func(ctx context.Context) (*entity.InventoryReport, error) {
		snap, err := s.load(ctx, need{products: true, categories: true})
		if err != nil {
			return nil, err
		}
		summary, err := analytics.Summarize(snap.products,
			analytics.Count[entity.Product]("totalProducts"),
			analytics.Sum("totalValue", stockValue),
			analytics.Avg("averagePrice", productPrice),
			analytics.CountIf("lowStockItems", func(p entity.Product) bool { return p.IsLowStock() }),
			analytics.CountIf("outOfStockItems", func(p entity.Product) bool { return p.IsOutOfStock() }),
			analytics.Sum("totalStock", stockQuantity),
		)
		if err != nil {
			return nil, err
		}

		rows, err := analytics.Aggregate(snap.products,
			func(p entity.Product) string { return p.CategoryID },
			analytics.Count[entity.Product]("productCount"),
			analytics.Sum("totalValue", stockValue),
		)
		if err != nil {
			return nil, err
		}
		rows = analytics.Enrich(rows, analytics.Join{
			Ref:    analytics.ByKey,
			Table:  categoryTable(snap.categories),
			Fields: []string{"categoryName"},
		})
		rows = analytics.SortDesc(rows, "productCount")
		breakdown := make([]entity.CategoryStock, 0, len(rows))
		for _, r := range rows {
			breakdown = append(breakdown, entity.CategoryStock{
				CategoryID:   r.Key,
				CategoryName: r.Attr("categoryName"),
				ProductCount: r.Int("productCount"),
				TotalValue:   r.Value("totalValue"),
			})
		}

		return &entity.InventoryReport{
			Summary: entity.InventorySummary{
				TotalProducts:   summary.Int("totalProducts"),
				TotalValue:      summary.Value("totalValue"),
				AveragePrice:    summary.Value("averagePrice").Round(2),
				LowStockItems:   summary.Int("lowStockItems"),
				OutOfStockItems: summary.Int("outOfStockItems"),
				TotalStock:      summary.Int("totalStock"),
			},
			CategoryBreakdown: breakdown,
		}, nil
	})
}

// InventoryTurnover relates the units each catalog product sold in the window to its current stock.
// Products without stock or without sales have a zero rate.
func (s *Service) InventoryTurnover(ctx context.Context, q Query) ([]entity.InventoryTurnover, error) {
	return run(ctx, s, "inventory_turnover", func(ctx context.Context) ([]entity.InventoryTurnover, error) {
		snap, err := s.load(ctx, need{orders: true, window: q.Window, products: true})
		if err != nil {
			return nil, err
		}
		soldRows, err := analytics.Aggregate(analytics.Lines(snap.orders),
			func(l analytics.Line) string { return l.ProductID },
			analytics.Sum("soldQuantity", analytics.LineQuantity),
		)
		if err != nil {
			return nil, err
		}
		sold := analytics.IndexBy(soldRows, analytics.ByKey)

		// every catalog product gets a row so unsold stock shows up with a zero rate
		rows := make([]analytics.Row, 0, len(snap.products))
		for _, p := range snap.products {
			r := analytics.NewRow(p.ID)
			r.Set("soldQuantity", sold[p.ID].Value("soldQuantity"))
			rows = append(rows, r)
		}
		rows = analytics.Enrich(rows, analytics.Join{
			Ref:    analytics.ByKey,
			Table:  productTable(snap.products),
			Fields: []string{"name", "sku", "stockQuantity"},
		})
		for _, r := range rows {
			rate := decimal.Zero
			if stock := r.Value("stockQuantity"); stock.IsPositive() {
				rate = r.Value("soldQuantity").Div(stock).Round(2)
			}
			r.Set("turnoverRate", rate)
		}
		rows = analytics.SortDesc(rows, "turnoverRate")
		if q.Limit > 0 && len(rows) > q.Limit {
			rows = rows[:q.Limit]
		}

		out := make([]entity.InventoryTurnover, 0, len(rows))
		for _, r := range rows {
			out = append(out, entity.InventoryTurnover{
				ProductID:    r.Key,
				ProductName:  r.Attr("name"),
				SKU:          r.Attr("sku"),
				CurrentStock: r.Int("stockQuantity"),
				SoldQuantity: r.Int("soldQuantity"),
				TurnoverRate: r.Value("turnoverRate"),
			})
		}
		return out, nil
	})
}
