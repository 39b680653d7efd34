package analytics

import (
	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/shopspring/decimal"
)

// Margin is profit / revenue in percent, zero when there is no revenue.
func Margin(profit, revenue decimal.Decimal) decimal.Decimal {
	if revenue.IsZero() {
		return decimal.Zero
	}
	return profit.Div(revenue).Mul(hundred).Round(2)
}

type costedLine = Joined[Line, entity.Product]

// Profitability computes revenue, cost and profit per product from sold lines.
// Lines whose product is unknown are dropped. Results are ordered by profit descending.
func Profitability(lines []Line, products []entity.Product) ([]entity.ProductProfit, error) {
	joined := JoinRecords(lines, func(l Line) string { return l.ProductID }, IndexBy(products, func(p entity.Product) string { return p.ID }), false)

	rows, err := Aggregate(joined,
		func(j costedLine) string { return j.Record.ProductID },
		Sum("unitsSold", func(j costedLine) decimal.Decimal { return LineQuantity(j.Record) }),
		Sum("totalRevenue", func(j costedLine) decimal.Decimal {
			return j.Record.Price.Mul(decimal.NewFromInt(int64(j.Record.Quantity)))
		}),
		Sum("totalCost", func(j costedLine) decimal.Decimal {
			return j.Ref.CostPrice.Mul(decimal.NewFromInt(int64(j.Record.Quantity)))
		}),
	)
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		r.Set("totalProfit", r.Value("totalRevenue").Sub(r.Value("totalCost")))
	}

	rows = Enrich(rows, Join{
		Ref:    ByKey,
		Table:  productTable(products),
		Fields: []string{"name", "sku"},
	})

	rows = SortDesc(rows, "totalProfit")
	out := make([]entity.ProductProfit, 0, len(rows))
	for _, r := range rows {
		out = append(out, entity.ProductProfit{
			ProductID:    r.Key,
			ProductName:  r.Attr("name"),
			SKU:          r.Attr("sku"),
			UnitsSold:    r.Int("unitsSold"),
			TotalRevenue: r.Value("totalRevenue"),
			TotalCost:    r.Value("totalCost"),
			TotalProfit:  r.Value("totalProfit"),
			ProfitMargin: Margin(r.Value("totalProfit"), r.Value("totalRevenue")),
		})
	}
	return out, nil
}

func productTable(products []entity.Product) Table {
	return TableOf(products, func(p entity.Product) string { return p.ID }, ProductReference)
}

// ProductReference exposes product fields for Enrich.
func ProductReference(p entity.Product) Reference {
	return Reference{
		Attrs: map[string]string{
			"name":       p.Name,
			"sku":        p.SKU,
			"categoryId": p.CategoryID,
		},
		Values: map[string]decimal.Decimal{
			"currentPrice":  p.Price,
			"costPrice":     p.CostPrice,
			"profitMargin":  p.Markup(),
			"stockQuantity": decimal.NewFromInt(int64(p.StockQuantity)),
		},
	}
}
