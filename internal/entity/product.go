package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry together with its stock levels.
type Product struct {
	ID                string          `db:"id" json:"id"`
	Name              string          `db:"name" json:"name"`
	SKU               string          `db:"sku" json:"sku"`
	Price             decimal.Decimal `db:"price" json:"price"`
	CostPrice         decimal.Decimal `db:"cost_price" json:"costPrice"`
	CategoryID        string          `db:"category_id" json:"categoryId"`
	StockQuantity     int             `db:"stock_quantity" json:"stockQuantity"`
	LowStockThreshold int             `db:"low_stock_threshold" json:"lowStockThreshold"`
}

// Markup is (price - cost) / cost in percent, zero when the cost is unknown.
func (p *Product) Markup() decimal.Decimal {
	if p.CostPrice.IsZero() {
		return decimal.Zero
	}
	return p.Price.Sub(p.CostPrice).Div(p.CostPrice).Mul(decimal.NewFromInt(100)).Round(2)
}

// StockValue is the retail value of the units on hand.
func (p *Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.StockQuantity)))
}

// IsLowStock reports whether the stock reached the reorder threshold.
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.LowStockThreshold
}

// IsOutOfStock reports whether no units are left.
func (p *Product) IsOutOfStock() bool {
	return p.StockQuantity == 0
}

// Category groups products.
type Category struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Customer is a buyer account.
type Customer struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
