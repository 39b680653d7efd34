package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/shopspring/decimal"
)

type orderRow struct {
	ID            string          `db:"id"`
	CustomerID    string          `db:"customer_id"`
	CreatedAt     time.Time       `db:"created_at"`
	Status        string          `db:"order_status"`
	PaymentStatus string          `db:"payment_status"`
	PaymentMethod string          `db:"payment_method"`
	TotalPrice    decimal.Decimal `db:"total_price"`
}

type itemRow struct {
	OrderID   string          `db:"order_id"`
	ProductID string          `db:"product_id"`
	Quantity  int             `db:"quantity"`
	Price     decimal.Decimal `db:"price"`
}

// periodFilter renders the created_at conditions of period. Open bounds add no condition.
func periodFilter(column string, period entity.TimeRange) (string, map[string]any) {
	var conds []string
	params := map[string]any{}
	if !period.From.IsZero() {
		conds = append(conds, column+" >= :from")
		params["from"] = period.From.UTC()
	}
	if !period.To.IsZero() {
		conds = append(conds, column+" <= :to")
		params["to"] = period.To.UTC()
	}
	if len(conds) == 0 {
		return "", params
	}
	return " WHERE " + strings.Join(conds, " AND "), params
}

// ListOrders returns the orders created inside period with their items, oldest first.
// Orders with an unknown status are kept with the stored status and logged.
func (ms *MYSQLStore) ListOrders(ctx context.Context, period entity.TimeRange) ([]entity.Order, error) {
	where, params := periodFilter("co.created_at", period)

	orderRows, err := QueryListNamed[orderRow](ctx, ms.db, `
		SELECT co.id, co.customer_id, co.created_at, co.order_status, co.payment_status, co.payment_method, co.total_price
		FROM customer_order co`+where+`
		ORDER BY co.created_at, co.id`, params)
	if err != nil {
		return nil, fmt.Errorf("can't list orders: %w", err)
	}
	if len(orderRows) == 0 {
		return []entity.Order{}, nil
	}

	itemRows, err := QueryListNamed[itemRow](ctx, ms.db, `
		SELECT oi.order_id, oi.product_id, oi.quantity, oi.price
		FROM order_item oi
		JOIN customer_order co ON co.id = oi.order_id`+where+`
		ORDER BY oi.order_id, oi.id`, params)
	if err != nil {
		return nil, fmt.Errorf("can't list order items: %w", err)
	}
	items := make(map[string][]entity.OrderItem, len(orderRows))
	for _, it := range itemRows {
		items[it.OrderID] = append(items[it.OrderID], entity.NewOrderItem(it.OrderID, it.ProductID, it.Quantity, it.Price))
	}

	orders := make([]entity.Order, 0, len(orderRows))
	for _, r := range orderRows {
		status, err := entity.ParseOrderStatus(r.Status)
		if err != nil {
			slog.Default().WarnContext(ctx, "unknown order status",
				slog.String("order_id", r.ID),
				slog.String("status", r.Status),
			)
			status = entity.OrderStatus(strings.ToLower(r.Status))
		}
		orders = append(orders, entity.Order{
			ID:            r.ID,
			CustomerID:    r.CustomerID,
			CreatedAt:     r.CreatedAt.UTC(),
			Status:        status,
			PaymentStatus: entity.PaymentStatus(strings.ToLower(r.PaymentStatus)),
			PaymentMethod: r.PaymentMethod,
			TotalPrice:    r.TotalPrice,
			Items:         items[r.ID],
		})
	}
	return orders, nil
}

// ListProducts returns the whole catalog. Products without a category have an empty CategoryID.
func (ms *MYSQLStore) ListProducts(ctx context.Context) ([]entity.Product, error) {
	products, err := QueryListNamed[entity.Product](ctx, ms.db, `
		SELECT id, name, sku, price, cost_price, COALESCE(category_id, '') AS category_id,
			stock_quantity, low_stock_threshold
		FROM product
		ORDER BY id`, nil)
	if err != nil {
		return nil, fmt.Errorf("can't list products: %w", err)
	}
	return products, nil
}

func (ms *MYSQLStore) ListCategories(ctx context.Context) ([]entity.Category, error) {
	categories, err := QueryListNamed[entity.Category](ctx, ms.db, `SELECT id, name FROM category ORDER BY id`, nil)
	if err != nil {
		return nil, fmt.Errorf("can't list categories: %w", err)
	}
	return categories, nil
}

func (ms *MYSQLStore) ListCustomers(ctx context.Context) ([]entity.Customer, error) {
	customers, err := QueryListNamed[entity.Customer](ctx, ms.db, `SELECT id, name, email, created_at FROM customer ORDER BY id`, nil)
	if err != nil {
		return nil, fmt.Errorf("can't list customers: %w", err)
	}
	return customers, nil
}
