package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
	OrderStatusReturned   OrderStatus = "returned"
)

var orderStatuses = map[string]OrderStatus{
	"pending":    OrderStatusPending,
	"confirmed":  OrderStatusConfirmed,
	"processing": OrderStatusProcessing,
	"shipped":    OrderStatusShipped,
	"delivered":  OrderStatusDelivered,
	"cancelled":  OrderStatusCancelled,
	"canceled":   OrderStatusCancelled,
	"refunded":   OrderStatusRefunded,
	"returned":   OrderStatusReturned,
}

// ParseOrderStatus maps a stored status string to its canonical value.
// The legacy spelling "canceled" is accepted as cancelled.
func ParseOrderStatus(s string) (OrderStatus, error) {
	st, ok := orderStatuses[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("unknown order status %q", s)
	}
	return st, nil
}

// IsCompleted reports whether the order reached the customer.
func (s OrderStatus) IsCompleted() bool {
	return s == OrderStatusDelivered
}

// IsRevenueBearing reports whether the order counts towards realized revenue.
func (s OrderStatus) IsRevenueBearing() bool {
	return s == OrderStatusShipped || s == OrderStatusDelivered
}

// IsOpen reports whether the order is still waiting to be fulfilled.
func (s OrderStatus) IsOpen() bool {
	return s == OrderStatusPending || s == OrderStatusConfirmed || s == OrderStatusProcessing
}

// PaymentStatus is the settlement state of an order payment.
type PaymentStatus string

const (
	PaymentStatusPending           PaymentStatus = "pending"
	PaymentStatusPaid              PaymentStatus = "paid"
	PaymentStatusFailed            PaymentStatus = "failed"
	PaymentStatusRefunded          PaymentStatus = "refunded"
	PaymentStatusPartiallyRefunded PaymentStatus = "partially_refunded"
)

// Order is a customer purchase with its line items.
type Order struct {
	ID            string          `db:"id" json:"id"`
	CustomerID    string          `db:"customer_id" json:"customerId"`
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
	Status        OrderStatus     `db:"order_status" json:"status"`
	PaymentStatus PaymentStatus   `db:"payment_status" json:"paymentStatus"`
	PaymentMethod string          `db:"payment_method" json:"paymentMethod"`
	TotalPrice    decimal.Decimal `db:"total_price" json:"totalPrice"`
	Items         []OrderItem     `db:"-" json:"items"`
}

// Revenue is the sum of the line item totals.
// Reports use it instead of TotalPrice so one report never mixes both.
func (o *Order) Revenue() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.TotalPrice)
	}
	return sum
}

// Units is the number of items in the order.
func (o *Order) Units() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

// OrderItem is a single product line of an order.
type OrderItem struct {
	OrderID    string          `db:"order_id" json:"orderId"`
	ProductID  string          `db:"product_id" json:"productId"`
	Quantity   int             `db:"quantity" json:"quantity"`
	Price      decimal.Decimal `db:"price" json:"price"`
	TotalPrice decimal.Decimal `db:"total_price" json:"totalPrice"`
}

// NewOrderItem builds an item whose total is quantity times unit price.
func NewOrderItem(orderID, productID string, quantity int, price decimal.Decimal) OrderItem {
	return OrderItem{
		OrderID:    orderID,
		ProductID:  productID,
		Quantity:   quantity,
		Price:      price,
		TotalPrice: price.Mul(decimal.NewFromInt(int64(quantity))),
	}
}
