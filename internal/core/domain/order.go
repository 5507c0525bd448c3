package domain

import "time"

// OrderStatus is the lifecycle state of a placed order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists every valid status, in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled,
}

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// RestoresStock reports whether deleting an order in this status returns
// its quantities to inventory. Shipped and delivered orders already left
// the warehouse; cancelled ones never held stock.
func (s OrderStatus) RestoresStock() bool {
	return s == OrderPending || s == OrderConfirmed
}

// OrderItem is one priced line of a placed order, denormalised by the
// backend at commit time so later product edits do not rewrite history.
type OrderItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

// Order is a committed order as served by the backend.
type Order struct {
	ID            string      `json:"id"`
	OrderNumber   string      `json:"order_number"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	Items         []OrderItem `json:"items"`
	TotalAmount   float64     `json:"total_amount"`
	Status        OrderStatus `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// DraftItem is one (product, quantity) pair of a draft order.
type DraftItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// DraftOrder is the payload submitted to create an order. Items is never
// empty at submit time; the server remains the final authority on stock
// availability at commit time.
type DraftOrder struct {
	CustomerName  string      `json:"customer_name"  validate:"required"`
	CustomerEmail string      `json:"customer_email" validate:"required"`
	Items         []DraftItem `json:"items"`
}
