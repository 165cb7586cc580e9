package models

import "time"

// OrderStatusAccepted is the status every standing order is created with.
// The original workflow never moves an order out of this state.
const OrderStatusAccepted = "Accepted"

// Order is a customer's standing order: one reusable row per customer that
// accumulates purchases over time, not one row per checkout.
type Order struct {
	OrderID    int       `json:"order_id"`
	CustomerID int       `json:"customer_id"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	Deletable
}

// BookOrder is a line item: "this order contains N copies of this book".
// Lines are never physically deleted, only counted down to zero.
type BookOrder struct {
	OrderID int `json:"order_id"`
	BookID  int `json:"book_id"`
	Copies  int `json:"copies"`
	Deletable
}

// OrderLineView is the projection ListUserOrders returns for display.
type OrderLineView struct {
	BookID     int     `json:"book_id"`
	Title      string  `json:"title"`
	AuthorName string  `json:"author_name"`
	Price      float64 `json:"price"`
	ImageURL   string  `json:"image_url"`
	Copies     int     `json:"copies"`
}

const (
	MovementOutgoing = "outgoing"
	MovementIncoming = "incoming"
	MovementRestock  = "restock"
)

// StockMovement is an audit row recorded for every book quantity transition.
type StockMovement struct {
	MovementID   int       `json:"movement_id"`
	BookID       int       `json:"book_id"`
	OrderID      *int      `json:"order_id,omitempty"`
	MovementType string    `json:"movement_type"`
	Change       int       `json:"change"`
	CreatedAt    time.Time `json:"created_at"`
}
