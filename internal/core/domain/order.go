package domain

import (
	"errors"
	"fmt"
	"time"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// validTransitions defines the allowed state machine transitions.
// completed and cancelled are terminal.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusCompleted, StatusCancelled},
}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a recognized order status.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// TotalEpsilon is the rounding tolerance when comparing a client-submitted
// total against the server-computed one.
const TotalEpsilon = 0.01

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrEmptyOrder        = errors.New("order must contain at least one item")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrUnknownMenuItem   = errors.New("unknown menu item")
)

// TotalMismatchError is returned when the client-claimed total does not match
// the total recomputed from authoritative catalog prices.
type TotalMismatchError struct {
	Expected  float64
	Submitted float64
}

func (e *TotalMismatchError) Error() string {
	return fmt.Sprintf("order total mismatch: expected %.2f, got %.2f", e.Expected, e.Submitted)
}

// OrderItem is a single order line. UnitPrice snapshots the catalog price at
// order-creation time so later menu changes never rewrite history.
type OrderItem struct {
	ID         uint    `json:"id"`
	OrderID    uint    `json:"order_id"`
	MenuItemID uint    `json:"menu_item_id"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
}

// Order is a customer's purchase request with a server-verified total.
type Order struct {
	ID        uint        `json:"id"`
	UserID    uint        `json:"user_id"`
	Status    OrderStatus `json:"status"`
	Total     float64     `json:"total"`
	Items     []OrderItem `json:"items"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
