package ports

import (
	"context"

	"github.com/sakurakitchen/ordering-system/internal/core/domain"
)

// OrderLineInput is a single requested line. Any client-supplied price is
// ignored; the catalog is the only price authority.
type OrderLineInput struct {
	MenuItemID uint
	Quantity   int
}

// CreateOrderInput carries the client's cart plus its claimed total. The
// total is cross-checked against catalog prices before anything persists.
type CreateOrderInput struct {
	UserID uint
	Lines  []OrderLineInput
	Total  float64
}

// OrderService defines use-case operations for orders.
type OrderService interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	// GetOrder enforces ownership: customers see only their own orders,
	// admins see any.
	GetOrder(ctx context.Context, id uint, requesterID uint, role domain.Role) (*domain.Order, error)
	ListAllOrders(ctx context.Context) ([]*domain.Order, error)
	ListUserOrders(ctx context.Context, userID uint) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id uint, status domain.OrderStatus) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id uint) error
}
