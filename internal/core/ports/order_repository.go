package ports

import (
	"context"

	"github.com/sakurakitchen/ordering-system/internal/core/domain"
)

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	// Create persists the order and its line items atomically. A failure
	// leaves no partial rows behind.
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	ListAll(ctx context.Context) ([]*domain.Order, error)
	ListByUser(ctx context.Context, userID uint) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id uint, status domain.OrderStatus) (*domain.Order, error)
	Delete(ctx context.Context, id uint) error
}
