package ports

import (
	"context"

	"github.com/sakurakitchen/ordering-system/internal/core/domain"
)

// MenuRepository defines persistence operations for catalog items.
type MenuRepository interface {
	List(ctx context.Context) ([]*domain.MenuItem, error)
	ListByCategory(ctx context.Context, category string) ([]*domain.MenuItem, error)
	FindByID(ctx context.Context, id uint) (*domain.MenuItem, error)
	Create(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error)
	Update(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error)
	Delete(ctx context.Context, id uint) error
}
