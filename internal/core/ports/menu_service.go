package ports

import (
	"context"

	"github.com/sakurakitchen/ordering-system/internal/core/domain"
)

// MenuItemInput carries the writable fields of a catalog item.
type MenuItemInput struct {
	Name        string
	Category    string
	Description string
	Ingredients string
	Price       float64
	Image       string
}

// MenuService defines use-case operations for the catalog.
type MenuService interface {
	ListItems(ctx context.Context) ([]*domain.MenuItem, error)
	ListByCategory(ctx context.Context, category string) ([]*domain.MenuItem, error)
	GetItem(ctx context.Context, id uint) (*domain.MenuItem, error)
	CreateItem(ctx context.Context, input MenuItemInput) (*domain.MenuItem, error)
	UpdateItem(ctx context.Context, id uint, input MenuItemInput) (*domain.MenuItem, error)
	DeleteItem(ctx context.Context, id uint) error
}
