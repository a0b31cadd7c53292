package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sakurakitchen/ordering-system/internal/core/domain"
	"github.com/sakurakitchen/ordering-system/internal/core/ports"
)

// MenuCache invalidates cached menu reads after admin writes.
type MenuCache interface {
	Invalidate(ctx context.Context) error
}

// MenuService implements catalog use cases. Reads are public; writes are
// admin-gated at the route level and invalidate the read cache.
type MenuService struct {
	repo   ports.MenuRepository
	cache  MenuCache
	logger zerolog.Logger
}

func NewMenuService(repo ports.MenuRepository, cache MenuCache, logger zerolog.Logger) *MenuService {
	return &MenuService{repo: repo, cache: cache, logger: logger}
}

func (s *MenuService) ListItems(ctx context.Context) ([]*domain.MenuItem, error) {
	return s.repo.List(ctx)
}

func (s *MenuService) ListByCategory(ctx context.Context, category string) ([]*domain.MenuItem, error) {
	return s.repo.ListByCategory(ctx, category)
}

func (s *MenuService) GetItem(ctx context.Context, id uint) (*domain.MenuItem, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *MenuService) CreateItem(ctx context.Context, input ports.MenuItemInput) (*domain.MenuItem, error) {
	if err := validateMenuInput(input); err != nil {
		return nil, err
	}

	item := &domain.MenuItem{
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		Ingredients: input.Ingredients,
		Price:       input.Price,
		Image:       input.Image,
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Uint("menu_item_id", created.ID).Str("name", created.Name).Msg("menu item created")
	s.invalidate(ctx)
	return created, nil
}

// UpdateItem rewrites the catalog entry. Existing order lines keep their
// snapshot prices; a price change here only affects future orders.
func (s *MenuService) UpdateItem(ctx context.Context, id uint, input ports.MenuItemInput) (*domain.MenuItem, error) {
	if err := validateMenuInput(input); err != nil {
		return nil, err
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Name = input.Name
	item.Category = input.Category
	item.Description = input.Description
	item.Ingredients = input.Ingredients
	item.Price = input.Price
	item.Image = input.Image

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Uint("menu_item_id", id).Msg("menu item updated")
	s.invalidate(ctx)
	return updated, nil
}

func (s *MenuService) DeleteItem(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Uint("menu_item_id", id).Msg("menu item deleted")
	s.invalidate(ctx)
	return nil
}

func (s *MenuService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate menu cache")
	}
}

func validateMenuInput(input ports.MenuItemInput) error {
	if input.Price <= 0 {
		return domain.ErrInvalidPrice
	}
	if !domain.ValidCategory(input.Category) {
		return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, input.Category)
	}
	return nil
}
