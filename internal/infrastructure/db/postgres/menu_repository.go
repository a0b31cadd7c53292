package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sakurakitchen/ordering-system/internal/core/domain"
	"github.com/sakurakitchen/ordering-system/internal/core/ports"
)

type MenuRepository struct {
	store *Store
}

var _ ports.MenuRepository = (*MenuRepository)(nil)

func NewMenuRepository(store *Store) *MenuRepository {
	return &MenuRepository{store: store}
}

func (r *MenuRepository) List(ctx context.Context) ([]*domain.MenuItem, error) {
	ctx, cancel := r.store.callCtx(ctx)
	defer cancel()

	var recs []menuItemRecord
	if err := r.store.db.WithContext(ctx).Order("category, name").Find(&recs).Error; err != nil {
		return nil, storeErr(err)
	}
	return recordsToMenuItems(recs), nil
}

func (r *MenuRepository) ListByCategory(ctx context.Context, category string) ([]*domain.MenuItem, error) {
	ctx, cancel := r.store.callCtx(ctx)
	defer cancel()

	var recs []menuItemRecord
	err := r.store.db.WithContext(ctx).Where("category = ?", category).Order("name").Find(&recs).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return recordsToMenuItems(recs), nil
}

func (r *MenuRepository) FindByID(ctx context.Context, id uint) (*domain.MenuItem, error) {
	ctx, cancel := r.store.callCtx(ctx)
	defer cancel()

	var rec menuItemRecord
	err := r.store.db.WithContext(ctx).First(&rec, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMenuItemNotFound
		}
		return nil, storeErr(err)
	}
	return recordToMenuItem(&rec), nil
}

func (r *MenuRepository) Create(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	ctx, cancel := r.store.callCtx(ctx)
	defer cancel()

	rec := menuItemToRecord(item)
	if err := r.store.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, storeErr(err)
	}
	return recordToMenuItem(rec), nil
}

func (r *MenuRepository) Update(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	ctx, cancel := r.store.callCtx(ctx)
	defer cancel()

	rec := menuItemToRecord(item)
	res := r.store.db.WithContext(ctx).Model(&menuItemRecord{}).Where("id = ?", rec.ID).
		Updates(map[string]any{
			"name":        rec.Name,
			"category":    rec.Category,
			"description": rec.Description,
			"ingredients": rec.Ingredients,
			"price":       rec.Price,
			"image":       rec.Image,
		})
	if res.Error != nil {
		return nil, storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrMenuItemNotFound
	}
	return r.FindByID(ctx, item.ID)
}

func (r *MenuRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := r.store.callCtx(ctx)
	defer cancel()

	res := r.store.db.WithContext(ctx).Delete(&menuItemRecord{}, id)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrMenuItemNotFound
	}
	return nil
}

func recordsToMenuItems(recs []menuItemRecord) []*domain.MenuItem {
	items := make([]*domain.MenuItem, 0, len(recs))
	for i := range recs {
		items = append(items, recordToMenuItem(&recs[i]))
	}
	return items
}
