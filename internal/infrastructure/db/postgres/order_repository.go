package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sakurakitchen/ordering-system/internal/core/domain"
	"github.com/sakurakitchen/ordering-system/internal/core/ports"
)

type OrderRepository struct {
	store *Store
}

var _ ports.OrderRepository = (*OrderRepository)(nil)

func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store}
}

// Create persists the order and its line items in one transaction. Either the
// whole order lands or nothing does.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	ctx, cancel := r.store.callCtx(ctx)
	defer cancel()

	rec := orderToRecord(order)
	err := r.store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(rec).Error
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return recordToOrder(rec), nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	ctx, cancel := r.store.callCtx(ctx)
	defer cancel()

	var rec orderRecord
	err := r.store.db.WithContext(ctx).Preload("Items").First(&rec, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, storeErr(err)
	}
	return recordToOrder(&rec), nil
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]*domain.Order, error) {
	ctx, cancel := r.store.callCtx(ctx)
	defer cancel()

	var recs []orderRecord
	err := r.store.db.WithContext(ctx).Preload("Items").Order("created_at DESC").Find(&recs).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return recordsToOrders(recs), nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID uint) ([]*domain.Order, error) {
	ctx, cancel := r.store.callCtx(ctx)
	defer cancel()

	var recs []orderRecord
	err := r.store.db.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).Order("created_at DESC").Find(&recs).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return recordsToOrders(recs), nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint, status domain.OrderStatus) (*domain.Order, error) {
	ctx, cancel := r.store.callCtx(ctx)
	defer cancel()

	res := r.store.db.WithContext(ctx).Model(&orderRecord{}).Where("id = ?", id).
		Update("status", string(status))
	if res.Error != nil {
		return nil, storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrOrderNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *OrderRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := r.store.callCtx(ctx)
	defer cancel()

	err := r.store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&orderItemRecord{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&orderRecord{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrOrderNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return domain.ErrOrderNotFound
		}
		return storeErr(err)
	}
	return nil
}

func recordsToOrders(recs []orderRecord) []*domain.Order {
	orders := make([]*domain.Order, 0, len(recs))
	for i := range recs {
		orders = append(orders, recordToOrder(&recs[i]))
	}
	return orders
}
