package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sakurakitchen/ordering-system/internal/core/domain"
	"github.com/sakurakitchen/ordering-system/internal/core/ports"
)

type UserRepository struct {
	store *Store
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := r.store.callCtx(ctx)
	defer cancel()

	rec := userToRecord(user)
	if err := r.store.db.WithContext(ctx).Create(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, storeErr(err)
	}
	return recordToUser(rec), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := r.store.callCtx(ctx)
	defer cancel()

	var rec userRecord
	err := r.store.db.WithContext(ctx).Where("email = ?", email).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeErr(err)
	}
	return recordToUser(&rec), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	ctx, cancel := r.store.callCtx(ctx)
	defer cancel()

	var rec userRecord
	err := r.store.db.WithContext(ctx).First(&rec, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeErr(err)
	}
	return recordToUser(&rec), nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := r.store.callCtx(ctx)
	defer cancel()

	var recs []userRecord
	if err := r.store.db.WithContext(ctx).Order("id").Find(&recs).Error; err != nil {
		return nil, storeErr(err)
	}
	users := make([]*domain.User, 0, len(recs))
	for i := range recs {
		users = append(users, recordToUser(&recs[i]))
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := r.store.callCtx(ctx)
	defer cancel()

	rec := userToRecord(user)
	res := r.store.db.WithContext(ctx).Model(&userRecord{}).Where("id = ?", rec.ID).
		Updates(map[string]any{
			"name":          rec.Name,
			"email":         rec.Email,
			"password_hash": rec.PasswordHash,
			"role":          rec.Role,
			"phone":         rec.Phone,
			"address":       rec.Address,
		})
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrUserNotFound
	}
	return r.FindByID(ctx, user.ID)
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := r.store.callCtx(ctx)
	defer cancel()

	res := r.store.db.WithContext(ctx).Delete(&userRecord{}, id)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
