package ports

import (
	"context"

	"github.com/sakurakitchen/ordering-system/internal/core/domain"
)

// UpdateUserInput carries the admin-editable fields of an account. Nil or
// empty fields are left unchanged.
type UpdateUserInput struct {
	Name     string
	Email    string
	Role     string
	Password string
}

// UserService defines admin-facing account management.
type UserService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	GetUser(ctx context.Context, id uint) (*domain.User, error)
	// UpdateUser rejects a requester changing their own role.
	UpdateUser(ctx context.Context, id uint, input UpdateUserInput, requesterID uint) (*domain.User, error)
	// DeleteUser rejects a requester deleting themselves.
	DeleteUser(ctx context.Context, id uint, requesterID uint) error
}
