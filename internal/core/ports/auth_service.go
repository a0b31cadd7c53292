package ports

import (
	"context"

	"github.com/sakurakitchen/ordering-system/internal/core/domain"
)

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthService implements the identity lifecycle: registration, login, and
// current-user lookup. Both Register and Login return a freshly issued token.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	CurrentUser(ctx context.Context, userID uint) (*domain.User, error)
}
