package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sakurakitchen/ordering-system/internal/core/domain"
	"github.com/sakurakitchen/ordering-system/internal/core/ports"
)

const minPasswordLength = 6

// UserService implements admin-facing account management. Route-level RBAC
// already restricts these operations to admins; the self-modification rules
// here hold regardless of role.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateUser applies the non-empty fields of input. No identity may change
// its own role, admin or not.
func (s *UserService) UpdateUser(ctx context.Context, id uint, input ports.UpdateUserInput, requesterID uint) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Role != "" {
		if id == requesterID {
			return nil, fmt.Errorf("%w: cannot change own role", domain.ErrForbidden)
		}
		role, err := domain.ParseRole(input.Role)
		if err != nil {
			return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, input.Role)
		}
		user.Role = role
	}

	if input.Email != "" {
		email := strings.ToLower(strings.TrimSpace(input.Email))
		if email != user.Email {
			other, err := s.repo.FindByEmail(ctx, email)
			if err == nil && other != nil && other.ID != id {
				return nil, domain.ErrDuplicateEmail
			}
			if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
				return nil, err
			}
			user.Email = email
		}
	}

	if input.Name != "" {
		user.Name = input.Name
	}

	if input.Password != "" {
		if len(input.Password) < minPasswordLength {
			return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Uint("user_id", id).Uint("requester_id", requesterID).Msg("user updated")
	return updated, nil
}

// DeleteUser removes an account. Self-deletion is rejected so an admin can
// never lock themselves out mid-session.
func (s *UserService) DeleteUser(ctx context.Context, id uint, requesterID uint) error {
	if id == requesterID {
		return fmt.Errorf("%w: cannot delete own account", domain.ErrForbidden)
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Uint("user_id", id).Uint("requester_id", requesterID).Msg("user deleted")
	return nil
}
