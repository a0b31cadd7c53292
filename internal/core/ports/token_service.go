package ports

import "github.com/sakurakitchen/ordering-system/internal/core/domain"

// TokenClaims is the identity a verified token proves.
type TokenClaims struct {
	UserID uint
	Role   domain.Role
}

// TokenService mints and verifies stateless signed session tokens.
type TokenService interface {
	Issue(userID uint, role domain.Role) (string, error)
	// Verify returns domain.ErrTokenExpired past the expiry claim and
	// domain.ErrInvalidToken on a bad signature, malformed payload, or an
	// unrecognized role claim.
	Verify(token string) (*TokenClaims, error)
}
