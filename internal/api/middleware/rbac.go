package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sakurakitchen/ordering-system/internal/core/domain"
)

// RBAC enforces a static allow-list of roles. It must run after Auth: a
// missing role in context means the chain is miswired, and the request is
// rejected rather than defaulting to an anonymous identity.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxRole).(domain.Role)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if _, permitted := allowed[role]; !permitted {
				return echo.NewHTTPError(http.StatusForbidden, domain.ErrForbidden.Error())
			}
			return next(c)
		}
	}
}
