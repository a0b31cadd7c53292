package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sakurakitchen/ordering-system/internal/api/middleware"
	"github.com/sakurakitchen/ordering-system/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails before any service call. Presence of both values proves the
// middleware ran; their absence means a miswired route, never an anonymous
// caller.
func ctxIdentity(c echo.Context) (userID uint, role domain.Role, err error) {
	userID, ok := c.Get(middleware.CtxUserID).(uint)
	if !ok || userID == 0 {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	role, ok = c.Get(middleware.CtxRole).(domain.Role)
	if !ok {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	return userID, role, nil
}
