package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sakurakitchen/ordering-system/internal/core/domain"
	"github.com/sakurakitchen/ordering-system/internal/core/ports"
	"github.com/sakurakitchen/ordering-system/internal/core/service"
)

const testSecret = "test-secret-at-least-32-bytes-long!!"

func issueToken(t *testing.T, userID uint, role domain.Role) string {
	t.Helper()
	token, err := service.NewTokenService(testSecret, time.Hour).Issue(userID, role)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func newTokens() ports.TokenService {
	return service.NewTokenService(testSecret, time.Hour)
}

func TestAuthMiddleware_CookieToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: issueToken(t, 42, domain.RoleAdmin)})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(newTokens())(func(c echo.Context) error {
		called = true
		if got := c.Get(CtxUserID); got != uint(42) {
			t.Fatalf("user_id not set, got %v", got)
		}
		if got := c.Get(CtxRole); got != domain.RoleAdmin {
			t.Fatalf("role not set, got %v", got)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("next not called")
	}
}

func TestAuthMiddleware_BearerToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, 7, domain.RoleCustomer))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(newTokens())(func(c echo.Context) error {
		called = true
		if got := c.Get(CtxUserID); got != uint(7) {
			t.Fatalf("user_id not set, got %v", got)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("next not called")
	}
}

// A cookie wins over a conflicting Authorization header.
func TestAuthMiddleware_CookieTakesPrecedence(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: issueToken(t, 1, domain.RoleCustomer)})
	req.Header.Set("Authorization", "Bearer "+issueToken(t, 2, domain.RoleAdmin))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(newTokens())(func(c echo.Context) error {
		if got := c.Get(CtxUserID); got != uint(1) {
			t.Fatalf("expected the cookie identity (1), got %v", got)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(newTokens())(func(c echo.Context) error {
		t.Fatal("should not reach next")
		return nil
	})

	err := handler(c)
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	e := echo.New()

	for _, header := range []string{"Token abc", "Bearer", "bearer-nospace"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := Auth(newTokens())(func(c echo.Context) error {
			t.Fatalf("header %q: should not reach next", header)
			return nil
		})

		err := handler(c)
		assertHTTPStatus(t, err, http.StatusUnauthorized)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(newTokens())(func(c echo.Context) error {
		t.Fatal("should not reach next")
		return nil
	})

	err := handler(c)
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	e := echo.New()

	// TTL short enough to be expired by the time the request runs.
	expired, err := service.NewTokenService(testSecret, time.Nanosecond).Issue(1, domain.RoleCustomer)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	time.Sleep(2 * time.Second) // exp has second granularity

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(newTokens())(func(c echo.Context) error {
		t.Fatal("should not reach next")
		return nil
	})

	hErr := handler(c)
	assertHTTPStatus(t, hErr, http.StatusUnauthorized)

	var httpErr *echo.HTTPError
	if errors.As(hErr, &httpErr) && httpErr.Message != "token expired" {
		t.Errorf("expected %q, got %v", "token expired", httpErr.Message)
	}
}

func assertHTTPStatus(t *testing.T, err error, want int) {
	t.Helper()
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if httpErr.Code != want {
		t.Fatalf("expected status %d, got %d", want, httpErr.Code)
	}
}
