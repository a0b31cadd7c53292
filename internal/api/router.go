package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/sakurakitchen/ordering-system/internal/api/handler"
	"github.com/sakurakitchen/ordering-system/internal/api/middleware"
	"github.com/sakurakitchen/ordering-system/internal/core/domain"
	"github.com/sakurakitchen/ordering-system/internal/core/ports"
	"github.com/sakurakitchen/ordering-system/internal/infrastructure/db/redis"
)

// Dependencies carries everything the router wires into handlers. All fields
// except MenuCache and the readiness probes are required.
type Dependencies struct {
	Auth   ports.AuthService
	Menu   ports.MenuService
	Orders ports.OrderService
	Users  ports.UserService
	Tokens ports.TokenService

	MenuCache *redis.MenuCache
	Readiness *handler.ReadinessHandler
	Cookies   handler.CookieSettings
	Logger    zerolog.Logger
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("ordering"))

	authHandler := handler.NewAuthHandler(deps.Auth, deps.Cookies)
	menuHandler := handler.NewMenuHandler(deps.Menu)
	orderHandler := handler.NewOrderHandler(deps.Orders)
	userHandler := handler.NewUserHandler(deps.Users)
	healthHandler := handler.NewHealthHandler()

	authRequired := middleware.Auth(deps.Tokens)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// Auth
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me, authRequired)

	// Catalog. Reads are public and cached; writes are admin only and bust
	// the cache.
	menu := e.Group("/api/menu")
	if deps.MenuCache != nil {
		cached := deps.MenuCache.Middleware()
		menu.GET("", menuHandler.List, cached)
		menu.GET("/:id", menuHandler.Get, cached)
		menu.GET("/category/:category", menuHandler.ListByCategory, cached)
	} else {
		menu.GET("", menuHandler.List)
		menu.GET("/:id", menuHandler.Get)
		menu.GET("/category/:category", menuHandler.ListByCategory)
	}
	menu.POST("", menuHandler.Create, authRequired, adminOnly)
	menu.PUT("/:id", menuHandler.Update, authRequired, adminOnly)
	menu.DELETE("/:id", menuHandler.Delete, authRequired, adminOnly)

	// Orders
	orders := e.Group("/api/orders", authRequired)
	orders.POST("", orderHandler.Create)
	orders.GET("", orderHandler.ListAll, adminOnly)
	orders.GET("/user", orderHandler.ListMine)
	orders.GET("/:id", orderHandler.Get)
	orders.PATCH("/:id/status", orderHandler.UpdateStatus, adminOnly)
	orders.DELETE("/:id", orderHandler.Delete, adminOnly)

	// User administration
	users := e.Group("/api/users", authRequired, adminOnly)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// Probes and docs
	e.GET("/health", healthHandler.Liveness)
	if deps.Readiness != nil {
		e.GET("/health/ready", deps.Readiness.Readiness)
	}
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
