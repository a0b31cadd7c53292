package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/sakurakitchen/ordering-system/docs"
	"github.com/sakurakitchen/ordering-system/internal/api"
	"github.com/sakurakitchen/ordering-system/internal/api/handler"
	"github.com/sakurakitchen/ordering-system/internal/core/service"
	"github.com/sakurakitchen/ordering-system/internal/infrastructure/config"
	"github.com/sakurakitchen/ordering-system/internal/infrastructure/db/postgres"
	"github.com/sakurakitchen/ordering-system/internal/infrastructure/db/redis"
	"github.com/sakurakitchen/ordering-system/internal/infrastructure/events"
	"github.com/sakurakitchen/ordering-system/pkg/logger"
)

// @title Sakura Kitchen Ordering API
// @version 1.0
// @description Restaurant ordering service: catalog, accounts, and orders.
// @BasePath /api
func main() {
	// Missing .env is fine in containerized deployments.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})
	log := logger.Get()

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.Port)

	store, err := postgres.Open(ctx, cfg.Database.URL, cfg.Database.Timeout)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer store.Close()

	if err := store.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("schema migration failed")
	}

	var menuCache *redis.MenuCache
	rdb := connectRedis(ctx, cfg, log)
	if rdb != nil {
		menuCache = redis.NewMenuCache(rdb, cfg.Redis.MenuTTL, log)
		defer rdb.Close()
	}

	var publisher service.OrderEventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		defer kp.Close()
		publisher = kp
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("order events enabled")
	}

	userRepo := postgres.NewUserRepository(store)
	menuRepo := postgres.NewMenuRepository(store)
	orderRepo := postgres.NewOrderRepository(store)

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokens, log)
	menuService := service.NewMenuService(menuRepo, menuCache, log)
	orderService := service.NewOrderService(orderRepo, menuRepo, userRepo, publisher, log)
	userService := service.NewUserService(userRepo, log)

	e := api.NewRouter(api.Dependencies{
		Auth:      authService,
		Menu:      menuService,
		Orders:    orderService,
		Users:     userService,
		Tokens:    tokens,
		MenuCache: menuCache,
		Readiness: handler.NewReadinessHandler(store.DB(), rdb),
		Cookies: handler.CookieSettings{
			Secure: cfg.IsProduction(),
			TTL:    cfg.TokenTTL,
		},
		Logger: log,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("shutdown complete")
}

// connectRedis returns nil when caching is disabled or the server is down.
// The API degrades to uncached catalog reads rather than refusing to start.
func connectRedis(ctx context.Context, cfg *config.Config, log zerolog.Logger) *goredis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	client, err := redis.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, menu cache disabled")
		return nil
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("menu cache enabled")
	return client
}
