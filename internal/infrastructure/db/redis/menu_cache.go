package redis

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/sakurakitchen/ordering-system/internal/api/metrics"
)

const keyPrefix = "menu:"

// MenuCache serves GET responses for catalog routes from Redis and drops
// every cached entry when an admin mutates the menu. A nil *MenuCache is a
// no-op on Invalidate, so callers never branch on whether caching is enabled.
type MenuCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func NewMenuCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *MenuCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &MenuCache{client: client, ttl: ttl, logger: logger}
}

// Middleware caches successful GET responses keyed by request URI. Cache
// failures degrade to a plain read; they never fail the request.
func (m *MenuCache) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}
			key := keyPrefix + c.Request().RequestURI

			cached, err := m.client.Get(c.Request().Context(), key).Bytes()
			if err == nil {
				metrics.MenuCacheTotal.WithLabelValues("hit").Inc()
				return c.JSONBlob(http.StatusOK, cached)
			}
			if err != redis.Nil {
				m.logger.Warn().Err(err).Str("key", key).Msg("menu cache read failed")
			}
			metrics.MenuCacheTotal.WithLabelValues("miss").Inc()

			rec := &captureWriter{ResponseWriter: c.Response().Writer}
			c.Response().Writer = rec

			if err := next(c); err != nil {
				return err
			}

			if c.Response().Status == http.StatusOK && rec.body.Len() > 0 {
				if err := m.client.Set(c.Request().Context(), key, rec.body.Bytes(), m.ttl).Err(); err != nil {
					m.logger.Warn().Err(err).Str("key", key).Msg("menu cache write failed")
				}
			}
			return nil
		}
	}
}

// Invalidate removes every cached catalog response. Called after any menu
// write so stale prices never survive an admin edit.
func (m *MenuCache) Invalidate(ctx context.Context) error {
	if m == nil || m.client == nil {
		return nil
	}

	iter := m.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return m.client.Del(ctx, keys...).Err()
}

// captureWriter tees the response body so it can be stored after the handler
// has written it to the client.
type captureWriter struct {
	http.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}
