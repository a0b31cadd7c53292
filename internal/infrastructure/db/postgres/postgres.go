// Package postgres implements the repository ports on a relational store via
// GORM. Record types are private to this package; the domain never sees
// gorm tags or database errors.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sakurakitchen/ordering-system/internal/core/domain"
)

const defaultTimeout = 5 * time.Second

// Store wraps the shared GORM handle plus the per-call timeout every
// repository applies. It is opened once at process start and closed at
// shutdown; components receive it by injection, never as a global.
type Store struct {
	db      *gorm.DB
	timeout time.Duration
}

// Open connects to Postgres, configures the pool, and verifies connectivity
// with a ping.
func Open(ctx context.Context, dsn string, timeout time.Duration) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres: empty DSN")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("postgres pool: %w", err)
	}
	configurePool(sqlDB)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	return &Store{db: db, timeout: timeout}, nil
}

// NewStore wraps an existing GORM handle. Used by tests with an in-memory
// driver.
func NewStore(db *gorm.DB, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Store{db: db, timeout: timeout}
}

func configurePool(sqlDB *sql.DB) {
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
}

// Migrate creates or updates the schema for all collections. The unique
// index on users.email is the final backstop against concurrent duplicate
// registrations.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&userRecord{}, &menuItemRecord{}, &orderRecord{}, &orderItemRecord{})
}

// DB exposes the underlying handle for health probes and shutdown.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Close releases the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// callCtx bounds a single store call. No store operation may hang past the
// configured timeout.
func (s *Store) callCtx(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, s.timeout)
}

// storeErr translates driver-level failures into domain errors. Timeouts and
// cancellations surface as ErrStoreUnavailable so callers see a 500, not a hang.
func storeErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return err
}
