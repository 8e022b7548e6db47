package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/FehCode/financeflow1/internal/config"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrStoreUnavailable is returned by every data operation issued before
// Initialize has completed successfully. Operations fail fast instead of
// silently queuing.
var ErrStoreUnavailable = errors.New("store not initialized")

// Store owns the four persisted collections (users, transactions, goals,
// activities). Construct with Open, then call Initialize before issuing
// any other operation.
type Store struct {
	db    *gorm.DB
	mu    sync.Mutex
	ready atomic.Bool
}

// Open creates a SQLite-backed store with basic tuning. The schema is not
// touched here; Initialize runs the migrations.
func Open(cfg config.DatabaseConfig) (*Store, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." && !strings.HasPrefix(cfg.Path, ":") && !strings.HasPrefix(cfg.Path, "file:") {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	gormLogger := logger.Default
	if !cfg.LogMode {
		gormLogger = gormLogger.LogMode(logger.Silent)
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	// connection pool
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// SQLite performance and reliability tuning
	_, _ = sqlDB.Exec("PRAGMA journal_mode = WAL;")
	_, _ = sqlDB.Exec("PRAGMA synchronous = NORMAL;")
	_, _ = sqlDB.Exec("PRAGMA foreign_keys = ON;")

	return &Store{db: db}, nil
}

// Initialize creates missing collections and indexes. It is idempotent and
// safe to call from several goroutines during startup; callers must wait
// for it to return before issuing any other operation.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready.Load() {
		return nil
	}
	if err := migrate(s.db.WithContext(ctx)); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	s.ready.Store(true)
	return nil
}

// Ready reports whether Initialize has completed successfully.
func (s *Store) Ready() bool {
	return s.ready.Load()
}

// Close releases the underlying connection. The store refuses further
// operations afterwards.
func (s *Store) Close() error {
	s.ready.Store(false)
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// handle gates every collection operation on initialization.
func (s *Store) handle(ctx context.Context) (*gorm.DB, error) {
	if !s.ready.Load() {
		return nil, ErrStoreUnavailable
	}
	return s.db.WithContext(ctx), nil
}
