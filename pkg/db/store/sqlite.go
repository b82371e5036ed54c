package store

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/mwantia/taskfilter/pkg/db/query"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteStore implements TodoStore using SQLite
type SQLiteStore struct {
	gormStore
	path string
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	Path     string
	LogLevel logger.LogLevel
	Logger   logger.Interface
	Compiler *query.Compiler
}

// NewSQLiteStore creates a new SQLite-backed todo store
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if cfg.Compiler == nil {
		cfg.Compiler = query.New()
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), newGormConfig(cfg.Logger, cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	return &SQLiteStore{
		gormStore: gormStore{
			db:       db,
			compiler: cfg.Compiler,
		},
		path: cfg.Path,
	}, nil
}

// Connect initializes the database connection
func (s *SQLiteStore) Connect(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(1) // SQLite only supports 1 writer
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0) // keeps in-memory databases alive

	return sqlDB.PingContext(ctx)
}

// Path returns the database file the store was opened with.
func (s *SQLiteStore) Path() string {
	return s.path
}

var _ TodoStore = (*SQLiteStore)(nil)
