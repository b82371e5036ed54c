package store

import (
	"context"
	"fmt"
	"time"

	"github.com/mwantia/taskfilter/pkg/db/query"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PostgresStore implements TodoStore using PostgreSQL
type PostgresStore struct {
	gormStore
}

// PostgresConfig holds PostgreSQL-specific configuration
type PostgresConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	LogLevel     logger.LogLevel
	Logger       logger.Interface
	Compiler     *query.Compiler
}

// NewPostgresStore creates a new PostgreSQL-backed todo store
func NewPostgresStore(cfg PostgresConfig) (*PostgresStore, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}
	if cfg.Compiler == nil {
		cfg.Compiler = query.New()
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN), newGormConfig(cfg.Logger, cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &PostgresStore{
		gormStore: gormStore{
			db:       db,
			compiler: cfg.Compiler,
		},
	}, nil
}

// Connect verifies the database is reachable
func (s *PostgresStore) Connect(ctx context.Context) error {
	return s.Health(ctx)
}

var _ TodoStore = (*PostgresStore)(nil)
