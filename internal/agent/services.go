package agent

import (
	"fmt"
	"strings"

	"github.com/mwantia/taskfilter/internal/todo"
	"github.com/mwantia/taskfilter/pkg/db/query"
	"github.com/mwantia/taskfilter/pkg/db/store"
	"github.com/mwantia/taskfilter/pkg/log"
	"gorm.io/gorm/logger"

	config "github.com/mwantia/taskfilter/internal/config/server"
)

// NewCompiler builds the filter compiler for the todo schema.
func NewCompiler(cfg config.FilterServerConfig) (*query.Compiler, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	weekStart, err := cfg.Weekday()
	if err != nil {
		return nil, err
	}

	opts := []query.Option{
		query.WithSchema(todo.Fields),
		query.WithLocation(loc),
		query.WithWeekStart(weekStart),
	}
	if cfg.JSONColumn != "" {
		opts = append(opts, query.WithTracking(cfg.JSONColumn, cfg.UTMPath...))
	}
	return query.New(opts...), nil
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "error":
		return logger.Error
	case "warn", "warning":
		return logger.Warn
	case "info", "debug":
		return logger.Info
	}
	return logger.Silent
}

// NewStore opens the configured todo store. Migrations are not run.
func NewStore(cfg config.DatabaseServerConfig, compiler *query.Compiler, l log.LoggerService) (store.TodoStore, error) {
	level := gormLogLevel(cfg.LogLevel)
	gl := log.NewGormLogger(l, level)

	switch cfg.Type {
	case "sqlite", "":
		s, err := store.NewSQLiteStore(store.SQLiteConfig{
			Path:     cfg.SQLite.Path,
			LogLevel: level,
			Logger:   gl,
			Compiler: compiler,
		})
		if err != nil {
			return nil, err
		}
		return s, nil

	case "postgres":
		s, err := store.NewPostgresStore(store.PostgresConfig{
			DSN:          cfg.Postgres.DSN,
			MaxOpenConns: cfg.Postgres.MaxOpenConns,
			MaxIdleConns: cfg.Postgres.MaxIdleConns,
			LogLevel:     level,
			Logger:       gl,
			Compiler:     compiler,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unsupported database type '%s'", cfg.Type)
}
