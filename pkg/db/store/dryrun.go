package store

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/mwantia/taskfilter/pkg/db/query"
	"github.com/mwantia/taskfilter/pkg/filter"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// RenderSQL renders the list query of organization and filters for dialect
// ("sqlite" or "postgres") without touching a real database.
func RenderSQL(dialect string, compiler *query.Compiler, organization string, filters []filter.Filter) (string, error) {
	var dialector gorm.Dialector
	switch dialect {
	case "sqlite":
		dialector = sqlite.Open(":memory:")
	case "postgres":
		dialector = postgres.New(postgres.Config{DSN: "host=localhost sslmode=disable"})
	default:
		return "", fmt.Errorf("unsupported dialect '%s'", dialect)
	}
	if compiler == nil {
		compiler = query.New()
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return "", fmt.Errorf("failed to open %s dialect: %w", dialect, err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	s := &gormStore{db: db, compiler: compiler}
	return s.ToSQL(organization, filters), nil
}
