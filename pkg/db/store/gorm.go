package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mwantia/taskfilter/pkg/db/migrations"
	"github.com/mwantia/taskfilter/pkg/db/models"
	"github.com/mwantia/taskfilter/pkg/db/query"
	"github.com/mwantia/taskfilter/pkg/filter"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// gormStore holds the operations shared by every gorm dialect.
type gormStore struct {
	db       *gorm.DB
	compiler *query.Compiler
}

func newGormConfig(l logger.Interface, level logger.LogLevel) *gorm.Config {
	// Default to silent logging
	if level == 0 {
		level = logger.Silent
	}
	if l == nil {
		l = logger.Default
	}
	return &gorm.Config{
		Logger: l.LogMode(level),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// DB returns the underlying GORM database instance
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// Compiler returns the compiler applied to list queries.
func (s *gormStore) Compiler() *query.Compiler {
	return s.compiler
}

// Close closes the database connection
func (s *gormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

// Migrate runs all pending versioned migrations
func (s *gormStore) Migrate(ctx context.Context) error {
	return migrations.NewMigrator(s.db).Migrate(ctx)
}

// Rollback reverts the last applied migration
func (s *gormStore) Rollback(ctx context.Context) error {
	return migrations.NewMigrator(s.db).Rollback(ctx)
}

// MigrationStatus lists every known migration and whether it is applied
func (s *gormStore) MigrationStatus(ctx context.Context) ([]migrations.MigrationStatus, error) {
	return migrations.NewMigrator(s.db).Status(ctx)
}

// Health checks database connectivity
func (s *gormStore) Health(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (s *gormStore) Scope(ctx context.Context, organization string) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&models.Todo{}).
		Where("organization_id = ?", organization)
}

// Todo operations

func (s *gormStore) CreateTodo(ctx context.Context, todo *models.Todo) error {
	return s.db.WithContext(ctx).Create(todo).Error
}

func (s *gormStore) CreateTodos(ctx context.Context, todos []models.Todo) error {
	if len(todos) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).CreateInBatches(todos, 100).Error
}

func (s *gormStore) ListTodos(ctx context.Context, organization string, filters []filter.Filter) ([]models.Todo, error) {
	todos := []models.Todo{}
	query := s.compiler.ApplyAll(s.Scope(ctx, organization), filters)

	if err := query.Order("id").Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

func (s *gormStore) CountTodos(ctx context.Context, organization string, filters []filter.Filter) (int64, error) {
	var count int64
	query := s.compiler.ApplyAll(s.Scope(ctx, organization), filters)

	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count todos: %w", err)
	}
	return count, nil
}

// ToSQL renders the list query with its values inlined, without running it.
func (s *gormStore) ToSQL(organization string, filters []filter.Filter) string {
	return s.db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		query := tx.Model(&models.Todo{}).Where("organization_id = ?", organization)
		return s.compiler.ApplyAll(query, filters).Order("id").Find(&[]models.Todo{})
	})
}

// View operations

// SaveView creates the view or replaces the filters of an existing view with the same name.
func (s *gormStore) SaveView(ctx context.Context, view *models.View) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "organization_id"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"filters", "description", "updated_at"}),
	}).Create(view).Error
}

func (s *gormStore) GetView(ctx context.Context, organization, name string) (*models.View, error) {
	var view models.View
	err := s.db.WithContext(ctx).
		Where("organization_id = ? AND name = ?", organization, name).
		First(&view).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *gormStore) ListViews(ctx context.Context, organization string) ([]models.View, error) {
	views := []models.View{}
	err := s.db.WithContext(ctx).
		Where("organization_id = ?", organization).
		Order("name").
		Find(&views).Error
	return views, err
}

func (s *gormStore) DeleteView(ctx context.Context, organization, name string) error {
	result := s.db.WithContext(ctx).
		Where("organization_id = ? AND name = ?", organization, name).
		Delete(&models.View{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
