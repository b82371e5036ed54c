package store

import (
	"context"
	"errors"

	"github.com/mwantia/taskfilter/pkg/db/migrations"
	"github.com/mwantia/taskfilter/pkg/db/models"
	"github.com/mwantia/taskfilter/pkg/filter"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup matches no row of the organization.
var ErrNotFound = errors.New("record not found")

// TodoStore defines the interface for database operations
type TodoStore interface {
	// Lifecycle
	Connect(ctx context.Context) error
	Close() error
	Migrate(ctx context.Context) error
	Rollback(ctx context.Context) error
	MigrationStatus(ctx context.Context) ([]migrations.MigrationStatus, error)
	Health(ctx context.Context) error

	// Scope returns the base query of all todos owned by organization.
	Scope(ctx context.Context, organization string) *gorm.DB

	// Todo operations
	CreateTodo(ctx context.Context, todo *models.Todo) error
	CreateTodos(ctx context.Context, todos []models.Todo) error
	ListTodos(ctx context.Context, organization string, filters []filter.Filter) ([]models.Todo, error)
	CountTodos(ctx context.Context, organization string, filters []filter.Filter) (int64, error)
	ToSQL(organization string, filters []filter.Filter) string

	// View operations
	SaveView(ctx context.Context, view *models.View) error
	GetView(ctx context.Context, organization, name string) (*models.View, error)
	ListViews(ctx context.Context, organization string) ([]models.View, error)
	DeleteView(ctx context.Context, organization, name string) error
}
