package store

import (
	"context"
	"testing"

	"github.com/mwantia/taskfilter/pkg/db/models"
	"github.com/mwantia/taskfilter/pkg/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	ctx := context.Background()

	s, err := NewSQLiteStore(SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, s.Connect(ctx))
	require.NoError(t, s.Migrate(ctx))
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.CreateTodos(ctx, []models.Todo{
		{OrganizationID: "acme", Text: "Fix login bug", Status: "todo", Priority: "high", Label: "bug"},
		{OrganizationID: "acme", Text: "Write docs", Status: "done", Priority: "low", Label: "documentation"},
		{OrganizationID: "acme", Text: "Triage bug reports", Status: "in_progress", Priority: "medium", Label: "bug",
			Tracking: models.Tracking{UTMs: map[string]string{"source": "newsletter"}}},
		{OrganizationID: "globex", Text: "Fix billing bug", Status: "todo", Priority: "high", Label: "bug"},
	}))
	return s
}

func texts(todos []models.Todo) []string {
	out := []string{}
	for _, todo := range todos {
		out = append(out, todo.Text)
	}
	return out
}

func TestNewSQLiteStoreRequiresPath(t *testing.T) {
	_, err := NewSQLiteStore(SQLiteConfig{})
	assert.Error(t, err)
}

func TestListTodosIsScopedToOrganization(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	todos, err := s.ListTodos(ctx, "acme", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fix login bug", "Write docs", "Triage bug reports"}, texts(todos))

	todos, err = s.ListTodos(ctx, "initech", nil)
	require.NoError(t, err)
	assert.NotNil(t, todos)
	assert.Empty(t, todos)
}

func TestListTodosAppliesFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	fs := []filter.Filter{
		filter.New("text", filter.OpContains, filter.TypeText, filter.String("BUG")),
		filter.New("priority", filter.OpIsAnyOf, filter.TypeMultiSelect, filter.Strings("high", "medium")),
	}
	todos, err := s.ListTodos(ctx, "acme", fs)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fix login bug", "Triage bug reports"}, texts(todos))

	count, err := s.CountTodos(ctx, "acme", fs)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	todos, err = s.ListTodos(ctx, "acme", []filter.Filter{
		filter.New("utm.source", filter.OpEquals, filter.TypeUTM, filter.String("newsletter")),
	})
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "newsletter", todos[0].Tracking.UTMs["source"])
}

func TestToSQL(t *testing.T) {
	s := newTestStore(t)

	sql := s.ToSQL("acme", []filter.Filter{
		filter.New("status", filter.OpIs, filter.TypeSelect, filter.String("done")),
	})
	assert.Contains(t, sql, "organization_id")
	assert.Contains(t, sql, "acme")
	assert.Contains(t, sql, "done")
	assert.Contains(t, sql, "ORDER BY id")
}

func TestViews(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	fs := []filter.Filter{filter.New("status", filter.OpIs, filter.TypeSelect, filter.String("todo"))}
	view := &models.View{OrganizationID: "acme", Name: "open", Filters: filter.Serialize(fs)}
	require.NoError(t, s.SaveView(ctx, view))

	got, err := s.GetView(ctx, "acme", "open")
	require.NoError(t, err)
	assert.Equal(t, fs, filter.Deserialize(got.Filters))

	_, err = s.GetView(ctx, "globex", "open")
	assert.ErrorIs(t, err, ErrNotFound)

	// saving under the same name replaces the filters
	require.NoError(t, s.SaveView(ctx, &models.View{OrganizationID: "acme", Name: "open", Filters: "[]", Description: "all"}))
	got, err = s.GetView(ctx, "acme", "open")
	require.NoError(t, err)
	assert.Equal(t, "[]", got.Filters)
	assert.Equal(t, "all", got.Description)

	require.NoError(t, s.SaveView(ctx, &models.View{OrganizationID: "acme", Name: "bugs", Filters: "[]"}))
	views, err := s.ListViews(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "bugs", views[0].Name)

	require.NoError(t, s.DeleteView(ctx, "acme", "bugs"))
	assert.ErrorIs(t, s.DeleteView(ctx, "acme", "bugs"), ErrNotFound)
}

func TestMigrationStatusAndRollback(t *testing.T) {
	s, err := NewSQLiteStore(SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, s.Connect(ctx))
	t.Cleanup(func() { s.Close() })

	statuses, err := s.MigrationStatus(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.False(t, statuses[0].Applied)

	require.NoError(t, s.Migrate(ctx))
	require.NoError(t, s.Rollback(ctx))

	statuses, err = s.MigrationStatus(ctx)
	require.NoError(t, err)
	assert.True(t, statuses[0].Applied)
	assert.False(t, statuses[1].Applied)
	assert.False(t, s.DB().Migrator().HasTable(&models.View{}))
}

func TestHealth(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.Health(context.Background()))
}

func TestRenderSQL(t *testing.T) {
	fs := []filter.Filter{
		filter.New("utm.source", filter.OpEquals, filter.TypeUTM, filter.String("newsletter")),
	}

	sql, err := RenderSQL("postgres", nil, "acme", fs)
	require.NoError(t, err)
	assert.Contains(t, sql, `->> 'source'::text) = 'newsletter'`)
	assert.Contains(t, sql, "organization_id = 'acme'")

	sql, err = RenderSQL("sqlite", nil, "acme", fs)
	require.NoError(t, err)
	assert.Contains(t, sql, "json_extract(")

	_, err = RenderSQL("oracle", nil, "acme", fs)
	assert.Error(t, err)
}
