package query

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/mwantia/taskfilter/pkg/db/models"
	"github.com/mwantia/taskfilter/pkg/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var fixedNow = time.Date(2024, 3, 16, 12, 0, 0, 0, time.UTC)

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.Todo{}))

	todos := []models.Todo{
		{ID: 1, Text: "Fix login bug", Status: "todo", Priority: "high", Label: "bug",
			Tracking:  models.Tracking{UTMs: map[string]string{"source": "newsletter"}},
			CreatedAt: at("2024-03-15T10:00:00Z")},
		{ID: 2, Text: "Write docs", Status: "in_progress", Priority: "low", Label: "documentation",
			Tracking:  models.Tracking{UTMs: map[string]string{"source": "", "medium": "email"}},
			CreatedAt: at("2024-03-15T23:59:59Z")},
		{ID: 3, Text: "BUG in export", Status: "done", Priority: "medium", Label: "bug", Completed: true,
			CreatedAt: at("2024-03-16T00:00:00Z")},
		{ID: 4, Text: "Refactor", Status: "todo", Priority: "high", Label: "feature",
			CreatedAt: at("2024-03-10T12:00:00Z")},
		{ID: 5, Text: "100% coverage", Status: "todo", Priority: "low", Label: "enhancement",
			CreatedAt: at("2024-03-01T08:00:00Z")},
		{ID: 6, Text: "Plan sprint", Status: "todo", Priority: "medium", Label: "feature",
			CreatedAt: at("2024-03-17T09:00:00Z")},
	}
	for i := range todos {
		todos[i].OrganizationID = "org-1"
	}
	require.NoError(t, db.Create(&todos).Error)

	return db
}

func newTestCompiler(opts ...Option) *Compiler {
	return New(append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)...)
}

func ids(t *testing.T, q *gorm.DB) []uint {
	t.Helper()

	var todos []models.Todo
	require.NoError(t, q.Order("id").Find(&todos).Error)

	out := []uint{}
	for _, todo := range todos {
		out = append(out, todo.ID)
	}
	return out
}

// sampleValue builds a well-formed value for op on typ.
func sampleValue(typ filter.Type, op filter.Operator) filter.Value {
	switch {
	case filter.RequiresRange(op):
		if typ == filter.TypeDate {
			return filter.Pair("2024-03-10", "2024-03-15")
		}
		return filter.Pair(2, 4)
	case filter.RequiresCount(op):
		return filter.Int(3)
	case filter.RequiresList(op):
		return filter.Strings("high", "low")
	case !filter.RequiresValue(op):
		return filter.Null()
	}
	switch typ {
	case filter.TypeNumber:
		return filter.Int(3)
	case filter.TypeDate:
		return filter.String("2024-03-15")
	case filter.TypeSelect:
		return filter.String("todo")
	default:
		return filter.String("bug")
	}
}

var fieldForType = map[filter.Type]string{
	filter.TypeText:        "text",
	filter.TypeNumber:      "id",
	filter.TypeDate:        "created_at",
	filter.TypeSelect:      "status",
	filter.TypeMultiSelect: "priority",
	filter.TypeBoolean:     "completed",
	filter.TypeUTM:         "utm.source",
}

func TestEveryCatalogPairCompiles(t *testing.T) {
	db := openTestDB(t)
	c := newTestCompiler()

	for _, typ := range filter.Types {
		for _, op := range filter.OperatorsForType(typ) {
			f := filter.Filter{ID: "f", Field: fieldForType[typ], Operator: op, Value: sampleValue(typ, op), Type: typ}

			assert.True(t, c.Compiles("sqlite", f), "%s/%s", typ, op)
			assert.NotPanics(t, func() {
				var todos []models.Todo
				err := c.Apply(db.Model(&models.Todo{}), f).Find(&todos).Error
				assert.NoError(t, err, "%s/%s", typ, op)
			})
		}
	}
}

func TestApplyDoesNotModifyInput(t *testing.T) {
	db := openTestDB(t)
	c := newTestCompiler()

	base := db.Model(&models.Todo{}).Where("organization_id = ?", "org-1")
	whereCount := func() int {
		where, ok := base.Statement.Clauses["WHERE"].Expression.(clause.Where)
		require.True(t, ok)
		return len(where.Exprs)
	}
	before := whereCount()

	filtered := c.Apply(base, filter.New("status", filter.OpIs, filter.TypeSelect, filter.String("done")))
	assert.Equal(t, []uint{3}, ids(t, filtered))
	assert.Equal(t, before, whereCount())
	assert.Equal(t, []uint{1, 2, 3, 4, 5, 6}, ids(t, base))
}

func TestMismatchedOperatorIsNoop(t *testing.T) {
	db := openTestDB(t)
	c := newTestCompiler()

	base := db.Model(&models.Todo{})
	for _, f := range []filter.Filter{
		{Field: "status", Operator: filter.OpBetween, Value: filter.Pair(1, 5), Type: filter.TypeSelect},
		{Field: "text", Operator: filter.OpIsTrue, Value: filter.Null(), Type: filter.TypeText},
		{Field: "completed", Operator: "sounds_like", Value: filter.Null(), Type: filter.TypeBoolean},
		{Field: "priority", Operator: filter.OpIsAnyOf, Value: filter.Strings(), Type: filter.TypeMultiSelect},
		{Field: "created_at", Operator: filter.OpEquals, Value: filter.String("yesterday-ish"), Type: filter.TypeDate},
	} {
		assert.Same(t, base, c.Apply(base, f), "%s/%s", f.Type, f.Operator)
	}

	render := func(fs ...filter.Filter) string {
		return db.ToSQL(func(tx *gorm.DB) *gorm.DB {
			return c.ApplyAll(tx.Model(&models.Todo{}), fs).Find(&[]models.Todo{})
		})
	}
	assert.Equal(t, render(), render(filter.Filter{Field: "status", Operator: filter.OpBetween, Value: filter.Pair(1, 5), Type: filter.TypeSelect}))
}

func TestSetAndTextFiltersCombine(t *testing.T) {
	db := openTestDB(t)
	c := newTestCompiler()

	q := c.ApplyAll(db.Model(&models.Todo{}), []filter.Filter{
		filter.New("priority", filter.OpIsAnyOf, filter.TypeMultiSelect, filter.Strings("high", "medium")),
		filter.New("text", filter.OpContains, filter.TypeText, filter.String("bug")),
	})
	assert.Equal(t, []uint{1, 3}, ids(t, q))
}

func TestTextOperators(t *testing.T) {
	db := openTestDB(t)
	c := newTestCompiler()

	tests := []struct {
		op    filter.Operator
		value filter.Value
		want  []uint
	}{
		{filter.OpEquals, filter.String("Refactor"), []uint{4}},
		{filter.OpNotEquals, filter.String("Refactor"), []uint{1, 2, 3, 5, 6}},
		{filter.OpContains, filter.String("BUG"), []uint{1, 3}},
		{filter.OpNotContains, filter.String("bug"), []uint{2, 4, 5, 6}},
		{filter.OpStartsWith, filter.String("write"), []uint{2}},
		{filter.OpEndsWith, filter.String("SPRINT"), []uint{6}},
		{filter.OpContains, filter.String("_"), []uint{}},
		{filter.OpContains, filter.String("0%"), []uint{5}},
		{filter.OpIsEmpty, filter.Null(), []uint{}},
		{filter.OpIsNotEmpty, filter.Null(), []uint{1, 2, 3, 4, 5, 6}},
	}
	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			q := c.Apply(db.Model(&models.Todo{}), filter.New("text", tt.op, filter.TypeText, tt.value))
			assert.Equal(t, tt.want, ids(t, q))
		})
	}
}

func TestNumberOperators(t *testing.T) {
	db := openTestDB(t)
	c := newTestCompiler()

	tests := []struct {
		op    filter.Operator
		value filter.Value
		want  []uint
	}{
		{filter.OpEquals, filter.Int(2), []uint{2}},
		{filter.OpNotEquals, filter.Int(2), []uint{1, 3, 4, 5, 6}},
		{filter.OpGreaterThan, filter.String("3"), []uint{4, 5, 6}},
		{filter.OpLessThan, filter.Number(2.5), []uint{1, 2}},
		{filter.OpGreaterThanOrEqual, filter.Int(5), []uint{5, 6}},
		{filter.OpLessThanOrEqual, filter.Int(1), []uint{1}},
		{filter.OpBetween, filter.Pair(2, 4), []uint{2, 3, 4}},
		{filter.OpNotBetween, filter.Pair(2, 4), []uint{1, 5, 6}},
	}
	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			q := c.Apply(db.Model(&models.Todo{}), filter.New("id", tt.op, filter.TypeNumber, tt.value))
			assert.Equal(t, tt.want, ids(t, q))
		})
	}
}

func TestSelectAndBooleanOperators(t *testing.T) {
	db := openTestDB(t)
	c := newTestCompiler()

	tests := []struct {
		name string
		f    filter.Filter
		want []uint
	}{
		{"is", filter.New("status", filter.OpIs, filter.TypeSelect, filter.String("todo")), []uint{1, 4, 5, 6}},
		{"is_not", filter.New("status", filter.OpIsNot, filter.TypeSelect, filter.String("todo")), []uint{2, 3}},
		{"is_not_empty", filter.New("status", filter.OpIsNotEmpty, filter.TypeSelect, filter.Null()), []uint{1, 2, 3, 4, 5, 6}},
		{"is_any_of", filter.New("label", filter.OpIsAnyOf, filter.TypeMultiSelect, filter.Strings("bug", "feature")), []uint{1, 3, 4, 6}},
		{"is_none_of", filter.New("priority", filter.OpIsNoneOf, filter.TypeMultiSelect, filter.Strings("high")), []uint{2, 3, 5, 6}},
		{"is_true", filter.New("completed", filter.OpIsTrue, filter.TypeBoolean, filter.Null()), []uint{3}},
		{"is_false", filter.New("completed", filter.OpIsFalse, filter.TypeBoolean, filter.Null()), []uint{1, 2, 4, 5, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(t, c.Apply(db.Model(&models.Todo{}), tt.f)))
		})
	}
}

func TestUTMOperators(t *testing.T) {
	db := openTestDB(t)
	c := newTestCompiler()

	tests := []struct {
		field string
		op    filter.Operator
		value filter.Value
		want  []uint
	}{
		{"utm.source", filter.OpEquals, filter.String("newsletter"), []uint{1}},
		{"utm.source", filter.OpExists, filter.Null(), []uint{1, 2}},
		{"utm.source", filter.OpNotExists, filter.Null(), []uint{3, 4, 5, 6}},
		{"utm.source", filter.OpIsEmpty, filter.Null(), []uint{2, 3, 4, 5, 6}},
		{"utm.source", filter.OpIsNotEmpty, filter.Null(), []uint{1}},
		{"utm.medium", filter.OpContains, filter.String("MAIL"), []uint{2}},
		{"utm.campaign", filter.OpExists, filter.Null(), []uint{}},
	}
	for _, tt := range tests {
		t.Run(tt.field+"/"+string(tt.op), func(t *testing.T) {
			q := c.Apply(db.Model(&models.Todo{}), filter.New(tt.field, tt.op, filter.TypeUTM, tt.value))
			assert.Equal(t, tt.want, ids(t, q))
		})
	}
}

func TestUTMRejectsUnsafeKeys(t *testing.T) {
	db := openTestDB(t)
	c := newTestCompiler()

	base := db.Model(&models.Todo{})
	for _, field := range []string{"utm.", `utm.a"b`, "utm.source'); --", "source"} {
		f := filter.New(field, filter.OpEquals, filter.TypeUTM, filter.String("x"))
		assert.Same(t, base, c.Apply(base, f), field)
	}

	// utm fields never reach plain columns
	f := filter.New("utm.source", filter.OpEquals, filter.TypeText, filter.String("newsletter"))
	assert.Same(t, base, c.Apply(base, f))
}

func TestColumnAllowlist(t *testing.T) {
	db := openTestDB(t)
	base := db.Model(&models.Todo{})

	c := newTestCompiler(WithColumns(map[string]string{"title": "text"}))
	assert.Same(t, base, c.Apply(base, filter.New("status", filter.OpIs, filter.TypeSelect, filter.String("done"))))

	q := c.Apply(base, filter.New("title", filter.OpStartsWith, filter.TypeText, filter.String("fix")))
	assert.Equal(t, []uint{1}, ids(t, q))

	open := newTestCompiler()
	assert.Same(t, base, open.Apply(base, filter.New("status; DROP TABLE todos", filter.OpIs, filter.TypeSelect, filter.String("x"))))
}

func TestApplyIsDeterministic(t *testing.T) {
	db := openTestDB(t)
	c := newTestCompiler()

	fs := []filter.Filter{
		filter.New("priority", filter.OpIsAnyOf, filter.TypeMultiSelect, filter.Strings("high", "low")),
		filter.New("created_at", filter.OpIsThisWeek, filter.TypeDate, filter.Null()),
		filter.New("utm.source", filter.OpIsNotEmpty, filter.TypeUTM, filter.Null()),
	}
	render := func() string {
		return db.ToSQL(func(tx *gorm.DB) *gorm.DB {
			return c.ApplyAll(tx.Model(&models.Todo{}), fs).Find(&[]models.Todo{})
		})
	}
	assert.Equal(t, render(), render())
}
