package query

import (
	"regexp"
	"slices"
	"time"

	"github.com/mwantia/taskfilter/pkg/filter"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	utmKeyPattern     = regexp.MustCompile(`^[A-Za-z0-9_\-]+$`)
)

// Compiler translates filters into gorm where clauses. It holds no mutable
// state and is safe for concurrent use.
type Compiler struct {
	columns    map[string]string
	now        func() time.Time
	location   *time.Location
	weekStart  time.Weekday
	jsonColumn string
	jsonPath   []string
}

type Option func(*Compiler)

// WithSchema restricts compilation to the fields of s.
func WithSchema(s filter.Schema) Option {
	return func(c *Compiler) {
		c.columns = s.Columns()
	}
}

// WithColumns restricts compilation to the given field to column mapping.
func WithColumns(columns map[string]string) Option {
	return func(c *Compiler) {
		c.columns = make(map[string]string, len(columns))
		for field, column := range columns {
			c.columns[field] = column
		}
	}
}

// WithClock sets the source of "now" for relative date windows.
func WithClock(now func() time.Time) Option {
	return func(c *Compiler) {
		c.now = now
	}
}

// WithLocation sets the time zone used for day boundaries.
func WithLocation(loc *time.Location) Option {
	return func(c *Compiler) {
		if loc != nil {
			c.location = loc
		}
	}
}

// WithWeekStart sets the first day of is_this_week.
func WithWeekStart(day time.Weekday) Option {
	return func(c *Compiler) {
		c.weekStart = day
	}
}

// WithTracking sets the JSON column and the object path under which utm keys live.
func WithTracking(column string, path ...string) Option {
	return func(c *Compiler) {
		c.jsonColumn = column
		c.jsonPath = slices.Clone(path)
	}
}

func New(opts ...Option) *Compiler {
	c := &Compiler{
		now:        time.Now,
		location:   time.UTC,
		weekStart:  time.Sunday,
		jsonColumn: "tracking",
		jsonPath:   []string{"utms"},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Apply returns q with f added as one AND-ed predicate. q itself is never
// modified. Filters that are invalid, not in the operator catalog, or aimed
// at unknown fields leave the query unchanged.
func (c *Compiler) Apply(q *gorm.DB, f filter.Filter) *gorm.DB {
	expr, ok := c.Expression(dialectOf(q), f)
	if !ok {
		return q
	}
	return q.Session(&gorm.Session{}).Where(expr)
}

// ApplyAll folds Apply over fs in order.
func (c *Compiler) ApplyAll(q *gorm.DB, fs []filter.Filter) *gorm.DB {
	for _, f := range fs {
		q = c.Apply(q, f)
	}
	return q
}

// Expression compiles f for the named gorm dialect. The boolean is false
// when f compiles to nothing.
func (c *Compiler) Expression(dialect string, f filter.Filter) (clause.Expression, bool) {
	operand, err := filter.Bind(f)
	if err != nil {
		return nil, false
	}
	r, ok := rules[ruleKey{typ: f.Type, op: f.Operator}]
	if !ok {
		return nil, false
	}
	t, ok := c.target(dialect, f)
	if !ok {
		return nil, false
	}
	expr := r(c, t, operand)
	if expr == nil {
		return nil, false
	}
	return expr, true
}

// Compiles reports whether f would add a predicate.
func (c *Compiler) Compiles(dialect string, f filter.Filter) bool {
	_, ok := c.Expression(dialect, f)
	return ok
}

func (c *Compiler) target(dialect string, f filter.Filter) (target, bool) {
	if f.Type == filter.TypeUTM {
		if !filter.IsUTMField(f.Field) {
			return target{}, false
		}
		key := filter.UTMKey(f.Field)
		if !utmKeyPattern.MatchString(key) || c.jsonColumn == "" {
			return target{}, false
		}
		return jsonTarget(dialect, c.jsonColumn, append(slices.Clone(c.jsonPath), key))
	}

	if filter.IsUTMField(f.Field) {
		return target{}, false
	}
	column := f.Field
	if c.columns != nil {
		var ok bool
		if column, ok = c.columns[f.Field]; !ok {
			return target{}, false
		}
	}
	if !identifierPattern.MatchString(column) {
		return target{}, false
	}
	return columnTarget(column), true
}

func dialectOf(q *gorm.DB) string {
	if q == nil || q.Config == nil || q.Dialector == nil {
		return ""
	}
	return q.Dialector.Name()
}
