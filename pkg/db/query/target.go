package query

import (
	"slices"
	"strings"

	"gorm.io/gorm/clause"
)

// target is the left hand side of a predicate: a plain column, or a value
// extracted from a JSON document.
type target struct {
	column clause.Column
	json   bool

	// value expression and its vars
	sql  string
	vars []any

	// key presence expression and its vars, json targets only
	presence     string
	presenceVars []any
}

func columnTarget(name string) target {
	col := clause.Column{Name: name}
	return target{
		column: col,
		sql:    "?",
		vars:   []any{col},
	}
}

// jsonTarget addresses the value at path inside column.
func jsonTarget(dialect, column string, path []string) (target, bool) {
	col := clause.Column{Name: column}
	if len(path) == 0 {
		return target{}, false
	}

	switch dialect {
	case "sqlite":
		var b strings.Builder
		b.WriteString("$")
		for _, part := range path {
			b.WriteString(`."`)
			b.WriteString(part)
			b.WriteString(`"`)
		}
		jsonPath := b.String()
		return target{
			json:         true,
			sql:          "json_extract(?, ?)",
			vars:         []any{col, jsonPath},
			presence:     "json_type(?, ?) IS NOT NULL",
			presenceVars: []any{col, jsonPath},
		}, true

	case "postgres":
		container := "?"
		vars := []any{col}
		for _, part := range path[:len(path)-1] {
			container = "(" + container + " -> ?::text)"
			vars = append(vars, part)
		}
		key := path[len(path)-1]
		return target{
			json:         true,
			sql:          "(" + container + " ->> ?::text)",
			vars:         append(slices.Clone(vars), key),
			presence:     "COALESCE(jsonb_exists(" + container + ", ?::text), false)",
			presenceVars: append(slices.Clone(vars), key),
		}, true
	}

	return target{}, false
}

func (t target) expr(sql string, args ...any) clause.Expr {
	vars := make([]any, 0, len(t.vars)+len(args))
	vars = append(vars, t.vars...)
	vars = append(vars, args...)
	return clause.Expr{SQL: sql, Vars: vars}
}

func (t target) eq(v any) clause.Expression {
	if !t.json {
		return clause.Eq{Column: t.column, Value: v}
	}
	if v == nil {
		return t.expr(t.sql + " IS NULL")
	}
	return t.expr(t.sql+" = ?", v)
}

func (t target) neq(v any) clause.Expression {
	if !t.json {
		return clause.Neq{Column: t.column, Value: v}
	}
	if v == nil {
		return t.expr(t.sql + " IS NOT NULL")
	}
	return t.expr(t.sql+" <> ?", v)
}

func (t target) isNull() clause.Expression {
	return t.eq(nil)
}

func (t target) notNull() clause.Expression {
	return t.neq(nil)
}

func (t target) like(pattern string, negate bool) clause.Expression {
	op := " LIKE "
	if negate {
		op = " NOT LIKE "
	}
	return t.expr("LOWER("+t.sql+")"+op+"LOWER(?) ESCAPE '\\'", pattern)
}

func (t target) exists() clause.Expression {
	return clause.Expr{SQL: t.presence, Vars: slices.Clone(t.presenceVars)}
}

func (t target) notExists() clause.Expression {
	return clause.Expr{SQL: "NOT (" + t.presence + ")", Vars: slices.Clone(t.presenceVars)}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
