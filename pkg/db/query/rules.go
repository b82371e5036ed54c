package query

import (
	"math"

	"github.com/mwantia/taskfilter/pkg/filter"
	"gorm.io/gorm/clause"
)

type ruleKey struct {
	typ filter.Type
	op  filter.Operator
}

// rule builds the predicate of one (type, operator) pair. A nil result
// means the operand did not fit and the clause is skipped.
type rule func(c *Compiler, t target, operand filter.Operand) clause.Expression

// rules only holds pairs of the operator catalog. A missing key compiles to nothing.
var rules = map[ruleKey]rule{}

func register(typ filter.Type, op filter.Operator, r rule) {
	rules[ruleKey{typ: typ, op: op}] = r
}

func init() {
	for _, typ := range []filter.Type{filter.TypeText, filter.TypeUTM} {
		register(typ, filter.OpEquals, textCompare(target.eq))
		register(typ, filter.OpNotEquals, textCompare(target.neq))
		register(typ, filter.OpContains, textLike("%", "%", false))
		register(typ, filter.OpNotContains, textLike("%", "%", true))
		register(typ, filter.OpStartsWith, textLike("", "%", false))
		register(typ, filter.OpEndsWith, textLike("%", "", false))
	}
	register(filter.TypeText, filter.OpIsEmpty, textIsEmpty)
	register(filter.TypeText, filter.OpIsNotEmpty, textIsNotEmpty)

	register(filter.TypeUTM, filter.OpExists, func(_ *Compiler, t target, _ filter.Operand) clause.Expression {
		return t.exists()
	})
	register(filter.TypeUTM, filter.OpNotExists, func(_ *Compiler, t target, _ filter.Operand) clause.Expression {
		return t.notExists()
	})
	register(filter.TypeUTM, filter.OpIsEmpty, func(_ *Compiler, t target, _ filter.Operand) clause.Expression {
		return clause.Or(t.notExists(), t.eq(""), t.isNull())
	})
	register(filter.TypeUTM, filter.OpIsNotEmpty, func(_ *Compiler, t target, _ filter.Operand) clause.Expression {
		return clause.And(t.exists(), t.neq(""), t.notNull())
	})

	register(filter.TypeNumber, filter.OpEquals, numberCompare(func(c clause.Column, v any) clause.Expression { return clause.Eq{Column: c, Value: v} }))
	register(filter.TypeNumber, filter.OpNotEquals, numberCompare(func(c clause.Column, v any) clause.Expression { return clause.Neq{Column: c, Value: v} }))
	register(filter.TypeNumber, filter.OpGreaterThan, numberCompare(func(c clause.Column, v any) clause.Expression { return clause.Gt{Column: c, Value: v} }))
	register(filter.TypeNumber, filter.OpLessThan, numberCompare(func(c clause.Column, v any) clause.Expression { return clause.Lt{Column: c, Value: v} }))
	register(filter.TypeNumber, filter.OpGreaterThanOrEqual, numberCompare(func(c clause.Column, v any) clause.Expression { return clause.Gte{Column: c, Value: v} }))
	register(filter.TypeNumber, filter.OpLessThanOrEqual, numberCompare(func(c clause.Column, v any) clause.Expression { return clause.Lte{Column: c, Value: v} }))
	register(filter.TypeNumber, filter.OpBetween, numberBetween)
	register(filter.TypeNumber, filter.OpNotBetween, numberNotBetween)

	registerDateRules()

	register(filter.TypeSelect, filter.OpIs, selectCompare(target.eq))
	register(filter.TypeSelect, filter.OpIsNot, selectCompare(target.neq))
	for _, typ := range []filter.Type{filter.TypeSelect, filter.TypeMultiSelect} {
		register(typ, filter.OpIsEmpty, func(_ *Compiler, t target, _ filter.Operand) clause.Expression {
			return t.isNull()
		})
		register(typ, filter.OpIsNotEmpty, func(_ *Compiler, t target, _ filter.Operand) clause.Expression {
			return t.notNull()
		})
	}
	register(filter.TypeMultiSelect, filter.OpIsAnyOf, membership(false))
	register(filter.TypeMultiSelect, filter.OpIsNoneOf, membership(true))

	register(filter.TypeBoolean, filter.OpIsTrue, func(_ *Compiler, t target, _ filter.Operand) clause.Expression {
		return clause.Eq{Column: t.column, Value: true}
	})
	register(filter.TypeBoolean, filter.OpIsFalse, func(_ *Compiler, t target, _ filter.Operand) clause.Expression {
		return clause.Eq{Column: t.column, Value: false}
	})
}

func scalarText(operand filter.Operand) (string, bool) {
	s, ok := operand.(filter.Scalar)
	if !ok {
		return "", false
	}
	return s.Value.Text()
}

func textCompare(cmp func(target, any) clause.Expression) rule {
	return func(_ *Compiler, t target, operand filter.Operand) clause.Expression {
		s, ok := scalarText(operand)
		if !ok {
			return nil
		}
		return cmp(t, s)
	}
}

func textLike(prefix, suffix string, negate bool) rule {
	return func(_ *Compiler, t target, operand filter.Operand) clause.Expression {
		s, ok := scalarText(operand)
		if !ok {
			return nil
		}
		return t.like(prefix+escapeLike(s)+suffix, negate)
	}
}

func textIsEmpty(_ *Compiler, t target, _ filter.Operand) clause.Expression {
	return clause.Or(t.isNull(), t.eq(""))
}

func textIsNotEmpty(_ *Compiler, t target, _ filter.Operand) clause.Expression {
	return clause.And(t.notNull(), t.neq(""))
}

// numeric binds integral values as int64 so integer columns compare exactly.
func numeric(v filter.Value) (any, bool) {
	f, ok := v.Float()
	if !ok {
		return nil, false
	}
	if f == math.Trunc(f) && math.Abs(f) <= 1<<53 {
		return int64(f), true
	}
	return f, true
}

func numberCompare(cmp func(clause.Column, any) clause.Expression) rule {
	return func(_ *Compiler, t target, operand filter.Operand) clause.Expression {
		s, ok := operand.(filter.Scalar)
		if !ok {
			return nil
		}
		n, ok := numeric(s.Value)
		if !ok {
			return nil
		}
		return cmp(t.column, n)
	}
}

func numberRange(operand filter.Operand) (any, any, bool) {
	r, ok := operand.(filter.Range)
	if !ok {
		return nil, nil, false
	}
	low, ok := numeric(r.Low)
	if !ok {
		return nil, nil, false
	}
	high, ok := numeric(r.High)
	if !ok {
		return nil, nil, false
	}
	return low, high, true
}

func numberBetween(_ *Compiler, t target, operand filter.Operand) clause.Expression {
	low, high, ok := numberRange(operand)
	if !ok {
		return nil
	}
	return clause.And(
		clause.Gte{Column: t.column, Value: low},
		clause.Lte{Column: t.column, Value: high},
	)
}

func numberNotBetween(_ *Compiler, t target, operand filter.Operand) clause.Expression {
	low, high, ok := numberRange(operand)
	if !ok {
		return nil
	}
	return clause.Or(
		clause.Lt{Column: t.column, Value: low},
		clause.Gt{Column: t.column, Value: high},
	)
}

func selectCompare(cmp func(target, any) clause.Expression) rule {
	return func(_ *Compiler, t target, operand filter.Operand) clause.Expression {
		s, ok := operand.(filter.Scalar)
		if !ok {
			return nil
		}
		v, ok := scalarVar(s.Value)
		if !ok {
			return nil
		}
		return cmp(t, v)
	}
}

// scalarVar returns the bind value of a non-list scalar.
func scalarVar(v filter.Value) (any, bool) {
	switch x := v.Raw().(type) {
	case string, bool:
		return x, true
	case float64:
		return numeric(v)
	}
	return nil, false
}

func membership(negate bool) rule {
	return func(_ *Compiler, t target, operand filter.Operand) clause.Expression {
		list, ok := operand.(filter.List)
		if !ok || len(list.Items) == 0 {
			return nil
		}
		values := make([]any, 0, len(list.Items))
		for _, item := range list.Items {
			v, ok := scalarVar(item)
			if !ok {
				return nil
			}
			values = append(values, v)
		}
		in := clause.IN{Column: t.column, Values: values}
		if negate {
			return clause.Not(in)
		}
		return in
	}
}
