package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperatorsForType(t *testing.T) {
	tests := map[Type][]Operator{
		TypeText: {
			OpEquals, OpNotEquals, OpContains, OpNotContains,
			OpStartsWith, OpEndsWith, OpIsEmpty, OpIsNotEmpty,
		},
		TypeNumber: {
			OpEquals, OpNotEquals, OpGreaterThan, OpLessThan,
			OpGreaterThanOrEqual, OpLessThanOrEqual, OpBetween, OpNotBetween,
		},
		TypeDate: {
			OpEquals, OpNotEquals, OpBefore, OpAfter, OpOnOrBefore, OpOnOrAfter,
			OpBetween, OpNotBetween, OpIsToday, OpIsYesterday, OpIsThisWeek,
			OpIsThisMonth, OpIsThisYear, OpIsLastNDays, OpIsNextNDays,
		},
		TypeSelect:      {OpIs, OpIsNot, OpIsEmpty, OpIsNotEmpty},
		TypeMultiSelect: {OpIsAnyOf, OpIsNoneOf, OpIsEmpty, OpIsNotEmpty},
		TypeBoolean:     {OpIsTrue, OpIsFalse},
		TypeUTM: {
			OpExists, OpNotExists, OpEquals, OpNotEquals, OpContains, OpNotContains,
			OpStartsWith, OpEndsWith, OpIsEmpty, OpIsNotEmpty,
		},
	}

	for _, typ := range Types {
		t.Run(string(typ), func(t *testing.T) {
			assert.Equal(t, tests[typ], OperatorsForType(typ))
		})
	}
}

func TestOperatorsForTypeReturnsCopy(t *testing.T) {
	ops := OperatorsForType(TypeBoolean)
	ops[0] = OpContains

	assert.Equal(t, OpIsTrue, OperatorsForType(TypeBoolean)[0])
}

func TestOperatorsForTypePanicsOnUnknownType(t *testing.T) {
	assert.Panics(t, func() { OperatorsForType("colour") })
	assert.Panics(t, func() { OperatorsForType("") })
}

func TestSupports(t *testing.T) {
	assert.True(t, Supports(TypeSelect, OpIs))
	assert.False(t, Supports(TypeSelect, OpBetween))
	assert.False(t, Supports(TypeSelect, OpIsAnyOf))
	assert.True(t, Supports(TypeMultiSelect, OpIsAnyOf))
	assert.False(t, Supports("colour", OpIs))
}

func TestOperatorClassifiers(t *testing.T) {
	noValue := []Operator{
		OpIsEmpty, OpIsNotEmpty, OpIsToday, OpIsYesterday, OpIsThisWeek,
		OpIsThisMonth, OpIsThisYear, OpIsTrue, OpIsFalse, OpExists, OpNotExists,
	}
	for _, op := range noValue {
		assert.False(t, RequiresValue(op), op)
	}
	for _, op := range []Operator{OpEquals, OpContains, OpBetween, OpIsAnyOf, OpIsLastNDays, OpIs} {
		assert.True(t, RequiresValue(op), op)
	}

	assert.True(t, RequiresRange(OpBetween))
	assert.True(t, RequiresRange(OpNotBetween))
	assert.False(t, RequiresRange(OpIsAnyOf))

	assert.True(t, RequiresCount(OpIsLastNDays))
	assert.True(t, RequiresCount(OpIsNextNDays))
	assert.False(t, RequiresCount(OpIsToday))
}

func TestOperatorLabel(t *testing.T) {
	assert.Equal(t, "does not contain", OpNotContains.Label())
	assert.Equal(t, "≥", OpGreaterThanOrEqual.Label())
	assert.Equal(t, "in last", OpIsLastNDays.Label())
	assert.Equal(t, "mystery", Operator("mystery").Label())
}

func TestFieldConfigTypeFor(t *testing.T) {
	status := FieldConfig{
		Field:     "status",
		Type:      TypeSelect,
		Operators: []Operator{OpIs, OpIsNot, OpIsAnyOf, OpIsNoneOf},
	}

	assert.Equal(t, TypeSelect, status.TypeFor(OpIs))
	assert.Equal(t, TypeMultiSelect, status.TypeFor(OpIsAnyOf))
	assert.Equal(t, TypeSelect, status.TypeFor(OpIsEmpty))

	f := status.NewFilter(OpIsNoneOf, Strings("done"))
	assert.Equal(t, TypeMultiSelect, f.Type)
	assert.NotEmpty(t, f.ID)
}
