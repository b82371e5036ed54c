package filter

import (
	"fmt"
	"slices"
)

var (
	textOperators = []Operator{
		OpEquals, OpNotEquals, OpContains, OpNotContains,
		OpStartsWith, OpEndsWith, OpIsEmpty, OpIsNotEmpty,
	}
	numberOperators = []Operator{
		OpEquals, OpNotEquals, OpGreaterThan, OpLessThan,
		OpGreaterThanOrEqual, OpLessThanOrEqual, OpBetween, OpNotBetween,
	}
	dateOperators = []Operator{
		OpEquals, OpNotEquals, OpBefore, OpAfter, OpOnOrBefore, OpOnOrAfter,
		OpBetween, OpNotBetween, OpIsToday, OpIsYesterday, OpIsThisWeek,
		OpIsThisMonth, OpIsThisYear, OpIsLastNDays, OpIsNextNDays,
	}
	selectOperators      = []Operator{OpIs, OpIsNot, OpIsEmpty, OpIsNotEmpty}
	multiSelectOperators = []Operator{OpIsAnyOf, OpIsNoneOf, OpIsEmpty, OpIsNotEmpty}
	booleanOperators     = []Operator{OpIsTrue, OpIsFalse}
	utmOperators         = []Operator{
		OpExists, OpNotExists, OpEquals, OpNotEquals, OpContains, OpNotContains,
		OpStartsWith, OpEndsWith, OpIsEmpty, OpIsNotEmpty,
	}
)

// OperatorsForType returns the ordered operator set of t. The returned slice
// is a copy. An unknown type is a programming error and panics; use Supports
// for untrusted input.
func OperatorsForType(t Type) []Operator {
	var ops []Operator
	switch t {
	case TypeText:
		ops = textOperators
	case TypeNumber:
		ops = numberOperators
	case TypeDate:
		ops = dateOperators
	case TypeSelect:
		ops = selectOperators
	case TypeMultiSelect:
		ops = multiSelectOperators
	case TypeBoolean:
		ops = booleanOperators
	case TypeUTM:
		ops = utmOperators
	default:
		panic(fmt.Sprintf("filter: unknown filter type %q", string(t)))
	}
	return slices.Clone(ops)
}

// Supports reports whether op is legal for t. Unknown types are unsupported.
func Supports(t Type, op Operator) bool {
	if !t.Valid() {
		return false
	}
	return slices.Contains(OperatorsForType(t), op)
}

// RequiresValue reports whether op needs a value at all.
func RequiresValue(op Operator) bool {
	switch op {
	case OpIsEmpty, OpIsNotEmpty,
		OpIsToday, OpIsYesterday, OpIsThisWeek, OpIsThisMonth, OpIsThisYear,
		OpIsTrue, OpIsFalse,
		OpExists, OpNotExists:
		return false
	}
	return true
}

// RequiresRange reports whether op takes a [low, high] tuple.
func RequiresRange(op Operator) bool {
	return op == OpBetween || op == OpNotBetween
}

// RequiresCount reports whether op takes a non-negative day count.
func RequiresCount(op Operator) bool {
	return op == OpIsLastNDays || op == OpIsNextNDays
}

// RequiresList reports whether op takes a list of values.
func RequiresList(op Operator) bool {
	return op == OpIsAnyOf || op == OpIsNoneOf
}

var operatorLabels = map[Operator]string{
	OpEquals:             "is",
	OpNotEquals:          "is not",
	OpContains:           "contains",
	OpNotContains:        "does not contain",
	OpStartsWith:         "starts with",
	OpEndsWith:           "ends with",
	OpIsEmpty:            "is empty",
	OpIsNotEmpty:         "is not empty",
	OpGreaterThan:        ">",
	OpLessThan:           "<",
	OpGreaterThanOrEqual: "≥",
	OpLessThanOrEqual:    "≤",
	OpBetween:            "between",
	OpNotBetween:         "not between",
	OpBefore:             "before",
	OpAfter:              "after",
	OpOnOrBefore:         "on or before",
	OpOnOrAfter:          "on or after",
	OpIsToday:            "is today",
	OpIsYesterday:        "is yesterday",
	OpIsThisWeek:         "this week",
	OpIsThisMonth:        "this month",
	OpIsThisYear:         "this year",
	OpIsLastNDays:        "in last",
	OpIsNextNDays:        "in next",
	OpIs:                 "is",
	OpIsNot:              "is not",
	OpIsAnyOf:            "is any of",
	OpIsNoneOf:           "is none of",
	OpIsTrue:             "is true",
	OpIsFalse:            "is false",
	OpExists:             "exists",
	OpNotExists:          "does not exist",
}

// Label returns the display label of op, or op itself when unknown.
func (op Operator) Label() string {
	if label, ok := operatorLabels[op]; ok {
		return label
	}
	return string(op)
}
