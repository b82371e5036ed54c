package filter

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Type selects the operator set and compilation rules of a filter.
type Type string

const (
	TypeText        Type = "text"
	TypeNumber      Type = "number"
	TypeDate        Type = "date"
	TypeSelect      Type = "select"
	TypeMultiSelect Type = "multiselect"
	TypeBoolean     Type = "boolean"
	TypeUTM         Type = "utm"
)

// Types lists every filter type in catalog order.
var Types = []Type{
	TypeText,
	TypeNumber,
	TypeDate,
	TypeSelect,
	TypeMultiSelect,
	TypeBoolean,
	TypeUTM,
}

// Valid reports whether t is one of the known filter types.
func (t Type) Valid() bool {
	switch t {
	case TypeText, TypeNumber, TypeDate, TypeSelect, TypeMultiSelect, TypeBoolean, TypeUTM:
		return true
	}
	return false
}

// Operator is a comparison symbol. The legal subset depends on the filter type.
type Operator string

const (
	OpEquals             Operator = "equals"
	OpNotEquals          Operator = "not_equals"
	OpContains           Operator = "contains"
	OpNotContains        Operator = "not_contains"
	OpStartsWith         Operator = "starts_with"
	OpEndsWith           Operator = "ends_with"
	OpIsEmpty            Operator = "is_empty"
	OpIsNotEmpty         Operator = "is_not_empty"
	OpGreaterThan        Operator = "greater_than"
	OpLessThan           Operator = "less_than"
	OpGreaterThanOrEqual Operator = "greater_than_or_equal"
	OpLessThanOrEqual    Operator = "less_than_or_equal"
	OpBetween            Operator = "between"
	OpNotBetween         Operator = "not_between"
	OpBefore             Operator = "before"
	OpAfter              Operator = "after"
	OpOnOrBefore         Operator = "on_or_before"
	OpOnOrAfter          Operator = "on_or_after"
	OpIsToday            Operator = "is_today"
	OpIsYesterday        Operator = "is_yesterday"
	OpIsThisWeek         Operator = "is_this_week"
	OpIsThisMonth        Operator = "is_this_month"
	OpIsThisYear         Operator = "is_this_year"
	OpIsLastNDays        Operator = "is_last_n_days"
	OpIsNextNDays        Operator = "is_next_n_days"
	OpIs                 Operator = "is"
	OpIsNot              Operator = "is_not"
	OpIsAnyOf            Operator = "is_any_of"
	OpIsNoneOf           Operator = "is_none_of"
	OpIsTrue             Operator = "is_true"
	OpIsFalse            Operator = "is_false"
	OpExists             Operator = "exists"
	OpNotExists          Operator = "not_exists"
)

// UTMPrefix marks a field as a key inside the tracking JSON document.
const UTMPrefix = "utm."

// Filter is a single predicate clause. A list of filters is an AND conjunction.
type Filter struct {
	ID       string   `json:"id"`
	Field    string   `json:"field"`
	Operator Operator `json:"operator"`
	Value    Value    `json:"value"`
	Type     Type     `json:"type"`
}

// New creates a filter with a fresh id.
func New(field string, op Operator, typ Type, value Value) Filter {
	return Filter{
		ID:       NewID(),
		Field:    field,
		Operator: op,
		Value:    value,
		Type:     typ,
	}
}

// NewID returns an opaque identifier for client-side filter identity.
func NewID() string {
	return "filter-" + uuid.NewString()
}

// IsUTMField reports whether field addresses a utm key.
func IsUTMField(field string) bool {
	return strings.HasPrefix(field, UTMPrefix)
}

// UTMKey strips the utm prefix from field.
func UTMKey(field string) string {
	return strings.TrimPrefix(field, UTMPrefix)
}

// Clone returns a copy of fs that shares no slice storage with it.
func Clone(fs []Filter) []Filter {
	if fs == nil {
		return nil
	}
	out := make([]Filter, len(fs))
	copy(out, fs)
	return out
}

// Summary describes a number of active filters.
func Summary(n int) string {
	switch n {
	case 0:
		return "No filters"
	case 1:
		return "1 filter"
	}
	return fmt.Sprintf("%d filters", n)
}
