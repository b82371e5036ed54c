package filter

import (
	"slices"
)

// Option is a selectable value of a select or multiselect field.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// FieldConfig describes a filterable field for clients and restricts which
// fields the query compiler accepts.
type FieldConfig struct {
	Field           string     `json:"field"                     yaml:"field"`
	Column          string     `json:"-"                         yaml:"column,omitempty"`
	Label           string     `json:"label"                     yaml:"label"`
	Type            Type       `json:"type"                      yaml:"type"`
	Operators       []Operator `json:"operators,omitempty"       yaml:"operators,omitempty"`
	Options         []Option   `json:"options,omitempty"         yaml:"options,omitempty"`
	DefaultOperator Operator   `json:"default_operator,omitempty" yaml:"default_operator,omitempty"`
	Placeholder     string     `json:"placeholder,omitempty"     yaml:"placeholder,omitempty"`
	Description     string     `json:"description,omitempty"     yaml:"description,omitempty"`
	Min             *float64   `json:"min,omitempty"             yaml:"min,omitempty"`
}

// ColumnName returns the storage column of the field.
func (fc FieldConfig) ColumnName() string {
	if fc.Column != "" {
		return fc.Column
	}
	return fc.Field
}

// AllowedOperators returns the explicit operator list, or the catalog set of
// the field type.
func (fc FieldConfig) AllowedOperators() []Operator {
	if len(fc.Operators) > 0 {
		return slices.Clone(fc.Operators)
	}
	if !fc.Type.Valid() {
		return nil
	}
	return OperatorsForType(fc.Type)
}

// TypeFor picks the filter type for op on this field. Select fields offer
// the set operators of the multiselect family, which compile as multiselect.
func (fc FieldConfig) TypeFor(op Operator) Type {
	if fc.Type == TypeSelect && !Supports(TypeSelect, op) && Supports(TypeMultiSelect, op) {
		return TypeMultiSelect
	}
	return fc.Type
}

// NewFilter creates a filter on this field with a fresh id. An empty operator
// selects the default operator.
func (fc FieldConfig) NewFilter(op Operator, value Value) Filter {
	if op == "" {
		op = fc.DefaultOperator
	}
	return New(fc.Field, op, fc.TypeFor(op), value)
}

// Schema is an ordered set of field configurations.
type Schema []FieldConfig

// Lookup finds the configuration of field.
func (s Schema) Lookup(field string) (FieldConfig, bool) {
	for _, fc := range s {
		if fc.Field == field {
			return fc, true
		}
	}
	return FieldConfig{}, false
}

// Columns maps every non-utm field to its storage column.
func (s Schema) Columns() map[string]string {
	columns := make(map[string]string, len(s))
	for _, fc := range s {
		if IsUTMField(fc.Field) {
			continue
		}
		columns[fc.Field] = fc.ColumnName()
	}
	return columns
}
