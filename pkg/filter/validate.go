package filter

import (
	"errors"
	"fmt"
)

var ErrInvalidFilter = errors.New("invalid filter")

// Operand is the value of a filter narrowed to the shape its operator needs.
type Operand interface {
	operand()
}

// NoValue is the operand of operators such as is_empty or is_today.
type NoValue struct{}

// Scalar is a single value.
type Scalar struct {
	Value Value
}

// Range is an inclusive [Low, High] pair.
type Range struct {
	Low  Value
	High Value
}

// List is a set of values for membership tests.
type List struct {
	Items []Value
}

// Count is a non-negative number of days.
type Count struct {
	N int
}

func (NoValue) operand() {}
func (Scalar) operand()  {}
func (Range) operand()   {}
func (List) operand()    {}
func (Count) operand()   {}

// Validate checks the structural rules of f. It never panics.
func Validate(f Filter) error {
	_, err := Bind(f)
	return err
}

// Valid is the boolean form of Validate.
func Valid(f Filter) bool {
	return Validate(f) == nil
}

// Bind validates f and narrows its value into an Operand. Operators that do
// not need a value bind to NoValue regardless of what was sent.
func Bind(f Filter) (Operand, error) {
	if f.Field == "" {
		return nil, fmt.Errorf("%w: missing field", ErrInvalidFilter)
	}
	if f.Operator == "" {
		return nil, fmt.Errorf("%w: missing operator", ErrInvalidFilter)
	}
	if f.Type == "" {
		return nil, fmt.Errorf("%w: missing type", ErrInvalidFilter)
	}

	if !RequiresValue(f.Operator) {
		return NoValue{}, nil
	}
	if f.Value.IsNull() {
		return nil, fmt.Errorf("%w: operator %q requires a value", ErrInvalidFilter, f.Operator)
	}

	switch {
	case RequiresRange(f.Operator):
		items, ok := f.Value.Items()
		if !ok || len(items) != 2 {
			return nil, fmt.Errorf("%w: operator %q requires a two element array", ErrInvalidFilter, f.Operator)
		}
		return Range{Low: items[0], High: items[1]}, nil

	case RequiresList(f.Operator):
		items, ok := f.Value.Items()
		if !ok {
			return nil, fmt.Errorf("%w: operator %q requires an array", ErrInvalidFilter, f.Operator)
		}
		return List{Items: items}, nil

	case RequiresCount(f.Operator):
		n, ok := f.Value.Int()
		if !ok || n < 0 {
			return nil, fmt.Errorf("%w: operator %q requires a non-negative integer", ErrInvalidFilter, f.Operator)
		}
		return Count{N: int(n)}, nil
	}

	return Scalar{Value: f.Value}, nil
}

// Sanitize returns the valid filters of fs in order, and how many were dropped.
func Sanitize(fs []Filter) ([]Filter, int) {
	valid := make([]Filter, 0, len(fs))
	for _, f := range fs {
		if Valid(f) {
			valid = append(valid, f)
		}
	}
	return valid, len(fs) - len(valid)
}
