package filter

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Value holds the polymorphic filter value in its JSON-normalised form:
// nil, string, float64, bool or []any of those.
type Value struct {
	v any
}

// Null is the absent value.
func Null() Value {
	return Value{}
}

func String(s string) Value {
	return Value{v: s}
}

func Number(n float64) Value {
	return Value{v: n}
}

func Int(n int) Value {
	return Value{v: float64(n)}
}

func Bool(b bool) Value {
	return Value{v: b}
}

// Strings builds a list value from strings.
func Strings(items ...string) Value {
	list := make([]any, len(items))
	for i, s := range items {
		list[i] = s
	}
	return Value{v: list}
}

// Pair builds a 2-tuple value for range operators.
func Pair(low, high any) Value {
	return ValueOf([]any{low, high})
}

// ValueOf normalises any JSON-representable Go value. time.Time becomes an
// RFC 3339 string, integers become float64. Values that cannot be encoded
// become Null.
func ValueOf(x any) Value {
	if x == nil {
		return Value{}
	}
	data, err := json.Marshal(x)
	if err != nil {
		return Value{}
	}
	var v Value
	if err := json.Unmarshal(data, &v); err != nil {
		return Value{}
	}
	return v
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.v)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v.v = raw
	return nil
}

// Raw returns the underlying value.
func (v Value) Raw() any {
	return v.v
}

func (v Value) IsNull() bool {
	return v.v == nil
}

func (v Value) IsList() bool {
	_, ok := v.v.([]any)
	return ok
}

// Items returns list elements, or false when v is not a list.
func (v Value) Items() ([]Value, bool) {
	list, ok := v.v.([]any)
	if !ok {
		return nil, false
	}
	items := make([]Value, len(list))
	for i, item := range list {
		items[i] = Value{v: item}
	}
	return items, true
}

// Text renders scalars as strings. Lists and null are not text.
func (v Value) Text() (string, bool) {
	switch x := v.v.(type) {
	case string:
		return x, true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(x), true
	}
	return "", false
}

// Float accepts numbers and numeric strings.
func (v Value) Float() (float64, bool) {
	switch x := v.v.(type) {
	case float64:
		return x, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Int accepts integral numbers and integral numeric strings.
func (v Value) Int() (int64, bool) {
	f, ok := v.Float()
	if !ok || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, false
	}
	return int64(f), true
}

func (v Value) String() string {
	if v.v == nil {
		return "null"
	}
	data, _ := json.Marshal(v.v)
	return string(data)
}
