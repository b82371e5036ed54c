package filter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ParamFilters is the query parameter holding the serialized advanced filters.
const ParamFilters = "filters"

var ErrMalformed = errors.New("malformed filter payload")

// Serialize encodes fs as a JSON array, keeping list order and the
// id, field, operator, value, type key order of every filter.
func Serialize(fs []Filter) string {
	if fs == nil {
		fs = []Filter{}
	}
	data, err := json.Marshal(fs)
	if err != nil {
		// Value only ever holds decoded JSON, so this is unreachable.
		return "[]"
	}
	return string(data)
}

// Parse decodes a serialized filter list. The payload must be a JSON array of
// objects; individual filters are not validated.
func Parse(s string) ([]Filter, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []Filter{}, nil
	}
	var fs []Filter
	if err := json.Unmarshal([]byte(s), &fs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if fs == nil {
		return nil, fmt.Errorf("%w: expected an array", ErrMalformed)
	}
	return fs, nil
}

// Deserialize is the lenient form of Parse: malformed input yields an empty list.
func Deserialize(s string) []Filter {
	fs, err := Parse(s)
	if err != nil {
		return []Filter{}
	}
	return fs
}

// FromValues extracts the filter list from request query parameters. A
// non-empty filters parameter takes precedence over simple parameters.
// Malformed payloads degrade to no filters and invalid clauses are dropped;
// the returned error only describes what was discarded.
func FromValues(q url.Values) ([]Filter, error) {
	if raw := q.Get(ParamFilters); raw != "" {
		fs, err := Parse(raw)
		if err != nil {
			return []Filter{}, err
		}
		valid, dropped := Sanitize(fs)
		if dropped > 0 {
			return valid, fmt.Errorf("%w: dropped %d of %d filters", ErrInvalidFilter, dropped, len(fs))
		}
		return valid, nil
	}
	return ParseSimple(q).Filters(), nil
}
