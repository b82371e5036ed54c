package filter

import (
	"net/url"
)

// Simple query parameters understood by the flat filter form.
const (
	ParamSearch   = "search"
	ParamStatus   = "status"
	ParamPriority = "priority"
	ParamLabel    = "label"
)

// Fields addressed by the simple form. search maps onto the text field.
const (
	FieldText     = "text"
	FieldStatus   = "status"
	FieldPriority = "priority"
	FieldLabel    = "label"
)

// SimpleParams is the flat filter form: a free text search and repeatable
// status, priority and label parameters.
type SimpleParams struct {
	Search   string
	Status   []string
	Priority []string
	Label    []string
}

// SimpleParamNames lists the query parameters owned by the simple form.
var SimpleParamNames = []string{ParamSearch, ParamStatus, ParamPriority, ParamLabel}

// ParseSimple reads the simple parameters from q, skipping empty values.
func ParseSimple(q url.Values) SimpleParams {
	return SimpleParams{
		Search:   q.Get(ParamSearch),
		Status:   nonEmpty(q[ParamStatus]),
		Priority: nonEmpty(q[ParamPriority]),
		Label:    nonEmpty(q[ParamLabel]),
	}
}

func (p SimpleParams) IsZero() bool {
	return p.Search == "" && len(p.Status) == 0 && len(p.Priority) == 0 && len(p.Label) == 0
}

// Values encodes p as query parameters, one occurrence per value.
func (p SimpleParams) Values() url.Values {
	q := url.Values{}
	p.ApplyTo(q)
	return q
}

// ApplyTo replaces the simple parameters of q with p, leaving others intact.
func (p SimpleParams) ApplyTo(q url.Values) {
	for _, name := range SimpleParamNames {
		q.Del(name)
	}
	if p.Search != "" {
		q.Set(ParamSearch, p.Search)
	}
	for _, v := range p.Status {
		q.Add(ParamStatus, v)
	}
	for _, v := range p.Priority {
		q.Add(ParamPriority, v)
	}
	for _, v := range p.Label {
		q.Add(ParamLabel, v)
	}
}

// Filters converts p to the advanced form. The conversion is lossless and
// deterministic: ids are derived from the field so the same parameters always
// yield the same list.
func (p SimpleParams) Filters() []Filter {
	fs := []Filter{}
	if p.Search != "" {
		fs = append(fs, Filter{
			ID:       SimpleID(FieldText),
			Field:    FieldText,
			Operator: OpContains,
			Value:    String(p.Search),
			Type:     TypeText,
		})
	}
	for _, sel := range []struct {
		field  string
		values []string
	}{
		{FieldStatus, p.Status},
		{FieldPriority, p.Priority},
		{FieldLabel, p.Label},
	} {
		if f, ok := selectFilter(sel.field, sel.values); ok {
			fs = append(fs, f)
		}
	}
	return fs
}

func selectFilter(field string, values []string) (Filter, bool) {
	switch len(values) {
	case 0:
		return Filter{}, false
	case 1:
		return Filter{
			ID:       SimpleID(field),
			Field:    field,
			Operator: OpIs,
			Value:    String(values[0]),
			Type:     TypeSelect,
		}, true
	}
	return Filter{
		ID:       SimpleID(field),
		Field:    field,
		Operator: OpIsAnyOf,
		Value:    Strings(values...),
		Type:     TypeMultiSelect,
	}, true
}

// SimpleID is the id the simple form gives the filter of field.
func SimpleID(field string) string {
	return "simple-" + field
}

// SimpleFromFilters downgrades fs to the simple form. This is lossy: only a
// text contains filter and status, priority or label filters of the exact
// shapes produced by Filters survive, and only the first filter per field.
// Everything else is returned as dropped.
func SimpleFromFilters(fs []Filter) (SimpleParams, []Filter) {
	var (
		p       SimpleParams
		dropped []Filter
		seen    = map[string]bool{}
	)
	for _, f := range fs {
		if seen[f.Field] {
			dropped = append(dropped, f)
			continue
		}
		switch f.Field {
		case FieldText:
			s, ok := f.Value.Raw().(string)
			if f.Type != TypeText || f.Operator != OpContains || !ok || s == "" {
				dropped = append(dropped, f)
				continue
			}
			p.Search = s

		case FieldStatus, FieldPriority, FieldLabel:
			values, ok := simpleSelectValues(f)
			if !ok {
				dropped = append(dropped, f)
				continue
			}
			switch f.Field {
			case FieldStatus:
				p.Status = values
			case FieldPriority:
				p.Priority = values
			case FieldLabel:
				p.Label = values
			}

		default:
			dropped = append(dropped, f)
			continue
		}
		seen[f.Field] = true
	}
	return p, dropped
}

func simpleSelectValues(f Filter) ([]string, bool) {
	switch {
	case f.Type == TypeSelect && f.Operator == OpIs:
		s, ok := f.Value.Raw().(string)
		if !ok || s == "" {
			return nil, false
		}
		return []string{s}, true

	case f.Type == TypeMultiSelect && f.Operator == OpIsAnyOf:
		items, ok := f.Value.Items()
		if !ok || len(items) == 0 {
			return nil, false
		}
		values := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.Raw().(string)
			if !ok || s == "" {
				return nil, false
			}
			values = append(values, s)
		}
		return values, true
	}
	return nil, false
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
