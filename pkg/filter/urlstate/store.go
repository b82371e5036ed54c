package urlstate

import (
	"net/url"
	"slices"
	"sync"

	"github.com/mwantia/taskfilter/pkg/filter"
)

// Navigator receives the query of every navigation the store dispatches.
// Implementations may call Sync from Navigate; the store holds no lock
// while navigating.
type Navigator interface {
	Navigate(query url.Values)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(query url.Values)

func (fn NavigatorFunc) Navigate(query url.Values) {
	fn(query)
}

// Store keeps a filter list mirrored in a URL query. Complete filters
// always come from the decode of the current query: intents build the next
// query, adopt it and dispatch it as a navigation. A query whose encoded
// filter state equals the current one is neither adopted nor dispatched, so
// a navigation echoed back through Sync does nothing.
//
// Incomplete filters, such as one whose operator was switched to between
// before the range is filled in, are held in place but left out of the
// query. An external change of the filter state discards them.
type Store struct {
	mu sync.Mutex

	nav     Navigator
	mode    Mode
	query   url.Values
	filters []filter.Filter
	key     string
}

// New creates a store for the given query and mode. The initial query is
// adopted without navigating. A nil navigator discards navigations.
func New(query url.Values, mode Mode, nav Navigator) *Store {
	if nav == nil {
		nav = NavigatorFunc(func(url.Values) {})
	}
	s := &Store{
		nav:  nav,
		mode: mode,
	}
	s.adopt(query)
	return s
}

// stateKey encodes the part of q that carries the filter list in mode.
func stateKey(mode Mode, q url.Values) string {
	if mode == ModeAdvanced {
		return "advanced:" + q.Get(filter.ParamFilters)
	}
	return "simple:" + filter.ParseSimple(q).Values().Encode()
}

func decode(mode Mode, q url.Values) []filter.Filter {
	if mode == ModeAdvanced {
		fs, _ := filter.Sanitize(filter.Deserialize(q.Get(filter.ParamFilters)))
		return fs
	}
	return filter.ParseSimple(q).Filters()
}

// encode writes fs into a copy of q. Filters the simple form cannot carry
// are left out and returned.
func encode(mode Mode, q url.Values, fs []filter.Filter) (url.Values, []filter.Filter) {
	next := cloneValues(q)
	if mode == ModeAdvanced {
		for _, name := range filter.SimpleParamNames {
			next.Del(name)
		}
		if len(fs) == 0 {
			next.Del(filter.ParamFilters)
		} else {
			next.Set(filter.ParamFilters, filter.Serialize(fs))
		}
		return next, nil
	}

	next.Del(filter.ParamFilters)
	params, dropped := filter.SimpleFromFilters(fs)
	params.ApplyTo(next)
	return next, dropped
}

// adopt makes q the current query. It reports false when the filter state
// is unchanged. Callers hold s.mu.
func (s *Store) adopt(q url.Values) bool {
	key := stateKey(s.mode, q)
	s.query = cloneValues(q)
	if key == s.key {
		return false
	}
	s.key = key
	s.filters = decode(s.mode, q)
	return true
}

// Sync applies an external URL change. It reports whether the filter list changed.
func (s *Store) Sync(query url.Values) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.adopt(query)
}

// editable reports whether f can be held while its value is incomplete.
func editable(f filter.Filter) bool {
	return f.Field != "" && filter.Supports(f.Type, f.Operator)
}

// plan encodes the complete filters of fs into the next query. The complete
// filters the mode cannot carry are returned as lost. Callers hold s.mu.
func (s *Store) plan(fs []filter.Filter) (url.Values, []filter.Filter) {
	var complete []filter.Filter
	for _, f := range fs {
		if filter.Valid(f) {
			complete = append(complete, f)
		}
	}
	return encode(s.mode, s.query, complete)
}

// held merges the complete filters decoded from the current query with the
// incomplete filters of fs. Callers hold s.mu.
func (s *Store) held(fs []filter.Filter) []filter.Filter {
	decoded := decode(s.mode, s.query)
	if s.mode == ModeSimple {
		// the simple form fixes order and ids, drafts go last
		for _, f := range fs {
			if !filter.Valid(f) {
				decoded = append(decoded, f)
			}
		}
		return decoded
	}

	out := make([]filter.Filter, 0, len(fs))
	for _, f := range fs {
		if !filter.Valid(f) {
			out = append(out, f)
			continue
		}
		if len(decoded) > 0 {
			out = append(out, decoded[0])
			decoded = decoded[1:]
		}
	}
	return out
}

// apply adopts next, keeps the drafts of fs and dispatches next if the
// filter state changed. Callers hold s.mu, which apply releases.
func (s *Store) apply(next url.Values, fs []filter.Filter) {
	changed := s.adopt(next)
	s.filters = s.held(fs)
	s.mu.Unlock()

	if changed {
		s.nav.Navigate(cloneValues(next))
	}
}

// commit stores fs and returns the filters that were not kept: those that
// are not even editable, and complete ones the mode cannot express. Callers
// hold s.mu, which commit releases.
func (s *Store) commit(fs []filter.Filter) []filter.Filter {
	var kept, rejected []filter.Filter
	for _, f := range fs {
		if editable(f) {
			kept = append(kept, f)
		} else {
			rejected = append(rejected, f)
		}
	}

	next, lost := s.plan(kept)
	s.apply(next, kept)
	return append(rejected, lost...)
}

// Add appends f and returns the id under which it is stored. A missing id is
// generated, and the simple form replaces ids of complete filters with
// SimpleID. A filter without a usable value yet is held as a draft. The
// boolean is false when f was not stored: its operator does not fit its
// type, or the simple form cannot express it next to the filters already
// present.
func (s *Store) Add(f filter.Filter) (string, bool) {
	if !editable(f) {
		return "", false
	}
	if f.ID == "" {
		f.ID = filter.NewID()
	}

	s.mu.Lock()
	fs := append(slices.Clone(s.filters), f)
	next, lost := s.plan(fs)
	if len(lost) > 0 {
		s.mu.Unlock()
		return "", false
	}
	mode := s.mode
	s.apply(next, fs)

	if mode == ModeSimple && filter.Valid(f) {
		return filter.SimpleID(f.Field), true
	}
	return f.ID, true
}

// Update replaces the filter with the given id by the result of fn, keeping
// its id and position. An edit that leaves the filter incomplete keeps it as
// a draft. Update reports false and keeps the old filter when the id is
// unknown or the edit cannot be stored.
func (s *Store) Update(id string, fn func(f *filter.Filter)) bool {
	s.mu.Lock()
	idx := slices.IndexFunc(s.filters, func(f filter.Filter) bool { return f.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return false
	}

	fs := filter.Clone(s.filters)
	updated := fs[idx]
	fn(&updated)
	updated.ID = id
	if !editable(updated) {
		s.mu.Unlock()
		return false
	}
	fs[idx] = updated

	next, lost := s.plan(fs)
	if len(lost) > 0 {
		s.mu.Unlock()
		return false
	}
	s.apply(next, fs)
	return true
}

// Remove deletes the filter with the given id and reports whether it existed.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	idx := slices.IndexFunc(s.filters, func(f filter.Filter) bool { return f.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return false
	}

	s.commit(slices.Delete(slices.Clone(s.filters), idx, idx+1))
	return true
}

// Clear removes every filter.
func (s *Store) Clear() {
	s.mu.Lock()
	s.commit([]filter.Filter{})
}

// Set replaces the whole filter list. It returns the filters the current
// mode could not keep.
func (s *Store) Set(fs []filter.Filter) []filter.Filter {
	s.mu.Lock()
	return s.commit(filter.Clone(fs))
}

// Get returns the filter with the given id.
func (s *Store) Get(id string) (filter.Filter, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.filters {
		if f.ID == id {
			return f, true
		}
	}
	return filter.Filter{}, false
}

// Filters returns a copy of the current filter list.
func (s *Store) Filters() []filter.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()

	return filter.Clone(s.filters)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.filters)
}

func (s *Store) HasFilters() bool {
	return s.Len() > 0
}

// Summary describes the number of held filters, drafts included.
func (s *Store) Summary() string {
	return filter.Summary(s.Len())
}

// Query returns a copy of the current URL query.
func (s *Store) Query() url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneValues(s.query)
}

func (s *Store) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mode
}

// ToAdvanced switches to the advanced form. Every filter carries over.
func (s *Store) ToAdvanced() {
	s.mu.Lock()
	if s.mode == ModeAdvanced {
		s.mu.Unlock()
		return
	}
	s.switchMode(ModeAdvanced)
}

// ToSimple switches to the simple form and returns the filters it cannot
// express. Those are removed from the URL.
func (s *Store) ToSimple() []filter.Filter {
	s.mu.Lock()
	if s.mode == ModeSimple {
		s.mu.Unlock()
		return nil
	}
	return s.switchMode(ModeSimple)
}

// switchMode re-encodes the current filters in mode. Drafts carry over.
// Callers hold s.mu, which switchMode releases.
func (s *Store) switchMode(mode Mode) []filter.Filter {
	fs := s.filters
	s.mode = mode
	// the next adopt decodes under the new mode
	s.key = ""

	next, dropped := s.plan(fs)
	changed := next.Encode() != s.query.Encode()
	s.adopt(next)
	s.filters = s.held(fs)
	s.mu.Unlock()

	if changed {
		s.nav.Navigate(cloneValues(next))
	}
	return dropped
}

func cloneValues(q url.Values) url.Values {
	out := make(url.Values, len(q))
	for k, v := range q {
		out[k] = slices.Clone(v)
	}
	return out
}
