package query

import (
	"strings"
	"time"

	"github.com/mwantia/taskfilter/pkg/filter"
	"gorm.io/gorm/clause"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseDate accepts RFC 3339 timestamps and zone-less dates or date-times,
// which are read in loc.
func parseDate(v filter.Value, loc *time.Location) (time.Time, bool) {
	s, ok := v.Raw().(string)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func (c *Compiler) today() time.Time {
	return startOfDay(c.now(), c.location)
}

// window is the half-open interval [start, end).
func window(col clause.Column, start, end time.Time) clause.Expression {
	return clause.And(
		clause.Gte{Column: col, Value: start.UTC()},
		clause.Lt{Column: col, Value: end.UTC()},
	)
}

// outside is the complement of window.
func outside(col clause.Column, start, end time.Time) clause.Expression {
	return clause.Or(
		clause.Lt{Column: col, Value: start.UTC()},
		clause.Gte{Column: col, Value: end.UTC()},
	)
}

func dateScalar(c *Compiler, operand filter.Operand) (time.Time, bool) {
	s, ok := operand.(filter.Scalar)
	if !ok {
		return time.Time{}, false
	}
	return parseDate(s.Value, c.location)
}

func dateRange(c *Compiler, operand filter.Operand) (time.Time, time.Time, bool) {
	r, ok := operand.(filter.Range)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	start, ok := parseDate(r.Low, c.location)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	end, ok := parseDate(r.High, c.location)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	// The end day is inclusive.
	return start, startOfDay(end, c.location).AddDate(0, 0, 1), true
}

func dateRule(build func(c *Compiler, col clause.Column, at time.Time) clause.Expression) rule {
	return func(c *Compiler, t target, operand filter.Operand) clause.Expression {
		at, ok := dateScalar(c, operand)
		if !ok {
			return nil
		}
		return build(c, t.column, at)
	}
}

// relativeRule builds a window from the current day.
func relativeRule(build func(today time.Time, weekStart time.Weekday) (time.Time, time.Time)) rule {
	return func(c *Compiler, t target, _ filter.Operand) clause.Expression {
		start, end := build(c.today(), c.weekStart)
		return window(t.column, start, end)
	}
}

func registerDateRules() {
	register(filter.TypeDate, filter.OpEquals, dateRule(func(c *Compiler, col clause.Column, at time.Time) clause.Expression {
		day := startOfDay(at, c.location)
		return window(col, day, day.AddDate(0, 0, 1))
	}))
	register(filter.TypeDate, filter.OpNotEquals, dateRule(func(c *Compiler, col clause.Column, at time.Time) clause.Expression {
		day := startOfDay(at, c.location)
		return outside(col, day, day.AddDate(0, 0, 1))
	}))
	register(filter.TypeDate, filter.OpBefore, dateRule(func(_ *Compiler, col clause.Column, at time.Time) clause.Expression {
		return clause.Lt{Column: col, Value: at.UTC()}
	}))
	register(filter.TypeDate, filter.OpAfter, dateRule(func(_ *Compiler, col clause.Column, at time.Time) clause.Expression {
		return clause.Gt{Column: col, Value: at.UTC()}
	}))
	register(filter.TypeDate, filter.OpOnOrBefore, dateRule(func(c *Compiler, col clause.Column, at time.Time) clause.Expression {
		return clause.Lt{Column: col, Value: startOfDay(at, c.location).AddDate(0, 0, 1).UTC()}
	}))
	register(filter.TypeDate, filter.OpOnOrAfter, dateRule(func(_ *Compiler, col clause.Column, at time.Time) clause.Expression {
		return clause.Gte{Column: col, Value: at.UTC()}
	}))

	register(filter.TypeDate, filter.OpBetween, func(c *Compiler, t target, operand filter.Operand) clause.Expression {
		start, end, ok := dateRange(c, operand)
		if !ok {
			return nil
		}
		return window(t.column, start, end)
	})
	register(filter.TypeDate, filter.OpNotBetween, func(c *Compiler, t target, operand filter.Operand) clause.Expression {
		start, end, ok := dateRange(c, operand)
		if !ok {
			return nil
		}
		return outside(t.column, start, end)
	})

	register(filter.TypeDate, filter.OpIsToday, relativeRule(func(today time.Time, _ time.Weekday) (time.Time, time.Time) {
		return today, today.AddDate(0, 0, 1)
	}))
	register(filter.TypeDate, filter.OpIsYesterday, relativeRule(func(today time.Time, _ time.Weekday) (time.Time, time.Time) {
		return today.AddDate(0, 0, -1), today
	}))
	register(filter.TypeDate, filter.OpIsThisWeek, relativeRule(thisWeek))
	register(filter.TypeDate, filter.OpIsThisMonth, relativeRule(func(today time.Time, _ time.Weekday) (time.Time, time.Time) {
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return start, start.AddDate(0, 1, 0)
	}))
	register(filter.TypeDate, filter.OpIsThisYear, relativeRule(func(today time.Time, _ time.Weekday) (time.Time, time.Time) {
		start := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
		return start, start.AddDate(1, 0, 0)
	}))

	register(filter.TypeDate, filter.OpIsLastNDays, func(c *Compiler, t target, operand filter.Operand) clause.Expression {
		n, ok := operand.(filter.Count)
		if !ok {
			return nil
		}
		return clause.Gte{Column: t.column, Value: c.today().AddDate(0, 0, -n.N).UTC()}
	})
	register(filter.TypeDate, filter.OpIsNextNDays, func(c *Compiler, t target, operand filter.Operand) clause.Expression {
		n, ok := operand.(filter.Count)
		if !ok {
			return nil
		}
		// From now until the end of the n-th day ahead.
		return window(t.column, c.now(), c.today().AddDate(0, 0, n.N+1))
	})
}

func thisWeek(today time.Time, weekStart time.Weekday) (time.Time, time.Time) {
	offset := (int(today.Weekday()) - int(weekStart) + 7) % 7
	start := today.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 7)
}
