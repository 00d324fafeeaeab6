package report

import (
	"time"
)

// FilterType selects how a date range is derived
type FilterType string

const (
	FilterAll       FilterType = "all"
	FilterToday     FilterType = "today"
	FilterYesterday FilterType = "yesterday"
	FilterThisWeek  FilterType = "thisWeek"
	FilterThisMonth FilterType = "thisMonth"
	FilterCustom    FilterType = "custom"
)

// ParseFilterType normalizes a filter type string. The legacy aliases "range"
// and "specific" map to custom; anything unknown falls back to all.
func ParseFilterType(s string) FilterType {
	switch FilterType(s) {
	case FilterToday, FilterYesterday, FilterThisWeek, FilterThisMonth:
		return FilterType(s)
	case FilterCustom, "range", "specific":
		return FilterCustom
	default:
		return FilterAll
	}
}

// DateFilter restricts records to a calendar period. StartDate/EndDate are
// local calendar dates in yyyy-MM-dd form and only apply to the custom type.
type DateFilter struct {
	Type      FilterType `json:"type"`
	StartDate string     `json:"start_date,omitempty"`
	EndDate   string     `json:"end_date,omitempty"`
}

// Range is an inclusive [Start, End] time interval
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within the range, bounds inclusive
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

const dateLayout = "2006-01-02"

// farFuture is the open upper bound when a custom end date fails to parse.
// The zero time serves the same role for the start.
var farFuture = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// Resolve computes the concrete range for the filter relative to now. The
// second return is false when the filter imposes no bounds: type all, or a
// custom filter where neither date parses.
func (f DateFilter) Resolve(now time.Time) (Range, bool) {
	switch f.Type {
	case FilterToday:
		return Range{Start: startOfDay(now), End: endOfDay(now)}, true
	case FilterYesterday:
		y := now.AddDate(0, 0, -1)
		return Range{Start: startOfDay(y), End: endOfDay(y)}, true
	case FilterThisWeek:
		// Weeks start on Monday.
		offset := (int(now.Weekday()) + 6) % 7
		start := startOfDay(now).AddDate(0, 0, -offset)
		return Range{Start: start, End: endOfDay(start.AddDate(0, 0, 6))}, true
	case FilterThisMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return Range{Start: start, End: endOfDay(start.AddDate(0, 1, -1))}, true
	case FilterCustom:
		start, err1 := time.ParseInLocation(dateLayout, f.StartDate, now.Location())
		end, err2 := time.ParseInLocation(dateLayout, f.EndDate, now.Location())
		if err1 != nil && err2 != nil {
			return Range{}, false
		}
		// A single bad bound leaves that side of the range open.
		r := Range{End: farFuture}
		if err1 == nil {
			r.Start = startOfDay(start)
		}
		if err2 == nil {
			r.End = endOfDay(end)
		}
		return r, true
	default:
		return Range{}, false
	}
}

// Label renders the period for display on a report
func (f DateFilter) Label() string {
	switch f.Type {
	case FilterToday:
		return "Today"
	case FilterYesterday:
		return "Yesterday"
	case FilterThisWeek:
		return "This Week"
	case FilterThisMonth:
		return "This Month"
	case FilterCustom:
		if f.StartDate != "" && f.EndDate != "" {
			return f.StartDate + " - " + f.EndDate
		}
		return "All Time"
	default:
		return "All Time"
	}
}

// FilterByDate keeps the records whose date falls within the filter's range,
// bounds inclusive. Records with a missing or unparseable date are excluded,
// except when the filter imposes no bounds.
func FilterByDate[T any](items []T, dateOf func(T) (time.Time, bool), f DateFilter, now time.Time) []T {
	r, bounded := f.Resolve(now)
	if !bounded {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		t, ok := dateOf(item)
		if !ok {
			continue
		}
		if r.Contains(t) {
			out = append(out, item)
		}
	}
	return out
}

// SameDay reports whether two instants fall on the same calendar date in b's
// location. Stored timestamps arrive normalized to UTC, so a is converted
// before its calendar fields are read.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(b.Location()).Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
