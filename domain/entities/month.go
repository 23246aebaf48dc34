package entities

import (
	"fmt"
	"time"
)

// Month is a calendar month in UTC, normalized to midnight on the first day.
// It is the grain for sales history, time-bucketed reporting, and
// distribution runs.
type Month struct {
	t time.Time
}

// MonthOf returns the month containing the given instant
func MonthOf(t time.Time) Month {
	t = t.UTC()
	return Month{t: time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)}
}

// ParseMonth parses a month in YYYY-MM form
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return MonthOf(t), nil
}

// Time returns the first instant of the month
func (m Month) Time() time.Time {
	return m.t
}

// Prev returns the previous calendar month
func (m Month) Prev() Month {
	return MonthOf(m.t.AddDate(0, -1, 0))
}

// Next returns the following calendar month
func (m Month) Next() Month {
	return MonthOf(m.t.AddDate(0, 1, 0))
}

// Contains reports whether the instant falls inside the month
func (m Month) Contains(t time.Time) bool {
	t = t.UTC()
	return !t.Before(m.t) && t.Before(m.Next().t)
}

// Equal reports whether two months are the same calendar month
func (m Month) Equal(other Month) bool {
	return m.t.Equal(other.t)
}

// Before reports whether m precedes other
func (m Month) Before(other Month) bool {
	return m.t.Before(other.t)
}

// Label returns the display label used in monthly series output
func (m Month) Label() string {
	return m.t.Format("Jan 2006")
}

// String returns the month in YYYY-MM form
func (m Month) String() string {
	return m.t.Format("2006-01")
}

// IsZero reports whether the month is the zero value
func (m Month) IsZero() bool {
	return m.t.IsZero()
}

// SeriesEndingAt returns the n consecutive months ending at (and including)
// the given month, in ascending order
func SeriesEndingAt(end Month, n int) []Month {
	months := make([]Month, n)
	m := end
	for i := n - 1; i >= 0; i-- {
		months[i] = m
		m = m.Prev()
	}
	return months
}
