// Package dateutil provides the calendar date type and date parsing utilities.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// KeyLayout is the canonical YYYY-MM-DD layout of a Date.
const KeyLayout = "2006-01-02"

// Validation errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD format")
	ErrEndDateBeforeStart = errors.New("end date must be on or after start date")
)

// weekdayMap maps weekday names to time.Weekday values.
var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Date is a calendar day with no time-of-day or location.
// The zero value is not a valid date; use IsZero to check.
type Date struct {
	t time.Time // always midnight UTC
}

// New returns the Date for the given year, month and day.
// Out-of-range values are normalized the way time.Date does.
func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime returns the calendar day of t in t's location.
func FromTime(t time.Time) Date {
	return New(t.Year(), t.Month(), t.Day())
}

// Today returns the calendar day of now on its own wall clock. time.Now
// carries the local zone.
func Today(now time.Time) Date {
	return FromTime(now)
}

// Key returns the canonical YYYY-MM-DD form.
func (d Date) Key() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(KeyLayout)
}

// String implements fmt.Stringer.
func (d Date) String() string {
	return d.Key()
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.t.Year(), d.t.Month(), d.t.Day(), 0, 0, 0, 0, loc)
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// DaysUntil returns the number of days from d to other (negative if other is earlier).
func (d Date) DaysUntil(other Date) int {
	const secondsPerDay = 24 * 60 * 60
	return int((other.t.Unix() - d.t.Unix()) / secondsPerDay)
}

// Equal reports whether d and other are the same day.
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday {
	return d.t.Weekday()
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.t.Day()
}

// Month returns the month.
func (d Date) Month() time.Month {
	return d.t.Month()
}

// Year returns the year.
func (d Date) Year() int {
	return d.t.Year()
}

// Format formats d with a time layout.
func (d Date) Format(layout string) string {
	return d.t.Format(layout)
}

// MarshalText encodes d as its canonical key.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.Key()), nil
}

// UnmarshalText decodes a canonical key.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Parse parses a date string in YYYY-MM-DD format.
func Parse(s string) (Date, error) {
	t, err := time.Parse(KeyLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDateFormat
	}
	return FromTime(t), nil
}

// ParseDate parses a date string in YYYY-MM-DD format.
// If the string is empty, returns today's date.
func ParseDate(s string, now time.Time) (Date, error) {
	if strings.TrimSpace(s) == "" {
		return Today(now), nil
	}
	return Parse(s)
}

// DateRange represents a validated inclusive date range.
type DateRange struct {
	Start Date
	End   Date
}

// NewDateRange creates a new DateRange with validation.
// startDate can be empty (defaults to today) or in YYYY-MM-DD format.
// endDate can be empty (defaults to startDate) or in YYYY-MM-DD format.
func NewDateRange(startDate, endDate string, now time.Time) (*DateRange, error) {
	start, err := ParseDate(startDate, now)
	if err != nil {
		return nil, err
	}

	end := start
	if endDate != "" {
		end, err = Parse(endDate)
		if err != nil {
			return nil, err
		}
	}

	if end.Before(start) {
		return nil, ErrEndDateBeforeStart
	}

	return &DateRange{Start: start, End: end}, nil
}

// Contains reports whether d falls within the range.
func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Span returns every date from start to end inclusive.
// An empty slice is returned when end is before start.
func Span(start, end Date) []Date {
	n := start.DaysUntil(end) + 1
	if n <= 0 {
		return []Date{}
	}
	out := make([]Date, n)
	for i := range out {
		out[i] = start.AddDays(i)
	}
	return out
}

// WeekStart returns the Monday of the ISO week containing d.
func WeekStart(d Date) Date {
	weekday := int(d.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday becomes day 7 in ISO week
	}
	return d.AddDays(-(weekday - 1))
}

// ParseRelative parses a date string that can be:
//   - Empty string or "today": returns today
//   - Absolute date: "2025-01-15" (YYYY-MM-DD)
//   - Keywords: "tomorrow", "yesterday", "next-week"
//   - Weekday names: "monday" through "sunday" (next occurrence, always future)
//
// All inputs are case-insensitive. Past dates are allowed.
func ParseRelative(s string, now time.Time) (Date, error) {
	today := Today(now)
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDays(1), nil
	case "yesterday":
		return today.AddDays(-1), nil
	case "next-week":
		return today.AddDays(7), nil
	}

	if target, ok := weekdayMap[input]; ok {
		return nextWeekday(today, target), nil
	}

	return Parse(input)
}

// nextWeekday returns the next occurrence of the given weekday after today.
// If today is the target weekday, returns one week from today.
func nextWeekday(today Date, target time.Weekday) Date {
	daysUntil := int(target) - int(today.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return today.AddDays(daysUntil)
}
