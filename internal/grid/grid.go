// Package grid builds calendar month matrices and implements the
// selection and roving-focus rules for a calendar component. It is
// headless: cells are plain dates plus index math, with rendering and
// event plumbing left to the caller.
package grid

import "almanac/internal/date"

// Month is one rendered month: its first day, the flat ordered cell
// list covering whole display weeks, and the same cells chunked into
// 7-wide week rows.
type Month struct {
	Value date.CalendarDate
	Dates []date.CalendarDate
	Weeks [][]date.CalendarDate
}

// Config drives month construction.
type Config struct {
	// WeekStartsOn is the first weekday of each row, Sunday = 0.
	WeekStartsOn int
	// NumberOfMonths is how many consecutive months to build (min 1).
	NumberOfMonths int
	// FixedWeeks pads every month to exactly six week rows.
	FixedWeeks bool
	// PagedNavigation makes NextPage/PrevPage jump by NumberOfMonths
	// instead of one month.
	PagedNavigation bool
	// MinValue and MaxValue disable navigation beyond their months.
	MinValue *date.CalendarDate
	MaxValue *date.CalendarDate
}

func (c Config) months() int {
	if c.NumberOfMonths < 1 {
		return 1
	}
	return c.NumberOfMonths
}

// BuildMonths produces cfg.NumberOfMonths consecutive months starting
// at anchor's month.
func BuildMonths(anchor date.CalendarDate, cfg Config) []Month {
	out := make([]Month, 0, cfg.months())
	first := firstOfMonth(anchor)
	for i := 0; i < cfg.months(); i++ {
		out = append(out, buildMonth(first.Add(date.Duration{Months: i}), cfg))
	}
	return out
}

func buildMonth(first date.CalendarDate, cfg Config) Month {
	first = firstOfMonth(first)
	last := lastOfMonth(first)

	// Walk back from day 1 to the week start, pulling in trailing
	// days of the previous month, and forward from the last day to
	// the day before the next week start.
	start := first.Subtract(date.Duration{Days: daysSinceWeekStart(first, cfg.WeekStartsOn)})
	end := last.Add(date.Duration{Days: 6 - daysSinceWeekStart(last, cfg.WeekStartsOn)})

	var dates []date.CalendarDate
	for d := start; d.Compare(end) <= 0; d = d.Add(date.Duration{Days: 1}) {
		dates = append(dates, d)
	}

	if cfg.FixedWeeks {
		for len(dates) < 42 {
			next := dates[len(dates)-1].Add(date.Duration{Days: 1})
			for i := 0; i < 7; i++ {
				dates = append(dates, next.Add(date.Duration{Days: i}))
			}
		}
	}

	weeks := make([][]date.CalendarDate, 0, len(dates)/7)
	for i := 0; i+7 <= len(dates); i += 7 {
		weeks = append(weeks, dates[i:i+7])
	}
	return Month{Value: first, Dates: dates, Weeks: weeks}
}

func firstOfMonth(d date.CalendarDate) date.CalendarDate {
	return d.Set(date.Fields{Day: date.Int(1)})
}

func lastOfMonth(d date.CalendarDate) date.CalendarDate {
	return d.Set(date.Fields{Day: date.Int(d.DaysInMonth())})
}

// daysSinceWeekStart counts how far d is past the most recent week
// start (0..6).
func daysSinceWeekStart(d date.CalendarDate, weekStartsOn int) int {
	return ((d.DayOfWeek()-weekStartsOn)%7 + 7) % 7
}
