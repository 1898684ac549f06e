package date

import "fmt"

// DateField names an individually settable or cyclable field.
type DateField string

const (
	FieldEra         DateField = "era"
	FieldYear        DateField = "year"
	FieldMonth       DateField = "month"
	FieldDay         DateField = "day"
	FieldHour        DateField = "hour"
	FieldMinute      DateField = "minute"
	FieldSecond      DateField = "second"
	FieldMillisecond DateField = "millisecond"
)

// Fields carries optional overrides for Set. Nil means "leave alone".
type Fields struct {
	Era         *string
	Year        *int
	Month       *int
	Day         *int
	Hour        *int
	Minute      *int
	Second      *int
	Millisecond *int
}

// Int is a convenience for building Fields literals.
func Int(v int) *int { return &v }

// Str is a convenience for building Fields literals.
func Str(v string) *string { return &v }

// Set overwrites the provided date fields and re-clamps. Time fields in
// f are ignored for a plain date.
func (d CalendarDate) Set(f Fields) CalendarDate {
	if f.Era != nil {
		d.Era = *f.Era
	}
	if f.Year != nil {
		d.Year = *f.Year
	}
	if f.Month != nil {
		d.Month = *f.Month
	}
	if f.Day != nil {
		d.Day = *f.Day
	}
	return constrainDate(d)
}

// Set overwrites the provided date and time fields and re-clamps.
func (dt CalendarDateTime) Set(f Fields) CalendarDateTime {
	dt.CalendarDate = dt.CalendarDate.Set(f)
	if f.Hour != nil {
		dt.Hour = *f.Hour
	}
	if f.Minute != nil {
		dt.Minute = *f.Minute
	}
	if f.Second != nil {
		dt.Second = *f.Second
	}
	if f.Millisecond != nil {
		dt.Millisecond = *f.Millisecond
	}
	return constrainDateTime(dt)
}

// Set overwrites fields on the wall clock and re-resolves the absolute
// instant under the given disambiguation policy.
func (z ZonedDateTime) Set(f Fields, dis Disambiguation) (ZonedDateTime, error) {
	return ToZoned(z.CalendarDateTime.Set(f), z.TimeZone, dis)
}

// CycleOptions tunes Cycle.
type CycleOptions struct {
	// Round snaps to the nearest multiple of the step instead of
	// adding it, wrapping at the field's bounds. Used for paged
	// keyboard stepping (e.g. minutes by 15).
	Round bool

	// HourCycle12 confines hour cycling to the current half of the
	// day (0-11 or 12-23) so arrowing an hour segment in a 12-hour
	// field never flips the day period.
	HourCycle12 bool
}

// Cycle wraps the field by amount within its legal bounds; it never
// carries into a neighboring field (December + 1 month is January of
// the same year). Cycling a field the calendar does not support is a
// programming error in field dispatch and panics.
func (d CalendarDate) Cycle(field DateField, amount int, opts CycleOptions) CalendarDate {
	cal := d.calendar()
	switch field {
	case FieldEra:
		eras := cal.Eras()
		idx := 0
		for i, e := range eras {
			if e == d.Era {
				idx = i
				break
			}
		}
		idx = cycleValue(idx, amount, 0, len(eras)-1, opts.Round)
		d.Era = eras[idx]
		return constrainDate(d)
	case FieldYear:
		d.Year = cycleValue(d.Year, amount, 1, cal.YearsInEra(d), opts.Round)
		return constrainDate(d)
	case FieldMonth:
		d.Month = cycleValue(d.Month, amount, 1, cal.MonthsInYear(d), opts.Round)
		return constrainDate(d)
	case FieldDay:
		d.Day = cycleValue(d.Day, amount, 1, cal.DaysInMonth(d), opts.Round)
		return d
	}
	panic(fmt.Sprintf("date: cannot cycle field %q on a calendar date", field))
}

// Cycle wraps a date or time field within its bounds.
func (dt CalendarDateTime) Cycle(field DateField, amount int, opts CycleOptions) CalendarDateTime {
	switch field {
	case FieldEra, FieldYear, FieldMonth, FieldDay:
		dt.CalendarDate = dt.CalendarDate.Cycle(field, amount, opts)
		return dt
	case FieldHour:
		lo, hi := 0, 23
		if opts.HourCycle12 {
			if dt.Hour >= 12 {
				lo, hi = 12, 23
			} else {
				lo, hi = 0, 11
			}
		}
		dt.Hour = cycleValue(dt.Hour, amount, lo, hi, opts.Round)
		return dt
	case FieldMinute:
		dt.Minute = cycleValue(dt.Minute, amount, 0, 59, opts.Round)
		return dt
	case FieldSecond:
		dt.Second = cycleValue(dt.Second, amount, 0, 59, opts.Round)
		return dt
	case FieldMillisecond:
		dt.Millisecond = cycleValue(dt.Millisecond, amount, 0, 999, opts.Round)
		return dt
	}
	panic(fmt.Sprintf("date: cannot cycle field %q on a calendar date-time", field))
}

// Cycle wraps a wall-clock field and re-resolves the instant with the
// compatible policy.
func (z ZonedDateTime) Cycle(field DateField, amount int, opts CycleOptions) (ZonedDateTime, error) {
	return ToZoned(z.CalendarDateTime.Cycle(field, amount, opts), z.TimeZone, DisambiguationCompatible)
}

// cycleValue wraps value by amount within [lower, upper]. With round,
// the value instead snaps to the next multiple of |amount| in the
// direction of travel, wrapping at the bounds.
func cycleValue(value, amount, lower, upper int, round bool) int {
	if round {
		value += sign(amount)
		if value < lower {
			value = upper
		}
		step := amount
		if step < 0 {
			step = -step
		}
		if amount > 0 {
			value = ceilDiv(value, step) * step
		} else {
			value = floorDiv(value, step) * step
		}
		if value > upper {
			value = lower
		}
		return value
	}

	value += amount
	if value < lower {
		value = upper - (lower - value - 1)
	} else if value > upper {
		value = lower + (value - upper - 1)
	}
	return value
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

func ceilDiv(a, b int) int {
	return floorDiv(a+b-1, b)
}
