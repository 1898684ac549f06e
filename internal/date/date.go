// Package date implements immutable civil and zoned date/time values on
// top of a pluggable calendar system. All arithmetic is calendar-aware:
// month overflow carries into years, day overflow is clamped to the
// receiving month, and zoned values re-resolve their UTC offset through
// an explicit DST disambiguation policy rather than trusting stale
// offsets.
//
// The three value kinds form a closed sum (see Value); code that needs
// to distinguish them switches on the concrete type instead of probing
// for fields.
package date

import (
	"fmt"
	"strings"
)

// Kind discriminates the three value variants.
type Kind int

const (
	KindDate Kind = iota
	KindDateTime
	KindZoned
)

func (k Kind) String() string {
	switch k {
	case KindDate:
		return "date"
	case KindDateTime:
		return "datetime"
	case KindZoned:
		return "zoned"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is the closed sum of CalendarDate, CalendarDateTime and
// ZonedDateTime. Every implementation is an immutable value type; all
// mutators return new instances.
type Value interface {
	// Kind reports which variant this is.
	Kind() Kind

	// Date returns the civil date portion.
	Date() CalendarDate

	// Compare orders two values by absolute instant. Civil values
	// compare by Julian day plus time of day; zoned values by epoch
	// milliseconds. Comparing a zoned value against a civil one
	// treats the civil value as UTC.
	Compare(other Value) int

	// String renders the canonical ISO-8601 form (the wire format
	// consumed by hidden form inputs and the CLI).
	String() string

	sealed()
}

// CalendarDate is a civil date with no time of day.
//
// The zero CalendarDate is not valid; construct via NewCalendarDate or
// a calendar's FromJulianDay.
type CalendarDate struct {
	Era   string
	Year  int
	Month int
	Day   int

	cal Calendar
}

// NewCalendarDate builds a Gregorian AD date. Out-of-range month and
// day values are clamped, never wrapped.
func NewCalendarDate(year, month, day int) CalendarDate {
	return NewCalendarDateOf(Gregorian{}, "AD", year, month, day)
}

// NewCalendarDateOf builds a date in an explicit calendar and era,
// clamping each field to its legal range.
func NewCalendarDateOf(cal Calendar, era string, year, month, day int) CalendarDate {
	d := CalendarDate{cal: cal, Era: era, Year: year, Month: month, Day: day}
	return constrainDate(d)
}

func (d CalendarDate) calendar() Calendar {
	if d.cal == nil {
		return Gregorian{}
	}
	return d.cal
}

// Calendar returns the calendar system the date belongs to.
func (d CalendarDate) Calendar() Calendar { return d.calendar() }

func (d CalendarDate) Kind() Kind         { return KindDate }
func (d CalendarDate) Date() CalendarDate { return d }
func (CalendarDate) sealed()              {}

// constrainDate clamps era, year, month and day into their legal
// ranges, in that order, so each later bound is evaluated against the
// already-clamped earlier fields.
func constrainDate(d CalendarDate) CalendarDate {
	cal := d.calendar()
	if d.Era == "" {
		d.Era = cal.Eras()[len(cal.Eras())-1]
	}
	d.Year = clamp(d.Year, 1, cal.YearsInEra(d))
	d.Month = clamp(d.Month, 1, cal.MonthsInYear(d))
	d.Day = clamp(d.Day, 1, cal.DaysInMonth(d))
	return d
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// DaysInMonth returns the day count of the date's month.
func (d CalendarDate) DaysInMonth() int { return d.calendar().DaysInMonth(d) }

// MonthsInYear returns the month count of the date's year.
func (d CalendarDate) MonthsInYear() int { return d.calendar().MonthsInYear(d) }

// JulianDay returns the date's Julian day number, the canonical civil
// ordering key.
func (d CalendarDate) JulianDay() int { return d.calendar().ToJulianDay(d) }

// DayOfWeek returns the weekday with Sunday = 0.
func (d CalendarDate) DayOfWeek() int {
	return floorMod(d.JulianDay()+1, 7)
}

// Compare implements Value. Two dates in different calendars compare by
// Julian day and so agree on ordering.
func (d CalendarDate) Compare(other Value) int {
	return compareValues(d, other)
}

// SameDay reports whether two values fall on the same civil date.
func SameDay(a, b Value) bool {
	return a.Date().JulianDay() == b.Date().JulianDay()
}

// SameMonth reports whether two values fall in the same month of the
// same year and era.
func SameMonth(a, b Value) bool {
	da, db := a.Date(), b.Date()
	return da.Era == db.Era && da.Year == db.Year && da.Month == db.Month
}

// String renders YYYY-MM-DD. The year is the zero-padded absolute
// extended year: 1 BC is "0000", 2 BC is "-0001".
func (d CalendarDate) String() string {
	return formatISOYear(extendedYear(d.Era, d.Year)) +
		fmt.Sprintf("-%02d-%02d", d.Month, d.Day)
}

func formatISOYear(ey int) string {
	if ey < 0 {
		return fmt.Sprintf("-%04d", -ey)
	}
	return fmt.Sprintf("%04d", ey)
}

// CalendarDateTime is a civil date plus wall-clock time, with no fixed
// zone.
type CalendarDateTime struct {
	CalendarDate
	Hour        int
	Minute      int
	Second      int
	Millisecond int
}

// NewCalendarDateTime builds a Gregorian AD date-time, clamping every
// field to its legal range.
func NewCalendarDateTime(year, month, day, hour, minute, second, millisecond int) CalendarDateTime {
	dt := CalendarDateTime{
		CalendarDate: CalendarDate{cal: Gregorian{}, Era: "AD", Year: year, Month: month, Day: day},
		Hour:         hour,
		Minute:       minute,
		Second:       second,
		Millisecond:  millisecond,
	}
	return constrainDateTime(dt)
}

func constrainDateTime(dt CalendarDateTime) CalendarDateTime {
	dt.CalendarDate = constrainDate(dt.CalendarDate)
	dt.Hour = clamp(dt.Hour, 0, 23)
	dt.Minute = clamp(dt.Minute, 0, 59)
	dt.Second = clamp(dt.Second, 0, 59)
	dt.Millisecond = clamp(dt.Millisecond, 0, 999)
	return dt
}

func (dt CalendarDateTime) Kind() Kind { return KindDateTime }
func (CalendarDateTime) sealed()       {}

// timeMillis is the time of day in milliseconds since midnight.
func (dt CalendarDateTime) timeMillis() int {
	return ((dt.Hour*60+dt.Minute)*60+dt.Second)*1000 + dt.Millisecond
}

func (dt CalendarDateTime) Compare(other Value) int {
	return compareValues(dt, other)
}

// String renders YYYY-MM-DDTHH:MM:SS with a .sss suffix only when the
// value carries milliseconds.
func (dt CalendarDateTime) String() string {
	var b strings.Builder
	b.WriteString(dt.CalendarDate.String())
	fmt.Fprintf(&b, "T%02d:%02d:%02d", dt.Hour, dt.Minute, dt.Second)
	if dt.Millisecond != 0 {
		fmt.Fprintf(&b, ".%03d", dt.Millisecond)
	}
	return b.String()
}

// ZonedDateTime is an absolute instant expressed in a zone's civil
// calendar. OffsetMillis is the resolved UTC offset for the wall-clock
// fields; it is produced by ResolveAbsolute and never recomputed
// implicitly.
type ZonedDateTime struct {
	CalendarDateTime
	TimeZone     string
	OffsetMillis int
}

func (z ZonedDateTime) Kind() Kind { return KindZoned }
func (ZonedDateTime) sealed()      {}

// EpochMillis returns the instant as milliseconds since the Unix epoch.
func (z ZonedDateTime) EpochMillis() int64 {
	return epochFromCivil(z.CalendarDateTime) - int64(z.OffsetMillis)
}

func (z ZonedDateTime) Compare(other Value) int {
	return compareValues(z, other)
}

// String renders the full zoned form:
// YYYY-MM-DDTHH:MM:SS[.sss]±HH:MM[ZoneID].
func (z ZonedDateTime) String() string {
	return z.CalendarDateTime.String() + formatOffset(z.OffsetMillis) + "[" + z.TimeZone + "]"
}

func formatOffset(offsetMillis int) string {
	sign := "+"
	if offsetMillis < 0 {
		sign = "-"
		offsetMillis = -offsetMillis
	}
	mins := offsetMillis / 60000
	return fmt.Sprintf("%s%02d:%02d", sign, mins/60, mins%60)
}

// compareValues orders any two Values by absolute instant.
func compareValues(a, b Value) int {
	am, bm := instantMillis(a), instantMillis(b)
	switch {
	case am < bm:
		return -1
	case am > bm:
		return 1
	}
	return 0
}

// instantMillis denormalizes a value to epoch milliseconds. Civil
// values are taken at UTC; a bare date is midnight.
func instantMillis(v Value) int64 {
	switch t := v.(type) {
	case CalendarDate:
		return epochFromCivil(CalendarDateTime{CalendarDate: t})
	case CalendarDateTime:
		return epochFromCivil(t)
	case ZonedDateTime:
		return t.EpochMillis()
	}
	panic(fmt.Sprintf("date: unknown value kind %T", v))
}
