package date

import "fmt"

// Calendar abstracts a calendar system. Dates in this package carry a
// Calendar and route all month/day bounds and Julian-day conversions
// through it, so a non-Gregorian system can be slotted in without
// touching the arithmetic code.
//
// Only the proleptic Gregorian calendar ships today.
type Calendar interface {
	// Identifier returns the calendar's stable identifier (e.g. "gregory").
	Identifier() string

	// Eras lists the calendar's era identifiers, earliest first.
	Eras() []string

	// MonthsInYear returns the number of months in the date's year.
	MonthsInYear(d CalendarDate) int

	// DaysInMonth returns the number of days in the date's month.
	DaysInMonth(d CalendarDate) int

	// YearsInEra returns the maximum year number within the date's era.
	YearsInEra(d CalendarDate) int

	// ToJulianDay converts a calendar date to its Julian day number.
	ToJulianDay(d CalendarDate) int

	// FromJulianDay converts a Julian day number back to a calendar date.
	FromJulianDay(jd int) CalendarDate
}

// Gregorian is the proleptic Gregorian calendar: the Gregorian leap
// rules extended indefinitely backwards, with eras "BC" and "AD".
type Gregorian struct{}

func (Gregorian) Identifier() string { return "gregory" }

func (Gregorian) Eras() []string { return []string{"BC", "AD"} }

func (Gregorian) MonthsInYear(CalendarDate) int { return 12 }

var daysInMonthTable = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func isLeapYear(extendedYear int) bool {
	return extendedYear%4 == 0 && (extendedYear%100 != 0 || extendedYear%400 == 0)
}

func gregorianDaysInMonth(extendedYear, month int) int {
	if month == 2 && isLeapYear(extendedYear) {
		return 29
	}
	return daysInMonthTable[month]
}

func (Gregorian) DaysInMonth(d CalendarDate) int {
	return gregorianDaysInMonth(extendedYear(d.Era, d.Year), d.Month)
}

func (Gregorian) YearsInEra(d CalendarDate) int {
	// 9999 keeps four-digit ISO years; BC has no practical upper bound
	// but is capped the same way for symmetry.
	return 9999
}

// extendedYear maps (era, year-in-era) to an astronomical year number
// where 1 BC is year 0, 2 BC is year -1 and so on.
func extendedYear(era string, year int) int {
	if era == "BC" {
		return 1 - year
	}
	return year
}

// eraFromExtended is the inverse of extendedYear.
func eraFromExtended(ey int) (era string, year int) {
	if ey <= 0 {
		return "BC", 1 - ey
	}
	return "AD", ey
}

// Julian day conversions use the closed-form Fliegel–Van Flandern
// formulas generalized to the proleptic Gregorian calendar. They are
// exact over the full supported year range; no iteration, no lookup
// beyond the arithmetic itself.

func (Gregorian) ToJulianDay(d CalendarDate) int {
	y := extendedYear(d.Era, d.Year)
	a := floorDiv(14-d.Month, 12)
	yy := y + 4800 - a
	mm := d.Month + 12*a - 3
	return d.Day + floorDiv(153*mm+2, 5) + 365*yy +
		floorDiv(yy, 4) - floorDiv(yy, 100) + floorDiv(yy, 400) - 32045
}

func (g Gregorian) FromJulianDay(jd int) CalendarDate {
	a := jd + 32044
	b := floorDiv(4*a+3, 146097)
	c := a - floorDiv(146097*b, 4)
	d := floorDiv(4*c+3, 1461)
	e := c - floorDiv(1461*d, 4)
	m := floorDiv(5*e+2, 153)

	day := e - floorDiv(153*m+2, 5) + 1
	month := m + 3 - 12*floorDiv(m, 10)
	year := 100*b + d - 4800 + floorDiv(m, 10)

	era, y := eraFromExtended(year)
	return CalendarDate{cal: g, Era: era, Year: y, Month: month, Day: day}
}

// CalendarFor returns the calendar registered under the given
// identifier. Unknown identifiers are an error: callers dispatch on
// configuration, not user input.
func CalendarFor(identifier string) (Calendar, error) {
	switch identifier {
	case "", "gregory":
		return Gregorian{}, nil
	}
	return nil, fmt.Errorf("unsupported calendar %q", identifier)
}

// ToCalendar converts a date into the target calendar system via its
// Julian day. Round-tripping through "gregory" is lossless.
func ToCalendar(d CalendarDate, cal Calendar) CalendarDate {
	return cal.FromJulianDay(d.calendar().ToJulianDay(d))
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
