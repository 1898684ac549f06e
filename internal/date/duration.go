package date

// Duration is a bag of optional calendar and time deltas for Add and
// Subtract. Calendar fields (years, months, weeks, days) are applied
// first with calendar-aware balancing; time fields follow with carry
// into days.
type Duration struct {
	Years  int
	Months int
	Weeks  int
	Days   int

	Hours        int
	Minutes      int
	Seconds      int
	Milliseconds int
}

// Negated returns the duration with every field sign-flipped.
func (d Duration) Negated() Duration {
	return Duration{
		Years:        -d.Years,
		Months:       -d.Months,
		Weeks:        -d.Weeks,
		Days:         -d.Days,
		Hours:        -d.Hours,
		Minutes:      -d.Minutes,
		Seconds:      -d.Seconds,
		Milliseconds: -d.Milliseconds,
	}
}

func (d Duration) timeMillis() int64 {
	return ((int64(d.Hours)*60+int64(d.Minutes))*60+int64(d.Seconds))*1000 +
		int64(d.Milliseconds)
}

const dayMillis = 24 * 60 * 60 * 1000

// Add returns the date shifted by the duration. Years and months are
// applied first with the month balanced into the year; the day is then
// clamped to the resulting month's length (Jan 31 + 1 month is the last
// day of February, not March 2); finally weeks, days and any whole days
// contributed by the time fields move the date through its Julian day,
// which balances across month and year boundaries exactly.
func (d CalendarDate) Add(dur Duration) CalendarDate {
	cal := d.calendar()

	ey := extendedYear(d.Era, d.Year) + dur.Years
	m := d.Month + dur.Months
	ey += floorDiv(m-1, 12)
	m = floorMod(m-1, 12) + 1

	era, year := eraFromExtended(ey)
	shifted := constrainDate(CalendarDate{cal: cal, Era: era, Year: year, Month: m, Day: d.Day})

	days := dur.Weeks*7 + dur.Days + int(floorDiv64(dur.timeMillis(), dayMillis))
	if days == 0 {
		return shifted
	}
	return cal.FromJulianDay(cal.ToJulianDay(shifted) + days)
}

// Subtract is Add with the duration negated.
func (d CalendarDate) Subtract(dur Duration) CalendarDate {
	return d.Add(dur.Negated())
}

// Add applies the calendar fields to the date part and the time fields
// to the wall clock, carrying whole days between them.
func (dt CalendarDateTime) Add(dur Duration) CalendarDateTime {
	calendarOnly := Duration{Years: dur.Years, Months: dur.Months, Weeks: dur.Weeks, Days: dur.Days}
	day := dt.CalendarDate.Add(calendarOnly)

	total := int64(dt.timeMillis()) + dur.timeMillis()
	carry := int(floorDiv64(total, dayMillis))
	if carry != 0 {
		cal := day.calendar()
		day = cal.FromJulianDay(cal.ToJulianDay(day) + carry)
	}
	return withTimeMillis(day, int(floorMod64(total, dayMillis)))
}

func (dt CalendarDateTime) Subtract(dur Duration) CalendarDateTime {
	return dt.Add(dur.Negated())
}

// Add shifts the wall-clock fields in local civil time and then
// re-resolves the result to an absolute instant in the zone. A +1 day
// across a DST boundary therefore lands on the same wall-clock time,
// not 23 or 25 hours later, unless the target wall time does not exist.
func (z ZonedDateTime) Add(dur Duration) (ZonedDateTime, error) {
	return ToZoned(z.CalendarDateTime.Add(dur), z.TimeZone, DisambiguationCompatible)
}

func (z ZonedDateTime) Subtract(dur Duration) (ZonedDateTime, error) {
	return z.Add(dur.Negated())
}

// withTimeMillis decomposes a time-of-day in milliseconds onto a date.
func withTimeMillis(d CalendarDate, tod int) CalendarDateTime {
	ms := tod % 1000
	tod /= 1000
	sec := tod % 60
	tod /= 60
	minute := tod % 60
	hour := tod / 60
	return CalendarDateTime{CalendarDate: d, Hour: hour, Minute: minute, Second: sec, Millisecond: ms}
}

func floorDiv64(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod64(a, b int64) int64 {
	return a - floorDiv64(a, b)*b
}
