package date

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Parsing accepts the same ISO-8601 shapes String produces:
//   - YYYY-MM-DD
//   - YYYY-MM-DDTHH:MM:SS[.sss]
//   - YYYY-MM-DDTHH:MM:SS[.sss]±HH:MM[Zone/ID]
//
// A leading minus on the year selects the BC era ("-0001" is 2 BC,
// "0000" is 1 BC).

var (
	reISODate  = regexp.MustCompile(`^(-?\d{4,6})-(\d{2})-(\d{2})$`)
	reISOTime  = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})(?:\.(\d{1,3}))?$`)
	reISOZoned = regexp.MustCompile(`^(.+?)([+-]\d{2}:\d{2})\[([A-Za-z0-9_+\-/]+)\]$`)
)

// ParseDate parses a calendar date.
func ParseDate(s string) (CalendarDate, error) {
	m := reISODate.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return CalendarDate{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	ey, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	era, year := eraFromExtended(ey)
	d := CalendarDate{cal: Gregorian{}, Era: era, Year: year, Month: month, Day: day}
	if err := checkDateInRange(d, month, day); err != nil {
		return CalendarDate{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return constrainDate(d), nil
}

// ParseDateTime parses a civil date-time.
func ParseDateTime(s string) (CalendarDateTime, error) {
	s = strings.TrimSpace(s)
	datePart, timePart, ok := strings.Cut(s, "T")
	if !ok {
		return CalendarDateTime{}, fmt.Errorf("invalid date-time %q (expected YYYY-MM-DDTHH:MM:SS)", s)
	}
	d, err := ParseDate(datePart)
	if err != nil {
		return CalendarDateTime{}, err
	}
	hour, minute, second, milli, err := parseTimeOfDay(timePart)
	if err != nil {
		return CalendarDateTime{}, fmt.Errorf("invalid date-time %q: %w", s, err)
	}
	return CalendarDateTime{CalendarDate: d, Hour: hour, Minute: minute, Second: second, Millisecond: milli}, nil
}

// ParseZoned parses the full zoned form. The embedded offset is
// validated against the zone: an offset that is not one of the zone's
// valid offsets for the wall time is an error.
func ParseZoned(s string) (ZonedDateTime, error) {
	m := reISOZoned.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return ZonedDateTime{}, fmt.Errorf("invalid zoned date-time %q (expected an offset and [Zone/ID] suffix)", s)
	}
	dt, err := ParseDateTime(m[1])
	if err != nil {
		return ZonedDateTime{}, err
	}
	offset, err := parseOffset(m[2])
	if err != nil {
		return ZonedDateTime{}, fmt.Errorf("invalid zoned date-time %q: %w", s, err)
	}
	zone := m[3]

	epochMs := epochFromCivil(dt) - int64(offset)
	actual, err := OffsetForZone(epochMs, zone)
	if err != nil {
		return ZonedDateTime{}, err
	}
	if actual != offset {
		return ZonedDateTime{}, fmt.Errorf("offset %s is not valid for %s in %s", m[2], m[1], zone)
	}
	return ZonedDateTime{CalendarDateTime: dt, TimeZone: zone, OffsetMillis: offset}, nil
}

// ParseValue parses any of the three shapes, most specific first.
func ParseValue(s string) (Value, error) {
	if strings.Contains(s, "[") {
		return ParseZoned(s)
	}
	if strings.Contains(s, "T") {
		return ParseDateTime(s)
	}
	return ParseDate(s)
}

func parseTimeOfDay(s string) (hour, minute, second, milli int, err error) {
	m := reISOTime.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, 0, 0, fmt.Errorf("bad time %q", s)
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	second, _ = strconv.Atoi(m[3])
	if m[4] != "" {
		frac := m[4] + strings.Repeat("0", 3-len(m[4]))
		milli, _ = strconv.Atoi(frac)
	}
	if hour > 23 || minute > 59 || second > 59 {
		return 0, 0, 0, 0, fmt.Errorf("time %q out of range", s)
	}
	return hour, minute, second, milli, nil
}

func parseOffset(s string) (int, error) {
	neg := strings.HasPrefix(s, "-")
	hh, _ := strconv.Atoi(s[1:3])
	mm, _ := strconv.Atoi(s[4:6])
	if hh > 23 || mm > 59 {
		return 0, fmt.Errorf("bad offset %q", s)
	}
	offset := (hh*60 + mm) * 60000
	if neg {
		offset = -offset
	}
	return offset, nil
}

// checkDateInRange rejects parsed literals whose month or day fall
// outside the calendar's bounds. Parsing reports these instead of
// clamping: the input came from the wire, not from arithmetic.
func checkDateInRange(d CalendarDate, month, day int) error {
	cal := d.calendar()
	if month < 1 || month > cal.MonthsInYear(d) {
		return fmt.Errorf("month %d out of range", month)
	}
	probe := d
	probe.Month = month
	if day < 1 || day > cal.DaysInMonth(probe) {
		return fmt.Errorf("day %d out of range", day)
	}
	return nil
}
