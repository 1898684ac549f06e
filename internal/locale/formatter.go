package locale

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"almanac/internal/date"
)

// PartType names a token in a formatted date/time part list.
type PartType string

const (
	PartYear         PartType = "year"
	PartMonth        PartType = "month"
	PartDay          PartType = "day"
	PartHour         PartType = "hour"
	PartMinute       PartType = "minute"
	PartSecond       PartType = "second"
	PartDayPeriod    PartType = "dayPeriod"
	PartLiteral      PartType = "literal"
	PartTimeZoneName PartType = "timeZoneName"
)

// Part is one token of formatted output.
type Part struct {
	Type  PartType
	Value string
}

// Options selects which fields ToParts emits and how hours render.
type Options struct {
	// IncludeTime emits hour/minute parts (and second per Seconds).
	IncludeTime bool
	// Seconds emits the seconds part when time is included.
	Seconds bool
	// Hour12 renders 12-hour clock digits with a day-period part.
	Hour12 bool
	// HideTimeZone suppresses the timeZoneName part for zoned values.
	HideTimeZone bool
}

func (o Options) key() string {
	return fmt.Sprintf("t=%v s=%v h12=%v htz=%v", o.IncludeTime, o.Seconds, o.Hour12, o.HideTimeZone)
}

// template is a compiled part skeleton: the ordered types plus the
// literal runs between them. Field slots have empty Value.
type template []Part

// Formatter renders values for one locale. Compiled templates are
// cached per Options; the cache lives on the Formatter, not in package
// state, so its lifetime is tied to whoever owns the Formatter.
type Formatter struct {
	tag  string
	info Info

	mu        sync.Mutex
	templates map[string]template
}

// New builds a Formatter for a BCP 47 tag.
func New(tag string) *Formatter {
	return &Formatter{tag: tag, info: Lookup(tag), templates: map[string]template{}}
}

// Tag returns the locale tag the formatter was built for.
func (f *Formatter) Tag() string { return f.tag }

// Info returns the locale's formatting profile.
func (f *Formatter) Info() Info { return f.info }

func (f *Formatter) template(opts Options) template {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := opts.key()
	if t, ok := f.templates[key]; ok {
		return t
	}
	t := compileTemplate(f.info, opts)
	f.templates[key] = t
	return t
}

func compileTemplate(info Info, opts Options) template {
	var t template
	sep := Part{Type: PartLiteral, Value: info.Separator}
	switch info.Order {
	case "mdy":
		t = append(t, Part{Type: PartMonth}, sep, Part{Type: PartDay}, sep, Part{Type: PartYear})
	case "ymd":
		t = append(t, Part{Type: PartYear}, sep, Part{Type: PartMonth}, sep, Part{Type: PartDay})
	default: // dmy
		t = append(t, Part{Type: PartDay}, sep, Part{Type: PartMonth}, sep, Part{Type: PartYear})
	}
	if !opts.IncludeTime {
		return t
	}
	t = append(t, Part{Type: PartLiteral, Value: ", "}, Part{Type: PartHour},
		Part{Type: PartLiteral, Value: ":"}, Part{Type: PartMinute})
	if opts.Seconds {
		t = append(t, Part{Type: PartLiteral, Value: ":"}, Part{Type: PartSecond})
	}
	if opts.Hour12 {
		t = append(t, Part{Type: PartLiteral, Value: " "}, Part{Type: PartDayPeriod})
	}
	return t
}

// ToParts renders the value as an ordered part list. Literal parts keep
// their fixed text; field parts carry the formatted field.
func (f *Formatter) ToParts(v date.Value, opts Options) []Part {
	t := f.template(opts)
	out := make([]Part, 0, len(t)+2)
	for _, p := range t {
		if p.Type == PartLiteral {
			out = append(out, p)
			continue
		}
		out = append(out, Part{Type: p.Type, Value: f.Part(v, p.Type, opts)})
	}
	if z, ok := v.(date.ZonedDateTime); ok && opts.IncludeTime && !opts.HideTimeZone {
		out = append(out,
			Part{Type: PartLiteral, Value: " "},
			Part{Type: PartTimeZoneName, Value: z.TimeZone})
	}
	return out
}

// Custom renders the value as a plain string by concatenating its
// parts.
func (f *Formatter) Custom(v date.Value, opts Options) string {
	var b strings.Builder
	for _, p := range f.ToParts(v, opts) {
		b.WriteString(p.Value)
	}
	return b.String()
}

// Part renders a single field of the value, honoring the hour-cycle
// setting for hour and day-period parts.
func (f *Formatter) Part(v date.Value, part PartType, opts Options) string {
	d := v.Date()
	hour, minute, second := timeOf(v)
	switch part {
	case PartYear:
		return fmt.Sprintf("%04d", d.Year)
	case PartMonth:
		return fmt.Sprintf("%02d", d.Month)
	case PartDay:
		return fmt.Sprintf("%02d", d.Day)
	case PartHour:
		if opts.Hour12 {
			return fmt.Sprintf("%02d", hourTo12(hour))
		}
		return fmt.Sprintf("%02d", normalizeHour(hour))
	case PartMinute:
		return fmt.Sprintf("%02d", minute)
	case PartSecond:
		return fmt.Sprintf("%02d", second)
	case PartDayPeriod:
		return DayPeriod(hour)
	case PartTimeZoneName:
		if z, ok := v.(date.ZonedDateTime); ok {
			return z.TimeZone
		}
		return ""
	}
	return ""
}

// DayPeriod maps a 24-hour value to "AM" or "PM".
func DayPeriod(hour int) string {
	if normalizeHour(hour) >= 12 {
		return "PM"
	}
	return "AM"
}

// normalizeHour folds hour 24 to 0. Some platform formatters report
// midnight as 24 when asked for a non-12-hour cycle; values passing
// through formatting must never leak that representation.
func normalizeHour(hour int) int {
	if hour == 24 {
		return 0
	}
	return hour
}

// hourTo12 converts a 24-hour value to 12-hour display digits (12, 1..11).
func hourTo12(hour int) int {
	h := normalizeHour(hour) % 12
	if h == 0 {
		return 12
	}
	return h
}

// FullMonth returns the month's full English name.
func (f *Formatter) FullMonth(v date.Value) string {
	return time.Month(v.Date().Month).String()
}

// FullYear returns the value's year as display digits.
func (f *Formatter) FullYear(v date.Value) string {
	return fmt.Sprintf("%d", v.Date().Year)
}

// FullMonthAndYear returns e.g. "January 2024", the calendar heading.
func (f *Formatter) FullMonthAndYear(v date.Value) string {
	return f.FullMonth(v) + " " + f.FullYear(v)
}

var weekdayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// DayOfWeek renders the weekday name at the requested length: "narrow"
// (one letter), "short" (three letters) or anything else for the full
// name.
func (f *Formatter) DayOfWeek(d date.CalendarDate, length string) string {
	name := weekdayNames[d.DayOfWeek()]
	switch length {
	case "narrow":
		return name[:1]
	case "short":
		return name[:3]
	}
	return name
}

// SelectedDate renders the announcement/description string for a
// chosen value, e.g. "January 15, 2024" or
// "January 15, 2024 at 9:30 AM".
func (f *Formatter) SelectedDate(v date.Value, includeTime bool) string {
	d := v.Date()
	s := fmt.Sprintf("%s %d, %d", f.FullMonth(v), d.Day, d.Year)
	if !includeTime || v.Kind() == date.KindDate {
		return s
	}
	hour, minute, _ := timeOf(v)
	return fmt.Sprintf("%s at %d:%02d %s", s, hourTo12(hour), minute, DayPeriod(hour))
}

func timeOf(v date.Value) (hour, minute, second int) {
	switch t := v.(type) {
	case date.CalendarDateTime:
		return t.Hour, t.Minute, t.Second
	case date.ZonedDateTime:
		return t.Hour, t.Minute, t.Second
	}
	return 0, 0, 0
}
