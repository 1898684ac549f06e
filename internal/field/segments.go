package field

import (
	"fmt"
	"strconv"

	"almanac/internal/date"
	"almanac/internal/locale"
)

// Granularity is the finest field a date field exposes.
type Granularity string

const (
	GranularityDay    Granularity = "day"
	GranularityHour   Granularity = "hour"
	GranularityMinute Granularity = "minute"
	GranularitySecond Granularity = "second"
)

// inferGranularity derives a granularity from a bound value's shape:
// minute when the value carries time, day otherwise.
func inferGranularity(v date.Value) Granularity {
	if v == nil || v.Kind() == date.KindDate {
		return GranularityDay
	}
	return GranularityMinute
}

func (g Granularity) includesTime() bool { return g != GranularityDay }

func (g Granularity) includesSeconds() bool { return g == GranularitySecond }

// editableParts lists the segment keys implied by a granularity and
// hour cycle, in canonical (not display) order. Literal and
// timeZoneName tokens are display-only and never appear here.
func editableParts(g Granularity, hour12 bool) []locale.PartType {
	parts := []locale.PartType{locale.PartYear, locale.PartMonth, locale.PartDay}
	if !g.includesTime() {
		return parts
	}
	parts = append(parts, locale.PartHour)
	if g == GranularityMinute || g == GranularitySecond {
		parts = append(parts, locale.PartMinute)
	}
	if g.includesSeconds() {
		parts = append(parts, locale.PartSecond)
	}
	if hour12 {
		parts = append(parts, locale.PartDayPeriod)
	}
	return parts
}

// SegmentValues maps segment keys to their current typed or synced
// text. A nil entry is unfilled. Only keys implied by the granularity
// are ever present.
type SegmentValues map[locale.PartType]*string

func (sv SegmentValues) clone() SegmentValues {
	out := make(SegmentValues, len(sv))
	for k, v := range sv {
		out[k] = v
	}
	return out
}

func (sv SegmentValues) get(part locale.PartType) (string, bool) {
	p, ok := sv[part]
	if !ok || p == nil {
		return "", false
	}
	return *p, true
}

func (sv SegmentValues) int(part locale.PartType) (int, bool) {
	s, ok := sv.get(part)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// segmentState is the transient per-segment keyboard state. It never
// affects the committed value directly; it only disambiguates the next
// keystroke.
type segmentState struct {
	// lastKeyZero is set after a lone leading zero, which changes how
	// the next digit is interpreted.
	lastKeyZero bool
	// hasLeftFocus marks that the segment lost focus since the last
	// keystroke; a stale partial value is discarded on the next digit.
	hasLeftFocus bool
	// updating holds the in-progress text while a keystroke is being
	// applied so a concurrent sync from the bound value does not
	// clobber it.
	updating *string
	// raw12 marks an hour segment whose stored text is 12-hour
	// display digits mid-entry rather than the true 24-hour value.
	raw12 bool
	// digitsTyped and backspaces implement the year segment's
	// correction tracking: entry completes after four digits, or after
	// as many digits as there were backspaces.
	digitsTyped int
	backspaces  int
}

func (st *segmentState) resetEntry() {
	st.lastKeyZero = false
	st.raw12 = false
	st.digitsTyped = 0
	st.backspaces = 0
}

// segmentBounds returns the legal numeric range for a segment. Day and
// hour bounds depend on sibling state: the day maximum tracks the
// month under edit, and the hour range tracks the hour cycle.
func (f *Field) segmentBounds(part locale.PartType) (min, max int) {
	switch part {
	case locale.PartMonth:
		return 1, 12
	case locale.PartDay:
		ref := f.placeholder.Date()
		fields := date.Fields{}
		if m, ok := f.segments.int(locale.PartMonth); ok {
			fields.Month = date.Int(m)
		}
		if y, ok := f.segments.int(locale.PartYear); ok {
			fields.Year = date.Int(y)
		}
		ref = ref.Set(fields)
		return 1, ref.DaysInMonth()
	case locale.PartYear:
		return 1, 9999
	case locale.PartHour:
		if f.hour12 {
			return 1, 12
		}
		return 0, 23
	case locale.PartMinute, locale.PartSecond:
		return 0, 59
	}
	panic(fmt.Sprintf("field: segment %q has no numeric bounds", part))
}

// padWidth is the canonical display width of a numeric segment.
func padWidth(part locale.PartType) int {
	if part == locale.PartYear {
		return 4
	}
	return 2
}

func padded(part locale.PartType, n int) string {
	return fmt.Sprintf("%0*d", padWidth(part), n)
}
