// Package field implements the headless segmented date-field state:
// the bidirectional mapping between a canonical date value and its
// editable segments, and the per-segment keyboard state machine. It
// has no rendering of its own; a front end feeds it key events and
// reads segment views back.
package field

import (
	"fmt"
	"strconv"

	"almanac/internal/date"
	"almanac/internal/locale"
)

// Announcer receives assistive-technology announcements. Front ends
// route these to a live region (or a status line); the field never
// blocks on them.
type Announcer interface {
	Announce(message string, assertive bool)
}

// NopAnnouncer discards announcements.
type NopAnnouncer struct{}

func (NopAnnouncer) Announce(string, bool) {}

// Invalid is a validation outcome. Validation never prevents a value
// from being set; it is data threaded to the front end.
type Invalid struct {
	// Reason is "custom", "min" or "max".
	Reason  string
	Message string
}

// Config configures a Field. The zero value is a usable day-granular
// en-US field.
type Config struct {
	Locale string

	// Granularity of the finest editable segment. Empty infers from
	// the initial value: minute when it carries time, day otherwise.
	Granularity Granularity

	// HourCycle forces 12 or 24; zero uses the locale default.
	HourCycle int

	// Placeholder anchors empty segments and arrow seeding. Defaults
	// to today when nil.
	Placeholder date.Value

	// Value is the initial bound value, may be nil.
	Value date.Value

	// MinValue and MaxValue bound validation, not entry.
	MinValue date.Value
	MaxValue date.Value

	// Validate returns a message for an unacceptable value, or "".
	Validate func(date.Value) string

	// ReadonlySegments marks segments that ignore edits.
	ReadonlySegments map[locale.PartType]bool

	HideTimeZone bool
	Required     bool
	Disabled     bool
	ReadOnly     bool
}

// Field owns the canonical value, the placeholder and the segment map
// for one date field. Child segment front ends read it and request
// mutations through its methods; there is no concurrent writer.
type Field struct {
	cfg       Config
	formatter *locale.Formatter
	announcer Announcer

	granularity Granularity
	hour12      bool

	value       date.Value // nil when not fully filled
	placeholder date.Value

	segments SegmentValues
	states   map[locale.PartType]*segmentState
}

// New builds a Field. An error is returned only for invalid
// configuration (e.g. a placeholder too coarse for the granularity).
func New(cfg Config) (*Field, error) {
	f := &Field{
		cfg:       cfg,
		formatter: locale.New(cfg.Locale),
		announcer: NopAnnouncer{},
		segments:  SegmentValues{},
		states:    map[locale.PartType]*segmentState{},
	}

	f.granularity = cfg.Granularity
	if f.granularity == "" {
		f.granularity = inferGranularity(cfg.Value)
	}
	switch cfg.HourCycle {
	case 0:
		f.hour12 = f.formatter.Info().Hour12
	case 12:
		f.hour12 = true
	case 24:
		f.hour12 = false
	default:
		return nil, fmt.Errorf("invalid hour cycle %d (want 12 or 24)", cfg.HourCycle)
	}

	f.placeholder = cfg.Placeholder
	if f.placeholder == nil {
		today, err := date.Today("Local")
		if err != nil {
			return nil, err
		}
		f.placeholder = f.defaultPlaceholderFrom(today)
	}
	if f.granularity.includesTime() && f.placeholder.Kind() == date.KindDate {
		return nil, fmt.Errorf("placeholder %s is date-only but granularity is %q", f.placeholder, f.granularity)
	}

	for _, part := range f.EditableParts() {
		f.states[part] = &segmentState{}
	}
	f.resetSegments()
	// A bound value whose shape cannot satisfy the granularity is
	// treated as absent rather than corrupting segment state.
	if cfg.Value != nil && !(f.granularity.includesTime() && cfg.Value.Kind() == date.KindDate) {
		f.SetValue(cfg.Value)
	}
	return f, nil
}

func (f *Field) defaultPlaceholderFrom(today date.CalendarDate) date.Value {
	if f.granularity.includesTime() {
		return date.CalendarDateTime{CalendarDate: today}
	}
	return today
}

// SetAnnouncer wires the assistive announcer.
func (f *Field) SetAnnouncer(a Announcer) {
	if a == nil {
		a = NopAnnouncer{}
	}
	f.announcer = a
}

// Formatter exposes the field's locale formatter.
func (f *Field) Formatter() *locale.Formatter { return f.formatter }

// Granularity returns the effective granularity.
func (f *Field) Granularity() Granularity { return f.granularity }

// Hour12 reports whether the field renders a 12-hour clock.
func (f *Field) Hour12() bool { return f.hour12 }

// Value returns the committed value, nil while segments are missing. A
// fully specified value cannot be partially wrong: it is either
// complete or absent.
func (f *Field) Value() date.Value { return f.value }

// Placeholder returns the current anchor value.
func (f *Field) Placeholder() date.Value { return f.placeholder }

// SetPlaceholder replaces the anchor value.
func (f *Field) SetPlaceholder(v date.Value) {
	if v != nil {
		f.placeholder = v
	}
}

// EditableParts lists the segment keys in canonical order.
func (f *Field) EditableParts() []locale.PartType {
	return editableParts(f.granularity, f.hour12)
}

// resetSegments initializes every required key to unfilled.
func (f *Field) resetSegments() {
	f.segments = SegmentValues{}
	for _, part := range f.EditableParts() {
		f.segments[part] = nil
	}
}

// Clear empties every segment and the committed value.
func (f *Field) Clear() {
	f.resetSegments()
	for _, st := range f.states {
		st.resetEntry()
		st.updating = nil
	}
	f.value = nil
}

// SetValue is the upstream bound-value change: it overwrites every
// segment from the value. A segment that is mid-edit (its updating
// marker is set) keeps the in-progress text so a reactive re-sync
// cannot clobber a keystroke.
func (f *Field) SetValue(v date.Value) {
	if v == nil {
		f.Clear()
		return
	}
	f.value = v
	f.placeholder = v
	f.syncFromValue(v)
}

func (f *Field) syncFromValue(v date.Value) {
	d := v.Date()
	hour, minute, second := timeFields(v)
	for _, part := range f.EditableParts() {
		if st := f.states[part]; st != nil && st.updating != nil {
			// One-shot: the marker guards against the sync triggered by
			// the keystroke itself, then later syncs win.
			f.segments[part] = st.updating
			st.updating = nil
			continue
		}
		var text string
		switch part {
		case locale.PartYear:
			text = padded(part, d.Year)
		case locale.PartMonth:
			text = padded(part, d.Month)
		case locale.PartDay:
			text = padded(part, d.Day)
		case locale.PartHour:
			text = padded(part, hour)
		case locale.PartMinute:
			text = padded(part, minute)
		case locale.PartSecond:
			text = padded(part, second)
		case locale.PartDayPeriod:
			// Derived by formatting rather than arithmetic so it
			// stays correct across hour-cycle conventions.
			text = f.formatter.Part(v, locale.PartDayPeriod, locale.Options{Hour12: true})
		}
		f.segments[part] = &text
	}
}

// UpdateSegment applies a pure update function to one segment's text
// and reconciles coupled segments, then recommits or clears the value.
func (f *Field) UpdateSegment(part locale.PartType, update func(prev *string) *string) {
	if f.cfg.Disabled || f.cfg.ReadOnly || f.cfg.ReadonlySegments[part] {
		return
	}
	next := update(f.segments[part])
	f.applySegment(part, next)
}

func (f *Field) applySegment(part locale.PartType, next *string) {
	f.segments = f.segments.clone()
	f.segments[part] = next

	switch part {
	case locale.PartMonth, locale.PartYear:
		f.clampDaySegment()
	case locale.PartDayPeriod:
		f.shiftHourForDayPeriod(next)
	case locale.PartHour:
		f.recomputeDayPeriod()
	}

	f.commit()
}

// clampDaySegment pulls a filled day down when the month (or year, for
// February) under edit can no longer contain it.
func (f *Field) clampDaySegment() {
	day, ok := f.segments.int(locale.PartDay)
	if !ok {
		return
	}
	_, max := f.segmentBounds(locale.PartDay)
	if day > max {
		text := padded(locale.PartDay, max)
		f.segments[locale.PartDay] = &text
	}
}

// shiftHourForDayPeriod keeps the stored 24-hour value consistent when
// the day period changes: only the displayed 12-hour digits stay put.
func (f *Field) shiftHourForDayPeriod(period *string) {
	if period == nil {
		return
	}
	hour, ok := f.segments.int(locale.PartHour)
	if !ok {
		return
	}
	switch {
	case *period == "PM" && hour < 12:
		hour += 12
	case *period == "AM" && hour >= 12:
		hour -= 12
	default:
		return
	}
	text := padded(locale.PartHour, hour)
	f.segments[locale.PartHour] = &text
}

// recomputeDayPeriod re-derives the day period from a changed hour.
// While 12-hour digits are mid-entry the stored text is not yet a
// 24-hour value and the period is left alone.
func (f *Field) recomputeDayPeriod() {
	if _, present := f.segments[locale.PartDayPeriod]; !present {
		return
	}
	if st := f.states[locale.PartHour]; st != nil && st.raw12 {
		return
	}
	hour, ok := f.segments.int(locale.PartHour)
	if !ok {
		return
	}
	text := locale.DayPeriod(hour)
	f.segments[locale.PartDayPeriod] = &text
}

// commit converts the segment map back into a canonical value when
// every required key is filled, otherwise clears the value.
func (f *Field) commit() {
	for _, part := range f.EditableParts() {
		if _, ok := f.segments.get(part); !ok {
			f.value = nil
			return
		}
	}

	fields := date.Fields{}
	if y, ok := f.segments.int(locale.PartYear); ok {
		fields.Year = date.Int(y)
	}
	if m, ok := f.segments.int(locale.PartMonth); ok {
		fields.Month = date.Int(m)
	}
	if d, ok := f.segments.int(locale.PartDay); ok {
		fields.Day = date.Int(d)
	}
	if f.granularity.includesTime() {
		hour, _ := f.segments.int(locale.PartHour)
		if f.hour12 {
			period, _ := f.segments.get(locale.PartDayPeriod)
			hour = hourFrom12(hour, period)
		}
		fields.Hour = date.Int(hour)
		if minute, ok := f.segments.int(locale.PartMinute); ok {
			fields.Minute = date.Int(minute)
		}
		if second, ok := f.segments.int(locale.PartSecond); ok {
			fields.Second = date.Int(second)
		}
	}

	switch p := f.placeholder.(type) {
	case date.CalendarDate:
		f.value = p.Set(fields)
	case date.CalendarDateTime:
		f.value = p.Set(fields)
	case date.ZonedDateTime:
		z, err := p.Set(fields, date.DisambiguationCompatible)
		if err != nil {
			f.value = nil
			return
		}
		f.value = z
	}
}

// hourFrom12 maps partially or fully typed 12-hour digits plus a day
// period to the true 24-hour value. Values already stored as 24-hour
// pass through unchanged.
func hourFrom12(hour int, period string) int {
	if period == "PM" && hour < 12 {
		return hour + 12
	}
	if period == "AM" && hour == 12 {
		return 0
	}
	return hour
}

// Validation evaluates the committed value against the custom
// validator and the min/max bounds. Nil means valid (or empty).
func (f *Field) Validation() *Invalid {
	if f.value == nil {
		return nil
	}
	if f.cfg.Validate != nil {
		if msg := f.cfg.Validate(f.value); msg != "" {
			return &Invalid{Reason: "custom", Message: msg}
		}
	}
	if f.cfg.MinValue != nil && f.value.Compare(f.cfg.MinValue) < 0 {
		return &Invalid{Reason: "min"}
	}
	if f.cfg.MaxValue != nil && f.value.Compare(f.cfg.MaxValue) > 0 {
		return &Invalid{Reason: "max"}
	}
	return nil
}

// SegmentView is a projection of one segment for rendering, including
// the ARIA numeric attributes. Pure derived state.
type SegmentView struct {
	Part     locale.PartType
	Text     string
	Filled   bool
	Editable bool

	ValueMin  int
	ValueMax  int
	ValueNow  int
	ValueText string
}

// Segments projects the display token list: editable segments in
// locale order interleaved with literal separators (and a trailing
// time zone token for zoned values).
func (f *Field) Segments() []SegmentView {
	opts := locale.Options{
		IncludeTime:  f.granularity.includesTime(),
		Seconds:      f.granularity.includesSeconds(),
		Hour12:       f.hour12,
		HideTimeZone: f.cfg.HideTimeZone,
	}
	parts := f.formatter.ToParts(f.placeholder, opts)
	out := make([]SegmentView, 0, len(parts))
	for _, p := range parts {
		switch p.Type {
		case locale.PartLiteral, locale.PartTimeZoneName:
			out = append(out, SegmentView{Part: p.Type, Text: p.Value})
		default:
			out = append(out, f.segmentView(p.Type))
		}
	}
	return out
}

var placeholderText = map[locale.PartType]string{
	locale.PartYear:      "yyyy",
	locale.PartMonth:     "mm",
	locale.PartDay:       "dd",
	locale.PartHour:      "hh",
	locale.PartMinute:    "mm",
	locale.PartSecond:    "ss",
	locale.PartDayPeriod: "AM",
}

func (f *Field) segmentView(part locale.PartType) SegmentView {
	v := SegmentView{
		Part:     part,
		Editable: !f.cfg.ReadonlySegments[part],
	}
	text, filled := f.segments.get(part)
	v.Filled = filled
	if !filled {
		v.Text = placeholderText[part]
	} else {
		v.Text = f.displayText(part, text)
	}

	if part == locale.PartDayPeriod {
		v.ValueMin, v.ValueMax = 0, 12
		if filled {
			v.ValueText = text
		}
		return v
	}
	v.ValueMin, v.ValueMax = f.segmentBounds(part)
	if n, ok := f.segments.int(part); ok {
		v.ValueNow = n
		v.ValueText = v.Text
	}
	return v
}

// displayText renders a stored segment for display: the 24-hour stored
// hour shows its 12-hour digits when the field uses a 12-hour clock,
// everything else displays as stored.
func (f *Field) displayText(part locale.PartType, stored string) string {
	if part != locale.PartHour || !f.hour12 {
		return stored
	}
	if st := f.states[part]; st != nil && st.raw12 {
		// Mid-entry digits are shown raw; they are already 12-hour.
		return stored
	}
	n, err := strconv.Atoi(stored)
	if err != nil {
		return stored
	}
	return padded(part, to12Hour(n))
}

func to12Hour(hour int) int {
	h := hour % 12
	if h == 0 {
		return 12
	}
	return h
}

func timeFields(v date.Value) (hour, minute, second int) {
	switch t := v.(type) {
	case date.CalendarDateTime:
		return t.Hour, t.Minute, t.Second
	case date.ZonedDateTime:
		return t.Hour, t.Minute, t.Second
	}
	return 0, 0, 0
}
