package field

import (
	"fmt"
	"strconv"

	"almanac/internal/date"
	"almanac/internal/locale"
)

// KeyKind classifies the keys the segment state machine consumes.
// Horizontal navigation (left/right/tab) is sibling traversal and is
// handled by the front end, not here.
type KeyKind int

const (
	KeyUp KeyKind = iota
	KeyDown
	KeyBackspace
	KeyRune
)

// Key is one keystroke aimed at a segment.
type Key struct {
	Kind KeyKind
	// Rune carries the character for KeyRune (digits, a/p).
	Rune rune
	// Step overrides the arrow step; values above one snap to the
	// nearest multiple (paging). Zero means one.
	Step int
}

// KeyResult reports the focus consequence of a keystroke.
type KeyResult struct {
	// Handled is false for keys outside the acceptable set; such keys
	// are a no-op and the front end may let them propagate.
	Handled bool
	// Move is +1 to focus the next editable segment, -1 for the
	// previous, 0 to stay.
	Move int
}

var segmentFields = map[locale.PartType]date.DateField{
	locale.PartYear:   date.FieldYear,
	locale.PartMonth:  date.FieldMonth,
	locale.PartDay:    date.FieldDay,
	locale.PartHour:   date.FieldHour,
	locale.PartMinute: date.FieldMinute,
	locale.PartSecond: date.FieldSecond,
}

// HandleKey feeds one keystroke to a segment's state machine. Keys
// aimed at literal or read-only segments, and runes outside the
// acceptable set, do nothing.
func (f *Field) HandleKey(part locale.PartType, k Key) KeyResult {
	if !f.editable(part) {
		return KeyResult{}
	}
	if part == locale.PartDayPeriod {
		return f.handleDayPeriodKey(k)
	}

	switch k.Kind {
	case KeyUp:
		f.arrow(part, +1, k.Step)
		return KeyResult{Handled: true}
	case KeyDown:
		f.arrow(part, -1, k.Step)
		return KeyResult{Handled: true}
	case KeyBackspace:
		return f.backspace(part)
	case KeyRune:
		if k.Rune < '0' || k.Rune > '9' {
			return KeyResult{}
		}
		if part == locale.PartYear {
			return f.yearDigit(int(k.Rune - '0'))
		}
		return f.digit(part, int(k.Rune-'0'))
	}
	return KeyResult{}
}

func (f *Field) editable(part locale.PartType) bool {
	if f.cfg.Disabled || f.cfg.ReadOnly || f.cfg.ReadonlySegments[part] {
		return false
	}
	_, ok := f.segments[part]
	return ok
}

// arrow steps a segment with the date model's cycle semantics: an
// empty segment seeds from the placeholder's field value, a filled one
// wraps within its bounds.
func (f *Field) arrow(part locale.PartType, direction, step int) {
	if step <= 0 {
		step = 1
	}
	st := f.states[part]
	st.lastKeyZero = false
	st.hasLeftFocus = false

	var next int
	if cur, ok := f.currentNumeric(part); ok {
		ref := f.anchorWith(part, cur)
		ref = ref.Cycle(segmentFields[part], direction*step, date.CycleOptions{
			Round:       step > 1,
			HourCycle12: f.hour12 && part == locale.PartHour,
		})
		next = fieldOf(ref, part)
	} else {
		next = fieldOf(f.anchorDateTime(), part)
	}

	st.raw12 = false
	text := padded(part, next)
	st.updating = &text
	f.UpdateSegment(part, func(*string) *string { return &text })
	f.announceSegment(part)
}

// digit runs the two-digit disambiguation algorithm shared by month,
// day, hour, minute and second.
func (f *Field) digit(part locale.PartType, d int) KeyResult {
	st := f.states[part]
	min, max := f.segmentBounds(part)

	prev, filled := f.segments.get(part)
	if st.hasLeftFocus {
		// The last interaction ended with focus loss: stale partial
		// text does not participate in the new entry.
		st.hasLeftFocus = false
		st.resetEntry()
		prev, filled = "", false
	}
	if part == locale.PartHour && f.hour12 && filled && !st.raw12 {
		// Resume typing over a completed hour: restart entry rather
		// than concatenating display digits onto a 24-hour value.
		prev, filled = "", false
	}

	store := func(text string, advance bool) KeyResult {
		if part == locale.PartHour && f.hour12 {
			st.raw12 = true
			if advance {
				period, _ := f.segments.get(locale.PartDayPeriod)
				n, _ := strconv.Atoi(text)
				text = padded(part, hourFrom12(n, period))
				st.raw12 = false
			}
		}
		if advance {
			st.resetEntry()
			st.updating = nil
		} else {
			st.updating = &text
		}
		f.UpdateSegment(part, func(*string) *string { return &text })
		move := 0
		if advance {
			move = 1
		}
		return KeyResult{Handled: true, Move: move}
	}

	if !filled {
		if d == 0 {
			st.lastKeyZero = true
			return store("0", false)
		}
		if d > max/10 {
			// No second digit could follow without overflowing.
			return store(padded(part, d), true)
		}
		return store(strconv.Itoa(d), false)
	}

	if st.lastKeyZero {
		st.lastKeyZero = false
		if d != 0 {
			return store(fmt.Sprintf("0%d", d), true)
		}
		// A second zero completes "00" only where zero is a legal
		// value: minutes, seconds and 24-hour hours. Elsewhere the
		// entry keeps waiting for a nonzero digit.
		if min == 0 {
			return store(padded(part, 0), true)
		}
		st.lastKeyZero = true
		return KeyResult{Handled: true}
	}

	total, err := strconv.Atoi(prev + strconv.Itoa(d))
	if err != nil || total > max {
		// Overflow: the new digit starts a fresh value.
		return store(padded(part, d), true)
	}
	return store(padded(part, total), true)
}

// yearDigit accumulates up to four digits, left-shifting through a
// zero-padded window, with backspace-corrections tracked so a partial
// re-entry completes after as many digits as were erased.
func (f *Field) yearDigit(d int) KeyResult {
	part := locale.PartYear
	st := f.states[part]

	prev, filled := f.segments.get(part)
	if st.hasLeftFocus {
		st.hasLeftFocus = false
		st.resetEntry()
		prev, filled = "", false
	}

	var text string
	switch {
	case !filled:
		st.resetEntry()
		text = fmt.Sprintf("000%d", d)
	case st.backspaces > 0:
		text = prev + strconv.Itoa(d)
	default:
		text = prev + strconv.Itoa(d)
		if len(text) > 4 {
			text = text[len(text)-4:]
		}
	}
	st.digitsTyped++

	advance := st.digitsTyped >= 4
	if st.backspaces > 0 {
		advance = st.digitsTyped >= st.backspaces
	}
	if advance {
		st.resetEntry()
		st.updating = nil
	} else {
		st.updating = &text
	}
	f.UpdateSegment(part, func(*string) *string { return &text })
	if advance {
		return KeyResult{Handled: true, Move: 1}
	}
	return KeyResult{Handled: true}
}

// backspace shortens the segment; a result that is empty, or that was
// a zero-led two-digit value, collapses to unfilled and retreats to
// the previous segment.
func (f *Field) backspace(part locale.PartType) KeyResult {
	st := f.states[part]
	st.lastKeyZero = false
	st.hasLeftFocus = false

	prev, filled := f.segments.get(part)
	if !filled {
		return KeyResult{Handled: true, Move: -1}
	}

	if part == locale.PartHour && f.hour12 && !st.raw12 {
		// Edit the display digits, not the stored 24-hour value.
		if n, err := strconv.Atoi(prev); err == nil {
			prev = padded(part, to12Hour(n))
			st.raw12 = true
		}
	}

	if part == locale.PartYear {
		st.backspaces++
		st.digitsTyped = 0
		text := prev[:len(prev)-1]
		if text == "" {
			st.resetEntry()
			st.updating = nil
			f.UpdateSegment(part, func(*string) *string { return nil })
			return KeyResult{Handled: true, Move: -1}
		}
		st.updating = &text
		f.UpdateSegment(part, func(*string) *string { return &text })
		return KeyResult{Handled: true}
	}

	text := prev[:len(prev)-1]
	if text == "" || (len(prev) == 2 && prev[0] == '0') {
		st.resetEntry()
		st.updating = nil
		f.UpdateSegment(part, func(*string) *string { return nil })
		return KeyResult{Handled: true, Move: -1}
	}
	st.updating = &text
	f.UpdateSegment(part, func(*string) *string { return &text })
	return KeyResult{Handled: true}
}

// handleDayPeriodKey implements the day-period segment: arrows and
// a/p set AM or PM outright; backspace resets to AM rather than
// emptying, since a 12-hour field has no unfilled period state once
// active.
func (f *Field) handleDayPeriodKey(k Key) KeyResult {
	part := locale.PartDayPeriod
	st := f.states[part]

	set := func(period string) KeyResult {
		st.updating = &period
		f.UpdateSegment(part, func(*string) *string { return &period })
		f.announceSegment(part)
		return KeyResult{Handled: true}
	}

	switch k.Kind {
	case KeyUp, KeyDown:
		cur, ok := f.segments.get(part)
		if !ok {
			seed := f.formatter.Part(f.anchorDateTime(), locale.PartDayPeriod, locale.Options{Hour12: true})
			return set(seed)
		}
		if cur == "AM" {
			return set("PM")
		}
		return set("AM")
	case KeyBackspace:
		return set("AM")
	case KeyRune:
		switch k.Rune {
		case 'a', 'A':
			return set("AM")
		case 'p', 'P':
			return set("PM")
		}
	}
	return KeyResult{}
}

// FocusOut marks the segment as exited and normalizes its display:
// single digits pad to two, years re-pad to four, mid-entry 12-hour
// digits resolve to the stored 24-hour value.
func (f *Field) FocusOut(part locale.PartType) {
	st, ok := f.states[part]
	if !ok {
		return
	}
	st.hasLeftFocus = true
	st.updating = nil
	st.lastKeyZero = false

	text, filled := f.segments.get(part)
	if !filled || part == locale.PartDayPeriod {
		return
	}

	if part == locale.PartHour && f.hour12 && st.raw12 {
		period, _ := f.segments.get(locale.PartDayPeriod)
		if n, err := strconv.Atoi(text); err == nil {
			text = strconv.Itoa(hourFrom12(n, period))
		}
		st.raw12 = false
	}

	n, err := strconv.Atoi(text)
	if err != nil {
		return
	}
	normalized := padded(part, n)
	if normalized != text {
		f.UpdateSegment(part, func(*string) *string { return &normalized })
	}
}

// currentNumeric reads a segment's stored number, normalizing raw
// 12-hour digits to the true 24-hour value.
func (f *Field) currentNumeric(part locale.PartType) (int, bool) {
	n, ok := f.segments.int(part)
	if !ok {
		return 0, false
	}
	if part == locale.PartHour && f.hour12 && f.states[part].raw12 {
		period, _ := f.segments.get(locale.PartDayPeriod)
		n = hourFrom12(n, period)
	}
	return n, true
}

// anchorDateTime is the placeholder widened to carry time fields so
// any segment can be seeded from it.
func (f *Field) anchorDateTime() date.CalendarDateTime {
	switch p := f.placeholder.(type) {
	case date.CalendarDateTime:
		return p
	case date.ZonedDateTime:
		return p.CalendarDateTime
	default:
		return date.CalendarDateTime{CalendarDate: f.placeholder.Date()}
	}
}

// anchorWith builds the cycling reference: the placeholder overlaid
// with the typed sibling fields and the segment's own current value,
// so day cycling wraps within the month actually under edit.
func (f *Field) anchorWith(part locale.PartType, current int) date.CalendarDateTime {
	ref := f.anchorDateTime()
	fields := date.Fields{}
	if y, ok := f.segments.int(locale.PartYear); ok {
		fields.Year = date.Int(y)
	}
	if m, ok := f.segments.int(locale.PartMonth); ok {
		fields.Month = date.Int(m)
	}
	switch part {
	case locale.PartYear:
		fields.Year = date.Int(current)
	case locale.PartMonth:
		fields.Month = date.Int(current)
	case locale.PartDay:
		fields.Day = date.Int(current)
	case locale.PartHour:
		fields.Hour = date.Int(current)
	case locale.PartMinute:
		fields.Minute = date.Int(current)
	case locale.PartSecond:
		fields.Second = date.Int(current)
	}
	return ref.Set(fields)
}

func fieldOf(dt date.CalendarDateTime, part locale.PartType) int {
	switch part {
	case locale.PartYear:
		return dt.Year
	case locale.PartMonth:
		return dt.Month
	case locale.PartDay:
		return dt.Day
	case locale.PartHour:
		return dt.Hour
	case locale.PartMinute:
		return dt.Minute
	case locale.PartSecond:
		return dt.Second
	}
	return 0
}

// announceSegment reports a segment's new display text for assistive
// technology.
func (f *Field) announceSegment(part locale.PartType) {
	if text, ok := f.segments.get(part); ok {
		f.announcer.Announce(f.displayText(part, text), false)
	}
}
