package field

import (
	"testing"

	"almanac/internal/date"
	"almanac/internal/locale"
)

func TestHour24AcceptsDoubleZero(t *testing.T) {
	f := newMinuteField(t, 24)
	f.HandleKey(locale.PartHour, Key{Kind: KeyRune, Rune: '0'})
	res := f.HandleKey(locale.PartHour, Key{Kind: KeyRune, Rune: '0'})
	if res.Move != 1 || segText(t, f, locale.PartHour) != "00" {
		t.Fatalf("00 is a valid 24-hour value: text=%q move=%d", segText(t, f, locale.PartHour), res.Move)
	}
}

func TestHourTypingRecomputesDayPeriod(t *testing.T) {
	f := newMinuteField(t, 12)
	// 12-hour max is 12, so 9 completes immediately.
	res := f.HandleKey(locale.PartHour, Key{Kind: KeyRune, Rune: '9'})
	if res.Move != 1 {
		t.Fatalf("9 should complete a 12-hour entry")
	}
	if got := segText(t, f, locale.PartDayPeriod); got != "AM" {
		t.Fatalf("period after hour 9 = %q, want AM", got)
	}
	if got := segText(t, f, locale.PartHour); got != "09" {
		t.Fatalf("stored hour = %q, want 09", got)
	}
}

func TestDayPeriodShiftsStoredHour(t *testing.T) {
	f := newMinuteField(t, 12)
	f.HandleKey(locale.PartHour, Key{Kind: KeyRune, Rune: '9'})

	f.HandleKey(locale.PartDayPeriod, Key{Kind: KeyRune, Rune: 'p'})
	if got := segText(t, f, locale.PartHour); got != "21" {
		t.Fatalf("PM should shift stored hour to 21, got %q", got)
	}
	// The displayed digits stay 09.
	for _, sv := range f.Segments() {
		if sv.Part == locale.PartHour && sv.Text != "09" {
			t.Fatalf("displayed hour = %q, want 09", sv.Text)
		}
	}

	f.HandleKey(locale.PartDayPeriod, Key{Kind: KeyRune, Rune: 'a'})
	if got := segText(t, f, locale.PartHour); got != "09" {
		t.Fatalf("AM should shift back to 09, got %q", got)
	}
}

func TestDayPeriodNoonMidnightEdges(t *testing.T) {
	f := newMinuteField(t, 12)
	typeDigits(f, locale.PartHour, "12")
	// Typed 12 with no period yet resolves to noon.
	if got := segText(t, f, locale.PartHour); got != "12" {
		t.Fatalf("stored hour = %q, want 12", got)
	}
	if got := segText(t, f, locale.PartDayPeriod); got != "PM" {
		t.Fatalf("hour 12 should derive PM, got %q", got)
	}

	f.HandleKey(locale.PartDayPeriod, Key{Kind: KeyRune, Rune: 'a'})
	if got := segText(t, f, locale.PartHour); got != "00" {
		t.Fatalf("12 AM should store as 00, got %q", got)
	}
	for _, sv := range f.Segments() {
		if sv.Part == locale.PartHour && sv.Text != "12" {
			t.Fatalf("midnight displays as 12, got %q", sv.Text)
		}
	}
}

func TestDayPeriodKeys(t *testing.T) {
	f := newMinuteField(t, 12)

	// Arrows seed from the placeholder (midnight -> AM) then toggle.
	f.HandleKey(locale.PartDayPeriod, Key{Kind: KeyUp})
	if got := segText(t, f, locale.PartDayPeriod); got != "AM" {
		t.Fatalf("seed = %q, want AM", got)
	}
	f.HandleKey(locale.PartDayPeriod, Key{Kind: KeyUp})
	if got := segText(t, f, locale.PartDayPeriod); got != "PM" {
		t.Fatalf("toggle = %q, want PM", got)
	}

	// Backspace resets to AM, never to empty.
	f.HandleKey(locale.PartDayPeriod, Key{Kind: KeyBackspace})
	if got := segText(t, f, locale.PartDayPeriod); got != "AM" {
		t.Fatalf("backspace = %q, want AM", got)
	}

	// Unrelated runes are ignored.
	res := f.HandleKey(locale.PartDayPeriod, Key{Kind: KeyRune, Rune: 'x'})
	if res.Handled {
		t.Fatalf("x should not be handled on the period segment")
	}
}

func TestTwelveHourCommit(t *testing.T) {
	f := newMinuteField(t, 12)
	typeDigits(f, locale.PartMonth, "06")
	typeDigits(f, locale.PartDay, "15")
	typeDigits(f, locale.PartYear, "2024")
	typeDigits(f, locale.PartHour, "2")
	f.HandleKey(locale.PartDayPeriod, Key{Kind: KeyRune, Rune: 'p'})
	typeDigits(f, locale.PartMinute, "30")

	want := date.NewCalendarDateTime(2024, 6, 15, 14, 30, 0, 0)
	if f.Value() == nil || f.Value().Compare(want) != 0 {
		t.Fatalf("value = %v, want %s", f.Value(), want)
	}
}

func TestHourArrowKeepsDayPeriod(t *testing.T) {
	f := newMinuteField(t, 12)
	typeDigits(f, locale.PartHour, "11")
	f.HandleKey(locale.PartDayPeriod, Key{Kind: KeyRune, Rune: 'a'})

	// 11 AM + 1 wraps within the AM half (to 12 AM), never to noon.
	f.HandleKey(locale.PartHour, Key{Kind: KeyUp})
	if got := segText(t, f, locale.PartHour); got != "00" {
		t.Fatalf("hour after wrap = %q, want 00", got)
	}
	if got := segText(t, f, locale.PartDayPeriod); got != "AM" {
		t.Fatalf("period must not flip on hour arrows, got %q", got)
	}
}

func TestSegmentsProjection(t *testing.T) {
	f := newMinuteField(t, 12)
	views := f.Segments()

	// en-US order: month / day / year, then time.
	var order []locale.PartType
	for _, v := range views {
		if v.Part != locale.PartLiteral {
			order = append(order, v.Part)
		}
	}
	want := []locale.PartType{locale.PartMonth, locale.PartDay, locale.PartYear,
		locale.PartHour, locale.PartMinute, locale.PartDayPeriod}
	if len(order) != len(want) {
		t.Fatalf("part order = %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("part order = %v, want %v", order, want)
		}
	}

	// Unfilled segments render placeholder tokens with bounds.
	for _, v := range views {
		if v.Part == locale.PartDay {
			if v.Filled || v.Text != "dd" || v.ValueMin != 1 || v.ValueMax != 31 {
				t.Fatalf("day view = %+v", v)
			}
		}
	}
}
