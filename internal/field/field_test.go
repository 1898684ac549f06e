package field

import (
	"testing"

	"almanac/internal/date"
	"almanac/internal/locale"
)

func newDayField(t *testing.T) *Field {
	t.Helper()
	f, err := New(Config{
		Locale:      "en-US",
		Placeholder: date.NewCalendarDate(2024, 1, 15),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f
}

func newMinuteField(t *testing.T, hourCycle int) *Field {
	t.Helper()
	f, err := New(Config{
		Locale:      "en-US",
		Granularity: GranularityMinute,
		HourCycle:   hourCycle,
		Placeholder: date.NewCalendarDateTime(2024, 1, 15, 0, 0, 0, 0),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f
}

func typeDigits(f *Field, part locale.PartType, digits string) KeyResult {
	var res KeyResult
	for _, r := range digits {
		res = f.HandleKey(part, Key{Kind: KeyRune, Rune: r})
	}
	return res
}

func segText(t *testing.T, f *Field, part locale.PartType) string {
	t.Helper()
	s, ok := f.segments.get(part)
	if !ok {
		t.Fatalf("segment %s is unfilled", part)
	}
	return s
}

func TestFillThenCommit(t *testing.T) {
	f := newDayField(t)
	if f.Value() != nil {
		t.Fatalf("empty field should have no value")
	}

	typeDigits(f, locale.PartMonth, "01")
	typeDigits(f, locale.PartDay, "15")
	if f.Value() != nil {
		t.Fatalf("value should stay absent until the year is filled")
	}
	typeDigits(f, locale.PartYear, "2024")

	want := date.NewCalendarDate(2024, 1, 15)
	if f.Value() == nil || f.Value().Compare(want) != 0 {
		t.Fatalf("committed value = %v, want %s", f.Value(), want)
	}
}

func TestClearOnMissingSegment(t *testing.T) {
	f := newDayField(t)
	typeDigits(f, locale.PartMonth, "03")
	typeDigits(f, locale.PartDay, "10")
	typeDigits(f, locale.PartYear, "2024")
	if f.Value() == nil {
		t.Fatalf("expected a committed value")
	}

	// Backspacing the day to empty clears the whole value: a value is
	// complete or absent, never partially wrong.
	f.HandleKey(locale.PartDay, Key{Kind: KeyBackspace})
	f.HandleKey(locale.PartDay, Key{Kind: KeyBackspace})
	if f.Value() != nil {
		t.Fatalf("value should clear when a segment empties, got %v", f.Value())
	}
}

func TestDigitOverflowAdvance(t *testing.T) {
	f := newDayField(t)

	res := f.HandleKey(locale.PartDay, Key{Kind: KeyRune, Rune: '4'})
	if res.Move != 1 || segText(t, f, locale.PartDay) != "04" {
		// 4 cannot start a two-digit day below 31, so it completes.
		t.Fatalf("typing 4: text=%q move=%d", segText(t, f, locale.PartDay), res.Move)
	}
	res = f.HandleKey(locale.PartDay, Key{Kind: KeyRune, Rune: '5'})
	if segText(t, f, locale.PartDay) != "05" || res.Move != 1 {
		// 45 overflows 31: the 4 is discarded and 5 starts fresh.
		t.Fatalf("typing 5 after 4: text=%q move=%d", segText(t, f, locale.PartDay), res.Move)
	}
}

func TestTwoDigitAccumulation(t *testing.T) {
	f := newDayField(t)

	res := f.HandleKey(locale.PartDay, Key{Kind: KeyRune, Rune: '1'})
	if res.Move != 0 || segText(t, f, locale.PartDay) != "1" {
		t.Fatalf("bare 1 should wait: text=%q move=%d", segText(t, f, locale.PartDay), res.Move)
	}
	res = f.HandleKey(locale.PartDay, Key{Kind: KeyRune, Rune: '7'})
	if res.Move != 1 || segText(t, f, locale.PartDay) != "17" {
		t.Fatalf("17 should accept and advance: text=%q move=%d", segText(t, f, locale.PartDay), res.Move)
	}
}

func TestLoneZeroHandling(t *testing.T) {
	f := newDayField(t)

	res := f.HandleKey(locale.PartDay, Key{Kind: KeyRune, Rune: '0'})
	if res.Move != 0 || segText(t, f, locale.PartDay) != "0" {
		t.Fatalf("lone zero should wait: text=%q move=%d", segText(t, f, locale.PartDay), res.Move)
	}
	// A second zero is not a valid day; the entry keeps waiting.
	res = f.HandleKey(locale.PartDay, Key{Kind: KeyRune, Rune: '0'})
	if res.Move != 0 || segText(t, f, locale.PartDay) != "0" {
		t.Fatalf("00 is not a day: text=%q move=%d", segText(t, f, locale.PartDay), res.Move)
	}
	res = f.HandleKey(locale.PartDay, Key{Kind: KeyRune, Rune: '7'})
	if res.Move != 1 || segText(t, f, locale.PartDay) != "07" {
		t.Fatalf("0 then 7: text=%q move=%d", segText(t, f, locale.PartDay), res.Move)
	}

	// Minutes accept 00 outright.
	m := newMinuteField(t, 24)
	m.HandleKey(locale.PartMinute, Key{Kind: KeyRune, Rune: '0'})
	res = m.HandleKey(locale.PartMinute, Key{Kind: KeyRune, Rune: '0'})
	if res.Move != 1 || segText(t, m, locale.PartMinute) != "00" {
		t.Fatalf("00 minutes: text=%q move=%d", segText(t, m, locale.PartMinute), res.Move)
	}
}

func TestYearLeadingZeroRecovery(t *testing.T) {
	f := newDayField(t)

	typeDigits(f, locale.PartYear, "98")
	if got := segText(t, f, locale.PartYear); got != "0098" {
		t.Fatalf("after 9,8: year = %q, want 0098", got)
	}
	f.HandleKey(locale.PartYear, Key{Kind: KeyBackspace})
	if got := segText(t, f, locale.PartYear); got != "009" {
		t.Fatalf("after backspace: year = %q, want 009", got)
	}
	res := f.HandleKey(locale.PartYear, Key{Kind: KeyRune, Rune: '7'})
	if got := segText(t, f, locale.PartYear); got != "0097" {
		t.Fatalf("after retype: year = %q, want 0097", got)
	}
	if res.Move != 1 {
		t.Fatalf("correction matching the backspace count should complete the entry")
	}
}

func TestYearFourDigitEntry(t *testing.T) {
	f := newDayField(t)
	var last KeyResult
	for i, r := range "2024" {
		last = f.HandleKey(locale.PartYear, Key{Kind: KeyRune, Rune: r})
		if i < 3 && last.Move != 0 {
			t.Fatalf("year should not advance after %d digits", i+1)
		}
	}
	if last.Move != 1 || segText(t, f, locale.PartYear) != "2024" {
		t.Fatalf("year = %q move=%d", segText(t, f, locale.PartYear), last.Move)
	}
}

func TestBackspaceCollapsesLeadingZeroPair(t *testing.T) {
	f := newDayField(t)
	typeDigits(f, locale.PartDay, "05")
	res := f.HandleKey(locale.PartDay, Key{Kind: KeyBackspace})
	if res.Move != -1 {
		t.Fatalf("collapsing should retreat focus")
	}
	if _, ok := f.segments.get(locale.PartDay); ok {
		t.Fatalf("zero-led pair should collapse to unfilled")
	}

	typeDigits(f, locale.PartDay, "17")
	res = f.HandleKey(locale.PartDay, Key{Kind: KeyBackspace})
	if res.Move != 0 || segText(t, f, locale.PartDay) != "1" {
		t.Fatalf("17 backspace should keep 1, got %q move=%d", segText(t, f, locale.PartDay), res.Move)
	}
}

func TestFocusLossDiscardsPartial(t *testing.T) {
	f := newDayField(t)
	f.HandleKey(locale.PartDay, Key{Kind: KeyRune, Rune: '1'})
	f.FocusOut(locale.PartDay)
	// Focus-out pads the single digit for display.
	if got := segText(t, f, locale.PartDay); got != "01" {
		t.Fatalf("focus-out should pad, got %q", got)
	}
	// The next digit starts a fresh entry rather than appending.
	f.HandleKey(locale.PartDay, Key{Kind: KeyRune, Rune: '2'})
	if got := segText(t, f, locale.PartDay); got != "2" {
		t.Fatalf("stale partial should be discarded, got %q", got)
	}
}

func TestArrowSeedsAndCycles(t *testing.T) {
	f := newDayField(t)

	// Empty month seeds from the placeholder (January).
	f.HandleKey(locale.PartMonth, Key{Kind: KeyUp})
	if got := segText(t, f, locale.PartMonth); got != "01" {
		t.Fatalf("seed = %q, want 01", got)
	}
	// Subsequent arrows cycle without carrying.
	f.HandleKey(locale.PartMonth, Key{Kind: KeyDown})
	if got := segText(t, f, locale.PartMonth); got != "12" {
		t.Fatalf("January - 1 = %q, want 12", got)
	}

	typeDigits(f, locale.PartDay, "31")
	f.HandleKey(locale.PartDay, Key{Kind: KeyUp})
	if got := segText(t, f, locale.PartDay); got != "01" {
		t.Fatalf("day 31 + 1 should wrap to 01, got %q", got)
	}
}

func TestArrowStepRounds(t *testing.T) {
	f := newMinuteField(t, 24)
	typeDigits(f, locale.PartMinute, "22")
	f.HandleKey(locale.PartMinute, Key{Kind: KeyUp, Step: 15})
	if got := segText(t, f, locale.PartMinute); got != "30" {
		t.Fatalf("paged arrow = %q, want 30", got)
	}
}

func TestMonthChangeClampsDay(t *testing.T) {
	f := newDayField(t)
	typeDigits(f, locale.PartDay, "31")
	typeDigits(f, locale.PartYear, "2024")
	typeDigits(f, locale.PartMonth, "02")
	if got := segText(t, f, locale.PartDay); got != "29" {
		t.Fatalf("day should clamp to leap February, got %q", got)
	}
	want := date.NewCalendarDate(2024, 2, 29)
	if f.Value() == nil || f.Value().Compare(want) != 0 {
		t.Fatalf("value = %v, want %s", f.Value(), want)
	}
}

func TestSyncPreservesMidEditSegment(t *testing.T) {
	f := newDayField(t)
	f.HandleKey(locale.PartDay, Key{Kind: KeyRune, Rune: '1'})

	// An upstream value change must not clobber the in-progress day.
	f.SetValue(date.NewCalendarDate(2030, 6, 20))
	if got := segText(t, f, locale.PartDay); got != "1" {
		t.Fatalf("mid-edit day should survive sync, got %q", got)
	}
	if got := segText(t, f, locale.PartMonth); got != "06" {
		t.Fatalf("other segments should sync, got %q", got)
	}
}

func TestSyncGuardIsOneShot(t *testing.T) {
	f := newDayField(t)
	typeDigits(f, locale.PartMonth, "06")
	typeDigits(f, locale.PartDay, "15")
	typeDigits(f, locale.PartYear, "2024")
	f.HandleKey(locale.PartMonth, Key{Kind: KeyUp})

	// The echo sync for the arrow keystroke keeps the edited month, but
	// the guard is spent there: the next upstream value wins.
	f.SetValue(f.Value())
	if got := segText(t, f, locale.PartMonth); got != "07" {
		t.Fatalf("echo sync should keep the cycled month, got %q", got)
	}
	f.SetValue(date.NewCalendarDate(2025, 12, 25))
	if got := segText(t, f, locale.PartMonth); got != "12" {
		t.Fatalf("later sync should overwrite the month, got %q", got)
	}
	if got := segText(t, f, locale.PartDay); got != "25" {
		t.Fatalf("later sync should overwrite the day, got %q", got)
	}
}

func TestGranularityInference(t *testing.T) {
	f, err := New(Config{Locale: "en-US", Value: date.NewCalendarDate(2024, 1, 2)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if f.Granularity() != GranularityDay {
		t.Fatalf("date value should infer day granularity, got %s", f.Granularity())
	}

	f, err = New(Config{Locale: "en-US", Value: date.NewCalendarDateTime(2024, 1, 2, 9, 30, 0, 0)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if f.Granularity() != GranularityMinute {
		t.Fatalf("datetime value should infer minute granularity, got %s", f.Granularity())
	}
}

func TestValidationStatus(t *testing.T) {
	f, err := New(Config{
		Locale:      "en-US",
		Placeholder: date.NewCalendarDate(2024, 1, 15),
		MinValue:    date.NewCalendarDate(2024, 1, 10),
		MaxValue:    date.NewCalendarDate(2024, 1, 20),
		Validate: func(v date.Value) string {
			if v.Date().Day == 13 {
				return "no thirteenths"
			}
			return ""
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	f.SetValue(date.NewCalendarDate(2024, 1, 5))
	if inv := f.Validation(); inv == nil || inv.Reason != "min" {
		t.Fatalf("expected min violation, got %+v", inv)
	}
	f.SetValue(date.NewCalendarDate(2024, 1, 25))
	if inv := f.Validation(); inv == nil || inv.Reason != "max" {
		t.Fatalf("expected max violation, got %+v", inv)
	}
	f.SetValue(date.NewCalendarDate(2024, 1, 13))
	if inv := f.Validation(); inv == nil || inv.Reason != "custom" || inv.Message != "no thirteenths" {
		t.Fatalf("expected custom violation, got %+v", inv)
	}
	f.SetValue(date.NewCalendarDate(2024, 1, 15))
	if inv := f.Validation(); inv != nil {
		t.Fatalf("expected valid, got %+v", inv)
	}
}

func TestReadonlySegmentIgnoresKeys(t *testing.T) {
	f, err := New(Config{
		Locale:           "en-US",
		Placeholder:      date.NewCalendarDate(2024, 1, 15),
		ReadonlySegments: map[locale.PartType]bool{locale.PartYear: true},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res := f.HandleKey(locale.PartYear, Key{Kind: KeyRune, Rune: '2'})
	if res.Handled {
		t.Fatalf("readonly segment must ignore keys")
	}
	if _, ok := f.segments.get(locale.PartYear); ok {
		t.Fatalf("readonly segment must stay unfilled")
	}
}

func TestNonDigitKeysAreNoOps(t *testing.T) {
	f := newDayField(t)
	res := f.HandleKey(locale.PartDay, Key{Kind: KeyRune, Rune: 'x'})
	if res.Handled {
		t.Fatalf("non-digit rune should not be handled")
	}
	if _, ok := f.segments.get(locale.PartDay); ok {
		t.Fatalf("no-op key should not fill the segment")
	}
}
