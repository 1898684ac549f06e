package date

import (
	"strings"
	"testing"
)

// America/New_York 2024: spring forward Mar 10 02:00 -> 03:00,
// fall back Nov 3 02:00 -> 01:00.

func TestResolveAbsoluteUnambiguous(t *testing.T) {
	dt := NewCalendarDateTime(2024, 6, 15, 12, 0, 0, 0)
	z, err := ToZoned(dt, "America/New_York", DisambiguationReject)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if z.OffsetMillis != -4*3600*1000 {
		t.Fatalf("summer offset = %d, want -4h", z.OffsetMillis)
	}
	if z.CalendarDateTime != dt {
		t.Fatalf("wall clock changed: %s", z)
	}
}

func TestResolveAbsoluteSpringForwardGap(t *testing.T) {
	gap := NewCalendarDateTime(2024, 3, 10, 2, 30, 0, 0)

	// compatible picks the later boundary: the wall clock lands at 3:30 EDT.
	z, err := ToZoned(gap, "America/New_York", DisambiguationCompatible)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if z.Hour != 3 || z.Minute != 30 || z.OffsetMillis != -4*3600*1000 {
		t.Fatalf("compatible gap resolution = %s, want 03:30 at -4h", z)
	}

	earlier, err := ToZoned(gap, "America/New_York", DisambiguationEarlier)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if earlier.Hour != 1 || earlier.Minute != 30 {
		t.Fatalf("earlier gap resolution = %s, want 01:30", earlier)
	}

	later, err := ToZoned(gap, "America/New_York", DisambiguationLater)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if later.Hour != 3 || later.Minute != 30 || later.OffsetMillis != -4*3600*1000 {
		t.Fatalf("later gap resolution = %s, want 03:30 at -4h", later)
	}

	if _, err := ToZoned(gap, "America/New_York", DisambiguationReject); err == nil {
		t.Fatalf("reject policy should error on a nonexistent wall time")
	} else if !strings.Contains(err.Error(), "nonexistent") {
		t.Fatalf("unexpected error text: %v", err)
	}
}

func TestResolveAbsoluteFallBackAmbiguity(t *testing.T) {
	dup := NewCalendarDateTime(2024, 11, 3, 1, 30, 0, 0)

	early, err := ToZoned(dup, "America/New_York", DisambiguationCompatible)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if early.OffsetMillis != -4*3600*1000 {
		t.Fatalf("compatible should pick the earlier (EDT) instant, got offset %d", early.OffsetMillis)
	}

	late, err := ToZoned(dup, "America/New_York", DisambiguationLater)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if late.OffsetMillis != -5*3600*1000 {
		t.Fatalf("later should pick the EST instant, got offset %d", late.OffsetMillis)
	}
	if late.EpochMillis()-early.EpochMillis() != 3600*1000 {
		t.Fatalf("ambiguous instants should be one hour apart")
	}

	if _, err := ToZoned(dup, "America/New_York", DisambiguationReject); err == nil {
		t.Fatalf("reject policy should error on an ambiguous wall time")
	}
}

func TestZonedAddKeepsWallClockAcrossDST(t *testing.T) {
	z, err := ToZoned(NewCalendarDateTime(2024, 3, 9, 8, 0, 0, 0), "America/New_York", DisambiguationCompatible)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	next, err := z.Add(Duration{Days: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Hour != 8 || next.Day != 10 {
		t.Fatalf("+1 day across spring forward should stay at 08:00, got %s", next)
	}
	// The absolute gap is only 23 hours.
	if next.EpochMillis()-z.EpochMillis() != 23*3600*1000 {
		t.Fatalf("absolute delta = %d ms, want 23h", next.EpochMillis()-z.EpochMillis())
	}
}

func TestOffsetForZoneUTCFastPath(t *testing.T) {
	off, err := OffsetForZone(0, "UTC")
	if err != nil || off != 0 {
		t.Fatalf("UTC offset = %d, %v", off, err)
	}
	if _, err := OffsetForZone(0, "Not/AZone"); err == nil {
		t.Fatalf("expected error for unknown zone")
	}
}

func TestEpochRoundTrip(t *testing.T) {
	z, err := ToZoned(NewCalendarDateTime(2024, 7, 1, 9, 30, 0, 250), "Europe/Oslo", DisambiguationReject)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back, err := FromEpochMillis(z.EpochMillis(), Gregorian{}, "Europe/Oslo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back != z {
		t.Fatalf("epoch round trip mismatch: %s vs %s", back, z)
	}
}

func TestZonedString(t *testing.T) {
	z, err := ToZoned(NewCalendarDateTime(2024, 1, 15, 8, 0, 0, 0), "America/New_York", DisambiguationReject)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "2024-01-15T08:00:00-05:00[America/New_York]"
	if got := z.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
