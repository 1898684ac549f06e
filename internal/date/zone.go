package date

import (
	"fmt"
	"sync"
	"time"
)

// Disambiguation selects among the candidate absolute instants for a
// wall-clock time near a DST transition.
type Disambiguation string

const (
	// DisambiguationCompatible picks the earlier instant when a wall
	// time is ambiguous (clocks fell back) and the later instant when
	// it does not exist (clocks sprang forward). This mirrors the
	// common platform Date behavior.
	DisambiguationCompatible Disambiguation = "compatible"
	DisambiguationEarlier    Disambiguation = "earlier"
	DisambiguationLater      Disambiguation = "later"
	// DisambiguationReject errors unless exactly one instant matches.
	DisambiguationReject Disambiguation = "reject"
)

// zoneCache memoizes time.LoadLocation lookups. LoadLocation re-reads
// tzdata on every call, which is far too slow for per-keystroke offset
// resolution. Process-wide with explicit eviction via FlushZones.
type zoneCache struct {
	mu    sync.Mutex
	zones map[string]*time.Location
}

var cachedZones = &zoneCache{zones: map[string]*time.Location{}}

func (c *zoneCache) load(id string) (*time.Location, error) {
	// Fast paths that never hit tzdata.
	switch id {
	case "UTC", "Etc/UTC", "":
		return time.UTC, nil
	case "Local":
		return time.Local, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if loc, ok := c.zones[id]; ok {
		return loc, nil
	}
	loc, err := time.LoadLocation(id)
	if err != nil {
		return nil, fmt.Errorf("unknown time zone %q: %w", id, err)
	}
	c.zones[id] = loc
	return loc, nil
}

// FlushZones empties the zone lookup cache.
func FlushZones() {
	cachedZones.mu.Lock()
	defer cachedZones.mu.Unlock()
	cachedZones.zones = map[string]*time.Location{}
}

// epochFromCivil converts civil fields to epoch milliseconds assuming
// UTC. Julian day 2440588 is 1970-01-01.
const epochJulianDay = 2440588

func epochFromCivil(dt CalendarDateTime) int64 {
	jd := int64(dt.CalendarDate.JulianDay())
	return (jd-epochJulianDay)*dayMillis + int64(dt.timeMillis())
}

// civilFromEpoch converts epoch milliseconds plus a UTC offset back to
// civil fields in the given calendar.
func civilFromEpoch(cal Calendar, epochMs int64, offsetMillis int) CalendarDateTime {
	local := epochMs + int64(offsetMillis)
	jd := int(floorDiv64(local, dayMillis)) + epochJulianDay
	tod := int(floorMod64(local, dayMillis))
	return withTimeMillis(cal.FromJulianDay(jd), tod)
}

// OffsetForZone resolves the zone's UTC offset, in milliseconds, at the
// given absolute instant.
func OffsetForZone(epochMs int64, zone string) (int, error) {
	loc, err := cachedZones.load(zone)
	if err != nil {
		return 0, err
	}
	if loc == time.UTC {
		return 0, nil
	}
	_, offsetSec := time.UnixMilli(epochMs).In(loc).Zone()
	return offsetSec * 1000, nil
}

// ResolveAbsolute maps a civil wall-clock time in a zone to epoch
// milliseconds. It is the single source of truth for DST handling:
// offsets one day before and after the target are used to derive the
// 0, 1 or 2 absolute instants consistent with the wall time, and the
// disambiguation policy picks among them. Every zoned conversion and
// arithmetic path routes through here.
func ResolveAbsolute(dt CalendarDateTime, zone string, dis Disambiguation) (int64, error) {
	ms := epochFromCivil(dt)

	offsetBefore, err := OffsetForZone(ms-dayMillis, zone)
	if err != nil {
		return 0, err
	}
	offsetAfter, err := OffsetForZone(ms+dayMillis, zone)
	if err != nil {
		return 0, err
	}

	earlier := ms - int64(offsetBefore)
	later := ms - int64(offsetAfter)

	valid := make([]int64, 0, 2)
	for _, candidate := range []int64{earlier, later} {
		if len(valid) > 0 && valid[0] == candidate {
			continue
		}
		off, err := OffsetForZone(candidate, zone)
		if err != nil {
			return 0, err
		}
		if int64(off) == ms-candidate {
			valid = append(valid, candidate)
		}
	}

	switch len(valid) {
	case 1:
		return valid[0], nil
	case 2:
		// Ambiguous: clocks fell back and the wall time happened twice.
		switch dis {
		case DisambiguationCompatible, DisambiguationEarlier:
			return valid[0], nil
		case DisambiguationLater:
			return valid[1], nil
		case DisambiguationReject:
			return 0, fmt.Errorf("ambiguous wall-clock time %s in %s", dt, zone)
		}
	case 0:
		// Gap: clocks sprang forward and the wall time never happened.
		// The offset grows across the transition, so the candidate built
		// from the pre-transition offset is the later instant. Order the
		// two by instant value before picking.
		lo, hi := earlier, later
		if lo > hi {
			lo, hi = hi, lo
		}
		switch dis {
		case DisambiguationCompatible, DisambiguationLater:
			return hi, nil
		case DisambiguationEarlier:
			return lo, nil
		case DisambiguationReject:
			return 0, fmt.Errorf("nonexistent wall-clock time %s in %s", dt, zone)
		}
	}
	return 0, fmt.Errorf("unknown disambiguation policy %q", dis)
}

// ToZoned resolves a civil date-time to an absolute instant in the zone
// and returns the zoned value whose wall-clock fields match the instant
// (they differ from the input only when the input fell in a DST gap).
func ToZoned(dt CalendarDateTime, zone string, dis Disambiguation) (ZonedDateTime, error) {
	epochMs, err := ResolveAbsolute(dt, zone, dis)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return FromEpochMillis(epochMs, dt.calendar(), zone)
}

// FromEpochMillis expresses an absolute instant in the zone's civil
// calendar.
func FromEpochMillis(epochMs int64, cal Calendar, zone string) (ZonedDateTime, error) {
	offset, err := OffsetForZone(epochMs, zone)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return ZonedDateTime{
		CalendarDateTime: civilFromEpoch(cal, epochMs, offset),
		TimeZone:         zone,
		OffsetMillis:     offset,
	}, nil
}

// ToDateTime drops the zone, keeping the wall-clock fields.
func (z ZonedDateTime) ToDateTime() CalendarDateTime { return z.CalendarDateTime }

// ToDate drops zone and time of day.
func (z ZonedDateTime) ToDate() CalendarDate { return z.CalendarDate }

// Now returns the current instant in the zone.
func Now(zone string) (ZonedDateTime, error) {
	return FromEpochMillis(time.Now().UnixMilli(), Gregorian{}, zone)
}

// Today returns the current civil date in the zone.
func Today(zone string) (CalendarDate, error) {
	z, err := Now(zone)
	if err != nil {
		return CalendarDate{}, err
	}
	return z.ToDate(), nil
}
