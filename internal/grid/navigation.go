package grid

import "almanac/internal/date"

// Grid is the stateful month window: the built months plus paging and
// roving focus over their cells.
type Grid struct {
	cfg    Config
	anchor date.CalendarDate
	months []Month

	// DisableOutsideDays excludes adjacent-month padding cells from
	// the focusable cell set.
	DisableOutsideDays bool
}

// New builds a grid anchored at the given date's month.
func New(anchor date.CalendarDate, cfg Config) *Grid {
	g := &Grid{cfg: cfg, anchor: anchor}
	g.rebuild()
	return g
}

// Months returns the current window.
func (g *Grid) Months() []Month { return g.months }

// Anchor returns the first month's anchor date.
func (g *Grid) Anchor() date.CalendarDate { return g.anchor }

// SetAnchor moves the window to the date's month and rebuilds.
func (g *Grid) SetAnchor(d date.CalendarDate) {
	g.anchor = d
	g.rebuild()
}

func (g *Grid) rebuild() {
	g.months = BuildMonths(g.anchor, g.cfg)
}

func (g *Grid) pageStep() int {
	if g.cfg.PagedNavigation {
		return g.cfg.months()
	}
	return 1
}

// NextPage shifts the window forward (by the full window when paged
// navigation is on, else by one month). Returns false when navigation
// is disabled by MaxValue.
func (g *Grid) NextPage() bool {
	if g.NextDisabled() {
		return false
	}
	g.anchor = firstOfMonth(g.anchor).Add(date.Duration{Months: g.pageStep()})
	g.rebuild()
	return true
}

// PrevPage shifts the window backward.
func (g *Grid) PrevPage() bool {
	if g.PrevDisabled() {
		return false
	}
	g.anchor = firstOfMonth(g.anchor).Subtract(date.Duration{Months: g.pageStep()})
	g.rebuild()
	return true
}

// NextDisabled reports whether paging forward would land past
// MaxValue. The check is conservative: it compares the first day of
// the would-be first visible month.
func (g *Grid) NextDisabled() bool {
	if g.cfg.MaxValue == nil {
		return false
	}
	first := firstOfMonth(g.anchor).Add(date.Duration{Months: g.pageStep()})
	return first.Compare(*g.cfg.MaxValue) > 0
}

// PrevDisabled reports whether paging backward would land before
// MinValue. The check asks for day 35 of the would-be first month,
// which day clamping pulls to the month's last day.
func (g *Grid) PrevDisabled() bool {
	if g.cfg.MinValue == nil {
		return false
	}
	first := firstOfMonth(g.anchor).Subtract(date.Duration{Months: g.pageStep()})
	margin := first.Set(date.Fields{Day: date.Int(35)})
	return margin.Compare(*g.cfg.MinValue) < 0
}

// Cells flattens the window's focusable cells in render order.
// Adjacent-month padding cells are excluded when DisableOutsideDays is
// set.
func (g *Grid) Cells() []date.CalendarDate {
	var out []date.CalendarDate
	for _, m := range g.months {
		for _, d := range m.Dates {
			if g.DisableOutsideDays && !date.SameMonth(d, m.Value) {
				continue
			}
			out = append(out, d)
		}
	}
	return out
}

// MoveFocus moves the roving focus by delta cells (±1 horizontal, ±7
// vertical). Crossing either end of the rendered cell set shifts the
// month window, when allowed, and wraps the index into the new grid;
// a disallowed shift leaves focus where it was.
func (g *Grid) MoveFocus(index, delta int) (int, bool) {
	n := len(g.Cells())
	if n == 0 {
		return index, false
	}
	next := index + delta
	if next >= n {
		if !g.NextPage() {
			return index, false
		}
		m := len(g.Cells())
		next -= n
		if next >= m {
			next = m - 1
		}
		return next, true
	}
	if next < 0 {
		if !g.PrevPage() {
			return index, false
		}
		m := len(g.Cells())
		next += m
		if next < 0 {
			next = 0
		}
		return next, true
	}
	return next, false
}
