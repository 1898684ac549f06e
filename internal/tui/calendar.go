package tui

import (
	"fmt"
	"strconv"
	"strings"

	"almanac/internal/date"
	"almanac/internal/grid"
	"almanac/internal/locale"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// calendarModel hosts the calendar picker: a fixed-weeks month grid
// with roving cell focus, paging and single/multiple selection.
type calendarModel struct {
	g    *grid.Grid
	fmtr *locale.Formatter

	// focus indexes into g.Cells().
	focus    int
	selected []date.CalendarDate
	multiple bool
	maxDays  int
}

func newCalendarModel(localeTag string) (calendarModel, error) {
	today, err := date.Today("Local")
	if err != nil {
		return calendarModel{}, err
	}
	info := locale.Lookup(localeTag)
	g := grid.New(today, grid.Config{
		WeekStartsOn: info.FirstDayOfWeek,
		FixedWeeks:   true,
	})
	m := calendarModel{g: g, fmtr: locale.New(localeTag), maxDays: 7}
	m.focusDay(today)
	return m, nil
}

func (m *calendarModel) focusDay(d date.CalendarDate) {
	for i, c := range m.g.Cells() {
		if date.SameDay(c, d) {
			m.focus = i
			return
		}
	}
}

func (m *calendarModel) move(delta int) {
	idx, _ := m.g.MoveFocus(m.focus, delta)
	m.focus = idx
}

func (m *calendarModel) clampFocus() {
	if n := len(m.g.Cells()); m.focus >= n {
		m.focus = n - 1
	}
}

// handleKey processes one keystroke. It returns the picked day when a
// single-mode selection lands, so the caller can bind it elsewhere.
func (m *calendarModel) handleKey(msg tea.KeyMsg) *date.CalendarDate {
	switch msg.String() {
	case "left":
		m.move(-1)
	case "right":
		m.move(+1)
	case "up":
		m.move(-7)
	case "down":
		m.move(+7)
	case "pgup", "p":
		if m.g.PrevPage() {
			m.clampFocus()
		}
	case "pgdown", "n":
		if m.g.NextPage() {
			m.clampFocus()
		}
	case "m":
		m.multiple = !m.multiple
	case "t":
		if today, err := date.Today("Local"); err == nil {
			m.g.SetAnchor(today)
			m.focusDay(today)
		}
	case "enter", " ":
		cells := m.g.Cells()
		if m.focus >= len(cells) {
			return nil
		}
		clicked := cells[m.focus]
		if m.multiple {
			m.selected = grid.ToggleMultiple(m.selected, clicked, m.maxDays, false)
			return nil
		}
		var cur *date.CalendarDate
		if len(m.selected) == 1 {
			cur = &m.selected[0]
		}
		next := grid.ToggleSingle(cur, clicked, false)
		if next == nil {
			m.selected = nil
			return nil
		}
		m.selected = []date.CalendarDate{*next}
		return next
	}
	return nil
}

func (m calendarModel) view(width int) string {
	cells := m.g.Cells()
	var focused date.CalendarDate
	if m.focus < len(cells) {
		focused = cells[m.focus]
	}

	var lines []string
	for _, month := range m.g.Months() {
		title := lipgloss.NewStyle().Bold(true).Render(m.fmtr.FullMonthAndYear(month.Value))
		lines = append(lines, truncateLine(title, width))

		hdr := make([]string, 0, 7)
		for _, d := range month.Weeks[0] {
			hdr = append(hdr, padLeft(m.fmtr.DayOfWeek(d, "narrow"), 2))
		}
		lines = append(lines, truncateLine(styleMuted().Render(strings.Join(hdr, " ")), width))

		for _, week := range month.Weeks {
			row := make([]string, 0, 7)
			for _, d := range week {
				row = append(row, m.cell(d, month.Value, focused))
			}
			lines = append(lines, truncateLine(strings.Join(row, " "), width))
		}
		lines = append(lines, "")
	}

	mode := "single"
	if m.multiple {
		mode = fmt.Sprintf("multiple, max span %d days", m.maxDays)
	}
	lines = append(lines, styleMuted().Render(
		"selection: "+mode+"  enter: select  n/p: page  m: mode  t: today"))
	return strings.Join(lines, "\n")
}

func (m calendarModel) cell(d, monthOf, focused date.CalendarDate) string {
	text := padLeft(strconv.Itoa(d.Day), 2)
	st := lipgloss.NewStyle().Foreground(colorSurfaceFg)
	if !date.SameMonth(d, monthOf) {
		st = styleMuted()
	}
	for _, s := range m.selected {
		if date.SameDay(s, d) {
			st = lipgloss.NewStyle().Background(colorAccent).Foreground(colorAccentFg)
			break
		}
	}
	if date.SameDay(d, focused) {
		st = st.Background(colorSelectedBg).Foreground(colorSelectedFg)
	}
	return st.Render(text)
}

func padLeft(s string, width int) string {
	for len(s) < width {
		s = " " + s
	}
	return s
}
