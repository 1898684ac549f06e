package tui

import (
	"context"
	"strconv"
	"strings"
	"time"

	"almanac/internal/date"
	"almanac/internal/field"
	"almanac/internal/locale"
	"almanac/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// fieldModel hosts one segmented date-time field. Keystrokes aimed at
// the focused segment are fed to the field state machine; left/right
// and tab traversal between segments stays here.
type fieldModel struct {
	f         *field.Field
	st        store.Store
	announce  field.Announcer
	localeTag string

	// focus indexes into editableOrder(): the editable segments in the
	// locale's display order, so traversal matches what is on screen.
	focus int
}

func newFieldModel(localeTag string, st store.Store, a field.Announcer) (fieldModel, error) {
	f, err := field.New(field.Config{
		Locale:      localeTag,
		Granularity: field.GranularityMinute,
	})
	if err != nil {
		return fieldModel{}, err
	}
	f.SetAnnouncer(a)
	return fieldModel{f: f, st: st, announce: a, localeTag: localeTag}, nil
}

// editableOrder lists the editable segments left to right as rendered.
// Canonical part order puts the year first, which is wrong for locales
// like en-US that display month/day/year.
func (m *fieldModel) editableOrder() []locale.PartType {
	var parts []locale.PartType
	for _, v := range m.f.Segments() {
		switch v.Part {
		case locale.PartLiteral, locale.PartTimeZoneName:
		default:
			parts = append(parts, v.Part)
		}
	}
	return parts
}

func (m *fieldModel) focusedPart() locale.PartType {
	parts := m.editableOrder()
	if m.focus >= len(parts) {
		m.focus = len(parts) - 1
	}
	if m.focus < 0 {
		m.focus = 0
	}
	return parts[m.focus]
}

func (m *fieldModel) handleKey(msg tea.KeyMsg) bool {
	part := m.focusedPart()

	switch msg.String() {
	case "left", "shift+tab":
		m.moveFocus(-1)
		return true
	case "right", "tab":
		m.moveFocus(+1)
		return true
	case "up":
		m.f.HandleKey(part, field.Key{Kind: field.KeyUp})
		return true
	case "down":
		m.f.HandleKey(part, field.Key{Kind: field.KeyDown})
		return true
	case "pgup":
		m.f.HandleKey(part, field.Key{Kind: field.KeyUp, Step: pageStep(part)})
		return true
	case "pgdown":
		m.f.HandleKey(part, field.Key{Kind: field.KeyDown, Step: pageStep(part)})
		return true
	case "backspace":
		res := m.f.HandleKey(part, field.Key{Kind: field.KeyBackspace})
		m.applyMove(res)
		return true
	case "ctrl+u":
		m.f.Clear()
		m.focus = 0
		return true
	case "enter":
		m.commit()
		return true
	}

	if len(msg.Runes) == 1 {
		res := m.f.HandleKey(part, field.Key{Kind: field.KeyRune, Rune: msg.Runes[0]})
		if res.Handled {
			m.applyMove(res)
			return true
		}
	}
	return false
}

// pageStep picks the page-up/down increment; values above one snap to
// the multiple.
func pageStep(part locale.PartType) int {
	switch part {
	case locale.PartMinute, locale.PartSecond:
		return 5
	case locale.PartYear:
		return 10
	}
	return 0
}

func (m *fieldModel) applyMove(res field.KeyResult) {
	if res.Move != 0 {
		m.moveFocus(res.Move)
	}
}

func (m *fieldModel) moveFocus(delta int) {
	parts := m.editableOrder()
	m.f.FocusOut(parts[m.focus])
	m.focus += delta
	if m.focus < 0 {
		m.focus = 0
	}
	if m.focus >= len(parts) {
		m.focus = len(parts) - 1
	}
}

// setDate binds a picked calendar day into the date segments, leaving
// any time segments as they are. Month is set before day so day
// clamping sees the right month length.
func (m *fieldModel) setDate(d date.CalendarDate) {
	m.f.UpdateSegment(locale.PartYear, setSegment(padInt(d.Year, 4)))
	m.f.UpdateSegment(locale.PartMonth, setSegment(padInt(d.Month, 2)))
	m.f.UpdateSegment(locale.PartDay, setSegment(padInt(d.Day, 2)))
}

func setSegment(s string) func(*string) *string {
	return func(*string) *string { return &s }
}

func padInt(n, width int) string {
	s := strconv.Itoa(n)
	for len(s) < width {
		s = "0" + s
	}
	return s
}

func (m *fieldModel) commit() {
	v := m.f.Value()
	if v == nil {
		m.announce.Announce("Nothing to save: the field is incomplete", true)
		return
	}
	if inv := m.f.Validation(); inv != nil {
		m.announce.Announce(inv.Message, true)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := m.st.Append(ctx, m.localeTag, v.Kind().String(), v.String()); err != nil {
		m.announce.Announce("Save failed: "+err.Error(), true)
		return
	}
	m.announce.Announce("Saved "+m.f.Formatter().SelectedDate(v, true), false)
}

func (m fieldModel) view(width int) string {
	parts := m.editableOrder()
	focusPart := parts[min(m.focus, len(parts)-1)]

	var row strings.Builder
	for _, v := range m.f.Segments() {
		switch v.Part {
		case locale.PartLiteral, locale.PartTimeZoneName:
			row.WriteString(styleMuted().Render(v.Text))
		default:
			st := lipgloss.NewStyle().Foreground(colorSurfaceFg)
			if !v.Filled {
				st = lipgloss.NewStyle().Foreground(colorMuted)
			}
			if v.Part == focusPart {
				st = st.Background(colorSelectedBg).Foreground(colorSelectedFg)
			}
			row.WriteString(st.Render(v.Text))
		}
	}

	lines := []string{truncateLine(row.String(), width)}
	if v := m.f.Value(); v != nil {
		lines = append(lines, "",
			"Value: "+v.String(),
			styleMuted().Render(m.f.Formatter().SelectedDate(v, true)))
	} else {
		lines = append(lines, "", styleMuted().Render("Value: (incomplete)"))
	}
	if inv := m.f.Validation(); inv != nil {
		lines = append(lines, lipgloss.NewStyle().Foreground(colorError).Render(inv.Message))
	}
	lines = append(lines, "",
		styleMuted().Render("type digits  left/right: segment  up/down: step  enter: save  ctrl+u: clear"))
	return strings.Join(lines, "\n")
}
