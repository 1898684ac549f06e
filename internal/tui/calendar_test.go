package tui

import (
	"strings"
	"testing"

	"almanac/internal/date"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func newTestCalendar(t *testing.T) calendarModel {
	t.Helper()
	m, err := newCalendarModel("en-US")
	if err != nil {
		t.Fatalf("newCalendarModel: %v", err)
	}
	anchor := date.NewCalendarDate(2024, 6, 10)
	m.g.SetAnchor(anchor)
	m.selected = nil
	m.focusDay(anchor)
	return m
}

func TestCalendarFocusMovement(t *testing.T) {
	m := newTestCalendar(t)

	// June 2024 with Sunday week start: grid begins May 26, so June 10
	// sits at index 15.
	if m.focus != 15 {
		t.Fatalf("focus = %d, want 15", m.focus)
	}
	m.handleKey(tea.KeyMsg{Type: tea.KeyRight})
	if m.focus != 16 {
		t.Fatalf("focus after right = %d, want 16", m.focus)
	}
	m.handleKey(tea.KeyMsg{Type: tea.KeyDown})
	if m.focus != 23 {
		t.Fatalf("focus after down = %d, want 23", m.focus)
	}
}

func TestCalendarSingleSelection(t *testing.T) {
	m := newTestCalendar(t)

	picked := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if picked == nil {
		t.Fatalf("enter should pick the focused day")
	}
	if *picked != date.NewCalendarDate(2024, 6, 10) {
		t.Fatalf("picked = %s", *picked)
	}
	if len(m.selected) != 1 {
		t.Fatalf("selected = %v", m.selected)
	}

	// Picking the same day again deselects.
	picked = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if picked != nil || len(m.selected) != 0 {
		t.Fatalf("reselecting should deselect, picked=%v selected=%v", picked, m.selected)
	}
}

func TestCalendarMultipleSelectionSpanLimit(t *testing.T) {
	m := newTestCalendar(t)
	m.handleKey(runeKey('m'))
	if !m.multiple {
		t.Fatalf("m should toggle multiple mode")
	}

	m.handleKey(tea.KeyMsg{Type: tea.KeyEnter}) // June 10
	m.handleKey(tea.KeyMsg{Type: tea.KeyDown})
	m.handleKey(tea.KeyMsg{Type: tea.KeyEnter}) // June 17, span 7 = maxDays
	if len(m.selected) != 2 {
		t.Fatalf("selected = %v, want two dates", m.selected)
	}

	m.handleKey(tea.KeyMsg{Type: tea.KeyDown})
	m.handleKey(tea.KeyMsg{Type: tea.KeyEnter}) // June 24, span 14 evicts
	if len(m.selected) != 1 || m.selected[0] != date.NewCalendarDate(2024, 6, 24) {
		t.Fatalf("span eviction should leave only June 24, got %v", m.selected)
	}
}

func TestCalendarViewRendersMonth(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI256)
	m := newTestCalendar(t)

	out := m.view(80)
	if !strings.Contains(out, "June 2024") {
		t.Fatalf("view should carry the month title, got:\n%s", out)
	}
	if !strings.Contains(out, "10") {
		t.Fatalf("view should carry day numbers, got:\n%s", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w > 80 {
			t.Fatalf("line width %d exceeds 80: %q", w, line)
		}
	}
}

func TestCalendarPagingKeepsFocusInRange(t *testing.T) {
	m := newTestCalendar(t)

	m.handleKey(runeKey('n'))
	if got := m.g.Months()[0].Value; got != date.NewCalendarDate(2024, 7, 1) {
		t.Fatalf("next page month = %s, want July", got)
	}
	if m.focus >= len(m.g.Cells()) {
		t.Fatalf("focus %d out of range after paging", m.focus)
	}
	m.handleKey(runeKey('p'))
	if got := m.g.Months()[0].Value; got != date.NewCalendarDate(2024, 6, 1) {
		t.Fatalf("prev page month = %s, want June", got)
	}
}
