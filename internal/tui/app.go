package tui

import (
	"strings"
	"sync"
	"time"

	"almanac/internal/docs"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type pane int

const (
	paneField pane = iota
	paneCalendar
)

const minibufferAutoClearAfter = 4 * time.Second

type tickMsg struct{}

type keyMap struct {
	Quit       key.Binding
	SwitchPane key.Binding
	Help       key.Binding
}

var appKeys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	SwitchPane: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "field/calendar")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}

// announceLog collects assistive announcements emitted by the field
// state machine during an Update pass. It is shared by pointer across
// model copies; the minibuffer drains it each pass.
type announceLog struct {
	mu      sync.Mutex
	pending []string
}

func (l *announceLog) Announce(message string, assertive bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending = append(l.pending, message)
}

func (l *announceLog) drain() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.pending
	l.pending = nil
	return out
}

type appModel struct {
	width  int
	height int

	pane     pane
	showHelp bool

	field fieldModel
	cal   calendarModel

	announcements *announceLog

	minibufferText  string
	minibufferSetAt time.Time
}

func newAppModel(opts Options) (appModel, error) {
	log := &announceLog{}

	fm, err := newFieldModel(opts.Locale, opts.Store, log)
	if err != nil {
		return appModel{}, err
	}
	cm, err := newCalendarModel(opts.Locale)
	if err != nil {
		return appModel{}, err
	}

	return appModel{
		pane:          paneField,
		field:         fm,
		cal:           cm,
		announcements: log,
	}, nil
}

func (m appModel) Init() tea.Cmd { return tick() }

func tick() tea.Cmd {
	return tea.Tick(750*time.Millisecond, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if m.minibufferText != "" && time.Since(m.minibufferSetAt) > minibufferAutoClearAfter {
			m.minibufferText = ""
		}
		return m, tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, appKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, appKeys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case msg.String() == "esc" && m.showHelp:
			m.showHelp = false
			return m, nil

		case key.Matches(msg, appKeys.SwitchPane):
			if m.pane == paneField {
				m.pane = paneCalendar
			} else {
				m.pane = paneField
			}
			return m, nil
		}

		if m.showHelp {
			return m, nil
		}

		switch m.pane {
		case paneField:
			(&m.field).handleKey(msg)
		case paneCalendar:
			if picked := (&m.cal).handleKey(msg); picked != nil {
				// Picking a day in the calendar binds it to the field's
				// date segments.
				(&m.field).setDate(*picked)
			}
		}
		m.drainAnnouncements()
		return m, nil
	}
	return m, nil
}

func (m *appModel) drainAnnouncements() {
	msgs := m.announcements.drain()
	if len(msgs) == 0 {
		return
	}
	// Latest wins; the minibuffer is a single line.
	m.showMinibuffer(msgs[len(msgs)-1])
}

func (m *appModel) showMinibuffer(text string) {
	m.minibufferText = text
	m.minibufferSetAt = time.Now()
}

func (m appModel) View() string {
	width := m.width
	if width < 40 {
		width = 80
	}

	header := lipgloss.NewStyle().Bold(true).Render("almanac")
	tabs := m.tabsLine()

	var body string
	switch {
	case m.showHelp:
		body = m.helpView(width)
	case m.pane == paneField:
		body = m.field.view(width)
	default:
		body = m.cal.view(width)
	}

	footer := styleMuted().Render("ctrl+t: field/calendar  ?: help  ctrl+c: quit")
	minibuffer := m.minibufferText

	return strings.Join([]string{header + "  " + tabs, "", body, "", minibuffer, footer}, "\n")
}

func (m appModel) tabsLine() string {
	active := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg)
	names := []string{"Field", "Calendar"}
	out := make([]string, len(names))
	for i, n := range names {
		if pane(i) == m.pane && !m.showHelp {
			out[i] = active.Render("[" + n + "]")
		} else {
			out[i] = styleMuted().Render(" " + n + " ")
		}
	}
	return strings.Join(out, " ")
}

func (m appModel) helpView(width int) string {
	topic := "fields"
	if m.pane == paneCalendar {
		topic = "calendar"
	}
	body, ok := docs.Get(topic)
	if !ok {
		return styleMuted().Render("no help available")
	}
	return renderMarkdown(body, width-2)
}
