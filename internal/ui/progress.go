// Package ui renders the interactive progress view of `cfparse check`.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Status is the outcome of one file in a check run.
type Status uint8

const (
	StatusQueued Status = iota
	StatusClean
	StatusIssues
	StatusFailed
)

var statusNames = [...]string{"queued", "ok", "issues", "failed"}

var statusColors = [...]lipgloss.Color{"7", "2", "3", "1"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return statusNames[StatusQueued]
}

func (s Status) style() lipgloss.Style {
	c := statusColors[StatusQueued]
	if int(s) < len(statusColors) {
		c = statusColors[s]
	}
	return lipgloss.NewStyle().Foreground(c)
}

// Event reports that File finished parsing with Issues diagnostics.
type Event struct {
	File   string
	Status Status
	Issues int
}

// recentLimit bounds the list of finished files; a tree of thousands of
// templates only shows its tail.
const recentLimit = 8

type progressModel struct {
	title   string
	events  <-chan Event
	spinner spinner.Model
	bar     progress.Model

	total   int
	pending map[string]struct{}
	tally   [len(statusNames)]int
	issues  int
	recent  []Event
	width   int
	done    bool
}

type eventMsg Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that follows events until the
// channel is closed. Events for files outside files, or repeated ones, are
// ignored.
func NewProgressModel(title string, files []string, events <-chan Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	pending := make(map[string]struct{}, len(files))
	for _, f := range files {
		pending[f] = struct{}{}
	}
	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     progress.New(progress.WithDefaultGradient()),
		total:   len(pending),
		pending: pending,
	}
	m.resize(80)
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.record(Event(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		m.resize(msg.Width)
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) resize(width int) {
	if width <= 0 {
		return
	}
	m.width = width
	m.bar.Width = max(width-4, 10)
}

func (m *progressModel) finished() int { return m.total - len(m.pending) }

func (m *progressModel) View() string {
	if m.total == 0 {
		return ""
	}
	var b strings.Builder

	head := fmt.Sprintf("%s %d/%d", m.title, m.finished(), m.total)
	if m.done {
		head = "done: " + head
	} else {
		head = m.spinner.View() + " " + head
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(head))
	for _, s := range []Status{StatusClean, StatusIssues, StatusFailed} {
		fmt.Fprintf(&b, "  %s", s.style().Render(fmt.Sprintf("%s %d", s, m.tally[s])))
	}
	if m.issues > 0 {
		fmt.Fprintf(&b, "  (%d diagnostics)", m.issues)
	}
	b.WriteString("\n\n")

	nameWidth := max(m.width-16, 20)
	for _, ev := range m.recent {
		label := ev.Status.String()
		if ev.Status == StatusIssues {
			label = fmt.Sprintf("%d issues", ev.Issues)
		}
		fmt.Fprintf(&b, "  %s %s\n", ev.Status.style().Render(fmt.Sprintf("%-12s", label)), truncate(ev.File, nameWidth))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *progressModel) record(ev Event) tea.Cmd {
	if ev.Status == StatusQueued || int(ev.Status) >= len(m.tally) {
		return nil
	}
	if _, ok := m.pending[ev.File]; !ok {
		return nil
	}
	delete(m.pending, ev.File)
	m.tally[ev.Status]++
	m.issues += ev.Issues
	m.recent = append(m.recent, ev)
	if len(m.recent) > recentLimit {
		m.recent = m.recent[len(m.recent)-recentLimit:]
	}
	return m.bar.SetPercent(float64(m.finished()) / float64(m.total))
}

// truncate shortens a path to width terminal cells, keeping its end: the
// file name matters more than the leading directories.
func truncate(path string, width int) string {
	if width <= 0 || runewidth.StringWidth(path) <= width {
		return path
	}
	if width <= 3 {
		return runewidth.TruncateLeft(path, runewidth.StringWidth(path)-width, "")
	}
	return runewidth.TruncateLeft(path, runewidth.StringWidth(path)-width+3, "...")
}
