package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const maxEvents = 8

// WatchEvent reports one pass of the watch loop that did something
type WatchEvent struct {
	Time     time.Time
	Modified time.Time // source mtime the copy was made from
	Records  int
	Bytes    int
	Err      error
}

// WatchEventMsg is sent by the watch loop after each copy attempt
type WatchEventMsg WatchEvent

// WatchStoppedMsg is sent when the watch loop exits
type WatchStoppedMsg struct {
	Err error
}

// watchModel is the live dashboard shown while a file is being watched
type watchModel struct {
	spinner  spinner.Model
	path     string
	interval time.Duration
	started  time.Time
	events   []WatchEvent
	copies   int
	failures int
	stopped  bool
	err      error
}

// InitWatchModel creates a dashboard for path polled every interval
func InitWatchModel(path string, interval time.Duration) watchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return watchModel{
		spinner:  s,
		path:     path,
		interval: interval,
		started:  time.Now(),
	}
}

func (m watchModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case WatchEventMsg:
		ev := WatchEvent(msg)
		if ev.Err != nil {
			m.failures++
		} else {
			m.copies++
		}
		m.events = append(m.events, ev)
		if len(m.events) > maxEvents {
			m.events = m.events[len(m.events)-maxEvents:]
		}
		return m, nil

	case WatchStoppedMsg:
		m.stopped = true
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("larkbridge watch"))
	b.WriteString("\n\n")

	if m.stopped {
		if m.err != nil {
			return b.String() + errorStyle.Render("✗ Watch stopped: "+m.err.Error()) + "\n"
		}
		return b.String() + successStyle.Render(fmt.Sprintf("✓ Copied %d time(s)", m.copies)) + "\n"
	}

	b.WriteString(fmt.Sprintf("%s %s %s\n", m.spinner.View(), labelStyle.Render("Watching"), highlightStyle.Render(filepath.Base(m.path))))
	b.WriteString(fmt.Sprintf("  Interval: %s\n", valueStyle.Render(m.interval.String())))
	b.WriteString(fmt.Sprintf("  Copies:   %s\n", valueStyle.Render(fmt.Sprintf("%d", m.copies))))
	if m.failures > 0 {
		b.WriteString(fmt.Sprintf("  Errors:   %s\n", errorStyle.Render(fmt.Sprintf("%d", m.failures))))
	}
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Recent"))
	b.WriteString("\n")
	if len(m.events) == 0 {
		b.WriteString(helpStyle.Render("  Waiting for changes"))
		b.WriteString("\n")
	}
	for i := len(m.events) - 1; i >= 0; i-- {
		ev := m.events[i]
		stamp := ev.Time.Format(time.TimeOnly)
		if ev.Err != nil {
			b.WriteString(fmt.Sprintf("  %s %s\n", helpStyle.Render(stamp), errorStyle.Render("✗ "+ev.Err.Error())))
			continue
		}
		line := successStyle.Render(fmt.Sprintf("✓ copied %d records (%d bytes)", ev.Records, ev.Bytes))
		if !ev.Modified.IsZero() {
			line += helpStyle.Render(" saved " + ev.Modified.Format(time.TimeOnly))
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", helpStyle.Render(stamp), line))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("q quit"))
	b.WriteString("\n")
	return b.String()
}
