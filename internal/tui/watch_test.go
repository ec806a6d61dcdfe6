package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchModelEvents(t *testing.T) {
	m := InitWatchModel("/notes/today.md", 2*time.Second)
	assert.Contains(t, m.View(), "Waiting for changes")
	assert.Contains(t, m.View(), "today.md")

	at := time.Date(2025, 1, 2, 15, 4, 5, 0, time.Local)
	next, _ := m.Update(WatchEventMsg{Time: at, Records: 5, Bytes: 900})
	next, _ = next.Update(WatchEventMsg{Time: at, Err: errors.New("xclip not found")})
	m = next.(watchModel)

	assert.Equal(t, 1, m.copies)
	assert.Equal(t, 1, m.failures)
	view := m.View()
	assert.Contains(t, view, "copied 5 records (900 bytes)")
	assert.Contains(t, view, "xclip not found")
	assert.Contains(t, view, "15:04:05")
}

func TestWatchModelShowsSourceTime(t *testing.T) {
	m := InitWatchModel("a.md", time.Second)
	saved := time.Date(2025, 1, 2, 14, 30, 0, 0, time.Local)
	next, _ := m.Update(WatchEventMsg{Time: saved.Add(time.Second), Modified: saved, Records: 1})

	assert.Contains(t, next.View(), "saved 14:30:00")
	assert.NotContains(t, m.View(), "saved")
}

func TestWatchModelKeepsRecentEvents(t *testing.T) {
	var model tea.Model = InitWatchModel("a.md", time.Second)
	for i := 0; i < maxEvents+5; i++ {
		model, _ = model.Update(WatchEventMsg{Time: time.Now(), Records: i})
	}
	m := model.(watchModel)
	require.Len(t, m.events, maxEvents)
	assert.Equal(t, maxEvents+4, m.events[maxEvents-1].Records)
	assert.Equal(t, maxEvents+5, m.copies)
}

func TestWatchModelStopped(t *testing.T) {
	m := InitWatchModel("a.md", time.Second)

	next, cmd := m.Update(WatchStoppedMsg{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Contains(t, next.View(), "Copied 0 time(s)")

	next, _ = m.Update(WatchStoppedMsg{Err: errors.New("file removed")})
	assert.Contains(t, next.View(), "Watch stopped: file removed")
}
