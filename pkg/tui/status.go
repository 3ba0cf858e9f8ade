package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// StatusDuration is how long a notice stays on screen.
const StatusDuration = 3 * time.Second

// StatusType represents the type of status message
type StatusType int

const (
	StatusTypeSuccess StatusType = iota
	StatusTypeWarning
	StatusTypeError
	StatusTypeInfo
)

// StatusMsg asks the app to show a transient notice.
type StatusMsg struct {
	Text string
	Type StatusType
}

// ClearStatusMsg clears the notice it was scheduled for. A newer notice is
// left alone.
type ClearStatusMsg struct {
	seq int
}

// StatusManager holds the current notice.
type StatusManager struct {
	Duration time.Duration

	current *StatusMsg
	seq     int
}

func NewStatusManager() *StatusManager {
	return &StatusManager{Duration: StatusDuration}
}

// Show replaces the current notice and schedules its removal.
func (sm *StatusManager) Show(msg StatusMsg) tea.Cmd {
	sm.seq++
	sm.current = &msg
	seq := sm.seq
	return tea.Tick(sm.Duration, func(time.Time) tea.Msg {
		return ClearStatusMsg{seq: seq}
	})
}

// Clear removes the notice if msg was scheduled for it.
func (sm *StatusManager) Clear(msg ClearStatusMsg) {
	if msg.seq == sm.seq {
		sm.current = nil
	}
}

// Current returns the notice on screen, if any.
func (sm *StatusManager) Current() (StatusMsg, bool) {
	if sm.current == nil {
		return StatusMsg{}, false
	}
	return *sm.current, true
}

func (sm *StatusManager) View() string {
	msg, ok := sm.Current()
	if !ok {
		return ""
	}
	icon := "ℹ"
	switch msg.Type {
	case StatusTypeSuccess:
		icon = "✓"
	case StatusTypeWarning:
		icon = "⚠"
	case StatusTypeError:
		icon = "×"
	}
	return statusStyle(msg.Type).Render(fmt.Sprintf("%s %s", icon, msg.Text))
}

func notify(kind StatusType, format string, args ...interface{}) tea.Cmd {
	msg := StatusMsg{Text: fmt.Sprintf(format, args...), Type: kind}
	return func() tea.Msg { return msg }
}

func showSuccess(format string, args ...interface{}) tea.Cmd {
	return notify(StatusTypeSuccess, format, args...)
}

func showInfo(format string, args ...interface{}) tea.Cmd {
	return notify(StatusTypeInfo, format, args...)
}

// showError reports a failed operation. The model state is unchanged.
func showError(err error) tea.Cmd {
	return notify(StatusTypeError, "%v", err)
}
