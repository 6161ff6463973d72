// Package ui holds the transient notice shown at the bottom of the terminal interface.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wemanga/wemanga/style"
)

// NoticeLifetime is how long a notice stays on screen.
const NoticeLifetime = 3 * time.Second

// Model displays one non-blocking notice at a time.
type Model struct {
	notification string
	notifiedAt   time.Time
}

// ClearNotificationMsg resets the notice.
type ClearNotificationMsg struct{}

// Notify returns a tea.Cmd showing text as a notice.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return text
	}
}

// ClearNotification returns a delayed tea.Cmd that clears the current notice.
func ClearNotification() tea.Cmd {
	return tea.Tick(NoticeLifetime, func(time.Time) tea.Msg {
		return ClearNotificationMsg{}
	})
}

// Update handles notice messages. It returns nil for any other message.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case string:
		m.notification = msg
		m.notifiedAt = time.Now()
		return ClearNotification()
	case ClearNotificationMsg:
		// a newer notice keeps its own lifetime
		if time.Since(m.notifiedAt) < NoticeLifetime {
			return nil
		}
		m.notification = ""
		return nil
	}
	return nil
}

// Notice is the text on screen, empty when nothing is shown.
func (m *Model) Notice() string {
	return m.notification
}

// View appends the notice to the last line of mainContent.
func (m *Model) View(mainContent string) string {
	if m.notification == "" {
		return mainContent
	}

	lines := strings.Split(mainContent, "\n")
	lines[len(lines)-1] += "  " + style.Faint(m.notification)
	return strings.Join(lines, "\n")
}
