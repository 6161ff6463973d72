package style

import "github.com/charmbracelet/lipgloss"

// WeManga's dark palette. The TUI uses it, plain command output sticks to ANSI colors.
var (
	Base    = lipgloss.Color("#1e1e2e")
	Text    = lipgloss.Color("#cdd6f4")
	Overlay = lipgloss.Color("#6c7086")

	Mauve    = lipgloss.Color("#cba6f7")
	Red      = lipgloss.Color("#f38ba8")
	Peach    = lipgloss.Color("#fab387")
	Yellow   = lipgloss.Color("#f9e2af")
	Green    = lipgloss.Color("#a6e3a1")
	Lavender = lipgloss.Color("#b4befe")

	AccentColor = Mauve
	ErrorColor  = Red
	HiRed       = Red
	FaintColor  = Overlay
)
