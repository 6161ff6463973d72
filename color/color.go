// Package color holds the ANSI colors of plain command output. They follow the
// terminal's own theme, unlike the TUI palette in style.
package color

import "github.com/charmbracelet/lipgloss"

// New wraps an ANSI index or a hex code.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

var (
	Red    = New("1") // failures, "false" values
	Green  = New("2") // success marks
	Yellow = New("3") // values, percentages
	Blue   = New("4")
	Purple = New("5") // keys and titles
	Cyan   = New("6")

	HiRed    = New("9")
	HiPurple = New("13") // section headers of "where"
)
