// Package style renders strings with lipgloss.
//
// Most helpers return a func(string) string so they can be passed around
// and composed, e.g. style.Fg(color.Green)(icon.Get(icon.Success)).
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/wemanga/wemanga/color"
)

func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Colored is a style with both colors set. Empty colors are left unset.
func Colored(fg, bg lipgloss.Color) lipgloss.Style {
	return New().Foreground(fg).Background(bg)
}

func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return Colored(c, "").Render(s) }
}

// Truncate pads or wraps s to max columns.
func Truncate(max int) func(string) string {
	return func(s string) string { return New().Width(max).Render(s) }
}

var (
	Faint = func(s string) string { return New().Faint(true).Render(s) }
	Bold  = func(s string) string { return New().Bold(true).Render(s) }
)

// Title is the banner on top of the player and error pages.
var Title = func(s string) string {
	return Colored(color.New("230"), color.New("62")).Padding(0, 1).Render(s)
}

var ErrorTitle = func(s string) string {
	return Colored(color.New("230"), color.Red).Padding(0, 1).Render(s)
}

// Tag renders s as a padded badge, like the "new" marker on fresh seasons.
func Tag(fg, bg lipgloss.Color) func(string) string {
	return func(s string) string { return Colored(fg, bg).Padding(0, 1).Render(s) }
}
