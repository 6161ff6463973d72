package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/wemanga/wemanga/color"
	"github.com/wemanga/wemanga/icon"
	"github.com/wemanga/wemanga/style"
	"github.com/wemanga/wemanga/util"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case homeState:
		output = b.viewHome()
	case listingState:
		output = b.viewListing()
	case detailState:
		output = b.viewDetail()
	case playerState:
		output = b.viewPlayer()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewHome() string {
	if b.fetching {
		b.homeC.Title = "WeManga " + b.spinnerC.View()
	} else {
		b.homeC.Title = "WeManga"
	}
	return listExtraPaddingStyle.Render(b.homeC.View())
}

func (b *statefulBubble) viewListing() string {
	if !b.searching && b.query == "" {
		return listExtraPaddingStyle.Render(b.titlesC.View())
	}

	search := b.inputC.View()
	if !b.searching {
		search = style.Faint("Search: " + b.query)
	}
	return listExtraPaddingStyle.Render(search + "\n\n" + b.titlesC.View())
}

func (b *statefulBubble) viewDetail() string {
	current := b.controller.State()
	if current.Title == nil || current.Title.Description == "" {
		return listExtraPaddingStyle.Render(b.episodesC.View())
	}

	description := style.Faint(wrap.String(current.Title.Description, b.width))
	return listExtraPaddingStyle.Render(description + "\n\n" + b.episodesC.View())
}

func (b *statefulBubble) viewPlayer() string {
	current := b.controller.State()
	if current.Title == nil || current.Episode == nil {
		return b.renderLines(true, []string{style.Title("Player")})
	}

	lines := []string{
		style.Title(current.Title.Title),
		"",
		style.Truncate(b.width)(fmt.Sprintf("%s %s", icon.Get(icon.Play), style.Fg(color.Purple)(current.Episode.Title))),
		style.Faint(fmt.Sprintf("%s • %s", current.Season, current.Source.Kind)),
		"",
	}

	switch {
	case current.Failure != "":
		failure := lipgloss.NewStyle().Foreground(style.ErrorColor).Bold(true).Render(current.Failure)
		lines = append(lines, icon.Get(icon.Fail)+" "+wrap.String(failure, b.width))
	case !current.Source.Native():
		lines = append(lines, style.Faint("Playing in the browser, progress is recorded when you leave."))
	default:
		fraction := util.Clamp(b.progress, 0, 1)
		lines = append(lines,
			b.progressC.ViewAs(fraction),
			style.Faint(fmt.Sprintf("%.0f%%", fraction*100)),
		)
	}

	var position []string
	if current.HasPrevious {
		position = append(position, style.Faint("← previous"))
	}
	if current.HasNext {
		position = append(position, style.Faint("next →"))
	}
	if len(position) > 0 {
		lines = append(lines, "", strings.Join(position, "   "))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	var body string
	if b.lastError != nil {
		body = b.lastError.Error()
	}
	errorMsg := wrap.String(errorStyle.Render(body), b.width)
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
