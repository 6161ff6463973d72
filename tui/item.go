package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/wemanga/wemanga/anilist"
	"github.com/wemanga/wemanga/catalog"
	"github.com/wemanga/wemanga/icon"
	"github.com/wemanga/wemanga/key"
	"github.com/wemanga/wemanga/resume"
	"github.com/wemanga/wemanga/session"
	"github.com/wemanga/wemanga/style"
	"github.com/wemanga/wemanga/util"
)

// episodeItem is an episode row of the detail page.
type episodeItem struct {
	title   *catalog.Title
	season  *catalog.Season
	episode *catalog.Episode
	record  mo.Option[*resume.Record]
}

// listItem implements the list.Item interface, wrapping various domain models for terminal display.
type listItem struct {
	internal any
}

var now = time.Now

// Title retrieves the primary display text for the list item.
func (t *listItem) Title() string {
	switch e := t.internal.(type) {
	case resume.Entry:
		return fmt.Sprintf("%s %s", icon.Get(icon.Resume), e.Title.Title)
	case session.View:
		return util.Capitalize(e.String())
	case catalog.Novelty:
		return fmt.Sprintf("%s %s", e.Title.Title, style.Tag(style.Base, style.Green)("new"))
	case *catalog.Title:
		var kind string
		if e.Kind == catalog.KindFilm {
			kind = icon.Get(icon.Film)
		} else {
			kind = icon.Get(icon.Serie)
		}
		return fmt.Sprintf("%s %s", kind, e.Title)
	case *anilist.Upcoming:
		return fmt.Sprintf("%s %s", icon.Get(icon.Calendar), e.Title)
	case *episodeItem:
		return e.episode.Title
	default:
		return t.FilterValue()
	}
}

// Description retrieves the secondary line for the list item.
func (t *listItem) Description() string {
	switch e := t.internal.(type) {
	case resume.Entry:
		return fmt.Sprintf("%s • %s • %s",
			e.Season,
			e.Episode.Title,
			lipgloss.NewStyle().Foreground(style.Yellow).Render(fmt.Sprintf("%d%%", e.Record.Percent())),
		)
	case session.View:
		return style.Faint("Browse")
	case catalog.Novelty:
		seasons := make([]string, len(e.Seasons))
		for i, s := range e.Seasons {
			seasons[i] = s.String()
		}
		return strings.Join(seasons, ", ")
	case *catalog.Title:
		parts := []string{util.Quantify(e.EpisodeCount(), "episode", "episodes")}
		if e.Year > 0 {
			parts = append(parts, fmt.Sprint(e.Year))
		}
		if len(e.Genres) > 0 {
			parts = append(parts, strings.Join(e.Genres, ", "))
		}
		return lipgloss.NewStyle().Foreground(style.FaintColor).Render(strings.Join(parts, " • "))
	case *anilist.Upcoming:
		parts := []string{
			fmt.Sprintf("Episode %d in %s", e.NextEpisode, until(e.Until(now()))),
		}
		if score, ok := e.Score().Get(); ok {
			parts = append(parts, lipgloss.NewStyle().Foreground(style.AccentColor).Render(fmt.Sprintf("★ %.1f", score)))
		}
		return strings.Join(parts, " • ")
	case *episodeItem:
		parts := []string{e.season.String()}
		if e.episode.Duration != "" {
			parts = append(parts, e.episode.Duration)
		}
		if record, ok := e.record.Get(); ok {
			parts = append(parts, lipgloss.NewStyle().Foreground(style.Yellow).Render(fmt.Sprintf("%d%%", record.Percent())))
		}
		if viper.GetBool(key.TUIShowURLs) && e.episode.VideoURL != "" {
			parts = append(parts, style.Faint(e.episode.VideoURL))
		}
		return strings.Join(parts, " • ")
	default:
		return ""
	}
}

// FilterValue returns the string used for list filtering.
func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case resume.Entry:
		return e.Title.Title
	case session.View:
		return e.String()
	case catalog.Novelty:
		return e.Title.Title
	case *catalog.Title:
		return e.Title
	case *anilist.Upcoming:
		return e.Title
	case *episodeItem:
		return e.episode.Title
	default:
		return ""
	}
}

// until renders a countdown with a day, hour or minute precision.
func until(d time.Duration) string {
	switch {
	case d <= 0:
		return "now"
	case d >= 24*time.Hour:
		return fmt.Sprintf("%dd %dh", int(d.Hours())/24, int(d.Hours())%24)
	case d >= time.Hour:
		return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
	default:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
}
