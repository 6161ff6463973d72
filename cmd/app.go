package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/wemanga/wemanga/catalog"
	"github.com/wemanga/wemanga/filesystem"
	"github.com/wemanga/wemanga/key"
	"github.com/wemanga/wemanga/player"
	"github.com/wemanga/wemanga/progress"
	"github.com/wemanga/wemanga/resume"
	"github.com/wemanga/wemanga/where"
)

// app bundles the collaborators shared by the interactive and the playback commands.
type app struct {
	catalog *catalog.Catalog
	store   *resume.Log
	tracker *progress.Tracker
	surface *player.Surface
}

func loadCatalog() (*catalog.Catalog, error) {
	c, err := catalog.Load(filesystem.Fs(), where.Catalog())
	if err != nil {
		return nil, fmt.Errorf("%w (set catalog.path or pass --catalog)", err)
	}
	return c, nil
}

func newApp() (*app, error) {
	c, err := loadCatalog()
	if err != nil {
		return nil, err
	}

	store := resume.Open()
	return &app{
		catalog: c,
		store:   store,
		tracker: progress.NewTracker(store, progress.ConfigOptions()...),
		surface: player.NewSurface(viper.GetString(key.Player)),
	}, nil
}

// findTitle resolves a title by id, exact name, or a single search hit.
func findTitle(c *catalog.Catalog, query string) (*catalog.Title, error) {
	if id, err := strconv.Atoi(query); err == nil {
		if t, ok := c.Title(id).Get(); ok {
			return t, nil
		}
	}

	if t, ok := c.ByName(query).Get(); ok {
		return t, nil
	}

	found := c.Search(query)
	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%q: %w", query, catalog.ErrNotFound)
	case 1:
		return found[0], nil
	default:
		return nil, &ambiguousError{query: query, titles: found}
	}
}

// ambiguousError is returned when a query matches several titles.
type ambiguousError struct {
	query  string
	titles []*catalog.Title
}

func (e *ambiguousError) names() []string {
	return lo.Map(e.titles, func(t *catalog.Title, _ int) string {
		return t.Title
	})
}

func (e *ambiguousError) Error() string {
	return fmt.Sprintf("%q is ambiguous, did you mean one of: %s", e.query, strings.Join(e.names(), ", "))
}

// pickEpisode selects a season by its number and an episode by its 1-based position.
// Zero values pick the first ones.
func pickEpisode(title *catalog.Title, seasonNumber, position int) (*catalog.Season, *catalog.Episode, error) {
	if len(title.Seasons) == 0 {
		return nil, nil, fmt.Errorf("%s has no seasons", title)
	}

	season := title.Seasons[0]
	if seasonNumber > 0 {
		s, ok := lo.Find(title.Seasons, func(s *catalog.Season) bool {
			return s.Number == seasonNumber
		})
		if !ok {
			return nil, nil, fmt.Errorf("%s has no season %d", title, seasonNumber)
		}
		season = s
	}

	if position <= 0 {
		position = 1
	}
	if position > len(season.Episodes) {
		return nil, nil, fmt.Errorf("%s season %d has %d episodes", title, season.Number, len(season.Episodes))
	}

	return season, season.Episodes[position-1], nil
}
