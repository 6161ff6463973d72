package catalog

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Title looks a title up by id.
func (c *Catalog) Title(id int) mo.Option[*Title] {
	t, ok := lo.Find(c.Titles, func(t *Title) bool {
		return t.ID == id
	})
	return mo.TupleToOption(t, ok)
}

// Season looks a season of the title up by id.
func (t *Title) Season(id int) mo.Option[*Season] {
	s, ok := lo.Find(t.Seasons, func(s *Season) bool {
		return s.ID == id
	})
	return mo.TupleToOption(s, ok)
}

// Episode looks an episode of the season up by id.
func (s *Season) Episode(id int) mo.Option[*Episode] {
	e, ok := lo.Find(s.Episodes, func(e *Episode) bool {
		return e.ID == id
	})
	return mo.TupleToOption(e, ok)
}

// Lookup resolves an id triple to its entities. Any missing link yields ErrNotFound.
func (c *Catalog) Lookup(titleID, seasonID, episodeID int) (*Title, *Season, *Episode, error) {
	title, ok := c.Title(titleID).Get()
	if !ok {
		return nil, nil, nil, fmt.Errorf("title %d: %w", titleID, ErrNotFound)
	}

	season, ok := title.Season(seasonID).Get()
	if !ok {
		return nil, nil, nil, fmt.Errorf("season %d of title %d: %w", seasonID, titleID, ErrNotFound)
	}

	episode, ok := season.Episode(episodeID).Get()
	if !ok {
		return nil, nil, nil, fmt.Errorf("episode %d of season %d: %w", episodeID, seasonID, ErrNotFound)
	}

	return title, season, episode, nil
}

// ByName finds a title by its exact name, ignoring case.
func (c *Catalog) ByName(name string) mo.Option[*Title] {
	name = normalize(name)
	t, ok := lo.Find(c.Titles, func(t *Title) bool {
		return normalize(t.Title) == name
	})
	return mo.TupleToOption(t, ok)
}
