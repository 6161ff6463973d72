package catalog

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Matches reports whether the title matches a free-text query.
// An empty query matches everything. Title, description and genres are checked for a
// case-insensitive substring; the title is also fuzzy matched so that "frieren" finds "Frieren".
func (t *Title) Matches(query string) bool {
	query = normalize(query)
	if query == "" {
		return true
	}

	if strings.Contains(strings.ToLower(t.Title), query) ||
		strings.Contains(strings.ToLower(t.Description), query) {
		return true
	}

	if lo.ContainsBy(t.Genres, func(g string) bool {
		return strings.Contains(strings.ToLower(g), query)
	}) {
		return true
	}

	return fuzzy.MatchNormalizedFold(query, t.Title)
}

// Search returns the titles matching query, in catalog order.
func (c *Catalog) Search(query string) []*Title {
	return lo.Filter(c.Titles, func(t *Title, _ int) bool {
		return t.Matches(query)
	})
}

// Filter returns the titles of the given kind matching query. An empty kind keeps every kind.
func (c *Catalog) Filter(kind Kind, query string) []*Title {
	return lo.Filter(c.Titles, func(t *Title, _ int) bool {
		return (kind == "" || t.Kind == kind) && t.Matches(query)
	})
}

// Series returns every series.
func (c *Catalog) Series() []*Title {
	return c.Filter(KindSerie, "")
}

// Films returns every film.
func (c *Catalog) Films() []*Title {
	return c.Filter(KindFilm, "")
}

// Classiques returns the titles tagged as classics.
func (c *Catalog) Classiques() []*Title {
	return lo.Filter(c.Titles, func(t *Title, _ int) bool {
		return t.Category == CategoryClassique
	})
}

// Novelty is a title paired with its seasons tagged as new.
type Novelty struct {
	Title   *Title
	Seasons []*Season
}

// Nouveautes returns, per title, the seasons tagged as new. Titles without such a season are skipped.
func (c *Catalog) Nouveautes() []Novelty {
	var novelties []Novelty
	for _, t := range c.Titles {
		seasons := lo.Filter(t.Seasons, func(s *Season, _ int) bool {
			return s.Category == CategoryNouveaute
		})
		if len(seasons) > 0 {
			novelties = append(novelties, Novelty{Title: t, Seasons: seasons})
		}
	}
	return novelties
}

// Genres lists every distinct genre in catalog order.
func (c *Catalog) Genres() []string {
	return lo.Uniq(lo.FlatMap(c.Titles, func(t *Title, _ int) []string {
		return t.Genres
	}))
}
