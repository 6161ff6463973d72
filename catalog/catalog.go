// Package catalog holds the read-only title/season/episode data the player browses.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/wemanga/wemanga/log"
)

// ErrNotFound is returned when an id does not resolve to a catalog entity.
var ErrNotFound = errors.New("not found in catalog")

// Kind separates series from films.
type Kind string

const (
	KindSerie Kind = "serie"
	KindFilm  Kind = "film"
)

// Category tags titles and seasons for the home view rails.
type Category string

const (
	CategoryNone      Category = ""
	CategoryNouveaute Category = "nouveaute"
	CategoryClassique Category = "classique"
)

// Episode is a single playable unit. Its identity is the (title, season, episode) id triple.
type Episode struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Duration    string `json:"duration" jsonschema:"description=Display duration such as 24min."`
	Thumbnail   string `json:"thumbnail"`
	VideoURL    string `json:"videoUrl" jsonschema:"description=Direct file or embed URL. Empty when the episode has no video yet."`
	Description string `json:"description"`
}

func (e *Episode) String() string {
	return e.Title
}

// Season is an ordered list of episodes. Order determines next and previous.
type Season struct {
	ID       int        `json:"id"`
	Number   int        `json:"number" jsonschema:"description=Season number shown to the user."`
	Title    string     `json:"title"`
	Banner   string     `json:"banner,omitempty"`
	Category Category   `json:"category,omitempty" jsonschema:"enum=nouveaute,enum=classique"`
	Episodes []*Episode `json:"episodes" jsonschema:"description=Ordered episodes. Order drives next and previous."`
}

func (s *Season) String() string {
	return s.Title
}

// Index returns the position of the episode with the same id in the season, or -1.
func (s *Season) Index(episode *Episode) int {
	if episode == nil {
		return -1
	}
	_, i, ok := lo.FindIndexOf(s.Episodes, func(e *Episode) bool {
		return e == episode || e.ID == episode.ID
	})
	if !ok {
		return -1
	}
	return i
}

// Contains reports whether this exact episode is one of the season's.
// Episode ids are often numbered per season, so an id match is not enough.
func (s *Season) Contains(episode *Episode) bool {
	return episode != nil && lo.Contains(s.Episodes, episode)
}

// Title is a series or a film.
type Title struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Poster      string    `json:"poster"`
	Banner      string    `json:"banner"`
	Genres      []string  `json:"genre"`
	Year        int       `json:"year"`
	Rating      float64   `json:"rating"`
	Kind        Kind      `json:"type" jsonschema:"enum=serie,enum=film"`
	Category    Category  `json:"category,omitempty" jsonschema:"enum=nouveaute,enum=classique"`
	Status      string    `json:"status"`
	Seasons     []*Season `json:"seasons"`
}

func (t *Title) String() string {
	return t.Title
}

// Contains reports whether this exact season is one of the title's.
func (t *Title) Contains(season *Season) bool {
	return season != nil && lo.Contains(t.Seasons, season)
}

// EpisodeCount sums the episodes over all seasons.
func (t *Title) EpisodeCount() int {
	return lo.SumBy(t.Seasons, func(s *Season) int {
		return len(s.Episodes)
	})
}

// Catalog is the full set of titles, in display order.
type Catalog struct {
	Titles []*Title `json:"titles"`
}

// New wraps already decoded titles.
func New(titles []*Title) *Catalog {
	return &Catalog{Titles: titles}
}

// Parse decodes a catalog document. Both a bare array of titles and {"titles": [...]} are accepted.
func Parse(data []byte) (*Catalog, error) {
	var titles []*Title
	if err := json.Unmarshal(data, &titles); err == nil {
		return New(titles).validate()
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return c.validate()
}

// Load reads and parses the catalog file at path.
func Load(fs afero.Fs, path string) (*Catalog, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, err
	}

	log.Infof("loaded catalog %s: %d titles", path, len(c.Titles))
	return c, nil
}

// validate drops nil entries and rejects duplicated title ids, which would make resume records ambiguous.
func (c *Catalog) validate() (*Catalog, error) {
	c.Titles = lo.Compact(c.Titles)

	seen := make(map[int]bool, len(c.Titles))
	for _, t := range c.Titles {
		if seen[t.ID] {
			return nil, fmt.Errorf("decode catalog: duplicate title id %d", t.ID)
		}
		seen[t.ID] = true

		t.Seasons = lo.Compact(t.Seasons)
		for _, s := range t.Seasons {
			s.Episodes = lo.Compact(s.Episodes)
		}
	}

	return c, nil
}
