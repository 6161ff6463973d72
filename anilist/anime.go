// Package anilist reads the upcoming episodes feed from the Anilist GraphQL API.
package anilist

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/wemanga/wemanga/util"
	"golang.org/x/net/html"
)

// media is the subset of an Anilist media object the feed asks for.
type media struct {
	ID    int `json:"id"`
	Title struct {
		Romaji  string `json:"romaji"`
		English string `json:"english"`
		Native  string `json:"native"`
	} `json:"title"`
	CoverImage struct {
		Large  string `json:"large"`
		Medium string `json:"medium"`
	} `json:"coverImage"`
	BannerImage  string   `json:"bannerImage"`
	Description  string   `json:"description"`
	Genres       []string `json:"genres"`
	AverageScore int      `json:"averageScore"`
	Status       string   `json:"status"`
	Episodes     int      `json:"episodes"`

	NextAiringEpisode *struct {
		AiringAt        int64 `json:"airingAt"`
		TimeUntilAiring int64 `json:"timeUntilAiring"`
		Episode         int   `json:"episode"`
	} `json:"nextAiringEpisode"`
}

// name prefers the english title.
func (m *media) name() string {
	if m.Title.English == "" {
		return m.Title.Romaji
	}
	return m.Title.English
}

// Upcoming is the next episode of a title currently airing.
type Upcoming struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Poster      string `json:"poster"`
	Banner      string `json:"banner,omitempty"`
	NextEpisode int    `json:"nextEpisode"`
	// AiringAt is when the episode airs.
	AiringAt time.Time `json:"airingAt"`
	// TimeUntilAiring is relative to the moment the feed was fetched.
	TimeUntilAiring time.Duration `json:"timeUntilAiring"`
	Description     string        `json:"description,omitempty"`
	Genres          []string      `json:"genres"`
	// Rating is out of 10, zero when unrated.
	Rating float64 `json:"rating,omitempty"`
}

// Score returns the rating when the title has one.
func (u *Upcoming) Score() mo.Option[float64] {
	return mo.TupleToOption(u.Rating, u.Rating > 0)
}

// Until is the time left before airing, relative to now.
func (u *Upcoming) Until(now time.Time) time.Duration {
	return u.AiringAt.Sub(now)
}

func (u *Upcoming) String() string {
	return fmt.Sprintf("%s - episode %d", u.Title, u.NextEpisode)
}

const (
	descriptionLength = 150
	genresShown       = 3
)

// toUpcoming maps a media to a feed entry. Media without a next airing episode are dropped.
func toUpcoming(m *media) (*Upcoming, bool) {
	next := m.NextAiringEpisode
	if next == nil {
		return nil, false
	}

	u := &Upcoming{
		ID:              m.ID,
		Title:           m.name(),
		Poster:          m.CoverImage.Large,
		Banner:          m.BannerImage,
		NextEpisode:     next.Episode,
		AiringAt:        time.Unix(next.AiringAt, 0),
		TimeUntilAiring: time.Duration(next.TimeUntilAiring) * time.Second,
		Description:     cleanDescription(m.Description),
		Genres:          lo.Subset(m.Genres, 0, genresShown),
		// averageScore is out of 100
		Rating: math.Round(float64(m.AverageScore)) / 10,
	}

	return u, true
}

// cleanDescription keeps the text of an HTML description, entities decoded, cut to descriptionLength.
func cleanDescription(description string) string {
	var b strings.Builder
	tokenizer := html.NewTokenizer(strings.NewReader(description))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return util.Ellipsize(strings.TrimSpace(b.String()), descriptionLength)
		case html.TextToken:
			b.Write(tokenizer.Text())
		}
	}
}
