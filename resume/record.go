// Package resume persists the bounded "continue watching" log.
package resume

import (
	"fmt"
	"math"
	"time"

	"github.com/wemanga/wemanga/catalog"
)

// Key identifies a record. At most one record per key lives in the log.
type Key struct {
	TitleID   int
	SeasonID  int
	EpisodeID int
}

func (k Key) String() string {
	return fmt.Sprintf("%d/%d/%d", k.TitleID, k.SeasonID, k.EpisodeID)
}

// KeyOf builds the key of a catalog episode.
func KeyOf(title *catalog.Title, season *catalog.Season, episode *catalog.Episode) Key {
	return Key{TitleID: title.ID, SeasonID: season.ID, EpisodeID: episode.ID}
}

// Record is the last known position in one episode.
type Record struct {
	TitleID     int     `json:"animeId"`
	SeasonID    int     `json:"seasonId"`
	EpisodeID   int     `json:"episodeId"`
	TitleText   string  `json:"animeTitle"`
	EpisodeText string  `json:"episodeTitle"`
	Progress    float64 `json:"progress"`
	// UpdatedAt is a unix timestamp in milliseconds.
	UpdatedAt int64 `json:"timestamp"`
}

// NewRecord builds a record for a catalog episode.
func NewRecord(title *catalog.Title, season *catalog.Season, episode *catalog.Episode, progress float64, at time.Time) *Record {
	return &Record{
		TitleID:     title.ID,
		SeasonID:    season.ID,
		EpisodeID:   episode.ID,
		TitleText:   title.Title,
		EpisodeText: episode.Title,
		Progress:    progress,
		UpdatedAt:   at.UnixMilli(),
	}
}

// Key returns the identity of the record.
func (r *Record) Key() Key {
	return Key{TitleID: r.TitleID, SeasonID: r.SeasonID, EpisodeID: r.EpisodeID}
}

// Time converts UpdatedAt back to a time.
func (r *Record) Time() time.Time {
	return time.UnixMilli(r.UpdatedAt)
}

// Percent is the progress rounded to a whole percentage.
func (r *Record) Percent() int {
	return int(math.Round(r.Progress * 100))
}

func (r *Record) String() string {
	return fmt.Sprintf("%s - %s (%d%%)", r.TitleText, r.EpisodeText, r.Percent())
}

func (r *Record) valid() error {
	if math.IsNaN(r.Progress) || r.Progress < 0 || r.Progress > 1 {
		return fmt.Errorf("%w: progress %v out of [0, 1]", ErrInvalidRecord, r.Progress)
	}
	return nil
}
