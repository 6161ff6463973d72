package resume

import (
	"github.com/wemanga/wemanga/catalog"
	"github.com/wemanga/wemanga/log"
)

// Entry is a record joined with the catalog entities it points to.
type Entry struct {
	Record  *Record
	Title   *catalog.Title
	Season  *catalog.Season
	Episode *catalog.Episode
}

// Resolve joins records with the catalog, keeping their order.
// Records pointing to entities no longer in the catalog are skipped.
// A positive limit caps the number of entries returned.
func Resolve(records []*Record, c *catalog.Catalog, limit int) []Entry {
	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		if limit > 0 && len(entries) == limit {
			break
		}

		title, season, episode, err := c.Lookup(r.TitleID, r.SeasonID, r.EpisodeID)
		if err != nil {
			log.Debugf("resume log: skipping %s: %v", r.Key(), err)
			continue
		}

		entries = append(entries, Entry{Record: r, Title: title, Season: season, Episode: episode})
	}
	return entries
}

// Rail lists the store and resolves it for the home view.
func Rail(store Store, c *catalog.Catalog, limit int) ([]Entry, error) {
	records, err := store.List()
	if err != nil {
		return nil, err
	}
	return Resolve(records, c, limit), nil
}
