package anilist

import (
	"context"
	"sync"
	"time"

	"github.com/metafates/gache"
	"github.com/wemanga/wemanga/filesystem"
	"github.com/wemanga/wemanga/log"
	"github.com/wemanga/wemanga/where"
)

// feedCache keeps the last successful feed for an hour. Fallback feeds are never cached.
var feedCache = sync.OnceValue(func() *gache.Cache[[]*Upcoming] {
	return filesystem.NewCache[[]*Upcoming](where.Upcoming(), time.Hour)
})

// Get returns the cached feed when fresh, fetching it otherwise.
func (c *Client) Get(ctx context.Context) Feed {
	cache := feedCache()

	cached, expired, err := cache.Get()
	if err == nil && !expired && len(cached) > 0 {
		now := c.Now()
		for _, u := range cached {
			u.TimeUntilAiring = u.Until(now)
		}
		return Feed{Episodes: cached}
	}

	feed := c.Fetch(ctx)
	if !feed.Fallback {
		if err := cache.Set(feed.Episodes); err != nil {
			log.Warnf("anilist: caching feed: %v", err)
		}
	}
	return feed
}
