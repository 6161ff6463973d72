package anilist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/wemanga/wemanga/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

const page = `{"data": {"Page": {"media": [
  {"id": 10, "title": {"romaji": "Sousou no Frieren", "english": "Frieren"},
   "coverImage": {"large": "https://img/frieren.png"}, "description": "An <i>elf</i> mage<br>",
   "genres": ["Adventure", "Drama", "Fantasy", "Slice of Life"], "averageScore": 91,
   "nextAiringEpisode": {"airingAt": 1700003600, "timeUntilAiring": 3600, "episode": 5}},
  {"id": 11, "title": {"romaji": "Kusuriya no Hitorigoto"},
   "coverImage": {"large": "https://img/kusuriya.png"}, "genres": [],
   "nextAiringEpisode": {"airingAt": 1700000600, "timeUntilAiring": 600, "episode": 2}},
  {"id": 12, "title": {"romaji": "Finished Show"}, "coverImage": {"large": "x"}, "genres": []}
]}}}`

var epoch = time.Unix(1700000000, 0)

func newTestClient(url string) *Client {
	return &Client{
		Endpoint: url,
		HTTP:     http.DefaultClient,
		Timeout:  2 * time.Second,
		PerPage:  12,
		Attempts: 3,
		Now:      func() time.Time { return epoch },
	}
}

func TestFetch(t *testing.T) {
	Convey("Given an Anilist server", t, func() {
		var hits atomic.Int32
		status := http.StatusOK
		body := page
		delay := time.Duration(0)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			if delay > 0 {
				time.Sleep(delay)
			}
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
		}))
		defer server.Close()

		client := newTestClient(server.URL)

		Convey("A good page is mapped, filtered and sorted by time until airing", func() {
			feed := client.Fetch(context.Background())
			So(feed.Fallback, ShouldBeFalse)
			So(feed.Notice, ShouldBeEmpty)
			So(feed.Episodes, ShouldHaveLength, 2)

			first, second := feed.Episodes[0], feed.Episodes[1]
			So(first.Title, ShouldEqual, "Kusuriya no Hitorigoto")
			So(first.Score().IsAbsent(), ShouldBeTrue)

			So(second.Title, ShouldEqual, "Frieren")
			So(second.NextEpisode, ShouldEqual, 5)
			So(second.TimeUntilAiring, ShouldEqual, time.Hour)
			So(second.AiringAt.Unix(), ShouldEqual, 1700003600)
			So(second.Description, ShouldEqual, "An elf mage")
			So(second.Genres, ShouldResemble, []string{"Adventure", "Drama", "Fantasy"})
			So(second.Score().MustGet(), ShouldEqual, 9.1)
			So(second.Until(epoch), ShouldEqual, time.Hour)
		})

		Convey("Server errors are retried", func() {
			status = http.StatusInternalServerError
			feed := client.Fetch(context.Background())
			So(feed.Fallback, ShouldBeTrue)
			So(hits.Load(), ShouldEqual, 3)
		})

		Convey("Client errors and malformed payloads are not retried", func() {
			status = http.StatusBadRequest
			So(client.Fetch(context.Background()).Fallback, ShouldBeTrue)
			So(hits.Load(), ShouldEqual, 1)

			status = http.StatusOK
			body = `{"data": {}}`
			So(client.Fetch(context.Background()).Fallback, ShouldBeTrue)
			So(hits.Load(), ShouldEqual, 2)
		})

		Convey("A slow server is cut off by the deadline", func() {
			delay = 500 * time.Millisecond
			client.Timeout = 100 * time.Millisecond

			started := time.Now()
			feed := client.Fetch(context.Background())
			So(time.Since(started), ShouldBeLessThan, 450*time.Millisecond)
			So(feed.Fallback, ShouldBeTrue)
			So(feed.Notice, ShouldEqual, Notice)
		})
	})
}

func TestFallback(t *testing.T) {
	Convey("The fallback feed is the fixed two-entry schedule", t, func() {
		feed := Fallback(epoch)
		So(feed, ShouldHaveLength, 2)
		So(feed[0].Title, ShouldEqual, "Attack on Titan: Final Season")
		So(feed[0].NextEpisode, ShouldEqual, 12)
		So(feed[0].AiringAt, ShouldEqual, epoch.Add(24*time.Hour))
		So(feed[1].Title, ShouldEqual, "Demon Slayer: Hashira Training Arc")
		So(feed[1].TimeUntilAiring, ShouldEqual, 48*time.Hour)
		So(feed[1].Score().MustGet(), ShouldEqual, 8.7)
	})
}

func TestDescription(t *testing.T) {
	Convey("Descriptions lose markup and are cut", t, func() {
		long := ""
		for i := 0; i < 40; i++ {
			long += "word "
		}
		cleaned := cleanDescription("<b>" + long + "</b>")
		So(cleaned, ShouldEndWith, "...")
		So(len([]rune(cleaned)), ShouldEqual, 153)
		So(cleanDescription(""), ShouldBeEmpty)
	})

	Convey("Entities are decoded", t, func() {
		So(cleanDescription("Tom &amp; Jerry<br><i>(Source: Anilist)</i>"), ShouldEqual, "Tom & Jerry(Source: Anilist)")
	})
}

func TestGet(t *testing.T) {
	Convey("Given a fresh cache", t, func() {
		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			_, _ = w.Write([]byte(page))
		}))
		defer server.Close()

		So(feedCache().Set(nil), ShouldBeNil)
		client := newTestClient(server.URL)

		Convey("The second read is served from the cache", func() {
			first := client.Get(context.Background())
			second := client.Get(context.Background())
			So(hits.Load(), ShouldEqual, 1)
			So(second.Episodes, ShouldHaveLength, len(first.Episodes))
			So(second.Episodes[1].TimeUntilAiring, ShouldEqual, time.Hour)
		})
	})
}
