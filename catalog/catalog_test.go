package catalog

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

const sample = `[
  {
    "id": 1, "title": "Frieren", "description": "Une elfe mage voyage", "type": "serie",
    "genre": ["Aventure", "Fantastique"], "year": 2023, "rating": 9.1, "status": "En cours",
    "seasons": [
      {"id": 10, "number": 1, "title": "Saison 1", "category": "nouveaute", "episodes": [
        {"id": 100, "title": "Episode 1", "videoUrl": "https://cdn.example/e1.mp4"},
        {"id": 101, "title": "Episode 2", "videoUrl": "https://youtu.be/abc"}
      ]},
      {"id": 11, "number": 2, "title": "Saison 2", "episodes": []}
    ]
  },
  {
    "id": 2, "title": "Akira", "description": "Neo-Tokyo", "type": "film", "category": "classique",
    "genre": ["Science-fiction"], "year": 1988, "rating": 8.5, "status": "Terminé",
    "seasons": [{"id": 20, "number": 1, "title": "Film", "episodes": [{"id": 200, "title": "Akira"}]}]
  }
]`

func TestParse(t *testing.T) {
	Convey("Given a catalog document", t, func() {
		Convey("A bare array decodes", func() {
			c, err := Parse([]byte(sample))
			So(err, ShouldBeNil)
			So(c.Titles, ShouldHaveLength, 2)
			So(c.Titles[0].Kind, ShouldEqual, KindSerie)
			So(c.Titles[1].Category, ShouldEqual, CategoryClassique)
			So(c.Titles[0].EpisodeCount(), ShouldEqual, 2)
		})

		Convey("A wrapped document decodes", func() {
			c, err := Parse([]byte(`{"titles": ` + sample + `}`))
			So(err, ShouldBeNil)
			So(c.Titles, ShouldHaveLength, 2)
		})

		Convey("Garbage is rejected", func() {
			_, err := Parse([]byte(`{not json`))
			So(err, ShouldNotBeNil)
		})

		Convey("Duplicate title ids are rejected", func() {
			_, err := Parse([]byte(`[{"id": 1}, {"id": 1}]`))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given a catalog file on disk", t, func() {
		fs := afero.NewMemMapFs()
		So(afero.WriteFile(fs, "/cfg/catalog.json", []byte(sample), 0o644), ShouldBeNil)

		Convey("Load reads it", func() {
			c, err := Load(fs, "/cfg/catalog.json")
			So(err, ShouldBeNil)
			So(c.Titles, ShouldHaveLength, 2)
		})

		Convey("A missing file is an error", func() {
			_, err := Load(fs, "/cfg/missing.json")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestLookup(t *testing.T) {
	Convey("Given a parsed catalog", t, func() {
		c, err := Parse([]byte(sample))
		So(err, ShouldBeNil)

		Convey("A full id triple resolves", func() {
			title, season, episode, err := c.Lookup(1, 10, 101)
			So(err, ShouldBeNil)
			So(title.Title, ShouldEqual, "Frieren")
			So(season.Number, ShouldEqual, 1)
			So(episode.Title, ShouldEqual, "Episode 2")
			So(season.Index(episode), ShouldEqual, 1)
		})

		Convey("Any missing link is ErrNotFound", func() {
			_, _, _, err := c.Lookup(9, 10, 100)
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			_, _, _, err = c.Lookup(1, 99, 100)
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			_, _, _, err = c.Lookup(1, 10, 999)
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})

		Convey("Membership checks follow the catalog tree", func() {
			frieren := c.Title(1).MustGet()
			akira := c.Title(2).MustGet()
			So(frieren.Contains(frieren.Seasons[1]), ShouldBeTrue)
			So(frieren.Contains(akira.Seasons[0]), ShouldBeFalse)
			So(frieren.Seasons[0].Contains(akira.Seasons[0].Episodes[0]), ShouldBeFalse)
			So(frieren.Seasons[0].Index(nil), ShouldEqual, -1)
		})

		Convey("Membership is by identity when ids repeat across seasons", func() {
			s1 := &Season{ID: 10, Episodes: []*Episode{{ID: 1, Title: "S1E1"}}}
			s2 := &Season{ID: 11, Episodes: []*Episode{{ID: 1, Title: "S2E1"}}}
			title := &Title{ID: 7, Seasons: []*Season{s1, s2}}

			So(s2.Contains(s2.Episodes[0]), ShouldBeTrue)
			So(s2.Contains(s1.Episodes[0]), ShouldBeFalse)
			So(s2.Index(s1.Episodes[0]), ShouldEqual, 0)
			So(title.Contains(&Season{ID: 10}), ShouldBeFalse)
		})

		Convey("ByName ignores case", func() {
			So(c.ByName("  akira ").IsPresent(), ShouldBeTrue)
			So(c.ByName("naruto").IsPresent(), ShouldBeFalse)
		})
	})
}

func TestSearch(t *testing.T) {
	Convey("Given a parsed catalog", t, func() {
		c, _ := Parse([]byte(sample))

		Convey("An empty query keeps everything", func() {
			So(c.Search(""), ShouldHaveLength, 2)
		})

		Convey("Title, description and genre are searched", func() {
			So(c.Search("FRIEREN"), ShouldHaveLength, 1)
			So(c.Search("neo-tokyo"), ShouldHaveLength, 1)
			So(c.Search("science"), ShouldHaveLength, 1)
		})

		Convey("Kind filters combine with the query", func() {
			So(c.Series(), ShouldHaveLength, 1)
			So(c.Films(), ShouldHaveLength, 1)
			So(c.Filter(KindFilm, "frieren"), ShouldBeEmpty)
		})

		Convey("Home rails come from categories", func() {
			So(c.Classiques(), ShouldHaveLength, 1)
			novelties := c.Nouveautes()
			So(novelties, ShouldHaveLength, 1)
			So(novelties[0].Seasons, ShouldHaveLength, 1)
			So(novelties[0].Seasons[0].ID, ShouldEqual, 10)
		})

		Convey("Genres are distinct", func() {
			So(c.Genres(), ShouldResemble, []string{"Aventure", "Fantastique", "Science-fiction"})
		})
	})
}
