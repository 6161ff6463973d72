package tui

import (
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
	"github.com/wemanga/wemanga/anilist"
	"github.com/wemanga/wemanga/catalog"
	"github.com/wemanga/wemanga/classify"
	"github.com/wemanga/wemanga/progress"
	"github.com/wemanga/wemanga/resume"
	"github.com/wemanga/wemanga/session"
	"github.com/wemanga/wemanga/storage"
)

type fakeSurface struct {
	presented []classify.Source
	dismissed int
	paused    bool
}

func (s *fakeSurface) Present(src classify.Source, _ string, _ progress.Sink) error {
	s.presented = append(s.presented, src)
	return nil
}

func (s *fakeSurface) Dismiss() {
	s.dismissed++
}

func (s *fakeSurface) Done() <-chan struct{} {
	return nil
}

func (s *fakeSurface) TogglePause() error {
	s.paused = !s.paused
	return nil
}

func fixture() *catalog.Catalog {
	return catalog.New([]*catalog.Title{
		{
			ID:       1,
			Title:    "Frieren",
			Kind:     catalog.KindSerie,
			Category: catalog.CategoryClassique,
			Genres:   []string{"Fantasy"},
			Seasons: []*catalog.Season{
				{ID: 10, Number: 1, Title: "Saison 1", Episodes: []*catalog.Episode{
					{ID: 100, Title: "E1", VideoURL: "https://cdn.example/e1.mp4"},
					{ID: 101, Title: "E2", VideoURL: "https://youtu.be/e2"},
				}},
				{ID: 11, Number: 2, Title: "Saison 2", Category: catalog.CategoryNouveaute, Episodes: []*catalog.Episode{
					{ID: 110, Title: "S2E1", VideoURL: ""},
				}},
			},
		},
		{ID: 2, Title: "Your Name", Kind: catalog.KindFilm},
	})
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

// selectWhere moves the cursor of l to the first item matching match.
func selectWhere(l *list.Model, match func(any) bool) bool {
	for i, item := range l.Items() {
		if match(item.(*listItem).internal) {
			l.Select(i)
			return true
		}
	}
	return false
}

func TestBubble(t *testing.T) {
	Convey("Given a bubble over a catalog", t, func() {
		store := resume.NewLog(storage.NewLocal(afero.NewMemMapFs(), "/storage"))
		surface := &fakeSurface{}
		b := newBubble(&Options{
			Catalog: fixture(),
			Store:   store,
			Surface: surface,
			Tracker: progress.NewTracker(store),
		})
		frieren := b.catalog.Title(1).MustGet()

		Convey("It starts at home with the browse entries, new seasons and classics", func() {
			So(b.state, ShouldEqual, homeState)
			So(selectWhere(&b.homeC, func(v any) bool { return v == session.Films }), ShouldBeTrue)
			So(selectWhere(&b.homeC, func(v any) bool {
				n, ok := v.(catalog.Novelty)
				return ok && n.Title == frieren
			}), ShouldBeTrue)
			So(selectWhere(&b.homeC, func(v any) bool { return v == frieren }), ShouldBeTrue)
		})

		Convey("Browsing films lists only films", func() {
			selectWhere(&b.homeC, func(v any) bool { return v == session.Films })
			b.Update(enter)

			So(b.state, ShouldEqual, listingState)
			So(b.controller.View(), ShouldEqual, session.Films)
			So(b.titlesC.Items(), ShouldHaveLength, 1)
			So(b.titlesC.Items()[0].(*listItem).internal, ShouldEqual, b.catalog.Title(2).MustGet())

			Convey("Back returns home", func() {
				b.Update(esc)
				So(b.state, ShouldEqual, homeState)
			})

			Convey("Playing a title without episodes shows the error", func() {
				b.Update(keyRunes("P"))
				So(b.state, ShouldEqual, errorState)
				So(errors.Is(b.lastError, session.ErrNoEpisodes), ShouldBeTrue)

				b.Update(esc)
				So(b.state, ShouldEqual, listingState)
			})
		})

		Convey("Searching the catalog narrows the listing", func() {
			selectWhere(&b.homeC, func(v any) bool { return v == session.Catalog })
			b.Update(enter)
			So(b.titlesC.Items(), ShouldHaveLength, 2)

			b.Update(keyRunes("/"))
			So(b.searching, ShouldBeTrue)

			b.Update(keyRunes("fantasy"))
			So(b.query, ShouldEqual, "fantasy")
			So(b.titlesC.Items(), ShouldHaveLength, 1)

			b.Update(enter)
			So(b.searching, ShouldBeFalse)
			So(b.titlesC.Items(), ShouldHaveLength, 1)

			Convey("Enter opens the detail of the match", func() {
				b.Update(enter)
				So(b.state, ShouldEqual, detailState)
				So(b.controller.State().Title, ShouldEqual, frieren)
				So(b.episodesC.Items(), ShouldHaveLength, 3)
			})
		})

		Convey("Given the detail page", func() {
			So(b.controller.OpenDetail(frieren), ShouldBeNil)
			b.sync()

			Convey("Enter plays the selected episode", func() {
				b.episodesC.Select(0)
				b.Update(enter)

				So(b.state, ShouldEqual, playerState)
				So(surface.presented, ShouldHaveLength, 1)
				So(surface.presented[0].Kind, ShouldEqual, classify.KindDirectFile)

				Convey("Space pauses and resumes the player", func() {
					b.Update(space)
					So(surface.paused, ShouldBeTrue)
					b.Update(space)
					So(surface.paused, ShouldBeFalse)
				})

				Convey("Progress reports move the bar", func() {
					b.Update(progressMsg(0.42))
					So(b.progress, ShouldEqual, 0.42)
					So(b.View(), ShouldContainSubstring, "42%")
				})

				Convey("Next plays the following episode", func() {
					b.Update(keyRunes("n"))
					So(b.controller.State().Episode.Title, ShouldEqual, "E2")
					So(surface.presented, ShouldHaveLength, 2)

					Convey("Leaving records both episodes and lands on the detail", func() {
						b.Update(esc)
						So(b.state, ShouldEqual, detailState)

						records, err := store.List()
						So(err, ShouldBeNil)
						So(records, ShouldHaveLength, 2)
						So(records[0].EpisodeID, ShouldEqual, 101)

						watched := b.episodesC.Items()[0].(*listItem).internal.(*episodeItem)
						So(watched.record.IsPresent(), ShouldBeTrue)

						Convey("Home shows the most recent episode first and can forget it", func() {
							b.Update(esc)
							So(b.state, ShouldEqual, homeState)

							first := b.homeC.Items()[0].(*listItem).internal.(resume.Entry)
							So(first.Episode.Title, ShouldEqual, "E2")

							b.homeC.Select(0)
							b.Update(keyRunes("d"))
							records, _ := store.List()
							So(records, ShouldHaveLength, 1)
							So(b.homeC.Items()[0].(*listItem).internal.(resume.Entry).Episode.Title, ShouldEqual, "E1")
						})
					})
				})

				Convey("An exited player returns to the detail", func() {
					b.Update(playerExitedMsg{episode: frieren.Seasons[0].Episodes[0]})
					So(b.state, ShouldEqual, detailState)
				})

				Convey("A stale exit is ignored", func() {
					b.Update(playerExitedMsg{episode: frieren.Seasons[0].Episodes[1]})
					So(b.state, ShouldEqual, playerState)
				})
			})

			Convey("An episode without video shows the failure in the player", func() {
				b.episodesC.Select(2)
				b.Update(enter)

				So(b.state, ShouldEqual, playerState)
				So(surface.presented, ShouldBeEmpty)
				So(b.View(), ShouldContainSubstring, "no video for this episode")
			})
		})

		Convey("The upcoming feed fills the home view and shows its notice", func() {
			feed := anilist.Feed{
				Episodes: anilist.Fallback(time.Now()),
				Fallback: true,
				Notice:   anilist.Notice,
			}

			_, cmd := b.Update(feedMsg(feed))
			So(cmd, ShouldNotBeNil)
			b.Update(cmd())
			So(b.notifier.Notice(), ShouldEqual, anilist.Notice)

			So(selectWhere(&b.homeC, func(v any) bool {
				_, ok := v.(*anilist.Upcoming)
				return ok
			}), ShouldBeTrue)
		})

		Convey("Continue plays the most recent record", func() {
			s1 := frieren.Seasons[0]
			So(store.Save(resume.NewRecord(frieren, s1, s1.Episodes[1], 0.5, time.Now())), ShouldBeNil)

			So(b.continueWatching(), ShouldBeNil)
			So(b.state, ShouldEqual, playerState)
			So(b.controller.State().Episode, ShouldEqual, s1.Episodes[1])
		})

		Convey("Continue without records fails", func() {
			So(errors.Is(b.continueWatching(), errNothingToContinue), ShouldBeTrue)
		})
	})
}

func TestUntil(t *testing.T) {
	Convey("Countdowns keep two units at most", t, func() {
		So(until(-time.Minute), ShouldEqual, "now")
		So(until(42*time.Minute), ShouldEqual, "42m")
		So(until(3*time.Hour+5*time.Minute), ShouldEqual, "3h 5m")
		So(until(50*time.Hour), ShouldEqual, "2d 2h")
	})
}
