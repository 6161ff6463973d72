package classify

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestClassify(t *testing.T) {
	Convey("Given episode video URLs", t, func() {
		Convey("YouTube short links resolve from the path", func() {
			src := Classify("https://youtu.be/dQw4w9WgXcQ?t=42")
			So(src.Kind, ShouldEqual, KindYouTube)
			So(src.Ref, ShouldEqual, "https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1&controls=1&rel=0")
			So(src.Playable(), ShouldBeTrue)
			So(src.Native(), ShouldBeFalse)
		})

		Convey("YouTube canonical links resolve from the v parameter", func() {
			src := Classify("https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=x")
			So(src.Ref, ShouldEqual, "https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1&controls=1&rel=0")
		})

		Convey("YouTube links without an id fail distinctly from empty", func() {
			src := Classify("https://www.youtube.com/channel/foo")
			So(src.Kind, ShouldEqual, KindYouTube)
			So(errors.Is(src.Err, ErrUnresolvable), ShouldBeTrue)
			So(src.Playable(), ShouldBeFalse)

			So(errors.Is(Classify("https://youtu.be/").Err, ErrUnresolvable), ShouldBeTrue)
			So(errors.Is(Classify("https://www.youtube.com/watch?v=%zz").Err, ErrUnresolvable), ShouldBeTrue)
		})

		Convey("Vimeo needs a numeric id", func() {
			So(Classify("https://vimeo.com/76979871").Ref, ShouldEqual, "https://player.vimeo.com/video/76979871?autoplay=1")
			So(errors.Is(Classify("https://vimeo.com/channels/staff").Err, ErrUnresolvable), ShouldBeTrue)
		})

		Convey("Sendvid needs a slug", func() {
			So(Classify("https://sendvid.com/abc123").Ref, ShouldEqual, "https://sendvid.com/embed/abc123")
			So(errors.Is(Classify("https://sendvid.com/").Err, ErrUnresolvable), ShouldBeTrue)
		})

		Convey("Sibnet passes through", func() {
			src := Classify("https://video.sibnet.ru/shell.php?videoid=42")
			So(src.Kind, ShouldEqual, KindSibnet)
			So(src.Ref, ShouldEqual, "https://video.sibnet.ru/shell.php?videoid=42")
		})

		Convey("Direct files are native regardless of case or query", func() {
			src := Classify("https://cdn.example/ep1.MP4")
			So(src.Kind, ShouldEqual, KindDirectFile)
			So(src.Native(), ShouldBeTrue)
			So(Classify("https://cdn.example/ep1.webm?token=x").Kind, ShouldEqual, KindDirectFile)
			So(Classify("https://cdn.example/ep1.ogg").Kind, ShouldEqual, KindDirectFile)
		})

		Convey("Host rules win over the file extension", func() {
			So(Classify("https://vimeo.com/123/video.mp4").Kind, ShouldEqual, KindVimeo)
		})

		Convey("Anything else is an unknown embed", func() {
			src := Classify("https://player.example/embed/1")
			So(src.Kind, ShouldEqual, KindEmbedUnknown)
			So(src.Ref, ShouldEqual, "https://player.example/embed/1")
			So(src.Native(), ShouldBeFalse)
		})

		Convey("Empty input is its own kind", func() {
			src := Classify("   ")
			So(src.Kind, ShouldEqual, KindEmpty)
			So(errors.Is(src.Err, ErrEmpty), ShouldBeTrue)
			So(src.Playable(), ShouldBeFalse)
		})

		Convey("Classification is idempotent", func() {
			raw := "https://youtu.be/abc"
			So(Classify(raw), ShouldResemble, Classify(raw))
		})
	})
}

func TestRules(t *testing.T) {
	Convey("Given the rule table", t, func() {
		table := Rules()

		Convey("It is ordered by precedence and ends with a catch-all", func() {
			kinds := make([]Kind, len(table))
			for i, r := range table {
				kinds[i] = r.Kind
			}
			So(kinds, ShouldResemble, []Kind{
				KindYouTube, KindVimeo, KindSibnet, KindSendvid, KindDirectFile, KindEmbedUnknown,
			})
			So(table[len(table)-1].Match("anything"), ShouldBeTrue)
		})

		Convey("Each rule matches its own host only", func() {
			samples := map[Kind]string{
				KindYouTube: "https://youtube.com/watch?v=1",
				KindVimeo:   "https://vimeo.com/1",
				KindSibnet:  "https://video.sibnet.ru/1",
				KindSendvid: "https://sendvid.com/1",
			}
			for _, r := range table[:4] {
				for kind, raw := range samples {
					So(r.Match(raw), ShouldEqual, kind == r.Kind)
				}
			}
		})

		Convey("The returned table is a copy", func() {
			table[0].Kind = "tampered"
			So(Rules()[0].Kind, ShouldEqual, KindYouTube)
		})
	})
}
