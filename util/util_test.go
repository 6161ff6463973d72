package util

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/wemanga/wemanga/filesystem"
)

func TestSanitizeFilename(t *testing.T) {
	Convey("SanitizeFilename", t, func() {
		Convey("Should replace invalid chars", func() {
			So(SanitizeFilename("file:name?.txt"), ShouldEqual, "file_name_.txt")
		})
		Convey("Should collapse underscores", func() {
			So(SanitizeFilename("file__name.txt"), ShouldEqual, "file_name.txt")
		})
		Convey("Should trim separators", func() {
			So(SanitizeFilename("-file-name-"), ShouldEqual, "file-name")
		})
		Convey("Should leave storage keys untouched", func() {
			So(SanitizeFilename("continueWatching"), ShouldEqual, "continueWatching")
		})
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "record", "records"), ShouldEqual, "1 record")
		So(Quantify(2, "record", "records"), ShouldEqual, "2 records")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("hello"), ShouldEqual, "Hello")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestEllipsize(t *testing.T) {
	Convey("Ellipsize", t, func() {
		So(Ellipsize("short", 10), ShouldEqual, "short")
		So(Ellipsize("la bataille finale", 10), ShouldEqual, "la bataill...")
		So(Ellipsize("épisode", 3), ShouldEqual, "épi...")
	})
}

func TestMaxMinClamp(t *testing.T) {
	Convey("Max/Min/Clamp", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Min(1, 5, 2), ShouldEqual, 1)
		So(Clamp(1.4, 0, 1), ShouldEqual, 1.0)
		So(Clamp(-0.2, 0, 1), ShouldEqual, 0.0)
		So(Clamp(0.4, 0, 1), ShouldEqual, 0.4)
	})
}

func TestDelete(t *testing.T) {
	Convey("Delete", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()
		So(fs.MkdirAll("/data/storage", 0o755), ShouldBeNil)
		So(fs.WriteFile("/data/storage/continueWatching", []byte("[]"), 0o644), ShouldBeNil)

		So(Delete("/data/storage/continueWatching"), ShouldBeNil)
		exists, _ := fs.Exists("/data/storage/continueWatching")
		So(exists, ShouldBeFalse)

		So(Delete("/data"), ShouldBeNil)
		exists, _ = fs.Exists("/data")
		So(exists, ShouldBeFalse)

		So(Delete("/missing"), ShouldNotBeNil)
	})
}
