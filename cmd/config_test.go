package cmd

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/wemanga/wemanga/config"
	"github.com/wemanga/wemanga/key"
)

func TestParseValue(t *testing.T) {
	Convey("Values are parsed with the type of their default", t, func() {
		v, err := parseValue(config.Default[key.ResumeCapacity], []string{"12"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, 12)

		v, err = parseValue(config.Default[key.PlayerResumeOnOpen], []string{"false"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, false)

		v, err = parseValue(config.Default[key.Player], []string{"iina"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, "iina")

		v, err = parseValue(config.Field{Key: "x", Value: 0.5}, []string{"0.25"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, 0.25)
	})

	Convey("Malformed values are rejected", t, func() {
		_, err := parseValue(config.Default[key.ResumeCapacity], []string{"ten"})
		So(err, ShouldNotBeNil)

		_, err = parseValue(config.Default[key.PlayerResumeOnOpen], []string{"maybe"})
		So(err, ShouldNotBeNil)
	})

	Convey("Unknown keys suggest the closest one", t, func() {
		err := errUnknownKey("resume.capacty")
		So(err.Error(), ShouldContainSubstring, key.ResumeCapacity)
	})
}
