package icon

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/wemanga/wemanga/key"
)

func TestGet(t *testing.T) {
	Convey("Every catalog icon has a glyph in every variant", t, func() {
		defer viper.Set(key.IconsVariant, plain)

		for _, variant := range AvailableVariants() {
			viper.Set(key.IconsVariant, variant)
			for _, i := range []Icon{Play, Resume, Calendar, Film, Serie} {
				So(Get(i), ShouldNotBeEmpty)
			}
		}
	})

	Convey("Plain icons tell films and series apart", t, func() {
		viper.Set(key.IconsVariant, plain)
		So(Get(Film), ShouldEqual, "F")
		So(Get(Serie), ShouldEqual, "S")
		So(Get(Film), ShouldNotEqual, Get(Serie))
	})

	Convey("An unknown variant renders nothing", t, func() {
		defer viper.Set(key.IconsVariant, plain)
		viper.Set(key.IconsVariant, "")
		So(Get(Play), ShouldBeEmpty)
	})
}
