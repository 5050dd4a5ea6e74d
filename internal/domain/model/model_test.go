package model_test

import (
	"testing"

	model "github.com/okian/molkky/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestValidScore(t *testing.T) {
	convey.Convey("Given throw scores", t, func() {
		convey.Convey("When the score is within 0..12", func() {
			convey.Convey("Then it should be valid", func() {
				for s := 0; s <= 12; s++ {
					convey.So(model.ValidScore(s), convey.ShouldBeTrue)
				}
			})
		})

		convey.Convey("When the score is outside 0..12", func() {
			convey.Convey("Then it should be rejected", func() {
				convey.So(model.ValidScore(-1), convey.ShouldBeFalse)
				convey.So(model.ValidScore(13), convey.ShouldBeFalse)
			})
		})
	})
}

func TestAttempt_IsMiss(t *testing.T) {
	convey.Convey("Given attempts", t, func() {
		convey.Convey("Then only a zero score is a miss", func() {
			convey.So(model.Attempt{Score: 0}.IsMiss(), convey.ShouldBeTrue)
			convey.So(model.Attempt{Score: 1}.IsMiss(), convey.ShouldBeFalse)
			convey.So(model.Attempt{Score: 12}.IsMiss(), convey.ShouldBeFalse)
		})
	})
}
