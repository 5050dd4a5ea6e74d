package scoring_test

import (
	"fmt"
	"testing"

	scoring "github.com/okian/molkky/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestApply(t *testing.T) {
	Convey("Given a target of 50 with reset to 25", t, func() {
		rules := scoring.NewRules()

		Convey("When a throw stays below target", func() {
			Convey("Then it should add up", func() {
				So(rules.Apply(10, 7), ShouldEqual, 17)
				So(rules.Apply(0, 0), ShouldEqual, 0)
			})
		})

		Convey("When a throw lands exactly on target", func() {
			Convey("Then the total should equal the target", func() {
				So(rules.Apply(48, 2), ShouldEqual, 50)
				So(rules.Apply(38, 12), ShouldEqual, 50)
			})
		})

		Convey("When a throw overshoots the target", func() {
			Convey("Then the total should reset to 25", func() {
				So(rules.Apply(40, 12), ShouldEqual, 25)
				So(rules.Apply(49, 2), ShouldEqual, 25)
			})
		})

		Convey("When the contender already sits on the target", func() {
			Convey("Then further throws should not change the total", func() {
				for throw := 0; throw <= 12; throw++ {
					So(rules.Apply(50, throw), ShouldEqual, 50)
				}
			})
		})
	})

	Convey("Given a target of 50 without reset", t, func() {
		rules := scoring.NewRules(scoring.WithoutReset())

		Convey("When a throw overshoots the target", func() {
			Convey("Then the total should freeze at the pre-throw value", func() {
				So(rules.Apply(40, 12), ShouldEqual, 40)
				So(rules.Apply(49, 5), ShouldEqual, 49)
			})
		})
	})

	Convey("Given custom rules", t, func() {
		rules := scoring.NewRules(scoring.WithTarget(30), scoring.WithReset(15))

		Convey("Then they should carry the configured values", func() {
			So(rules.Target, ShouldEqual, 30)
			So(rules.CanBeReset, ShouldBeTrue)
			So(rules.ResetScore, ShouldEqual, 15)
			So(rules.Apply(25, 6), ShouldEqual, 15)
		})
	})

	Convey("Given the free function form", t, func() {
		Convey("Then it should match the method form", func() {
			So(scoring.Apply(40, 12, 50, true, 25), ShouldEqual, 25)
			So(scoring.Apply(40, 12, 50, false, 25), ShouldEqual, 40)
			So(scoring.Apply(50, 3, 50, true, 25), ShouldEqual, 50)
		})
	})
}

func TestApply_NeverExceedsTarget(t *testing.T) {
	Convey("Given every reachable total and every throw", t, func() {
		for _, reset := range []bool{true, false} {
			rules := scoring.Rules{Target: 50, CanBeReset: reset, ResetScore: 25}

			Convey(fmt.Sprintf("Then the new total should never exceed the target (reset=%v)", reset), func() {
				for total := 0; total <= 50; total++ {
					for throw := 0; throw <= 12; throw++ {
						So(rules.Apply(total, throw), ShouldBeLessThanOrEqualTo, 50)
					}
				}
			})
		}
	})
}

func TestRules_Fold(t *testing.T) {
	Convey("Given a sequence of throws", t, func() {
		rules := scoring.NewRules()

		Convey("When folding a game that busts once and then finishes", func() {
			total := rules.Fold([]int{12, 12, 12, 4, 12, 12, 1})

			Convey("Then the reset should be applied mid-game", func() {
				// 12, 24, 36, 40, bust to 25, 37, 38
				So(total, ShouldEqual, 38)
			})
		})

		Convey("When folding no throws", func() {
			Convey("Then the total should be zero", func() {
				So(rules.Fold(nil), ShouldEqual, 0)
			})
		})
	})
}
