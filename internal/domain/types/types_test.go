package types_test

import (
	"encoding/json"
	"testing"

	types "github.com/okian/molkky/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestContenderStatusJSON(t *testing.T) {
	Convey("Given a contender still in play", t, func() {
		c := types.ContenderStatus{ID: "c1", Name: "ann", Throws: []int{5, 0}, TotalScore: 5}

		Convey("When encoding it", func() {
			b, err := json.Marshal(c)
			So(err, ShouldBeNil)

			Convey("Then it should omit the finish position", func() {
				So(string(b), ShouldNotContainSubstring, "finish_position")
				So(string(b), ShouldNotContainSubstring, "player_id")
				So(string(b), ShouldContainSubstring, `"throws":[5,0]`)
			})
		})

		Convey("When the contender finished first", func() {
			first := 0
			c.FinishPosition = &first
			b, err := json.Marshal(c)
			So(err, ShouldBeNil)

			Convey("Then a zero finish position should still be encoded", func() {
				So(string(b), ShouldContainSubstring, `"finish_position":0`)
			})
		})
	})
}

func TestAwardJSON(t *testing.T) {
	Convey("Given awards with and without a count", t, func() {
		two := 2
		counted := types.Award{Award: "maximalist", Count: &two}
		plain := types.Award{Award: "spotless"}

		Convey("Then only the counted award should carry a count", func() {
			b, _ := json.Marshal(counted)
			So(string(b), ShouldContainSubstring, `"count":2`)
			b, _ = json.Marshal(plain)
			So(string(b), ShouldNotContainSubstring, "count")
		})
	})
}

func TestPlayerAwardsTotal(t *testing.T) {
	Convey("Given a player award history", t, func() {
		p := types.PlayerAwards{Awards: []types.AwardCount{
			{Award: "maximalist", Count: 2},
			{Award: "oops", Count: 0},
			{Award: "spotless", Count: 3},
		}}

		Convey("Then the total should sum every award", func() {
			So(p.Total(), ShouldEqual, 5)
			So(types.PlayerAwards{}.Total(), ShouldEqual, 0)
		})
	})
}

func TestRuleOverridesJSON(t *testing.T) {
	Convey("Given a request body with only a target score", t, func() {
		var o types.RuleOverrides
		err := json.Unmarshal([]byte(`{"target_score": 40}`), &o)

		Convey("Then only the target override should be set", func() {
			So(err, ShouldBeNil)
			So(o.TargetScore, ShouldNotBeNil)
			So(*o.TargetScore, ShouldEqual, 40)
			So(o.ResetScore, ShouldBeNil)
			So(o.MissesForElimination, ShouldBeNil)
		})
	})
}
