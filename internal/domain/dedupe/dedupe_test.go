package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	dedupe "github.com/okian/molkky/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new InMemoryDeduper", t, func() {
		d := dedupe.NewInMemoryDeduper()

		Convey("Then it should start empty", func() {
			So(d, ShouldNotBeNil)
			So(d.Size(), ShouldEqual, 0)
		})

		Convey("When a request id is new", func() {
			seen := d.SeenAndRecord(ctx, "req-1")

			Convey("Then it should be recorded", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("And a retry should be reported as seen", func() {
				So(d.SeenAndRecord(ctx, "req-1"), ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When unrecording an id", func() {
			d.SeenAndRecord(ctx, "req-1")
			d.Unrecord(ctx, "req-1")
			d.Unrecord(ctx, "missing")

			Convey("Then it should be accepted again", func() {
				So(d.Size(), ShouldEqual, 0)
				So(d.SeenAndRecord(ctx, "req-1"), ShouldBeFalse)
			})
		})
	})

	Convey("Given a bounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))
		for _, id := range []string{"a", "b", "c"} {
			So(d.SeenAndRecord(ctx, id), ShouldBeFalse)
		}

		Convey("When a fourth id arrives", func() {
			So(d.SeenAndRecord(ctx, "d"), ShouldBeFalse)

			Convey("Then the oldest id should be evicted", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "b"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "c"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "d"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "a"), ShouldBeFalse)
			})
		})

		Convey("When an id in the middle is unrecorded", func() {
			d.Unrecord(ctx, "b")
			d.SeenAndRecord(ctx, "d")
			d.SeenAndRecord(ctx, "e")

			Convey("Then eviction should continue from the oldest remaining id", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "c"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "a"), ShouldBeFalse)
			})
		})
	})

	Convey("Given an unbounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))
		const n = 1000
		for i := 0; i < n; i++ {
			d.SeenAndRecord(ctx, fmt.Sprintf("req-%d", i))
		}

		Convey("Then nothing should be evicted", func() {
			So(d.Size(), ShouldEqual, int64(n))
			So(d.SeenAndRecord(ctx, "req-0"), ShouldBeTrue)
		})
	})

	Convey("Given concurrent retries of the same request", t, func() {
		d := dedupe.NewInMemoryDeduper()
		var fresh atomic.Int64
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if !d.SeenAndRecord(ctx, "req-1") {
					fresh.Add(1)
				}
			}()
		}
		wg.Wait()

		Convey("Then exactly one should be treated as new", func() {
			So(fresh.Load(), ShouldEqual, 1)
		})
	})

	Convey("Given request ids from different rounds", t, func() {
		Convey("Then keys should not collide", func() {
			So(dedupe.Key("r1", "req"), ShouldNotEqual, dedupe.Key("r2", "req"))
			So(dedupe.Key("r1", "req"), ShouldEqual, "r1/req")
		})
	})
}
