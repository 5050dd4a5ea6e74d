package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should use the service namespace", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "molkky")
				So(manager.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("sub"),
				WithMetricPrefix("pre"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithRefreshInterval(5*time.Second),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.roundsFinished.Inc()

			Convey("Then names and labels should reflect the options", func() {
				So(manager.RefreshInterval(), ShouldEqual, 5*time.Second)
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				var found bool
				for _, f := range families {
					if f.GetName() == "test_sub_pre_rounds_finished_total" {
						found = true
						So(f.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "env")
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When invalid options are given", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithHistogramBuckets(nil),
				WithRefreshInterval(-time.Second),
				WithPrometheusRegistry(registry),
			)

			Convey("Then defaults should be kept", func() {
				So(manager.namespace, ShouldEqual, "molkky")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
				So(manager.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
			})
		})
	})
}

func TestGameMetrics(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording throws", func() {
			before := testutil.ToFloat64(globalManager.attemptsRecorded.WithLabelValues("12"))
			RecordAttempt(12)
			RecordAttempt(12)

			Convey("Then they should be counted by score", func() {
				after := testutil.ToFloat64(globalManager.attemptsRecorded.WithLabelValues("12"))
				So(after-before, ShouldEqual, 2)
			})
		})

		Convey("When setting gauges", func() {
			UpdateRoundsActive(4)
			UpdatePlayersTotal(7)
			UpdateDedupeSize(11)
			UpdateStoreRecords("rounds", 9)

			Convey("Then the latest values should be exposed", func() {
				So(testutil.ToFloat64(globalManager.roundsActive), ShouldEqual, 4)
				So(testutil.ToFloat64(globalManager.playersTotal), ShouldEqual, 7)
				So(testutil.ToFloat64(globalManager.dedupeSize), ShouldEqual, 11)
				So(testutil.ToFloat64(globalManager.storeRecords.WithLabelValues("rounds")), ShouldEqual, 9)
			})
		})

		Convey("When recording every kind of metric", func() {
			Convey("Then nothing should panic", func() {
				So(func() {
					RecordAttemptDuplicate()
					RecordAttemptLatency(1.5)
					RecordRoundOperation("undo")
					RecordRoundCreated("rematch")
					RecordRoundFinished()
					RecordStoreSaveLatency(0.4)
					RecordStoreQueryLatency(0.1)
					RecordHTTPRequest("/rounds", "POST", "201")
					RecordHTTPRequestDuration("/rounds", "POST", "201", 3)
					RecordErrorByComponent("service", "not_found")
					RecordErrorByType("not_found", "warning")
					RecordErrorByEndpoint("/rounds", "GET", "not_found")
					RecordErrorLatency("service", "not_found", 2)
					UpdateSystemMemoryUsage(1 << 20)
					UpdateSystemGoroutineCount(12)
					RecordSystemGCPauseTime(0.3)
				}, ShouldNotPanic)
			})
		})
	})
}

func TestScoreLabel(t *testing.T) {
	Convey("Given throw scores", t, func() {
		Convey("Then valid scores should be their own label", func() {
			So(scoreLabel(0), ShouldEqual, "0")
			So(scoreLabel(12), ShouldEqual, "12")
		})

		Convey("Then anything else should collapse to one label", func() {
			So(scoreLabel(-1), ShouldEqual, "invalid")
			So(scoreLabel(99), ShouldEqual, "invalid")
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the custom registry", t, func() {
		RecordRoundFinished()

		Convey("Then it should expose service metrics only", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
			for _, f := range families {
				So(strings.HasPrefix(f.GetName(), "molkky_"), ShouldBeTrue)
			}
		})
	})
}
