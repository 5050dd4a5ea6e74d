package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the global logger", t, func() {
		Convey("When initializing it", func() {
			So(Init(), ShouldBeNil)
			defer func() { So(Sync(), ShouldBeNil) }()

			Convey("Then Get and Named should return loggers", func() {
				So(Get(), ShouldNotBeNil)
				So(Named("test"), ShouldNotBeNil)
			})
		})
	})
}

func TestLoggerOutput(t *testing.T) {
	Convey("Given a JSON logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(Init(WithWriter(&buf), WithJSON(true)), ShouldBeNil)
		ctx := context.Background()

		Convey("When logging with fields", func() {
			Named("service").Info(ctx, "attempt recorded",
				String("round_id", "r1"),
				Int("score", 7),
				Bool("duplicate", false),
				Duration("took", time.Millisecond),
				Error(errors.New("boom")),
			)

			Convey("Then the record should carry every field, the component and the source", func() {
				var rec map[string]any
				So(json.Unmarshal(buf.Bytes(), &rec), ShouldBeNil)
				So(rec["msg"], ShouldEqual, "attempt recorded")
				So(rec["component"], ShouldEqual, "service")
				So(rec["round_id"], ShouldEqual, "r1")
				So(rec["score"], ShouldEqual, 7.0)
				So(rec["duplicate"], ShouldEqual, false)
				So(rec["error"], ShouldEqual, "boom")
				So(rec["source"], ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When the level is raised", func() {
			So(SetLevelString("warn"), ShouldBeNil)
			defer SetLevel(0)
			Get().Info(ctx, "hidden")
			Get().Warn(ctx, "shown")

			Convey("Then lower levels should be dropped", func() {
				out := buf.String()
				So(out, ShouldNotContainSubstring, "hidden")
				So(out, ShouldContainSubstring, "shown")
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level names", t, func() {
		Convey("Then known names should be accepted in any case", func() {
			for _, lvl := range []string{"debug", "INFO", " warn ", "warning", "Error", ""} {
				So(SetLevelString(lvl), ShouldBeNil)
			}
			SetLevel(0)
		})

		Convey("Then unknown names should fail", func() {
			err := SetLevelString("verbose")
			So(err, ShouldNotBeNil)
			So(strings.Contains(err.Error(), "verbose"), ShouldBeTrue)
		})
	})
}

func TestFatal(t *testing.T) {
	Convey("Given a logger with a captured exit", t, func() {
		var buf bytes.Buffer
		code := -1
		l := New(WithWriter(&buf)).(*slogLogger)
		l.exit = func(c int) { code = c }

		Convey("When logging a fatal message", func() {
			l.Fatal(context.Background(), "cannot start")

			Convey("Then it should log and exit with status 1", func() {
				So(buf.String(), ShouldContainSubstring, "cannot start")
				So(code, ShouldEqual, 1)
			})
		})
	})
}
