package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/molkky/internal/adapters/http/api"
	repository "github.com/okian/molkky/internal/adapters/repository"
	app "github.com/okian/molkky/internal/app"
	"github.com/okian/molkky/internal/config"
	"github.com/okian/molkky/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestOpenStore(t *testing.T) {
	convey.Convey("Given the default config", t, func() {
		ctx := context.Background()
		cfg := config.New()

		convey.Convey("When no data file is configured", func() {
			store, err := openStore(ctx, cfg, logger.Get())
			convey.So(err, convey.ShouldBeNil)
			defer func() { _ = store.Close() }()

			convey.Convey("Then rounds are kept in memory", func() {
				_, ok := store.(*repository.MemoryStore)
				convey.So(ok, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a data file is configured", func() {
			cfg.DataFile = filepath.Join(t.TempDir(), "rounds.yaml")
			store, err := openStore(ctx, cfg, logger.Get())
			convey.So(err, convey.ShouldBeNil)
			defer func() { _ = store.Close() }()

			convey.Convey("Then rounds are kept on disk", func() {
				fs, ok := store.(*repository.FileStore)
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(fs.Path(), convey.ShouldEqual, cfg.DataFile)
			})
		})
	})
}

func TestNewHandler(t *testing.T) {
	convey.Convey("Given a started service behind the handler", t, func() {
		svc := app.New()
		convey.So(svc.Start(context.Background()), convey.ShouldBeNil)
		defer svc.Stop()
		h := newHandler(svc)

		convey.Convey("When health is requested", func() {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			convey.Convey("Then metrics are served", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
			})
		})

		convey.Convey("When the roster is requested", func() {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/players", nil))

			convey.Convey("Then an empty list is returned", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(rec.Body.String(), convey.ShouldStartWith, "[]")
			})
		})
	})
}

func TestRun(t *testing.T) {
	convey.Convey("Given a config listening on a free port", t, func() {
		cfg := config.New()
		cfg.Addr = "127.0.0.1:0"
		cfg.DataFile = filepath.Join(t.TempDir(), "rounds.yaml")

		convey.Convey("When the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- run(ctx, cfg) }()
			time.Sleep(50 * time.Millisecond)
			cancel()

			convey.Convey("Then the server shuts down cleanly", func() {
				select {
				case err := <-done:
					convey.So(err, convey.ShouldBeNil)
				case <-time.After(5 * time.Second):
					convey.So("run did not return", convey.ShouldBeEmpty)
				}
			})
		})

		convey.Convey("When the address cannot be bound", func() {
			cfg.Addr = "127.0.0.1:99999"
			err := run(context.Background(), cfg)

			convey.Convey("Then a serve error is returned", func() {
				convey.So(errors.Is(err, api.ErrServe), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the log level is unknown", func() {
			cfg.LogLevel = "chatty"
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			convey.Convey("Then run still starts and stops", func() {
				convey.So(run(ctx, cfg), convey.ShouldBeNil)
			})
		})
	})
}

func TestUpdateSystemMetrics(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.Convey("Then a single update does not panic", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})

		convey.Convey("Then the loop returns once its context ends", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
		})
	})
}
