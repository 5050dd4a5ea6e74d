package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/molkky/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldResemble, config.New())
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("MOLKKY_ADDR", ":8080")
			_ = os.Setenv("MOLKKY_DATA_FILE", "/var/lib/molkky/rounds.yaml")
			_ = os.Setenv("MOLKKY_DEDUPE_SIZE", "250")
			_ = os.Setenv("MOLKKY_TARGET_SCORE", "40")
			_ = os.Setenv("MOLKKY_CONTINUE_UNTIL_ALL_FINISHED", "true")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DataFile, convey.ShouldEqual, "/var/lib/molkky/rounds.yaml")
				convey.So(cfg.DedupeSize, convey.ShouldEqual, 250)
				convey.So(cfg.TargetScore, convey.ShouldEqual, 40)
				convey.So(cfg.ResetScore, convey.ShouldEqual, 25)
				convey.So(cfg.ContinueUntilAllFinished, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
log_level: debug
log_json: true
target_score: 30
reset_score: 15
misses_for_elimination: 2
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("MOLKKY_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.LogJSON, convey.ShouldBeTrue)
				convey.So(cfg.TargetScore, convey.ShouldEqual, 30)
				convey.So(cfg.ResetScore, convey.ShouldEqual, 15)
				convey.So(cfg.MissesForElimination, convey.ShouldEqual, 2)
				convey.So(cfg.DedupeSize, convey.ShouldEqual, 10000)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
target_score: 30
reset_score: 15
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("MOLKKY_CONFIG", tmpFile)
			_ = os.Setenv("MOLKKY_ADDR", ":8080")
			_ = os.Setenv("MOLKKY_RESET_SCORE", "20")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.TargetScore, convey.ShouldEqual, 30)
				convey.So(cfg.ResetScore, convey.ShouldEqual, 20)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("MOLKKY_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("MOLKKY_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "/non/existent/file.yaml")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("MOLKKY_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the target score is not positive", func() {
			_ = os.Setenv("MOLKKY_TARGET_SCORE", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("MOLKKY_DEDUPE_SIZE", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When unlimited dedupe is configured", func() {
			_ = os.Setenv("MOLKKY_DEDUPE_SIZE", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then zero is kept", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DedupeSize, convey.ShouldEqual, 0)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"MOLKKY_CONFIG",
		"MOLKKY_ADDR",
		"MOLKKY_LOG_LEVEL",
		"MOLKKY_LOG_JSON",
		"MOLKKY_DATA_FILE",
		"MOLKKY_DEDUPE_SIZE",
		"MOLKKY_TARGET_SCORE",
		"MOLKKY_RESET_SCORE",
		"MOLKKY_MISSES_FOR_ELIMINATION",
		"MOLKKY_CAN_BE_RESET",
		"MOLKKY_CONTINUE_UNTIL_ALL_FINISHED",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "molkky-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	if err := tmpFile.Close(); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
