package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/courtstats/courtstats/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

// Each scenario owns a test function so t.Setenv cleanup isolates its
// environment from the others.

func TestLoadDefaults(t *testing.T) {
	Convey("Given no overrides", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then defaults apply", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":9090")
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.DataDir, ShouldEqual, "data")
			So(cfg.ManifestName, ShouldEqual, "seasons.json")
			So(cfg.MaxSearchResults, ShouldEqual, 25)
			So(cfg.MinRateMatches, ShouldEqual, 50)
			So(cfg.AllowedOrigins, ShouldResemble, []string{"*"})
		})
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("COURTSTATS_ADDR", ":7070")
	t.Setenv("COURTSTATS_DATA_DIR", "/srv/seasons")
	t.Setenv("COURTSTATS_MAX_SEARCH_RESULTS", "5")

	Convey("Given overriding environment variables", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then the environment wins", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":7070")
			So(cfg.DataDir, ShouldEqual, "/srv/seasons")
			So(cfg.MaxSearchResults, ShouldEqual, 5)
			So(cfg.LogLevel, ShouldEqual, "info")
		})
	})
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("addr: \":6060\"\nlog_level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("COURTSTATS_CONFIG", path)

	Convey("Given a config file", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then file values layer over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":6060")
			So(cfg.LogLevel, ShouldEqual, "debug")
			So(cfg.DataDir, ShouldEqual, "data")
		})
	})
}

func TestLoadEnvOutranksFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("addr: \":6060\"\nlog_level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("COURTSTATS_CONFIG", path)
	t.Setenv("COURTSTATS_ADDR", ":5050")

	Convey("Given both a config file and an environment override", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then the environment outranks the file", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":5050")
			So(cfg.LogLevel, ShouldEqual, "debug")
		})
	})
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("COURTSTATS_CONFIG", "/nonexistent/config.yaml")

	Convey("Given a config path that does not exist", t, func() {
		_, err := config.Load(context.Background())

		Convey("Then loading fails with the load sentinel", func() {
			So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
		})
	})
}

func TestLoadValidation(t *testing.T) {
	t.Setenv("COURTSTATS_ADDR", "")

	Convey("Given a blanked required value", t, func() {
		_, err := config.Load(context.Background())

		Convey("Then validation rejects the config", func() {
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
		})
	})
}
