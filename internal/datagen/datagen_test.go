package datagen_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/courtstats/courtstats/internal/adapters/source"
	"github.com/courtstats/courtstats/internal/datagen"
	"github.com/courtstats/courtstats/internal/domain/normalize"
	"github.com/courtstats/courtstats/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func TestGenerate(t *testing.T) {
	Convey("Given a generator with a fixed seed", t, func() {
		dir := t.TempDir()
		g := datagen.New(datagen.WithSeed(7), datagen.WithCompetitors(16), datagen.WithEventsPerYear(3))

		Convey("When generating two seasons", func() {
			err := g.Generate(dir, 2022, 2023)
			So(err, ShouldBeNil)

			l := source.NewLoader(source.WithDataDir(dir))

			Convey("Then the manifest lists both seasons in order", func() {
				seasons, err := l.Manifest(context.Background())
				So(err, ShouldBeNil)
				So(len(seasons), ShouldEqual, 2)
				So(seasons[0].Year, ShouldEqual, 2022)
				So(seasons[1].Year, ShouldEqual, 2023)
			})

			Convey("Then the competitor metadata parses", func() {
				profiles, err := l.Profiles(context.Background())
				So(err, ShouldBeNil)
				So(len(profiles), ShouldEqual, 16)
				So(profiles[0].Name, ShouldNotBeEmpty)
				So(profiles[0].Country, ShouldNotBeEmpty)
			})

			Convey("Then every generated row survives normalization", func() {
				seasons, _ := l.Manifest(context.Background())
				n := normalize.New()
				total := 0
				for _, season := range seasons {
					rows, err := l.Rows(context.Background(), season)
					So(err, ShouldBeNil)
					So(rows, ShouldNotBeEmpty)
					for _, row := range rows {
						m, ok := n.Normalize(row)
						So(ok, ShouldBeTrue)
						So(m.Year(), ShouldEqual, season.Year)
						total++
					}
				}
				// 3 events per year, 16-draw single elimination: 15 matches each.
				So(total, ShouldEqual, 2*3*15)
			})
		})

		Convey("When generating twice with the same seed", func() {
			other := t.TempDir()
			So(g.Generate(dir, 2022, 2022), ShouldBeNil)
			So(datagen.New(datagen.WithSeed(7), datagen.WithCompetitors(16), datagen.WithEventsPerYear(3)).
				Generate(other, 2022, 2022), ShouldBeNil)

			Convey("Then the output is byte-identical", func() {
				entries, err := os.ReadDir(dir)
				So(err, ShouldBeNil)
				So(len(entries), ShouldBeGreaterThanOrEqualTo, 3)
				for _, e := range entries {
					name := e.Name()
					a, err := os.ReadFile(filepath.Join(dir, name))
					So(err, ShouldBeNil)
					b, err := os.ReadFile(filepath.Join(other, name))
					So(err, ShouldBeNil)
					So(string(a), ShouldEqual, string(b))
				}
			})
		})
	})
}
