package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/courtstats/courtstats/internal/adapters/source"
	engine "github.com/courtstats/courtstats/internal/app"
	"github.com/courtstats/courtstats/internal/domain/normalize"
	"github.com/courtstats/courtstats/internal/domain/query"
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

// fakeSource serves canned seasons from memory.
type fakeSource struct {
	seasons  []source.Season
	profiles []normalize.Profile
	rows     map[int][]normalize.RawRow
	failYear int // Rows fails for this season year

	enteredManifest chan struct{} // closed on first Manifest call, if set
	releaseManifest chan struct{} // Manifest blocks on this, if set
}

func (f *fakeSource) Manifest(_ context.Context) ([]source.Season, error) {
	if f.enteredManifest != nil {
		close(f.enteredManifest)
		f.enteredManifest = nil
	}
	if f.releaseManifest != nil {
		<-f.releaseManifest
	}
	return f.seasons, nil
}

func (f *fakeSource) Profiles(_ context.Context) ([]normalize.Profile, error) {
	return f.profiles, nil
}

func (f *fakeSource) Rows(_ context.Context, season source.Season) ([]normalize.RawRow, error) {
	if f.failYear != 0 && season.Year == f.failYear {
		return nil, fmt.Errorf("%w: %s", source.ErrSeasonUnavailable, season.Name)
	}
	return f.rows[season.Year], nil
}

func row(winner, loser, date, round string) normalize.RawRow {
	return normalize.RawRow{
		normalize.FieldEventID:    date[:4] + "-0300",
		normalize.FieldEventName:  "Harbor Open",
		normalize.FieldSurface:    "Hard",
		normalize.FieldLevel:      "A",
		normalize.FieldDate:       date,
		normalize.FieldRound:      round,
		normalize.FieldBestOf:     "3",
		normalize.FieldMinutes:    "95",
		normalize.FieldScore:      "6-3 6-3",
		normalize.FieldWinnerName: winner,
		normalize.FieldLoserName:  loser,
		normalize.FieldWinnerRank: "10",
		normalize.FieldLoserRank:  "20",
	}
}

func twoSeasonSource() *fakeSource {
	return &fakeSource{
		seasons: []source.Season{
			{Year: 2022, Name: "2022", Path: "2022.csv"},
			{Year: 2023, Name: "2023", Path: "2023.csv"},
		},
		rows: map[int][]normalize.RawRow{
			2022: {
				row("Alice North", "Bob South", "20220110", "SF"),
				row("Alice North", "Cara West", "20220112", "F"),
			},
			2023: {
				row("Bob South", "Alice North", "20230110", "F"),
			},
		},
	}
}

func TestServiceLifecycle(t *testing.T) {
	Convey("Given a service before any load", t, func() {
		svc := engine.New(engine.WithSource(twoSeasonSource()))

		Convey("Then queries refuse to answer", func() {
			_, err := svc.SearchCompetitors(context.Background(), "alice", 0)
			So(errors.Is(err, engine.ErrNotLoaded), ShouldBeTrue)

			_, err = svc.Records(context.Background())
			So(errors.Is(err, engine.ErrNotLoaded), ShouldBeTrue)

			So(svc.Status(context.Background()).Loaded, ShouldBeFalse)
		})
	})

	Convey("Given a service without a source", t, func() {
		svc := engine.New()

		Convey("Then Load fails immediately", func() {
			So(errors.Is(svc.Load(context.Background()), engine.ErrNoSource), ShouldBeTrue)
		})
	})

	Convey("Given a service with a two-season source", t, func() {
		svc := engine.New(engine.WithSource(twoSeasonSource()))

		Convey("When loading", func() {
			err := svc.Load(context.Background())

			Convey("Then the status reflects the ingested dataset", func() {
				So(err, ShouldBeNil)
				st := svc.Status(context.Background())
				So(st.Loaded, ShouldBeTrue)
				So(st.SeasonsLoaded, ShouldEqual, 2)
				So(st.SeasonsMissing, ShouldBeEmpty)
				So(st.RowsAccepted, ShouldEqual, 3)
				So(st.Matches, ShouldEqual, 3)
				So(st.Competitors, ShouldEqual, 3)
				So(st.Events, ShouldEqual, 1)
			})

			Convey("Then queries answer from the snapshot", func() {
				out, err := svc.SearchCompetitors(context.Background(), "alice", 0)
				So(err, ShouldBeNil)
				So(len(out), ShouldEqual, 1)
				So(out[0].Matches, ShouldEqual, 3)
				So(out[0].Titles, ShouldEqual, 1)

				history, err := svc.MatchHistory(context.Background(), "alice-north", query.HistoryFilter{})
				So(err, ShouldBeNil)
				So(len(history), ShouldEqual, 3)
				So(history[0].DateKey, ShouldEqual, 20230110)

				tl, err := svc.RankingTimeline(context.Background(), "alice-north")
				So(err, ShouldBeNil)
				So(len(tl.Points), ShouldBeGreaterThan, 0)
			})

			Convey("Then an unlimited search walks the whole roster", func() {
				all, err := svc.SearchCompetitors(context.Background(), "", 0)
				So(err, ShouldBeNil)
				So(len(all), ShouldEqual, 3)
			})

			Convey("Then the search cap only clamps explicit limits", func() {
				capped := engine.New(engine.WithSource(twoSeasonSource()), engine.WithMaxSearchResults(2))
				So(capped.Load(context.Background()), ShouldBeNil)

				all, err := capped.SearchCompetitors(context.Background(), "", 0)
				So(err, ShouldBeNil)
				So(len(all), ShouldEqual, 3)

				clamped, err := capped.SearchCompetitors(context.Background(), "", 100)
				So(err, ShouldBeNil)
				So(len(clamped), ShouldEqual, 2)
			})

			Convey("Then a reload with new data replaces the snapshot", func() {
				src := twoSeasonSource()
				src.rows[2023] = append(src.rows[2023], row("Cara West", "Bob South", "20230112", "SF"))
				svc2 := engine.New(engine.WithSource(src))
				So(svc2.Load(context.Background()), ShouldBeNil)
				So(svc2.Status(context.Background()).Matches, ShouldEqual, 4)
			})
		})
	})
}

func TestServiceLoadResilience(t *testing.T) {
	Convey("Given a source with one unavailable season", t, func() {
		src := twoSeasonSource()
		src.failYear = 2022
		svc := engine.New(engine.WithSource(src))

		Convey("When loading", func() {
			err := svc.Load(context.Background())

			Convey("Then the load succeeds with the remaining seasons", func() {
				So(err, ShouldBeNil)
				st := svc.Status(context.Background())
				So(st.Loaded, ShouldBeTrue)
				So(st.SeasonsLoaded, ShouldEqual, 1)
				So(st.SeasonsMissing, ShouldResemble, []string{"2022"})
				So(st.Matches, ShouldEqual, 1)
			})
		})
	})

	Convey("Given rows that fail validation or repeat", t, func() {
		src := twoSeasonSource()
		bad := row("", "Bob South", "20220120", "R16")
		dup := row("Alice North", "Bob South", "20220110", "SF")
		src.rows[2022] = append(src.rows[2022], bad, dup)
		svc := engine.New(engine.WithSource(src))

		Convey("When loading", func() {
			err := svc.Load(context.Background())

			Convey("Then skips and duplicates are counted, not fatal", func() {
				So(err, ShouldBeNil)
				st := svc.Status(context.Background())
				So(st.RowsAccepted, ShouldEqual, 3)
				So(st.RowsSkipped, ShouldEqual, 1)
				So(st.RowsDuplicate, ShouldEqual, 1)
			})
		})
	})
}

func TestServiceLoadExclusion(t *testing.T) {
	Convey("Given a load already in flight", t, func() {
		src := twoSeasonSource()
		src.enteredManifest = make(chan struct{})
		src.releaseManifest = make(chan struct{})
		svc := engine.New(engine.WithSource(src))

		entered := src.enteredManifest
		done := make(chan error, 1)
		go func() { done <- svc.Load(context.Background()) }()
		<-entered

		Convey("When a second load starts", func() {
			err := svc.Load(context.Background())

			Convey("Then it is rejected without waiting", func() {
				So(errors.Is(err, engine.ErrLoadInProgress), ShouldBeTrue)
				So(svc.Loading(), ShouldBeTrue)
			})
		})

		close(src.releaseManifest)
		select {
		case err := <-done:
			So(err, ShouldBeNil)
		case <-time.After(5 * time.Second):
			t.Fatal("load did not finish")
		}
	})
}
