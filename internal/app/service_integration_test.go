package app_test

import (
	"context"
	"testing"

	"github.com/courtstats/courtstats/internal/adapters/source"
	engine "github.com/courtstats/courtstats/internal/app"
	"github.com/courtstats/courtstats/internal/datagen"
	"github.com/courtstats/courtstats/internal/domain/query"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServiceEndToEnd(t *testing.T) {
	Convey("Given a generated dataset on disk", t, func() {
		dir := t.TempDir()
		gen := datagen.New(datagen.WithSeed(11), datagen.WithCompetitors(32), datagen.WithEventsPerYear(4))
		So(gen.Generate(dir, 2021, 2023), ShouldBeNil)

		svc := engine.New(engine.WithSource(source.NewLoader(source.WithDataDir(dir))))
		ctx := context.Background()

		Convey("When loading it through the real loader", func() {
			So(svc.Load(ctx), ShouldBeNil)
			st := svc.Status(ctx)

			Convey("Then the dataset is fully ingested", func() {
				So(st.Loaded, ShouldBeTrue)
				So(st.SeasonsLoaded, ShouldEqual, 3)
				So(st.SeasonsMissing, ShouldBeEmpty)
				// 4 events per year, 16-draw single elimination: 15 matches each.
				So(st.RowsAccepted, ShouldEqual, 3*4*15)
				So(st.Matches, ShouldEqual, st.RowsAccepted)
				So(st.RowsSkipped, ShouldEqual, 0)
				So(st.RowsDuplicate, ShouldEqual, 0)
			})

			Convey("Then aggregate conservation holds across the query surface", func() {
				all, err := svc.SearchCompetitors(ctx, "", 0)
				So(err, ShouldBeNil)
				wins, losses := 0, 0
				for _, c := range all {
					wins += c.Wins
					losses += c.Losses
				}
				So(wins, ShouldEqual, st.Matches)
				So(losses, ShouldEqual, st.Matches)
			})

			Convey("Then per-competitor views agree with the summaries", func() {
				all, _ := svc.SearchCompetitors(ctx, "", 3)
				for _, c := range all {
					history, err := svc.MatchHistory(ctx, c.Key, query.HistoryFilter{})
					So(err, ShouldBeNil)
					So(len(history), ShouldEqual, c.Matches)

					rivalries, err := svc.Rivalries(ctx, c.Key, 0)
					So(err, ShouldBeNil)
					meetings := 0
					for _, rv := range rivalries {
						meetings += rv.Meetings
					}
					So(meetings, ShouldEqual, c.Matches)
				}
			})

			Convey("Then the event listing covers every generated event", func() {
				events, err := svc.ListEvents(ctx, query.EventFilter{})
				So(err, ShouldBeNil)
				So(events, ShouldNotBeEmpty)
				total := 0
				for _, e := range events {
					total += e.MatchCount
					detail, err := svc.EventDetail(ctx, e.Key)
					So(err, ShouldBeNil)
					So(detail.Key, ShouldEqual, e.Key)
					So(len(detail.Champions), ShouldBeGreaterThan, 0)
				}
				So(total, ShouldEqual, st.Matches)
			})

			Convey("Then a reload over the same files is idempotent", func() {
				first := svc.Status(ctx)
				firstRecords, err := svc.Records(ctx)
				So(err, ShouldBeNil)
				firstRoster, err := svc.SearchCompetitors(ctx, "", 0)
				So(err, ShouldBeNil)

				So(svc.Load(ctx), ShouldBeNil)

				second := svc.Status(ctx)
				So(second.Matches, ShouldEqual, first.Matches)
				So(second.Competitors, ShouldEqual, first.Competitors)
				So(second.Events, ShouldEqual, first.Events)
				So(second.RowsAccepted, ShouldEqual, first.RowsAccepted)

				secondRecords, err := svc.Records(ctx)
				So(err, ShouldBeNil)
				So(secondRecords, ShouldResemble, firstRecords)
				secondRoster, err := svc.SearchCompetitors(ctx, "", 0)
				So(err, ShouldBeNil)
				So(secondRoster, ShouldResemble, firstRoster)
			})
		})
	})
}
