package query_test

import (
	"context"
	"errors"
	"testing"

	"github.com/courtstats/courtstats/internal/adapters/repository"
	"github.com/courtstats/courtstats/internal/domain/query"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRankingTimeline(t *testing.T) {
	Convey("Given a finalized store", t, func() {
		s := fixtureStore()

		Convey("When requesting an unknown competitor", func() {
			_, err := query.RankingTimeline(s, "nobody")

			Convey("Then it fails with the not-found sentinel", func() {
				So(errors.Is(err, repository.ErrCompetitorNotFound), ShouldBeTrue)
			})
		})

		Convey("When walking a ranked competitor", func() {
			tl, err := query.RankingTimeline(s, "alfred")

			Convey("Then points run oldest-first, one per observation", func() {
				So(err, ShouldBeNil)
				So(len(tl.Points), ShouldEqual, 5)
				for i := 1; i < len(tl.Points); i++ {
					So(tl.Points[i-1].DateKey, ShouldBeLessThanOrEqualTo, tl.Points[i].DateKey)
				}
			})

			Convey("Then deltas telescope to last minus first", func() {
				sum := 0
				for _, p := range tl.Points {
					sum += p.Delta
				}
				first := tl.Points[0].Rank
				last := tl.Points[len(tl.Points)-1].Rank
				So(sum, ShouldEqual, last-first)
			})

			Convey("Then the summary extremes are derived", func() {
				So(tl.BestRank, ShouldEqual, 2)
				So(tl.WorstRank, ShouldEqual, 5)
				So(tl.CurrentRank, ShouldEqual, 2)
			})

			Convey("Then the biggest rise is the largest standing improvement", func() {
				So(tl.BiggestRise, ShouldNotBeNil)
				So(tl.BiggestRise.Delta, ShouldEqual, -2)
				So(tl.BiggestRise.DateKey, ShouldEqual, 20230120)
			})

			Convey("Then no drop exists in a monotone improvement", func() {
				So(tl.BiggestDrop, ShouldBeNil)
			})
		})

		Convey("When a competitor has no rank observations", func() {
			tl, err := query.RankingTimeline(s, "dimitri")

			Convey("Then the timeline is empty without error", func() {
				So(err, ShouldBeNil)
				So(tl.Points, ShouldBeEmpty)
				So(tl.BestRank, ShouldEqual, 0)
				So(tl.CurrentRank, ShouldEqual, 0)
			})
		})
	})

	Convey("Given same-date observations at the same rank", t, func() {
		s := repository.New(context.Background())
		s.Add(match("alfred", "belinda", 20220110, "QF", ranked(10, 1500, 30, 400)))
		s.Add(match("alfred", "casper", 20220110, "SF", ranked(10, 1550, 25, 600)))
		s.Add(match("dimitri", "alfred", 20220110, "F", ranked(3, 4000, 10, 1600)))
		s.Finalize()

		Convey("When building the timeline", func() {
			tl, err := query.RankingTimeline(s, "alfred")

			Convey("Then they collapse into one point keeping the max points value", func() {
				So(err, ShouldBeNil)
				So(len(tl.Points), ShouldEqual, 1)
				So(tl.Points[0].Rank, ShouldEqual, 10)
				So(tl.Points[0].Points, ShouldEqual, 1600)
			})
		})
	})

	Convey("Given a rank that rises and falls across dates", t, func() {
		s := repository.New(context.Background())
		s.Add(match("alfred", "belinda", 20220110, "R32", ranked(12, 1000, 40, 300)))
		s.Add(match("alfred", "casper", 20220210, "R32", ranked(6, 1700, 50, 200)))
		s.Add(match("dimitri", "alfred", 20220310, "R32", ranked(2, 5000, 15, 800)))
		s.Finalize()

		Convey("When building the timeline", func() {
			tl, _ := query.RankingTimeline(s, "alfred")

			Convey("Then both extremes are reported", func() {
				So(len(tl.Points), ShouldEqual, 3)
				So(tl.BiggestRise, ShouldNotBeNil)
				So(tl.BiggestRise.Delta, ShouldEqual, -6)
				So(tl.BiggestDrop, ShouldNotBeNil)
				So(tl.BiggestDrop.Delta, ShouldEqual, 9)
				So(tl.WorstRank, ShouldEqual, 15)
				So(tl.CurrentRank, ShouldEqual, 15)
			})
		})
	})
}
