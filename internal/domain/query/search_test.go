package query_test

import (
	"testing"

	"github.com/courtstats/courtstats/internal/domain/query"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSearchCompetitors(t *testing.T) {
	Convey("Given a finalized store", t, func() {
		s := fixtureStore()

		Convey("When searching with an exact prefix", func() {
			out := query.SearchCompetitors(s, "alfred", 0)

			Convey("Then prefix matches rank by match count", func() {
				So(len(out), ShouldEqual, 2)
				So(out[0].Key, ShouldEqual, "alfred")
				So(out[0].Matches, ShouldEqual, 5)
				So(out[1].Key, ShouldEqual, "alfredo")
			})
		})

		Convey("When the query hits both tiers", func() {
			out := query.SearchCompetitors(s, "a", 0)

			Convey("Then every prefix match ranks above every substring match", func() {
				So(len(out), ShouldEqual, 4)
				So(out[0].Key, ShouldEqual, "alfred")
				So(out[1].Key, ShouldEqual, "alfredo")
				So(out[2].Key, ShouldEqual, "belinda")
				So(out[3].Key, ShouldEqual, "casper")
			})
		})

		Convey("When the query is empty", func() {
			out := query.SearchCompetitors(s, "", 0)

			Convey("Then the full roster returns ordered by match count", func() {
				So(len(out), ShouldEqual, 5)
				So(out[0].Key, ShouldEqual, "alfred")
			})
		})

		Convey("When a limit applies", func() {
			out := query.SearchCompetitors(s, "", 2)

			Convey("Then the ordered set truncates", func() {
				So(len(out), ShouldEqual, 2)
				So(out[0].Key, ShouldEqual, "alfred")
			})
		})

		Convey("When the query folds through normalization", func() {
			out := query.SearchCompetitors(s, "  Alfréd ", 0)

			Convey("Then accents and case do not matter", func() {
				So(len(out), ShouldEqual, 2)
				So(out[0].Key, ShouldEqual, "alfred")
			})
		})

		Convey("When nothing matches", func() {
			out := query.SearchCompetitors(s, "zz", 0)

			Convey("Then the result is empty, not an error", func() {
				So(out, ShouldBeEmpty)
			})
		})

		Convey("Then summaries carry derived fields", func() {
			out := query.SearchCompetitors(s, "alfred", 1)
			So(out[0].Wins, ShouldEqual, 4)
			So(out[0].Titles, ShouldEqual, 2)
			So(out[0].WinPct, ShouldAlmostEqual, 80.0, 0.0001)
			So(out[0].BestRank, ShouldEqual, 2)
			So(out[0].CurrentRank, ShouldEqual, 2)
		})
	})
}
