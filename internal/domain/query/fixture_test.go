package query_test

import (
	"context"
	"fmt"

	"github.com/courtstats/courtstats/internal/adapters/repository"
	"github.com/courtstats/courtstats/internal/domain/model"
)

// match builds one fully-populated record for query fixtures.
func match(winner, loser string, dateKey int, round string, opts ...func(*model.Match)) model.Match {
	m := model.Match{
		ID:        fmt.Sprintf("%s|%s|%d|%s", winner, loser, dateKey, round),
		EventID:   fmt.Sprintf("%d-0100", dateKey/10000),
		EventName: "Metro Open",
		EventKey:  "metro-open",
		Category:  model.CategoryTour500,
		Surface:   model.SurfaceHard,
		DateKey:   dateKey,
		Round:     round,
		BestOf:    3,
		Minutes:   100,
		Score:     "7-5 6-3",
		Winner:    model.Side{Name: title(winner), Key: winner},
		Loser:     model.Side{Name: title(loser), Key: loser},
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func title(key string) string {
	if key == "" {
		return ""
	}
	return string(key[0]-'a'+'A') + key[1:]
}

func onClay(m *model.Match) { m.Surface = model.SurfaceClay }

func grandSlam(name, key string) func(*model.Match) {
	return func(m *model.Match) {
		m.EventName, m.EventKey = name, key
		m.Category = model.CategoryGrandSlam
		m.EventID = fmt.Sprintf("%d-0500", m.DateKey/10000)
	}
}

func ranked(winnerRank, winnerPts, loserRank, loserPts int) func(*model.Match) {
	return func(m *model.Match) {
		m.Winner.Rank, m.Winner.Points = winnerRank, winnerPts
		m.Loser.Rank, m.Loser.Points = loserRank, loserPts
	}
}

// fixtureStore ingests a small deterministic dataset and finalizes it.
//
// alfred: 5 matches, 4 wins, 2 titles (one slam). belinda and casper: 3
// matches each. alfredo exists solely to exercise prefix search.
func fixtureStore() *repository.Store {
	s := repository.New(context.Background())

	s.Add(match("alfred", "belinda", 20210110, "F", ranked(5, 3000, 9, 2200)))
	s.Add(match("alfred", "casper", 20220115, "SF", ranked(4, 3400, 20, 1200), onClay))
	s.Add(match("belinda", "alfred", 20220116, "F", ranked(9, 2300, 4, 3400), onClay))
	s.Add(match("alfred", "casper", 20230120, "QF", ranked(2, 5000, 25, 900), grandSlam("Coastal Slam", "coastal-slam")))
	s.Add(match("alfred", "belinda", 20230122, "F", ranked(2, 5200, 8, 2500), grandSlam("Coastal Slam", "coastal-slam")))
	s.Add(match("casper", "dimitri", 20230205, "R16"))
	s.Add(match("alfredo", "dimitri", 20230301, "R32"))

	s.Finalize()
	return s
}
