package repository

import (
	"sort"
	"time"

	"github.com/courtstats/courtstats/internal/domain/model"
	"github.com/courtstats/courtstats/pkg/metrics"
)

// Finalize freezes the store after ingestion: sorts the global match list
// into canonical order (date descending, ingestion sequence descending on
// ties), remaps every competitor's match references to the new positions,
// and derives the summary fields raw accumulators cannot carry.
//
// The supported contract is run-exactly-once per load; re-running on an
// already-finalized store is a no-op.
func (s *Store) Finalize() {
	if s.finalized {
		return
	}
	start := time.Now()

	s.sortMatches()
	s.finalizeCompetitors()
	s.finalizeEvents()

	s.finalized = true

	matches, competitors, events := s.Counts()
	metrics.RecordFinalizeDuration(float64(time.Since(start).Milliseconds()))
	metrics.UpdateDatasetSize(matches, competitors, events)
}

// sortMatches reorders the global list newest-first and rewrites every
// competitor's match references through the old-to-new remap table.
func (s *Store) sortMatches() {
	sort.SliceStable(s.matches, func(i, j int) bool {
		if s.matches[i].DateKey != s.matches[j].DateKey {
			return s.matches[i].DateKey > s.matches[j].DateKey
		}
		return s.matches[i].Seq > s.matches[j].Seq
	})

	remap := make([]int, len(s.matches))
	for newIdx := range s.matches {
		remap[s.matches[newIdx].Seq] = newIdx
	}

	for _, c := range s.competitors {
		for i, old := range c.MatchRefs {
			c.MatchRefs[i] = remap[old]
		}
		// Ascending new index is exactly date-descending.
		sort.Ints(c.MatchRefs)
	}
}

func (s *Store) finalizeCompetitors() {
	for _, c := range s.competitors {
		if c.Matches > 0 {
			c.WinPct = float64(c.Wins) / float64(c.Matches) * 100
			c.AvgMinutes = float64(c.Minutes) / float64(c.Matches)
		}
	}
}

func (s *Store) finalizeEvents() {
	for _, e := range s.events {
		e.EditionCount = len(e.Editions)
		e.CompetitorCount = len(e.Participants)

		e.Champions = e.Champions[:0]
		for key, titles := range e.TitleCounts {
			e.Champions = append(e.Champions, model.Champion{
				Key:    key,
				Name:   e.ChampionName[key],
				Titles: titles,
			})
		}
		sort.Slice(e.Champions, func(i, j int) bool {
			if e.Champions[i].Titles != e.Champions[j].Titles {
				return e.Champions[i].Titles > e.Champions[j].Titles
			}
			return e.Champions[i].Name < e.Champions[j].Name
		})

		sort.SliceStable(e.Finals, func(i, j int) bool {
			return e.Finals[i].DateKey > e.Finals[j].DateKey
		})

		e.PrimaryCategory = primaryCategory(e.CategoryFreq)
		e.PrimarySurface = primarySurface(e.SurfaceFreq)
	}
}

// primaryCategory picks the most frequent category; enum declaration
// order breaks ties.
func primaryCategory(freq map[model.Category]int) model.Category {
	best := model.CategoryOther
	bestCount := -1
	for _, c := range model.Categories() {
		if n := freq[c]; n > bestCount {
			best = c
			bestCount = n
		}
	}
	return best
}

// primarySurface picks the most frequent surface; enum declaration order
// breaks ties.
func primarySurface(freq map[model.Surface]int) model.Surface {
	best := model.SurfaceHard
	bestCount := -1
	for _, v := range model.Surfaces() {
		if n := freq[v]; n > bestCount {
			best = v
			bestCount = n
		}
	}
	return best
}
