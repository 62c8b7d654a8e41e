// Package repository implements the in-memory aggregate store: the global
// match list plus per-competitor and per-event accumulators, built
// incrementally during ingestion and frozen by the finalize pass.
//
// Layout follows an arena-of-structs design: competitors, events, and
// matches live in flat growable slices and reference each other by integer
// index; one key-to-index map per entity kind resolves lookups. Upserts
// return stable indices so ingestion never duck-types presence checks.
package repository

import (
	"context"

	"github.com/courtstats/courtstats/internal/domain/model"
	"github.com/courtstats/courtstats/pkg/metrics"
)

// Store holds one loaded dataset snapshot. A reload builds a fresh Store;
// nothing survives across loads.
//
// Writes (Add, Finalize) are single-threaded by contract. Reads are safe
// to run concurrently once Finalize has completed.
type Store struct {
	matches []model.Match

	competitors   []*model.Competitor
	competitorIdx map[string]int

	events   []*model.Event
	eventIdx map[string]int

	finalized bool
}

// New creates an empty store. Context is accepted first to satisfy the
// project-wide convention; it is reserved for future use.
func New(_ context.Context) *Store {
	return &Store{
		competitorIdx: make(map[string]int),
		eventIdx:      make(map[string]int),
	}
}

// Add ingests one normalized match: appends it to the global list and
// applies the read-modify-write updates to both competitor accumulators
// and the event accumulator. There is no rollback; callers must only pass
// matches that survived normalization.
func (s *Store) Add(m model.Match) {
	m.Seq = len(s.matches)
	s.matches = append(s.matches, m)
	idx := m.Seq

	wi := s.upsertCompetitor(m.Winner.Name, m.Winner.Key)
	li := s.upsertCompetitor(m.Loser.Name, m.Loser.Key)
	s.applySide(wi, m, idx, true, m.Winner, m.Loser)
	s.applySide(li, m, idx, false, m.Loser, m.Winner)
	s.applyEvent(m)

	metrics.RecordMatchIngested()
}

// upsertCompetitor returns the arena index for a competitor key, creating
// the accumulator on first reference.
func (s *Store) upsertCompetitor(name, key string) int {
	if i, ok := s.competitorIdx[key]; ok {
		return i
	}
	s.competitors = append(s.competitors, model.NewCompetitor(name, key))
	i := len(s.competitors) - 1
	s.competitorIdx[key] = i
	return i
}

// upsertEvent returns the arena index for an event key, creating the
// accumulator on first reference.
func (s *Store) upsertEvent(name, key string) int {
	if i, ok := s.eventIdx[key]; ok {
		return i
	}
	s.events = append(s.events, model.NewEvent(name, key))
	i := len(s.events) - 1
	s.eventIdx[key] = i
	return i
}

// applySide applies one match to one competitor's accumulator. own is the
// competitor's sub-record, opp the opponent's.
func (s *Store) applySide(ci int, m model.Match, matchIdx int, won bool, own, opp model.Side) {
	c := s.competitors[ci]

	c.Matches++
	if won {
		c.Wins++
	} else {
		c.Losses++
	}
	c.Minutes += m.Minutes

	// Backfill identity fields the first time a row carries them.
	if c.Country == "" && own.Country != "" {
		c.Country = own.Country
	}

	if own.Ranked() {
		if c.BestRank == 0 || own.Rank < c.BestRank {
			c.BestRank = own.Rank
			c.BestRankDate = m.DateKey
		}
		// Last write wins by date: a same-date observation seen later in
		// ingestion order overwrites the earlier one (non-strict >=).
		if m.DateKey >= c.CurrentRankDate {
			c.CurrentRank = own.Rank
			c.CurrentRankDate = m.DateKey
			c.CurrentPoints = own.Points
		}
	}

	sw := c.BySurface[m.Surface]
	sw.Add(won)
	c.BySurface[m.Surface] = sw

	cw := c.ByCategory[m.Category]
	cw.Add(won)
	c.ByCategory[m.Category] = cw

	er := &c.EventStats[c.UpsertEventRollup(m.EventKey, m.EventName)]
	er.Matches++
	if won {
		er.Wins++
	} else {
		er.Losses++
	}
	if er.BestRound == "" || model.BetterRound(m.Round, er.BestRound) {
		er.BestRound = m.Round
	}
	if m.Final() {
		c.Finals++
		if won {
			er.Titles++
			c.Titles++
			c.TitlesByCategory[m.Category]++
		}
	}

	or := &c.Opponents[c.UpsertOpponentRollup(opp.Key, opp.Name)]
	or.Meetings++
	if won {
		or.Wins++
	} else {
		or.Losses++
	}
	if m.DateKey >= or.LastDateKey {
		or.LastDateKey = m.DateKey
		or.LastEvent = m.EventName
		or.LastScore = m.Score
		if won {
			or.LastResult = "W"
		} else {
			or.LastResult = "L"
		}
	}

	c.MatchRefs = append(c.MatchRefs, matchIdx)
}

// applyEvent applies one match to its event accumulator, once per match.
func (s *Store) applyEvent(m model.Match) {
	e := s.events[s.upsertEvent(m.EventName, m.EventKey)]

	e.MatchCount++
	if m.EventID != "" {
		e.Editions[m.EventID] = struct{}{}
	}
	e.Participants[m.Winner.Key] = struct{}{}
	e.Participants[m.Loser.Key] = struct{}{}
	e.SurfaceFreq[m.Surface]++
	e.CategoryFreq[m.Category]++

	year := m.Year()
	if e.FirstYear == 0 || year < e.FirstYear {
		e.FirstYear = year
	}
	if year > e.LastYear {
		e.LastYear = year
	}

	if m.Final() {
		e.TitleCounts[m.Winner.Key]++
		e.ChampionName[m.Winner.Key] = m.Winner.Name
		e.Finals = append(e.Finals, model.FinalSummary{
			DateKey:    m.DateKey,
			Year:       year,
			WinnerKey:  m.Winner.Key,
			WinnerName: m.Winner.Name,
			LoserKey:   m.Loser.Key,
			LoserName:  m.Loser.Name,
			Score:      m.Score,
		})
	}
}

// Matches returns the global match list, in canonical order after
// Finalize has run.
func (s *Store) Matches() []model.Match { return s.matches }

// Match returns the match at a global index.
func (s *Store) Match(i int) model.Match { return s.matches[i] }

// Competitor resolves a competitor by normalized key.
func (s *Store) Competitor(key string) (*model.Competitor, bool) {
	i, ok := s.competitorIdx[key]
	if !ok {
		return nil, false
	}
	return s.competitors[i], true
}

// Competitors returns every competitor accumulator.
func (s *Store) Competitors() []*model.Competitor { return s.competitors }

// Event resolves an event by normalized key.
func (s *Store) Event(key string) (*model.Event, bool) {
	i, ok := s.eventIdx[key]
	if !ok {
		return nil, false
	}
	return s.events[i], true
}

// Events returns every event accumulator.
func (s *Store) Events() []*model.Event { return s.events }

// Counts returns (matches, competitors, events) for status reporting.
func (s *Store) Counts() (int, int, int) {
	return len(s.matches), len(s.competitors), len(s.events)
}

// Finalized reports whether the finalize pass has run.
func (s *Store) Finalized() bool { return s.finalized }
