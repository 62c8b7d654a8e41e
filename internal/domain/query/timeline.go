package query

import (
	"github.com/courtstats/courtstats/internal/adapters/repository"
)

// TimelinePoint is one collapsed ranking observation.
type TimelinePoint struct {
	DateKey      int    `json:"date"`
	Rank         int    `json:"rank"`
	Points       int    `json:"points"`
	EventName    string `json:"event_name"`
	Round        string `json:"round"`
	Result       string `json:"result"`
	OpponentName string `json:"opponent_name"`
	// Delta is the signed change from the immediately preceding point in
	// time order; positive means the rank number rose (a drop in standing).
	Delta int `json:"delta"`
}

// Timeline is a competitor's ranking-over-time projection.
type Timeline struct {
	Points      []TimelinePoint `json:"points"`
	BestRank    int             `json:"best_rank"`
	WorstRank   int             `json:"worst_rank"`
	CurrentRank int             `json:"current_rank"`
	// BiggestRise is the single largest negative delta (standing improved)
	// and BiggestDrop the largest positive one; nil when no such delta
	// exists in the walked range.
	BiggestRise *TimelinePoint `json:"biggest_rise,omitempty"`
	BiggestDrop *TimelinePoint `json:"biggest_drop,omitempty"`
}

// RankingTimeline walks the competitor's matches oldest-first, keeps only
// matches carrying a rank observation, collapses consecutive observations
// sharing the same date and rank into one point (keeping the maximum
// rank-points value seen), and derives per-point deltas plus summary
// extremes.
func RankingTimeline(s *repository.Store, key string) (Timeline, error) {
	c, ok := s.Competitor(key)
	if !ok {
		return Timeline{}, repository.ErrCompetitorNotFound
	}

	var points []TimelinePoint
	// MatchRefs are canonical newest-first; walk them backwards.
	for i := len(c.MatchRefs) - 1; i >= 0; i-- {
		m := s.Match(c.MatchRefs[i])
		v := projectMatch(m, key)
		if v.OwnRank <= 0 {
			continue
		}
		pts := m.Winner.Points
		if v.Result == "L" {
			pts = m.Loser.Points
		}
		if n := len(points); n > 0 && points[n-1].DateKey == v.DateKey && points[n-1].Rank == v.OwnRank {
			if pts > points[n-1].Points {
				points[n-1].Points = pts
			}
			continue
		}
		points = append(points, TimelinePoint{
			DateKey:      v.DateKey,
			Rank:         v.OwnRank,
			Points:       pts,
			EventName:    v.EventName,
			Round:        v.Round,
			Result:       v.Result,
			OpponentName: v.OpponentName,
		})
	}

	t := Timeline{Points: points}
	var rise, drop *TimelinePoint
	for i := range points {
		p := &points[i]
		if i > 0 {
			p.Delta = p.Rank - points[i-1].Rank
			if p.Delta < 0 && (rise == nil || p.Delta < rise.Delta) {
				rise = p
			}
			if p.Delta > 0 && (drop == nil || p.Delta > drop.Delta) {
				drop = p
			}
		}
		if t.BestRank == 0 || p.Rank < t.BestRank {
			t.BestRank = p.Rank
		}
		if p.Rank > t.WorstRank {
			t.WorstRank = p.Rank
		}
	}
	if n := len(points); n > 0 {
		t.CurrentRank = points[n-1].Rank
	}
	if rise != nil {
		riseCopy := *rise
		t.BiggestRise = &riseCopy
	}
	if drop != nil {
		dropCopy := *drop
		t.BiggestDrop = &dropCopy
	}
	return t, nil
}
