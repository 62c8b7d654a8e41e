package query

import (
	"sort"

	"github.com/courtstats/courtstats/internal/adapters/repository"
)

// Rivalry is one ranked head-to-head summary.
type Rivalry struct {
	OpponentKey  string  `json:"opponent_key"`
	OpponentName string  `json:"opponent_name"`
	Meetings     int     `json:"meetings"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	WinPct       float64 `json:"win_pct"`
	LastDateKey  int     `json:"last_date"`
	LastResult   string  `json:"last_result"`
	LastEvent    string  `json:"last_event"`
	LastScore    string  `json:"last_score"`
}

// Rivalries returns the competitor's opponent rollups ranked by total
// meetings, then head-to-head win percentage, then opponent name, capped
// at limit (limit <= 0 returns all).
func Rivalries(s *repository.Store, key string, limit int) ([]Rivalry, error) {
	c, ok := s.Competitor(key)
	if !ok {
		return nil, repository.ErrCompetitorNotFound
	}

	out := make([]Rivalry, 0, len(c.Opponents))
	for _, r := range c.Opponents {
		pct := 0.0
		if r.Meetings > 0 {
			pct = float64(r.Wins) / float64(r.Meetings) * 100
		}
		out = append(out, Rivalry{
			OpponentKey:  r.OpponentKey,
			OpponentName: r.OpponentName,
			Meetings:     r.Meetings,
			Wins:         r.Wins,
			Losses:       r.Losses,
			WinPct:       pct,
			LastDateKey:  r.LastDateKey,
			LastResult:   r.LastResult,
			LastEvent:    r.LastEvent,
			LastScore:    r.LastScore,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Meetings != out[j].Meetings {
			return out[i].Meetings > out[j].Meetings
		}
		if out[i].WinPct != out[j].WinPct {
			return out[i].WinPct > out[j].WinPct
		}
		return out[i].OpponentName < out[j].OpponentName
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
