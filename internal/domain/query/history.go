package query

import (
	"fmt"
	"strings"

	"github.com/courtstats/courtstats/internal/adapters/repository"
	"github.com/courtstats/courtstats/internal/domain/model"
	"github.com/courtstats/courtstats/internal/domain/normalize"
)

// FilterAll is the no-op value for string filter predicates.
const FilterAll = "all"

// HistoryFilter narrows a competitor's match history. Zero values and
// FilterAll are no-op predicates.
type HistoryFilter struct {
	Year     int
	Surface  string
	Category string
	Result   string // "w" or "l", competitor-relative
	Text     string // free text over opponent and event names
}

// MatchView is one match projected from a competitor's perspective.
type MatchView struct {
	MatchID         string `json:"match_id"`
	DateKey         int    `json:"date"`
	Year            int    `json:"year"`
	EventKey        string `json:"event_key"`
	EventName       string `json:"event_name"`
	Category        string `json:"category"`
	Surface         string `json:"surface"`
	Round           string `json:"round"`
	Result          string `json:"result"` // "W" or "L"
	Score           string `json:"score"`
	BestOf          int    `json:"best_of"`
	Minutes         int    `json:"minutes"`
	OwnRank         int    `json:"own_rank"`
	OpponentKey     string `json:"opponent_key"`
	OpponentName    string `json:"opponent_name"`
	OpponentCountry string `json:"opponent_country"`
	OpponentRank    int    `json:"opponent_rank"`
}

// MatchHistory returns the competitor's matches satisfying every filter
// predicate, newest-first.
func MatchHistory(s *repository.Store, key string, f HistoryFilter) ([]MatchView, error) {
	c, ok := s.Competitor(key)
	if !ok {
		return nil, repository.ErrCompetitorNotFound
	}

	surface, surfaceSet, err := parseSurfaceFilter(f.Surface)
	if err != nil {
		return nil, err
	}
	category, categorySet, err := parseCategoryFilter(f.Category)
	if err != nil {
		return nil, err
	}
	result := parseResultFilter(f.Result)
	text := normalize.Key(f.Text)
	if f.Text == FilterAll {
		text = ""
	}

	out := make([]MatchView, 0, len(c.MatchRefs))
	for _, ref := range c.MatchRefs {
		m := s.Match(ref)
		v := projectMatch(m, key)

		if f.Year != 0 && v.Year != f.Year {
			continue
		}
		if surfaceSet && m.Surface != surface {
			continue
		}
		if categorySet && m.Category != category {
			continue
		}
		if result != "" && v.Result != result {
			continue
		}
		if text != "" &&
			!strings.Contains(v.OpponentKey, text) &&
			!strings.Contains(m.EventKey, text) {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// projectMatch flips a winner/loser record into the competitor-relative view.
func projectMatch(m model.Match, key string) MatchView {
	own, opp := m.Winner, m.Loser
	result := "W"
	if m.Loser.Key == key {
		own, opp = m.Loser, m.Winner
		result = "L"
	}
	return MatchView{
		MatchID:         m.ID,
		DateKey:         m.DateKey,
		Year:            m.Year(),
		EventKey:        m.EventKey,
		EventName:       m.EventName,
		Category:        m.Category.String(),
		Surface:         m.Surface.String(),
		Round:           m.Round,
		Result:          result,
		Score:           m.Score,
		BestOf:          m.BestOf,
		Minutes:         m.Minutes,
		OwnRank:         own.Rank,
		OpponentKey:     opp.Key,
		OpponentName:    opp.Name,
		OpponentCountry: opp.Country,
		OpponentRank:    opp.Rank,
	}
}

func parseSurfaceFilter(s string) (model.Surface, bool, error) {
	if s == "" || strings.EqualFold(s, FilterAll) {
		return 0, false, nil
	}
	surface, ok := model.SurfaceFromString(s)
	if !ok {
		return 0, false, fmt.Errorf("%w: surface %q", ErrBadFilter, s)
	}
	return surface, true, nil
}

func parseCategoryFilter(s string) (model.Category, bool, error) {
	if s == "" || strings.EqualFold(s, FilterAll) {
		return 0, false, nil
	}
	category, ok := model.CategoryFromString(s)
	if !ok {
		return 0, false, fmt.Errorf("%w: category %q", ErrBadFilter, s)
	}
	return category, true, nil
}

func parseResultFilter(s string) string {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "W", "WIN", "WINS":
		return "W"
	case "L", "LOSS", "LOSSES":
		return "L"
	}
	return ""
}
