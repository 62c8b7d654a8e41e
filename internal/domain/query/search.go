// Package query implements the read-side operations over a finalized
// aggregate store. Every function here is a pure read: given the same
// store snapshot and parameters it returns the same projection, and
// nothing is ever mutated.
package query

import (
	"sort"
	"strings"

	"github.com/courtstats/courtstats/internal/adapters/repository"
	"github.com/courtstats/courtstats/internal/domain/model"
	"github.com/courtstats/courtstats/internal/domain/normalize"
)

// CompetitorSummary is the search projection of a competitor.
type CompetitorSummary struct {
	Key         string  `json:"key"`
	Name        string  `json:"name"`
	Country     string  `json:"country"`
	ImageURL    string  `json:"image_url,omitempty"`
	Matches     int     `json:"matches"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	Titles      int     `json:"titles"`
	WinPct      float64 `json:"win_pct"`
	BestRank    int     `json:"best_rank"`
	CurrentRank int     `json:"current_rank"`
}

// SearchCompetitors returns competitors matching the free-text query.
// Prefix matches on the normalized name rank above substring matches;
// within each tier, ordering is match count descending, then name
// ascending. limit <= 0 returns the full ordered set.
func SearchCompetitors(s *repository.Store, q string, limit int) []CompetitorSummary {
	key := normalize.Key(q)

	var prefix, contains []*model.Competitor
	for _, c := range s.Competitors() {
		switch {
		case key == "" || strings.HasPrefix(c.Key, key):
			prefix = append(prefix, c)
		case strings.Contains(c.Key, key):
			contains = append(contains, c)
		}
	}
	sortTier(prefix)
	sortTier(contains)

	ranked := append(prefix, contains...)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]CompetitorSummary, len(ranked))
	for i, c := range ranked {
		out[i] = summarize(c)
	}
	return out
}

func sortTier(tier []*model.Competitor) {
	sort.Slice(tier, func(i, j int) bool {
		if tier[i].Matches != tier[j].Matches {
			return tier[i].Matches > tier[j].Matches
		}
		return tier[i].Name < tier[j].Name
	})
}

func summarize(c *model.Competitor) CompetitorSummary {
	return CompetitorSummary{
		Key:         c.Key,
		Name:        c.Name,
		Country:     c.Country,
		ImageURL:    c.ImageURL,
		Matches:     c.Matches,
		Wins:        c.Wins,
		Losses:      c.Losses,
		Titles:      c.Titles,
		WinPct:      c.WinPct,
		BestRank:    c.BestRank,
		CurrentRank: c.CurrentRank,
	}
}
