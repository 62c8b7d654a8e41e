package query

import (
	"sort"

	"github.com/courtstats/courtstats/internal/adapters/repository"
	"github.com/courtstats/courtstats/internal/domain/model"
)

// RecordHolder is one competitor holding (or sharing) a record.
type RecordHolder struct {
	Key     string  `json:"key"`
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Value   float64 `json:"value"`
}

// Record is one all-time record with every joint holder at the maximum.
// A record with one holder and a record with five co-holders are both
// first-class results.
type Record struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Rate    bool           `json:"rate"` // rate-based records gate on a min-matches threshold
	Value   float64        `json:"value"`
	Holders []RecordHolder `json:"holders"`
}

// recordDef is one named record definition: an eligibility predicate plus
// the defining metric.
type recordDef struct {
	id     string
	name   string
	rate   bool
	metric func(*model.Competitor) float64
}

func recordDefs() []recordDef {
	return []recordDef{
		{id: "most_titles", name: "Most titles", metric: func(c *model.Competitor) float64 {
			return float64(c.Titles)
		}},
		{id: "most_match_wins", name: "Most match wins", metric: func(c *model.Competitor) float64 {
			return float64(c.Wins)
		}},
		{id: "most_matches", name: "Most matches played", metric: func(c *model.Competitor) float64 {
			return float64(c.Matches)
		}},
		{id: "most_finals", name: "Most finals reached", metric: func(c *model.Competitor) float64 {
			return float64(c.Finals)
		}},
		{id: "most_grand_slam_titles", name: "Most grand slam titles", metric: func(c *model.Competitor) float64 {
			return float64(c.TitlesByCategory[model.CategoryGrandSlam])
		}},
		{id: "most_events_won", name: "Most distinct events won", metric: func(c *model.Competitor) float64 {
			n := 0
			for _, er := range c.EventStats {
				if er.Titles > 0 {
					n++
				}
			}
			return float64(n)
		}},
		{id: "best_win_pct", name: "Best win percentage", rate: true, metric: func(c *model.Competitor) float64 {
			return c.WinPct
		}},
	}
}

// Records computes every record definition over the store. Rate-based
// records only consider competitors with at least minRateMatches matches;
// count-based records have no threshold. Every competitor tied at the
// maximum is returned as a joint holder.
func Records(s *repository.Store, minRateMatches int) []Record {
	defs := recordDefs()
	out := make([]Record, 0, len(defs))
	for _, def := range defs {
		out = append(out, computeRecord(s, def, minRateMatches))
	}
	return out
}

func computeRecord(s *repository.Store, def recordDef, minRateMatches int) Record {
	rec := Record{ID: def.id, Name: def.name, Rate: def.rate}

	best := -1.0
	for _, c := range s.Competitors() {
		if def.rate && c.Matches < minRateMatches {
			continue
		}
		if v := def.metric(c); v > best {
			best = v
		}
	}
	if best < 0 {
		// No eligible competitor at all.
		return rec
	}
	rec.Value = best

	for _, c := range s.Competitors() {
		if def.rate && c.Matches < minRateMatches {
			continue
		}
		if def.metric(c) == best {
			rec.Holders = append(rec.Holders, RecordHolder{
				Key:     c.Key,
				Name:    c.Name,
				Country: c.Country,
				Value:   best,
			})
		}
	}
	sort.Slice(rec.Holders, func(i, j int) bool {
		return rec.Holders[i].Name < rec.Holders[j].Name
	})
	return rec
}
