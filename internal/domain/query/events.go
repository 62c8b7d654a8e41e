package query

import (
	"sort"
	"strings"

	"github.com/courtstats/courtstats/internal/adapters/repository"
	"github.com/courtstats/courtstats/internal/domain/model"
	"github.com/courtstats/courtstats/internal/domain/normalize"
)

// EventFilter narrows the event listing. Zero values and FilterAll are
// no-op predicates; Year matches any event whose edition range covers it.
type EventFilter struct {
	Category string
	Surface  string
	Year     int
	Name     string // substring over the normalized event name
}

// EventSummary is the listing projection of an event.
type EventSummary struct {
	Key             string `json:"key"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	Surface         string `json:"surface"`
	MatchCount      int    `json:"matches"`
	EditionCount    int    `json:"editions"`
	CompetitorCount int    `json:"competitors"`
	FirstYear       int    `json:"first_year"`
	LastYear        int    `json:"last_year"`
}

// EventDetail adds champions and recent finals to the summary.
type EventDetail struct {
	EventSummary
	Champions    []model.Champion     `json:"champions"`
	RecentFinals []model.FinalSummary `json:"recent_finals"`
}

// ListEvents returns events satisfying every filter predicate, ordered by
// match count descending then name ascending.
func ListEvents(s *repository.Store, f EventFilter) ([]EventSummary, error) {
	category, categorySet, err := parseCategoryFilter(f.Category)
	if err != nil {
		return nil, err
	}
	surface, surfaceSet, err := parseSurfaceFilter(f.Surface)
	if err != nil {
		return nil, err
	}
	name := normalize.Key(f.Name)
	if f.Name == FilterAll {
		name = ""
	}

	var out []EventSummary
	for _, e := range s.Events() {
		if categorySet && e.PrimaryCategory != category {
			continue
		}
		if surfaceSet && e.PrimarySurface != surface {
			continue
		}
		if f.Year != 0 && (f.Year < e.FirstYear || f.Year > e.LastYear) {
			continue
		}
		if name != "" && !strings.Contains(e.Key, name) {
			continue
		}
		out = append(out, summarizeEvent(e))
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].MatchCount != out[j].MatchCount {
			return out[i].MatchCount > out[j].MatchCount
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Event returns the detail view of one event: top champions by title
// count, finals newest-first, and the edition year range. topChampions
// and recentFinals cap the respective lists; <= 0 returns all.
func Event(s *repository.Store, key string, topChampions, recentFinals int) (EventDetail, error) {
	e, ok := s.Event(key)
	if !ok {
		return EventDetail{}, repository.ErrEventNotFound
	}

	champions := e.Champions
	if topChampions > 0 && len(champions) > topChampions {
		champions = champions[:topChampions]
	}
	finals := e.Finals
	if recentFinals > 0 && len(finals) > recentFinals {
		finals = finals[:recentFinals]
	}

	return EventDetail{
		EventSummary: summarizeEvent(e),
		Champions:    champions,
		RecentFinals: finals,
	}, nil
}

func summarizeEvent(e *model.Event) EventSummary {
	return EventSummary{
		Key:             e.Key,
		Name:            e.Name,
		Category:        e.PrimaryCategory.String(),
		Surface:         e.PrimarySurface.String(),
		MatchCount:      e.MatchCount,
		EditionCount:    e.EditionCount,
		CompetitorCount: e.CompetitorCount,
		FirstYear:       e.FirstYear,
		LastYear:        e.LastYear,
	}
}
