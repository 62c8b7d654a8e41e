// Package model contains domain models passed between layers.
package model

import "strings"

// Category classifies an event by its competitive tier.
type Category int

// Categories in declaration order; this order doubles as the tie-break
// when two categories are equally frequent for an event.
const (
	CategoryGrandSlam Category = iota
	CategoryMasters1000
	CategoryTour500
	CategoryTour250
	CategoryTour125
	CategoryFinals
	CategoryOther

	categoryCount
)

var categoryNames = [...]string{
	CategoryGrandSlam:   "grand-slam",
	CategoryMasters1000: "masters-1000",
	CategoryTour500:     "tour-500",
	CategoryTour250:     "tour-250",
	CategoryTour125:     "tour-125",
	CategoryFinals:      "finals",
	CategoryOther:       "other",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "other"
	}
	return categoryNames[c]
}

// Categories returns all categories in declaration order.
func Categories() []Category {
	out := make([]Category, 0, categoryCount)
	for c := Category(0); c < categoryCount; c++ {
		out = append(out, c)
	}
	return out
}

// CategoryFromString resolves a category label, e.g. from a query filter.
func CategoryFromString(s string) (Category, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for c := Category(0); c < categoryCount; c++ {
		if categoryNames[c] == s {
			return c, true
		}
	}
	return CategoryOther, false
}

// ParseCategory infers a category from a source level code, falling back
// to keyword matching on the event name for codes that are ambiguous.
func ParseCategory(level, eventName string) Category {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "G":
		return CategoryGrandSlam
	case "M":
		return CategoryMasters1000
	case "F":
		return CategoryFinals
	case "C":
		return CategoryTour125
	}
	name := strings.ToLower(eventName)
	switch {
	case strings.Contains(name, "finals"):
		return CategoryFinals
	case strings.Contains(name, "500"):
		return CategoryTour500
	case strings.Contains(name, "250"):
		return CategoryTour250
	case strings.Contains(name, "125") || strings.Contains(name, "challenger"):
		return CategoryTour125
	}
	return CategoryOther
}

// Surface classifies the playing surface of a match.
type Surface int

// Surfaces in declaration order; the order is the tie-break for an
// event's primary surface.
const (
	SurfaceHard Surface = iota
	SurfaceClay
	SurfaceGrass
	SurfaceIndoor
	SurfaceCarpet

	surfaceCount
)

var surfaceNames = [...]string{
	SurfaceHard:   "hard",
	SurfaceClay:   "clay",
	SurfaceGrass:  "grass",
	SurfaceIndoor: "indoor",
	SurfaceCarpet: "carpet",
}

func (s Surface) String() string {
	if s < 0 || int(s) >= len(surfaceNames) {
		return "hard"
	}
	return surfaceNames[s]
}

// Surfaces returns all surfaces in declaration order.
func Surfaces() []Surface {
	out := make([]Surface, 0, surfaceCount)
	for s := Surface(0); s < surfaceCount; s++ {
		out = append(out, s)
	}
	return out
}

// SurfaceFromString resolves a surface label, e.g. from a query filter.
func SurfaceFromString(s string) (Surface, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for v := Surface(0); v < surfaceCount; v++ {
		if surfaceNames[v] == s {
			return v, true
		}
	}
	return SurfaceHard, false
}

// ParseSurface infers a surface from a source surface code plus the
// indoor flag. Indoor hard courts are their own surface; clay and grass
// stay themselves regardless of the flag.
func ParseSurface(code string, indoor bool) Surface {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "clay":
		return SurfaceClay
	case "grass":
		return SurfaceGrass
	case "carpet":
		return SurfaceCarpet
	default:
		if indoor {
			return SurfaceIndoor
		}
		return SurfaceHard
	}
}

// RoundFinal is the round code of a title match.
const RoundFinal = "F"

// roundRank orders round codes by importance. Higher means deeper in the
// draw. Unknown codes rank below everything known.
var roundRank = map[string]int{
	RoundFinal: 10,
	"BR":       9, // bronze/3rd place
	"SF":       8,
	"QF":       7,
	"R16":      6,
	"RR":       6, // round robin groups sit alongside R16
	"R32":      5,
	"R64":      4,
	"R128":     3,
	"Q3":       2,
	"Q2":       1,
	"Q1":       0,
}

// RoundRank returns the importance rank of a round code; -1 for unknown.
func RoundRank(code string) int {
	if r, ok := roundRank[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return r
	}
	return -1
}

// BetterRound reports whether round a is deeper in the draw than round b.
func BetterRound(a, b string) bool {
	return RoundRank(a) > RoundRank(b)
}

// Side is one competitor's slice of a match record.
type Side struct {
	Name    string `json:"name"`
	Key     string `json:"key"`
	Country string `json:"country"`
	// Rank and Points are 0 when the source row carried no parseable value.
	// Ranks are 1-based, so 0 is unambiguous "absent".
	Rank   int `json:"rank"`
	Points int `json:"points"`
}

// Ranked reports whether this side carried a rank observation.
func (s Side) Ranked() bool { return s.Rank > 0 }

// Match is one historical match, immutable once built by the normalizer.
// Exactly one side won; the Winner/Loser split encodes the result.
type Match struct {
	ID        string   `json:"id"`
	Seq       int      `json:"-"`        // ingestion sequence, set by the store
	EventID   string   `json:"event_id"` // edition id, e.g. "2022-0580"
	EventName string   `json:"event_name"`
	EventKey  string   `json:"event_key"`
	Category  Category `json:"-"`
	Surface   Surface  `json:"-"`
	DateKey   int      `json:"date"` // sortable YYYYMMDD
	Round     string   `json:"round"`
	BestOf    int      `json:"best_of"`
	Minutes   int      `json:"minutes"`
	Score     string   `json:"score"`
	Winner    Side     `json:"winner"`
	Loser     Side     `json:"loser"`
}

// Year extracts the calendar year from the date key.
func (m Match) Year() int { return m.DateKey / 10000 }

// Final reports whether this match decided a title.
func (m Match) Final() bool { return m.Round == RoundFinal }
