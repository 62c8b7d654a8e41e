package model

// WinLoss is a win/loss tally scoped to one breakdown bucket.
type WinLoss struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// Total returns wins plus losses.
func (w WinLoss) Total() int { return w.Wins + w.Losses }

// Add records one result into the tally.
func (w *WinLoss) Add(won bool) {
	if won {
		w.Wins++
	} else {
		w.Losses++
	}
}

// EventRollup summarizes one competitor's history at one event.
type EventRollup struct {
	EventKey  string `json:"event_key"`
	EventName string `json:"event_name"`
	Matches   int    `json:"matches"`
	Wins      int    `json:"wins"`
	Losses    int    `json:"losses"`
	BestRound string `json:"best_round"`
	Titles    int    `json:"titles"`
}

// OpponentRollup summarizes one competitor's head-to-head against one
// opponent. The Last* fields follow last-write-wins by date.
type OpponentRollup struct {
	OpponentKey  string `json:"opponent_key"`
	OpponentName string `json:"opponent_name"`
	Meetings     int    `json:"meetings"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	LastDateKey  int    `json:"last_date"`
	LastResult   string `json:"last_result"` // "W" or "L" from this competitor's view
	LastEvent    string `json:"last_event"`
	LastScore    string `json:"last_score"`
}

// Competitor is the mutable per-competitor accumulator. It is created
// lazily on first reference, mutated monotonically during ingestion, and
// frozen by the finalize pass.
type Competitor struct {
	Name       string `json:"name"`
	Key        string `json:"key"`
	Country    string `json:"country"`
	ImageURL   string `json:"image_url"`
	ProfileURL string `json:"profile_url"`

	Matches int `json:"matches"`
	Wins    int `json:"wins"`
	Losses  int `json:"losses"`
	Titles  int `json:"titles"`
	Finals  int `json:"finals"` // finals reached, won or lost
	Minutes int `json:"minutes"`

	TitlesByCategory map[Category]int `json:"-"`

	BestRank        int `json:"best_rank"` // minimum rank seen; 0 = never ranked
	BestRankDate    int `json:"best_rank_date"`
	CurrentRank     int `json:"current_rank"`
	CurrentRankDate int `json:"current_rank_date"`
	CurrentPoints   int `json:"current_points"`

	BySurface  map[Surface]WinLoss  `json:"-"`
	ByCategory map[Category]WinLoss `json:"-"`

	// Rollups live in flat slices; the index maps give upsert a stable
	// handle without embedding maps of structs.
	EventStats    []EventRollup    `json:"-"`
	EventIndex    map[string]int   `json:"-"`
	Opponents     []OpponentRollup `json:"-"`
	OpponentIndex map[string]int   `json:"-"`

	// MatchRefs are indices into the store's global match list, remapped
	// to canonical order by the finalize pass.
	MatchRefs []int `json:"-"`

	// Derived by the finalize pass.
	WinPct     float64 `json:"win_pct"`
	AvgMinutes float64 `json:"avg_minutes"`
}

// NewCompetitor creates an empty accumulator for a competitor.
func NewCompetitor(name, key string) *Competitor {
	return &Competitor{
		Name:             name,
		Key:              key,
		TitlesByCategory: make(map[Category]int),
		BySurface:        make(map[Surface]WinLoss),
		ByCategory:       make(map[Category]WinLoss),
		EventIndex:       make(map[string]int),
		OpponentIndex:    make(map[string]int),
	}
}

// UpsertEventRollup returns the index of the rollup for the given event,
// creating it on first reference.
func (c *Competitor) UpsertEventRollup(eventKey, eventName string) int {
	if i, ok := c.EventIndex[eventKey]; ok {
		return i
	}
	c.EventStats = append(c.EventStats, EventRollup{EventKey: eventKey, EventName: eventName})
	i := len(c.EventStats) - 1
	c.EventIndex[eventKey] = i
	return i
}

// UpsertOpponentRollup returns the index of the rollup for the given
// opponent, creating it on first reference.
func (c *Competitor) UpsertOpponentRollup(opponentKey, opponentName string) int {
	if i, ok := c.OpponentIndex[opponentKey]; ok {
		return i
	}
	c.Opponents = append(c.Opponents, OpponentRollup{OpponentKey: opponentKey, OpponentName: opponentName})
	i := len(c.Opponents) - 1
	c.OpponentIndex[opponentKey] = i
	return i
}

// FinalSummary is a compact record of one title match at an event.
type FinalSummary struct {
	DateKey    int    `json:"date"`
	Year       int    `json:"year"`
	WinnerKey  string `json:"winner_key"`
	WinnerName string `json:"winner_name"`
	LoserKey   string `json:"loser_key"`
	LoserName  string `json:"loser_name"`
	Score      string `json:"score"`
}

// Champion is a sorted champion-list entry derived by the finalize pass.
type Champion struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	Titles int    `json:"titles"`
}

// Event is the mutable per-tournament accumulator.
type Event struct {
	Name string `json:"name"`
	Key  string `json:"key"`

	MatchCount int `json:"matches"`

	// Raw sets and frequency maps maintained during ingestion.
	Editions     map[string]struct{} `json:"-"`
	Participants map[string]struct{} `json:"-"`
	SurfaceFreq  map[Surface]int     `json:"-"`
	CategoryFreq map[Category]int    `json:"-"`
	TitleCounts  map[string]int      `json:"-"` // champion key -> titles
	ChampionName map[string]string   `json:"-"`

	Finals []FinalSummary `json:"-"`

	FirstYear int `json:"first_year"`
	LastYear  int `json:"last_year"`

	// Derived by the finalize pass.
	EditionCount    int        `json:"editions"`
	CompetitorCount int        `json:"competitors"`
	PrimaryCategory Category   `json:"-"`
	PrimarySurface  Surface    `json:"-"`
	Champions       []Champion `json:"-"` // titles desc, name asc
}

// NewEvent creates an empty accumulator for an event.
func NewEvent(name, key string) *Event {
	return &Event{
		Name:         name,
		Key:          key,
		Editions:     make(map[string]struct{}),
		Participants: make(map[string]struct{}),
		SurfaceFreq:  make(map[Surface]int),
		CategoryFreq: make(map[Category]int),
		TitleCounts:  make(map[string]int),
		ChampionName: make(map[string]string),
	}
}
