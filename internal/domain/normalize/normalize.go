// Package normalize converts raw tabular rows into canonical Match records.
//
// A row that fails structural validation (missing competitor name,
// unparseable date) yields no Match and no error: partial datasets are
// expected and normal, so rejection is a silent skip counted by the caller.
package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/courtstats/courtstats/internal/domain/model"
)

// Row field names, matching the per-season tabular source schema.
const (
	FieldEventID    = "tourney_id"
	FieldEventName  = "tourney_name"
	FieldSurface    = "surface"
	FieldIndoor     = "indoor"
	FieldLevel      = "tourney_level"
	FieldDrawSize   = "draw_size"
	FieldDate       = "tourney_date"
	FieldRound      = "round"
	FieldBestOf     = "best_of"
	FieldMinutes    = "minutes"
	FieldScore      = "score"
	FieldWinnerName = "winner_name"
	FieldWinnerID   = "winner_id"
	FieldWinnerIOC  = "winner_ioc"
	FieldWinnerRank = "winner_rank"
	FieldWinnerPts  = "winner_rank_points"
	FieldLoserName  = "loser_name"
	FieldLoserID    = "loser_id"
	FieldLoserIOC   = "loser_ioc"
	FieldLoserRank  = "loser_rank"
	FieldLoserPts   = "loser_rank_points"
)

const dateLayout = "20060102"

// RawRow is one raw record of named text fields.
type RawRow map[string]string

// Get returns the trimmed value of a field, "" when absent.
func (r RawRow) Get(field string) string {
	return strings.TrimSpace(r[field])
}

// Profile is one competitor-metadata manifest entry, keyed by normalized
// name and used only to backfill country and presentation fields.
type Profile struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	Image   string `json:"image"`
	URL     string `json:"url"`
}

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithProfiles installs the competitor metadata used for country and
// image backfill.
func WithProfiles(profiles []Profile) Option {
	return func(n *Normalizer) {
		for _, p := range profiles {
			n.profiles[Key(p.Name)] = p
		}
	}
}

// Normalizer turns raw rows into canonical Match records.
type Normalizer struct {
	profiles map[string]Profile
}

// New creates a Normalizer with configuration options.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{profiles: make(map[string]Profile)}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Profile returns the metadata entry for a normalized key, if any.
func (n *Normalizer) Profile(key string) (Profile, bool) {
	p, ok := n.profiles[key]
	return p, ok
}

// Normalize converts one raw row into a Match. The second return value is
// false when the row is structurally invalid and must be skipped.
func (n *Normalizer) Normalize(row RawRow) (model.Match, bool) {
	winnerName := row.Get(FieldWinnerName)
	loserName := row.Get(FieldLoserName)
	if winnerName == "" || loserName == "" {
		return model.Match{}, false
	}

	dateKey, ok := parseDateKey(row.Get(FieldDate))
	if !ok {
		return model.Match{}, false
	}

	eventName := row.Get(FieldEventName)
	m := model.Match{
		EventID:   row.Get(FieldEventID),
		EventName: eventName,
		EventKey:  Key(eventName),
		Category:  model.ParseCategory(row.Get(FieldLevel), eventName),
		Surface:   model.ParseSurface(row.Get(FieldSurface), parseBool(row.Get(FieldIndoor))),
		DateKey:   dateKey,
		Round:     strings.ToUpper(row.Get(FieldRound)),
		BestOf:    parseInt(row.Get(FieldBestOf)),
		Minutes:   parseInt(row.Get(FieldMinutes)),
		Score:     row.Get(FieldScore),
		Winner:    n.side(row, winnerName, FieldWinnerIOC, FieldWinnerRank, FieldWinnerPts),
		Loser:     n.side(row, loserName, FieldLoserIOC, FieldLoserRank, FieldLoserPts),
	}
	m.ID = matchID(m)
	return m, true
}

// side builds one competitor sub-record, resolving the country code with
// precedence: explicit row code, metadata lookup, empty.
func (n *Normalizer) side(row RawRow, name, iocField, rankField, ptsField string) model.Side {
	key := Key(name)
	country := row.Get(iocField)
	if country == "" {
		if p, ok := n.profiles[key]; ok {
			country = p.Country
		}
	}
	return model.Side{
		Name:    name,
		Key:     key,
		Country: strings.ToUpper(country),
		Rank:    parseInt(row.Get(rankField)),
		Points:  parseInt(row.Get(ptsField)),
	}
}

// matchID derives a stable identifier from the fields that make a match
// unique within a dataset. SHA1-based UUIDs keep reloads bit-identical.
func matchID(m model.Match) string {
	seed := m.EventID + "|" + strconv.Itoa(m.DateKey) + "|" + m.Round + "|" + m.Winner.Key + "|" + m.Loser.Key
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(seed)).String()
}

func parseDateKey(s string) (int, bool) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return 0, false
	}
	return t.Year()*10000 + int(t.Month())*100 + t.Day(), true
}

// parseInt parses a non-negative integer field; unparsable values are
// absent (0), never an error.
func parseInt(s string) int {
	if s == "" {
		return 0
	}
	// Sources occasionally carry ranks as "32.0".
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "t", "yes", "y":
		return true
	}
	return false
}
