// Package datagen emits synthetic season datasets (manifest, competitor
// metadata, per-season CSV files) for local development and load testing.
// Output is deterministic for a given seed so generated fixtures can be
// committed and reloaded bit-identically.
package datagen

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/courtstats/courtstats/internal/adapters/source"
	"github.com/courtstats/courtstats/internal/domain/normalize"
)

// Default generation constants.
const (
	defaultSeed          = 42
	defaultCompetitors   = 64
	defaultEventsPerYear = 12
	filePermission       = 0o644
)

var levels = []string{"G", "M", "A", "A", "A"}
var surfaces = []string{"Hard", "Clay", "Grass", "Hard"}
var givenNames = []string{
	"Alex", "Bruno", "Carlos", "Daniil", "Emil", "Felix", "Grigor", "Holger",
	"Ilya", "Jan", "Karen", "Lorenzo", "Marin", "Nikoloz", "Oscar", "Pablo",
}
var familyNames = []string{
	"Almagro", "Bautista", "Carreno", "Dimitrov", "Evans", "Fritz", "Garin",
	"Hurkacz", "Isner", "Johnson", "Khachanov", "Lajovic", "Monfils", "Norrie",
	"Opelka", "Paul",
}
var countries = []string{"ESP", "SRB", "USA", "FRA", "ITA", "RUS", "GER", "ARG"}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSeed sets the random seed.
func WithSeed(seed int64) Option {
	return func(g *Generator) { g.seed = seed }
}

// WithCompetitors sets the size of the competitor pool.
func WithCompetitors(n int) Option {
	return func(g *Generator) {
		if n > 1 {
			g.competitors = n
		}
	}
}

// WithEventsPerYear sets how many events each season carries.
func WithEventsPerYear(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.eventsPerYear = n
		}
	}
}

// Generator produces one synthetic dataset.
type Generator struct {
	seed          int64
	competitors   int
	eventsPerYear int
}

// New creates a Generator with configuration options.
func New(opts ...Option) *Generator {
	g := &Generator{
		seed:          defaultSeed,
		competitors:   defaultCompetitors,
		eventsPerYear: defaultEventsPerYear,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type player struct {
	id      string
	name    string
	country string
	rank    int
	points  int
}

// Generate writes a dataset covering the given year range into dir.
func (g *Generator) Generate(dir string, firstYear, lastYear int) error {
	if lastYear < firstYear {
		return fmt.Errorf("invalid year range %d-%d", firstYear, lastYear)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	rng := rand.New(rand.NewSource(g.seed)) //nolint:gosec // deterministic fixtures, not crypto

	players := g.makePlayers(rng)
	if err := writePlayers(dir, players); err != nil {
		return err
	}

	var manifest []source.Season
	for year := firstYear; year <= lastYear; year++ {
		name := fmt.Sprintf("season %d", year)
		path := fmt.Sprintf("matches_%d.csv", year)
		if err := g.writeSeason(filepath.Join(dir, path), rng, players, year); err != nil {
			return err
		}
		manifest = append(manifest, source.Season{Year: year, Name: name, Path: path})
	}

	raw, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "seasons.json"), raw, filePermission); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

func (g *Generator) makePlayers(rng *rand.Rand) []player {
	players := make([]player, g.competitors)
	for i := range players {
		name := givenNames[i%len(givenNames)] + " " + familyNames[(i/len(givenNames))%len(familyNames)]
		if i >= len(givenNames)*len(familyNames) {
			name = fmt.Sprintf("%s %d", name, i)
		}
		players[i] = player{
			id:      uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String(),
			name:    name,
			country: countries[rng.Intn(len(countries))],
			rank:    i + 1,
			points:  100 * (g.competitors - i),
		}
	}
	return players
}

func writePlayers(dir string, players []player) error {
	profiles := make([]normalize.Profile, len(players))
	for i, p := range players {
		profiles[i] = normalize.Profile{
			Name:    p.name,
			Country: p.country,
			Image:   "https://img.example.com/" + normalize.Key(p.name) + ".jpg",
			URL:     "https://example.com/players/" + normalize.Key(p.name),
		}
	}
	raw, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("encode players: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "players.json"), raw, filePermission); err != nil {
		return fmt.Errorf("write players: %w", err)
	}
	return nil
}

// writeSeason emits one season CSV: a single-elimination bracket per event
// with plausible dates, rounds, and scores.
func (g *Generator) writeSeason(path string, rng *rand.Rand, players []player, year int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create season file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		normalize.FieldEventID, normalize.FieldEventName, normalize.FieldSurface,
		normalize.FieldIndoor, normalize.FieldLevel, normalize.FieldDrawSize,
		normalize.FieldDate, normalize.FieldRound, normalize.FieldBestOf,
		normalize.FieldMinutes, normalize.FieldScore,
		normalize.FieldWinnerName, normalize.FieldWinnerID, normalize.FieldWinnerIOC,
		normalize.FieldWinnerRank, normalize.FieldWinnerPts,
		normalize.FieldLoserName, normalize.FieldLoserID, normalize.FieldLoserIOC,
		normalize.FieldLoserRank, normalize.FieldLoserPts,
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for ev := 0; ev < g.eventsPerYear; ev++ {
		eventID := fmt.Sprintf("%d-%03d", year, ev+1)
		eventName := fmt.Sprintf("Open %03d", ev+1)
		level := levels[ev%len(levels)]
		surf := surfaces[ev%len(surfaces)]
		month := ev%11 + 1
		date := year*10000 + month*100 + rng.Intn(21) + 1

		// Draw of 16: rounds R16, QF, SF, F.
		entrants := rng.Perm(len(players))[:16]
		rounds := []struct {
			code string
			n    int
		}{{"R16", 8}, {"QF", 4}, {"SF", 2}, {"F", 1}}
		for _, round := range rounds {
			var next []int
			for i := 0; i < round.n; i++ {
				a, b := players[entrants[2*i]], players[entrants[2*i+1]]
				winner, loser := a, b
				if rng.Intn(3) == 0 { // upsets happen
					winner, loser = b, a
				}
				rec := []string{
					eventID, eventName, surf, "0", level, "16",
					strconv.Itoa(date), round.code, "3",
					strconv.Itoa(60 + rng.Intn(150)), score(rng),
					winner.name, winner.id, winner.country,
					strconv.Itoa(winner.rank), strconv.Itoa(winner.points),
					loser.name, loser.id, loser.country,
					strconv.Itoa(loser.rank), strconv.Itoa(loser.points),
				}
				if err := w.Write(rec); err != nil {
					return fmt.Errorf("write record: %w", err)
				}
				if winner.name == a.name {
					next = append(next, entrants[2*i])
				} else {
					next = append(next, entrants[2*i+1])
				}
			}
			entrants = next
			date++ // each round a day later
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush season file: %w", err)
	}
	return nil
}

func score(rng *rand.Rand) string {
	sets := []string{"6-4 6-3", "7-5 6-4", "6-2 3-6 6-4", "7-6 6-7 7-5", "6-1 6-0"}
	return sets[rng.Intn(len(sets))]
}
