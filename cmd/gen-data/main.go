package main

import (
	"flag"
	"os"

	"github.com/courtstats/courtstats/internal/datagen"
)

// Default generation constants.
const (
	defaultFirstYear   = 2018
	defaultLastYear    = 2024
	defaultSeed        = 42
	defaultCompetitors = 64
	defaultEvents      = 12
)

func main() {
	var (
		dir         = flag.String("dir", "data", "Output directory for the generated dataset")
		firstYear   = flag.Int("from", defaultFirstYear, "First season year")
		lastYear    = flag.Int("to", defaultLastYear, "Last season year")
		seed        = flag.Int64("seed", defaultSeed, "Random seed (same seed, same dataset)")
		competitors = flag.Int("competitors", defaultCompetitors, "Size of the competitor pool")
		events      = flag.Int("events", defaultEvents, "Events per season")
	)
	flag.Parse()

	g := datagen.New(
		datagen.WithSeed(*seed),
		datagen.WithCompetitors(*competitors),
		datagen.WithEventsPerYear(*events),
	)
	if err := g.Generate(*dir, *firstYear, *lastYear); err != nil {
		os.Stderr.WriteString("generate dataset failed: " + err.Error() + "\n")
		os.Exit(1)
	}
	os.Stdout.WriteString("dataset written to " + *dir + "\n")
}
