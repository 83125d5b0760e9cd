package main

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"draughts/experiments"
	"draughts/meta"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	mode := flag.String("mode", "selfplay", "selfplay or throughput")
	games := flag.Int("games", meta.GAMES, "Number of games to play")
	workers := flag.Int("workers", meta.WORKERS, "Number of goroutines playing games")
	sweep := flag.String("sweep", "1,2,4,8", "Worker counts for the throughput experiment")
	seed := flag.Uint64("seed", 1, "Seed for the random agents")
	maxPlies := flag.Int("max-plies", meta.MAX_PLIES, "Ply cap per game")
	outDir := flag.String("out", meta.OUT_DIR, "Output directory for records")
	parquet := flag.Bool("parquet", false, "Store per-move training samples as parquet")
	noMetrics := flag.Bool("no-metrics", false, "Skip throughput collection")
	debug := flag.Bool("debug", false, "Log every move")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	switch *mode {
	case "selfplay":
		result, err := experiments.RunSelfPlay(experiments.Config{
			Name:      "selfplay",
			Games:     *games,
			Workers:   *workers,
			Seed:      *seed,
			MaxPlies:  *maxPlies,
			OutDir:    *outDir,
			Parquet:   *parquet,
			NoMetrics: *noMetrics,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("self-play failed")
		}
		log.Info().Msgf("records stored in %s", result.Dir)
	case "throughput":
		counts, err := parseWorkers(*sweep)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid -sweep")
		}
		if _, err := experiments.RunThroughputExperiment(*games, *seed, counts); err != nil {
			log.Fatal().Err(err).Msg("throughput experiment failed")
		}
	default:
		log.Fatal().Msgf("unknown mode %q", *mode)
	}
}

func parseWorkers(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
