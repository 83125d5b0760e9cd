package experiments

import (
	"fmt"

	"draughts/experiments/metrics"

	"github.com/rs/zerolog/log"
)

// RunThroughputExperiment plays the same batch of games with an increasing
// number of workers and reports the move rate of each run.
func RunThroughputExperiment(games int, seed uint64, workers []int) ([]metrics.ThroughputMetric, error) {
	var out []metrics.ThroughputMetric

	log.Info().Msg("starting throughput experiment...")

	for _, w := range workers {
		result, err := RunSelfPlay(Config{
			Name:    fmt.Sprintf("throughput_%d", w),
			Games:   games,
			Workers: w,
			Seed:    seed,
		})
		if err != nil {
			return out, err
		}
		out = append(out, result.Throughput)
		log.Info().Msgf("workers=%d: %.0f plies/s", w, result.Throughput.PliesPerSecond())
	}

	log.Info().Msg("completed throughput experiment")
	return out, nil
}
