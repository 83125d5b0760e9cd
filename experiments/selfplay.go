package experiments

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"draughts/agent"
	"draughts/engine"
	"draughts/experiments/metrics"
	"draughts/game"

	"github.com/rs/zerolog/log"
)

type Config struct {
	Name      string
	Games     int
	Workers   int
	Seed      uint64
	MaxPlies  int
	OutDir    string // Records are only stored when set
	Parquet   bool   // Also store per-move training samples
	NoMetrics bool   // Skip throughput collection
}

type Result struct {
	Games      []metrics.GameRecord
	Moves      []metrics.MoveRecord
	Throughput metrics.ThroughputMetric
	Dir        string
}

type gameResult struct {
	game  metrics.GameMetric
	moves []metrics.MoveMetric
}

// RunSelfPlay plays cfg.Games games between random agents on a pool of
// workers. All games share one catalog. Game i uses seeds derived from
// cfg.Seed and i, so results do not depend on scheduling.
func RunSelfPlay(cfg Config) (Result, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.MaxPlies <= 0 {
		cfg.MaxPlies = engine.MaxPlies
	}
	if cfg.Name == "" {
		cfg.Name = "selfplay"
	}
	if cfg.Parquet && cfg.OutDir == "" {
		return Result{}, errors.New("parquet output needs an output directory")
	}

	catalog, err := game.NewCatalog(game.StandardSize)
	if err != nil {
		return Result{}, err
	}

	var writer *metrics.Writer
	if cfg.OutDir != "" {
		writer, err = metrics.NewWriter(cfg.OutDir, cfg.Name)
		if err != nil {
			return Result{}, fmt.Errorf("failed to create experiment writer: %w", err)
		}
	}

	var samples chan metrics.Sample
	writeErr := make(chan error, 1)
	if cfg.Parquet {
		samples = make(chan metrics.Sample, cfg.Workers)
		path := filepath.Join(writer.Dir(), "samples.parquet")
		go func() {
			writeErr <- metrics.WriteParquet(path, samples, int64(cfg.Workers))
		}()
	}

	log.Info().Msgf("starting %s: %d games on %d workers...", cfg.Name, cfg.Games, cfg.Workers)

	collector := metrics.NewCollector()
	if cfg.NoMetrics {
		collector = metrics.NewDummyCollector()
	}
	collector.Start(cfg.Workers)

	results := make([]gameResult, cfg.Games)
	jobs := make(chan int, cfg.Games)
	for i := 0; i < cfg.Games; i++ {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for i := range jobs {
				options := []engine.Option{engine.WithMaxPlies(cfg.MaxPlies)}
				if cfg.Parquet {
					options = append(options, engine.WithSamples())
				}
				seed := cfg.Seed + 2*uint64(i)
				e := engine.LocalEngine(game.NewGame(catalog), agent.NewRandomAgent(seed), agent.NewRandomAgent(seed+1), options...)

				winner, gameMetric, moveMetrics := e.Run()
				results[i] = gameResult{game: gameMetric, moves: moveMetrics}
				collector.AddGame()
				collector.AddPlies(len(moveMetrics))

				for _, s := range e.Samples() {
					samples <- s
				}
				log.Debug().Msgf("completed game %d of %d with winner: %q", i+1, cfg.Games, winner)
			}
		}()
	}
	wg.Wait()
	throughput := collector.Complete()

	if cfg.Parquet {
		close(samples)
		if err := <-writeErr; err != nil {
			return Result{}, fmt.Errorf("failed to write samples: %w", err)
		}
		log.Info().Msg("stored training samples")
	}

	result := Result{Throughput: throughput}
	for i, r := range results {
		result.Games = append(result.Games, metrics.GameRecord{ID: i + 1, GameMetric: r.game})
		for _, mm := range r.moves {
			result.Moves = append(result.Moves, metrics.MoveRecord{Game: i + 1, MoveMetric: mm})
		}
	}

	log.Info().Msgf("completed %s: %d plies in %s (%.0f plies/s)", cfg.Name, throughput.Plies, throughput.Duration, throughput.PliesPerSecond())

	if writer == nil {
		return result, nil
	}
	result.Dir = writer.Dir()

	err = writer.WriteRunConfig(metrics.RunConfig{
		Name:     cfg.Name,
		Games:    cfg.Games,
		Workers:  cfg.Workers,
		Seed:     cfg.Seed,
		MaxPlies: cfg.MaxPlies,
	}, throughput)
	if err != nil {
		return result, fmt.Errorf("failed to store run config: %w", err)
	}
	log.Info().Msg("stored run config")

	err = writer.WriteGameRecords(result.Games)
	if err != nil {
		return result, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(result.Moves)
	if err != nil {
		return result, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return result, nil
}
