package experiments

import (
	"os"
	"path/filepath"
	"testing"

	"draughts/experiments/metrics"

	"github.com/stretchr/testify/require"
)

func TestRunSelfPlay(t *testing.T) {
	t.Run("plays and stores every game", func(t *testing.T) {
		result, err := RunSelfPlay(Config{
			Games:   4,
			Workers: 2,
			Seed:    11,
			OutDir:  t.TempDir(),
			Parquet: true,
		})
		require.NoError(t, err)

		require.Len(t, result.Games, 4)
		require.Equal(t, 4, result.Throughput.Games)
		require.Equal(t, 2, result.Throughput.Workers)

		plies := 0
		for i, record := range result.Games {
			require.Equal(t, i+1, record.ID)
			require.NotEmpty(t, record.GameID)
			plies += record.TotalMoves
		}
		require.Equal(t, plies, result.Throughput.Plies)
		require.Len(t, result.Moves, plies)

		for _, name := range []string{"run_config.csv", "game_records.csv", "move_records.csv", "samples.parquet"} {
			_, err := os.Stat(filepath.Join(result.Dir, name))
			require.NoError(t, err, "%s should be written", name)
		}
	})

	t.Run("results do not depend on the worker count", func(t *testing.T) {
		one, err := RunSelfPlay(Config{Games: 6, Workers: 1, Seed: 5})
		require.NoError(t, err)
		many, err := RunSelfPlay(Config{Games: 6, Workers: 3, Seed: 5})
		require.NoError(t, err)

		require.Empty(t, one.Dir, "Nothing is stored without an output directory")
		for i := range one.Games {
			require.Equal(t, one.Games[i].Winner, many.Games[i].Winner)
			require.Equal(t, one.Games[i].TotalMoves, many.Games[i].TotalMoves)
			require.Equal(t, one.Games[i].Reason, many.Games[i].Reason)
		}
	})

	t.Run("metrics can be switched off", func(t *testing.T) {
		result, err := RunSelfPlay(Config{Games: 2, Workers: 2, Seed: 3, NoMetrics: true})
		require.NoError(t, err)
		require.Len(t, result.Games, 2)
		require.Equal(t, metrics.ThroughputMetric{}, result.Throughput)
		require.NotEmpty(t, result.Moves)
	})

	t.Run("parquet needs an output directory", func(t *testing.T) {
		_, err := RunSelfPlay(Config{Games: 1, Parquet: true})
		require.Error(t, err)
	})
}

func TestRunThroughputExperiment(t *testing.T) {
	got, err := RunThroughputExperiment(2, 1, []int{1, 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, 1, got[0].Workers)
	require.Equal(t, 2, got[1].Workers)
	require.Equal(t, got[0].Plies, got[1].Plies, "Same seeds should play the same games")
}
