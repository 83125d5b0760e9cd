package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"
)

func TestCollector(t *testing.T) {
	t.Run("counts concurrent updates", func(t *testing.T) {
		c := NewCollector()
		c.Start(4)

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					c.AddPlies(2)
				}
				c.AddGame()
			}()
		}
		wg.Wait()

		got := c.Complete()
		require.Equal(t, 4, got.Workers)
		require.Equal(t, 4, got.Games)
		require.Equal(t, 800, got.Plies)
		require.GreaterOrEqual(t, got.Duration, time.Duration(0))
	})

	t.Run("dummy collector records nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(8)
		c.AddGame()
		c.AddPlies(10)
		require.Equal(t, ThroughputMetric{}, c.Complete())
	})
}

func TestPliesPerSecond(t *testing.T) {
	require.Equal(t, 0.0, ThroughputMetric{Plies: 10}.PliesPerSecond())
	require.InDelta(t, 5.0, ThroughputMetric{Plies: 10, Duration: 2 * time.Second}.PliesPerSecond(), 0.0001)
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "selfplay")
	require.NoError(t, err)

	err = w.WriteRunConfig(RunConfig{Name: "selfplay", Games: 2, Workers: 1, Seed: 3, MaxPlies: 100}, ThroughputMetric{Plies: 40, Duration: time.Second})
	require.NoError(t, err)
	rows := readCSV(t, filepath.Join(w.Dir(), "run_config.csv"))
	require.Len(t, rows, 2)
	require.Equal(t, "selfplay", rows[1][0])
	require.Equal(t, "40.00", rows[1][7])

	err = w.WriteGameRecords([]GameRecord{
		{ID: 1, GameMetric: GameMetric{GameID: "a", Winner: "White", Reason: "elimination", TotalMoves: 50}},
		{ID: 2, GameMetric: GameMetric{GameID: "b", Reason: "inactivity"}},
	})
	require.NoError(t, err)
	rows = readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
	require.Len(t, rows, 3, "Header plus one row per game")
	require.Equal(t, []string{"1", "a", "White", "elimination"}, rows[1][:4])
	require.Equal(t, "", rows[2][2], "Draws have no winner")

	err = w.WriteMoveRecords([]MoveRecord{{Game: 1, MoveMetric: MoveMetric{Step: 1, Side: "White", MoveID: 12, LegalMoves: 7}}})
	require.NoError(t, err)
	rows = readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
	require.Len(t, rows, 2)
	require.Equal(t, []string{"1", "1", "White", "12", "7", "false", "false"}, rows[1][:7])
}

func TestWriteParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.parquet")

	samples := make(chan Sample, 3)
	for i := 0; i < 3; i++ {
		samples <- Sample{
			GameID:      "game",
			Ply:         int32(i),
			Side:        1,
			Observation: []float32{1, 0, -1, -1, 1, 0},
			ActionID:    int32(10 + i),
			LegalMoves:  7,
			Outcome:     OutcomeWin,
		}
	}
	close(samples)
	require.NoError(t, WriteParquet(path, samples, 1))

	fileReader, err := local.NewLocalFileReader(path)
	require.NoError(t, err)
	defer fileReader.Close()

	parquetReader, err := reader.NewParquetReader(fileReader, new(Sample), 1)
	require.NoError(t, err)
	defer parquetReader.ReadStop()

	require.Equal(t, int64(3), parquetReader.GetNumRows())
	got := make([]Sample, 3)
	require.NoError(t, parquetReader.Read(&got))
	require.Equal(t, "game", got[0].GameID)
	require.Equal(t, int32(12), got[2].ActionID)
}

func TestWriteParquetFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "samples.parquet")

	samples := make(chan Sample, 2)
	samples <- Sample{GameID: "game"}
	samples <- Sample{GameID: "game"}
	close(samples)

	require.Error(t, WriteParquet(path, samples, 1))
	_, open := <-samples
	require.False(t, open, "Samples are drained even when the file cannot be created")
}
