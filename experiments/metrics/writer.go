package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// RunConfig is the stored description of a self-play run.
type RunConfig struct {
	Name     string
	Games    int
	Workers  int
	Seed     uint64
	MaxPlies int
}

type GameRecord struct {
	ID int
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped directory for the run under root.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000000000Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteRunConfig(config RunConfig, throughput ThroughputMetric) error {
	header := []string{"name", "games", "workers", "seed", "max_plies", "plies", "duration", "plies_per_second"}
	rows := [][]string{{
		config.Name,
		strconv.Itoa(config.Games),
		strconv.Itoa(config.Workers),
		strconv.FormatUint(config.Seed, 10),
		strconv.Itoa(config.MaxPlies),
		strconv.Itoa(throughput.Plies),
		throughput.Duration.String(),
		strconv.FormatFloat(throughput.PliesPerSecond(), 'f', 2, 64),
	}}
	return w.writeCSV("run_config.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "game_id", "winner", "reason", "start_time", "end_time", "duration", "total_moves", "captures", "black_left", "white_left"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			record.GameID,
			record.Winner,
			record.Reason,
			record.StartTime.Format(time.RFC3339Nano),
			record.EndTime.Format(time.RFC3339Nano),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
			strconv.Itoa(record.Captures),
			strconv.Itoa(record.BlackLeft),
			strconv.Itoa(record.WhiteLeft),
		})
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "side", "move_id", "legal_moves", "capture", "promotion", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Side,
			strconv.Itoa(record.MoveID),
			strconv.Itoa(record.LegalMoves),
			strconv.FormatBool(record.Capture),
			strconv.FormatBool(record.Promotion),
			record.Duration.String(),
		})
	}
	return w.writeCSV("move_records.csv", header, rows)
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}
