package metrics

import (
	"fmt"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

// Sample is one training row: the observation before a move, the move's
// catalog id, and the final result from the mover's point of view.
type Sample struct {
	GameID      string    `parquet:"name=game_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Ply         int32     `parquet:"name=ply, type=INT32"`
	Side        int32     `parquet:"name=side, type=INT32"`
	Observation []float32 `parquet:"name=observation, type=LIST, valuetype=FLOAT"`
	ActionID    int32     `parquet:"name=action_id, type=INT32"`
	LegalMoves  int32     `parquet:"name=legal_moves, type=INT32"`
	Outcome     int32     `parquet:"name=outcome, type=INT32"`
}

// Outcome values for Sample.Outcome.
const (
	OutcomeLoss int32 = -1
	OutcomeDraw int32 = 0
	OutcomeWin  int32 = 1
)

// WriteParquet drains samples into a snappy-compressed parquet file at path.
// The channel is always drained, even when writing fails.
func WriteParquet(path string, samples <-chan Sample, parallel int64) error {
	defer func() {
		for range samples {
		}
	}()

	fileWriter, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	closed := false
	defer func() {
		if !closed {
			fileWriter.Close()
		}
	}()

	parquetWriter, err := writer.NewParquetWriter(fileWriter, new(Sample), parallel)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	parquetWriter.CompressionType = parquet.CompressionCodec_SNAPPY

	for sample := range samples {
		if err := parquetWriter.Write(sample); err != nil {
			return fmt.Errorf("failed to write sample: %w", err)
		}
	}
	if err := parquetWriter.WriteStop(); err != nil {
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	closed = true
	if err := fileWriter.Close(); err != nil {
		return fmt.Errorf("failed to close parquet file: %w", err)
	}
	return nil
}
