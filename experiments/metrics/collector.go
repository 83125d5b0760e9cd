package metrics

import (
	"sync/atomic"
	"time"
)

// MoveMetric describes a single performed move.
type MoveMetric struct {
	Step       int    // Ply index, starting at 1
	Side       string // Side that moved
	MoveID     int
	LegalMoves int
	Capture    bool
	Promotion  bool
	Duration   time.Duration // Time the agent took to choose
}

// GameMetric describes a finished game.
type GameMetric struct {
	GameID     string
	Winner     string // "" for a draw or an unfinished game
	Reason     string
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
	Captures   int
	BlackLeft  int
	WhiteLeft  int
}

// ThroughputMetric summarises a self-play run.
type ThroughputMetric struct {
	Workers  int
	Games    int
	Plies    int
	Duration time.Duration
}

// PliesPerSecond returns the move rate of the run.
func (m ThroughputMetric) PliesPerSecond() float64 {
	if m.Duration <= 0 {
		return 0
	}
	return float64(m.Plies) / m.Duration.Seconds()
}

type Collector interface {
	Start(workers int)
	AddGame()
	AddPlies(n int)
	Complete() ThroughputMetric
}

type collector struct {
	workers   int
	startTime time.Time
	games     atomic.Int64
	plies     atomic.Int64
}

// NewCollector returns a collector that is safe to update from many
// goroutines.
func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(workers int) {
	m.startTime = time.Now()
	m.workers = workers
}

func (m *collector) AddGame() {
	m.games.Add(1)
}

func (m *collector) AddPlies(n int) {
	m.plies.Add(int64(n))
}

func (m *collector) Complete() ThroughputMetric {
	return ThroughputMetric{
		Workers:  m.workers,
		Games:    int(m.games.Load()),
		Plies:    int(m.plies.Load()),
		Duration: time.Since(m.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(workers int)          {}
func (m *dummyCollector) AddGame()                   {}
func (m *dummyCollector) AddPlies(n int)             {}
func (m *dummyCollector) Complete() ThroughputMetric { return ThroughputMetric{} }
