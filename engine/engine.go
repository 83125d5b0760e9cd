package engine

import "draughts/experiments/metrics"

// MaxPlies bounds games that the inactivity rule has not ended.
const MaxPlies = 1000

type Runner interface {
	// Run plays a game till it is done or the ply cap is reached
	Run() (winner string, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}

var _ Runner = (*Engine)(nil)
