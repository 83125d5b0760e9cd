package engine

import (
	"fmt"
	"time"

	"draughts/agent"
	"draughts/experiments/metrics"
	"draughts/game"
	"draughts/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Game end reasons reported in GameMetric.Reason.
const (
	ReasonElimination = "elimination"
	ReasonBlocked     = "blocked"
	ReasonInactivity  = "inactivity"
	ReasonPlyCap      = "ply cap"
)

type Update struct {
	Move game.Move
	Side game.Side
	Hash game.StateHash
}

type Option func(e *Engine)

func WithMaxPlies(plies int) Option {
	return func(e *Engine) {
		if plies > 0 {
			e.maxPlies = plies
		}
	}
}

// WithSamples keeps an observation sample for every move.
func WithSamples() Option {
	return func(e *Engine) {
		e.keepSamples = true
	}
}

func WithGameID(id string) Option {
	return func(e *Engine) {
		if id != "" {
			e.GameID = id
		}
	}
}

type Engine struct {
	Game   *game.Game
	Agents map[game.Side]agent.Agent
	GameID string

	maxPlies    int
	keepSamples bool
	updates     []Update
	samples     []metrics.Sample
}

func LocalEngine(g *game.Game, black, white agent.Agent, options ...Option) *Engine {
	if g == nil {
		panic("engine needs a game")
	}
	if black == nil || white == nil {
		panic("need an agent for each side")
	}

	e := &Engine{
		Game:     g,
		Agents:   map[game.Side]agent.Agent{game.Black: black, game.White: white},
		GameID:   uuid.NewString(),
		maxPlies: MaxPlies,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run drives the game with the agents until it is done or the ply cap is
// reached.
func (e *Engine) Run() (string, metrics.GameMetric, []metrics.MoveMetric) {
	catalog := e.Game.Catalog()
	gameMetric := metrics.GameMetric{GameID: e.GameID, StartTime: time.Now()}
	var moveMetrics []metrics.MoveMetric

	log.Debug().Str("game", e.GameID).Msgf("%s is starting", e.Game.ActiveSide())

	for !e.Game.IsDone() && len(moveMetrics) < e.maxPlies {
		side := e.Game.ActiveSide()
		legal := e.Game.LegalMoves()

		var observation []float32
		if e.keepSamples {
			observation = e.Game.Observation()
		}

		start := time.Now()
		move := e.Agents[side].FindMove(e.Game)
		elapsed := time.Since(start)

		if !utils.Contains(legal, move) {
			log.Warn().Str("game", e.GameID).Msgf("agent for %s returned illegal move %s => playing %s", side, move, legal[0])
			move = legal[0]
		}

		capture := e.Game.CheckMove(move).Captures()
		moved := e.Game.PieceAt(move.Source)
		if !e.Game.PerformMove(move) {
			panic(fmt.Sprintf("legal move %s was rejected", move))
		}

		id, _ := catalog.IDOf(move)
		promoted := game.IsMan(moved) && game.IsKing(e.Game.PieceAt(catalog.TargetOf(id)))
		if capture {
			gameMetric.Captures++
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:       len(moveMetrics) + 1,
			Side:       side.String(),
			MoveID:     id,
			LegalMoves: len(legal),
			Capture:    capture,
			Promotion:  promoted,
			Duration:   elapsed,
		})
		played, _ := e.Game.LastMove()
		e.updates = append(e.updates, Update{Move: played, Side: side, Hash: e.Game.Hash()})
		if e.keepSamples {
			e.samples = append(e.samples, metrics.Sample{
				GameID:      e.GameID,
				Ply:         int32(len(moveMetrics)),
				Side:        sideValue(side),
				Observation: observation,
				ActionID:    int32(id),
				LegalMoves:  int32(len(legal)),
			})
		}

		log.Debug().Str("game", e.GameID).Msgf("ply %d: %s played %s", len(moveMetrics), side, move)
	}

	winner := ""
	if side, ok := e.Game.Winner(); ok {
		winner = side.String()
	}
	gameMetric.Winner = winner
	gameMetric.Reason = e.reason()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.BlackLeft = e.Game.PiecesLeft(game.Black)
	gameMetric.WhiteLeft = e.Game.PiecesLeft(game.White)
	e.scoreSamples()

	log.Debug().Str("game", e.GameID).Msgf("game over after %d plies (%s), winner: %q", gameMetric.TotalMoves, gameMetric.Reason, winner)

	return winner, gameMetric, moveMetrics
}

func (e *Engine) reason() string {
	if !e.Game.IsDone() {
		return ReasonPlyCap
	}
	winner, ok := e.Game.Winner()
	if !ok {
		return ReasonInactivity
	}
	if e.Game.PiecesLeft(winner.Opponent()) == 0 {
		return ReasonElimination
	}
	return ReasonBlocked
}

func (e *Engine) scoreSamples() {
	winner, ok := e.Game.Winner()
	for i := range e.samples {
		switch {
		case !ok:
			e.samples[i].Outcome = metrics.OutcomeDraw
		case e.samples[i].Side == sideValue(winner):
			e.samples[i].Outcome = metrics.OutcomeWin
		default:
			e.samples[i].Outcome = metrics.OutcomeLoss
		}
	}
}

func sideValue(side game.Side) int32 {
	if side == game.Black {
		return -1
	}
	return 1
}

// Updates returns the moves played so far with the resulting state hashes.
func (e *Engine) Updates() []Update {
	return e.updates
}

// Samples returns the recorded samples. It is empty unless the engine was
// built WithSamples.
func (e *Engine) Samples() []metrics.Sample {
	return e.samples
}
