package agent

import (
	"draughts/game"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandomAgent(t *testing.T) {
	t.Run("picks a legal move", func(t *testing.T) {
		g, err := game.New(game.StandardSize)
		require.NoError(t, err)
		a := NewRandomAgent(1)

		for i := 0; i < 50 && !g.IsDone(); i++ {
			move := a.FindMove(g)
			require.Contains(t, g.LegalMoves(), move, "Agent should only pick legal moves")
			require.True(t, g.PerformMove(move))
		}
	})

	t.Run("same seed plays the same game", func(t *testing.T) {
		play := func() game.StateHash {
			g, err := game.New(game.StandardSize)
			require.NoError(t, err)
			a := NewRandomAgent(42)
			for i := 0; i < 30 && !g.IsDone(); i++ {
				g.PerformMove(a.FindMove(g))
			}
			return g.Hash()
		}
		require.Equal(t, play(), play())
	})

	t.Run("panics without legal moves", func(t *testing.T) {
		g, err := game.New(game.StandardSize, game.WithMaxPliesWithoutCapture(1))
		require.NoError(t, err)
		require.True(t, g.PerformMove(g.LegalMoves()[0]))
		require.True(t, g.IsDone())
		require.Panics(t, func() { NewRandomAgent(1).FindMove(g) })
		require.Panics(t, func() { NewFirstAgent().FindMove(g) })
	})
}

func TestFirstAgent(t *testing.T) {
	g, err := game.New(game.StandardSize)
	require.NoError(t, err)
	require.Equal(t, g.LegalMoves()[0], NewFirstAgent().FindMove(g))
}
