package engine

import (
	"context"
	"testing"

	"connect4/game"
	"connect4/searcher"
	"connect4/searcher/agent"

	"github.com/stretchr/testify/require"
)

// scriptedAgent plays its columns in order.
type scriptedAgent struct {
	columns []int
	calls   int
}

func (a *scriptedAgent) FindMove(game.State, game.Player) (game.Action, searcher.Metrics) {
	col := a.columns[a.calls]
	a.calls++
	return game.Column(col), searcher.Metrics{Evaluated: int64(a.calls)}
}

func TestLocalRun(t *testing.T) {
	t.Run("first four in a row wins", func(t *testing.T) {
		p1 := &scriptedAgent{columns: []int{0, 0, 0, 0}}
		p2 := &scriptedAgent{columns: []int{1, 1, 1}}
		e := LocalEngine(p1, p2, WithMetrics())

		winner, gameMetric, moveMetrics, err := e.Run(context.Background())

		require.NoError(t, err)
		require.Equal(t, game.Player1, winner)
		require.Equal(t, game.Player1, gameMetric.StartingPlayer)
		require.Equal(t, game.Player1, gameMetric.Winner)
		require.Equal(t, 7, gameMetric.TotalMoves)
		require.Len(t, moveMetrics, 7)
		require.Equal(t, game.Player2, moveMetrics[1].Player)
		require.Equal(t, "1", moveMetrics[1].Action)
		require.EqualValues(t, 4, moveMetrics[6].Evaluated, "Metrics should come from the agent")
		require.Equal(t, 4, p1.calls)
		require.Equal(t, 3, p2.calls)
	})

	t.Run("stops after the max number of turns", func(t *testing.T) {
		p1 := &scriptedAgent{columns: []int{0, 1, 2}}
		p2 := &scriptedAgent{columns: []int{6, 5, 4}}
		e := LocalEngine(p1, p2, WithMaxTurns(3), WithMetrics())

		winner, gameMetric, _, err := e.Run(context.Background())

		require.NoError(t, err)
		require.Equal(t, game.NoPlayer, winner)
		require.Equal(t, 3, gameMetric.TotalMoves)
		require.Equal(t, 3, e.Board.Moves())
	})

	t.Run("starts from the given board", func(t *testing.T) {
		b, err := game.ParseBoard("......./......./......./......./......./XXX.OOO")
		require.NoError(t, err)
		p1 := &scriptedAgent{columns: []int{3}}
		p2 := &scriptedAgent{columns: []int{6}}
		e := LocalEngine(p1, p2, WithBoard(b))

		winner, _, moveMetrics, err := e.Run(context.Background())

		require.NoError(t, err)
		require.Equal(t, game.Player1, winner)
		require.Empty(t, moveMetrics, "Metrics are off by default")
		require.Zero(t, p2.calls)
	})

	t.Run("illegal action is an error", func(t *testing.T) {
		p1 := &scriptedAgent{columns: []int{0, 0, 0, 0}}
		p2 := &scriptedAgent{columns: []int{0, 0, 0}}
		e := LocalEngine(p1, p2)

		_, _, _, err := e.Run(context.Background())

		require.ErrorIs(t, err, game.ErrIllegalAction)
		require.ErrorContains(t, err, "turn 7")
	})

	t.Run("cancelled context stops the game", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		p1 := &scriptedAgent{columns: []int{0}}
		e := LocalEngine(p1, &scriptedAgent{})

		_, _, _, err := e.Run(ctx)

		require.ErrorIs(t, err, context.Canceled)
		require.Zero(t, p1.calls)
	})

	t.Run("search agents play a full game", func(t *testing.T) {
		p1, err := agent.New("alphabeta:depth=2,eval=windows")
		require.NoError(t, err)
		p2, err := agent.New("random:seed=5")
		require.NoError(t, err)

		winner, gameMetric, moveMetrics, err := LocalEngine(p1, p2, WithMetrics()).Run(context.Background())

		require.NoError(t, err)
		require.Equal(t, winner, gameMetric.Winner)
		require.Len(t, moveMetrics, gameMetric.TotalMoves)
		require.Positive(t, moveMetrics[0].Evaluated)
	})
}
