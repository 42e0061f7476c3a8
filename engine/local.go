package engine

import (
	"context"
	"fmt"

	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/meta"
	"connect4/searcher/agent"

	"github.com/rs/zerolog/log"
)

// Local plays a game between two in-process agents. Agents[0] plays
// Player1 and Agents[1] plays Player2.
type Local struct {
	Board    *game.Board
	Agents   [2]agent.Agent
	MaxTurns int

	collector metrics.Collector
}

var _ Engine = (*Local)(nil)

type LocalOption func(*Local)

// WithBoard starts the game from b instead of the empty board.
func WithBoard(b *game.Board) LocalOption {
	return func(e *Local) {
		e.Board = b
	}
}

func WithMaxTurns(n int) LocalOption {
	return func(e *Local) {
		e.MaxTurns = n
	}
}

func WithMetrics() LocalOption {
	return func(e *Local) {
		e.collector = metrics.NewCollector()
	}
}

func LocalEngine(player1, player2 agent.Agent, options ...LocalOption) *Local {
	if player1 == nil || player2 == nil {
		panic("need two agents")
	}
	e := &Local{
		Board:     game.NewBoard(),
		Agents:    [2]agent.Agent{player1, player2},
		MaxTurns:  meta.MAX_TURNS,
		collector: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the game loop until the game is decided or MaxTurns moves
// have been played. An agent returning an illegal action ends the game
// with an error.
func (e *Local) Run(ctx context.Context) (game.Player, metrics.GameMetric, []metrics.MoveMetric, error) {
	e.collector.Start(e.Board.Turn())
	log.Info().Msgf("%s is starting", e.Board.Turn())

	for turn := 1; !e.Board.IsTerminal() && turn <= e.MaxTurns; turn++ {
		if err := ctx.Err(); err != nil {
			return game.NoPlayer, metrics.GameMetric{}, nil, err
		}

		player := e.Board.Turn()
		action, searchMetrics := e.Agents[player-1].FindMove(e.Board, player)
		next, err := e.Board.Play(player, action)
		if err != nil {
			return game.NoPlayer, metrics.GameMetric{}, nil, fmt.Errorf("turn %d: %s played %v: %w", turn, player, action, err)
		}
		e.collector.AddMove(player, action, searchMetrics)
		log.Debug().
			Int("turn", turn).
			Stringer("player", player).
			Stringer("action", action).
			Int64("evaluated", searchMetrics.Evaluated).
			Msg("move")

		e.Board = next
	}

	winner := e.Board.Winner()
	if winner != game.NoPlayer {
		log.Info().Msgf("game ended with %s winning after %d moves", winner, e.Board.Moves())
	} else if e.Board.IsFull() {
		log.Info().Msg("game ended in a draw")
	} else {
		log.Info().Msgf("stopped after %d turns (no winner yet)", e.MaxTurns)
	}

	gameMetric, moveMetrics := e.collector.Complete(winner)
	return winner, gameMetric, moveMetrics, nil
}
