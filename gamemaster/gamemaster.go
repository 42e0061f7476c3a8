package gamemaster

import (
	"context"
	"fmt"
	"io"

	"connect4/game"
	"connect4/searcher/agent"

	"github.com/rs/zerolog/log"
)

// GameMaster runs an interactive game: it asks the agent to move whose
// turn it is, submits the action to the engine and shows every update.
type GameMaster struct {
	Engine Engine
	Agents [2]agent.Agent // Player1, Player2
	Out    io.Writer
}

func NewGameMaster(engine Engine, player1, player2 agent.Agent, out io.Writer) *GameMaster {
	return &GameMaster{
		Engine: engine,
		Agents: [2]agent.Agent{player1, player2},
		Out:    out,
	}
}

// RunGame plays from the engine's initial board until the game is over and
// returns the winner, NoPlayer for a draw.
func (gm *GameMaster) RunGame(ctx context.Context) (game.Player, error) {
	board, getUpdate := gm.Engine.Init()
	fmt.Fprint(gm.Out, board.Pretty())

	for !board.IsTerminal() {
		if err := ctx.Err(); err != nil {
			return game.NoPlayer, err
		}
		player := board.Turn()
		action, metrics := gm.Agents[player-1].FindMove(board, player)
		if action == nil {
			return game.NoPlayer, fmt.Errorf("%s: %w", player, ErrNoMove)
		}
		if err := gm.Engine.Play(player, action); err != nil {
			return game.NoPlayer, fmt.Errorf("%s: %w", player, err)
		}
		log.Debug().Stringer("player", player).Stringer("action", action).Int64("evaluated", metrics.Evaluated).Msg("played")

		for u, ok := getUpdate(); ok; u, ok = getUpdate() {
			fmt.Fprintf(gm.Out, "%s plays %v\n%s", u.Player, u.Action, u.Board.Pretty())
			board = u.Board
		}
	}

	if winner := board.Winner(); winner != game.NoPlayer {
		fmt.Fprintf(gm.Out, "%s wins!\n", winner)
		return winner, nil
	}
	fmt.Fprintln(gm.Out, "Draw.")
	return game.NoPlayer, nil
}
