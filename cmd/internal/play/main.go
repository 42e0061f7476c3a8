package play

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"connect4/cmd/internal/opt"
	"connect4/gamemaster"
	"connect4/meta"
	"connect4/searcher/agent"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

type Command struct {
	p1    string
	p2    string
	board string
}

func (*Command) Name() string     { return "play" }
func (*Command) Synopsis() string { return "Play Connect Four from the command line" }
func (*Command) Usage() string {
	return `play [-p1 AGENT] [-p2 AGENT] [-board BOARD]

Play Connect Four on the command line, against a human or an agent.
Agents are given as kind:key=value,... (e.g. alphabeta:depth=6,eval=windows).
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.p1, "p1", "human", "player 1 agent")
	flags.StringVar(&c.p2, "p2", meta.AGENT, "player 2 agent")
	flags.StringVar(&c.board, "board", "", "starting board, rows top to bottom separated by /")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	player1, err := agent.New(c.p1)
	if err != nil {
		log.Error().Err(err).Msg("player 1")
		return subcommands.ExitUsageError
	}
	player2, err := agent.New(c.p2)
	if err != nil {
		log.Error().Err(err).Msg("player 2")
		return subcommands.ExitUsageError
	}
	board, err := opt.Board(c.board)
	if err != nil {
		log.Error().Err(err).Msg("board")
		return subcommands.ExitUsageError
	}

	gm := gamemaster.NewGameMaster(gamemaster.NewLocalEngineFrom(board), player1, player2, os.Stdout)
	if _, err := gm.RunGame(ctx); err != nil {
		if errors.Is(err, gamemaster.ErrNoMove) {
			fmt.Println("Game abandoned.")
			return subcommands.ExitSuccess
		}
		log.Error().Err(err).Msg("game failed")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
