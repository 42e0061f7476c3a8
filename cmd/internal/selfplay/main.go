package selfplay

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"connect4/experiments"
	"connect4/experiments/metrics"
	"connect4/meta"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

type Command struct {
	p1 string
	p2 string

	games   int
	threads int
	swap    bool

	out string
}

func (*Command) Name() string     { return "selfplay" }
func (*Command) Synopsis() string { return "Play two agents against each other and report results" }
func (*Command) Usage() string {
	return `selfplay [flags]
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.p1, "p1", meta.AGENT, "player 1 agent")
	flags.StringVar(&c.p2, "p2", "random", "player 2 agent")
	flags.IntVar(&c.games, "games", meta.GAMES, "number of games to play")
	flags.IntVar(&c.threads, "threads", meta.GO_ROUTINES, "number of games played at once")
	flags.BoolVar(&c.swap, "swap", true, "swap seats each game")
	flags.StringVar(&c.out, "out", "", "directory to write game records to")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	configs := []metrics.AgentConfig{{ID: 1, Config: c.p1}, {ID: 2, Config: c.p2}}
	opts := experiments.Options{Games: c.games, Parallel: c.threads, Swap: c.swap}
	if c.out != "" {
		w, err := metrics.NewWriter(c.out, "selfplay")
		if err != nil {
			log.Error().Err(err).Msg("output")
			return subcommands.ExitFailure
		}
		opts.Writer = w
	}

	result, err := experiments.RunMatchups(ctx, "selfplay", configs, experiments.AllPairs(configs), opts)
	if err != nil {
		log.Error().Err(err).Msg("selfplay")
		return subcommands.ExitFailure
	}

	w := tabwriter.NewWriter(os.Stdout, 4, 8, 2, ' ', 0)
	fmt.Fprintln(w, "agent\twins\tlosses\tdraws")
	for _, cfg := range configs {
		wins, losses, draws := result.Score(cfg.ID)
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", cfg.Config, wins, losses, draws)
	}
	w.Flush()
	return subcommands.ExitSuccess
}
