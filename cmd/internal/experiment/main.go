package experiment

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"connect4/experiments"
	"connect4/experiments/metrics"
	"connect4/meta"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

type Command struct {
	out string
	db  string
	run string

	games   int
	threads int
	swap    bool

	depth     int
	positions int
	plies     int
	seed      uint64
}

func (*Command) Name() string     { return "experiment" }
func (*Command) Synopsis() string { return "Run a matchup or pruning experiment" }
func (*Command) Usage() string {
	return `experiment [flags] matchups AGENT AGENT...
experiment [flags] pruning

matchups plays every pair of agents against each other.
pruning compares the work minimax and alpha-beta do on random positions.
Records are written as CSV under -out and, with -db, to a SQLite database.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.out, "out", "results", "directory to write CSV records to")
	flags.StringVar(&c.db, "db", "", "SQLite database to add records to")
	flags.StringVar(&c.run, "run", "", "run name in the database (default: start time)")

	flags.IntVar(&c.games, "games", meta.GAMES, "games per matchup")
	flags.IntVar(&c.threads, "threads", meta.GO_ROUTINES, "number of games or searches run at once")
	flags.BoolVar(&c.swap, "swap", true, "swap seats each game")

	flags.IntVar(&c.depth, "depth", meta.PRUNING_DEPTH, "deepest pruning search")
	flags.IntVar(&c.positions, "positions", meta.PRUNING_POSITIONS, "random positions per depth")
	flags.IntVar(&c.plies, "plies", 8, "random moves played to reach each position")
	flags.Uint64Var(&c.seed, "seed", 1, "seed for the random positions")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if flag.NArg() < 1 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	name := flag.Arg(0)
	if name != "matchups" && name != "pruning" {
		log.Error().Msgf("unknown experiment %q", name)
		return subcommands.ExitUsageError
	}

	w, err := metrics.NewWriter(c.out, name)
	if err != nil {
		log.Error().Err(err).Msg("output")
		return subcommands.ExitFailure
	}
	var store *metrics.Store
	if c.db != "" {
		run := c.run
		if run == "" {
			run = name + "-" + time.Now().Format("20060102-150405")
		}
		store, err = metrics.OpenStore(c.db, run)
		if err != nil {
			log.Error().Err(err).Msg("database")
			return subcommands.ExitFailure
		}
		defer store.Close()
	}

	switch name {
	case "matchups":
		err = c.matchups(ctx, flag.Args()[1:], w, store)
	case "pruning":
		_, err = experiments.RunPruningExperiment(ctx, experiments.PruningOptions{
			MaxDepth:  c.depth,
			Positions: c.positions,
			Plies:     c.plies,
			Seed:      c.seed,
			Parallel:  c.threads,
			Writer:    w,
			Store:     store,
		})
	}
	if err != nil {
		log.Error().Err(err).Msgf("%s experiment failed", name)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *Command) matchups(ctx context.Context, agents []string, w *metrics.Writer, store *metrics.Store) error {
	if len(agents) < 2 {
		return fmt.Errorf("matchups need at least two agents, got %d", len(agents))
	}
	configs := make([]metrics.AgentConfig, len(agents))
	for i, a := range agents {
		configs[i] = metrics.AgentConfig{ID: i, Config: a}
	}
	opts := experiments.Options{Games: c.games, Parallel: c.threads, Swap: c.swap, Writer: w, Store: store}

	result, err := experiments.RunMatchups(ctx, "matchups", configs, experiments.AllPairs(configs), opts)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 4, 8, 2, ' ', 0)
	defer tw.Flush()
	if store == nil {
		fmt.Fprintln(tw, "id\tagent\twins\tlosses\tdraws")
		for _, cfg := range configs {
			wins, losses, draws := result.Score(cfg.ID)
			fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\n", cfg.ID, cfg.Config, wins, losses, draws)
		}
		return nil
	}

	results, err := store.Results()
	if err != nil {
		return err
	}
	fmt.Fprintln(tw, "agent\topponent\tseat\tresult\tgames")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", agentName(agents, r.Agent), agentName(agents, r.Opponent), r.Seat, r.Result, r.Games)
	}
	return nil
}

// agentName names an agent ID from the database. Runs can be reused, so
// the ID may belong to an earlier invocation.
func agentName(agents []string, id int) string {
	if id >= 0 && id < len(agents) {
		return agents[id]
	}
	return fmt.Sprintf("#%d", id)
}
