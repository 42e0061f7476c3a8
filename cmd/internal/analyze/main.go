package analyze

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"connect4/cmd/internal/opt"
	"connect4/game"
	"connect4/searcher"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

type Command struct {
	quiet bool
	kind  string
	sopt  opt.Search
}

func (*Command) Name() string     { return "analyze" }
func (*Command) Synopsis() string { return "Search a position with every search variant" }
func (*Command) Usage() string {
	return `analyze [options] BOARD

Search BOARD for the player to move and print the chosen column, its value
and the work each search variant did. BOARD lists rows top to bottom,
separated by /, using . X and O; e.g. ......./......./......./......./......./XXX.OO.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.BoolVar(&c.quiet, "quiet", false, "don't print the board")
	flags.StringVar(&c.kind, "kind", "", "only run this search variant")
	c.sopt.AddFlags(flags)
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if flag.NArg() != 1 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	board, err := opt.Board(flag.Arg(0))
	if err != nil {
		log.Error().Err(err).Msg("parse")
		return subcommands.ExitUsageError
	}
	if board.IsTerminal() {
		log.Error().Msgf("game is already over: %s", board.Winner())
		return subcommands.ExitUsageError
	}
	options, err := c.sopt.Options()
	if err != nil {
		log.Error().Err(err).Msg("search options")
		return subcommands.ExitUsageError
	}

	kinds := searcher.Kinds()
	if c.kind != "" {
		kinds = []searcher.Kind{searcher.Kind(c.kind)}
	}
	var results []searcher.Result
	for _, kind := range kinds {
		s, err := searcher.New(kind, options...)
		if err != nil {
			log.Error().Err(err).Msg("search")
			return subcommands.ExitUsageError
		}
		results = append(results, s.Search(board, board.Turn()))
	}

	if !c.quiet {
		fmt.Print(board.Pretty())
	}
	fmt.Printf("%s to move, depth %d, %s evaluation\n", board.Turn(), c.sopt.Depth, c.sopt.Eval)
	render(os.Stdout, kinds, results)
	return subcommands.ExitSuccess
}

func render(out io.Writer, kinds []searcher.Kind, results []searcher.Result) {
	w := tabwriter.NewWriter(out, 4, 8, 2, ' ', 0)
	fmt.Fprintln(w, "search\tcolumn\tvalue\tvisited\tgenerated\tevaluated\tcutoffs\ttime")
	for i, r := range results {
		fmt.Fprintf(w, "%s\t%v\t%s\t%d\t%d\t%d\t%d\t%s\n",
			kinds[i], r.Action, formatValue(r.Value),
			r.Metrics.Visited, r.Metrics.Generated, r.Metrics.Evaluated, r.Metrics.Cutoffs,
			r.Metrics.Duration)
	}
	w.Flush()
}

func formatValue(v float64) string {
	switch {
	case v >= game.WinValue-game.Rows*game.Columns:
		return fmt.Sprintf("win (%g)", v)
	case v <= -game.WinValue+game.Rows*game.Columns:
		return fmt.Sprintf("loss (%g)", v)
	}
	return fmt.Sprintf("%.4g", v)
}
