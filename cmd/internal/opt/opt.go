package opt

import (
	"flag"

	"connect4/game"
	"connect4/searcher"
	"connect4/searcher/agent"

	// Register the remote and human agent kinds.
	_ "connect4/communication/client"
	_ "connect4/player"
)

// Search holds the flags shared by commands that build searchers directly.
type Search struct {
	Depth   int
	Eval    string
	Weights string
	Metrics bool
}

func (o *Search) AddFlags(flags *flag.FlagSet) {
	flags.IntVar(&o.Depth, "depth", searcher.DefaultDepth, "search depth")
	flags.StringVar(&o.Eval, "eval", "windows", "evaluation: score, windows or neural")
	flags.StringVar(&o.Weights, "weights", "", "neural evaluator weights file")
	flags.BoolVar(&o.Metrics, "metrics", true, "collect search statistics")
}

func (o *Search) Options() ([]searcher.Option, error) {
	evaluate, err := agent.Evaluator(o.Eval, o.Weights)
	if err != nil {
		return nil, err
	}
	options := []searcher.Option{searcher.WithDepth(o.Depth), searcher.WithEvaluationFn(evaluate)}
	if o.Metrics {
		options = append(options, searcher.WithMetrics())
	}
	return options, nil
}

// Board parses a board in its text form. An empty string is the empty board.
func Board(s string) (*game.Board, error) {
	if s == "" {
		return game.NewBoard(), nil
	}
	return game.ParseBoard(s)
}
