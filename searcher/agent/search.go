package agent

import (
	"connect4/game"
	"connect4/searcher"

	"github.com/pkg/errors"
)

type searchAgent struct {
	searcher searcher.Searcher
}

// NewSearchAgent returns an agent that plays the action s selects.
func NewSearchAgent(s searcher.Searcher) Agent {
	return &searchAgent{searcher: s}
}

func (a *searchAgent) FindMove(state game.State, player game.Player) (game.Action, searcher.Metrics) {
	result := a.searcher.Search(state, player)
	return result.Action, result.Metrics
}

// searchBuilder accepts depth, eval (a game.Evaluators name or "neural"),
// weights (the neural evaluator's file) and metrics.
func searchBuilder(kind searcher.Kind) Builder {
	return func(params Params) (Agent, error) {
		depth, err := params.PopInt("depth", searcher.DefaultDepth)
		if err != nil {
			return nil, errors.Wrap(searcher.ErrInvalidConfig, err.Error())
		}
		evaluate, err := Evaluator(params.PopString("eval", "score"), params.PopString("weights", ""))
		if err != nil {
			return nil, err
		}
		withMetrics, err := params.PopBool("metrics", true)
		if err != nil {
			return nil, err
		}

		options := []searcher.Option{searcher.WithDepth(depth), searcher.WithEvaluationFn(evaluate)}
		if withMetrics {
			options = append(options, searcher.WithMetrics())
		}
		s, err := searcher.New(kind, options...)
		if err != nil {
			return nil, err
		}
		return NewSearchAgent(s), nil
	}
}

// Evaluator resolves an evaluation by name. "neural" loads the network saved
// at weights.
func Evaluator(name, weights string) (game.Evaluate, error) {
	if name == "neural" {
		if weights == "" {
			return nil, errors.Wrap(searcher.ErrInvalidConfig, "neural evaluation needs weights=<file>")
		}
		n, err := game.LoadNeuralEvaluator(weights)
		if err != nil {
			return nil, err
		}
		return n.Evaluate, nil
	}
	if weights != "" {
		return nil, errors.Wrapf(searcher.ErrInvalidConfig, "weights only apply to neural evaluation, not %q", name)
	}
	evaluate, ok := game.Evaluators[name]
	if !ok {
		return nil, errors.Wrapf(searcher.ErrInvalidConfig, "unknown evaluation %q", name)
	}
	return evaluate, nil
}
