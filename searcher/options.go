package searcher

import (
	"connect4/game"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Option func(c *config)

// config is fixed at construction and shared by every search a searcher
// runs.
type config struct {
	kind        Kind
	depth       int
	evaluate    game.Evaluate
	withMetrics bool
}

func WithDepth(depth int) Option {
	return func(c *config) {
		c.depth = depth
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(c *config) {
		c.evaluate = evaluate
	}
}

func WithMetrics() Option {
	return func(c *config) {
		c.withMetrics = true
	}
}

func newConfig(kind Kind, options []Option) (config, error) {
	c := config{ // Default values
		kind:     kind,
		depth:    DefaultDepth,
		evaluate: game.EvaluateScore,
	}
	for _, option := range options {
		option(&c)
	}
	if c.depth < 0 {
		return config{}, errors.Wrapf(ErrInvalidConfig, "depth %d is negative", c.depth)
	}
	if c.depth > MaxDepth {
		return config{}, errors.Wrapf(ErrInvalidConfig, "depth %d exceeds the maximum of %d", c.depth, MaxDepth)
	}
	if c.evaluate == nil {
		return config{}, errors.Wrap(ErrInvalidConfig, "evaluation function is nil")
	}
	return c, nil
}

func (c *config) Kind() Kind {
	return c.kind
}

func (c *config) Depth() int {
	return c.depth
}

// search is one top-level call. Everything it mutates lives here, so a
// searcher can run any number of searches at once.
type search struct {
	*config
	metrics MetricsCollector
}

// begin starts a search from state. A finished game has no action to
// choose.
func (c *config) begin(state game.State, agent game.Player) search {
	if state.IsTerminal() {
		panic(errors.Wrapf(game.ErrGameOver, "%s search for %s", c.kind, agent))
	}
	metrics := NewNoMetricsCollector()
	if c.withMetrics {
		metrics = NewMetricsCollector()
	}
	metrics.Start()
	return search{config: c, metrics: metrics}
}

// cutoff is the evaluation cutoff policy shared by every variant: a node is
// not expanded when the game is over there or the depth budget is spent, and
// its value is the static evaluation instead.
func (s search) cutoff(state game.State, depth int, perspective game.Perspective) (float64, bool) {
	terminal := state.IsTerminal()
	if !terminal && depth > 0 {
		return 0, false
	}
	s.metrics.AddEvaluation(terminal)
	return s.evaluate(state, perspective), true
}

// legalActions enumerates player's actions at a node that passed the cutoff
// check. An empty set there is a broken State implementation.
func (s search) legalActions(state game.State, player game.Player, depth int) []game.Action {
	actions := state.LegalActions(player)
	if len(actions) == 0 {
		panic(errors.Wrapf(ErrNoLegalActions, "%s search: %s to move with %d plies left", s.kind, player, depth))
	}
	s.metrics.AddVisit()
	return actions
}

func (s search) successor(state game.State, player game.Player, action game.Action) game.State {
	s.metrics.AddGenerated()
	return state.Successor(player, action)
}

// perspective returns the evaluation perspective at a node where the side
// to move is agent when maximizing and the opponent otherwise.
func perspective(agent game.Player, maximizing bool) game.Perspective {
	if maximizing {
		return game.Perspective{Agent: agent, ToMove: agent}
	}
	return game.Perspective{Agent: agent, ToMove: agent.Opponent()}
}

func (s search) finish(action game.Action, value float64) Result {
	metrics := s.metrics.Complete()
	metrics.Depth = s.depth
	log.Debug().
		Str("search", string(s.kind)).
		Int("depth", s.depth).
		Stringer("action", action).
		Float64("value", value).
		Int64("evaluated", metrics.Evaluated).
		Int64("cutoffs", metrics.Cutoffs).
		Dur("duration", metrics.Duration).
		Msg("selected action")
	return Result{Action: action, Value: value, Metrics: metrics}
}
