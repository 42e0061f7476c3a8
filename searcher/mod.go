package searcher

import (
	"connect4/game"

	"github.com/pkg/errors"
)

// Kind names a search variant.
type Kind string

const (
	KindMinimax    Kind = "minimax"
	KindAlphaBeta  Kind = "alphabeta"
	KindExpectimax Kind = "expectimax"
)

const (
	DefaultDepth = 2

	// MaxDepth bounds the configured depth. Recursion is depth-first, so
	// stack use grows with depth only, never with the branching factor.
	MaxDepth = 64
)

var (
	ErrInvalidConfig  = errors.New("invalid search configuration")
	ErrNoLegalActions = errors.New("no legal actions at a non-terminal state")
)

// Searcher picks an action for agent by searching the game tree below
// state. Nothing is kept between calls: the tree is rebuilt from scratch
// every time, and concurrent calls on distinct states do not interfere.
// Searching a finished game panics with an error wrapping game.ErrGameOver.
type Searcher interface {
	Kind() Kind
	Depth() int
	SelectAction(state game.State, agent game.Player) game.Action
	Search(state game.State, agent game.Player) Result
}

// Result is the outcome of one top-level search.
type Result struct {
	Action  game.Action
	Value   float64
	Metrics Metrics
}

func Kinds() []Kind {
	return []Kind{KindMinimax, KindAlphaBeta, KindExpectimax}
}

// New builds the searcher of the given kind.
func New(kind Kind, options ...Option) (Searcher, error) {
	switch kind {
	case KindMinimax:
		return NewMinimax(options...)
	case KindAlphaBeta:
		return NewAlphaBeta(options...)
	case KindExpectimax:
		return NewExpectimax(options...)
	default:
		return nil, errors.Wrapf(ErrInvalidConfig, "unknown search kind %q", kind)
	}
}
