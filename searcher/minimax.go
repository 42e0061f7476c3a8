package searcher

import (
	"math"

	"connect4/game"
)

// Minimax searches the full tree to the configured depth assuming the
// opponent always replies with the move that is worst for the agent.
type Minimax struct {
	config
}

func NewMinimax(options ...Option) (*Minimax, error) {
	c, err := newConfig(KindMinimax, options)
	if err != nil {
		return nil, err
	}
	return &Minimax{config: c}, nil
}

func (m *Minimax) SelectAction(state game.State, agent game.Player) game.Action {
	return m.Search(state, agent).Action
}

// Search scores every root action by the minimax value of its successor and
// returns the first action with the highest value.
func (m *Minimax) Search(state game.State, agent game.Player) Result {
	s := minimaxSearch{m.begin(state, agent)}

	var best game.Action
	bestValue := math.Inf(-1)
	for _, action := range s.legalActions(state, agent, s.depth) {
		v := s.value(s.successor(state, agent, action), agent, s.depth-1, false)
		if best == nil || v > bestValue {
			best, bestValue = action, v
		}
	}
	return s.finish(best, bestValue)
}

type minimaxSearch struct {
	search
}

func (s minimaxSearch) value(state game.State, agent game.Player, depth int, maximizing bool) float64 {
	if v, ok := s.cutoff(state, depth, perspective(agent, maximizing)); ok {
		return v
	}

	if maximizing {
		v := math.Inf(-1)
		for _, action := range s.legalActions(state, agent, depth) {
			v = math.Max(v, s.value(s.successor(state, agent, action), agent, depth-1, false))
		}
		return v
	}

	opponent := agent.Opponent()
	v := math.Inf(1)
	for _, action := range s.legalActions(state, opponent, depth) {
		v = math.Min(v, s.value(s.successor(state, opponent, action), agent, depth-1, true))
	}
	return v
}
