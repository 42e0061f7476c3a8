package searcher

import (
	"math"

	"connect4/game"
)

// Expectimax models the opponent as picking uniformly at random among its
// legal actions: opponent nodes take the mean of their successors' values
// instead of the minimum.
type Expectimax struct {
	config
}

func NewExpectimax(options ...Option) (*Expectimax, error) {
	c, err := newConfig(KindExpectimax, options)
	if err != nil {
		return nil, err
	}
	return &Expectimax{config: c}, nil
}

func (e *Expectimax) SelectAction(state game.State, agent game.Player) game.Action {
	return e.Search(state, agent).Action
}

func (e *Expectimax) Search(state game.State, agent game.Player) Result {
	s := expectimaxSearch{e.begin(state, agent)}

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

type expectimaxSearch struct {
	search
}

func (s expectimaxSearch) value(state game.State, agent game.Player, depth int, maximizing bool) float64 {
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
	actions := s.legalActions(state, opponent, depth)
	p := 1 / float64(len(actions))
	v := 0.0
	for _, action := range actions {
		v += p * s.value(s.successor(state, opponent, action), agent, depth-1, true)
	}
	return v
}
