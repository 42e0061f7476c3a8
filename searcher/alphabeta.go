package searcher

import (
	"math"

	"connect4/game"
)

// AlphaBeta computes the same decisions as Minimax but skips subtrees that
// cannot change the result. alpha is the value the agent is already
// guaranteed on the current path, beta the value the opponent is.
type AlphaBeta struct {
	config
}

func NewAlphaBeta(options ...Option) (*AlphaBeta, error) {
	c, err := newConfig(KindAlphaBeta, options)
	if err != nil {
		return nil, err
	}
	return &AlphaBeta{config: c}, nil
}

func (a *AlphaBeta) SelectAction(state game.State, agent game.Player) game.Action {
	return a.Search(state, agent).Action
}

func (a *AlphaBeta) Search(state game.State, agent game.Player) Result {
	s := alphaBetaSearch{a.begin(state, agent)}

	alpha, beta := math.Inf(-1), math.Inf(1)
	var best game.Action
	bestValue := math.Inf(-1)
	for _, action := range s.legalActions(state, agent, s.depth) {
		v := s.minValue(s.successor(state, agent, action), agent, s.depth-1, alpha, beta)
		if best == nil || v > bestValue {
			best, bestValue = action, v
		}
		// Nothing outside the root bounds it, so beta stays +Inf and this
		// never fires. It keeps the root loop identical to maxValue.
		if bestValue > beta {
			s.metrics.AddCutoff()
			break
		}
		alpha = math.Max(alpha, bestValue)
	}
	return s.finish(best, bestValue)
}

type alphaBetaSearch struct {
	search
}

func (s alphaBetaSearch) maxValue(state game.State, agent game.Player, depth int, alpha, beta float64) float64 {
	if v, ok := s.cutoff(state, depth, perspective(agent, true)); ok {
		return v
	}

	v := math.Inf(-1)
	for _, action := range s.legalActions(state, agent, depth) {
		v = math.Max(v, s.minValue(s.successor(state, agent, action), agent, depth-1, alpha, beta))
		if v > beta {
			s.metrics.AddCutoff()
			return v
		}
		alpha = math.Max(alpha, v)
	}
	return v
}

func (s alphaBetaSearch) minValue(state game.State, agent game.Player, depth int, alpha, beta float64) float64 {
	if v, ok := s.cutoff(state, depth, perspective(agent, false)); ok {
		return v
	}

	opponent := agent.Opponent()
	v := math.Inf(1)
	for _, action := range s.legalActions(state, opponent, depth) {
		v = math.Min(v, s.maxValue(s.successor(state, opponent, action), agent, depth-1, alpha, beta))
		if v < alpha {
			s.metrics.AddCutoff()
			return v
		}
		beta = math.Min(beta, v)
	}
	return v
}
