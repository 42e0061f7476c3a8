package agent

import (
	"sync"
	"time"

	"connect4/game"
	"connect4/searcher"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent that picks uniformly among the
// legal actions.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(state game.State, player game.Player) (game.Action, searcher.Metrics) {
	start := time.Now()
	actions := state.LegalActions(player)
	if len(actions) == 0 {
		return nil, searcher.Metrics{}
	}
	a.mu.Lock()
	action := actions[a.rng.Intn(len(actions))]
	a.mu.Unlock()
	return action, searcher.Metrics{StartTime: start, Duration: time.Since(start)}
}

// newRandom accepts seed. Without one the agent is seeded from the clock.
func newRandom(params Params) (Agent, error) {
	seed, err := params.PopInt("seed", int(time.Now().UnixNano()))
	if err != nil {
		return nil, err
	}
	return NewRandomAgent(uint64(seed)), nil
}
