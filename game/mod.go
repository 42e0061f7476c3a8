package game

import "fmt"

// Player identifies one of the two sides of the game.
type Player int

const (
	NoPlayer Player = iota
	Player1
	Player2
)

func (p Player) Opponent() Player {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return NoPlayer
	}
}

func (p Player) String() string {
	switch p {
	case Player1:
		return "Player1"
	case Player2:
		return "Player2"
	default:
		return "NoPlayer"
	}
}

// Action is an opaque, comparable token for a legal move. Searchers never
// look inside it.
type Action interface {
	fmt.Stringer
}

// State is the rules engine as seen by a searcher. Implementations must be
// immutable: Successor always returns a fresh state and never modifies the
// receiver.
type State interface {
	// LegalActions returns the moves available to player in a stable order.
	// It is non-empty for any non-terminal state.
	LegalActions(player Player) []Action
	Successor(player Player, action Action) State
	IsTerminal() bool
	IsWin(player Player) bool
	IsLose(player Player) bool
	// Score is the current game score from player's point of view.
	Score(player Player) float64
}

// Perspective tells an evaluation function who the search is maximizing for
// and whose move it is at the evaluated node.
type Perspective struct {
	Agent  Player
	ToMove Player
}

// Evaluate scores a state from the perspective's agent point of view.
// Higher is strictly better for the agent.
type Evaluate func(state State, perspective Perspective) float64
