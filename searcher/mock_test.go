package searcher

import (
	"fmt"

	"connect4/game"

	"golang.org/x/exp/rand"
)

type mockAction struct {
	id int
}

func (a mockAction) String() string {
	return fmt.Sprintf("a%d", a.id)
}

// mockState is an explicit game tree. Interior nodes carry a value too, which
// is what the static evaluation sees when the depth budget runs out there.
type mockState struct {
	value    float64
	terminal bool
	children []*mockState
	calls    *int // Successor calls across the whole tree
}

func leaf(value float64) *mockState {
	return &mockState{value: value, terminal: true}
}

func node(children ...*mockState) *mockState {
	return &mockState{children: children}
}

func (m *mockState) LegalActions(game.Player) []game.Action {
	if m.IsTerminal() {
		return nil
	}
	actions := make([]game.Action, len(m.children))
	for i := range m.children {
		actions[i] = mockAction{id: i}
	}
	return actions
}

func (m *mockState) Successor(_ game.Player, action game.Action) game.State {
	if m.calls != nil {
		*m.calls++
	}
	return m.children[action.(mockAction).id]
}

func (m *mockState) IsTerminal() bool          { return m.terminal }
func (m *mockState) IsWin(game.Player) bool    { return false }
func (m *mockState) IsLose(game.Player) bool   { return false }
func (m *mockState) Score(game.Player) float64 { return m.value }

// countSuccessors shares one Successor counter across the tree rooted at m.
func countSuccessors(m *mockState) *int {
	calls := new(int)
	var walk func(*mockState)
	walk = func(s *mockState) {
		s.calls = calls
		for _, child := range s.children {
			walk(child)
		}
	}
	walk(m)
	return calls
}

// mockValue is the static evaluation for mock trees.
func mockValue(state game.State, _ game.Perspective) float64 {
	return state.(*mockState).value
}

// randomTree builds a tree of the given height with 1 to 4 children per node
// and small integer values, so ties are frequent. Some interior nodes are
// terminal.
func randomTree(r *rand.Rand, height int) *mockState {
	value := float64(r.Intn(7) - 3)
	if height == 0 || r.Intn(8) == 0 {
		return &mockState{value: value, terminal: true}
	}
	s := &mockState{value: value}
	n := 1 + r.Intn(4)
	for i := 0; i < n; i++ {
		s.children = append(s.children, randomTree(r, height-1))
	}
	return s
}
