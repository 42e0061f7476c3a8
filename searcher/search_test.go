package searcher

import (
	"math"
	"testing"

	"connect4/game"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

func newSearcher(t *testing.T, kind Kind, options ...Option) Searcher {
	t.Helper()
	s, err := New(kind, append([]Option{WithEvaluationFn(mockValue), WithMetrics()}, options...)...)
	require.NoError(t, err)
	return s
}

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, kind := range Kinds() {
			s, err := New(kind)

			require.NoError(t, err)
			require.Equal(t, kind, s.Kind())
			require.Equal(t, DefaultDepth, s.Depth())
		}
	})

	t.Run("invalid configurations are rejected", func(t *testing.T) {
		cases := map[string][]Option{
			"negative depth":    {WithDepth(-1)},
			"excessive depth":   {WithDepth(MaxDepth + 1)},
			"missing evaluator": {WithEvaluationFn(nil)},
		}
		for name, options := range cases {
			for _, kind := range Kinds() {
				s, err := New(kind, options...)

				require.Nil(t, s, "%s: %s should not build", kind, name)
				require.True(t, errors.Is(err, ErrInvalidConfig), "%s: %s should be a config error", kind, name)
			}
		}
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		s, err := New("mcts")

		require.Nil(t, s)
		require.True(t, errors.Is(err, ErrInvalidConfig))
	})
}

func TestSearchValues(t *testing.T) {
	t.Run("minimax assumes the worst reply", func(t *testing.T) {
		root := node(node(leaf(3), leaf(5)), node(leaf(2), leaf(9)))

		got := newSearcher(t, KindMinimax).Search(root, game.Player1)

		require.Equal(t, mockAction{id: 0}, got.Action)
		require.Equal(t, 3.0, got.Value)
		require.EqualValues(t, 4, got.Metrics.Evaluated)
		require.EqualValues(t, 0, got.Metrics.Cutoffs)
	})

	t.Run("alpha-beta skips the refuted sibling", func(t *testing.T) {
		root := node(node(leaf(3), leaf(5)), node(leaf(2), leaf(9)))
		calls := countSuccessors(root)

		got := newSearcher(t, KindAlphaBeta).Search(root, game.Player1)

		require.Equal(t, mockAction{id: 0}, got.Action)
		require.Equal(t, 3.0, got.Value)
		require.EqualValues(t, 3, got.Metrics.Evaluated, "Leaf 9 should never be evaluated")
		require.EqualValues(t, 1, got.Metrics.Cutoffs)
		require.Equal(t, 5, *calls)
	})

	t.Run("expectimax averages over opponent replies", func(t *testing.T) {
		cases := []struct {
			leaves []float64
			want   float64
		}{
			{[]float64{4}, 4},
			{[]float64{1, 2}, 1.5},
			{[]float64{1, 2, 4}, 7.0 / 3},
		}
		for _, tc := range cases {
			chance := node()
			for _, v := range tc.leaves {
				chance.children = append(chance.children, leaf(v))
			}

			got := newSearcher(t, KindExpectimax).Search(node(chance), game.Player1)

			require.InDelta(t, tc.want, got.Value, 1e-9, "Mean of %v", tc.leaves)
		}
	})

	t.Run("expectimax prefers the better average over the better worst case", func(t *testing.T) {
		root := node(node(leaf(3), leaf(3)), node(leaf(1), leaf(9)))

		require.Equal(t, mockAction{id: 0}, newSearcher(t, KindMinimax).SelectAction(root, game.Player1))
		require.Equal(t, mockAction{id: 1}, newSearcher(t, KindExpectimax).SelectAction(root, game.Player1))
	})
}

func TestSearchEquivalence(t *testing.T) {
	t.Run("alpha-beta agrees with minimax on random trees", func(t *testing.T) {
		r := rand.New(rand.NewSource(42))
		for i := 0; i < 500; i++ {
			root := randomTree(r, 1+r.Intn(4))
			if root.terminal {
				continue
			}
			depth := r.Intn(5)

			want := newSearcher(t, KindMinimax, WithDepth(depth)).Search(root, game.Player1)
			got := newSearcher(t, KindAlphaBeta, WithDepth(depth)).Search(root, game.Player1)

			require.Equal(t, want.Action, got.Action, "tree %d at depth %d", i, depth)
			require.Equal(t, want.Value, got.Value, "tree %d at depth %d", i, depth)
			require.LessOrEqual(t, got.Metrics.Evaluated, want.Metrics.Evaluated,
				"Pruning should never evaluate more states")
		}
	})
}

func TestSearchDepth(t *testing.T) {
	t.Run("depth zero picks the best immediate successor", func(t *testing.T) {
		// Deeper subtrees would reverse the choice
		a := &mockState{value: 1, children: []*mockState{leaf(10)}}
		b := &mockState{value: 4, children: []*mockState{leaf(-10)}}
		c := &mockState{value: 2, children: []*mockState{leaf(0)}}
		for _, kind := range Kinds() {
			root := node(a, b, c)
			calls := countSuccessors(root)

			got := newSearcher(t, kind, WithDepth(0)).Search(root, game.Player1)

			require.Equal(t, mockAction{id: 1}, got.Action, kind)
			require.Equal(t, 4.0, got.Value, kind)
			require.Equal(t, 3, *calls, "%s should only generate root successors", kind)
		}
	})

	t.Run("terminal states are never expanded", func(t *testing.T) {
		finished := &mockState{value: 7, terminal: true, children: []*mockState{leaf(-100)}}
		for _, kind := range Kinds() {
			root := node(finished)
			calls := countSuccessors(root)

			got := newSearcher(t, kind, WithDepth(5)).Search(root, game.Player1)

			require.Equal(t, 7.0, got.Value, kind)
			require.Equal(t, 1, *calls, kind)
			require.EqualValues(t, 1, got.Metrics.Terminal, kind)
		}
	})

	t.Run("evaluation sees who is to move", func(t *testing.T) {
		var seen []game.Perspective
		record := func(s game.State, p game.Perspective) float64 {
			seen = append(seen, p)
			return mockValue(s, p)
		}
		root := node(node(&mockState{value: 1, children: []*mockState{leaf(1)}}))

		for depth, toMove := range []game.Player{game.Player1, game.Player1, game.Player2, game.Player1} {
			seen = nil
			s, err := NewMinimax(WithDepth(depth), WithEvaluationFn(record))
			require.NoError(t, err)

			s.SelectAction(root, game.Player2)

			require.Len(t, seen, 1)
			require.Equal(t, game.Perspective{Agent: game.Player2, ToMove: toMove}, seen[0], "depth %d", depth)
		}
	})
}

func TestSearchTieBreak(t *testing.T) {
	t.Run("first of equally good actions wins every time", func(t *testing.T) {
		for _, kind := range Kinds() {
			root := node(node(leaf(2)), node(leaf(5)), node(leaf(5)), node(leaf(5)))
			s := newSearcher(t, kind)

			for i := 0; i < 10; i++ {
				require.Equal(t, mockAction{id: 1}, s.SelectAction(root, game.Player1), kind)
			}
		}
	})

	t.Run("single action is chosen whatever its value", func(t *testing.T) {
		hopeless := func(game.State, game.Perspective) float64 { return math.Inf(-1) }
		for _, kind := range Kinds() {
			s, err := New(kind, WithEvaluationFn(hopeless))
			require.NoError(t, err)

			got := s.Search(node(node(leaf(0))), game.Player1)

			require.Equal(t, mockAction{id: 0}, got.Action, kind)
			require.True(t, math.IsInf(got.Value, -1), kind)
		}
	})
}

func TestSearchContractViolation(t *testing.T) {
	t.Run("panics on a live state without actions", func(t *testing.T) {
		for _, kind := range Kinds() {
			s := newSearcher(t, kind)
			roots := []*mockState{node(), node(node())}

			for _, root := range roots {
				func() {
					defer func() {
						r := recover()
						require.NotNil(t, r, "%s should panic", kind)
						err, ok := r.(error)
						require.True(t, ok)
						require.True(t, errors.Is(err, ErrNoLegalActions))
					}()
					s.SelectAction(root, game.Player1)
				}()
			}
		}
	})
}

func TestSearchFinishedGame(t *testing.T) {
	t.Run("panics with game over on a finished root", func(t *testing.T) {
		won, err := game.ParseBoard("......./......./......./......./OOO..../XXXX...")
		require.NoError(t, err)
		for _, kind := range Kinds() {
			for _, root := range []game.State{leaf(4), won} {
				s, err := New(kind, WithMetrics())
				require.NoError(t, err)

				func() {
					defer func() {
						err, ok := recover().(error)
						require.True(t, ok, "%s should panic with an error", kind)
						require.True(t, errors.Is(err, game.ErrGameOver), kind)
						require.False(t, errors.Is(err, ErrNoLegalActions), kind)
					}()
					s.Search(root, game.Player1)
				}()
			}
		}
	})
}

func TestSearchMetrics(t *testing.T) {
	t.Run("metrics are reset between searches", func(t *testing.T) {
		s := newSearcher(t, KindMinimax)
		root := node(node(leaf(1), leaf(2)), node(leaf(3)))

		first := s.Search(root, game.Player1)
		second := s.Search(root, game.Player1)

		require.EqualValues(t, 3, first.Metrics.Evaluated)
		require.Equal(t, first.Metrics.Evaluated, second.Metrics.Evaluated)
		require.Equal(t, first.Metrics.Generated, second.Metrics.Generated)
		require.Equal(t, DefaultDepth, second.Metrics.Depth)
	})

	t.Run("concurrent searches keep their own counts", func(t *testing.T) {
		trees := []*mockState{
			node(node(leaf(1), leaf(2)), node(leaf(3))),
			node(node(leaf(1), leaf(2), leaf(3)), node(leaf(4), leaf(5)), node(leaf(6))),
		}
		for _, kind := range Kinds() {
			s := newSearcher(t, kind)
			var want [2]Metrics
			for i, root := range trees {
				want[i] = s.Search(root, game.Player1).Metrics
			}
			require.NotEqual(t, want[0].Evaluated, want[1].Evaluated, kind)

			const workers, rounds = 16, 20
			var got [workers][rounds]Metrics
			var g errgroup.Group
			for w := 0; w < workers; w++ {
				w := w
				g.Go(func() error {
					for r := 0; r < rounds; r++ {
						got[w][r] = s.Search(trees[w%2], game.Player1).Metrics
					}
					return nil
				})
			}
			require.NoError(t, g.Wait())

			for w := range got {
				for _, m := range got[w] {
					require.Equal(t, want[w%2].Evaluated, m.Evaluated, "%s worker %d", kind, w)
					require.Equal(t, want[w%2].Generated, m.Generated, "%s worker %d", kind, w)
					require.Equal(t, want[w%2].Visited, m.Visited, "%s worker %d", kind, w)
				}
			}
		}
	})

	t.Run("metrics are empty unless enabled", func(t *testing.T) {
		s, err := NewAlphaBeta(WithEvaluationFn(mockValue))
		require.NoError(t, err)

		got := s.Search(node(node(leaf(1))), game.Player1)

		require.Zero(t, got.Metrics.Evaluated)
		require.Equal(t, DefaultDepth, got.Metrics.Depth)
	})
}

func TestSearchBoard(t *testing.T) {
	board := func(t *testing.T, columns ...int) *game.Board {
		b := game.NewBoard()
		for _, col := range columns {
			next, err := b.Play(b.Turn(), game.Column(col))
			require.NoError(t, err)
			b = next
		}
		return b
	}

	t.Run("blocks an immediate threat", func(t *testing.T) {
		b := board(t, 0, 6, 1, 6, 2)
		for _, kind := range Kinds() {
			s, err := New(kind, WithEvaluationFn(game.EvaluateWindows))
			require.NoError(t, err)

			require.Equal(t, game.Column(3), s.SelectAction(b, b.Turn()), kind)
		}
	})

	t.Run("takes an immediate win", func(t *testing.T) {
		b := board(t, 0, 6, 1, 6, 2, 5)
		for _, kind := range Kinds() {
			for depth := 1; depth <= 3; depth++ {
				s, err := New(kind, WithDepth(depth), WithEvaluationFn(game.EvaluateWindows))
				require.NoError(t, err)

				got := s.Search(b, b.Turn())

				require.Equal(t, game.Column(3), got.Action, "%s at depth %d", kind, depth)
				require.Equal(t, game.WinValue-7, got.Value, "%s at depth %d", kind, depth)
			}
		}
	})
}
