package experiments

import (
	"context"
	"fmt"

	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

type PruningOptions struct {
	MaxDepth  int    // Depths 1..MaxDepth are searched
	Positions int    // Random openings per depth
	Plies     int    // Random moves played to reach each opening
	Seed      uint64 // Seed for the openings
	Parallel  int

	Writer *metrics.Writer
	Store  *metrics.Store
}

// RandomPositions plays plies random moves from the empty board n times,
// keeping only games that are still undecided.
func RandomPositions(n, plies int, seed uint64) []*game.Board {
	rng := rand.New(rand.NewSource(seed))
	if plies >= game.Rows*game.Columns {
		plies = game.Rows*game.Columns - 1
	}
	positions := make([]*game.Board, 0, n)
	for len(positions) < n {
		b := game.NewBoard()
		for i := 0; i < plies && !b.IsTerminal(); i++ {
			actions := b.LegalActions(b.Turn())
			b = b.Successor(b.Turn(), actions[rng.Intn(len(actions))]).(*game.Board)
		}
		if !b.IsTerminal() {
			positions = append(positions, b)
		}
	}
	return positions
}

// RunPruningExperiment searches the same positions with minimax and
// alpha-beta at every depth and records how much work each did. Both must
// choose the same action; a mismatch is an error.
func RunPruningExperiment(ctx context.Context, opts PruningOptions) ([]metrics.PruningRecord, error) {
	positions := RandomPositions(opts.Positions, opts.Plies, opts.Seed)
	kinds := []searcher.Kind{searcher.KindMinimax, searcher.KindAlphaBeta}

	log.Info().Msgf("starting pruning experiment to depth %d on %d positions...", opts.MaxDepth, len(positions))

	records := make([]metrics.PruningRecord, opts.MaxDepth*len(positions)*len(kinds))
	g, ctx := errgroup.WithContext(ctx)
	if opts.Parallel > 0 {
		g.SetLimit(opts.Parallel)
	}
	for depth := 1; depth <= opts.MaxDepth; depth++ {
		for pi, position := range positions {
			base := ((depth-1)*len(positions) + pi) * len(kinds)
			depth, pi, position := depth, pi, position
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				var actions []game.Action
				for ki, kind := range kinds {
					s, err := searcher.New(kind,
						searcher.WithDepth(depth),
						searcher.WithEvaluationFn(game.EvaluateWindows),
						searcher.WithMetrics())
					if err != nil {
						return err
					}
					result := s.Search(position, position.Turn())
					actions = append(actions, result.Action)
					records[base+ki] = metrics.PruningRecord{
						Depth:     depth,
						Position:  pi,
						Kind:      string(kind),
						Action:    result.Action.String(),
						Value:     result.Value,
						Visited:   result.Metrics.Visited,
						Generated: result.Metrics.Generated,
						Evaluated: result.Metrics.Evaluated,
						Cutoffs:   result.Metrics.Cutoffs,
						Duration:  result.Metrics.Duration,
					}
				}
				if actions[0] != actions[1] {
					return fmt.Errorf("depth %d position %d (%s): minimax chose %v, alpha-beta %v",
						depth, pi, position, actions[0], actions[1])
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for depth := 1; depth <= opts.MaxDepth; depth++ {
		var evaluated [2]int64
		for _, r := range records {
			if r.Depth != depth {
				continue
			}
			if r.Kind == string(searcher.KindMinimax) {
				evaluated[0] += r.Evaluated
			} else {
				evaluated[1] += r.Evaluated
			}
		}
		log.Info().
			Int("depth", depth).
			Int64("minimax", evaluated[0]).
			Int64("alphabeta", evaluated[1]).
			Msg("evaluations")
	}

	if w := opts.Writer; w != nil {
		if err := w.WritePruningRecords(records); err != nil {
			return records, err
		}
		log.Info().Msgf("stored records in %s", w.Dir())
	}
	if s := opts.Store; s != nil {
		if err := s.InsertPruningRecords(records); err != nil {
			return records, err
		}
		log.Info().Msgf("stored records for run %s", s.Run())
	}
	return records, nil
}
