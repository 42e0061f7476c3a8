package experiments

import (
	"context"
	"fmt"

	"connect4/engine"
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/meta"
	"connect4/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Matchup pairs two AgentConfig IDs.
type Matchup struct {
	Agent1 int
	Agent2 int
}

type Options struct {
	Games    int  // Per matchup
	Parallel int  // Games played at once
	Swap     bool // Alternate which agent plays Player1

	// Records are written to whichever of these are set
	Writer *metrics.Writer
	Store  *metrics.Store
}

func DefaultOptions() Options {
	return Options{Games: meta.GAMES, Parallel: meta.GO_ROUTINES, Swap: true}
}

type Result struct {
	Configs []metrics.AgentConfig
	Games   []metrics.GameRecord
	Moves   []metrics.MoveRecord
}

// Score counts an agent's wins, losses and draws across all games.
func (r Result) Score(agentID int) (wins, losses, draws int) {
	for _, g := range r.Games {
		var seat game.Player
		switch agentID {
		case g.Agent1:
			seat = game.Player1
		case g.Agent2:
			seat = game.Player2
		default:
			continue
		}
		switch g.Winner {
		case game.NoPlayer:
			draws++
		case seat:
			wins++
		default:
			losses++
		}
	}
	return wins, losses, draws
}

// AllPairs returns every matchup between distinct configs.
func AllPairs(configs []metrics.AgentConfig) []Matchup {
	var matchups []Matchup
	for i := range configs {
		for j := i + 1; j < len(configs); j++ {
			matchups = append(matchups, Matchup{Agent1: configs[i].ID, Agent2: configs[j].ID})
		}
	}
	return matchups
}

// RunMatchups plays opts.Games games for every matchup, at most
// opts.Parallel at a time. Every game gets freshly built agents.
func RunMatchups(ctx context.Context, name string, configs []metrics.AgentConfig, matchups []Matchup, opts Options) (Result, error) {
	byID := make(map[int]string, len(configs))
	for _, c := range configs {
		if _, err := agent.New(c.Config); err != nil {
			return Result{}, fmt.Errorf("agent %d: %w", c.ID, err)
		}
		byID[c.ID] = c.Config
	}
	for _, m := range matchups {
		if _, ok := byID[m.Agent1]; !ok {
			return Result{}, fmt.Errorf("matchup refers to unknown agent %d", m.Agent1)
		}
		if _, ok := byID[m.Agent2]; !ok {
			return Result{}, fmt.Errorf("matchup refers to unknown agent %d", m.Agent2)
		}
	}

	log.Info().Msgf("starting %s experiment with %d matchups of %d games...", name, len(matchups), opts.Games)

	total := len(matchups) * opts.Games
	games := make([]metrics.GameRecord, total)
	moves := make([][]metrics.MoveRecord, total)

	g, ctx := errgroup.WithContext(ctx)
	if opts.Parallel > 0 {
		g.SetLimit(opts.Parallel)
	}
	for mi, matchup := range matchups {
		for i := 0; i < opts.Games; i++ {
			id := mi*opts.Games + i
			seats := matchup
			if opts.Swap && i%2 == 1 {
				seats = Matchup{Agent1: matchup.Agent2, Agent2: matchup.Agent1}
			}
			mi, i := mi, i
			g.Go(func() error {
				winner, gameMetric, moveMetrics, err := runGame(ctx, byID[seats.Agent1], byID[seats.Agent2])
				if err != nil {
					return fmt.Errorf("game %d (agent %d vs %d): %w", id, seats.Agent1, seats.Agent2, err)
				}
				games[id] = metrics.GameRecord{
					ID:         id,
					Agent1:     seats.Agent1,
					Agent2:     seats.Agent2,
					GameMetric: gameMetric,
				}
				for _, mm := range moveMetrics {
					moves[id] = append(moves[id], metrics.MoveRecord{Game: id, MoveMetric: mm})
				}
				log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(matchups), i+1, winner)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	result := Result{Configs: configs, Games: games}
	for _, m := range moves {
		result.Moves = append(result.Moves, m...)
	}
	log.Info().Msgf("completed %s experiment", name)

	if err := persist(result, opts); err != nil {
		return result, err
	}
	return result, nil
}

func runGame(ctx context.Context, config1, config2 string) (game.Player, metrics.GameMetric, []metrics.MoveMetric, error) {
	player1, err := agent.New(config1)
	if err != nil {
		return game.NoPlayer, metrics.GameMetric{}, nil, err
	}
	player2, err := agent.New(config2)
	if err != nil {
		return game.NoPlayer, metrics.GameMetric{}, nil, err
	}
	return engine.LocalEngine(player1, player2, engine.WithMetrics()).Run(ctx)
}

func persist(result Result, opts Options) error {
	if w := opts.Writer; w != nil {
		if err := w.WriteAgentConfigs(result.Configs); err != nil {
			return err
		}
		if err := w.WriteGameRecords(result.Games); err != nil {
			return err
		}
		if err := w.WriteMoveRecords(result.Moves); err != nil {
			return err
		}
		log.Info().Msgf("stored records in %s", w.Dir())
	}
	if s := opts.Store; s != nil {
		if err := s.InsertAgentConfigs(result.Configs); err != nil {
			return err
		}
		if err := s.InsertGameRecords(result.Games); err != nil {
			return err
		}
		if err := s.InsertMoveRecords(result.Moves); err != nil {
			return err
		}
		log.Info().Msgf("stored records for run %s", s.Run())
	}
	return nil
}
