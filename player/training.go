package player

import (
	"context"
	"fmt"

	"connect4/game"
	"connect4/gamemaster"
	"connect4/searcher/agent"

	"golang.org/x/exp/rand"
)

// SelfPlay plays agents against each other to label positions with the
// final result for training a learned evaluation.
type SelfPlay struct {
	Agents [2]agent.Agent // Player1, Player2
	// Epsilon is the probability of a uniformly random move instead of the
	// agent's, so games do not all repeat.
	Epsilon float64

	rng *rand.Rand
}

func NewSelfPlay(player1, player2 agent.Agent, epsilon float64, seed uint64) *SelfPlay {
	return &SelfPlay{
		Agents:  [2]agent.Agent{player1, player2},
		Epsilon: epsilon,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Play runs one game and returns a sample per position and player, labelled
// with the final score from that player's point of view.
func (s *SelfPlay) Play(ctx context.Context) ([]game.Sample, game.Player, error) {
	engine := gamemaster.NewLocalEngine()
	board, getUpdate := engine.Init()
	var positions []*game.Board

	for !board.IsTerminal() {
		if err := ctx.Err(); err != nil {
			return nil, game.NoPlayer, err
		}
		positions = append(positions, board)
		player := board.Turn()

		var action game.Action
		if s.rng.Float64() < s.Epsilon {
			legal := board.LegalActions(player)
			action = legal[s.rng.Intn(len(legal))]
		} else {
			action, _ = s.Agents[player-1].FindMove(board, player)
		}
		if err := engine.Play(player, action); err != nil {
			return nil, game.NoPlayer, fmt.Errorf("self-play move %d: %w", board.Moves()+1, err)
		}
		for u, ok := getUpdate(); ok; u, ok = getUpdate() {
			board = u.Board
		}
	}

	samples := make([]game.Sample, 0, 2*len(positions))
	for _, b := range positions {
		for _, p := range []game.Player{game.Player1, game.Player2} {
			samples = append(samples, game.Sample{
				Board:       b,
				Perspective: game.Perspective{Agent: p, ToMove: b.Turn()},
				Outcome:     board.Score(p),
			})
		}
	}
	return samples, board.Winner(), nil
}

// Generate plays games games and collects all their samples.
func (s *SelfPlay) Generate(ctx context.Context, games int) ([]game.Sample, error) {
	var samples []game.Sample
	for i := 0; i < games; i++ {
		gameSamples, _, err := s.Play(ctx)
		if err != nil {
			return nil, err
		}
		samples = append(samples, gameSamples...)
	}
	return samples, nil
}
