package train

import (
	"context"
	"flag"

	"connect4/game"
	"connect4/player"
	"connect4/searcher/agent"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

type Command struct {
	p1      string
	p2      string
	games   int
	epsilon float64
	seed    uint64

	epochs int
	init   string
	out    string
}

func (*Command) Name() string     { return "train" }
func (*Command) Synopsis() string { return "Train the neural evaluation on self-play games" }
func (*Command) Usage() string {
	return `train [flags]

Play agents against each other, label every position with the final
result and fit the neural evaluation to them. The weights are written to
-out and can be used with eval=neural,weights=FILE.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.p1, "p1", "alphabeta:depth=2,eval=windows,metrics=false", "player 1 agent")
	flags.StringVar(&c.p2, "p2", "alphabeta:depth=2,eval=windows,metrics=false", "player 2 agent")
	flags.IntVar(&c.games, "games", 200, "self-play games")
	flags.Float64Var(&c.epsilon, "epsilon", 0.1, "probability of a random move")
	flags.Uint64Var(&c.seed, "seed", 1, "random seed")
	flags.IntVar(&c.epochs, "epochs", 20, "training epochs")
	flags.StringVar(&c.init, "init", "", "weights to continue training from")
	flags.StringVar(&c.out, "out", "weights.json", "file to write weights to")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	player1, err := agent.New(c.p1)
	if err != nil {
		log.Error().Err(err).Msg("player 1")
		return subcommands.ExitUsageError
	}
	player2, err := agent.New(c.p2)
	if err != nil {
		log.Error().Err(err).Msg("player 2")
		return subcommands.ExitUsageError
	}

	evaluator := game.NewNeuralEvaluator(game.DefaultNeuralConfig())
	if c.init != "" {
		if evaluator, err = game.LoadNeuralEvaluator(c.init); err != nil {
			log.Error().Err(err).Msg("init")
			return subcommands.ExitFailure
		}
	}

	log.Info().Msgf("playing %d self-play games...", c.games)
	samples, err := player.NewSelfPlay(player1, player2, c.epsilon, c.seed).Generate(ctx, c.games)
	if err != nil {
		log.Error().Err(err).Msg("self-play")
		return subcommands.ExitFailure
	}

	log.Info().Int("samples", len(samples)).Int("epochs", c.epochs).Msg("training")
	if err := evaluator.Train(samples, c.epochs); err != nil {
		log.Error().Err(err).Msg("train")
		return subcommands.ExitFailure
	}
	if err := evaluator.Save(c.out); err != nil {
		log.Error().Err(err).Msg("save")
		return subcommands.ExitFailure
	}
	log.Info().Msgf("wrote weights to %s", c.out)
	return subcommands.ExitSuccess
}
