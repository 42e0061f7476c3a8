package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"connect4/cmd/internal/analyze"
	"connect4/cmd/internal/experiment"
	"connect4/cmd/internal/play"
	"connect4/cmd/internal/selfplay"
	"connect4/cmd/internal/serve"
	"connect4/cmd/internal/train"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	verbose = flag.Bool("v", false, "log at debug level")
	quiet   = flag.Bool("quiet", false, "only log warnings and errors")
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(&play.Command{}, "")
	subcommands.Register(&analyze.Command{}, "")
	subcommands.Register(&serve.Command{}, "")
	subcommands.Register(&selfplay.Command{}, "experiments")
	subcommands.Register(&experiment.Command{}, "experiments")
	subcommands.Register(&train.Command{}, "experiments")

	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	switch {
	case *verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case *quiet:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	status := subcommands.Execute(ctx)
	stop()
	os.Exit(int(status))
}
