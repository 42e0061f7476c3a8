package serve

import (
	"context"
	"flag"
	"net"

	"connect4/communication/server"
	"connect4/meta"
	"connect4/searcher/agent"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

type Command struct {
	host  string
	port  string
	agent string
}

func (*Command) Name() string     { return "serve" }
func (*Command) Synopsis() string { return "Serve an agent over HTTP" }
func (*Command) Usage() string {
	return `serve [-port PORT] [-agent AGENT]

Serve POST /findmove and GET /healthz for an agent. Other processes play
against it with the agent remote:url=http://HOST:PORT.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.host, "host", "", "bind address")
	flags.StringVar(&c.port, "port", meta.PORT, "bind port")
	flags.StringVar(&c.agent, "agent", meta.AGENT, "agent to serve")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	config, err := agent.ParseConfig(c.agent)
	if err != nil {
		log.Error().Err(err).Msg("agent")
		return subcommands.ExitUsageError
	}
	a, err := config.Build()
	if err != nil {
		log.Error().Err(err).Msg("agent")
		return subcommands.ExitUsageError
	}
	log.Info().Msgf("serving %s", config)

	if err := server.NewServer(a).ListenAndServe(ctx, net.JoinHostPort(c.host, c.port)); err != nil {
		log.Error().Err(err).Msg("server stopped")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
