package agent

import (
	"sort"
	"strings"

	"connect4/game"
	"connect4/meta"
	"connect4/searcher"

	"github.com/pkg/errors"
)

type Agent interface {
	// FindMove returns the action player should take in state, and search
	// metrics when the agent collects them
	FindMove(state game.State, player game.Player) (game.Action, searcher.Metrics)
}

// Builder creates an agent from the parameters of its config string.
type Builder func(params Params) (Agent, error)

var builders = map[string]Builder{
	string(searcher.KindMinimax):    searchBuilder(searcher.KindMinimax),
	string(searcher.KindAlphaBeta):  searchBuilder(searcher.KindAlphaBeta),
	string(searcher.KindExpectimax): searchBuilder(searcher.KindExpectimax),
	"random":                        newRandom,
}

// Register makes an agent kind available to New. Packages providing agents
// that need more than the game and searcher register themselves from init.
func Register(kind string, builder Builder) {
	builders[kind] = builder
}

// Kinds lists the registered agent kinds in sorted order.
func Kinds() []string {
	kinds := make([]string, 0, len(builders))
	for kind := range builders {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Config is a parsed agent config string.
type Config struct {
	Kind   string
	Params Params
}

// ParseConfig splits an agent config string of the form
// "kind:key=value,key=value". A key without a value is stored with an empty
// value. An empty string means meta.AGENT.
func ParseConfig(config string) (Config, error) {
	if config == "" {
		config = meta.AGENT
	}
	kind, rest, _ := strings.Cut(config, ":")
	if kind == "" {
		return Config{}, errors.Errorf("agent config %q has no kind", config)
	}

	params := make(Params)
	if rest != "" {
		for _, part := range strings.Split(rest, ",") {
			key, value, _ := strings.Cut(part, "=")
			if key == "" {
				return Config{}, errors.Errorf("agent config %q has an empty parameter name", config)
			}
			if _, ok := params[key]; ok {
				return Config{}, errors.Errorf("agent config %q repeats parameter %q", config, key)
			}
			params[key] = value
		}
	}
	return Config{Kind: kind, Params: params}, nil
}

// String formats the config back into its string form with sorted keys.
func (c Config) String() string {
	if len(c.Params) == 0 {
		return c.Kind
	}
	keys := make([]string, 0, len(c.Params))
	for key := range c.Params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(c.Kind)
	b.WriteByte(':')
	for i, key := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(key)
		if value := c.Params[key]; value != "" {
			b.WriteByte('=')
			b.WriteString(value)
		}
	}
	return b.String()
}

// New creates an agent from its config string.
func New(config string) (Agent, error) {
	c, err := ParseConfig(config)
	if err != nil {
		return nil, err
	}
	return c.Build()
}

// Build creates the agent the config describes. Parameters the agent kind
// does not know are an error.
func (c Config) Build() (Agent, error) {
	builder, ok := builders[c.Kind]
	if !ok {
		return nil, errors.Errorf("unknown agent kind %q, expected one of %s", c.Kind, strings.Join(Kinds(), ", "))
	}
	params := c.Params.clone()
	agent, err := builder(params)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to create agent %q", c.Kind)
	}
	if len(params) > 0 {
		return nil, errors.Errorf("agent %q does not accept parameters %s", c.Kind, strings.Join(params.keys(), ", "))
	}
	return agent, nil
}
