package player

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"connect4/game"
	"connect4/searcher"
	"connect4/searcher/agent"
	"connect4/utils"
)

func init() {
	agent.Register("human", func(agent.Params) (agent.Agent, error) {
		return NewHuman(os.Stdin, os.Stdout), nil
	})
}

// Human is an agent that asks a person for a column.
type Human struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewHuman(in io.Reader, out io.Writer) *Human {
	return &Human{in: bufio.NewScanner(in), out: out}
}

// FindMove prompts until a legal column is entered. It returns a nil action
// once the input is exhausted.
func (h *Human) FindMove(state game.State, player game.Player) (game.Action, searcher.Metrics) {
	start := time.Now()
	legal := state.LegalActions(player)
	if b, ok := state.(*game.Board); ok {
		fmt.Fprint(h.out, b.Pretty())
	}

	for {
		fmt.Fprintf(h.out, "%s, choose a column %v: ", player, legal)
		if !h.in.Scan() {
			fmt.Fprintln(h.out)
			return nil, searcher.Metrics{}
		}
		line := strings.TrimSpace(h.in.Text())
		col, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintf(h.out, "%q is not a column number\n", line)
			continue
		}
		if utils.FindIndex(legal, game.Action(game.Column(col))) == -1 {
			fmt.Fprintf(h.out, "column %d is not playable\n", col)
			continue
		}
		return game.Column(col), searcher.Metrics{StartTime: start, Duration: time.Since(start)}
	}
}
