package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"connect4/communication"
	"connect4/game"
	"connect4/searcher"
	"connect4/searcher/agent"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

func init() {
	agent.Register("remote", newRemote)
}

// Agent asks an agent server for its moves.
type Agent struct {
	baseURL string
	client  *http.Client
}

func NewAgent(baseURL string, timeout time.Duration) *Agent {
	return &Agent{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// FindMove returns a nil action when the server cannot be reached or
// answers with an error, which the engine reports as an illegal move.
func (a *Agent) FindMove(state game.State, player game.Player) (game.Action, searcher.Metrics) {
	board, ok := state.(*game.Board)
	if !ok {
		panic("unexpected state type")
	}
	resp, err := a.Request(context.Background(), board, player)
	if err != nil {
		log.Error().Err(err).Str("url", a.baseURL).Msg("remote agent failed")
		return nil, searcher.Metrics{}
	}
	return game.Column(resp.Column), resp.Metrics
}

// Request posts board to the server's find-move endpoint.
func (a *Agent) Request(ctx context.Context, board *game.Board, player game.Player) (communication.FindMoveResponse, error) {
	var out communication.FindMoveResponse
	body, err := json.Marshal(communication.FindMoveRequest{Board: board, Player: player})
	if err != nil {
		return out, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+communication.FindMovePath, bytes.NewReader(body))
	if err != nil {
		return out, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e communication.ErrorResponse
		data, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(data, &e) != nil || e.Error == "" {
			e.Error = strings.TrimSpace(string(data))
		}
		return out, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, e.Error)
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}

// Healthy reports whether the server answers its health check.
func (a *Agent) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+communication.HealthPath, nil)
	if err != nil {
		return false
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// newRemote accepts url and timeout (a duration, 30s by default).
func newRemote(params agent.Params) (agent.Agent, error) {
	url := params.PopString("url", "")
	if url == "" {
		return nil, errors.New("remote agent needs url=<server address>")
	}
	timeout, err := time.ParseDuration(params.PopString("timeout", "30s"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse timeout")
	}
	return NewAgent(url, timeout), nil
}
