package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"connect4/communication"
	"connect4/game"
	"connect4/gamemaster"
	"connect4/searcher"
	"connect4/searcher/agent"

	"github.com/rs/zerolog/log"
)

// Server exposes an agent over HTTP.
type Server struct {
	agent agent.Agent
	mux   *http.ServeMux
}

func NewServer(a agent.Agent) *Server {
	s := &Server{agent: a, mux: http.NewServeMux()}
	s.mux.HandleFunc(communication.FindMovePath, s.handleFindMove)
	s.mux.HandleFunc(communication.HealthPath, s.handleHealth)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("agent server listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "use GET")
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

func (s *Server) handleFindMove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "use POST")
		return
	}
	var req communication.FindMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request: "+err.Error())
		return
	}
	if req.Board == nil {
		writeError(w, http.StatusBadRequest, "bad request: missing board")
		return
	}
	if req.Player != game.Player1 && req.Player != game.Player2 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("bad request: no such player %d", req.Player))
		return
	}
	if req.Board.IsTerminal() {
		writeError(w, http.StatusConflict, game.ErrGameOver.Error())
		return
	}
	if turn := req.Board.Turn(); req.Player != turn {
		writeError(w, http.StatusConflict, fmt.Sprintf("%s: %s to move", gamemaster.ErrNotYourTurn, turn))
		return
	}

	action, metrics, err := s.findMove(req)
	if err != nil {
		log.Error().Err(err).Str("board", req.Board.String()).Msg("agent failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	col, ok := action.(game.Column)
	if !ok {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("agent returned %v, not a column", action))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(communication.FindMoveResponse{Column: int(col), Metrics: metrics}); err != nil {
		log.Error().Err(err).Msg("failed to encode move")
	}
}

// findMove keeps the server alive when a search panics on a broken state.
func (s *Server) findMove(req communication.FindMoveRequest) (action game.Action, metrics searcher.Metrics, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("agent panicked: %v", r)
		}
	}()
	action, metrics = s.agent.FindMove(req.Board, req.Player)
	return action, metrics, nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(communication.ErrorResponse{Error: msg})
}
