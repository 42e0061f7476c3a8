package communication

import (
	"connect4/game"
	"connect4/searcher"
)

const (
	FindMovePath = "/findmove"
	HealthPath   = "/healthz"
)

// FindMoveRequest asks an agent server for Player's move on Board.
type FindMoveRequest struct {
	Board  *game.Board `json:"board"`
	Player game.Player `json:"player"`
}

type FindMoveResponse struct {
	Column  int              `json:"column"`
	Metrics searcher.Metrics `json:"metrics"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
