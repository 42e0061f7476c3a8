package gamemaster

import (
	"errors"
	"fmt"
	"sync"

	"connect4/game"
	"connect4/utils"
)

var (
	ErrGameOver     = game.ErrGameOver
	ErrNotYourTurn  = errors.New("not your turn")
	ErrIllegalMove  = game.ErrIllegalAction
	ErrNoMove       = errors.New("agent gave no move")
	errNotInitiated = errors.New("game not initialized")
)

// Update is one accepted move and the board it produced.
type Update struct {
	Player game.Player
	Action game.Action
	Board  *game.Board
}

// UpdateGetter returns the oldest update not yet returned, if any.
type UpdateGetter func() (Update, bool)

type Engine interface {
	Init() (*game.Board, UpdateGetter)
	Play(player game.Player, action game.Action) error
}

type localEngine struct {
	mu       sync.Mutex
	start    *game.Board
	board    *game.Board
	updates  []Update
	gameOver bool
}

func NewLocalEngine() *localEngine {
	return &localEngine{start: game.NewBoard()}
}

// NewLocalEngineFrom returns an engine whose games start from b.
func NewLocalEngineFrom(b *game.Board) *localEngine {
	return &localEngine{start: b}
}

// Init starts a new game on the starting board.
func (e *localEngine) Init() (*game.Board, UpdateGetter) {
	return e.InitFrom(e.start)
}

// InitFrom starts a new game from b.
func (e *localEngine) InitFrom(b *game.Board) (*game.Board, UpdateGetter) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.board = b
	e.updates = nil
	e.gameOver = b.IsTerminal()

	return b, func() (Update, bool) {
		e.mu.Lock()
		defer e.mu.Unlock()
		if len(e.updates) == 0 {
			return Update{}, false
		}
		u := e.updates[0]
		e.updates = e.updates[1:]
		return u, true
	}
}

// Play validates and applies player's action.
func (e *localEngine) Play(player game.Player, action game.Action) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.board == nil {
		return errNotInitiated
	}
	if e.gameOver {
		return ErrGameOver
	}
	if player != e.board.Turn() {
		return fmt.Errorf("%w: %s to move", ErrNotYourTurn, e.board.Turn())
	}
	if utils.FindIndex(e.board.LegalActions(player), action) == -1 {
		return fmt.Errorf("%w: %v", ErrIllegalMove, action)
	}

	next, err := e.board.Play(player, action)
	if err != nil {
		return err
	}
	e.board = next
	e.gameOver = next.IsTerminal()
	e.updates = append(e.updates, Update{Player: player, Action: action, Board: next})
	return nil
}
