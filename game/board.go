package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	Rows    = 6
	Columns = 7
	Connect = 4
)

var (
	ErrIllegalAction = errors.New("illegal action")
	ErrGameOver      = errors.New("game is over")
)

// Column is the Connect Four action: drop a piece into a column.
type Column int

func (c Column) String() string {
	return strconv.Itoa(int(c))
}

// Board is an immutable Connect Four position. Row 0 is the bottom row.
type Board struct {
	cells   [Rows][Columns]Player
	heights [Columns]int
	moves   int
	winner  Player
}

func NewBoard() *Board {
	return &Board{}
}

func (b *Board) Cell(row, col int) Player {
	return b.cells[row][col]
}

// Moves is the number of pieces on the board.
func (b *Board) Moves() int {
	return b.moves
}

// Winner returns the player with four in a row, or NoPlayer.
func (b *Board) Winner() Player {
	return b.winner
}

// Turn returns the player whose move it is, assuming Player1 moved first.
func (b *Board) Turn() Player {
	if b.moves%2 == 0 {
		return Player1
	}
	return Player2
}

func (b *Board) IsFull() bool {
	return b.moves == Rows*Columns
}

func (b *Board) LegalActions(player Player) []Action {
	if b.IsTerminal() {
		return nil
	}
	actions := make([]Action, 0, Columns)
	for col := 0; col < Columns; col++ {
		if b.heights[col] < Rows {
			actions = append(actions, Column(col))
		}
	}
	return actions
}

func (b *Board) Successor(player Player, action Action) State {
	next, err := b.Play(player, action)
	if err != nil {
		panic(fmt.Sprintf("successor: %v", err))
	}
	return next
}

// Play drops a piece for player into the column named by action and returns
// the resulting board.
func (b *Board) Play(player Player, action Action) (*Board, error) {
	if b.IsTerminal() {
		return nil, ErrGameOver
	}
	col, ok := action.(Column)
	if !ok {
		return nil, fmt.Errorf("%w: %v is not a column", ErrIllegalAction, action)
	}
	if col < 0 || int(col) >= Columns {
		return nil, fmt.Errorf("%w: column %d out of range", ErrIllegalAction, col)
	}
	if b.heights[col] >= Rows {
		return nil, fmt.Errorf("%w: column %d is full", ErrIllegalAction, col)
	}
	if player != Player1 && player != Player2 {
		return nil, fmt.Errorf("%w: no such player %d", ErrIllegalAction, player)
	}

	next := *b
	row := next.heights[col]
	next.cells[row][col] = player
	next.heights[col]++
	next.moves++
	if next.connects(row, int(col), player) {
		next.winner = player
	}
	return &next, nil
}

var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// connects reports whether the piece at (row, col) is part of a line of
// Connect pieces of player.
func (b *Board) connects(row, col int, player Player) bool {
	for _, d := range directions {
		count := 1
		count += b.run(row, col, d[0], d[1], player)
		count += b.run(row, col, -d[0], -d[1], player)
		if count >= Connect {
			return true
		}
	}
	return false
}

func (b *Board) run(row, col, dr, dc int, player Player) int {
	n := 0
	for r, c := row+dr, col+dc; inside(r, c) && b.cells[r][c] == player; r, c = r+dr, c+dc {
		n++
	}
	return n
}

func inside(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Columns
}

func (b *Board) IsTerminal() bool {
	return b.winner != NoPlayer || b.IsFull()
}

func (b *Board) IsWin(player Player) bool {
	return b.winner != NoPlayer && b.winner == player
}

func (b *Board) IsLose(player Player) bool {
	return b.winner != NoPlayer && b.winner != player
}

func (b *Board) Score(player Player) float64 {
	switch {
	case b.IsWin(player):
		return 1
	case b.IsLose(player):
		return -1
	default:
		return 0
	}
}

func (p Player) mark() byte {
	switch p {
	case Player1:
		return 'X'
	case Player2:
		return 'O'
	default:
		return '.'
	}
}

// String renders the board top row first, rows separated by '/'.
func (b *Board) String() string {
	var sb strings.Builder
	for row := Rows - 1; row >= 0; row-- {
		for col := 0; col < Columns; col++ {
			sb.WriteByte(b.cells[row][col].mark())
		}
		if row > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// Pretty renders the board as a grid with column numbers, for terminals.
func (b *Board) Pretty() string {
	var sb strings.Builder
	for row := Rows - 1; row >= 0; row-- {
		sb.WriteByte('|')
		for col := 0; col < Columns; col++ {
			sb.WriteByte(' ')
			sb.WriteByte(b.cells[row][col].mark())
		}
		sb.WriteString(" |\n")
	}
	sb.WriteByte(' ')
	for col := 0; col < Columns; col++ {
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(col))
	}
	sb.WriteByte('\n')
	return sb.String()
}

// ParseBoard reads the form written by Board.String. Pieces must rest on
// the bottom or on another piece.
func ParseBoard(s string) (*Board, error) {
	rows := strings.Split(strings.TrimSpace(s), "/")
	if len(rows) != Rows {
		return nil, fmt.Errorf("parse board: want %d rows, got %d", Rows, len(rows))
	}
	b := NewBoard()
	counts := map[Player]int{}
	for i, line := range rows {
		if len(line) != Columns {
			return nil, fmt.Errorf("parse board: row %d: want %d cells, got %d", i, Columns, len(line))
		}
		row := Rows - 1 - i
		for col := 0; col < Columns; col++ {
			var p Player
			switch line[col] {
			case 'X', 'x':
				p = Player1
			case 'O', 'o':
				p = Player2
			case '.':
				continue
			default:
				return nil, fmt.Errorf("parse board: row %d: bad cell %q", i, line[col])
			}
			b.cells[row][col] = p
			counts[p]++
		}
	}
	for col := 0; col < Columns; col++ {
		h := 0
		for h < Rows && b.cells[h][col] != NoPlayer {
			h++
		}
		for r := h; r < Rows; r++ {
			if b.cells[r][col] != NoPlayer {
				return nil, fmt.Errorf("parse board: floating piece in column %d", col)
			}
		}
		b.heights[col] = h
	}
	if d := counts[Player1] - counts[Player2]; d < 0 || d > 1 {
		return nil, fmt.Errorf("parse board: piece counts %d/%d are not reachable", counts[Player1], counts[Player2])
	}
	b.moves = counts[Player1] + counts[Player2]
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			p := b.cells[row][col]
			if p == NoPlayer || !b.connects(row, col, p) {
				continue
			}
			if b.winner != NoPlayer && b.winner != p {
				return nil, errors.New("parse board: both players have four in a row")
			}
			b.winner = p
		}
	}
	return b, nil
}

func (b *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseBoard(s)
	if err != nil {
		return err
	}
	*b = *parsed
	return nil
}
