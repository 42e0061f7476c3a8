package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func play(t *testing.T, b *Board, columns ...int) *Board {
	t.Helper()
	for _, col := range columns {
		next, err := b.Play(b.Turn(), Column(col))
		require.NoError(t, err, "column %d should be playable", col)
		b = next
	}
	return b
}

func TestBoardPlay(t *testing.T) {
	t.Run("dropping pieces stacks them from the bottom", func(t *testing.T) {
		b := play(t, NewBoard(), 3, 3, 3)

		require.Equal(t, Player1, b.Cell(0, 3))
		require.Equal(t, Player2, b.Cell(1, 3))
		require.Equal(t, Player1, b.Cell(2, 3))
		require.Equal(t, 3, b.Moves())
		require.Equal(t, Player2, b.Turn())
	})

	t.Run("playing never modifies the original board", func(t *testing.T) {
		b := NewBoard()
		next := play(t, b, 0)

		require.Equal(t, 0, b.Moves(), "Original board should be untouched")
		require.Equal(t, NoPlayer, b.Cell(0, 0))
		require.Equal(t, Player1, next.Cell(0, 0))
	})

	t.Run("full column is illegal", func(t *testing.T) {
		b := play(t, NewBoard(), 0, 0, 0, 0, 0, 0)

		_, err := b.Play(b.Turn(), Column(0))
		require.ErrorIs(t, err, ErrIllegalAction)
		require.NotContains(t, b.LegalActions(b.Turn()), Column(0))
		require.Len(t, b.LegalActions(b.Turn()), Columns-1)
	})

	t.Run("out of range column is illegal", func(t *testing.T) {
		_, err := NewBoard().Play(Player1, Column(Columns))
		require.ErrorIs(t, err, ErrIllegalAction)
	})

	t.Run("moves after a win are rejected", func(t *testing.T) {
		b := play(t, NewBoard(), 0, 1, 0, 1, 0, 1, 0)

		_, err := b.Play(b.Turn(), Column(2))
		require.ErrorIs(t, err, ErrGameOver)
		require.Empty(t, b.LegalActions(b.Turn()))
	})
}

func TestBoardWinner(t *testing.T) {
	cases := []struct {
		name    string
		columns []int
		winner  Player
	}{
		{"vertical", []int{0, 1, 0, 1, 0, 1, 0}, Player1},
		{"horizontal", []int{0, 0, 1, 1, 2, 2, 3}, Player1},
		{"rising diagonal", []int{0, 1, 1, 2, 2, 3, 2, 3, 3, 6, 3}, Player1},
		{"falling diagonal", []int{6, 5, 5, 4, 4, 3, 4, 3, 3, 0, 3}, Player1},
		{"second player vertical", []int{0, 1, 0, 1, 0, 1, 2, 1}, Player2},
		{"no winner yet", []int{0, 1, 2, 3}, NoPlayer},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := play(t, NewBoard(), tc.columns...)

			require.Equal(t, tc.winner, b.Winner())
			require.Equal(t, tc.winner != NoPlayer, b.IsTerminal())
			if tc.winner != NoPlayer {
				require.True(t, b.IsWin(tc.winner))
				require.True(t, b.IsLose(tc.winner.Opponent()))
				require.Equal(t, 1.0, b.Score(tc.winner))
				require.Equal(t, -1.0, b.Score(tc.winner.Opponent()))
			}
		})
	}
}

func TestBoardDraw(t *testing.T) {
	// Columns filled in pairs shifted so no line of four ever forms.
	order := []int{
		0, 1, 0, 1, 0, 1,
		1, 0, 1, 0, 1, 0,
		2, 3, 2, 3, 2, 3,
		3, 2, 3, 2, 3, 2,
		4, 5, 4, 5, 4, 5,
		5, 4, 5, 4, 5, 4,
		6, 6, 6, 6, 6, 6,
	}
	b := play(t, NewBoard(), order...)

	require.True(t, b.IsFull())
	require.True(t, b.IsTerminal())
	require.Equal(t, NoPlayer, b.Winner())
	require.Equal(t, 0.0, b.Score(Player1))
	require.Empty(t, b.LegalActions(Player1))
}

func TestParseBoard(t *testing.T) {
	t.Run("round trips through String", func(t *testing.T) {
		b := play(t, NewBoard(), 3, 3, 4, 2, 6)

		parsed, err := ParseBoard(b.String())
		require.NoError(t, err)
		require.Equal(t, b, parsed)
	})

	t.Run("detects a finished game", func(t *testing.T) {
		b, err := ParseBoard(".......\n/.......\n/.......\n/.......\n/OOO....\n/XXXX...")
		require.Error(t, err, "Newlines inside rows are not part of the format")
		require.Nil(t, b)

		b, err = ParseBoard("......./......./......./......./OOO..../XXXX...")
		require.NoError(t, err)
		require.Equal(t, Player1, b.Winner())
		require.Equal(t, 7, b.Moves())
	})

	t.Run("rejects floating pieces", func(t *testing.T) {
		_, err := ParseBoard("......./......./......./...X.../......./...O...")
		require.Error(t, err)
	})

	t.Run("rejects unreachable piece counts", func(t *testing.T) {
		_, err := ParseBoard("......./......./......./......./......./OO.....")
		require.Error(t, err)
	})

	t.Run("rejects wrong dimensions", func(t *testing.T) {
		_, err := ParseBoard("......./.......")
		require.Error(t, err)
	})
}

func TestBoardJSON(t *testing.T) {
	b := play(t, NewBoard(), 3, 2)

	data, err := json.Marshal(b)
	require.NoError(t, err)
	require.Equal(t, `"......./......./......./......./......./..OX..."`, string(data))

	var back Board
	require.NoError(t, json.Unmarshal(data, &back))
	require.Equal(t, *b, back)
}
