package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func boardWith(size int, moves ...Move) *Board {
	b := NewBoard(size)
	for _, m := range moves {
		if !m.Execute(b) {
			panic("invalid test move " + m.String())
		}
	}
	return b
}

func TestPlayerScore(t *testing.T) {
	tests := []struct {
		name  string
		moves []Move
		side  Cell
		want  int
	}{
		{
			name: "empty board",
			side: Black,
			want: 0,
		},
		{
			name:  "lone stone",
			moves: []Move{NewMove(5, 5, Black)},
			side:  Black,
			want:  0,
		},
		{
			name:  "open two",
			moves: []Move{NewMove(5, 4, Black), NewMove(5, 5, Black)},
			side:  Black,
			want:  TwoOpen,
		},
		{
			name:  "open three",
			moves: []Move{NewMove(5, 3, Black), NewMove(5, 4, Black), NewMove(5, 5, Black)},
			side:  Black,
			want:  ThreeOpen,
		},
		{
			name: "three blocked by the opponent",
			moves: []Move{
				NewMove(5, 3, Black), NewMove(5, 4, Black), NewMove(5, 5, Black),
				NewMove(5, 6, White),
			},
			side: Black,
			want: ThreeBlocked,
		},
		{
			name: "four against the edge",
			moves: []Move{
				NewMove(0, 0, White), NewMove(1, 0, White), NewMove(2, 0, White), NewMove(3, 0, White),
			},
			side: White,
			want: FourBlocked,
		},
		{
			name: "open four on a diagonal",
			moves: []Move{
				NewMove(2, 2, Black), NewMove(3, 3, Black), NewMove(4, 4, Black), NewMove(5, 5, Black),
			},
			side: Black,
			want: FourOpen,
		},
		{
			name: "two closed on both ends",
			moves: []Move{
				NewMove(4, 0, White), NewMove(4, 1, Black), NewMove(4, 2, Black), NewMove(4, 3, White),
			},
			side: Black,
			want: 0,
		},
		{
			name: "only the first run on a line is scored",
			moves: []Move{
				NewMove(5, 0, Black), NewMove(5, 1, Black),
				NewMove(5, 5, Black), NewMove(5, 6, Black),
			},
			side: Black,
			want: TwoBlocked,
		},
		{
			name: "five scores as a win",
			moves: []Move{
				NewMove(9, 1, Black), NewMove(9, 2, Black), NewMove(9, 3, Black), NewMove(9, 4, Black), NewMove(9, 5, Black),
			},
			side: Black,
			want: WinScore,
		},
		{
			name:  "other side's stones are ignored",
			moves: []Move{NewMove(5, 4, Black), NewMove(5, 5, Black)},
			side:  White,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := boardWith(DefaultSize, tt.moves...)
			require.Equal(t, tt.want, PlayerScore(b, tt.side))
		})
	}
}

func TestScore(t *testing.T) {
	t.Run("maximizing side has five", func(t *testing.T) {
		b := NewBoard(DefaultSize)
		for col := 0; col < WinLength; col++ {
			b.Place(0, col, White)
		}
		b.Place(5, 5, Black)

		require.Equal(t, WinScore, Score(b, White, Black))
		require.Equal(t, -WinScore, Score(b, Black, White))
	})

	t.Run("both sides have five", func(t *testing.T) {
		b := NewBoard(DefaultSize)
		for col := 0; col < WinLength; col++ {
			b.Place(0, col, White)
			b.Place(9, col, Black)
		}

		require.Equal(t, WinScore, Score(b, White, Black), "Maximizing side is checked first")
		require.Equal(t, WinScore, Score(b, Black, White), "Maximizing side is checked first")
	})

	t.Run("no five is the difference of pattern scores", func(t *testing.T) {
		b := boardWith(DefaultSize,
			NewMove(5, 3, Black), NewMove(5, 4, Black), NewMove(5, 5, Black),
			NewMove(0, 0, White), NewMove(0, 1, White),
		)

		require.Equal(t, ThreeOpen-TwoBlocked, Score(b, Black, White))
		require.Equal(t, TwoBlocked-ThreeOpen, Score(b, White, Black))
	})
}

func TestLineStart(t *testing.T) {
	require.Equal(t, runKey{row: 4, col: 0, dRow: 0, dCol: 1}, lineStart(4, 7, 0, 1))
	require.Equal(t, runKey{row: 0, col: 7, dRow: 1, dCol: 0}, lineStart(4, 7, 1, 0))
	require.Equal(t, runKey{row: 0, col: 3, dRow: 1, dCol: 1}, lineStart(4, 7, 1, 1))
	require.Equal(t, runKey{row: 0, col: 11, dRow: 1, dCol: -1}, lineStart(4, 7, 1, -1))
}
