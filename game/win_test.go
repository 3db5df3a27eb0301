package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// fiveByWindows is a brute-force oracle: some window of WinLength cells in
// one of the four directions contains (row, col) and holds only cell.
func fiveByWindows(b *Board, row, col int, cell Cell) bool {
	for _, d := range directions {
		for k := 0; k < WinLength; k++ {
			startRow, startCol := row-k*d[0], col-k*d[1]
			full := true
			for i := 0; i < WinLength; i++ {
				r, c := startRow+i*d[0], startCol+i*d[1]
				if !b.InBounds(r, c) || b.At(r, c) != cell {
					full = false
					break
				}
			}
			if full {
				return true
			}
		}
	}
	return false
}

func plantFive(rng *rand.Rand, b *Board, cell Cell) []Move {
	d := directions[rng.Intn(len(directions))]
	for {
		row, col := rng.Intn(b.Size()), rng.Intn(b.Size())
		endRow, endCol := row+(WinLength-1)*d[0], col+(WinLength-1)*d[1]
		if !b.InBounds(endRow, endCol) {
			continue
		}
		line := make([]Move, 0, WinLength)
		for i := 0; i < WinLength; i++ {
			r, c := row+i*d[0], col+i*d[1]
			b.remove(r, c)
			b.Place(r, c, cell)
			line = append(line, NewMove(r, c, cell))
		}
		return line
	}
}

func TestHasFiveThrough(t *testing.T) {
	t.Run("every stone of a planted five sees the win", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		for trial := 0; trial < 200; trial++ {
			b := NewBoard(DefaultSize)
			line := plantFive(rng, b, Black)
			for _, m := range line {
				require.True(t, HasFiveThrough(b, m.Row, m.Col, Black),
					"Trial %d: stone %v should be part of a five", trial, m)
				require.False(t, HasFiveThrough(b, m.Row, m.Col, White),
					"Trial %d: the other side should not win through %v", trial, m)
			}
		}
	})

	t.Run("agrees with a window oracle on random boards", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		for trial := 0; trial < 300; trial++ {
			b := NewBoard(DefaultSize)
			for i := 0; i < 45; i++ {
				side := Black
				if rng.Intn(2) == 0 {
					side = White
				}
				b.Place(rng.Intn(DefaultSize), rng.Intn(DefaultSize), side)
			}
			if trial%3 == 0 {
				plantFive(rng, b, Black)
			}
			for row := 0; row < b.Size(); row++ {
				for col := 0; col < b.Size(); col++ {
					cell := b.At(row, col)
					if cell == Empty {
						continue
					}
					require.Equal(t, fiveByWindows(b, row, col, cell), HasFiveThrough(b, row, col, cell),
						"Trial %d: mismatch at (%d,%d) for %v\n%s", trial, row, col, cell, b)
				}
			}
		}
	})

	t.Run("four in a row is not a win", func(t *testing.T) {
		b := NewBoard(DefaultSize)
		for col := 2; col < 6; col++ {
			b.Place(4, col, White)
		}

		require.False(t, HasFiveThrough(b, 4, 3, White))
		require.False(t, HasFiveAnywhere(b, White))
	})

	t.Run("broken line is not a win", func(t *testing.T) {
		b := NewBoard(DefaultSize)
		for _, col := range []int{0, 1, 2, 4, 5} {
			b.Place(7, col, Black)
		}
		b.Place(7, 3, White)

		require.False(t, HasFiveAnywhere(b, Black))
	})

	t.Run("off-board cell never wins", func(t *testing.T) {
		b := NewBoard(DefaultSize)

		require.False(t, HasFiveThrough(b, -1, -1, Black))
	})
}

func TestHasFiveAnywhere(t *testing.T) {
	t.Run("anti-diagonal five", func(t *testing.T) {
		b := NewBoard(DefaultSize)
		for i := 0; i < WinLength; i++ {
			b.Place(i, 9-i, White)
		}

		require.True(t, HasFiveAnywhere(b, White))
		require.False(t, HasFiveAnywhere(b, Black))
	})

	t.Run("six in a row still wins", func(t *testing.T) {
		b := NewBoard(DefaultSize)
		for row := 2; row < 8; row++ {
			b.Place(row, 0, Black)
		}

		require.True(t, HasFiveAnywhere(b, Black))
	})

	t.Run("empty side never wins", func(t *testing.T) {
		require.False(t, HasFiveAnywhere(NewBoard(DefaultSize), Empty))
	})
}
