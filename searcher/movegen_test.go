package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gomoku/game"
)

func place(b *game.Board, cell game.Cell, cells ...[2]int) {
	for _, rc := range cells {
		if !b.Place(rc[0], rc[1], cell) {
			panic("invalid test placement")
		}
	}
}

func TestGenerateOpening(t *testing.T) {
	b := game.NewBoard(game.DefaultSize)

	moves := NewMoveGenerator(DefaultRadius).Generate(b, game.Black)

	require.Equal(t, []game.Move{game.NewMove(5, 5, game.Black)}, moves,
		"Empty board should yield the single center move")
}

func TestGenerateNeighbors(t *testing.T) {
	t.Run("radius two around a center stone", func(t *testing.T) {
		b := game.NewBoard(game.DefaultSize)
		place(b, game.Black, [2]int{5, 5})

		moves := NewMoveGenerator(2).Generate(b, game.White)

		require.Len(t, moves, 24, "5x5 neighborhood minus the occupied center")
		for _, m := range moves {
			require.Equal(t, game.White, m.Cell)
			require.True(t, b.IsLegal(m.Row, m.Col), "Candidate %v should be legal", m)
			require.LessOrEqual(t, abs(m.Row-5), 2)
			require.LessOrEqual(t, abs(m.Col-5), 2)
		}
	})

	t.Run("corner stone is clipped by the board", func(t *testing.T) {
		b := game.NewBoard(game.DefaultSize)
		place(b, game.Black, [2]int{0, 0})

		moves := NewMoveGenerator(1).Generate(b, game.Black)

		require.ElementsMatch(t, []game.Move{
			game.NewMove(0, 1, game.Black),
			game.NewMove(1, 0, game.Black),
			game.NewMove(1, 1, game.Black),
		}, moves)
	})

	t.Run("overlapping neighborhoods are deduplicated", func(t *testing.T) {
		b := game.NewBoard(game.DefaultSize)
		place(b, game.Black, [2]int{5, 5})
		place(b, game.White, [2]int{5, 6})

		moves := NewMoveGenerator(1).Generate(b, game.Black)

		seen := map[[2]int]bool{}
		for _, m := range moves {
			key := [2]int{m.Row, m.Col}
			require.False(t, seen[key], "Candidate %v generated twice", m)
			seen[key] = true
		}
		require.Len(t, moves, 10, "3x4 block minus the two stones")
	})
}

func TestGenerateTactical(t *testing.T) {
	// Black four on row 2 blocked on the left; the only winning cell is (2,6).
	setup := func() *game.Board {
		b := game.NewBoard(game.DefaultSize)
		place(b, game.Black, [2]int{2, 2}, [2]int{2, 3}, [2]int{2, 4}, [2]int{2, 5})
		place(b, game.White, [2]int{2, 1})
		return b
	}

	t.Run("winning cell outside the neighbor radius", func(t *testing.T) {
		b := setup()

		moves := NewMoveGenerator(0).Generate(b, game.Black)

		require.Equal(t, []game.Move{game.NewMove(2, 6, game.Black)}, moves,
			"Immediate win must be generated even with no neighbor candidates")
	})

	t.Run("blocking cell outside the neighbor radius", func(t *testing.T) {
		b := setup()

		moves := NewMoveGenerator(0).Generate(b, game.White)

		require.Equal(t, []game.Move{game.NewMove(2, 6, game.White)}, moves,
			"Block of the opponent's immediate win must be generated")
	})

	t.Run("probing leaves the board untouched", func(t *testing.T) {
		b := setup()
		before := b.Copy()

		NewMoveGenerator(0).Generate(b, game.Black)
		NewMoveGenerator(2).Generate(b, game.White)

		require.True(t, before.Equal(b))
	})
}

func TestGenerateFallbacks(t *testing.T) {
	t.Run("no neighbors and no tactics yields every empty cell", func(t *testing.T) {
		b := game.NewBoard(game.DefaultSize)
		place(b, game.Black, [2]int{0, 0}, [2]int{9, 9})

		moves := NewMoveGenerator(0).Generate(b, game.White)

		require.Len(t, moves, game.DefaultSize*game.DefaultSize-2)
	})

	t.Run("full board yields nothing", func(t *testing.T) {
		b := fullDrawnBoard()

		require.Empty(t, NewMoveGenerator(DefaultRadius).Generate(b, game.Black))
	})
}

func TestNewMoveGeneratorPanicsOnNegativeRadius(t *testing.T) {
	require.Panics(t, func() { NewMoveGenerator(-1) })
}

// fullDrawnBoard fills a 4x4 board in a pattern with no five.
func fullDrawnBoard() *game.Board {
	b := game.NewBoard(4)
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			cell := game.Black
			if (row/2+col)%2 == 1 {
				cell = game.White
			}
			b.Place(row, col, cell)
		}
	}
	return b
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
