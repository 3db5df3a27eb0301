package searcher

import (
	"fmt"

	"gomoku/game"
)

// MoveGenerator produces pruned candidate moves: empty cells near existing
// stones plus any cell that wins or blocks an immediate win.
type MoveGenerator struct {
	radius int
}

func NewMoveGenerator(radius int) *MoveGenerator {
	if radius < 0 {
		panic(fmt.Sprintf("invalid neighborhood radius %d", radius))
	}
	return &MoveGenerator{radius: radius}
}

// Generate returns the candidate moves for side. The board is mutated only
// transiently while probing tactical cells and is restored before returning.
func (g *MoveGenerator) Generate(b *game.Board, side game.Cell) []game.Move {
	n := b.Size()
	if b.IsEmpty() {
		return []game.Move{game.NewMove(n/2, n/2, side)}
	}

	considered := make([]bool, n*n)
	moves := make([]game.Move, 0, 4*b.CountStones())
	moves = g.addNeighborMoves(b, side, considered, moves)
	moves = addTacticalMoves(b, side, considered, moves)

	if len(moves) == 0 {
		moves = addAllEmptyMoves(b, side, moves)
	}
	return moves
}

func (g *MoveGenerator) addNeighborMoves(b *game.Board, side game.Cell, considered []bool, moves []game.Move) []game.Move {
	n := b.Size()
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if b.At(row, col) == game.Empty {
				continue
			}
			for dr := -g.radius; dr <= g.radius; dr++ {
				for dc := -g.radius; dc <= g.radius; dc++ {
					r, c := row+dr, col+dc
					if !b.IsLegal(r, c) || considered[r*n+c] {
						continue
					}
					considered[r*n+c] = true
					moves = append(moves, game.NewMove(r, c, side))
				}
			}
		}
	}
	return moves
}

func addTacticalMoves(b *game.Board, side game.Cell, considered []bool, moves []game.Move) []game.Move {
	n := b.Size()
	opponent := side.Opponent()
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if !b.IsLegal(row, col) || considered[row*n+col] {
				continue
			}
			if wins(b, row, col, side) || wins(b, row, col, opponent) {
				considered[row*n+col] = true
				moves = append(moves, game.NewMove(row, col, side))
			}
		}
	}
	return moves
}

func addAllEmptyMoves(b *game.Board, side game.Cell, moves []game.Move) []game.Move {
	n := b.Size()
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if b.IsLegal(row, col) {
				moves = append(moves, game.NewMove(row, col, side))
			}
		}
	}
	return moves
}

// wins speculatively places side at (row, col) and reports whether that
// completes five in a row. The cell is emptied again before returning.
func wins(b *game.Board, row, col int, side game.Cell) bool {
	move := game.NewMove(row, col, side)
	if !move.Execute(b) {
		return false
	}
	win := game.HasFiveThrough(b, row, col, side)
	move.Undo(b)
	return win
}
