package game

import "fmt"

// Move is a single placement. It is not tied to a board instance and can be
// applied and reverted on any board of sufficient size.
type Move struct {
	Row  int
	Col  int
	Cell Cell
}

func NewMove(row, col int, cell Cell) Move {
	return Move{Row: row, Col: col, Cell: cell}
}

func (m Move) IsValid(b *Board) bool {
	return b.IsLegal(m.Row, m.Col)
}

// Execute places the move's stone. It returns false if the cell was not free.
func (m Move) Execute(b *Board) bool {
	return b.Place(m.Row, m.Col, m.Cell)
}

// Undo clears the move's cell only if it still holds the move's own stone.
func (m Move) Undo(b *Board) bool {
	if !b.InBounds(m.Row, m.Col) || b.At(m.Row, m.Col) != m.Cell || !m.Cell.IsStone() {
		return false
	}
	b.remove(m.Row, m.Col)
	return true
}

func (m Move) String() string {
	return fmt.Sprintf("%c(%d,%d)", m.Cell.Symbol(), m.Row, m.Col)
}
