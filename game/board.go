package game

import (
	"fmt"
	"strings"
)

// Board is a square grid of cells backed by a flat slice. Out-of-bounds reads
// return Empty and out-of-bounds writes are refused, so search code can probe
// speculatively without guarding every call.
type Board struct {
	size  int
	cells []Cell
}

// NewBoard creates an empty size x size board.
func NewBoard(size int) *Board {
	if size <= 0 {
		panic(fmt.Sprintf("invalid board size %d", size))
	}
	return &Board{
		size:  size,
		cells: make([]Cell, size*size),
	}
}

func (b *Board) Size() int {
	return b.size
}

// At returns the cell at (row, col), or Empty when the coordinates are off the board.
func (b *Board) At(row, col int) Cell {
	if !b.InBounds(row, col) {
		return Empty
	}
	return b.cells[b.index(row, col)]
}

func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

// IsLegal reports whether a stone may be placed at (row, col).
func (b *Board) IsLegal(row, col int) bool {
	return b.InBounds(row, col) && b.cells[b.index(row, col)] == Empty
}

// Place puts a stone of the given side on an empty in-bounds cell. It returns
// false and leaves the board untouched otherwise.
func (b *Board) Place(row, col int, cell Cell) bool {
	if !cell.IsStone() || !b.IsLegal(row, col) {
		return false
	}
	b.cells[b.index(row, col)] = cell
	return true
}

// Clear empties every cell.
func (b *Board) Clear() {
	for i := range b.cells {
		b.cells[i] = Empty
	}
}

func (b *Board) IsFull() bool {
	for _, cell := range b.cells {
		if cell == Empty {
			return false
		}
	}
	return true
}

// IsEmpty reports whether no stone has been placed yet.
func (b *Board) IsEmpty() bool {
	for _, cell := range b.cells {
		if cell != Empty {
			return false
		}
	}
	return true
}

// CountStones returns the number of occupied cells.
func (b *Board) CountStones() int {
	count := 0
	for _, cell := range b.cells {
		if cell != Empty {
			count++
		}
	}
	return count
}

// Copy returns a deep copy with independent backing storage.
func (b *Board) Copy() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{size: b.size, cells: cells}
}

// Equal reports whether both boards have the same size and contents.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.size != other.size {
		return false
	}
	for i, cell := range b.cells {
		if other.cells[i] != cell {
			return false
		}
	}
	return true
}

// String renders the board with row and column indices, one row per line.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("   ")
	for col := 0; col < b.size; col++ {
		fmt.Fprintf(&sb, "%2d", col)
	}
	sb.WriteByte('\n')
	for row := 0; row < b.size; row++ {
		fmt.Fprintf(&sb, "%2d ", row)
		for col := 0; col < b.size; col++ {
			sb.WriteByte(' ')
			sb.WriteByte(b.cells[b.index(row, col)].Symbol())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b *Board) remove(row, col int) {
	b.cells[b.index(row, col)] = Empty
}

func (b *Board) index(row, col int) int {
	return row*b.size + col
}
