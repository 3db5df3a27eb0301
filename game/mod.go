package game

import "strings"

// Cell is the state of a single intersection. Black and White double as the
// identity of the side owning a stone.
type Cell int8

const (
	Empty Cell = iota
	Black
	White
)

const (
	DefaultSize = 10
	WinLength   = 5
)

// directions are the four line orientations: horizontal, vertical, diagonal
// and anti-diagonal. Their negations cover the remaining half-lines.
var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// Evaluates the board to a signed score from maxSide's point of view. Positive
// values favor maxSide, negative values favor minSide.
type Evaluate func(b *Board, maxSide, minSide Cell) int

// Opponent returns the other side. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

// IsStone reports whether c is one of the two playing sides.
func (c Cell) IsStone() bool {
	return c == Black || c == White
}

func (c Cell) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	default:
		return "Empty"
	}
}

// Symbol is the single-character rendering used by text boards.
func (c Cell) Symbol() byte {
	switch c {
	case Black:
		return 'B'
	case White:
		return 'W'
	default:
		return '.'
	}
}

// ParseCell accepts "black"/"b" and "white"/"w" in any case.
func ParseCell(s string) (Cell, bool) {
	switch strings.ToLower(s) {
	case "black", "b":
		return Black, true
	case "white", "w":
		return White, true
	default:
		return Empty, false
	}
}
