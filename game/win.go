package game

// HasFiveThrough reports whether a line of at least WinLength stones of the
// given side passes through (row, col) in any of the four directions. The cell
// itself counts as one stone.
func HasFiveThrough(b *Board, row, col int, cell Cell) bool {
	if !b.InBounds(row, col) || !cell.IsStone() {
		return false
	}
	for _, d := range directions {
		count := 1 + countDirection(b, row, col, cell, d[0], d[1]) +
			countDirection(b, row, col, cell, -d[0], -d[1])
		if count >= WinLength {
			return true
		}
	}
	return false
}

// HasFiveAnywhere scans every stone of the given side for a winning line.
func HasFiveAnywhere(b *Board, cell Cell) bool {
	if !cell.IsStone() {
		return false
	}
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			if b.At(row, col) == cell && HasFiveThrough(b, row, col, cell) {
				return true
			}
		}
	}
	return false
}

// countDirection counts consecutive stones of cell starting one step away
// from (row, col) along (dRow, dCol).
func countDirection(b *Board, row, col int, cell Cell, dRow, dCol int) int {
	count := 0
	r, c := row+dRow, col+dCol
	for b.InBounds(r, c) && b.At(r, c) == cell {
		count++
		r += dRow
		c += dCol
	}
	return count
}
