package game

// Static pattern weights. Runs of WinLength or more always score WinScore.
const (
	WinScore     = 100000
	FourOpen     = 10000
	FourBlocked  = 1000
	ThreeOpen    = 500
	ThreeBlocked = 50
	TwoOpen      = 50
	TwoBlocked   = 5
)

// runKey identifies a line by its canonical start coordinate and direction.
type runKey struct {
	row, col   int
	dRow, dCol int
}

// Score evaluates the board from maxSide's perspective: WinScore if maxSide
// has five in a row, -WinScore if minSide has, otherwise the difference of
// both sides' pattern scores. maxSide is checked first.
func Score(b *Board, maxSide, minSide Cell) int {
	if HasFiveAnywhere(b, maxSide) {
		return WinScore
	}
	if HasFiveAnywhere(b, minSide) {
		return -WinScore
	}
	return PlayerScore(b, maxSide) - PlayerScore(b, minSide)
}

// PlayerScore sums pattern scores over the side's runs. Each (line start,
// direction) key is scored once, by the first stone reached in row-major order.
func PlayerScore(b *Board, side Cell) int {
	if !side.IsStone() {
		return 0
	}
	score := 0
	counted := make(map[runKey]struct{})
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			if b.At(row, col) != side {
				continue
			}
			for _, d := range directions {
				key := lineStart(row, col, d[0], d[1])
				if _, ok := counted[key]; ok {
					continue
				}
				counted[key] = struct{}{}
				score += scoreRun(b, row, col, side, d[0], d[1])
			}
		}
	}
	return score
}

// lineStart walks backwards along the direction until the next step would
// leave the non-negative quadrant. Only coordinates are consulted.
func lineStart(row, col, dRow, dCol int) runKey {
	r, c := row, col
	for r > 0 || c > 0 {
		nr, nc := r-dRow, c-dCol
		if nr < 0 || nc < 0 {
			break
		}
		r, c = nr, nc
	}
	return runKey{row: r, col: c, dRow: dRow, dCol: dCol}
}

// scoreRun measures the contiguous run through (row, col) and the number of
// in-bounds empty cells immediately beyond its two ends.
func scoreRun(b *Board, row, col int, side Cell, dRow, dCol int) int {
	count := 1
	openEnds := 0

	r, c := row+dRow, col+dCol
	for b.InBounds(r, c) && b.At(r, c) == side {
		count++
		r += dRow
		c += dCol
	}
	if b.IsLegal(r, c) {
		openEnds++
	}

	r, c = row-dRow, col-dCol
	for b.InBounds(r, c) && b.At(r, c) == side {
		count++
		r -= dRow
		c -= dCol
	}
	if b.IsLegal(r, c) {
		openEnds++
	}

	return runWeight(count, openEnds)
}

func runWeight(length, openEnds int) int {
	switch {
	case length >= WinLength:
		return WinScore
	case length == 4:
		return pick(openEnds, FourOpen, FourBlocked)
	case length == 3:
		return pick(openEnds, ThreeOpen, ThreeBlocked)
	case length == 2:
		return pick(openEnds, TwoOpen, TwoBlocked)
	default:
		return 0
	}
}

func pick(openEnds, open, blocked int) int {
	switch openEnds {
	case 2:
		return open
	case 1:
		return blocked
	default:
		return 0
	}
}
