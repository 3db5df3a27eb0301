package searcher

import "fmt"

// TieBreak decides how a maximizing node picks among children sharing the
// best score. Minimizing nodes always keep the first best child.
type TieBreak int

const (
	TieBreakRandom TieBreak = iota // Uniformly random among equal-best moves
	TieBreakFirst                  // First equal-best move in search order
)

func ParseTieBreak(s string) (TieBreak, error) {
	switch s {
	case "random", "":
		return TieBreakRandom, nil
	case "first":
		return TieBreakFirst, nil
	default:
		return TieBreakRandom, fmt.Errorf("unknown tie-break policy %q", s)
	}
}

func (t TieBreak) String() string {
	if t == TieBreakFirst {
		return "first"
	}
	return "random"
}
