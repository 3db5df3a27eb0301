package engine

import (
	"gomoku/experiments/metrics"
	"gomoku/game"
)

type Status int

const (
	Playing Status = iota
	Won
	Draw
)

func (s Status) String() string {
	switch s {
	case Won:
		return "won"
	case Draw:
		return "draw"
	default:
		return "playing"
	}
}

// Result is the outcome of a game so far. Winner is Empty unless Status is Won.
type Result struct {
	Status Status
	Winner game.Cell
}

// Reply answers a move request. Found is false only when the board has no
// empty cell left.
type Reply struct {
	Move   game.Move
	Found  bool
	Metric metrics.SearchMetric
}

// Scores holds the heuristic pattern score of each side for the scoreboard.
type Scores struct {
	Black int
	White int
}

type Runner interface {
	// Run plays a game till there's a winner, a draw or the turn limit is reached
	Run() (winner game.Cell, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
