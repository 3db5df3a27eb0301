package agent

import (
	"time"

	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/searcher"
)

type Agent interface {
	Side() game.Cell
	// FindMove returns the chosen move (if any) and performance metrics (if collected) from the search
	FindMove(b *game.Board, token *searcher.Token) (searcher.Evaluation, metrics.SearchMetric)
}

// AIPlayer searches a private copy of the board with a fixed depth and time
// budget. Searches on one AIPlayer must not overlap.
type AIPlayer struct {
	side     game.Cell
	maxDepth int
	duration time.Duration
	minimax  *searcher.Minimax
}

func NewAIPlayer(side game.Cell, maxDepth int, duration time.Duration, minimax *searcher.Minimax) *AIPlayer {
	if !side.IsStone() {
		panic("AI player needs a stone color")
	}
	if maxDepth <= 0 {
		panic("max depth must be positive")
	}
	if minimax == nil {
		minimax = searcher.NewMinimax()
	}
	return &AIPlayer{
		side:     side,
		maxDepth: maxDepth,
		duration: duration,
		minimax:  minimax,
	}
}

func (p *AIPlayer) Side() game.Cell {
	return p.side
}

// BestMove returns the move to play on b, or false if b has no empty cell.
// b itself is never touched.
func (p *AIPlayer) BestMove(b *game.Board, token *searcher.Token) (game.Move, bool) {
	result, _ := p.FindMove(b, token)
	return result.Move, result.Found
}

func (p *AIPlayer) FindMove(b *game.Board, token *searcher.Token) (searcher.Evaluation, metrics.SearchMetric) {
	return p.minimax.Search(b.Copy(), p.maxDepth, p.side, p.side.Opponent(), p.duration, token)
}
