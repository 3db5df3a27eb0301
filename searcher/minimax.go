package searcher

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"

	"gomoku/experiments/metrics"
	"gomoku/game"
)

// thanks Wikipedia:
/*
function alphabeta(node, depth, α, β, maximizingPlayer) is
    if depth = 0 or node is a terminal node then
        return the heuristic value of node
    if maximizingPlayer then
        value := −∞
        for each child of node do
            value := max(value, alphabeta(child, depth − 1, α, β, FALSE))
            α := max(α, value)
            if α ≥ β then
                break (* β cut-off *)
        return value
    else
        value := +∞
        for each child of node do
            value := min(value, alphabeta(child, depth − 1, α, β, TRUE))
            β := min(β, value)
            if α ≥ β then
                break (* α cut-off *)
        return value
*/

// ErrSearchAborted unwinds a depth whose deadline passed or whose token was
// cancelled. Partial results of that depth are discarded.
var ErrSearchAborted = errors.New("search aborted")

// Evaluation is a scored, optional move. Found is false when no move was chosen.
type Evaluation struct {
	Move  game.Move
	Found bool
	Score int
}

type Option func(m *Minimax)

// Minimax is an iterative-deepening alpha-beta searcher. It is not safe for
// concurrent use; each goroutine needs its own instance.
type Minimax struct {
	evaluate  game.Evaluate
	generator *MoveGenerator
	tieBreak  TieBreak
	rng       *rand.Rand
	metrics   metrics.Collector
}

type scoredMove struct {
	move  game.Move
	score int
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithRadius(radius int) Option {
	return func(m *Minimax) {
		m.generator = NewMoveGenerator(radius)
	}
}

func WithTieBreak(tieBreak TieBreak) Option {
	return func(m *Minimax) {
		m.tieBreak = tieBreak
	}
}

// WithSeed seeds the tie-break generator. A zero seed keeps a random one.
func WithSeed(seed uint64) Option {
	return func(m *Minimax) {
		if seed != 0 {
			m.rng = rand.New(rand.NewSource(seed))
		}
	}
}

func WithMetrics() Option {
	return func(m *Minimax) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMinimax(options ...Option) *Minimax {
	m := &Minimax{ // Default values
		evaluate:  game.Score,
		generator: NewMoveGenerator(DefaultRadius),
		tieBreak:  TieBreakRandom,
		metrics:   metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(frand.Uint64n(math.MaxUint64)))
	}
	return m
}

// Search runs alpha-beta at depths 1..maxDepth on b for maxSide and keeps the
// result of the deepest completed depth. A non-positive limit disables the
// deadline so only the token can stop the search. b is used as scratch space
// and is restored before Search returns.
func (m *Minimax) Search(b *game.Board, maxDepth int, maxSide, minSide game.Cell, limit time.Duration, token *Token) (Evaluation, metrics.SearchMetric) {
	if maxDepth <= 0 {
		panic("max depth must be positive")
	}
	var deadline time.Time
	if limit > 0 {
		deadline = time.Now().Add(limit)
	}

	m.metrics.Start(maxDepth, limit)
	best := Evaluation{Score: -Infinity}
	for depth := 1; depth <= maxDepth; depth++ {
		result, err := m.minimax(b, depth, -Infinity, Infinity, true, maxSide, minSide, deadline, token)
		if err != nil {
			m.metrics.SetAborted()
			log.Debug().Int("depth", depth).Err(err).Msg("search-depth-discarded")
			break
		}
		m.metrics.CompleteDepth(depth)
		if result.Found {
			best = result
		} else {
			best = Evaluation{Score: result.Score}
		}
		log.Debug().Int("depth", depth).Int("score", best.Score).Stringer("move", best.Move).Msg("search-depth-complete")

		if token.Cancelled() || (best.Found && best.Score >= Infinity) {
			break
		}
	}

	if !best.Found {
		best = m.fallback(b, maxSide, minSide)
		log.Debug().Bool("found", best.Found).Stringer("move", best.Move).Msg("search-fallback")
	}
	return best, m.metrics.Complete()
}

func (m *Minimax) minimax(b *game.Board, depth, alpha, beta int, maximizing bool, maxSide, minSide game.Cell, deadline time.Time, token *Token) (Evaluation, error) {
	if expired(deadline, token) {
		return Evaluation{}, ErrSearchAborted
	}
	m.metrics.AddNode()

	if game.HasFiveAnywhere(b, maxSide) {
		return Evaluation{Score: Infinity}, nil
	}
	if game.HasFiveAnywhere(b, minSide) {
		return Evaluation{Score: -Infinity}, nil
	}
	if depth == 0 || b.IsFull() {
		return Evaluation{Score: m.evaluate(b, maxSide, minSide)}, nil
	}

	mover := minSide
	if maximizing {
		mover = maxSide
	}
	moves := m.generator.Generate(b, mover)

	win, ok, err := immediateWin(b, moves, mover, deadline, token)
	if err != nil {
		return Evaluation{}, err
	}
	if ok {
		score := -Infinity
		if maximizing {
			score = Infinity
		}
		return Evaluation{Move: win, Found: true, Score: score}, nil
	}

	ordered, err := m.orderMoves(b, moves, maximizing, maxSide, minSide, deadline, token)
	if err != nil {
		return Evaluation{}, err
	}
	if len(ordered) == 0 {
		return Evaluation{Score: m.evaluate(b, maxSide, minSide)}, nil
	}

	if maximizing {
		return m.maximize(b, ordered, depth, alpha, beta, maxSide, minSide, deadline, token)
	}
	return m.minimize(b, ordered, depth, alpha, beta, maxSide, minSide, deadline, token)
}

func (m *Minimax) maximize(b *game.Board, moves []game.Move, depth, alpha, beta int, maxSide, minSide game.Cell, deadline time.Time, token *Token) (Evaluation, error) {
	best := Evaluation{Score: -Infinity}
	var ties []game.Move

	for _, move := range moves {
		if expired(deadline, token) {
			return Evaluation{}, ErrSearchAborted
		}
		// A child searched at alpha == best.Score may fail low and still report
		// best.Score. Lowering alpha by one keeps every reported tie exact.
		childAlpha := alpha
		if m.tieBreak == TieBreakRandom && best.Found && alpha == best.Score {
			childAlpha = alpha - 1
		}
		move.Execute(b)
		child, err := m.minimax(b, depth-1, childAlpha, beta, false, maxSide, minSide, deadline, token)
		move.Undo(b)
		if err != nil {
			return Evaluation{}, err
		}

		switch {
		case !best.Found || child.Score > best.Score:
			best = Evaluation{Move: move, Found: true, Score: child.Score}
			ties = append(ties[:0], move)
		case child.Score == best.Score:
			ties = append(ties, move)
		}
		alpha = max(alpha, best.Score)
		if alpha >= beta {
			break // β cut-off
		}
	}

	if m.tieBreak == TieBreakRandom && len(ties) > 1 {
		best.Move = ties[m.rng.Intn(len(ties))]
	}
	return best, nil
}

func (m *Minimax) minimize(b *game.Board, moves []game.Move, depth, alpha, beta int, maxSide, minSide game.Cell, deadline time.Time, token *Token) (Evaluation, error) {
	best := Evaluation{Score: Infinity}

	for _, move := range moves {
		if expired(deadline, token) {
			return Evaluation{}, ErrSearchAborted
		}
		move.Execute(b)
		child, err := m.minimax(b, depth-1, alpha, beta, true, maxSide, minSide, deadline, token)
		move.Undo(b)
		if err != nil {
			return Evaluation{}, err
		}

		if !best.Found || child.Score < best.Score {
			best = Evaluation{Move: move, Found: true, Score: child.Score}
		}
		beta = min(beta, best.Score)
		if alpha >= beta {
			break // α cut-off
		}
	}
	return best, nil
}

// orderMoves scores every candidate with one speculative placement and sorts
// best-first for the node type.
func (m *Minimax) orderMoves(b *game.Board, moves []game.Move, maximizing bool, maxSide, minSide game.Cell, deadline time.Time, token *Token) ([]game.Move, error) {
	scored := make([]scoredMove, 0, len(moves))
	for _, move := range moves {
		if expired(deadline, token) {
			return nil, ErrSearchAborted
		}
		if !move.Execute(b) {
			continue
		}
		scored = append(scored, scoredMove{move: move, score: m.evaluate(b, maxSide, minSide)})
		move.Undo(b)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if maximizing {
			return scored[i].score > scored[j].score
		}
		return scored[i].score < scored[j].score
	})
	return lo.Map(scored, func(item scoredMove, _ int) game.Move {
		return item.move
	}), nil
}

// fallback picks a move when no depth completed: an immediate win, then a
// block of the opponent's immediate win, then the first candidate, then the
// first empty cell in raster order.
func (m *Minimax) fallback(b *game.Board, maxSide, minSide game.Cell) Evaluation {
	moves := m.generator.Generate(b, maxSide)
	if len(moves) > 0 {
		if win, ok := findWin(b, moves, maxSide); ok {
			return Evaluation{Move: win, Found: true, Score: Infinity}
		}
		score := m.evaluate(b, maxSide, minSide)
		if block, ok := findWin(b, moves, minSide); ok {
			return Evaluation{Move: game.NewMove(block.Row, block.Col, maxSide), Found: true, Score: score}
		}
		return Evaluation{Move: moves[0], Found: true, Score: score}
	}

	n := b.Size()
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if b.IsLegal(row, col) {
				return Evaluation{Move: game.NewMove(row, col, maxSide), Found: true, Score: m.evaluate(b, maxSide, minSide)}
			}
		}
	}
	return Evaluation{Score: -Infinity}
}

// immediateWin returns the first candidate that completes five for side,
// polling for cancellation before each probe.
func immediateWin(b *game.Board, moves []game.Move, side game.Cell, deadline time.Time, token *Token) (game.Move, bool, error) {
	for _, move := range moves {
		if expired(deadline, token) {
			return game.Move{}, false, ErrSearchAborted
		}
		if wins(b, move.Row, move.Col, side) {
			return move, true, nil
		}
	}
	return game.Move{}, false, nil
}

// findWin returns the first candidate cell where side would complete five.
func findWin(b *game.Board, moves []game.Move, side game.Cell) (game.Move, bool) {
	for _, move := range moves {
		if wins(b, move.Row, move.Col, side) {
			return move, true
		}
	}
	return game.Move{}, false
}

func expired(deadline time.Time, token *Token) bool {
	if token.Cancelled() {
		return true
	}
	return !deadline.IsZero() && !time.Now().Before(deadline)
}
