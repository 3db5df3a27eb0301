package agent

import (
	"math"
	"time"

	"github.com/samber/lo"
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"

	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/searcher"
)

// SamplingAgent is a one-ply baseline. It takes an immediate win or block when
// one exists and otherwise samples a candidate with probability proportional
// to its temperature-adjusted static score.
type SamplingAgent struct {
	side        game.Cell
	temperature float64
	evaluate    game.Evaluate
	generator   *searcher.MoveGenerator
	rng         *rand.Rand
}

// NewSamplingAgent returns a baseline agent. A zero seed picks a random one.
func NewSamplingAgent(side game.Cell, temperature float64, seed uint64) *SamplingAgent {
	if !side.IsStone() {
		panic("sampling agent needs a stone color")
	}
	if temperature <= 0 {
		panic("temperature must be positive")
	}
	if seed == 0 {
		seed = frand.Uint64n(math.MaxUint64)
	}
	return &SamplingAgent{
		side:        side,
		temperature: temperature,
		evaluate:    game.Score,
		generator:   searcher.NewMoveGenerator(searcher.DefaultRadius),
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (a *SamplingAgent) Side() game.Cell {
	return a.side
}

func (a *SamplingAgent) FindMove(b *game.Board, token *searcher.Token) (result searcher.Evaluation, metric metrics.SearchMetric) {
	start := time.Now()
	metric.MaxDepth = 1
	defer func() { metric.Duration = time.Since(start) }()

	work := b.Copy()
	opponent := a.side.Opponent()
	moves := a.generator.Generate(work, a.side)
	if len(moves) == 0 {
		return searcher.Evaluation{Score: -searcher.Infinity}, metric
	}
	if token.Cancelled() {
		metric.Aborted = true
		return searcher.Evaluation{Move: moves[0], Found: true, Score: a.evaluate(work, a.side, opponent)}, metric
	}

	scores := make([]int, len(moves))
	for i, move := range moves {
		move.Execute(work)
		metric.Nodes++
		if game.HasFiveThrough(work, move.Row, move.Col, a.side) {
			move.Undo(work)
			metric.CompletedDepth = 1
			return searcher.Evaluation{Move: move, Found: true, Score: searcher.Infinity}, metric
		}
		scores[i] = a.evaluate(work, a.side, opponent)
		move.Undo(work)
	}
	for i, move := range moves {
		block := game.NewMove(move.Row, move.Col, opponent)
		block.Execute(work)
		threat := game.HasFiveThrough(work, move.Row, move.Col, opponent)
		block.Undo(work)
		if threat {
			metric.CompletedDepth = 1
			return searcher.Evaluation{Move: move, Found: true, Score: scores[i]}, metric
		}
	}

	policy := adjustTemperature(scores, a.temperature)
	i := sample(policy, a.rng.Float64())
	metric.CompletedDepth = 1
	return searcher.Evaluation{Move: moves[i], Found: true, Score: scores[i]}, metric
}

// adjustTemperature shifts scores to be positive and returns the normalized
// probabilities of score^(1/temperature).
func adjustTemperature(scores []int, temperature float64) []float64 {
	lowest := lo.Min(scores)
	exponent := 1.0 / temperature
	weights := lo.Map(scores, func(score int, _ int) float64 {
		return math.Pow(float64(score-lowest+1), exponent)
	})
	sum := lo.Sum(weights)
	return lo.Map(weights, func(w float64, _ int) float64 {
		return w / sum
	})
}

// sample picks an index of policy given a uniform draw in [0, 1).
func sample(policy []float64, sampled float64) int {
	cumulative := 0.0
	for i, prob := range policy {
		cumulative += prob
		if sampled < cumulative {
			return i
		}
	}
	return len(policy) - 1 // Fallback in case of rounding errors
}
