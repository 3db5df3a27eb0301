package experiments

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"gomoku/engine"
	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/searcher"
	"gomoku/searcher/agent"
)

const (
	NumGames            = 20 // Per match up
	BaselineTemperature = 0.5
)

type Options struct {
	Games     int    // Per match up
	Parallel  int    // Games played at once
	OutputDir string // Empty skips writing records
	Seed      uint64 // Zero picks random seeds
}

type Results struct {
	Dir   string
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
}

var baseline = metrics.AgentConfig{ID: 0, MaxDepth: 1, Baseline: true, TieBreak: searcher.TieBreakRandom.String()}

// RunDepthExperiment pairs the sampling baseline against minimax agents of
// depth 1..maxDepth with the same per-move budget.
func RunDepthExperiment(ctx context.Context, opts Options, maxDepth int, budget time.Duration) (Results, error) {
	configs := lo.Times(maxDepth, func(i int) metrics.AgentConfig {
		return metrics.AgentConfig{
			ID:       i + 1,
			MaxDepth: i + 1,
			Duration: budget,
			Radius:   searcher.DefaultRadius,
			TieBreak: searcher.TieBreakRandom.String(),
		}
	})
	return runBaselineExperiment(ctx, "depth", opts, configs)
}

// RunTimeBudgetExperiment pairs the sampling baseline against deep minimax
// agents that differ only in their per-move time budget.
func RunTimeBudgetExperiment(ctx context.Context, opts Options, maxDepth int, budgets []time.Duration) (Results, error) {
	configs := lo.Map(budgets, func(budget time.Duration, i int) metrics.AgentConfig {
		return metrics.AgentConfig{
			ID:       i + 1,
			MaxDepth: maxDepth,
			Duration: budget,
			Radius:   searcher.DefaultRadius,
			TieBreak: searcher.TieBreakRandom.String(),
		}
	})
	return runBaselineExperiment(ctx, "time_budget", opts, configs)
}

func runBaselineExperiment(ctx context.Context, name string, opts Options, configs []metrics.AgentConfig) (Results, error) {
	// Each matchup pairs the baseline agent against a minimax agent
	matchUps := lo.Map(configs, func(config metrics.AgentConfig, _ int) [2]metrics.AgentConfig {
		return [2]metrics.AgentConfig{baseline, config}
	})
	return Run(ctx, name, opts, append([]metrics.AgentConfig{baseline}, configs...), matchUps)
}

type gameResult struct {
	record metrics.GameRecord
	moves  []metrics.MoveMetric
}

// Run plays opts.Games games per match up, alternating which agent opens, and
// stores the records under opts.OutputDir when it is set.
func Run(ctx context.Context, name string, opts Options, configs []metrics.AgentConfig, matchUps [][2]metrics.AgentConfig) (Results, error) {
	if opts.Games <= 0 {
		opts.Games = NumGames
	}
	if opts.Parallel <= 0 {
		opts.Parallel = 1
	}

	log.Info().Msgf("starting %s experiment...", name)

	results := make([]gameResult, len(matchUps)*opts.Games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Parallel)

	for mi, matchUp := range matchUps {
		for i := 0; i < opts.Games; i++ {
			mi, i := mi, i
			id := mi*opts.Games + i + 1
			black, white := matchUp[0], matchUp[1]
			if i%2 == 1 {
				black, white = white, black
			}
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				log.Info().Msgf("starting matchup %d of %d game %d of %d...", mi+1, len(matchUps), i+1, opts.Games)

				winner, gameMetric, moveMetrics, err := runGame(ctx, black, white, gameSeed(opts.Seed, id))
				if err != nil {
					return fmt.Errorf("game %d: %w", id, err)
				}
				results[id-1] = gameResult{
					record: metrics.GameRecord{ID: id, Agent1: black.ID, Agent2: white.ID, GameMetric: gameMetric},
					moves:  moveMetrics,
				}

				log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(matchUps), i+1, winner)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return Results{}, fmt.Errorf("%s experiment: %w", name, err)
	}

	log.Info().Msgf("completed %s experiment", name)

	out := Results{
		Games: lo.Map(results, func(r gameResult, _ int) metrics.GameRecord { return r.record }),
		Moves: lo.FlatMap(results, func(r gameResult, _ int) []metrics.MoveRecord {
			return lo.Map(r.moves, func(mm metrics.MoveMetric, _ int) metrics.MoveRecord {
				return metrics.MoveRecord{Game: r.record.ID, MoveMetric: mm}
			})
		}),
	}
	if opts.OutputDir == "" {
		return out, nil
	}

	dir, err := store(opts.OutputDir, name, configs, out)
	if err != nil {
		return Results{}, err
	}
	out.Dir = dir
	return out, nil
}

func store(outputDir, name string, configs []metrics.AgentConfig, results Results) (string, error) {
	writer, err := metrics.NewWriter(outputDir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	// Store experiment metadata
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	// Store experiment results
	if err := writer.WriteGameRecords(results.Games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(results.Moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}

// runGame executes a single game between two agents and returns the winner.
// Cancelling ctx stops the game mid-search and returns ctx.Err().
func runGame(ctx context.Context, black, white metrics.AgentConfig, seed uint64) (game.Cell, metrics.GameMetric, []metrics.MoveMetric, error) {
	blackAgent, err := createAgent(black, game.Black, seed)
	if err != nil {
		return game.Empty, metrics.GameMetric{}, nil, err
	}
	if seed != 0 {
		seed++
	}
	whiteAgent, err := createAgent(white, game.White, seed)
	if err != nil {
		return game.Empty, metrics.GameMetric{}, nil, err
	}

	token := searcher.NewToken()
	stop := context.AfterFunc(ctx, token.Cancel)
	defer stop()

	e := engine.New(game.DefaultSize, engine.WithAgents(blackAgent, whiteAgent), engine.WithToken(token))
	winner, gameMetric, moveMetrics := e.Run()
	if err := ctx.Err(); err != nil {
		return game.Empty, metrics.GameMetric{}, nil, err
	}
	return winner, gameMetric, moveMetrics, nil
}

func createAgent(config metrics.AgentConfig, side game.Cell, seed uint64) (agent.Agent, error) {
	if config.Baseline {
		return agent.NewSamplingAgent(side, BaselineTemperature, seed), nil
	}

	tieBreak, err := searcher.ParseTieBreak(config.TieBreak)
	if err != nil {
		return nil, fmt.Errorf("agent %d: %w", config.ID, err)
	}
	options := []searcher.Option{
		searcher.WithTieBreak(tieBreak),
		searcher.WithSeed(seed),
		searcher.WithMetrics(),
	}
	if config.Radius > 0 {
		options = append(options, searcher.WithRadius(config.Radius))
	}
	return agent.NewAIPlayer(side, config.MaxDepth, config.Duration, searcher.NewMinimax(options...)), nil
}

// gameSeed derives a distinct per-game seed, or zero for random seeding.
func gameSeed(seed uint64, id int) uint64 {
	if seed == 0 {
		return 0
	}
	return seed + uint64(id)*2
}
