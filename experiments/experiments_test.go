package experiments

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"gomoku/experiments/metrics"
	"gomoku/game"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func TestRun(t *testing.T) {
	t.Run("plays every game and alternates the opening agent", func(t *testing.T) {
		a := metrics.AgentConfig{ID: 1, Baseline: true}
		b := metrics.AgentConfig{ID: 2, Baseline: true}
		opts := Options{Games: 4, Parallel: 2, Seed: 5}

		results, err := Run(context.Background(), "baseline", opts, []metrics.AgentConfig{a, b}, [][2]metrics.AgentConfig{{a, b}})

		require.NoError(t, err)
		require.Len(t, results.Games, 4)
		require.Empty(t, results.Dir, "Nothing is written without an output directory")
		for i, record := range results.Games {
			require.Equal(t, i+1, record.ID)
			require.Equal(t, game.Black, record.StartingPlayer)
			if i%2 == 0 {
				require.Equal(t, 1, record.Agent1)
			} else {
				require.Equal(t, 2, record.Agent1)
			}
		}
		total := 0
		for _, record := range results.Games {
			total += record.TotalMoves
		}
		require.Len(t, results.Moves, total, "One move record per stone played")
	})

	t.Run("writes records to the output directory", func(t *testing.T) {
		dir := t.TempDir()

		results, err := RunDepthExperiment(context.Background(), Options{Games: 2, Parallel: 2, OutputDir: dir, Seed: 1}, 1, 50*time.Millisecond)

		require.NoError(t, err)
		require.Len(t, results.Games, 2)
		require.Equal(t, filepath.Join(dir, "depth"), filepath.Dir(results.Dir))
		for _, name := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv"} {
			require.FileExists(t, filepath.Join(results.Dir, name))
		}
	})

	t.Run("invalid tie-break fails the experiment", func(t *testing.T) {
		bad := metrics.AgentConfig{ID: 1, MaxDepth: 1, TieBreak: "coin"}

		_, err := Run(context.Background(), "bad", Options{Games: 1}, []metrics.AgentConfig{baseline, bad}, [][2]metrics.AgentConfig{{baseline, bad}})

		require.ErrorContains(t, err, "coin")
	})

	t.Run("cancelling mid-game stops the running search", func(t *testing.T) {
		deep := metrics.AgentConfig{ID: 1, MaxDepth: 10, Duration: 10 * time.Second, Radius: 2, TieBreak: "first"}
		ctx, cancel := context.WithCancel(context.Background())
		time.AfterFunc(50*time.Millisecond, cancel)

		start := time.Now()
		_, err := Run(ctx, "cancel", Options{Games: 1, Seed: 1}, []metrics.AgentConfig{baseline, deep}, [][2]metrics.AgentConfig{{baseline, deep}})

		require.ErrorIs(t, err, context.Canceled)
		require.Less(t, time.Since(start), 5*time.Second, "Run should not wait for the 10s search budget")
	})

	t.Run("cancelled context stops before playing", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := RunTimeBudgetExperiment(ctx, Options{Games: 2}, 2, []time.Duration{10 * time.Millisecond})

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestGameSeed(t *testing.T) {
	require.Zero(t, gameSeed(0, 3), "Zero keeps random seeding")
	require.NotEqual(t, gameSeed(7, 1), gameSeed(7, 2))
}
