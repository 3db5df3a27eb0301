package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gomoku/config"
	"gomoku/console"
	"gomoku/engine"
	"gomoku/experiments"
	"gomoku/game"
	"gomoku/searcher"
	"gomoku/searcher/agent"
)

var (
	configPath = flag.String("config", "", "path to config.yml (default: XDG config dirs)")
	mode       = flag.String("mode", "play", "play | selfplay | experiment")
)

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func main() {
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Debug().Msgf("loaded config: %+v", *cfg)

	switch *mode {
	case "play":
		play(cfg)
	case "selfplay":
		selfPlay(cfg)
	case "experiment":
		experiment(cfg)
	default:
		log.Fatal().Msgf("unknown mode %q", *mode)
	}
}

func newAIPlayer(cfg *config.Config, side game.Cell) *agent.AIPlayer {
	return agent.NewAIPlayer(side, cfg.AI.MaxDepth, cfg.AI.TimeLimit, searcher.NewMinimax(cfg.SearchOptions()...))
}

func play(cfg *config.Config) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:      "\033[31mgomoku>\033[0m ",
		HistoryFile: "/tmp/gomoku-readline.tmp",
		EOFPrompt:   "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start console")
	}
	defer l.Close()

	session := console.NewSession(engine.New(game.DefaultSize), newAIPlayer(cfg, cfg.Side()), l.Stdout())

	// Readline owns Ctrl-C while reading; otherwise the AI is thinking.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT)
	defer signal.Stop(sig)
	go func() {
		for range sig {
			session.Cancel()
		}
	}()

	console.Usage(l.Stderr())
	session.Start()
	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}

		cmd, err := console.Parse(strings.TrimSpace(line))
		if err != nil {
			log.Error().Err(err).Msg("")
			continue
		}
		quit, err := session.Execute(cmd)
		if err != nil {
			log.Error().Err(err).Msg("")
		}
		if quit {
			break
		}
	}
	log.Info().Msg("bye")
}

func selfPlay(cfg *config.Config) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	token := searcher.NewToken()
	defer context.AfterFunc(ctx, token.Cancel)()

	e := engine.New(game.DefaultSize,
		engine.WithAgents(newAIPlayer(cfg, game.Black), newAIPlayer(cfg, game.White)),
		engine.WithToken(token))
	winner, gameMetric, _ := e.Run()
	log.Info().Stringer("winner", winner).Int("moves", gameMetric.TotalMoves).Dur("duration", gameMetric.Duration).Msg("self-play finished")
	os.Stdout.WriteString(e.Board().String())
}

func experiment(cfg *config.Config) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := experiments.Options{
		Games:     cfg.Experiment.Games,
		Parallel:  cfg.Experiment.Parallel,
		OutputDir: cfg.Experiment.OutputDir,
		Seed:      cfg.AI.Seed,
	}
	results, err := experiments.RunDepthExperiment(ctx, opts, cfg.Experiment.MaxDepth, cfg.AI.TimeLimit)
	if err != nil {
		log.Fatal().Err(err).Msg("depth experiment failed")
	}
	log.Info().Str("dir", results.Dir).Msg("depth experiment stored")

	results, err = experiments.RunTimeBudgetExperiment(ctx, opts, cfg.Experiment.MaxDepth, []time.Duration{
		cfg.AI.TimeLimit / 10, cfg.AI.TimeLimit / 2, cfg.AI.TimeLimit,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("time budget experiment failed")
	}
	log.Info().Str("dir", results.Dir).Msg("time budget experiment stored")
}
