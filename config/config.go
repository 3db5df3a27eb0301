package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/adrg/xdg"
	"github.com/ilyakaznacheev/cleanenv"

	"gomoku/game"
	"gomoku/searcher"
)

// File is looked up relative to the XDG config directories.
const File = "gomoku/config.yml"

type Config struct {
	Debug      bool       `yaml:"debug" env:"GOMOKU_DEBUG" env-default:"false"`
	AI         AI         `yaml:"ai"`
	Experiment Experiment `yaml:"experiment"`
}

type AI struct {
	Side      string        `yaml:"side" env:"GOMOKU_AI_SIDE" env-default:"white"`
	MaxDepth  int           `yaml:"max-depth" env:"GOMOKU_AI_MAX_DEPTH" env-default:"5"`
	TimeLimit time.Duration `yaml:"time-limit" env:"GOMOKU_AI_TIME_LIMIT" env-default:"3s"`
	Radius    int           `yaml:"radius" env:"GOMOKU_AI_RADIUS" env-default:"2"`
	TieBreak  string        `yaml:"tie-break" env:"GOMOKU_AI_TIE_BREAK" env-default:"random"`
	Seed      uint64        `yaml:"seed" env:"GOMOKU_AI_SEED" env-default:"0"`
}

type Experiment struct {
	Games     int    `yaml:"games" env:"GOMOKU_EXPERIMENT_GAMES" env-default:"20"`
	Parallel  int    `yaml:"parallel" env:"GOMOKU_EXPERIMENT_PARALLEL" env-default:"4"`
	MaxDepth  int    `yaml:"max-depth" env:"GOMOKU_EXPERIMENT_MAX_DEPTH" env-default:"4"`
	OutputDir string `yaml:"output-dir" env:"GOMOKU_EXPERIMENT_OUTPUT_DIR" env-default:"results"`
}

var ErrInvalidConfig = errors.New("invalid config")

// Load reads path, or the first config.yml found in the XDG config
// directories when path is empty. Environment variables override the file.
// Without any file only the environment and the defaults apply.
func Load(path string) (*Config, error) {
	config := &Config{}

	if path == "" {
		found, err := xdg.SearchConfigFile(File)
		if err == nil {
			path = found
		}
	}

	if path == "" {
		if err := cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read config from environment: %w", err)
		}
	} else if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	if _, ok := game.ParseCell(c.AI.Side); !ok {
		return fmt.Errorf("%w: ai.side must be black or white, got %q", ErrInvalidConfig, c.AI.Side)
	}
	if c.AI.MaxDepth <= 0 {
		return fmt.Errorf("%w: ai.max-depth must be positive", ErrInvalidConfig)
	}
	if c.AI.Radius <= 0 {
		return fmt.Errorf("%w: ai.radius must be positive", ErrInvalidConfig)
	}
	if c.AI.TimeLimit < 0 {
		return fmt.Errorf("%w: ai.time-limit must not be negative", ErrInvalidConfig)
	}
	if _, err := searcher.ParseTieBreak(c.AI.TieBreak); err != nil {
		return fmt.Errorf("%w: ai.tie-break: %w", ErrInvalidConfig, err)
	}
	if c.Experiment.Games <= 0 || c.Experiment.Parallel <= 0 || c.Experiment.MaxDepth <= 0 {
		return fmt.Errorf("%w: experiment games, parallel and max-depth must be positive", ErrInvalidConfig)
	}
	return nil
}

// Side is the color the AI plays. Only valid after Validate.
func (c *Config) Side() game.Cell {
	side, _ := game.ParseCell(c.AI.Side)
	return side
}

// TieBreak is the parsed tie-break policy. Only valid after Validate.
func (c *Config) TieBreak() searcher.TieBreak {
	tieBreak, _ := searcher.ParseTieBreak(c.AI.TieBreak)
	return tieBreak
}

// SearchOptions turns the AI section into minimax options.
func (c *Config) SearchOptions() []searcher.Option {
	return []searcher.Option{
		searcher.WithRadius(c.AI.Radius),
		searcher.WithTieBreak(c.TieBreak()),
		searcher.WithSeed(c.AI.Seed),
	}
}
