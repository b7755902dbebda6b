package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/dealing"
	"github.com/lox/holdem-engine/internal/engine"
	"github.com/lox/holdem-engine/internal/randutil"
)

// version is set by ldflags during build
var version = "dev"

// Globals are shared by every subcommand.
type Globals struct {
	Config   string `short:"c" default:"holdem.hcl" help:"Path to HCL configuration file"`
	LogLevel string `short:"l" help:"Log level (overrides config)"`
	Weights  string `env:"HOLDEM_WEIGHTS" help:"Path to the range weight JSON (overrides config)"`
	Seed     *int64 `help:"Deterministic RNG seed (overrides config)"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Deal     DealCmd          `cmd:"" help:"Deal one set of weighted starting hands"`
	Simulate SimulateCmd      `cmd:"" help:"Play hands between passive bots in parallel rooms"`
	Classes  ClassesCmd       `cmd:"" help:"List hand classes and their effective weights"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem"),
		kong.Description("Weighted multi-seat Texas Hold'em engine"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// session is what every command needs after flags and config are merged.
type session struct {
	cfg     *engine.Config
	logger  *log.Logger
	weights dealing.WeightSource
	rng     randutil.Source
	seed    int64
}

func (g *Globals) setup() (*session, error) {
	cfg, err := engine.LoadConfig(g.Config)
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if g.Weights != "" {
		cfg.WeightsPath = g.Weights
	}
	if g.Seed != nil {
		cfg.Seed = *g.Seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})

	rt := &session{cfg: cfg, logger: logger, seed: cfg.Seed}
	if cfg.Seed != 0 {
		rt.rng = randutil.New(cfg.Seed)
		logger.Debug("Using deterministic seed", "seed", cfg.Seed)
	} else {
		rt.rng, rt.seed = randutil.NewTimeSeeded()
		logger.Debug("Using random seed", "seed", rt.seed)
	}

	if cfg.WeightsPath == "" {
		logger.Warn("No weights configured, dealing every class uniformly")
		rt.weights = dealing.UniformWeights()
		return rt, nil
	}
	weights, err := dealing.LoadWeights(cfg.WeightsPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded weights", "path", cfg.WeightsPath, "classes", len(weights))
	rt.weights = weights
	return rt, nil
}

// mode resolves a per-command override against the configured default.
func (rt *session) mode(override string) (dealing.Mode, error) {
	if override == "" {
		return rt.cfg.Mode(), nil
	}
	return dealing.ParseMode(override)
}
