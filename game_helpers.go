package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/sheikhrachel/go-torus-life/model"
	"github.com/sheikhrachel/go-torus-life/utils"
)

// resolveConfig layers defaults, the optional config file and flags, in that order
func resolveConfig(opts cliOptions) (utils.Config, error) {
	config := utils.DefaultConfig()
	if opts.configFile != "" {
		var err error
		if config, err = utils.LoadConfig(opts.configFile); err != nil {
			return config, err
		}
	}

	if opts.width != 0 {
		config.Width = opts.width
	}
	if opts.height != 0 {
		config.Height = opts.height
	}
	if opts.interval != 0 {
		config.FrameRate = opts.interval
	}
	if opts.generations != 0 {
		config.MaxGenerations = opts.generations
	}
	if opts.workers != 0 {
		config.Workers = opts.workers
	}
	if opts.seed != "" {
		config.Seed = opts.seed
	}
	if opts.noColor {
		config.Color = false
	}
	if opts.trace {
		config.Trace = true
	}

	return config, config.Validate()
}

// initializeGame sets up the initial game state
func initializeGame(config utils.Config, logger *slog.Logger) (
	*model.Universe,
	*model.TerminalRenderer,
	*utils.Stats,
	error,
) {
	seed, err := model.ParseSeed(config.Seed)
	if err != nil {
		return nil, nil, nil, err
	}

	workers := config.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	opts := []model.Option{model.WithWorkers(workers)}
	if config.Trace {
		opts = append(opts, model.WithTracer(cellLogger{logger: logger}))
	}

	universe, err := model.NewUniverse(config.Width, config.Height, seed, opts...)
	if err != nil {
		return nil, nil, nil, err
	}

	renderer := model.NewTerminalRenderer(os.Stdout, config.Color)
	return universe, renderer, utils.NewStats(), nil
}

// advance computes one generation and records its timing
func advance(universe *model.Universe, stats *utils.Stats) {
	start := time.Now()
	universe.Tick()
	stats.Update(universe.Generation(), universe.Population(), time.Since(start))
}

// limitReached reports whether the configured generation limit has been hit
func limitReached(config utils.Config, universe *model.Universe) bool {
	return config.MaxGenerations > 0 && universe.Generation() >= config.MaxGenerations
}

// displayGameStatus shows the current game status
func displayGameStatus(w io.Writer, universe *model.Universe, stats *utils.Stats) {
	living := universe.Population()
	density := float64(living) / float64(universe.Width()*universe.Height()) * 100

	fmt.Fprintf(w, "Gen: %d | Living: %d | Density: %.1f%%\n",
		universe.Generation(), living, density)
	fmt.Fprintf(w, "Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		stats.GenerationsPerSecond, stats.AveragePopulation, stats.Runtime().Seconds())
}

// listTemplates prints the pattern templates usable in seed selectors
func listTemplates(w io.Writer) {
	for _, t := range model.Templates() {
		fmt.Fprintf(w, "  %-8s %s\n", t.Name, t.Descr)
	}
}

// cellLogger traces rule evaluations through slog
type cellLogger struct {
	logger *slog.Logger
}

func (l cellLogger) TraceCell(row, col int, cell model.Cell, neighbors uint8, next model.Cell) {
	l.logger.Debug("cell evaluated",
		"row", row, "col", col,
		"cell", cell.String(), "neighbors", neighbors, "next", next.String())
}
