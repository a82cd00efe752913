package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/integrii/flaggy"
)

// cliOptions holds command line values; zero values mean "not given"
type cliOptions struct {
	configFile  string
	width       int
	height      int
	interval    time.Duration
	generations int
	workers     int
	seed        string
	noColor     bool
	trace       bool
	once        bool
	templates   bool
}

func parseFlags() cliOptions {
	var o cliOptions

	flaggy.SetName("torus-life")
	flaggy.SetDescription("Conway's Game of Life on a toroidal grid")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true

	flaggy.String(&o.configFile, "c", "config", "JSON configuration file")
	flaggy.Int(&o.width, "x", "width", "Width of the universe")
	flaggy.Int(&o.height, "y", "height", "Height of the universe")
	flaggy.Duration(&o.interval, "i", "interval", "Interval between generations, for example 150ms")
	flaggy.Int(&o.generations, "g", "generations", "Stop after this many generations")
	flaggy.Int(&o.workers, "w", "workers", "Row bands computed concurrently per generation (0 = one per CPU)")
	flaggy.String(&o.seed, "s", "seed", "Initial pattern: empty|reference|random[:seed[:density]]|stripes:p:r,..|<template>[@row,col], joined with '+'")
	flaggy.Bool(&o.noColor, "", "no-color", "Disable coloured output")
	flaggy.Bool(&o.trace, "", "trace", "Log every cell evaluation at debug level")
	flaggy.Bool(&o.once, "1", "once", "Print the initial generation and exit")
	flaggy.Bool(&o.templates, "t", "templates", "List the available pattern templates and exit")

	flaggy.Parse()
	return o
}

func main() {
	opts := parseFlags()

	if opts.templates {
		listTemplates(os.Stdout)
		return
	}

	config, err := resolveConfig(opts)
	logger := newLogger(config.Trace)
	if err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	universe, renderer, stats, err := initializeGame(config, logger)
	if err != nil {
		logger.Error("failed to create universe", "err", err)
		os.Exit(1)
	}

	if opts.once {
		if err = renderer.Display(universe); err != nil {
			logger.Error("render failed", "err", err)
			os.Exit(1)
		}
		return
	}

	logger.Info("simulation started",
		"width", universe.Width(), "height", universe.Height(),
		"seed", config.Seed, "workers", config.Workers, "population", universe.Population())

	// Handle Ctrl+C gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		if err = renderer.Clear(); err != nil {
			logger.Warn("clear screen", "err", err)
		}
		if err = renderer.Display(universe); err != nil {
			logger.Error("render failed", "err", err)
			os.Exit(1)
		}
		displayGameStatus(os.Stdout, universe, stats)

		if limitReached(config, universe) {
			logger.Info("generation limit reached", "generations", universe.Generation())
			break
		}

		advance(universe, stats)

		select {
		case <-sigChan:
			logger.Info("shutting down",
				"generations", universe.Generation(),
				"runtime", stats.Runtime().Round(time.Millisecond),
				"avg_population", stats.AveragePopulation)
			return
		case <-time.After(config.FrameRate):
		}
	}
}

func newLogger(trace bool) *slog.Logger {
	level := slog.LevelInfo
	if trace {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
