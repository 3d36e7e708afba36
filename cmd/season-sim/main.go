package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/underdog/internal/seasonsim"
	"github.com/okian/underdog/pkg/logger"
)

// Default configuration constants.
const (
	defaultPlayers    = 8
	defaultWeeks      = 4
	defaultSeed       = 42
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 5 * time.Minute
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:8090", "Base URL of the service")
		players = flag.Int("players", defaultPlayers, "Number of players to add")
		weeks   = flag.Int("weeks", defaultWeeks, "Number of weeks to simulate")
		seed    = flag.Int64("seed", defaultSeed, "Random seed for deterministic runs")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &seasonsim.Config{
		BaseURL: *baseURL,
		Players: *players,
		Weeks:   *weeks,
		Seed:    *seed,
		Timeout: *timeout,
		Verbose: *verbose,
	}

	if err := seasonsim.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Simulation failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
