// Package simulator auto-plays batches of Klondike deals and collects
// statistics about them.
package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/klondike/internal/autoplay"
	"github.com/lox/klondike/internal/game"
	"github.com/lox/klondike/internal/randutil"
	"github.com/lox/klondike/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Games    int
	Seed     int64 // base seed; game i uses Seed+i. 0 picks one at random
	Workers  int   // concurrent engines, defaults to GOMAXPROCS
	MaxSteps int   // per game, defaults to autoplay.DefaultMaxSteps
	Logger   *log.Logger
}

// Simulator runs Klondike simulations
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.MaxSteps <= 0 {
		config.MaxSteps = autoplay.DefaultMaxSteps
	}
	if config.Seed == 0 {
		_, config.Seed = randutil.NewRandom()
	}

	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Simulator{config: config, logger: logger.WithPrefix("simulator")}
}

// Seed returns the base seed, useful when it was picked at random
func (s *Simulator) Seed() int64 {
	return s.config.Seed
}

// Run plays every game and returns the aggregated results. Each game gets its
// own engine, so results depend only on the seed, never on scheduling.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Games <= 0 {
		return nil, fmt.Errorf("invalid games count: %d", s.config.Games)
	}

	results := make([]statistics.GameResult, s.config.Games)
	var (
		mu   sync.Mutex
		done int
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	start := time.Now()
	for i := range s.config.Games {
		if ctx.Err() != nil {
			break
		}
		seed := s.config.Seed + int64(i)

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			result, err := s.playGame(seed)
			if err != nil {
				return err
			}
			results[i] = result

			mu.Lock()
			done++
			if done%1000 == 0 {
				s.logger.Info("Progress", "games", done, "of", s.config.Games)
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("simulation aborted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("simulation aborted: %w", err)
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.logger.Info("Simulation finished", "games", stats.Games, "wins", stats.Wins, "duration", time.Since(start))
	return stats, nil
}

// playGame plays a single deal to completion on a fresh engine
func (s *Simulator) playGame(seed int64) (statistics.GameResult, error) {
	e := game.New(
		game.WithSeed(seed),
		game.WithLogger(s.logger),
	)
	e.Start()

	res := autoplay.New(e,
		autoplay.WithMaxSteps(s.config.MaxSteps),
		autoplay.WithLogger(s.logger),
	).Play()

	if err := e.Verify(); err != nil {
		return statistics.GameResult{}, fmt.Errorf("seed %d: %w", seed, err)
	}

	placed := 0
	for _, f := range e.Foundations() {
		placed += f.Len()
	}

	return statistics.GameResult{
		Seed:    seed,
		Won:     res.Won,
		Score:   e.Score(),
		Moves:   e.Moves(),
		Placed:  placed,
		Elapsed: e.Elapsed(),
	}, nil
}

// RunSimulation is a convenience function that creates and runs a simulator
func RunSimulation(ctx context.Context, games int, seed int64, workers int, logger *log.Logger) (*statistics.Statistics, error) {
	return New(Config{
		Games:   games,
		Seed:    seed,
		Workers: workers,
		Logger:  logger,
	}).Run(ctx)
}

// PrintSummary writes a summary of simulation results to w
func PrintSummary(w io.Writer, stats *statistics.Statistics, seed int64) {
	winLow, winHigh := stats.WinRateCI95()
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== RESULTS (base seed %d) ===\n", seed)
	fmt.Fprintf(w, "Games played: %d\n", stats.Games)
	fmt.Fprintf(w, "Games won: %d (%.1f%%, 95%% CI [%.1f%%, %.1f%%])\n",
		stats.Wins, stats.WinRate()*100, winLow*100, winHigh*100)

	fmt.Fprintf(w, "\n=== SCORE ===\n")
	fmt.Fprintf(w, "Mean: %.1f\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.1f\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.1f\n", stats.StdDev())
	fmt.Fprintf(w, "95%% CI: [%.1f, %.1f]\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.0f, P25=%.0f, P75=%.0f, P95=%.0f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))
	fmt.Fprintf(w, "Best: %d (seed %d)\n", stats.BestScore, stats.BestSeed)

	fmt.Fprintf(w, "\n=== PLAY ===\n")
	fmt.Fprintf(w, "Moves per game: %.1f\n", stats.MeanMoves())
	if stats.Wins > 0 {
		fmt.Fprintf(w, "Moves per win: %.1f\n", stats.MeanWinMoves())
	}
	fmt.Fprintf(w, "Cards on foundations: %.1f / 52\n", stats.MeanPlaced())
}
