// Package statistics summarises batches of auto-played games.
package statistics

import (
	"fmt"
	"math"
	"slices"
	"time"
)

// GameResult represents the outcome of a single game
type GameResult struct {
	Seed    int64 // seed the deal was shuffled with (for replay)
	Won     bool
	Score   int
	Moves   int
	Placed  int // cards on the foundations at the end
	Elapsed time.Duration
}

// Statistics accumulates game results. Score moments are tracked for the
// confidence interval; all scores are kept for the median and percentiles.
type Statistics struct {
	Games     int
	Wins      int
	SumScore  float64
	SumScore2 float64 // sum of squares for variance
	Scores    []float64

	SumMoves  int
	WinMoves  int // moves summed over won games only
	SumPlaced int
	BestScore int
	BestSeed  int64
	TotalTime time.Duration
}

// Add incorporates a game result
func (s *Statistics) Add(r GameResult) {
	score := float64(r.Score)
	if s.Games == 0 || r.Score > s.BestScore {
		s.BestScore = r.Score
		s.BestSeed = r.Seed
	}

	s.Games++
	s.SumScore += score
	s.SumScore2 += score * score
	s.Scores = append(s.Scores, score)
	s.SumMoves += r.Moves
	s.SumPlaced += r.Placed
	s.TotalTime += r.Elapsed

	if r.Won {
		s.Wins++
		s.WinMoves += r.Moves
	}
}

// Merge folds other into s
func (s *Statistics) Merge(other *Statistics) {
	if other.Games == 0 {
		return
	}
	if s.Games == 0 || other.BestScore > s.BestScore {
		s.BestScore = other.BestScore
		s.BestSeed = other.BestSeed
	}
	s.Games += other.Games
	s.Wins += other.Wins
	s.SumScore += other.SumScore
	s.SumScore2 += other.SumScore2
	s.Scores = append(s.Scores, other.Scores...)
	s.SumMoves += other.SumMoves
	s.WinMoves += other.WinMoves
	s.SumPlaced += other.SumPlaced
	s.TotalTime += other.TotalTime
}

// WinRate returns the fraction of games won
func (s *Statistics) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// WinRateCI95 returns the Wilson score interval for the win rate
func (s *Statistics) WinRateCI95() (float64, float64) {
	if s.Games == 0 {
		return 0, 0
	}
	const z = 1.96
	n := float64(s.Games)
	p := s.WinRate()
	denom := 1 + z*z/n
	centre := (p + z*z/(2*n)) / denom
	margin := z * math.Sqrt(p*(1-p)/n+z*z/(4*n*n)) / denom
	return math.Max(0, centre-margin), math.Min(1, centre+margin)
}

// Mean returns the mean final score
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumScore / float64(s.Games)
}

// Variance returns the sample variance of the final score
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumScore2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of the final score
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(math.Max(0, s.Variance()))
}

// StdError returns the standard error of the mean score
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean score
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// MeanMoves returns the average number of moves per game
func (s *Statistics) MeanMoves() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.SumMoves) / float64(s.Games)
}

// MeanWinMoves returns the average number of moves in won games
func (s *Statistics) MeanWinMoves() float64 {
	if s.Wins == 0 {
		return 0
	}
	return float64(s.WinMoves) / float64(s.Wins)
}

// MeanPlaced returns the average number of cards reaching the foundations
func (s *Statistics) MeanPlaced() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.SumPlaced) / float64(s.Games)
}

// Median returns the median final score
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the score at percentile p (0.0 to 1.0), interpolating
// between neighbouring results.
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Scores) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Scores)
	slices.Sort(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks the accumulated counters agree with each other
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}
	if len(s.Scores) != s.Games {
		return fmt.Errorf("scores length (%d) does not match games count (%d)", len(s.Scores), s.Games)
	}
	if s.Wins > s.Games {
		return fmt.Errorf("wins (%d) exceed games (%d)", s.Wins, s.Games)
	}
	if s.WinMoves > s.SumMoves {
		return fmt.Errorf("moves in won games (%d) exceed all moves (%d)", s.WinMoves, s.SumMoves)
	}
	if s.SumPlaced > s.Games*52 {
		return fmt.Errorf("placed cards (%d) exceed %d games of 52", s.SumPlaced, s.Games)
	}
	return nil
}
