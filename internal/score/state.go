package score

import (
	"math"
	"time"

	"git.lost.host/meutraa/fnf/internal/game"
)

const (
	MaxLife  = 100.0
	LifeGain = 5.0
	LifeLoss = 15.0

	HitScore   = 100
	ComboBonus = 10
)

// State is derived only from the judgements passed to Apply.
type State struct {
	Score    int
	Combo    int
	MaxCombo int
	Life     float64
	Hits     int
	Misses   int // Notes missed
	Phantoms int // Presses that hit nothing, they cost combo and life like a miss

	// Running hit offset statistics, Welford's method
	mean, m2 float64
}

func NewState() *State {
	return &State{Life: MaxLife}
}

func (s *State) Apply(j game.Judgement) {
	switch j.Outcome {
	case game.Hit:
		s.Score += HitScore + s.Combo*ComboBonus
		s.Combo++
		s.MaxCombo = max(s.MaxCombo, s.Combo)
		s.Life = math.Min(MaxLife, s.Life+LifeGain)
		s.Hits++

		x := float64(j.Offset)
		delta := x - s.mean
		s.mean += delta / float64(s.Hits)
		s.m2 += delta * (x - s.mean)
	case game.Miss:
		s.Combo = 0
		s.Life = math.Max(0, s.Life-LifeLoss)
		if j.Phantom() {
			s.Phantoms++
		} else {
			s.Misses++
		}
	}
}

func (s *State) Dead() bool {
	return s.Life <= 0
}

// Accuracy is hits over judged notes, 0 before the first one.
func (s *State) Accuracy() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Mean hit offset, positive is early.
func (s *State) Mean() time.Duration {
	return time.Duration(math.Round(s.mean))
}

// Stdev is the sample standard deviation of hit offsets.
func (s *State) Stdev() time.Duration {
	if s.Hits < 2 {
		return 0
	}
	return time.Duration(math.Round(math.Sqrt(s.m2 / float64(s.Hits-1))))
}

func (s *State) Summary(total int, played time.Duration) Summary {
	return Summary{
		Score:    s.Score,
		MaxCombo: s.MaxCombo,
		Hits:     s.Hits,
		Misses:   s.Misses,
		Phantoms: s.Phantoms,
		Total:    total,
		Accuracy: s.Accuracy(),
		Mean:     s.Mean(),
		Stdev:    s.Stdev(),
		Played:   played,
		Failed:   s.Dead(),
	}
}

// Summary is the end of run result screen.
type Summary struct {
	Score    int
	MaxCombo int
	Hits     int
	Misses   int
	Phantoms int
	Total    int // Notes in the chart
	Accuracy float64
	Mean     time.Duration
	Stdev    time.Duration
	Played   time.Duration
	Failed   bool // Life ran out
}
