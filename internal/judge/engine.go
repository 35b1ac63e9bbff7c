// Package judge decides, for a chart being played, which notes were hit
// and which were missed.
//
// Every note starts pending and is judged exactly once, either by a key
// press within the hit window or by the sweep once it has scrolled too far
// past the target line. Notes may be in any order.
package judge

import (
	"time"

	"git.lost.host/meutraa/fnf/internal/game"
)

const (
	DefaultHitWindow = 200 * time.Millisecond
	// DefaultSlackPixels past the target line at DefaultNoteSpeed counts as a miss
	DefaultSlackPixels = 50.0
	DefaultNoteSpeed   = 300.0
)

type State uint8

const (
	Pending State = iota
	Hit
	Missed
)

func (s State) String() string {
	switch s {
	case Hit:
		return "hit"
	case Missed:
		return "missed"
	}
	return "pending"
}

type Config struct {
	// A press counts when |note.Time - t| < HitWindow
	HitWindow time.Duration
	// A note is missed once t - note.Time > MissAfter
	MissAfter time.Duration
}

func DefaultConfig() Config {
	return Config{
		HitWindow: DefaultHitWindow,
		MissAfter: game.Scroll{Speed: DefaultNoteSpeed}.Slack(DefaultSlackPixels),
	}
}

type Engine struct {
	config Config
	chart  *game.Chart
	states []State
	judged int
}

// New judges a play copy of chart, the chart itself is never touched.
func New(chart *game.Chart, config Config) *Engine {
	c := chart.PlayCopy()
	return &Engine{
		config: config,
		chart:  c,
		states: make([]State, len(c.Notes)),
	}
}

func (e *Engine) Config() Config {
	return e.config
}

// Chart is the play copy, Judged is set on notes as they are judged.
func (e *Engine) Chart() *game.Chart {
	return e.chart
}

func (e *Engine) State(index int) State {
	return e.states[index]
}

func (e *Engine) Remaining() int {
	return len(e.states) - e.judged
}

func (e *Engine) Done() bool {
	return e.judged == len(e.states)
}

func (e *Engine) mark(index int, s State) {
	e.states[index] = s
	e.chart.Notes[index].Judged = true
	e.judged++
}

func abs(x time.Duration) time.Duration {
	if x < 0 {
		return -x
	}
	return x
}

// Closest finds the pending note of direction d nearest to t within the
// hit window. Ties go to the earlier index. Returns game.NoNote if there is
// none.
func (e *Engine) Closest(d game.Direction, t time.Duration) int {
	closest := game.NoNote
	best := e.config.HitWindow
	for i, note := range e.chart.Notes {
		if e.states[i] != Pending || note.Direction != d {
			continue
		}
		// The list is in authoring order so there is no early exit
		if dist := abs(note.Time - t); dist < best {
			best = dist
			closest = i
		}
	}
	return closest
}

// Hit judges a press of d at t. A press with nothing in reach is a miss
// that is not attached to any note.
func (e *Engine) Hit(d game.Direction, t time.Duration) game.Judgement {
	index := e.Closest(d, t)
	if index == game.NoNote {
		return game.Judgement{Outcome: game.Miss, Note: game.NoNote, Direction: d, Time: t}
	}
	e.mark(index, Hit)
	return game.Judgement{
		Outcome:   game.Hit,
		Note:      index,
		Direction: d,
		Time:      t,
		Offset:    e.chart.Notes[index].Time - t,
	}
}

// Sweep misses every pending note that can no longer be hit at t, in
// chart order.
func (e *Engine) Sweep(t time.Duration) []game.Judgement {
	var missed []game.Judgement
	e.SweepFunc(t, func(j game.Judgement) bool {
		missed = append(missed, j)
		return true
	})
	return missed
}

// SweepFunc is Sweep calling fn with each miss as it is made. Returning
// false stops the sweep, later notes stay pending.
func (e *Engine) SweepFunc(t time.Duration, fn func(game.Judgement) bool) {
	for i, note := range e.chart.Notes {
		if e.states[i] != Pending {
			continue
		}
		if t-note.Time <= e.config.MissAfter {
			continue
		}
		e.mark(i, Missed)
		j := game.Judgement{
			Outcome:   game.Miss,
			Note:      i,
			Direction: note.Direction,
			Time:      t,
			Offset:    note.Time - t,
		}
		if !fn(j) {
			return
		}
	}
}

// Reset returns every note to pending.
func (e *Engine) Reset() {
	for i := range e.states {
		e.states[i] = Pending
		e.chart.Notes[i].Judged = false
	}
	e.judged = 0
}
