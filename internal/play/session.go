// Package play runs a single gameplay session: it samples the transport,
// routes presses into the judge and folds judgements into the score.
//
// Nothing here blocks or starts goroutines. The caller polls Tick at
// whatever rate it renders at and forwards presses as they arrive.
package play

import (
	"time"

	"git.lost.host/meutraa/fnf/internal/game"
	"git.lost.host/meutraa/fnf/internal/judge"
	"git.lost.host/meutraa/fnf/internal/score"
	"git.lost.host/meutraa/fnf/internal/transport"
)

// DefaultGrace is how long the session runs after the last note.
const DefaultGrace = 2 * time.Second

type Config struct {
	Judge judge.Config
	Grace time.Duration
	// NoFail keeps the session running when life runs out
	NoFail bool
}

func DefaultConfig() Config {
	return Config{Judge: judge.DefaultConfig(), Grace: DefaultGrace}
}

type End uint8

const (
	Running End = iota
	Finished    // Transport passed the last note plus the grace period
	Failed      // Life ran out
)

func (e End) String() string {
	switch e {
	case Finished:
		return "finished"
	case Failed:
		return "failed"
	}
	return "running"
}

type Session struct {
	config    Config
	source    *game.Chart
	transport transport.Transport

	engine *judge.Engine
	score  *score.State
	end    End
	endAt  time.Duration // The transport time the session ended at
	last   time.Duration // Latest time seen, judgement times never go back
	inputs []game.Input
	paused bool
}

func New(chart *game.Chart, t transport.Transport, config Config) *Session {
	return &Session{
		config:    config,
		source:    chart,
		transport: t,
		engine:    judge.New(chart, config.Judge),
		score:     score.NewState(),
	}
}

// Start rewinds and plays the transport.
func (s *Session) Start() {
	s.transport.Stop()
	s.transport.Start()
}

// Retry throws the run away and starts again from the top.
func (s *Session) Retry() {
	s.engine.Reset()
	s.score = score.NewState()
	s.end = Running
	s.endAt = 0
	s.last = 0
	s.inputs = nil
	s.paused = false
	s.Start()
}

// TogglePause pauses or resumes, presses are ignored while paused.
func (s *Session) TogglePause() bool {
	if s.end != Running {
		return s.paused
	}
	s.paused = !s.paused
	if s.paused {
		s.transport.Pause()
	} else {
		s.transport.Start()
	}
	return s.paused
}

func (s *Session) Paused() bool {
	return s.paused
}

// EndTime is when a session that never fails finishes.
func (s *Session) EndTime() time.Duration {
	return s.source.LastTime() + s.config.Grace
}

func (s *Session) now(t time.Duration) time.Duration {
	if t > s.last {
		s.last = t
	}
	return s.last
}

// Advance sweeps at t and then checks the end conditions. Once the session
// has ended nothing more is judged.
func (s *Session) Advance(t time.Duration) []game.Judgement {
	if s.end != Running {
		return nil
	}
	t = s.now(t)
	var missed []game.Judgement
	s.engine.SweepFunc(t, func(j game.Judgement) bool {
		missed = append(missed, j)
		s.apply(j)
		return s.end == Running
	})
	if s.end == Running && t > s.EndTime() {
		s.finish(Finished, t)
	}
	return missed
}

// Tick is Advance at the transport's current time.
func (s *Session) Tick() []game.Judgement {
	if s.paused {
		return nil
	}
	return s.Advance(s.transport.Elapsed())
}

// Press judges a press of d at song time t. Notes that are already out of
// reach at t are swept first, so a note is never both missed and hit in
// the same tick. The sweep judgements come before the press in the result.
func (s *Session) Press(d game.Direction, t time.Duration) []game.Judgement {
	if s.end != Running || s.paused {
		return nil
	}
	judgements := s.Advance(t)
	if s.end != Running {
		return judgements
	}
	t = s.now(t)
	s.inputs = append(s.inputs, game.Input{Direction: d, Time: t})
	j := s.engine.Hit(d, t)
	s.apply(j)
	return append(judgements, j)
}

func (s *Session) apply(j game.Judgement) {
	s.score.Apply(j)
	if s.score.Dead() && !s.config.NoFail {
		s.finish(Failed, j.Time)
	}
}

func (s *Session) finish(end End, t time.Duration) {
	s.end = end
	s.endAt = t
	s.transport.Pause()
}

func (s *Session) Over() bool {
	return s.end != Running
}

func (s *Session) End() End {
	return s.end
}

// Engine exposes note states for rendering.
func (s *Session) Engine() *judge.Engine {
	return s.engine
}

// Score is the live score, read only.
func (s *Session) Score() score.State {
	return *s.score
}

// Inputs is the press log for saving and replay.
func (s *Session) Inputs() []game.Input {
	out := make([]game.Input, len(s.inputs))
	copy(out, s.inputs)
	return out
}

func (s *Session) Summary() score.Summary {
	played := s.endAt
	if s.end == Running {
		played = s.last
	}
	return s.score.Summary(len(s.source.Notes), played)
}
