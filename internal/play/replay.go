package play

import (
	"sort"
	"time"

	"git.lost.host/meutraa/fnf/internal/game"
	"git.lost.host/meutraa/fnf/internal/score"
	"git.lost.host/meutraa/fnf/internal/transport"
)

// Replay plays inputs back against a fresh copy of chart and runs the
// session to its end. The same inputs always give the same summary.
func Replay(chart *game.Chart, inputs []game.Input, config Config) score.Summary {
	ins := make([]game.Input, len(inputs))
	copy(ins, inputs)
	sort.SliceStable(ins, func(a, b int) bool {
		return ins[a].Time < ins[b].Time
	})

	s := New(chart, transport.NewClock(nil), config)
	for _, in := range ins {
		if s.Over() {
			break
		}
		s.Press(in.Direction, in.Time)
	}
	if !s.Over() {
		s.Advance(s.EndTime() + time.Millisecond)
	}
	return s.Summary()
}
