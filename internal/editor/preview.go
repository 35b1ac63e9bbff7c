package editor

import (
	"math"

	"git.lost.host/meutraa/fnf/internal/game"
)

// PreviewSpeed is how fast notes scroll across the preview, pixels per
// second.
const PreviewSpeed = 100.0

type Marker struct {
	Note      int
	Direction game.Direction
	X         int
}

// Preview lays the notes out on a strip width wide. Notes travel left to
// right and reach the right edge at their time, so the strip shows the
// next width/speed seconds. Only notes on the strip are returned, in chart
// order. Nothing is shown while stopped.
func (e *Editor) Preview(width int, speed float64) []Marker {
	if !e.Playing() && e.Elapsed() == 0 {
		return nil
	}
	now := e.Elapsed()
	scroll := game.Scroll{Speed: speed}
	markers := []Marker{}
	for i, n := range e.chart.Notes {
		x := float64(width) - scroll.Offset(n, now)
		if x < 0 || x > float64(width) {
			continue
		}
		markers = append(markers, Marker{Note: i, Direction: n.Direction, X: int(math.Round(x))})
	}
	return markers
}
