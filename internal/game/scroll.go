package game

import (
	"math"
	"time"
)

// Scroll maps song time onto a lane. Speed is in pixels (or rows) per
// second, Target is the coordinate of the target line.
type Scroll struct {
	Speed  float64
	Target int
}

// Offset is how far a note is ahead of the target line. Negative once it
// has passed.
func (s Scroll) Offset(n Note, now time.Duration) float64 {
	return (n.Time - now).Seconds() * s.Speed
}

// Y is the screen coordinate for notes falling down onto Target.
func (s Scroll) Y(n Note, now time.Duration) int {
	return s.Target - int(math.Round(s.Offset(n, now)))
}

func (s Scroll) Visible(n Note, now time.Duration, height int) bool {
	y := s.Y(n, now)
	return y >= 0 && y < height
}

// Slack converts a distance past the target line into time.
func (s Scroll) Slack(distance float64) time.Duration {
	if s.Speed <= 0 {
		return 0
	}
	return time.Duration(math.Round(distance / s.Speed * float64(time.Second)))
}
