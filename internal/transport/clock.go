package transport

import (
	"fmt"
	"time"
)

// Clock is a Transport driven by the wall clock. It stands in for audio
// in the editor preview and in tests, where now is replaced.
type Clock struct {
	now func() time.Time

	playing   bool
	startedAt time.Time
	offset    time.Duration // elapsed at the last start/pause/seek
	last      time.Duration
}

func NewClock(now func() time.Time) *Clock {
	if nil == now {
		now = time.Now
	}
	return &Clock{now: now}
}

func (c *Clock) Elapsed() time.Duration {
	if !c.playing {
		return c.offset
	}
	d := c.offset + c.now().Sub(c.startedAt)
	if d < c.last {
		return c.last
	}
	c.last = d
	return d
}

func (c *Clock) Playing() bool {
	return c.playing
}

func (c *Clock) Start() {
	if c.playing {
		return
	}
	c.startedAt = c.now()
	c.last = c.offset
	c.playing = true
}

func (c *Clock) Pause() {
	if !c.playing {
		return
	}
	c.offset = c.Elapsed()
	c.playing = false
}

func (c *Clock) Stop() {
	c.playing = false
	c.offset = 0
	c.last = 0
}

func (c *Clock) Seek(t time.Duration) error {
	if t < 0 {
		return fmt.Errorf("unable to seek to %v: negative position", t)
	}
	c.offset = t
	c.last = t
	c.startedAt = c.now()
	return nil
}
