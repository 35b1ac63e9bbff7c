// Package transport answers "what time is it in the song". The judging
// code only ever reads Elapsed; playback control belongs to whoever owns
// the audio.
package transport

import "time"

type Transport interface {
	// Elapsed never decreases while playing and is frozen while paused.
	Elapsed() time.Duration
	Playing() bool

	Start()
	Pause()
	// Stop pauses and rewinds to the beginning.
	Stop()
	Seek(t time.Duration) error
}
