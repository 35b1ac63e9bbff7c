// Package audio is the speaker backed transport. It lives apart from the
// transport package so only the commands link the speaker.
package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

var ErrUnsupported = errors.New("unsupported audio format")

func decode(path string, f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return mp3.Decode(f)
	case ".ogg":
		return vorbis.Decode(f)
	case ".wav":
		return wav.Decode(f)
	}
	return nil, beep.Format{}, fmt.Errorf("%w: %v", ErrUnsupported, filepath.Ext(path))
}

// Player plays a decoded song through the speaker. Elapsed comes from the
// stream position, so it is what the player actually hears.
type Player struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl

	queued bool
	done   chan struct{}
}

// Open decodes path and initialises the speaker at its sample rate.
// volume is in the effects.Volume base 2 scale, 0 is unchanged.
func Open(path string, volume float64) (*Player, error) {
	f, err := os.Open(path)
	if nil != err {
		return nil, fmt.Errorf("unable to open audio: %w", err)
	}
	streamer, format, err := decode(path, f)
	if nil != err {
		f.Close()
		return nil, fmt.Errorf("unable to decode %v: %w", path, err)
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/60)); nil != err {
		streamer.Close()
		return nil, fmt.Errorf("unable to initialise speaker: %w", err)
	}

	var s beep.Streamer = streamer
	if volume != 0 {
		s = &effects.Volume{Streamer: streamer, Base: 2, Volume: volume}
	}
	a := &Player{
		streamer: streamer,
		format:   format,
		ctrl:     &beep.Ctrl{Streamer: s, Paused: true},
		done:     make(chan struct{}),
	}
	return a, nil
}

// Done is closed when the song plays to the end.
func (a *Player) Done() <-chan struct{} {
	speaker.Lock()
	defer speaker.Unlock()
	return a.done
}

func (a *Player) Length() time.Duration {
	return a.format.SampleRate.D(a.streamer.Len())
}

func (a *Player) Elapsed() time.Duration {
	speaker.Lock()
	defer speaker.Unlock()
	return a.format.SampleRate.D(a.streamer.Position())
}

func (a *Player) Playing() bool {
	speaker.Lock()
	defer speaker.Unlock()
	return a.queued && !a.ctrl.Paused
}

func (a *Player) Start() {
	speaker.Lock()
	if a.queued {
		a.ctrl.Paused = false
		speaker.Unlock()
		return
	}
	// Replaying after the end needs a fresh sequence and done channel
	if a.streamer.Position() >= a.streamer.Len() {
		a.streamer.Seek(0)
	}
	select {
	case <-a.done:
		a.done = make(chan struct{})
	default:
	}
	done := a.done
	a.queued = true
	a.ctrl.Paused = false
	speaker.Unlock()

	// The callback runs on the speaker goroutine with the lock held
	speaker.Play(beep.Seq(a.ctrl, beep.Callback(func() {
		a.queued = false
		close(done)
	})))
}

func (a *Player) Pause() {
	speaker.Lock()
	defer speaker.Unlock()
	a.ctrl.Paused = true
}

func (a *Player) Stop() {
	speaker.Lock()
	defer speaker.Unlock()
	a.ctrl.Paused = true
	a.streamer.Seek(0)
}

func (a *Player) Seek(t time.Duration) error {
	if t < 0 {
		return fmt.Errorf("unable to seek to %v: negative position", t)
	}
	speaker.Lock()
	defer speaker.Unlock()
	n := min(a.format.SampleRate.N(t), a.streamer.Len())
	if err := a.streamer.Seek(n); nil != err {
		return fmt.Errorf("unable to seek to %v: %w", t, err)
	}
	return nil
}

func (a *Player) Close() error {
	speaker.Clear()
	return a.streamer.Close()
}
