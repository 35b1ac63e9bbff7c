// Package editor holds an editing session: the chart being authored, its
// undo history and the transport used to preview it against the song.
//
// Every successful edit is committed to the history. Failed edits change
// nothing and commit nothing.
package editor

import (
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"time"

	"git.lost.host/meutraa/fnf/internal/codec"
	"git.lost.host/meutraa/fnf/internal/game"
	"git.lost.host/meutraa/fnf/internal/history"
	"git.lost.host/meutraa/fnf/internal/transport"
)

// Resolution is the precision note times are stored at when entered.
const Resolution = 10 * time.Millisecond

var (
	ErrNoSong     = errors.New("choose a song first")
	ErrNotPlaying = errors.New("start playback to place notes")
)

// OpenFunc opens a transport for a song.
type OpenFunc func(song string) (transport.Transport, error)

type Editor struct {
	chart   *game.Chart
	history *history.Stack
	open    OpenFunc

	transport transport.Transport
	song      string // The resolved song path transport was opened for
	path      string
}

func New(open OpenFunc, capacity int) *Editor {
	e := &Editor{
		chart:   game.NewChart(),
		history: history.New(capacity),
		open:    open,
	}
	e.history.Reset(e.chart)
	return e
}

// Round snaps t to Resolution.
func Round(t time.Duration) time.Duration {
	return time.Duration(math.Round(float64(t)/float64(Resolution))) * Resolution
}

// Chart is the live chart, do not modify it.
func (e *Editor) Chart() *game.Chart {
	return e.chart
}

func (e *Editor) History() *history.Stack {
	return e.history
}

// Path is where the chart was last loaded from or saved to.
func (e *Editor) Path() string {
	return e.path
}

func (e *Editor) edit(fn func(c *game.Chart) error) error {
	next := e.chart.Clone()
	if err := fn(next); nil != err {
		return err
	}
	e.chart = next
	e.history.Commit(e.chart)
	return nil
}

// NewChart starts over with an empty chart and a fresh history.
func (e *Editor) NewChart() {
	e.Stop()
	e.chart = game.NewChart()
	e.path = ""
	e.history.Reset(e.chart)
}

func (e *Editor) SetSong(song string) error {
	return e.edit(func(c *game.Chart) error {
		c.Song = song
		return nil
	})
}

func (e *Editor) SetBPM(bpm float64) error {
	if bpm <= 0 || math.IsNaN(bpm) || math.IsInf(bpm, 0) {
		return fmt.Errorf("%w: bpm %v", game.ErrInvalidBPM, bpm)
	}
	return e.edit(func(c *game.Chart) error {
		c.BPM = bpm
		return nil
	})
}

func (e *Editor) Add(t time.Duration, d game.Direction) error {
	return e.edit(func(c *game.Chart) error {
		return c.AddNote(Round(t), d)
	})
}

// Mark places a note at the current playback position.
func (e *Editor) Mark(d game.Direction) (time.Duration, error) {
	if nil == e.transport || !e.transport.Playing() {
		return 0, ErrNotPlaying
	}
	t := Round(e.transport.Elapsed())
	return t, e.Add(t, d)
}

func (e *Editor) Remove(index int) error {
	return e.edit(func(c *game.Chart) error {
		return c.RemoveNote(index)
	})
}

func (e *Editor) Replace(index int, t time.Duration, d game.Direction) error {
	return e.edit(func(c *game.Chart) error {
		return c.ReplaceNote(index, Round(t), d)
	})
}

func (e *Editor) Reorder(order []int) error {
	return e.edit(func(c *game.Chart) error {
		return c.Reorder(order)
	})
}

// Undo and Redo return history.ErrNothingToUndo and ErrNothingToRedo at
// either end, the chart is left as it is.
func (e *Editor) Undo() error {
	c, err := e.history.Undo()
	if nil != err {
		return err
	}
	e.chart = c
	return nil
}

func (e *Editor) Redo() error {
	c, err := e.history.Redo()
	if nil != err {
		return err
	}
	e.chart = c
	return nil
}

// Load replaces the chart and starts a new history from it.
func (e *Editor) Load(path string) error {
	c, err := codec.Load(path)
	if nil != err {
		return err
	}
	e.Stop()
	e.chart = c
	e.path = path
	e.history.Reset(e.chart)
	return nil
}

func (e *Editor) Save(path string) error {
	if path == "" {
		path = e.path
	}
	if path == "" {
		return errors.New("no path to save to")
	}
	if err := codec.Save(path, e.chart); nil != err {
		return err
	}
	e.path = path
	return nil
}

// SongPath is the chart's song, relative songs are resolved against the
// directory of the chart file once it has one.
func (e *Editor) SongPath() string {
	song := e.chart.Song
	if song == "" || e.path == "" || filepath.IsAbs(song) {
		return song
	}
	return filepath.Join(filepath.Dir(e.path), song)
}

// Play starts the song from the beginning, opening it if it changed.
func (e *Editor) Play() error {
	if e.chart.Song == "" {
		return ErrNoSong
	}
	song := e.SongPath()
	if nil == e.transport || e.song != song {
		if err := e.Close(); nil != err {
			return err
		}
		t, err := e.open(song)
		if nil != err {
			return fmt.Errorf("unable to open %v: %w", song, err)
		}
		e.transport = t
		e.song = song
	}
	e.transport.Stop()
	e.transport.Start()
	return nil
}

func (e *Editor) Pause() {
	if nil != e.transport {
		e.transport.Pause()
	}
}

// Resume continues after a Pause.
func (e *Editor) Resume() {
	if nil != e.transport {
		e.transport.Start()
	}
}

func (e *Editor) Stop() {
	if nil != e.transport {
		e.transport.Stop()
	}
}

// Close stops playback and releases the transport if it holds resources.
func (e *Editor) Close() error {
	if nil == e.transport {
		return nil
	}
	e.transport.Stop()
	t, song := e.transport, e.song
	e.transport = nil
	e.song = ""
	if c, ok := t.(io.Closer); ok {
		if err := c.Close(); nil != err {
			return fmt.Errorf("unable to close %v: %w", song, err)
		}
	}
	return nil
}

func (e *Editor) Seek(t time.Duration) error {
	if nil == e.transport {
		return ErrNotPlaying
	}
	return e.transport.Seek(t)
}

// Elapsed is the playback position, 0 before anything was played.
func (e *Editor) Elapsed() time.Duration {
	if nil == e.transport {
		return 0
	}
	return e.transport.Elapsed()
}

func (e *Editor) Playing() bool {
	return nil != e.transport && e.transport.Playing()
}
