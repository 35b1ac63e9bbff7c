package editor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"git.lost.host/meutraa/fnf/internal/codec"
	"git.lost.host/meutraa/fnf/internal/game"
	"git.lost.host/meutraa/fnf/internal/history"
	"git.lost.host/meutraa/fnf/internal/testdata"
	"git.lost.host/meutraa/fnf/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNow struct {
	t time.Time
}

func (f *fakeNow) now() time.Time { return f.t }

func (f *fakeNow) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestEditor() (*Editor, *fakeNow, *[]string) {
	f := &fakeNow{t: time.Unix(0, 0)}
	opened := []string{}
	e := New(func(song string) (transport.Transport, error) {
		opened = append(opened, song)
		if song == "broken.ogg" {
			return nil, errors.New("no such file")
		}
		return transport.NewClock(f.now), nil
	}, history.DefaultCapacity)
	return e, f, &opened
}

func TestNewEditor(t *testing.T) {
	e, _, _ := newTestEditor()
	assert.Equal(t, game.DefaultBPM, e.Chart().BPM)
	assert.Empty(t, e.Chart().Notes)
	assert.Equal(t, 1, e.History().Len())
	assert.ErrorIs(t, e.Undo(), history.ErrNothingToUndo)
}

func TestEditsAreCommitted(t *testing.T) {
	e, _, _ := newTestEditor()
	require.NoError(t, e.Add(1234*time.Millisecond, game.Left))
	require.NoError(t, e.Add(500*time.Millisecond, game.Up))
	require.NoError(t, e.Replace(0, 2*time.Second, game.Right))
	require.NoError(t, e.Reorder([]int{1, 0}))
	require.NoError(t, e.Remove(1))
	assert.Equal(t, 6, e.History().Len())
	assert.Equal(t, []game.Note{{Time: 500 * time.Millisecond, Direction: game.Up}}, e.Chart().Notes)

	require.NoError(t, e.Undo())
	require.NoError(t, e.Undo())
	assert.Equal(t, []game.Note{
		{Time: 2 * time.Second, Direction: game.Right},
		{Time: 500 * time.Millisecond, Direction: game.Up},
	}, e.Chart().Notes)

	require.NoError(t, e.Redo())
	require.NoError(t, e.Redo())
	assert.ErrorIs(t, e.Redo(), history.ErrNothingToRedo)
	assert.Len(t, e.Chart().Notes, 1)
}

func TestAddRoundsTime(t *testing.T) {
	e, _, _ := newTestEditor()
	require.NoError(t, e.Add(1234*time.Millisecond, game.Left))
	assert.Equal(t, 1230*time.Millisecond, e.Chart().Notes[0].Time)
	require.NoError(t, e.Replace(0, 1236*time.Millisecond, game.Left))
	assert.Equal(t, 1240*time.Millisecond, e.Chart().Notes[0].Time)
}

func TestFailedEditsChangeNothing(t *testing.T) {
	e, _, _ := newTestEditor()
	require.NoError(t, e.Add(time.Second, game.Down))
	before := e.Chart().Clone()

	assert.ErrorIs(t, e.Remove(3), game.ErrOutOfRange)
	assert.ErrorIs(t, e.Replace(0, -time.Second, game.Down), game.ErrInvalidNote)
	assert.ErrorIs(t, e.Replace(0, time.Second, game.Direction(7)), game.ErrInvalidNote)
	assert.ErrorIs(t, e.Reorder([]int{0, 0}), game.ErrInvalidPermutation)
	assert.ErrorIs(t, e.SetBPM(0), game.ErrInvalidBPM)
	assert.True(t, game.IsValidation(e.SetBPM(-1)))

	assert.True(t, before.Equal(e.Chart()))
	assert.Equal(t, 2, e.History().Len())
}

func TestMarkNeedsPlayback(t *testing.T) {
	e, f, opened := newTestEditor()
	_, err := e.Mark(game.Left)
	assert.ErrorIs(t, err, ErrNotPlaying)
	assert.ErrorIs(t, e.Play(), ErrNoSong)

	require.NoError(t, e.SetSong("song.ogg"))
	require.NoError(t, e.Play())
	f.advance(2468 * time.Millisecond)
	at, err := e.Mark(game.Up)
	require.NoError(t, err)
	assert.Equal(t, 2470*time.Millisecond, at)
	assert.Equal(t, at, e.Chart().Notes[0].Time)

	e.Pause()
	_, err = e.Mark(game.Up)
	assert.ErrorIs(t, err, ErrNotPlaying)

	e.Resume()
	require.NoError(t, e.Play(), "replay keeps the opened transport")
	assert.Equal(t, []string{"song.ogg"}, *opened)
	assert.Equal(t, time.Duration(0), e.Elapsed())

	require.NoError(t, e.SetSong("broken.ogg"))
	assert.Error(t, e.Play())
}

func TestPreview(t *testing.T) {
	e, f, _ := newTestEditor()
	require.NoError(t, e.SetSong("song.ogg"))
	require.NoError(t, e.Add(time.Second, game.Left))
	require.NoError(t, e.Add(3*time.Second, game.Right))
	require.NoError(t, e.Add(10*time.Second, game.Up))
	assert.Nil(t, e.Preview(400, PreviewSpeed))

	require.NoError(t, e.Play())
	f.advance(time.Second)
	markers := e.Preview(400, PreviewSpeed)
	assert.Equal(t, []Marker{
		{Note: 0, Direction: game.Left, X: 400},
		{Note: 1, Direction: game.Right, X: 200},
	}, markers)

	e.Stop()
	assert.Nil(t, e.Preview(400, PreviewSpeed))
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	chart, err := testdata.GetChart()
	require.NoError(t, err)
	src := filepath.Join(dir, "in.pyfnf")
	require.NoError(t, codec.Save(src, chart))

	e, _, _ := newTestEditor()
	require.NoError(t, e.Add(time.Second, game.Down))
	require.NoError(t, e.Load(src))
	assert.True(t, chart.Equal(e.Chart()))
	assert.Equal(t, 1, e.History().Len(), "load resets history")
	assert.Equal(t, src, e.Path())

	require.NoError(t, e.Remove(0))
	require.NoError(t, e.Save(""))
	saved, err := codec.Load(src)
	require.NoError(t, err)
	assert.Len(t, saved.Notes, len(chart.Notes)-1)

	assert.Error(t, e.Load(filepath.Join(dir, "missing.pyfnf")))
	assert.Len(t, e.Chart().Notes, len(chart.Notes)-1, "failed load keeps the chart")

	e.NewChart()
	assert.Error(t, e.Save(""))
	assert.Empty(t, e.Chart().Notes)
}

type closingClock struct {
	*transport.Clock
	closed bool
}

func (c *closingClock) Close() error {
	c.closed = true
	return nil
}

func TestSongFollowsChart(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "charts", "c.pyfnf")
	chart := game.NewChart()
	chart.Song = "song.ogg"
	require.NoError(t, os.MkdirAll(filepath.Dir(src), 0o755))
	require.NoError(t, codec.Save(src, chart))

	var clocks []*closingClock
	var opened []string
	e := New(func(song string) (transport.Transport, error) {
		opened = append(opened, song)
		c := &closingClock{Clock: transport.NewClock(nil)}
		clocks = append(clocks, c)
		return c, nil
	}, history.DefaultCapacity)

	require.NoError(t, e.Load(src))
	assert.Equal(t, filepath.Join(dir, "charts", "song.ogg"), e.SongPath())
	require.NoError(t, e.Play())

	require.NoError(t, e.SetSong("/music/other.ogg"))
	require.NoError(t, e.Play())
	assert.Equal(t, []string{filepath.Join(dir, "charts", "song.ogg"), "/music/other.ogg"}, opened)
	require.Len(t, clocks, 2)
	assert.True(t, clocks[0].closed, "old song is released")
	assert.False(t, clocks[1].closed)

	require.NoError(t, e.Close())
	assert.True(t, clocks[1].closed)
	assert.False(t, e.Playing())
}
