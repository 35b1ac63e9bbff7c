package history

import (
	"testing"
	"time"

	"git.lost.host/meutraa/fnf/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chartWith(t *testing.T, n int) *game.Chart {
	c := game.NewChart()
	for i := 0; i < n; i++ {
		require.NoError(t, c.AddNote(time.Duration(i)*time.Second, game.Directions[i%game.NKeys]))
	}
	return c
}

func TestEmptyStack(t *testing.T) {
	s := New(0)
	assert.Nil(t, s.Current())
	_, err := s.Undo()
	assert.ErrorIs(t, err, ErrNothingToUndo)
	_, err = s.Redo()
	assert.ErrorIs(t, err, ErrNothingToRedo)
	assert.Equal(t, 0, s.Len())
}

func TestCapacityEviction(t *testing.T) {
	a, b, c := chartWith(t, 1), chartWith(t, 2), chartWith(t, 3)
	s := New(2)
	s.Commit(a)
	s.Commit(b)
	s.Commit(c)

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, s.Cursor())
	assert.True(t, c.Equal(s.Current()))

	prev, err := s.Undo()
	require.NoError(t, err)
	assert.True(t, b.Equal(prev))

	_, err = s.Undo()
	assert.ErrorIs(t, err, ErrNothingToUndo)
	assert.Equal(t, 0, s.Cursor())
	assert.True(t, b.Equal(s.Current()))
}

func TestUndoRedoIsNoop(t *testing.T) {
	s := New(DefaultCapacity)
	for i := 0; i < 5; i++ {
		s.Commit(chartWith(t, i))
	}
	for i := 0; i < 4; i++ {
		before := s.Current()
		_, err := s.Undo()
		require.NoError(t, err)
		redone, err := s.Redo()
		require.NoError(t, err)
		assert.True(t, before.Equal(redone))
		_, err = s.Undo()
		require.NoError(t, err)
	}

	_, err := s.Undo()
	assert.ErrorIs(t, err, ErrNothingToUndo)
	for i := 0; i < 4; i++ {
		_, err := s.Redo()
		require.NoError(t, err)
	}
	cursor := s.Cursor()
	_, err = s.Redo()
	assert.ErrorIs(t, err, ErrNothingToRedo)
	assert.Equal(t, cursor, s.Cursor())
}

func TestCommitDropsRedoBranch(t *testing.T) {
	s := New(DefaultCapacity)
	s.Commit(chartWith(t, 0))
	s.Commit(chartWith(t, 1))
	s.Commit(chartWith(t, 2))
	_, err := s.Undo()
	require.NoError(t, err)
	_, err = s.Undo()
	require.NoError(t, err)

	s.Commit(chartWith(t, 5))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, s.Cursor())
	assert.False(t, s.CanRedo())
	assert.Len(t, s.Current().Notes, 5)
}

func TestSnapshotsAreCopies(t *testing.T) {
	s := New(DefaultCapacity)
	c := chartWith(t, 1)
	s.Commit(c)
	require.NoError(t, c.AddNote(time.Second, game.Up))
	assert.Len(t, s.Current().Notes, 1, "commit copies")

	s.Commit(c)
	prev, err := s.Undo()
	require.NoError(t, err)
	prev.Notes[0].Time = time.Hour
	assert.Equal(t, time.Duration(0), s.Current().Notes[0].Time, "undo returns a copy")
}

func TestReset(t *testing.T) {
	s := New(DefaultCapacity)
	s.Commit(chartWith(t, 1))
	s.Commit(chartWith(t, 2))
	s.Reset(chartWith(t, 7))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0, s.Cursor())
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
	assert.Len(t, s.Current().Notes, 7)
}

func TestCursorInvariantUnderLongEdits(t *testing.T) {
	s := New(3)
	for i := 0; i < 20; i++ {
		s.Commit(chartWith(t, i))
		if i%4 == 0 {
			s.Undo()
		}
		assert.GreaterOrEqual(t, s.Cursor(), 0)
		assert.Less(t, s.Cursor(), s.Len())
		assert.LessOrEqual(t, s.Len(), 3)
	}
}
