package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChart(t *testing.T) *Chart {
	c := NewChart()
	require.NoError(t, c.AddNote(2*time.Second, Up))
	require.NoError(t, c.AddNote(0, Left))
	require.NoError(t, c.AddNote(time.Second, Right))
	return c
}

func TestAddNoteKeepsAuthoringOrder(t *testing.T) {
	c := newTestChart(t)
	require.Len(t, c.Notes, 3)
	assert.Equal(t, Up, c.Notes[0].Direction)
	assert.Equal(t, Left, c.Notes[1].Direction)
	assert.Equal(t, 2*time.Second, c.LastTime())
}

func TestAddNoteRejectsInvalid(t *testing.T) {
	c := NewChart()
	assert.ErrorIs(t, c.AddNote(-time.Millisecond, Left), ErrInvalidNote)
	assert.ErrorIs(t, c.AddNote(0, Direction(9)), ErrInvalidNote)
	assert.Empty(t, c.Notes)
}

func TestRemoveNote(t *testing.T) {
	c := newTestChart(t)
	require.NoError(t, c.RemoveNote(1))
	require.Len(t, c.Notes, 2)
	assert.Equal(t, Right, c.Notes[1].Direction)

	for _, idx := range []int{-1, 2, 100} {
		err := c.RemoveNote(idx)
		assert.ErrorIs(t, err, ErrOutOfRange, idx)
	}
	assert.Len(t, c.Notes, 2)
}

func TestReplaceNote(t *testing.T) {
	c := newTestChart(t)
	require.NoError(t, c.ReplaceNote(0, 1500*time.Millisecond, Down))
	assert.Equal(t, Note{Time: 1500 * time.Millisecond, Direction: Down}, c.Notes[0])

	assert.ErrorIs(t, c.ReplaceNote(0, -time.Second, Down), ErrInvalidNote)
	assert.ErrorIs(t, c.ReplaceNote(0, time.Second, Direction(4)), ErrInvalidNote)
	assert.ErrorIs(t, c.ReplaceNote(3, time.Second, Down), ErrOutOfRange)
	assert.Equal(t, Note{Time: 1500 * time.Millisecond, Direction: Down}, c.Notes[0])
}

var reorderTests = map[string]struct {
	order []int
	ok    bool
}{
	"identity":  {[]int{0, 1, 2}, true},
	"rotate":    {[]int{2, 0, 1}, true},
	"short":     {[]int{0, 1}, false},
	"long":      {[]int{0, 1, 2, 3}, false},
	"duplicate": {[]int{0, 0, 1}, false},
	"negative":  {[]int{-1, 0, 1}, false},
	"outside":   {[]int{0, 1, 3}, false},
}

func TestReorder(t *testing.T) {
	for name, test := range reorderTests {
		c := newTestChart(t)
		before := c.Clone()
		err := c.Reorder(test.order)
		if !test.ok {
			assert.ErrorIs(t, err, ErrInvalidPermutation, name)
			assert.True(t, IsValidation(err), name)
			assert.True(t, before.Equal(c), name)
			continue
		}
		require.NoError(t, err, name)
		for i, idx := range test.order {
			assert.Equal(t, before.Notes[idx], c.Notes[i], name)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	c := newTestChart(t)
	clone := c.Clone()
	clone.Notes[0].Time = 9 * time.Second
	clone.Song = "other.ogg"
	assert.Equal(t, 2*time.Second, c.Notes[0].Time)
	assert.Equal(t, "", c.Song)
}

func TestPlayCopyResetsJudged(t *testing.T) {
	c := newTestChart(t)
	c.Notes[1].Judged = true
	p := c.PlayCopy()
	for _, n := range p.Notes {
		assert.False(t, n.Judged)
	}
	assert.True(t, c.Notes[1].Judged)
	assert.True(t, c.Equal(p))
}

func TestParseDirection(t *testing.T) {
	for i, name := range []string{"left", "down", "up", "right"} {
		d, err := ParseDirection(name)
		require.NoError(t, err)
		assert.Equal(t, Directions[i], d)
	}
	for _, name := range []string{"sideways", "DOWN", " up ", "Right", ""} {
		_, err := ParseDirection(name)
		assert.ErrorIs(t, err, ErrInvalidNote, name)
	}
}

func TestScroll(t *testing.T) {
	s := Scroll{Speed: 300, Target: 400}
	n := Note{Time: time.Second}

	assert.Equal(t, 400, s.Y(n, time.Second))
	assert.Equal(t, 100, s.Y(n, 0))
	assert.Equal(t, 450, s.Y(n, time.Second+time.Second/6))
	assert.True(t, s.Visible(n, 0, 600))
	assert.False(t, s.Visible(n, -2*time.Second, 600))
	assert.Equal(t, 166666667*time.Nanosecond, s.Slack(50))
	assert.Equal(t, time.Duration(0), Scroll{}.Slack(50))
}
