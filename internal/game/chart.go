package game

import (
	"fmt"
	"time"
)

// DefaultBPM is used for a new, empty chart.
const DefaultBPM = 120.0

// Chart is the unit of authoring and play. Notes are kept in authoring
// order, which is not necessarily time order.
type Chart struct {
	Song  string
	BPM   float64
	Notes []Note
}

func NewChart() *Chart {
	return &Chart{BPM: DefaultBPM, Notes: []Note{}}
}

// Clone returns a deep copy that shares nothing with c.
func (c *Chart) Clone() *Chart {
	notes := make([]Note, len(c.Notes))
	copy(notes, c.Notes)
	return &Chart{Song: c.Song, BPM: c.BPM, Notes: notes}
}

// PlayCopy returns a deep copy with every note unjudged.
func (c *Chart) PlayCopy() *Chart {
	p := c.Clone()
	for i := range p.Notes {
		p.Notes[i].Judged = false
	}
	return p
}

func (c *Chart) AddNote(t time.Duration, d Direction) error {
	if err := ValidateNote(t, d); nil != err {
		return err
	}
	c.Notes = append(c.Notes, Note{Time: t, Direction: d})
	return nil
}

func (c *Chart) checkIndex(index int) error {
	if index < 0 || index >= len(c.Notes) {
		return fmt.Errorf("%w: %d of %d", ErrOutOfRange, index, len(c.Notes))
	}
	return nil
}

func (c *Chart) RemoveNote(index int) error {
	if err := c.checkIndex(index); nil != err {
		return err
	}
	c.Notes = append(c.Notes[:index], c.Notes[index+1:]...)
	return nil
}

func (c *Chart) ReplaceNote(index int, t time.Duration, d Direction) error {
	if err := c.checkIndex(index); nil != err {
		return err
	}
	if err := ValidateNote(t, d); nil != err {
		return err
	}
	c.Notes[index] = Note{Time: t, Direction: d}
	return nil
}

// Reorder moves notes so that position i holds the note previously at
// order[i]. order must be a permutation of the current indices.
func (c *Chart) Reorder(order []int) error {
	if len(order) != len(c.Notes) {
		return fmt.Errorf("%w: got %d indices for %d notes", ErrInvalidPermutation, len(order), len(c.Notes))
	}
	seen := make([]bool, len(order))
	for _, idx := range order {
		if idx < 0 || idx >= len(order) || seen[idx] {
			return fmt.Errorf("%w: %v", ErrInvalidPermutation, order)
		}
		seen[idx] = true
	}
	notes := make([]Note, len(order))
	for i, idx := range order {
		notes[i] = c.Notes[idx]
	}
	c.Notes = notes
	return nil
}

// LastTime is the latest note time, or 0 for an empty chart.
func (c *Chart) LastTime() time.Duration {
	var last time.Duration
	for _, n := range c.Notes {
		if n.Time > last {
			last = n.Time
		}
	}
	return last
}

// Equal compares metadata and the note sequence, ignoring judged state.
func (c *Chart) Equal(o *Chart) bool {
	if c.Song != o.Song || c.BPM != o.BPM || len(c.Notes) != len(o.Notes) {
		return false
	}
	for i, n := range c.Notes {
		if n.Time != o.Notes[i].Time || n.Direction != o.Notes[i].Direction {
			return false
		}
	}
	return true
}
