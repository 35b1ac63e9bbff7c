// Package history is the editor's undo/redo log. Every committed edit
// stores a full copy of the chart.
package history

import (
	"errors"

	"git.lost.host/meutraa/fnf/internal/game"
)

const DefaultCapacity = 50

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

type Stack struct {
	capacity  int
	snapshots []*game.Chart
	cursor    int
}

// New returns an empty stack holding at most capacity snapshots. A
// capacity below 1 uses DefaultCapacity.
func New(capacity int) *Stack {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Stack{capacity: capacity}
}

func (s *Stack) Len() int {
	return len(s.snapshots)
}

func (s *Stack) Cursor() int {
	return s.cursor
}

func (s *Stack) CanUndo() bool {
	return s.cursor > 0
}

func (s *Stack) CanRedo() bool {
	return s.cursor < len(s.snapshots)-1
}

// Commit records c after the cursor, dropping any redo branch.
func (s *Stack) Commit(c *game.Chart) {
	if len(s.snapshots) > 0 {
		s.snapshots = s.snapshots[:s.cursor+1]
	}
	s.snapshots = append(s.snapshots, c.Clone())
	s.cursor = len(s.snapshots) - 1

	if len(s.snapshots) > s.capacity {
		s.snapshots[0] = nil
		s.snapshots = s.snapshots[1:]
		s.cursor--
	}
}

// Reset forgets everything and seeds the stack with c.
func (s *Stack) Reset(c *game.Chart) {
	s.snapshots = []*game.Chart{c.Clone()}
	s.cursor = 0
}

// Current is a copy of the snapshot at the cursor, nil when empty.
func (s *Stack) Current() *game.Chart {
	if len(s.snapshots) == 0 {
		return nil
	}
	return s.snapshots[s.cursor].Clone()
}

// Undo steps back and returns a copy of that snapshot. The stored
// snapshots are never handed out.
func (s *Stack) Undo() (*game.Chart, error) {
	if !s.CanUndo() {
		return nil, ErrNothingToUndo
	}
	s.cursor--
	return s.snapshots[s.cursor].Clone(), nil
}

func (s *Stack) Redo() (*game.Chart, error) {
	if !s.CanRedo() {
		return nil, ErrNothingToRedo
	}
	s.cursor++
	return s.snapshots[s.cursor].Clone(), nil
}
