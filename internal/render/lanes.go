package render

import (
	"fmt"
	"time"

	"git.lost.host/meutraa/fnf/internal/game"
	"git.lost.host/meutraa/fnf/internal/judge"
	"git.lost.host/meutraa/fnf/internal/score"
	"git.lost.host/meutraa/fnf/internal/theme"
)

// Lanes is the playfield layout on a terminal of columns x rows.
type Lanes struct {
	Columns, Rows int
	BarRow        int // Rows above the bottom edge for the target line
	Spacing       int
	// RowsPerSecond is the terminal scroll speed
	RowsPerSecond float64
}

func (l Lanes) scroll() game.Scroll {
	return game.Scroll{Speed: l.RowsPerSecond, Target: l.Rows - l.BarRow}
}

// Column is the terminal column of a lane, lanes are centred.
func (l Lanes) Column(d game.Direction) int {
	mc := l.Columns / 2
	return mc - l.Spacing*(game.NKeys-1) + l.Spacing*2*int(d)
}

type Cell struct {
	Row, Column int
	Direction   game.Direction
}

// Cells places every pending note that is on screen at now.
func (l Lanes) Cells(e *judge.Engine, now time.Duration) []Cell {
	s := l.scroll()
	cells := []Cell{}
	for i, n := range e.Chart().Notes {
		if e.State(i) != judge.Pending {
			continue
		}
		row := s.Y(n, now)
		if row < 1 || row > l.Rows {
			continue
		}
		cells = append(cells, Cell{Row: row, Column: l.Column(n.Direction), Direction: n.Direction})
	}
	return cells
}

func (l Lanes) Draw(r Renderer, th theme.Theme, e *judge.Engine, now time.Duration) {
	for _, d := range game.Directions {
		r.Fill(l.Rows-l.BarRow, l.Column(d), th.RenderHitField(d))
	}
	for _, c := range l.Cells(e, now) {
		r.Fill(c.Row, c.Column, th.RenderNote(c.Direction))
	}
}

// Stats draws the score panel at the left edge.
func Stats(r Renderer, st score.State, now time.Duration, paused bool) {
	r.Fill(2, 2, fmt.Sprintf("   Score: %6v", st.Score))
	r.Fill(3, 2, fmt.Sprintf("   Combo: %6v", st.Combo))
	r.Fill(4, 2, fmt.Sprintf("    Life: %6.0f", st.Life))
	r.Fill(5, 2, fmt.Sprintf("    Mean: %6.1f ms", float64(st.Mean())/float64(time.Millisecond)))
	r.Fill(6, 2, fmt.Sprintf("   Stdev: %6.1f ms", float64(st.Stdev())/float64(time.Millisecond)))
	r.Fill(7, 2, fmt.Sprintf("    Time: %6.2f s", now.Seconds()))
	if paused {
		r.Fill(9, 2, "  PAUSED  esc to resume, r to retry, q to quit")
	}
}
