package theme

import (
	"fmt"
	"image/color"

	"git.lost.host/meutraa/fnf/internal/game"
)

type DefaultTheme struct {
}

func paint(c color.RGBA, s string) string {
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, s)
}

func (t *DefaultTheme) RenderNote(d game.Direction) string {
	return paint(NoteColor(d), syms[d])
}

func (t *DefaultTheme) RenderHitField(d game.Direction) string {
	return barSyms[d]
}

func (t *DefaultTheme) RenderJudgement(j game.Judgement) string {
	if j.Outcome == game.Hit {
		return paint(NoteColor(j.Direction), "  GOOD  ")
	}
	return "\033[1;31m  MISS  \033[0m"
}

var (
	syms       = [game.NKeys]string{"◀", "▼", "▲", "▶"}
	barSyms    = [game.NKeys]string{"◁", "▽", "△", "▷"}
	noteColors = [game.NKeys]color.RGBA{
		{255, 76, 76, 255},  // left red
		{76, 255, 76, 255},  // down green
		{76, 76, 255, 255},  // up blue
		{255, 255, 76, 255}, // right yellow
	}
	white = color.RGBA{255, 255, 255, 255}
)

func NoteColor(d game.Direction) color.RGBA {
	if !d.Valid() {
		return white
	}
	return noteColors[d]
}
