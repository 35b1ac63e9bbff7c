package theme

import "git.lost.host/meutraa/fnf/internal/game"

type Theme interface {
	RenderNote(d game.Direction) string
	RenderHitField(d game.Direction) string
	RenderJudgement(j game.Judgement) string
}
