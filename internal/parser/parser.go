package parser

import "git.lost.host/meutraa/fnf/internal/game"

// Difficulty is one playable chart found in a song file.
type Difficulty struct {
	Name  string
	Meter string
	Chart *game.Chart
}

type Parser interface {
	Parse(file string) ([]Difficulty, error)
}
