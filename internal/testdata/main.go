package testdata

import (
	"git.lost.host/meutraa/fnf/internal/codec"
	"git.lost.host/meutraa/fnf/internal/game"
)

// GetChart decodes a fresh copy of the sample chart on every call.
func GetChart() (*game.Chart, error) {
	return codec.Decode([]byte(data))
}
