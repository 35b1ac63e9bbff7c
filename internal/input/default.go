// Package input turns keyboard events into lane presses and control
// actions. Reading the keyboard is left to the caller.
package input

import (
	"unicode"

	"git.lost.host/meutraa/fnf/internal/game"
	"github.com/eiannone/keyboard"
)

type Action uint8

const (
	None Action = iota
	Press
	Pause
	Retry
	Quit
)

type Event struct {
	Action    Action
	Direction game.Direction // Only set for Press
}

var arrows = map[keyboard.Key]game.Direction{
	keyboard.KeyArrowLeft:  game.Left,
	keyboard.KeyArrowDown:  game.Down,
	keyboard.KeyArrowUp:    game.Up,
	keyboard.KeyArrowRight: game.Right,
}

type Mapper struct {
	keys [game.NKeys]rune
}

// NewMapper uses keys for the lanes in game.Directions order, on top of
// the arrow keys.
func NewMapper(keys [game.NKeys]rune) *Mapper {
	m := &Mapper{}
	for i, k := range keys {
		m.keys[i] = unicode.ToLower(k)
	}
	return m
}

func (m *Mapper) Map(ev keyboard.KeyEvent) Event {
	if d, ok := arrows[ev.Key]; ok {
		return Event{Action: Press, Direction: d}
	}
	switch ev.Key {
	case keyboard.KeyEsc:
		return Event{Action: Pause}
	case keyboard.KeyCtrlC:
		return Event{Action: Quit}
	}
	if ev.Rune == 0 {
		return Event{}
	}
	r := unicode.ToLower(ev.Rune)
	for i, k := range m.keys {
		if r == k {
			return Event{Action: Press, Direction: game.Directions[i]}
		}
	}
	switch r {
	case 'q':
		return Event{Action: Quit}
	case 'r':
		return Event{Action: Retry}
	}
	return Event{}
}
