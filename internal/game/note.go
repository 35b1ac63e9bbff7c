package game

import (
	"fmt"
	"strings"
	"time"
)

type Direction uint8

const (
	Left Direction = iota
	Down
	Up
	Right
)

// NKeys is the number of lanes, one per direction.
const NKeys = 4

var Directions = [NKeys]Direction{Left, Down, Up, Right}

var directionNames = [NKeys]string{"left", "down", "up", "right"}

func (d Direction) Valid() bool {
	return d < NKeys
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
	return directionNames[d]
}

// ParseDirection accepts exactly the persisted lowercase names.
func ParseDirection(s string) (Direction, error) {
	for i, n := range directionNames {
		if n == s {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("%w: direction %q, must be one of %s", ErrInvalidNote, s, strings.Join(directionNames[:], ", "))
}

func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: direction %d", ErrInvalidNote, uint8(d))
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	v, err := ParseDirection(string(text))
	if nil != err {
		return err
	}
	*d = v
	return nil
}

type Note struct {
	Direction Direction
	Time      time.Duration // When the note reaches the target line

	// This is state, only set on a play copy
	Judged bool
}

func ValidateNote(t time.Duration, d Direction) error {
	if t < 0 {
		return fmt.Errorf("%w: negative time %v", ErrInvalidNote, t)
	}
	if !d.Valid() {
		return fmt.Errorf("%w: direction %d", ErrInvalidNote, uint8(d))
	}
	return nil
}

// Input is a single directional key press at song time Time.
type Input struct {
	Direction Direction
	Time      time.Duration
}
