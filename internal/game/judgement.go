package game

import "time"

type Outcome uint8

const (
	Hit Outcome = iota
	Miss
)

func (o Outcome) String() string {
	if o == Hit {
		return "hit"
	}
	return "miss"
}

// NoNote marks a judgement that is not attached to any note, a press with
// nothing in reach.
const NoNote = -1

type Judgement struct {
	Outcome   Outcome
	Note      int // Index into the play chart, or NoNote
	Direction Direction
	Time      time.Duration // Song time the judgement was made at
	Offset    time.Duration // note.Time - Time, only meaningful for hits
}

func (j Judgement) Phantom() bool {
	return j.Note == NoNote
}
