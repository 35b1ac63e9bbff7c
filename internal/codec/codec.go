// Package codec maps charts to and from the persisted JSON record:
//
//	{"song": "path", "bpm": 120, "notes": [{"time": 1.25, "direction": "left"}]}
//
// Unknown fields are ignored and a missing notes field is an empty chart.
package codec

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"git.lost.host/meutraa/fnf/internal/game"
)

type record struct {
	Song  string       `json:"song"`
	BPM   float64      `json:"bpm"`
	Notes []noteRecord `json:"notes"`
}

type noteRecord struct {
	Time      float64 `json:"time"`
	Direction string  `json:"direction"`
}

func seconds(d time.Duration) float64 {
	return d.Seconds()
}

// maxSeconds is the longest note time a time.Duration holds.
const maxSeconds = float64(math.MaxInt64) / float64(time.Second)

func duration(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}

func Encode(c *game.Chart) ([]byte, error) {
	r := record{Song: c.Song, BPM: c.BPM, Notes: make([]noteRecord, len(c.Notes))}
	for i, n := range c.Notes {
		if err := game.ValidateNote(n.Time, n.Direction); nil != err {
			return nil, fmt.Errorf("unable to encode note %d: %w", i, err)
		}
		r.Notes[i] = noteRecord{Time: seconds(n.Time), Direction: n.Direction.String()}
	}
	return json.MarshalIndent(r, "", "  ")
}

// Decode rejects the whole record on the first bad note, nothing is coerced.
func Decode(data []byte) (*game.Chart, error) {
	var r record
	if err := json.Unmarshal(data, &r); nil != err {
		return nil, fmt.Errorf("%w: %v", game.ErrMalformed, err)
	}
	if r.BPM < 0 || math.IsNaN(r.BPM) {
		return nil, fmt.Errorf("%w: bpm %v", game.ErrMalformed, r.BPM)
	}
	if r.BPM == 0 {
		r.BPM = game.DefaultBPM
	}

	c := &game.Chart{Song: r.Song, BPM: r.BPM, Notes: make([]game.Note, 0, len(r.Notes))}
	for i, n := range r.Notes {
		d, err := game.ParseDirection(n.Direction)
		if nil != err {
			return nil, fmt.Errorf("%w: note %d: %v", game.ErrMalformed, i, err)
		}
		if n.Time < 0 || n.Time >= maxSeconds || math.IsNaN(n.Time) {
			return nil, fmt.Errorf("%w: note %d: time %v", game.ErrMalformed, i, n.Time)
		}
		c.Notes = append(c.Notes, game.Note{Time: duration(n.Time), Direction: d})
	}
	return c, nil
}

func Load(path string) (*game.Chart, error) {
	data, err := os.ReadFile(path)
	if nil != err {
		return nil, fmt.Errorf("unable to read chart: %w", err)
	}
	c, err := Decode(data)
	if nil != err {
		return nil, fmt.Errorf("unable to load %v: %w", path, err)
	}
	return c, nil
}

func Save(path string, c *game.Chart) error {
	data, err := Encode(c)
	if nil != err {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); nil != err {
		return fmt.Errorf("unable to write chart: %w", err)
	}
	return nil
}
