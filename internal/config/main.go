// Package config binds command line flags to a Config value. Nothing is
// parsed at init, the caller owns the kingpin application.
package config

import (
	"fmt"
	"time"

	"git.lost.host/meutraa/fnf/internal/game"
	"git.lost.host/meutraa/fnf/internal/history"
	"git.lost.host/meutraa/fnf/internal/judge"
	"git.lost.host/meutraa/fnf/internal/play"
	"gopkg.in/alecthomas/kingpin.v2"
)

type Config struct {
	HitWindow   time.Duration
	NoteSpeed   float64 // pixels per second
	MissSlack   float64 // pixels past the target line
	Grace       time.Duration
	NoFail      bool
	Keys        string
	Volume      float64
	Delay       time.Duration
	FramePeriod time.Duration
	BarRow      uint
	Database    string
	History     int
}

// Register adds the shared flags to app. Values are filled in by app.Parse.
func Register(app *kingpin.Application) *Config {
	c := &Config{}
	app.Flag("hit-window", "Largest distance from a note that still hits it").Default("200ms").DurationVar(&c.HitWindow)
	app.Flag("note-speed", "Scroll speed in pixels per second").Default("300").Short('s').Float64Var(&c.NoteSpeed)
	app.Flag("miss-slack", "Pixels a note may pass the target line before it is missed").Default("50").Float64Var(&c.MissSlack)
	app.Flag("grace", "Play time after the last note").Default("2s").DurationVar(&c.Grace)
	app.Flag("no-fail", "Keep playing when life runs out").BoolVar(&c.NoFail)
	app.Flag("keys", "Keys for left, down, up, right, arrows always work").Default("dfjk").Short('k').StringVar(&c.Keys)
	app.Flag("volume", "Volume adjustment, base 2, 0 is unchanged").Default("0").Float64Var(&c.Volume)
	app.Flag("delay", "Start delay").Default("1.5s").Short('d').DurationVar(&c.Delay)
	app.Flag("frame-period", "Render frame period").Default("16ms").Short('p').DurationVar(&c.FramePeriod)
	app.Flag("bar-row", "Rows from the bottom to render the target line").Default("4").UintVar(&c.BarRow)
	app.Flag("db", "Score database").Default("./scores.db").StringVar(&c.Database)
	app.Flag("history", "Undo depth in the editor").Default("50").IntVar(&c.History)
	return c
}

func (c *Config) Validate() error {
	if n := len([]rune(c.Keys)); n != game.NKeys {
		return fmt.Errorf("--keys needs %d keys, got %d", game.NKeys, n)
	}
	if c.HitWindow <= 0 {
		return fmt.Errorf("--hit-window must be positive, got %v", c.HitWindow)
	}
	if c.NoteSpeed <= 0 {
		return fmt.Errorf("--note-speed must be positive, got %v", c.NoteSpeed)
	}
	if c.MissSlack < 0 {
		return fmt.Errorf("--miss-slack must not be negative, got %v", c.MissSlack)
	}
	if c.History < 1 {
		return fmt.Errorf("--history must be at least 1, got %v", c.History)
	}
	return nil
}

func (c *Config) Judge() judge.Config {
	return judge.Config{
		HitWindow: c.HitWindow,
		MissAfter: game.Scroll{Speed: c.NoteSpeed}.Slack(c.MissSlack),
	}
}

func (c *Config) Play() play.Config {
	return play.Config{Judge: c.Judge(), Grace: c.Grace, NoFail: c.NoFail}
}

// KeyRunes are the lane keys in Directions order.
func (c *Config) KeyRunes() [game.NKeys]rune {
	var keys [game.NKeys]rune
	copy(keys[:], []rune(c.Keys))
	return keys
}

func (c *Config) HistoryCapacity() int {
	if c.History < 1 {
		return history.DefaultCapacity
	}
	return c.History
}
