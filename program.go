package main

import (
	"fmt"
	"log"
	"time"

	"git.lost.host/meutraa/fnf/internal/codec"
	"git.lost.host/meutraa/fnf/internal/config"
	"git.lost.host/meutraa/fnf/internal/game"
	"git.lost.host/meutraa/fnf/internal/input"
	"git.lost.host/meutraa/fnf/internal/play"
	"git.lost.host/meutraa/fnf/internal/render"
	"git.lost.host/meutraa/fnf/internal/score"
	"git.lost.host/meutraa/fnf/internal/theme"
	"git.lost.host/meutraa/fnf/internal/transport/audio"
	"github.com/eiannone/keyboard"
)

type Program struct {
	cfg      *config.Config
	chart    *game.Chart
	player   *audio.Player
	session  *play.Session
	renderer render.Renderer
	theme    theme.Theme
	mapper   *input.Mapper
	lanes    render.Lanes
	keys     <-chan keyboard.KeyEvent
	quit     bool
}

func runPlay(cfg *config.Config, file string) error {
	chart, err := codec.Load(file)
	if nil != err {
		return err
	}
	if chart.Song == "" {
		return fmt.Errorf("chart %v has no song", file)
	}

	player, err := audio.Open(songPath(file, chart.Song), cfg.Volume)
	if nil != err {
		return err
	}
	defer player.Close()

	store, err := score.Open(cfg.Database)
	if nil != err {
		return err
	}
	defer store.Close()

	keys, err := keyboard.GetKeys(128)
	if nil != err {
		return fmt.Errorf("unable to open keyboard: %w", err)
	}
	defer func() {
		if err := keyboard.Close(); nil != err {
			log.Println("unable to close keyboard", err)
		}
	}()

	r := render.NewDefaultRenderer()
	columns, rows := r.Size()
	p := &Program{
		cfg:      cfg,
		chart:    chart,
		player:   player,
		session:  play.New(chart, player, cfg.Play()),
		renderer: r,
		theme:    &theme.DefaultTheme{},
		mapper:   input.NewMapper(cfg.KeyRunes()),
		keys:     keys,
		lanes:    render.Lanes{
			Columns: columns,
			Rows:    rows,
			BarRow:  int(cfg.BarRow),
			Spacing: 4,
			// One terminal row stands for 20 pixels of the original playfield
			RowsPerSecond: cfg.NoteSpeed / 20,
		},
	}

	if err := r.Init(); nil != err {
		return err
	}
	time.Sleep(cfg.Delay)
	p.session.Start()
	r.RenderLoop(cfg.FramePeriod, p.frame)
	if err := r.Deinit(); nil != err {
		log.Println("unable to restore terminal", err)
	}

	if p.quit && !p.session.Over() {
		return nil
	}
	summary := p.session.Summary()
	printSummary(summary)
	if _, err := store.Save(chart, summary, p.session.Inputs()); nil != err {
		log.Println(err)
	}
	return nil
}

// frame handles the input that arrived since the last frame, advances the
// session and draws it.
func (p *Program) frame() bool {
	for i := len(p.keys); i > 0; i-- {
		ev := <-p.keys
		if nil != ev.Err {
			log.Println("keyboard", ev.Err)
			continue
		}
		p.handle(p.mapper.Map(ev))
	}
	if p.quit {
		return false
	}

	// The song running out also ends the session on the next tick
	select {
	case <-p.player.Done():
		p.session.Advance(p.session.EndTime() + time.Millisecond)
	default:
	}

	for _, j := range p.session.Tick() {
		p.decorate(j)
	}
	if p.session.Over() {
		return false
	}

	now := p.player.Elapsed()
	p.lanes.Draw(p.renderer, p.theme, p.session.Engine(), now)
	render.Stats(p.renderer, p.session.Score(), now, p.session.Paused())
	return true
}

func (p *Program) handle(ev input.Event) {
	switch ev.Action {
	case input.Press:
		// Presses are judged at the audio position when they are read, so
		// input lag is bounded by the frame period
		for _, j := range p.session.Press(ev.Direction, p.player.Elapsed()) {
			p.decorate(j)
		}
	case input.Pause:
		p.session.TogglePause()
	case input.Retry:
		if p.session.Paused() {
			p.session.Retry()
		}
	case input.Quit:
		p.quit = true
	}
}

func (p *Program) decorate(j game.Judgement) {
	col := p.lanes.Column(game.Left) - 2
	if !j.Phantom() {
		col = p.lanes.Column(j.Direction) - 3
	}
	p.renderer.AddDecoration(col, p.lanes.Rows-p.lanes.BarRow-2, p.theme.RenderJudgement(j), 20)
}

func printSummary(s score.Summary) {
	fmt.Printf("Accuracy:    %5.1f%%\n", 100*s.Accuracy)
	fmt.Printf("Notes hit:   %v/%v\n", s.Hits, s.Total)
	fmt.Printf("Missed:      %v (+%v empty presses)\n", s.Misses, s.Phantoms)
	fmt.Printf("Score:       %v\n", s.Score)
	fmt.Printf("Max combo:   %v\n", s.MaxCombo)
	fmt.Printf("Mean:        %.1f ms\n", float64(s.Mean)/float64(time.Millisecond))
	fmt.Printf("Stdev:       %.1f ms\n", float64(s.Stdev)/float64(time.Millisecond))
	fmt.Printf("Play time:   %v min %02v s\n", int(s.Played.Minutes()), int(s.Played.Seconds())%60)
	if s.Failed {
		fmt.Println("Failed, life ran out")
	}
}
