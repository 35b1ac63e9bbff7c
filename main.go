package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"git.lost.host/meutraa/fnf/internal/codec"
	"git.lost.host/meutraa/fnf/internal/config"
	"git.lost.host/meutraa/fnf/internal/parser"
	"git.lost.host/meutraa/fnf/internal/play"
	"git.lost.host/meutraa/fnf/internal/score"
	"gopkg.in/alecthomas/kingpin.v2"
)

func main() {
	if err := run(os.Args[1:]); nil != err {
		log.Fatalln(err)
	}
}

func run(args []string) error {
	app := kingpin.New("fnf", "Arrow rhythm game and chart editor")
	app.Version("0.3.0")
	cfg := config.Register(app)

	playCmd := app.Command("play", "Play a chart")
	playChart := playCmd.Arg("chart", "Chart file").Required().ExistingFile()

	editCmd := app.Command("edit", "Edit a chart")
	editChart := editCmd.Arg("chart", "Chart file to load").ExistingFile()

	importCmd := app.Command("import", "Convert a StepMania .sm file into a chart")
	importFile := importCmd.Arg("sm", "StepMania file").Required().ExistingFile()
	importOut := importCmd.Arg("out", "Chart file to write").Required().String()
	importDifficulty := importCmd.Flag("difficulty", "Difficulty index to import").Default("0").Int()

	scoresCmd := app.Command("scores", "List previous runs of a chart")
	scoresChart := scoresCmd.Arg("chart", "Chart file").Required().ExistingFile()
	scoresReplay := scoresCmd.Flag("replay", "Rescore runs by replaying their inputs").Bool()

	command, err := app.Parse(args)
	if nil != err {
		return err
	}
	if err := cfg.Validate(); nil != err {
		return err
	}

	switch command {
	case playCmd.FullCommand():
		return runPlay(cfg, *playChart)
	case editCmd.FullCommand():
		return runEdit(cfg, *editChart, os.Stdin, os.Stdout)
	case importCmd.FullCommand():
		return runImport(*importFile, *importOut, *importDifficulty)
	case scoresCmd.FullCommand():
		return runScores(cfg, *scoresChart, *scoresReplay)
	}
	return nil
}

func runImport(file, out string, index int) error {
	var psr parser.Parser = &parser.DefaultParser{}
	difficulties, err := psr.Parse(file)
	if nil != err {
		return err
	}
	for i, d := range difficulties {
		fmt.Printf("%2v) %3v  %5v  %v\n", i, d.Meter, len(d.Chart.Notes), d.Name)
	}
	if index < 0 || index >= len(difficulties) {
		return fmt.Errorf("no difficulty %v, pick one of the above", index)
	}
	chart := difficulties[index].Chart
	chart.Song = relativeSong(out, chart.Song)
	if err := codec.Save(out, chart); nil != err {
		return err
	}
	log.Printf("Wrote %v (%v notes)\n", out, len(chart.Notes))
	return nil
}

// songPath resolves a chart's song, relative songs are next to the chart.
func songPath(chartFile, song string) string {
	if song == "" || filepath.IsAbs(song) {
		return song
	}
	return filepath.Join(filepath.Dir(chartFile), song)
}

// relativeSong is the inverse of songPath for a song path usable from the
// working directory. It is left as is when no relative path exists.
func relativeSong(chartFile, song string) string {
	if song == "" {
		return song
	}
	dir, err := filepath.Abs(filepath.Dir(chartFile))
	if nil != err {
		return song
	}
	abs, err := filepath.Abs(song)
	if nil != err {
		return song
	}
	rel, err := filepath.Rel(dir, abs)
	if nil != err {
		return song
	}
	return rel
}

func runScores(cfg *config.Config, file string, replay bool) error {
	chart, err := codec.Load(file)
	if nil != err {
		return err
	}
	store, err := score.Open(cfg.Database)
	if nil != err {
		return err
	}
	defer store.Close()

	histories, err := store.Load(chart)
	if nil != err {
		return err
	}
	if len(histories) == 0 {
		return errors.New("no runs recorded for this chart")
	}
	for _, h := range histories {
		s := h.Summary
		if replay {
			s = play.Replay(chart, h.Inputs, cfg.Play())
		}
		fmt.Printf("%v  %7v  %5.1f%%  %4v/%-4v  combo %4v  %v\n",
			h.PlayedAt.Format("2006-01-02 15:04"), s.Score, 100*s.Accuracy, s.Hits, s.Total, s.MaxCombo, result(s))
	}
	return nil
}

func result(s score.Summary) string {
	if s.Failed {
		return "failed"
	}
	return "cleared"
}
