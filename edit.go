package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"git.lost.host/meutraa/fnf/internal/config"
	"git.lost.host/meutraa/fnf/internal/editor"
	"git.lost.host/meutraa/fnf/internal/game"
	"git.lost.host/meutraa/fnf/internal/transport"
	"git.lost.host/meutraa/fnf/internal/transport/audio"
)

const editHelp = `new                      start an empty chart
song <file>              set the song
bpm <bpm>                set the tempo
add <dir> <time>         add a note, time in seconds or as a duration
mark <dir>               add a note at the playback position
rm <index>               remove a note
set <index> <dir> <time> replace a note
order <index>...         reorder the notes
undo, redo
load <file>, save [file]
play, pause, resume, stop, seek <time>
list                     print the notes
preview [width]          print the notes scrolling towards the line
quit`

func runEdit(cfg *config.Config, file string, in io.Reader, out io.Writer) error {
	open := func(song string) (transport.Transport, error) {
		a, err := audio.Open(song, cfg.Volume)
		if nil != err {
			return nil, err
		}
		return a, nil
	}
	e := editor.New(open, cfg.HistoryCapacity())
	if file != "" {
		if err := e.Load(file); nil != err {
			return err
		}
	}
	defer func() {
		if err := e.Close(); nil != err {
			log.Println(err)
		}
	}()
	return repl(e, in, out)
}

// parseTime accepts plain seconds or a Go duration.
func parseTime(s string) (time.Duration, error) {
	if f, err := strconv.ParseFloat(s, 64); nil == err {
		return time.Duration(f * float64(time.Second)), nil
	}
	t, err := time.ParseDuration(s)
	if nil != err {
		return 0, fmt.Errorf("unable to parse time %q", s)
	}
	return t, nil
}

// parseDirection is lenient about case, unlike chart files.
func parseDirection(s string) (game.Direction, error) {
	return game.ParseDirection(strings.ToLower(s))
}

func parseNote(dir, at string) (game.Direction, time.Duration, error) {
	d, err := parseDirection(dir)
	if nil != err {
		return 0, 0, err
	}
	t, err := parseTime(at)
	return d, t, err
}

func repl(e *editor.Editor, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "q" {
			return nil
		}
		if err := command(e, fields[0], fields[1:], out); nil != err {
			fmt.Fprintln(out, "error:", err)
		}
	}
}

func command(e *editor.Editor, name string, args []string, out io.Writer) error {
	arg := func(i int) string {
		if i < len(args) {
			return args[i]
		}
		return ""
	}

	switch name {
	case "help", "?":
		fmt.Fprintln(out, editHelp)
	case "new":
		e.NewChart()
	case "song":
		return e.SetSong(strings.Join(args, " "))
	case "bpm":
		bpm, err := strconv.ParseFloat(arg(0), 64)
		if nil != err {
			return fmt.Errorf("unable to parse bpm %q", arg(0))
		}
		return e.SetBPM(bpm)
	case "add":
		d, t, err := parseNote(arg(0), arg(1))
		if nil != err {
			return err
		}
		return e.Add(t, d)
	case "mark":
		d, err := parseDirection(arg(0))
		if nil != err {
			return err
		}
		t, err := e.Mark(d)
		if nil != err {
			return err
		}
		fmt.Fprintf(out, "%v at %v\n", d, t)
	case "rm":
		i, err := strconv.Atoi(arg(0))
		if nil != err {
			return fmt.Errorf("unable to parse index %q", arg(0))
		}
		return e.Remove(i)
	case "set":
		i, err := strconv.Atoi(arg(0))
		if nil != err {
			return fmt.Errorf("unable to parse index %q", arg(0))
		}
		d, t, err := parseNote(arg(1), arg(2))
		if nil != err {
			return err
		}
		return e.Replace(i, t, d)
	case "order":
		order := make([]int, len(args))
		for i, a := range args {
			n, err := strconv.Atoi(a)
			if nil != err {
				return fmt.Errorf("unable to parse index %q", a)
			}
			order[i] = n
		}
		return e.Reorder(order)
	case "undo":
		return e.Undo()
	case "redo":
		return e.Redo()
	case "load":
		return e.Load(arg(0))
	case "save":
		if err := e.Save(arg(0)); nil != err {
			return err
		}
		fmt.Fprintln(out, "saved", e.Path())
	case "play":
		return e.Play()
	case "pause":
		e.Pause()
	case "resume":
		e.Resume()
	case "stop":
		e.Stop()
	case "seek":
		t, err := parseTime(arg(0))
		if nil != err {
			return err
		}
		return e.Seek(t)
	case "list":
		c := e.Chart()
		fmt.Fprintf(out, "song %q bpm %v\n", c.Song, c.BPM)
		for i, n := range c.Notes {
			fmt.Fprintf(out, "%3v  %-5v  %v\n", i, n.Direction, n.Time)
		}
	case "preview":
		width := 60
		if a := arg(0); a != "" {
			w, err := strconv.Atoi(a)
			if nil != err {
				return fmt.Errorf("unable to parse width %q", a)
			}
			width = w
		}
		for _, m := range e.Preview(width, editor.PreviewSpeed) {
			fmt.Fprintf(out, "%3v  %-5v  %v\n", m.Note, m.Direction, m.X)
		}
		fmt.Fprintln(out, "at", e.Elapsed())
	default:
		return fmt.Errorf("unknown command %q, try help", name)
	}
	return nil
}
