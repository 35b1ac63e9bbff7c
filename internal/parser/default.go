package parser

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"git.lost.host/meutraa/fnf/internal/game"
)

// ErrNoCharts is returned when a file has no dance-single difficulty.
var ErrNoCharts = errors.New("no dance-single charts")

// DefaultParser reads StepMania .sm files. Only dance-single is playable
// here, its four columns are left, down, up, right.
type DefaultParser struct{}

type bpm struct {
	StartingBeat float64
	Value        float64
}

func (p *DefaultParser) getSecondsPerNote(rates []bpm, currentBeat float64, bpn float64) float64 {
	sel := rates[0].Value
	for _, rate := range rates {
		if currentBeat >= rate.StartingBeat {
			sel = rate.Value
		} else {
			break
		}
	}
	secondsPerBeat := 60.0 / sel
	return bpn * secondsPerBeat
}

// 0 – No note
// 1 – Normal note
// 2 – Hold head
// 3 – Hold/Roll tail
// 4 – Roll head
// M – Mine (or other negative note)
// K – Automatic keysound
// L – Lift note
// F – Fake note

// Holds and rolls are played as a single press on their head.
func (p *DefaultParser) mapToNote(ch byte) bool {
	return ch == '1' || ch == '2' || ch == '4'
}

func (p *DefaultParser) Parse(file string) ([]Difficulty, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, err
	}
	difficulties, err := p.ParseString(string(data))
	if nil != err {
		return nil, fmt.Errorf("unable to parse %v: %w", file, err)
	}
	for _, d := range difficulties {
		if d.Chart.Song != "" {
			d.Chart.Song = filepath.Join(filepath.Dir(file), d.Chart.Song)
		}
	}
	return difficulties, nil
}

type section struct {
	name, meter, notes string
}

func tagValue(mdl, tag string) (string, bool) {
	if !strings.HasPrefix(mdl, tag+":") {
		return "", false
	}
	mdl = strings.TrimPrefix(mdl, tag+":")
	mdl = strings.TrimSuffix(strings.TrimSpace(mdl), ";")
	return strings.TrimSpace(mdl), true
}

func stripComment(l string) string {
	if i := strings.Index(l, "//"); i >= 0 {
		return l[:i]
	}
	return l
}

func (p *DefaultParser) ParseString(str string) ([]Difficulty, error) {
	str = strings.ReplaceAll(str, "\r", "")
	sections := strings.Split(str, "#NOTES:")
	meta := sections[0]

	singles := []section{}
	for _, s := range sections[1:] {
		// type, author, name, meter, radar, then the note data
		lines := strings.SplitN(s, ":", 6)
		if len(lines) < 6 {
			return nil, fmt.Errorf("%w: truncated #NOTES", game.ErrMalformed)
		}
		chartType := strings.TrimSpace(lines[0])
		if chartType != "dance-single" {
			continue
		}
		notes := lines[5]
		if end := strings.Index(notes, ";"); end >= 0 {
			notes = notes[:end]
		}
		singles = append(singles, section{
			name:  strings.TrimSpace(lines[2]),
			meter: strings.TrimSpace(lines[3]),
			notes: notes,
		})
	}
	if len(singles) == 0 {
		return nil, ErrNoCharts
	}

	offset := 0.0
	bpms := []bpm{}
	song := ""

	for _, mdl := range strings.Split(meta, "#") {
		mdl = strings.TrimSpace(mdl)
		if v, ok := tagValue(mdl, "OFFSET"); ok {
			offs, err := strconv.ParseFloat(v, 64)
			if nil != err {
				return nil, fmt.Errorf("%w: offset %q", game.ErrMalformed, v)
			}
			offset = -offs
		} else if v, ok := tagValue(mdl, "MUSIC"); ok {
			song = v
		} else if v, ok := tagValue(mdl, "BPMS"); ok {
			v = strings.ReplaceAll(v, "\n", "")
			for _, b := range strings.Split(v, ",") {
				as := strings.Split(strings.TrimSpace(b), "=")
				if len(as) != 2 {
					return nil, fmt.Errorf("%w: bpm %q", game.ErrMalformed, b)
				}
				sb, err := strconv.ParseFloat(as[0], 64)
				if nil != err {
					return nil, fmt.Errorf("%w: bpm beat %q", game.ErrMalformed, as[0])
				}
				value, err := strconv.ParseFloat(as[1], 64)
				if nil != err || value <= 0 {
					return nil, fmt.Errorf("%w: bpm value %q", game.ErrMalformed, as[1])
				}
				bpms = append(bpms, bpm{StartingBeat: sb, Value: value})
			}
		}
	}
	if len(bpms) == 0 {
		return nil, fmt.Errorf("%w: no #BPMS", game.ErrMalformed)
	}

	difficulties := []Difficulty{}
	for _, s := range singles {
		chart, err := p.parseNotes(s.notes, offset, bpms)
		if nil != err {
			return nil, fmt.Errorf("%v: %w", s.name, err)
		}
		chart.Song = song
		chart.BPM = bpms[0].Value
		difficulties = append(difficulties, Difficulty{Name: s.name, Meter: s.meter, Chart: chart})
	}
	return difficulties, nil
}

func (p *DefaultParser) parseNotes(data string, offset float64, bpms []bpm) (*game.Chart, error) {
	// Start time of first note
	seconds := offset
	currentBeat := 0.0
	chart := game.NewChart()

	for _, block := range strings.Split(data, ",") {
		lines := []string{}
		for _, l := range strings.Split(block, "\n") {
			l = strings.TrimSpace(stripComment(l))
			if l == "" {
				continue
			}
			if len(l) != game.NKeys {
				return nil, fmt.Errorf("%w: note row %q", game.ErrMalformed, l)
			}
			lines = append(lines, l)
		}
		if len(lines) == 0 {
			continue
		}

		// Beat count is 4 per block
		beatsPerNote := 4.0 / float64(len(lines)) // 1/4, 1/8, 1/16, 1/24 etc

		for _, line := range lines {
			if seconds >= 0 {
				t := time.Duration(math.Round(seconds * float64(time.Second)))
				for i := 0; i < game.NKeys; i++ {
					if p.mapToNote(line[i]) {
						chart.Notes = append(chart.Notes, game.Note{Time: t, Direction: game.Directions[i]})
					}
				}
			}
			seconds += p.getSecondsPerNote(bpms, currentBeat, beatsPerNote)
			currentBeat += beatsPerNote
		}
	}
	return chart, nil
}
