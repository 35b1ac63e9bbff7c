package score

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"git.lost.host/meutraa/fnf/internal/codec"
	"git.lost.host/meutraa/fnf/internal/game"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Store keeps the result and input log of every finished run, keyed by a
// hash of the chart so edits to a chart start a fresh history.
type Store struct {
	db *sql.DB
	// now stamps saved runs, replaced in tests
	now func() time.Time
}

// History is one stored run.
type History struct {
	ID       string
	Sum      string
	PlayedAt time.Time
	Summary  Summary
	Inputs   []game.Input
}

type InputsCompact struct {
	Direction game.Direction  `json:"direction"`
	Times     []time.Duration `json:"times"`
}

// compactInputs groups inputs per direction, keeping their order within a
// direction. Every direction gets an entry.
func compactInputs(inputs []game.Input) []InputsCompact {
	ins := make([]InputsCompact, game.NKeys)
	for i, d := range game.Directions {
		ins[i] = InputsCompact{Direction: d, Times: []time.Duration{}}
	}
	for _, i := range inputs {
		if !i.Direction.Valid() {
			continue
		}
		ins[i.Direction].Times = append(ins[i.Direction].Times, i.Time)
	}
	return ins
}

// uncompactInputs merges the per direction lists back into time order.
func uncompactInputs(inputs []InputsCompact) []game.Input {
	ins := []game.Input{}
	for _, i := range inputs {
		for _, t := range i.Times {
			ins = append(ins, game.Input{Direction: i.Direction, Time: t})
		}
	}
	sort.SliceStable(ins, func(a, b int) bool {
		return ins[a].Time < ins[b].Time
	})
	return ins
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("unable to open score database: %w", err)
	}

	initStatement := `
	create table if not exists scores
	  (
		  id text not null primary key,
		  sum text not null,
		  played_at integer not null,
		  score integer,
		  max_combo integer,
		  hits integer,
		  misses integer,
		  phantoms integer,
		  total integer,
		  played integer,
		  failed integer,
		  inputs blob
	  );
	create index if not exists scores_sum on scores(sum);
	`
	if _, err = db.Exec(initStatement); nil != err {
		db.Close()
		return nil, fmt.Errorf("unable to create score table: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Hash identifies a chart by its persisted form, judged state excluded.
func Hash(c *game.Chart) (string, error) {
	data, err := codec.Encode(c.PlayCopy())
	if nil != err {
		return "", err
	}
	sum := sha256.Sum256(data)
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

func (s *Store) Save(c *game.Chart, summary Summary, inputs []game.Input) (string, error) {
	sum, err := Hash(c)
	if nil != err {
		return "", fmt.Errorf("unable to hash chart: %w", err)
	}
	data, err := json.Marshal(compactInputs(inputs))
	if nil != err {
		return "", fmt.Errorf("unable to marshal inputs: %w", err)
	}
	id := uuid.NewString()
	_, err = s.db.Exec(
		`insert into scores(id, sum, played_at, score, max_combo, hits, misses, phantoms, total, played, failed, inputs)
		values(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, sum, s.now().UnixNano(), summary.Score, summary.MaxCombo, summary.Hits, summary.Misses,
		summary.Phantoms, summary.Total, int64(summary.Played), summary.Failed, data,
	)
	if nil != err {
		return "", fmt.Errorf("unable to save score: %w", err)
	}
	return id, nil
}

// Load returns the runs for a chart, newest first. Accuracy and offset
// statistics are not stored, replay the inputs to recover them.
func (s *Store) Load(c *game.Chart) ([]History, error) {
	sum, err := Hash(c)
	if nil != err {
		return nil, fmt.Errorf("unable to hash chart: %w", err)
	}
	rows, err := s.db.Query(
		`select id, sum, played_at, score, max_combo, hits, misses, phantoms, total, played, failed, inputs
		from scores where sum = ? order by played_at desc`, sum)
	if nil != err {
		return nil, fmt.Errorf("unable to load scores: %w", err)
	}
	defer rows.Close()

	histories := []History{}
	for rows.Next() {
		var h History
		var playedAt, played int64
		var data []byte
		if err := rows.Scan(&h.ID, &h.Sum, &playedAt, &h.Summary.Score, &h.Summary.MaxCombo,
			&h.Summary.Hits, &h.Summary.Misses, &h.Summary.Phantoms, &h.Summary.Total, &played, &h.Summary.Failed, &data); nil != err {
			return nil, fmt.Errorf("unable to read score: %w", err)
		}
		var ns []InputsCompact
		if err := json.Unmarshal(data, &ns); nil != err {
			return nil, fmt.Errorf("unable to unmarshal input history %v: %w", h.ID, err)
		}
		h.PlayedAt = time.Unix(0, playedAt)
		h.Summary.Played = time.Duration(played)
		if judged := h.Summary.Hits + h.Summary.Misses; judged > 0 {
			h.Summary.Accuracy = float64(h.Summary.Hits) / float64(judged)
		}
		h.Inputs = uncompactInputs(ns)
		histories = append(histories, h)
	}
	return histories, rows.Err()
}
