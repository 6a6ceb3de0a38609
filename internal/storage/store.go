// Package storage persists completed experiments under a data directory:
// one directory per experiment holding metadata.json, the per-run final
// states as CSV, and the cumulative convergence series.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/boolsim/internal/ensemble"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type Metadata struct {
	ID           string          `json:"id"`
	Network      string          `json:"network"`
	Timestamp    time.Time       `json:"timestamp"`
	Target       string          `json:"target"`
	Discipline   string          `json:"discipline"`
	Steps        int             `json:"steps"`
	Runs         int             `json:"runs"`
	Seed         int64           `json:"seed"`
	Fixed        map[string]bool `json:"fixed,omitempty"`
	Set          map[string]bool `json:"set,omitempty"`
	OnCount      int             `json:"on_count"`
	OnPercent    float64         `json:"on_percent"`
	Converged    bool            `json:"converged"`
	EvalFailures int             `json:"eval_failures"`
	MissingRefs  int             `json:"missing_refs"`
}

func (s *Store) Save(network string, res *ensemble.Result) (string, error) {
	id := fmt.Sprintf("%s_%d", res.Params.Target, time.Now().Unix())
	dir := filepath.Join(s.baseDir, id)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	meta := Metadata{
		ID:           id,
		Network:      network,
		Timestamp:    time.Now(),
		Target:       res.Params.Target,
		Discipline:   res.Params.Discipline,
		Steps:        res.Params.Steps,
		Runs:         len(res.Runs),
		Seed:         res.Params.Seed,
		Fixed:        res.Params.Fixed,
		Set:          res.Params.Set,
		OnCount:      res.OnCount,
		OnPercent:    res.OnPercent,
		Converged:    res.Converged,
		EvalFailures: res.EvalFailures,
		MissingRefs:  res.MissingRefs,
	}

	metaFile, err := os.Create(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := s.writeFinals(dir, res); err != nil {
		return "", err
	}
	if err := s.writeSeries(dir, res); err != nil {
		return "", err
	}
	return id, nil
}

// writeFinals records every run's final state, one row per run, 0/1 cells in
// node-name column order.
func (s *Store) writeFinals(dir string, res *ensemble.Result) error {
	file, err := os.Create(filepath.Join(dir, "finals.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if len(res.Runs) == 0 {
		return nil
	}

	names := make([]string, 0, len(res.Nodes))
	for _, stat := range res.Nodes {
		names = append(names, stat.Name)
	}
	header := append([]string{"run"}, names...)
	if err := w.Write(header); err != nil {
		return err
	}

	for _, run := range res.Runs {
		row := []string{strconv.Itoa(run.Index)}
		for _, name := range names {
			if run.Final[name] {
				row = append(row, "1")
			} else {
				row = append(row, "0")
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) writeSeries(dir string, res *ensemble.Result) error {
	file, err := os.Create(filepath.Join(dir, "series.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"run", "cumulative_on_percent"}); err != nil {
		return err
	}
	for i, v := range res.Cumulative {
		row := []string{strconv.Itoa(i), strconv.FormatFloat(v, 'f', 4, 64)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Metadata{}, nil
		}
		return nil, err
	}

	metas := make([]Metadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta Metadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		metas = append(metas, meta)
	}
	return metas, nil
}

func (s *Store) Load(id string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSeries reads back the cumulative ON% series of a stored experiment.
func (s *Store) LoadSeries(id string) ([]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, "series.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	series := make([]float64, 0, len(records))
	for i := 1; i < len(records); i++ {
		if len(records[i]) < 2 {
			continue
		}
		v, err := strconv.ParseFloat(records[i][1], 64)
		if err != nil {
			continue
		}
		series = append(series, v)
	}
	return series, nil
}

// LoadFinals reads back the per-run final states as node-name columns.
func (s *Store) LoadFinals(id string) ([]string, [][]bool, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, "finals.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 1 {
		return nil, nil, nil
	}

	names := records[0][1:]
	finals := make([][]bool, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		row := make([]bool, 0, len(names))
		for j := 1; j < len(records[i]); j++ {
			row = append(row, records[i][j] == "1")
		}
		finals = append(finals, row)
	}
	return names, finals, nil
}
