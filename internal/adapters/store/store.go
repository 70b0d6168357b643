// Package store keeps a JSON history of benchmark sweeps so a new sweep can be
// compared with the previous one over the same file.
package store

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/hailam/compbench/internal/ports"
	"github.com/hailam/compbench/internal/utils"
)

type runRecord struct {
	Timestamp time.Time      `json:"timestamp"`
	File      string         `json:"file"`
	Limit     utils.ByteSize `json:"limit"`
	Results   []resultRecord `json:"results"`
}

type resultRecord struct {
	Command         string        `json:"command"`
	CompressedBytes int64         `json:"compressed_bytes"`
	Ratio           *float64      `json:"ratio,omitempty"`
	Time            time.Duration `json:"time_ns"`
}

// FileStore implements ports.ResultStore using a JSON file.
type FileStore struct {
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Save(run ports.Run) error {
	records, err := s.load()
	if err != nil {
		return err
	}
	records = append(records, toRecord(run))

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal runs: %w", err)
	}
	return os.WriteFile(s.path, data, 0644)
}

// LoadAll returns every stored run, oldest first.
func (s *FileStore) LoadAll() ([]ports.Run, error) {
	records, err := s.load()
	if err != nil {
		return nil, err
	}
	runs := make([]ports.Run, 0, len(records))
	for _, r := range records {
		runs = append(runs, fromRecord(r))
	}
	return runs, nil
}

// LoadLatest returns the most recent run for file, or nil if there is none.
func (s *FileStore) LoadLatest(file string) (*ports.Run, error) {
	runs, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	for i := len(runs) - 1; i >= 0; i-- {
		if runs[i].File == file {
			return &runs[i], nil
		}
	}
	return nil, nil
}

func (s *FileStore) load() ([]runRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	var records []runRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal runs from %s: %w", s.path, err)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
	return records, nil
}

func toRecord(run ports.Run) runRecord {
	rec := runRecord{Timestamp: run.Timestamp, File: run.File, Limit: run.Limit}
	for _, res := range run.Results {
		r := resultRecord{Command: res.Command, CompressedBytes: res.After, Time: res.Time}
		if !math.IsNaN(res.Ratio) && !math.IsInf(res.Ratio, 0) {
			ratio := res.Ratio
			r.Ratio = &ratio
		}
		rec.Results = append(rec.Results, r)
	}
	return rec
}

func fromRecord(rec runRecord) ports.Run {
	run := ports.Run{Timestamp: rec.Timestamp, File: rec.File, Limit: rec.Limit}
	for _, r := range rec.Results {
		ratio := math.NaN()
		if r.Ratio != nil {
			ratio = *r.Ratio
		}
		run.Results = append(run.Results, ports.Result{
			Command: r.Command,
			Stats:   ports.Stats{Time: r.Time, After: r.CompressedBytes, Ratio: ratio},
		})
	}
	return run
}
