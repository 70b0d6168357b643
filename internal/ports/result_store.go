package ports

import (
	"time"

	"github.com/hailam/compbench/internal/utils"
)

// Run is one complete benchmark sweep over a file.
type Run struct {
	Timestamp time.Time
	File      string
	Limit     utils.ByteSize
	Results   []Result
}

// ResultStore persists benchmark sweeps.
type ResultStore interface {
	Save(run Run) error
	LoadLatest(file string) (*Run, error)
}

// MetricsSink exports the results of a sweep.
type MetricsSink interface {
	Export(run Run) error
}
