package ports

import (
	"context"
	"io"
	"time"
)

// Stats is the outcome of a single benchmark run.
type Stats struct {
	Time  time.Duration
	After int64   // bytes produced by the compressor
	Ratio float64 // After / input bytes * 100
}

// Result pairs a command string with its stats.
type Result struct {
	Command string
	Stats
}

// Runner is the port for anything that can compress a bounded prefix of src
// and measure the output.
type Runner interface {
	// Run seeks src to its start, feeds at most limit bytes to cmd and
	// reports the compressed size and elapsed time.
	Run(ctx context.Context, cmd Command, src io.ReadSeeker, limit int64) (Stats, error)
}
