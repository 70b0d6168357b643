// Package report renders benchmark results as text, JSON or CSV.
package report

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/hailam/compbench/internal/ports"
)

var ErrUnknownFormat = errors.New("unknown report format")

// Formats lists the accepted format names.
var Formats = []string{"text", "json", "csv"}

// New returns the Reporter for format.
func New(format string) (ports.Reporter, error) {
	switch format {
	case "", "text":
		return &TextReporter{}, nil
	case "json":
		return &JSONReporter{}, nil
	case "csv":
		return &CSVReporter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// FormatDuration rounds d to a precision that still reads well: milliseconds
// for anything from 10ms up, microseconds below that.
func FormatDuration(d time.Duration) string {
	if d >= 10*time.Millisecond {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(time.Microsecond).String()
}

// finiteRatio returns nil for the NaN or infinite ratio of an empty input,
// which JSON cannot encode.
func finiteRatio(r float64) *float64 {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil
	}
	return &r
}
