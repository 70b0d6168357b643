package report

import (
	"encoding/json"
	"io"

	"github.com/hailam/compbench/internal/ports"
	"github.com/hailam/compbench/internal/utils"
)

type JSONReporter struct{}

type jsonResult struct {
	Command         string   `json:"command"`
	CompressedBytes int64    `json:"compressed_bytes"`
	Compressed      string   `json:"compressed"`
	Ratio           *float64 `json:"ratio"`
	TimeNS          int64    `json:"time_ns"`
	Time            string   `json:"time"`
}

func (r *JSONReporter) Report(w io.Writer, results []ports.Result) error {
	out := make([]jsonResult, 0, len(results))
	for _, res := range results {
		out = append(out, jsonResult{
			Command:         res.Command,
			CompressedBytes: res.After,
			Compressed:      utils.ByteSize(res.After).String(),
			Ratio:           finiteRatio(res.Ratio),
			TimeNS:          res.Time.Nanoseconds(),
			Time:            FormatDuration(res.Time),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
