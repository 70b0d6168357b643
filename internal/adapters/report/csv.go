package report

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/hailam/compbench/internal/ports"
	"github.com/hailam/compbench/internal/utils"
)

type CSVReporter struct{}

type csvRow struct {
	Command         string `csv:"command"`
	CompressedBytes int64  `csv:"compressed_bytes"`
	Compressed      string `csv:"compressed"`
	Ratio           string `csv:"ratio_percent"`
	TimeMS          string `csv:"time_ms"`
}

func (r *CSVReporter) Report(w io.Writer, results []ports.Result) error {
	rows := make([]*csvRow, 0, len(results))
	for _, res := range results {
		rows = append(rows, &csvRow{
			Command:         res.Command,
			CompressedBytes: res.After,
			Compressed:      utils.ByteSize(res.After).String(),
			Ratio:           fmt.Sprintf("%.2f", res.Ratio),
			TimeMS:          fmt.Sprintf("%.3f", float64(res.Time.Microseconds())/1000),
		})
	}
	return gocsv.Marshal(rows, w)
}
