package report

import (
	"fmt"
	"io"

	"github.com/hailam/compbench/internal/ports"
	"github.com/hailam/compbench/internal/utils"
)

// TextReporter prints one block per result:
//
//	xz
//	31.52% = 1.58MiB; 1.204s
type TextReporter struct{}

func (r *TextReporter) Report(w io.Writer, results []ports.Result) error {
	for _, res := range results {
		_, err := fmt.Fprintf(w, "%s\n%.2f%% = %s; %s\n\n",
			res.Command, res.Ratio, utils.ByteSize(res.After), FormatDuration(res.Time))
		if err != nil {
			return err
		}
	}
	return nil
}
