package application

import (
	"fmt"

	"github.com/hailam/compbench/internal/ports"
	"github.com/hailam/compbench/internal/utils"
)

// Comparison relates the result of a command to its result in an earlier
// sweep.
type Comparison struct {
	Command   string
	AfterDiff float64 // percentage change of compressed size
	TimeDiff  float64 // percentage change of elapsed time
	Prev      ports.Result
	Curr      ports.Result
}

// Compare returns a comparison for every command present in both runs, in
// the order of curr.
func Compare(prev, curr ports.Run) []Comparison {
	prevMap := make(map[string]ports.Result)
	for _, r := range prev.Results {
		prevMap[r.Command] = r
	}

	var comparisons []Comparison
	for _, c := range curr.Results {
		p, ok := prevMap[c.Command]
		if !ok {
			continue
		}
		comp := Comparison{Command: c.Command, Prev: p, Curr: c}
		if p.After > 0 {
			comp.AfterDiff = float64(c.After-p.After) / float64(p.After) * 100
		}
		if p.Time > 0 {
			comp.TimeDiff = float64(c.Time-p.Time) / float64(p.Time) * 100
		}
		comparisons = append(comparisons, comp)
	}
	return comparisons
}

func (c Comparison) String() string {
	return fmt.Sprintf("%s: size %s -> %s (%+.2f%%), time %+.2f%%",
		c.Command, utils.ByteSize(c.Prev.After), utils.ByteSize(c.Curr.After), c.AfterDiff, c.TimeDiff)
}
