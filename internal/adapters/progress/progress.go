package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"

	"github.com/hailam/compbench/internal/ports"
)

// Line writes "measuring <cmd>" to w before each command, and keeps a spinner
// going while it runs when w is a terminal.
type Line struct {
	w       io.Writer
	spinner *spinner.Spinner
}

// NewLine returns progress output on w. The spinner only animates when w is
// a terminal file.
func NewLine(w io.Writer) ports.Progress {
	p := &Line{w: w}
	if f, ok := w.(*os.File); ok && isTerminal(f) {
		p.spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriterFile(f))
	}
	return p
}

func (p *Line) Start(command string) {
	fmt.Fprintf(p.w, "measuring %s\n", command)
	if p.spinner != nil {
		p.spinner.Suffix = " " + command
		p.spinner.Start()
	}
}

func (p *Line) Done(command string, err error) {
	if p.spinner != nil {
		p.spinner.Stop()
	}
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// Nop discards progress notifications.
type Nop struct{}

func (Nop) Start(string)       {}
func (Nop) Done(string, error) {}
