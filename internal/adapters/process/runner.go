package process

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os/exec"
	"time"

	"github.com/hailam/compbench/internal/ports"
)

const drainBufSize = 4096

// Runner benchmarks an external compressor: it pipes a bounded prefix of the
// source into the child's stdin and counts what comes out of its stdout.
//
// A Runner may be reused for sequential runs, but concurrent runs against the
// same source would race on its read offset.
type Runner struct {
	// Stderr receives the child's standard error. Nil discards it.
	Stderr io.Writer
}

// New creates a process runner that forwards child stderr to stderr.
func New(stderr io.Writer) ports.Runner {
	return &Runner{Stderr: stderr}
}

type drainResult struct {
	n   int64
	err error
}

func (r *Runner) Run(ctx context.Context, cmd ports.Command, src io.ReadSeeker, limit int64) (ports.Stats, error) {
	name := cmd.String()
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return ports.Stats{}, &RunError{Command: name, Op: ErrSeek, Err: err}
	}

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Stderr = r.Stderr
	stdin, err := c.StdinPipe()
	if err != nil {
		return ports.Stats{}, &RunError{Command: name, Op: ErrSpawn, Err: err}
	}
	stdout, err := c.StdoutPipe()
	if err != nil {
		return ports.Stats{}, &RunError{Command: name, Op: ErrSpawn, Err: err}
	}
	if err := c.Start(); err != nil {
		return ports.Stats{}, &RunError{Command: name, Op: ErrSpawn, Err: err}
	}

	start := time.Now()

	// The child may block writing output long before it has consumed all of
	// its input, so stdout must be drained while stdin is still being fed.
	drained := make(chan drainResult, 1)
	go func() {
		n, err := drain(stdout)
		drained <- drainResult{n: n, err: err}
	}()

	before, writeErr := feed(stdin, src, limit)

	// os/exec closes stdout in Wait, so the drain has to finish first.
	out := <-drained
	if err := c.Wait(); err != nil {
		code := UnknownExitCode
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return ports.Stats{}, &RunError{Command: name, Op: ErrProcessFailed, ExitCode: code, Err: err}
	}
	elapsed := time.Since(start)

	if writeErr != nil {
		return ports.Stats{}, &RunError{Command: name, Op: ErrWrite, Err: writeErr}
	}
	if out.err != nil {
		return ports.Stats{}, &RunError{Command: name, Op: ErrRead, Err: out.err}
	}

	slog.Debug("benchmark run finished",
		"command", name,
		"before", before,
		"after", out.n,
		"elapsed", elapsed,
	)

	return ports.Stats{
		Time:  elapsed,
		After: out.n,
		Ratio: Ratio(out.n, before),
	}, nil
}

// Ratio returns after as a percentage of before. It is NaN or +Inf when
// before is zero.
func Ratio(after, before int64) float64 {
	return float64(after) / float64(before) * 100
}

// feed copies at most limit bytes of src into stdin and always closes stdin,
// so the child sees end of input even when the copy fails.
func feed(stdin io.WriteCloser, src io.Reader, limit int64) (int64, error) {
	n, err := io.Copy(stdin, io.LimitReader(src, limit))
	if cerr := stdin.Close(); err == nil {
		err = cerr
	}
	return n, err
}

func drain(r io.Reader) (int64, error) {
	var total int64
	buf := make([]byte, drainBufSize)
	for {
		n, err := r.Read(buf)
		total += int64(n)
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}
