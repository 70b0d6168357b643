// Package builtin measures Go compression libraries in-process, so they can be
// compared side by side with external programs. Commands take the form
// "go:<codec>", e.g. "go:zstd" or "go:brotli-best".
package builtin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/hailam/compbench/internal/adapters/process"
	"github.com/hailam/compbench/internal/ports"
)

// Prefix marks a command as a built-in codec.
const Prefix = "go:"

var (
	ErrUnknownCodec = errors.New("unknown codec")
	ErrArguments    = errors.New("built-in codecs take no arguments")
)

// Codec wraps w in a compressing writer. Closing the writer flushes all
// output to w.
type Codec func(w io.Writer) (io.WriteCloser, error)

var codecs = map[string]Codec{
	"gzip": func(w io.Writer) (io.WriteCloser, error) {
		return gzip.NewWriterLevel(w, gzip.DefaultCompression)
	},
	"gzip-9": func(w io.Writer) (io.WriteCloser, error) {
		return gzip.NewWriterLevel(w, gzip.BestCompression)
	},
	"zstd": func(w io.Writer) (io.WriteCloser, error) {
		return zstd.NewWriter(w)
	},
	"zstd-best": func(w io.Writer) (io.WriteCloser, error) {
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	},
	"snappy": func(w io.Writer) (io.WriteCloser, error) {
		return snappy.NewBufferedWriter(w), nil
	},
	"brotli": func(w io.Writer) (io.WriteCloser, error) {
		return brotli.NewWriterLevel(w, brotli.DefaultCompression), nil
	},
	"brotli-best": func(w io.Writer) (io.WriteCloser, error) {
		return brotli.NewWriterLevel(w, brotli.BestCompression), nil
	},
}

// Codecs lists the available codec names, sorted.
func Codecs() []string {
	names := make([]string, 0, len(codecs))
	for name := range codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsBuiltin reports whether cmd names a built-in codec.
func IsBuiltin(cmd ports.Command) bool {
	return strings.HasPrefix(cmd.Name, Prefix)
}

type Runner struct{}

func New() ports.Runner {
	return &Runner{}
}

// Run has the same contract as the process runner, and reports failures with
// the same *process.RunError values. An unknown codec is reported as a spawn
// failure.
func (r *Runner) Run(ctx context.Context, cmd ports.Command, src io.ReadSeeker, limit int64) (ports.Stats, error) {
	name := cmd.String()
	codec, ok := codecs[strings.TrimPrefix(cmd.Name, Prefix)]
	if !ok || !IsBuiltin(cmd) {
		return ports.Stats{}, &process.RunError{Command: name, Op: process.ErrSpawn,
			Err: fmt.Errorf("%w %q (available: %s)", ErrUnknownCodec, cmd.Name, strings.Join(Codecs(), ", "))}
	}
	if len(cmd.Args) > 0 {
		return ports.Stats{}, &process.RunError{Command: name, Op: process.ErrSpawn, Err: ErrArguments}
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return ports.Stats{}, &process.RunError{Command: name, Op: process.ErrSeek, Err: err}
	}

	out := &byteCounter{}
	start := time.Now()

	enc, err := codec(out)
	if err != nil {
		return ports.Stats{}, &process.RunError{Command: name, Op: process.ErrSpawn, Err: err}
	}
	before, err := io.Copy(enc, &contextReader{ctx: ctx, r: io.LimitReader(src, limit)})
	if cerr := enc.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return ports.Stats{}, &process.RunError{Command: name, Op: process.ErrWrite, Err: err}
	}
	elapsed := time.Since(start)

	slog.Debug("benchmark run finished",
		"command", name,
		"before", before,
		"after", out.n,
		"elapsed", elapsed,
	)

	return ports.Stats{
		Time:  elapsed,
		After: out.n,
		Ratio: process.Ratio(out.n, before),
	}, nil
}

// byteCounter discards what is written to it and remembers how much.
type byteCounter struct {
	n int64
}

func (c *byteCounter) Write(p []byte) (int, error) {
	c.n += int64(len(p))
	return len(p), nil
}

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *contextReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}
