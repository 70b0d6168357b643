package application

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/hailam/compbench/internal/ports"
	"github.com/hailam/compbench/internal/utils"
)

// DefaultCommands are benchmarked when none are given.
var DefaultCommands = []string{"zstd", "xz", "xz --lzma2=dict=1536Mi,nice=273 -q"}

// DefaultLimit is how much of the file is fed to each compressor by default.
const DefaultLimit = "5MiB"

// Options describes one benchmark sweep.
type Options struct {
	File      string
	Limit     string // human-readable; "0" means the whole file
	Commands  []string
	Quiet     bool
	KeepGoing bool // collect failures instead of aborting on the first one
}

// BenchService runs every command against the same file, one after another,
// and optionally records the sweep.
type BenchService struct {
	factory  ports.RunnerFactory
	parser   ports.SizeParser
	progress ports.Progress
	store    ports.ResultStore
	metrics  ports.MetricsSink
	now      func() time.Time
}

// NewBenchService constructs a BenchService with the given factory, parser
// and progress reporter.
func NewBenchService(factory ports.RunnerFactory, parser ports.SizeParser, progress ports.Progress) *BenchService {
	return &BenchService{factory: factory, parser: parser, progress: progress, now: time.Now}
}

// WithStore makes Record save sweeps to store.
func (s *BenchService) WithStore(store ports.ResultStore) *BenchService {
	s.store = store
	return s
}

// WithMetrics makes Record export sweeps to sink.
func (s *BenchService) WithMetrics(sink ports.MetricsSink) *BenchService {
	s.metrics = sink
	return s
}

// ResolveLimit maps the zero limit to "no limit".
func ResolveLimit(limit utils.ByteSize) int64 {
	if limit == 0 {
		return math.MaxInt64
	}
	return int64(limit)
}

// Run measures each command in order. Results are returned in execution
// order. The first failure aborts the sweep unless opts.KeepGoing is set, in
// which case all failures are returned together alongside the results of the
// commands that succeeded.
func (s *BenchService) Run(ctx context.Context, opts Options) (ports.Run, error) {
	// 1. Parse the limit
	limitSpec := opts.Limit
	if limitSpec == "" {
		limitSpec = DefaultLimit
	}
	limit, err := s.parser.Parse(limitSpec)
	if err != nil {
		return ports.Run{}, fmt.Errorf("invalid limit '%s': %w", limitSpec, err)
	}

	// 2. Parse the commands up front so a typo fails before any work is done
	specs := opts.Commands
	if len(specs) == 0 {
		specs = DefaultCommands
	}
	cmds := make([]ports.Command, 0, len(specs))
	for _, spec := range specs {
		cmd, err := ports.ParseCommand(spec)
		if err != nil {
			return ports.Run{}, fmt.Errorf("invalid command %q: %w", spec, err)
		}
		cmds = append(cmds, cmd)
	}

	// 3. Open the source
	path, err := filepath.Abs(opts.File)
	if err != nil {
		return ports.Run{}, fmt.Errorf("resolve %s: %w", opts.File, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return ports.Run{}, fmt.Errorf("open %s: %w", opts.File, err)
	}
	defer f.Close()

	run := ports.Run{Timestamp: s.now(), File: path, Limit: limit}
	resolved := ResolveLimit(limit)
	slog.Debug("starting benchmark sweep", "file", path, "limit", limit.String(), "commands", len(cmds))

	// 4. Measure each command on the shared handle, strictly in sequence
	var failures *multierror.Error
	for i, cmd := range cmds {
		name := specs[i]
		stats, err := s.measure(ctx, cmd, name, f, resolved, opts.Quiet)
		if err != nil {
			err = fmt.Errorf("measuring %q: %w", name, err)
			if !opts.KeepGoing {
				return run, err
			}
			slog.Warn("benchmark failed, continuing", "command", name, "error", err)
			failures = multierror.Append(failures, err)
			continue
		}
		run.Results = append(run.Results, ports.Result{Command: name, Stats: stats})
	}
	return run, failures.ErrorOrNil()
}

func (s *BenchService) measure(ctx context.Context, cmd ports.Command, name string, f *os.File, limit int64, quiet bool) (ports.Stats, error) {
	if !quiet {
		s.progress.Start(name)
	}
	stats, err := s.runOne(ctx, cmd, f, limit)
	if !quiet {
		s.progress.Done(name, err)
	}
	return stats, err
}

func (s *BenchService) runOne(ctx context.Context, cmd ports.Command, f *os.File, limit int64) (ports.Stats, error) {
	runner, err := s.factory.For(cmd)
	if err != nil {
		return ports.Stats{}, err
	}
	return runner.Run(ctx, cmd, f, limit)
}

// Record saves run to the configured store and exports it to the configured
// metrics sink. When a previous sweep of the same file exists it returns the
// per-command comparison with it.
func (s *BenchService) Record(run ports.Run) ([]Comparison, error) {
	var comparisons []Comparison
	if s.store != nil {
		prev, err := s.store.LoadLatest(run.File)
		if err != nil {
			return nil, fmt.Errorf("load history: %w", err)
		}
		if prev != nil {
			comparisons = Compare(*prev, run)
		}
		if err := s.store.Save(run); err != nil {
			return nil, fmt.Errorf("save history: %w", err)
		}
	}
	if s.metrics != nil {
		if err := s.metrics.Export(run); err != nil {
			return comparisons, fmt.Errorf("export metrics: %w", err)
		}
	}
	return comparisons, nil
}

// SortByCompressedSize returns a copy of results ordered from the largest
// compressed output to the smallest.
func SortByCompressedSize(results []ports.Result) []ports.Result {
	sorted := append([]ports.Result(nil), results...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].After > sorted[j].After
	})
	return sorted
}
