package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hailam/compbench/internal/adapters/builtin"
	"github.com/hailam/compbench/internal/adapters/factory"
	"github.com/hailam/compbench/internal/adapters/metrics"
	"github.com/hailam/compbench/internal/adapters/process"
	"github.com/hailam/compbench/internal/adapters/progress"
	"github.com/hailam/compbench/internal/adapters/report"
	"github.com/hailam/compbench/internal/adapters/store"
	adapterutils "github.com/hailam/compbench/internal/adapters/utils"
	"github.com/hailam/compbench/internal/application"
	"github.com/hailam/compbench/internal/config"
	"github.com/hailam/compbench/internal/ports"
	"github.com/hailam/compbench/internal/telemetry"
	"github.com/hailam/compbench/internal/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	// Variables to hold flag values that viper does not own
	var cfgFile string
	limit := utils.MustParseSize(application.DefaultLimit)

	rootCmd := &cobra.Command{
		Use:   "compbench [flags] FILE [COMMAND...]",
		Short: "Calculate compressibility of a file using different programs.",
		Long: `compbench feeds the first N bytes of FILE to each compression COMMAND on
its standard input and reports the size of what comes out, the compression ratio
and the time taken. Results are sorted from the largest output to the smallest.

Each COMMAND is one argument, split on whitespace into the program and its
arguments (no quoting). Defaults: ` + quoteAll(application.DefaultCommands) + `.

Commands of the form go:<codec> run a Go implementation in-process instead of a
program. Available codecs: ` + strings.Join(builtin.Codecs(), ", ") + `.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			telemetry.InitLogger(cfg.Verbose, cmd.ErrOrStderr())

			reporter, err := report.New(cfg.Format)
			if err != nil {
				return err
			}

			// --- Composition Root: Initialize Adapters and Core Logic ---
			runnerFactory := factory.NewStaticRunnerFactory(process.New(cmd.ErrOrStderr()), builtin.New())
			sizeParser := adapterutils.NewUtilSizeParser()
			var prog ports.Progress = progress.Nop{}
			if !cfg.Quiet {
				prog = progress.NewLine(cmd.ErrOrStderr())
			}
			benchService := application.NewBenchService(runnerFactory, sizeParser, prog)
			if cfg.History != "" {
				historyStore, err := store.NewFileStore(cfg.History)
				if err != nil {
					return err
				}
				benchService.WithStore(historyStore)
			}
			if cfg.MetricsFile != "" {
				benchService.WithMetrics(metrics.NewTextfileSink(cfg.MetricsFile))
			}
			// --- End Composition Root ---

			commands := args[1:]
			if len(commands) == 0 {
				commands = cfg.Commands
			}

			// --- Execute Core Logic ---
			run, runErr := benchService.Run(cmd.Context(), application.Options{
				File:      args[0],
				Limit:     cfg.Limit,
				Commands:  commands,
				Quiet:     cfg.Quiet,
				KeepGoing: cfg.KeepGoing,
			})
			if runErr != nil && !cfg.KeepGoing {
				return runErr
			}
			if len(run.Results) == 0 {
				return runErr
			}

			if err := reporter.Report(cmd.OutOrStdout(), application.SortByCompressedSize(run.Results)); err != nil {
				return err
			}
			comparisons, err := benchService.Record(run)
			if err != nil {
				return err
			}
			if !cfg.Quiet {
				printComparisons(cmd.ErrOrStderr(), comparisons)
			}
			// --- End Execute Core Logic ---

			// Failures collected with --keep-going still fail the invocation
			return runErr
		},
	}

	// Define flags
	flags := rootCmd.Flags()
	flags.VarP(&limit, "limit", "n", "Test the first N bytes of the file (units like KiB, MB, GiB); 0 means the whole file")
	flags.BoolP("quiet", "q", false, "Do not print progress messages")
	flags.StringP("format", "f", "text", "Report format: "+strings.Join(report.Formats, ", "))
	flags.String("history", "", "Append results to this JSON history file and compare with the previous run")
	flags.String("metrics-file", "", "Write results as Prometheus metrics to this textfile")
	flags.Bool("keep-going", false, "Keep measuring the remaining commands when one fails")
	flags.BoolP("verbose", "v", false, "Enable debug logging")
	flags.StringVar(&cfgFile, "config", "", "Config file (default ./compbench.yaml)")

	return rootCmd
}

func printComparisons(w io.Writer, comparisons []application.Comparison) {
	if len(comparisons) == 0 {
		return
	}
	fmt.Fprintln(w, "compared with the previous run:")
	for _, c := range comparisons {
		fmt.Fprintf(w, "  %s\n", c)
	}
}

func quoteAll(ss []string) string {
	quoted := make([]string, len(ss))
	for i, s := range ss {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(quoted, ", ")
}
