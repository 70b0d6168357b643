package factory

import (
	"fmt"

	"github.com/hailam/compbench/internal/adapters/builtin"
	"github.com/hailam/compbench/internal/ports"
)

// StaticRunnerFactory routes "go:" commands to the in-process codecs and
// everything else to an external process.
type StaticRunnerFactory struct {
	process ports.Runner
	builtin ports.Runner
}

// NewStaticRunnerFactory creates a factory over the given runners.
func NewStaticRunnerFactory(process, builtin ports.Runner) ports.RunnerFactory {
	return &StaticRunnerFactory{process: process, builtin: builtin}
}

// For returns the Runner that handles cmd.
func (f *StaticRunnerFactory) For(cmd ports.Command) (ports.Runner, error) {
	r := f.process
	if builtin.IsBuiltin(cmd) {
		r = f.builtin
	}
	if r == nil {
		return nil, fmt.Errorf("no runner configured for %q", cmd.Name)
	}
	return r, nil
}
