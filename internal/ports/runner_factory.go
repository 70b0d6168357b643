package ports

// RunnerFactory is the port for looking up the Runner that handles a command.
type RunnerFactory interface {
	// For returns a Runner for cmd, or an error if nothing can run it.
	For(cmd Command) (Runner, error)
}
