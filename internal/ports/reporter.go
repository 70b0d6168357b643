package ports

import "io"

// Reporter renders benchmark results.
type Reporter interface {
	Report(w io.Writer, results []Result) error
}
