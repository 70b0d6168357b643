package ports

import "github.com/hailam/compbench/internal/utils"

// SizeParser parses human-readable size specs (like "10MiB") into bytes.
type SizeParser interface {
	Parse(spec string) (utils.ByteSize, error)
}
