package utils

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ByteSize is a signed count of bytes that parses from and prints as
// human-readable text like "5MiB" or "1.5G".
type ByteSize int64

var (
	ErrInvalidFormat      = errors.New("invalid size format")
	ErrNegativeNotAllowed = errors.New("value can't be negative")
	ErrUnrecognizedUnit   = errors.New("unrecognized unit")
	ErrValueTooLarge      = errors.New("value is too big")
)

// ParseError reports why a size string was rejected. Err is always one of the
// Err* sentinels above.
type ParseError struct {
	Input  string
	Err    error
	Reason string
}

func (e *ParseError) Error() string {
	msg := e.Err.Error()
	if e.Reason != "" {
		msg = e.Reason
	}
	return fmt.Sprintf("invalid size %q: %s", e.Input, msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Unit multipliers. Lower-case keys; lookups lower-case the suffix first.
var unitMultipliers = map[string]int64{
	"t": 1_000_000_000_000, "tb": 1_000_000_000_000,
	"ti": 1 << 40, "tib": 1 << 40,
	"g": 1_000_000_000, "gb": 1_000_000_000,
	"gi": 1 << 30, "gib": 1 << 30,
	"m": 1_000_000, "mb": 1_000_000,
	"mi": 1 << 20, "mib": 1 << 20,
	"k": 1_000, "kb": 1_000,
	"ki": 1 << 10, "kib": 1 << 10,
	"": 1, "b": 1,
}

// ParseSize parses strings like "500", "10K", "4MiB", "1.5Gi" into a number of
// bytes. Decimal units (K, M, G, T) are powers of 1000 and binary units (Ki,
// Mi, Gi, Ti) are powers of 1024; a trailing "B" is optional and case is
// ignored.
//
// A plain integer that does not fit saturates to math.MaxInt64, while a value
// with a unit that overflows fails with ErrValueTooLarge.
func ParseSize(sizeStr string) (ByteSize, error) {
	if sizeStr == "" {
		return 0, &ParseError{Input: sizeStr, Err: ErrInvalidFormat, Reason: "value can't be empty"}
	}
	if sizeStr[0] == '-' {
		return 0, &ParseError{Input: sizeStr, Err: ErrNegativeNotAllowed}
	}
	if !isDigit(rune(sizeStr[0])) && sizeStr[0] != '.' {
		return 0, &ParseError{Input: sizeStr, Err: ErrInvalidFormat, Reason: "value must start with a number"}
	}

	n, err := strconv.ParseUint(sizeStr, 10, 64)
	if err == nil {
		if n > math.MaxInt64 {
			return math.MaxInt64, nil
		}
		return ByteSize(n), nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt64, nil
	}

	i := strings.IndexFunc(sizeStr, func(r rune) bool {
		return r != '.' && !isDigit(r)
	})
	if i < 0 {
		f, err := parseMantissa(sizeStr, sizeStr)
		if err != nil {
			return 0, err
		}
		return truncate(f), nil
	}

	mantissa, err := parseMantissa(sizeStr, sizeStr[:i])
	if err != nil {
		return 0, err
	}
	unit := strings.ToLower(strings.TrimSpace(sizeStr[i:]))
	mult, ok := unitMultipliers[unit]
	if !ok {
		return 0, &ParseError{Input: sizeStr, Err: ErrUnrecognizedUnit}
	}

	bytes := mantissa * float64(mult)
	if bytes > math.MaxInt64 {
		return 0, &ParseError{Input: sizeStr, Err: ErrValueTooLarge}
	}
	return truncate(bytes), nil
}

// MustParseSize is like ParseSize but panics on error. Meant for constants.
func MustParseSize(sizeStr string) ByteSize {
	b, err := ParseSize(sizeStr)
	if err != nil {
		panic(err)
	}
	return b
}

func parseMantissa(input, s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, &ParseError{Input: input, Err: ErrInvalidFormat, Reason: "value does not contain a number"}
	}
	return f, nil
}

// truncate converts toward zero, clamping to the int64 range.
func truncate(f float64) ByteSize {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return ByteSize(f)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

var displayUnits = []struct {
	name  string
	bytes int64
}{
	{"GiB", 1 << 30},
	{"MiB", 1 << 20},
	{"KiB", 1 << 10},
}

// String renders the size with the largest binary unit not exceeding its
// magnitude, to at most two decimals: 1536 -> "1.5KiB", 1<<20 -> "1MiB".
// The unit is picked from the absolute value but the signed value is divided.
func (b ByteSize) String() string {
	n := int64(b)
	if n < 0 {
		n = -n
	}
	for _, u := range displayUnits {
		if n >= u.bytes {
			s := strconv.FormatFloat(float64(b)/float64(u.bytes), 'f', 2, 64)
			s = strings.TrimRight(s, "0")
			s = strings.TrimSuffix(s, ".")
			return s + u.name
		}
	}
	return strconv.FormatInt(n, 10) + "B"
}

// Bytes returns the raw byte count.
func (b ByteSize) Bytes() int64 { return int64(b) }

// Set implements pflag.Value.
func (b *ByteSize) Set(s string) error {
	v, err := ParseSize(s)
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// Type implements pflag.Value.
func (b *ByteSize) Type() string { return "size" }

// MarshalText writes the exact byte count; String is lossy.
func (b ByteSize) MarshalText() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(b), 10)), nil
}

func (b *ByteSize) UnmarshalText(text []byte) error {
	return b.Set(string(text))
}
