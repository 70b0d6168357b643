package utils

import (
	"io"
	"math/rand/v2"
)

const fillBufSize = 64 * 1024

// WriteRandomBytes writes n pseudo-random bytes to w. The same seed always
// yields the same bytes, which keeps benchmark fixtures reproducible.
// Random data is effectively incompressible.
func WriteRandomBytes(w io.Writer, n int64, seed uint64) error {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return fill(w, n, func(buf []byte) {
		for i := range buf {
			buf[i] = byte(r.UintN(256))
		}
	})
}

// WriteTextBytes writes n bytes of printable ASCII words separated by spaces
// and newlines, a stand-in for log-like, compressible input.
func WriteTextBytes(w io.Writer, n int64, seed uint64) error {
	r := rand.New(rand.NewPCG(seed, seed))
	words := []string{"alpha", "beta", "gamma", "delta", "error", "info", "debug", "request", "200", "404"}
	var pending []byte
	return fill(w, n, func(buf []byte) {
		for i := range buf {
			if len(pending) == 0 {
				pending = append(pending, words[r.IntN(len(words))]...)
				if r.IntN(8) == 0 {
					pending = append(pending, '\n')
				} else {
					pending = append(pending, ' ')
				}
			}
			buf[i] = pending[0]
			pending = pending[1:]
		}
	})
}

func fill(w io.Writer, n int64, gen func([]byte)) error {
	buf := make([]byte, fillBufSize)
	var written int64
	for written < n {
		toWrite := fillBufSize
		if n-written < int64(fillBufSize) {
			toWrite = int(n - written)
		}
		gen(buf[:toWrite])
		if _, err := w.Write(buf[:toWrite]); err != nil {
			return err
		}
		written += int64(toWrite)
	}
	return nil
}
