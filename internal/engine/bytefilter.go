package engine

import (
	"bufio"
	"fmt"
)

// byteFilter strips NUL and CR bytes and collapses redundant whitespace
// runs. Its only state is the last byte emitted, carried across chunk
// boundaries so the semantics do not depend on chunk size.
type byteFilter struct {
	w    *bufio.Writer
	last byte
	n    int64
}

func newByteFilter(w *bufio.Writer) *byteFilter {
	return &byteFilter{w: w}
}

func (f *byteFilter) filter(chunk []byte) error {
	for _, b := range chunk {
		if b == 0x00 || b == '\r' {
			continue
		}
		if redundantPair(f.last, b) {
			continue
		}
		if err := f.w.WriteByte(b); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		f.last = b
		f.n++
	}
	return nil
}

func (f *byteFilter) written() int64 {
	return f.n
}

// redundantPair keeps the blank-run and newline-run checks separate: two
// blanks collapse, two newlines collapse, but a blank followed by a newline
// (or the reverse) passes through unchanged.
func redundantPair(prev, b byte) bool {
	if isBlank(prev) && isBlank(b) {
		return true
	}
	return prev == '\n' && b == '\n'
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t'
}
