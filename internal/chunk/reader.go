// Package chunk reads a source file as a bounded-memory stream of either
// raw byte chunks or newline-delimited line pieces, reporting progress as
// it goes.
package chunk

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/logpare/logpare/internal/config"
)

// ErrEmptyFile indicates the source holds less than one byte. Filter modes
// treat it as fatal; scan mode treats it as "nothing to do".
var ErrEmptyFile = errors.New("file is empty")

// ProgressFunc receives the running byte count after each yielded unit.
type ProgressFunc func(consumed, total int64)

// Options configures a Reader. Zero values fall back to the config
// defaults.
type Options struct {
	// ChunkSize bounds raw byte chunks yielded by Chunks.
	ChunkSize int

	// MaxLineLength bounds line pieces yielded by Lines. A longer token is
	// split across multiple pieces rather than failing.
	MaxLineLength int

	// Progress, if set, is called after every yielded unit.
	Progress ProgressFunc
}

// Reader streams one open file. Each traversal restarts from the beginning
// of the file; the handle stays open until Close.
type Reader struct {
	path       string
	f          *os.File
	size       int64
	chunkSize  int
	maxLine    int
	progress   ProgressFunc
	consumed   int64
	incomplete bool
}

// Open opens path for reading and verifies it holds at least one byte.
func Open(path string, opts Options) (*Reader, error) {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = config.DefaultChunkSize
	}
	if opts.MaxLineLength <= 0 {
		opts.MaxLineLength = config.DefaultMaxLineLength
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if fi.Size() < 1 {
		f.Close()
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	return &Reader{
		path:      path,
		f:         f,
		size:      fi.Size(),
		chunkSize: opts.ChunkSize,
		maxLine:   opts.MaxLineLength,
		progress:  opts.Progress,
	}, nil
}

// Size is the file size recorded at open time.
func (r *Reader) Size() int64 {
	return r.size
}

// Incomplete reports whether the last traversal stopped before a genuine
// end-of-file. Callers downgrade this to a warning; partial output is still
// useful.
func (r *Reader) Incomplete() bool {
	return r.incomplete
}

// Close releases the file handle.
func (r *Reader) Close() error {
	return r.f.Close()
}

// Chunks yields fixed-size raw byte chunks. The slice passed to fn is only
// valid for the duration of the call.
func (r *Reader) Chunks(fn func(chunk []byte) error) error {
	if err := r.restart(); err != nil {
		return err
	}

	buf := make([]byte, r.chunkSize)
	for {
		n, err := r.f.Read(buf)
		if n > 0 {
			r.consumed += int64(n)
			if cbErr := fn(buf[:n]); cbErr != nil {
				return cbErr
			}
			r.report()
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			// Mid-read stall: stop here, flag the scan as incomplete.
			r.incomplete = true
			return nil
		}
	}

	r.verifyEOF()
	return nil
}

// Lines yields newline-delimited pieces including their terminator bytes.
// A line longer than the configured maximum arrives as several pieces, all
// but the last without a terminator. The slice passed to fn is only valid
// for the duration of the call.
func (r *Reader) Lines(fn func(line []byte) error) error {
	if err := r.restart(); err != nil {
		return err
	}

	br := bufio.NewReaderSize(r.f, r.maxLine)
	for {
		line, err := br.ReadSlice('\n')
		if len(line) > 0 {
			r.consumed += int64(len(line))
			if cbErr := fn(line); cbErr != nil {
				return cbErr
			}
			r.report()
		}

		switch {
		case err == nil, errors.Is(err, bufio.ErrBufferFull):
			continue
		case err == io.EOF:
			r.verifyEOF()
			return nil
		default:
			r.incomplete = true
			return nil
		}
	}
}

func (r *Reader) restart() error {
	r.consumed = 0
	r.incomplete = false
	if _, err := r.f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding %s: %w", r.path, err)
	}
	return nil
}

func (r *Reader) report() {
	if r.progress != nil {
		r.progress(r.consumed, r.size)
	}
}

// verifyEOF checks that exhaustion really was end-of-file: every byte of
// the recorded size consumed and the handle confirming EOF on a final read.
func (r *Reader) verifyEOF() {
	if r.consumed != r.size {
		r.incomplete = true
		return
	}
	var one [1]byte
	if n, err := r.f.Read(one[:]); n > 0 || err != io.EOF {
		r.incomplete = true
	}
}
