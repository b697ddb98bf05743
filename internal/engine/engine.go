// Package engine runs the filter modes: one streaming pass from the input
// file into a temp artifact, atomically published on success.
package engine

import (
	"bufio"
	"fmt"

	"github.com/logpare/logpare/internal/chunk"
	"github.com/logpare/logpare/internal/session"
)

// Options tunes the streaming pass.
type Options struct {
	// ChunkSize and MaxLineLength bound the reader; zero uses the config
	// defaults.
	ChunkSize     int
	MaxLineLength int

	// Progress, if set, receives byte counts during the pass.
	Progress chunk.ProgressFunc
}

// Result summarizes a completed filter pass.
type Result struct {
	// Input is the file the pass actually read (the source, or an existing
	// filtered file when chaining).
	Input string

	// Output is the published filtered path.
	Output string

	// BytesRemoved is input size minus output size.
	BytesRemoved int64

	// Incomplete is set when the reader could not confirm a genuine EOF.
	// Callers report it as a warning; the output is still committed.
	Incomplete bool
}

type pass interface {
	run(r *chunk.Reader) error
	written() int64
}

type bytePass struct{ *byteFilter }

func (p bytePass) run(r *chunk.Reader) error { return r.Chunks(p.filter) }

type linePass struct{ *lineFilter }

func (p linePass) run(r *chunk.Reader) error { return r.Lines(p.filter) }

// Run executes the session's filter mode against its chained input.
func Run(sess *session.Session, opts Options) (*Result, error) {
	return RunFrom(sess, sess.InputPath(), opts)
}

// RunFrom executes the session's filter mode against an explicit input
// file. Watch mode uses this to re-read the original source on every
// trigger instead of chaining onto its own output.
func RunFrom(sess *session.Session, input string, opts Options) (*Result, error) {
	reader, err := chunk.Open(input, chunk.Options{
		ChunkSize:     opts.ChunkSize,
		MaxLineLength: opts.MaxLineLength,
		Progress:      opts.Progress,
	})
	if err != nil {
		return nil, err
	}

	art, err := prepareArtifact(sess.FilteredPath(), sess.TempPath())
	if err != nil {
		reader.Close()
		return nil, err
	}

	w := bufio.NewWriter(art.f)
	p, err := newPass(sess, w)
	if err != nil {
		reader.Close()
		art.Discard()
		return nil, err
	}

	passErr := p.run(reader)
	if passErr == nil {
		passErr = w.Flush()
	}
	incomplete := reader.Incomplete()

	// The input handle is released before the artifact is published.
	closeErr := reader.Close()

	if passErr != nil {
		art.Discard()
		return nil, passErr
	}
	if closeErr != nil {
		art.Discard()
		return nil, fmt.Errorf("closing %s: %w", input, closeErr)
	}

	if err := art.Commit(); err != nil {
		return nil, err
	}

	return &Result{
		Input:        input,
		Output:       sess.FilteredPath(),
		BytesRemoved: reader.Size() - p.written(),
		Incomplete:   incomplete,
	}, nil
}

func newPass(sess *session.Session, w *bufio.Writer) (pass, error) {
	switch sess.Mode {
	case session.ModeDefaultFilter:
		return bytePass{newByteFilter(w)}, nil
	case session.ModeRuleFilter, session.ModeReuseFilters:
		return linePass{newLineFilter(w, sess.Rules)}, nil
	default:
		return nil, fmt.Errorf("mode %s is not a filter mode", sess.Mode)
	}
}
