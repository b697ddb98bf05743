package engine

import (
	"errors"
	"fmt"
	"os"
)

// ErrPathConflict indicates the temp artifact path is occupied by a
// directory, which the engine refuses to overwrite.
var ErrPathConflict = errors.New("temp artifact path is a directory")

// artifact is the in-progress output file: a dotfile beside the final
// filtered path, renamed onto it only after the pass succeeds.
type artifact struct {
	final string
	tmp   string
	f     *os.File
}

// prepareArtifact claims the temp path, deleting a stale artifact left by a
// crashed run.
func prepareArtifact(final, tmp string) (*artifact, error) {
	if fi, err := os.Lstat(tmp); err == nil {
		if fi.IsDir() {
			return nil, fmt.Errorf("%w: %s", ErrPathConflict, tmp)
		}
		if err := os.Remove(tmp); err != nil {
			return nil, fmt.Errorf("removing stale artifact %s: %w", tmp, err)
		}
	}

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("creating artifact %s: %w", tmp, err)
	}

	return &artifact{final: final, tmp: tmp, f: f}, nil
}

// Commit publishes the artifact at the final path. The rename is the last
// step of a pass, after the input handle has been released.
func (a *artifact) Commit() error {
	if err := a.f.Close(); err != nil {
		return fmt.Errorf("closing artifact %s: %w", a.tmp, err)
	}
	if err := os.Rename(a.tmp, a.final); err != nil {
		return fmt.Errorf("publishing %s: %w", a.final, err)
	}
	return nil
}

// Discard abandons the artifact without touching the final path.
func (a *artifact) Discard() {
	a.f.Close()
	os.Remove(a.tmp)
}
