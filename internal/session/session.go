// Package session defines the immutable unit of work for one logpare run:
// the resolved source file, the selected mode, and the compiled filter
// rules, plus the paths derived from them.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound indicates the source file does not exist or is not a file.
var ErrNotFound = errors.New("source file not found")

// FilteredPrefix marks a file produced by a filter pass. If a file with
// this prefix already exists beside the source, it becomes the input of the
// next pass, so runs in different modes compose.
const FilteredPrefix = "filtered-"

// Mode selects which pipeline a session runs.
type Mode int

const (
	// ModeDefaultFilter strips NUL and CR bytes and collapses redundant
	// whitespace at the byte level.
	ModeDefaultFilter Mode = iota

	// ModeRuleFilter rejects lines matching user-supplied patterns.
	ModeRuleFilter

	// ModeReuseFilters rejects lines matching patterns loaded from the
	// saved-filters side file.
	ModeReuseFilters

	// ModeScan reports the most frequent line shapes without filtering.
	ModeScan
)

// String returns the mode name as shown to users.
func (m Mode) String() string {
	switch m {
	case ModeDefaultFilter:
		return "default-filter"
	case ModeRuleFilter:
		return "rule-filter"
	case ModeReuseFilters:
		return "reuse-filters"
	case ModeScan:
		return "scan"
	default:
		return "unknown"
	}
}

// Session is the immutable configuration of one run. It is constructed
// once, passed by value or pointer to every component, and never mutated.
type Session struct {
	// Source is the canonical absolute path of the user-named file.
	Source string

	// Mode selects the pipeline.
	Mode Mode

	// Rules is the ordered compiled rule sequence; empty for the default
	// filter and scan modes.
	Rules []*Rule
}

// New builds a session. Rules compile before any file I/O so a bad pattern
// fails fast; the source path must name an existing regular file and is
// resolved to canonical form.
func New(path string, mode Mode, ruleTexts []string) (*Session, error) {
	rules, err := CompileAll(ruleTexts)
	if err != nil {
		return nil, err
	}

	source, err := resolveSource(path)
	if err != nil {
		return nil, err
	}

	return &Session{Source: source, Mode: mode, Rules: rules}, nil
}

func resolveSource(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}

	fi, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if fi.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}

	if canonical, err := filepath.EvalSymlinks(abs); err == nil {
		abs = canonical
	}
	return abs, nil
}

// FilteredPath is where a filter pass publishes its output: the source's
// directory plus the marker-prefixed base name.
func (s *Session) FilteredPath() string {
	dir, base := filepath.Split(s.Source)
	return filepath.Join(dir, FilteredPrefix+base)
}

// InputPath is the file a pass actually reads. An existing filtered output
// takes precedence over the source, which is what makes chained filtering
// work.
func (s *Session) InputPath() string {
	filtered := s.FilteredPath()
	if fi, err := os.Stat(filtered); err == nil && fi.Mode().IsRegular() {
		return filtered
	}
	return s.Source
}

// TempPath is the in-progress artifact: a dotfile beside the filtered path,
// renamed onto it only on success.
func (s *Session) TempPath() string {
	dir, base := filepath.Split(s.FilteredPath())
	return filepath.Join(dir, "."+base)
}

// FiltersFilePath is the saved-filters side file, keyed off the canonical
// source even when a chained filtered file is the pass input.
func (s *Session) FiltersFilePath() string {
	return s.Source + "-filters-used.txt"
}

// SizeLogPath is the size-reduction audit file.
func (s *Session) SizeLogPath() string {
	return s.Source + "-size-reductions.txt"
}

// FilterTexts returns the human-readable filter list recorded after a
// successful run.
func (s *Session) FilterTexts() []string {
	if s.Mode == ModeDefaultFilter {
		return []string{"Default filters"}
	}
	texts := make([]string, len(s.Rules))
	for i, r := range s.Rules {
		texts[i] = r.Text
	}
	return texts
}
