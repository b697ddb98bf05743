// Package sidecar maintains the two audit files written beside a filtered
// source: the saved-filters history and the size-reduction log. Write
// failures here are reported to the caller but never abort a run.
package sidecar

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoFilters indicates the saved-filters file is missing or holds no
// usable lines. Fatal for the reuse mode, which has nothing to run without
// it.
var ErrNoFilters = errors.New("no saved filters")

// AppendFilters records the filter texts of a successful run as a
// human-readable block.
func AppendFilters(path string, filters []string) error {
	block := "Filters used:\n" + strings.Join(filters, "\n") + "\n\n"
	return appendTo(path, block)
}

// AppendSizeReduction records one summary line per successful run.
func AppendSizeReduction(path string, bytesRemoved int64) error {
	return appendTo(path, fmt.Sprintf("Filtered out %d bytes.\n", bytesRemoved))
}

// ReadFilters loads previously recorded filter texts. Empty lines are
// ignored; every other line, headers included, comes back verbatim for
// re-normalization by the caller.
func ReadFilters(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoFilters, path)
	}

	var filters []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		filters = append(filters, line)
	}

	if len(filters) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrNoFilters, path)
	}
	return filters, nil
}

func appendTo(path, text string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(text); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
