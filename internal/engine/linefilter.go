package engine

import (
	"bufio"
	"bytes"
	"fmt"

	"github.com/logpare/logpare/internal/session"
)

// linePredicate decides whether a line is dropped. The variant is chosen
// once at setup so the per-line loop carries no rule-count branching beyond
// the variant's own shape.
type linePredicate interface {
	drop(trimmed []byte) bool
}

type noopPredicate struct{}

func (noopPredicate) drop([]byte) bool { return false }

type singleRule struct {
	rule *session.Rule
}

func (p singleRule) drop(line []byte) bool {
	return p.rule.Match(line)
}

type multiRule struct {
	rules []*session.Rule
}

func (p multiRule) drop(line []byte) bool {
	for _, r := range p.rules {
		if r.Match(line) {
			return true
		}
	}
	return false
}

func newLinePredicate(rules []*session.Rule) linePredicate {
	switch len(rules) {
	case 0:
		return noopPredicate{}
	case 1:
		return singleRule{rule: rules[0]}
	default:
		return multiRule{rules: rules}
	}
}

// lineFilter writes kept lines verbatim, terminators included. Matching
// runs against a trailing-trimmed view of the line; the written bytes are
// untouched.
type lineFilter struct {
	w    *bufio.Writer
	pred linePredicate
	n    int64
}

func newLineFilter(w *bufio.Writer, rules []*session.Rule) *lineFilter {
	return &lineFilter{w: w, pred: newLinePredicate(rules)}
}

func (f *lineFilter) filter(line []byte) error {
	trimmed := bytes.TrimRight(line, " \t\r\n")
	if f.pred.drop(trimmed) {
		return nil
	}

	n, err := f.w.Write(line)
	f.n += int64(n)
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func (f *lineFilter) written() int64 {
	return f.n
}
