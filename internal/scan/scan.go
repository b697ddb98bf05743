// Package scan aggregates line shapes and reports the most frequent ones.
//
// Two lines have the same shape when their space characters sit at the same
// offsets; the line text between the spaces is ignored. This surfaces noisy
// families of log lines (same layout, varying payload) without any format
// knowledge.
package scan

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Signature derives the grouping key of a line: each space offset followed
// by a dash, e.g. "a b c" yields "1-3-".
func Signature(line []byte) string {
	var sb strings.Builder
	for i, b := range line {
		if b == ' ' {
			sb.WriteString(strconv.Itoa(i))
			sb.WriteByte('-')
		}
	}
	return sb.String()
}

type group struct {
	example string
	count   int
}

// Aggregator maintains the signature frequency table. Entries are inserted
// or incremented one line at a time and never removed.
type Aggregator struct {
	groups map[string]*group
	lines  int64
}

// NewAggregator returns an empty frequency table.
func NewAggregator() *Aggregator {
	return &Aggregator{groups: make(map[string]*group)}
}

// Add records one line, retaining the first line seen per signature as the
// group's representative example.
func (a *Aggregator) Add(line []byte) {
	a.lines++

	trimmed := bytes.TrimRight(line, "\r\n")
	sig := Signature(trimmed)

	if g, ok := a.groups[sig]; ok {
		g.count++
		return
	}
	a.groups[sig] = &group{example: string(trimmed), count: 1}
}

// Lines is the number of lines recorded.
func (a *Aggregator) Lines() int64 {
	return a.lines
}

// Row is one entry of the ranked summary.
type Row struct {
	Count   int
	Example string
}

// Top returns up to n groups by descending count. Tie order between equal
// counts is unspecified.
func (a *Aggregator) Top(n int) []Row {
	rows := make([]Row, 0, len(a.groups))
	for _, g := range a.groups {
		rows = append(rows, Row{Count: g.count, Example: g.example})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})

	if n >= 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

// Report renders the two-column summary: right-justified counts, sized to
// the largest count's digits, then the representative line.
func (a *Aggregator) Report(w io.Writer, topN int) error {
	if a.lines == 0 {
		_, err := fmt.Fprintln(w, "No lines found.")
		return err
	}

	rows := a.Top(topN)
	width := len(strconv.Itoa(rows[0].Count))
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%*d %s\n", width, row.Count, row.Example); err != nil {
			return err
		}
	}
	return nil
}
