package cmd

import (
	"fmt"
	"strings"

	"github.com/logpare/logpare/internal/scan"
)

// buildSuggestSystemPrompt creates the system prompt for the suggest
// command. The model should return patterns a user can paste into
// 'logpare filter', nothing more.
func buildSuggestSystemPrompt() string {
	return `You are a log triage assistant. You are given the most frequent line
shapes of a log file, each with an occurrence count and one example line.
Propose regular expression patterns that would remove the lines that look
like routine noise (health checks, heartbeats, periodic status output)
while keeping anything that could indicate a problem.

Guidelines:
- Propose at most one pattern per line shape, only for shapes that are noise
- Patterns are matched unanchored against each line
- Prefer literal fragments over broad wildcards so no real errors are lost
- For each pattern, give a one-line reason
- If nothing looks like noise, say so instead of inventing patterns`
}

// buildSuggestUserPrompt renders the scan result for the model.
func buildSuggestUserPrompt(file string, totalLines int64, rows []scan.Row) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "File: %s (%d lines scanned)\n\n", file, totalLines)
	sb.WriteString("Most frequent line shapes:\n")
	for _, row := range rows {
		fmt.Fprintf(&sb, "%d occurrences: %s\n", row.Count, row.Example)
	}
	sb.WriteString("\nWhich filter patterns do you suggest?")

	return sb.String()
}
