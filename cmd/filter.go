package cmd

import (
	"github.com/spf13/cobra"

	"github.com/logpare/logpare/internal/session"
)

var filterCmd = &cobra.Command{
	Use:   "filter <pattern> [<pattern>...] <file>",
	Short: "Remove lines matching regex patterns",
	Long: `Drop every line that matches any of the given patterns and write the
remainder to filtered-<file> beside the source.

Patterns match anywhere in the line (unanchored), against a copy with
trailing whitespace trimmed. A bare pattern is wrapped in /.../ delimiters;
an already-delimited pattern may carry trailing flags (e.g. /error/i). The
token $ip$ expands to a dotted-quad IPv4 pattern.

Examples:
  logpare filter ERROR /var/log/app.log
  logpare filter '/timeout/i' app.log
  logpare filter '$ip$ refused' 'DEBUG' app.log`,
	Args: cobra.MinimumNArgs(2),
	RunE: runFilter,
}

func init() {
	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, args []string) error {
	patterns := args[:len(args)-1]
	file := args[len(args)-1]

	sess, err := session.New(file, session.ModeRuleFilter, patterns)
	if err != nil {
		return err
	}
	return runFilterSession(cmd, sess)
}
