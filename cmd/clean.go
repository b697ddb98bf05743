package cmd

import (
	"github.com/spf13/cobra"

	"github.com/logpare/logpare/internal/session"
)

var cleanCmd = &cobra.Command{
	Use:   "clean <file>",
	Short: "Strip null bytes and collapse redundant whitespace",
	Long: `Run the default byte-level filters: null bytes and carriage returns are
removed, and runs of blanks or of newlines collapse to a single character.

The result is written to filtered-<file> beside the source. Running clean a
second time on its own output removes nothing further.

Examples:
  logpare clean /var/log/app.log
  logpare clean exported.log`,
	Args: cobra.ExactArgs(1),
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	sess, err := session.New(args[0], session.ModeDefaultFilter, nil)
	if err != nil {
		return err
	}
	return runFilterSession(cmd, sess)
}
