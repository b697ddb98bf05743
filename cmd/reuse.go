package cmd

import (
	"github.com/spf13/cobra"

	"github.com/logpare/logpare/internal/session"
	"github.com/logpare/logpare/internal/sidecar"
)

var reuseCmd = &cobra.Command{
	Use:   "reuse <file>",
	Short: "Re-apply the filters recorded for a file",
	Long: `Load the patterns recorded in <file>-filters-used.txt by earlier filter
runs and apply them again. Each recorded line goes through the same
normalization as a command-line pattern.

A missing or empty record file is an error: there is nothing to reuse.

Examples:
  logpare reuse /var/log/app.log`,
	Args: cobra.ExactArgs(1),
	RunE: runReuse,
}

func init() {
	rootCmd.AddCommand(reuseCmd)
}

func runReuse(cmd *cobra.Command, args []string) error {
	// Resolve the source first; the record file is keyed off the canonical
	// path.
	base, err := session.New(args[0], session.ModeReuseFilters, nil)
	if err != nil {
		return err
	}

	texts, err := sidecar.ReadFilters(base.FiltersFilePath())
	if err != nil {
		return err
	}

	sess, err := session.New(base.Source, session.ModeReuseFilters, texts)
	if err != nil {
		return err
	}
	return runFilterSession(cmd, sess)
}
