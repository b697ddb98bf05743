package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/logpare/logpare/internal/chunk"
	"github.com/logpare/logpare/internal/config"
	"github.com/logpare/logpare/internal/logger"
	"github.com/logpare/logpare/internal/progress"
	"github.com/logpare/logpare/internal/scan"
	"github.com/logpare/logpare/internal/session"
)

var scanCmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "Report the most frequent line shapes",
	Long: `Group lines by shape (the offsets of their spaces) and print the most
frequent groups with a representative example each. Nothing is removed;
the report helps spot noisy line families worth filtering.

Examples:
  logpare scan /var/log/app.log
  logpare scan --top 5 app.log`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().Int("top", 0, "number of groups to report (default from scan_top config)")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	sess, err := session.New(args[0], session.ModeScan, nil)
	if err != nil {
		return err
	}

	top, _ := cmd.Flags().GetInt("top")
	if top <= 0 {
		top = viper.GetInt("scan_top")
	}
	if top <= 0 {
		top = config.DefaultScanTop
	}

	ag, incomplete, err := aggregateShapes(cmd, sess)
	if err != nil {
		return err
	}
	if ag == nil {
		// Empty source: nothing to scan, not an error.
		return nil
	}
	if incomplete {
		logger.Warn("read ended before end of file, report may be incomplete",
			"file", sess.InputPath())
	}

	return ag.Report(cmd.OutOrStdout(), top)
}

// aggregateShapes streams the session input through a scan aggregator. A
// nil aggregator with nil error means the file was empty.
func aggregateShapes(cmd *cobra.Command, sess *session.Session) (*scan.Aggregator, bool, error) {
	meter := progress.New(cmd.ErrOrStderr())
	defer meter.Done()

	reader, err := chunk.Open(sess.InputPath(), chunk.Options{
		ChunkSize:     viper.GetInt("chunk_size"),
		MaxLineLength: viper.GetInt("max_line_length"),
		Progress:      meter.Update,
	})
	if errors.Is(err, chunk.ErrEmptyFile) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is empty, nothing to scan.\n", sess.InputPath())
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer reader.Close()

	ag := scan.NewAggregator()
	if err := reader.Lines(func(line []byte) error {
		ag.Add(line)
		return nil
	}); err != nil {
		return nil, false, err
	}

	return ag, reader.Incomplete(), nil
}
