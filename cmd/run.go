package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/logpare/logpare/internal/engine"
	"github.com/logpare/logpare/internal/logger"
	"github.com/logpare/logpare/internal/progress"
	"github.com/logpare/logpare/internal/session"
	"github.com/logpare/logpare/internal/sidecar"
)

// engineOptions builds the pass options from configuration, optionally
// wiring a progress meter in.
func engineOptions(meter *progress.Meter) engine.Options {
	opts := engine.Options{
		ChunkSize:     viper.GetInt("chunk_size"),
		MaxLineLength: viper.GetInt("max_line_length"),
	}
	if meter != nil {
		opts.Progress = meter.Update
	}
	return opts
}

// runFilterSession executes a filter pass and its follow-up reporting. All
// three filter commands funnel through here.
func runFilterSession(cmd *cobra.Command, sess *session.Session) error {
	meter := progress.New(cmd.ErrOrStderr())
	res, err := engine.Run(sess, engineOptions(meter))
	meter.Done()
	if err != nil {
		return err
	}

	reportFilterResult(cmd, sess, res)
	return nil
}

// reportFilterResult appends the sidecar records and prints the summary.
// Sidecar write failures are warnings; the committed output stands.
func reportFilterResult(cmd *cobra.Command, sess *session.Session, res *engine.Result) {
	if res.Incomplete {
		logger.Warn("read ended before end of file, output may be incomplete",
			"file", res.Input)
	}

	if err := sidecar.AppendFilters(sess.FiltersFilePath(), sess.FilterTexts()); err != nil {
		logger.Warn("could not record filters used", "error", err)
	}
	if err := sidecar.AppendSizeReduction(sess.SizeLogPath(), res.BytesRemoved); err != nil {
		logger.Warn("could not record size reduction", "error", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Filtered out %d bytes.\n", res.BytesRemoved)
}
