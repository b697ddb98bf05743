package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/logpare/logpare/internal/engine"
	"github.com/logpare/logpare/internal/session"
	"github.com/logpare/logpare/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] <file>",
	Short: "Keep the filtered copy current as the source grows",
	Long: `Run a filter pass, then watch the source file and re-run the pass after
every change. Without --pattern the default byte filters apply; with one or
more --pattern flags the matching lines are removed instead.

Every pass re-reads the full source so the filtered copy always reflects
the current file. Stop with Ctrl-C.

Examples:
  logpare watch /var/log/app.log
  logpare watch --pattern DEBUG --pattern '/health.?check/i' app.log`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringArrayP("pattern", "p", nil, "drop lines matching this pattern (repeatable)")
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "quiet period before re-running after a change")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	patterns, _ := cmd.Flags().GetStringArray("pattern")
	debounce, _ := cmd.Flags().GetDuration("debounce")

	mode := session.ModeDefaultFilter
	if len(patterns) > 0 {
		mode = session.ModeRuleFilter
	}

	sess, err := session.New(args[0], mode, patterns)
	if err != nil {
		return err
	}

	runPass := func() error {
		// Always re-read the source, not the chained filtered copy, so
		// growth in the source reaches the output.
		res, err := engine.RunFrom(sess, sess.Source, engineOptions(nil))
		if err != nil {
			return err
		}
		reportFilterResult(cmd, sess, res)
		return nil
	}

	if err := runPass(); err != nil {
		return err
	}

	watcher := watch.New(watch.Options{
		FilePath: sess.Source,
		Debounce: debounce,
		OnChange: runPass,
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		errChan <- watcher.Run(ctx)
	}()

	select {
	case <-sigChan:
		cancel()
		select {
		case <-errChan:
		case <-time.After(2 * time.Second):
		}
		return nil
	case err := <-errChan:
		return err
	}
}
