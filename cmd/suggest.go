package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/logpare/logpare/internal/config"
	"github.com/logpare/logpare/internal/llm"
	"github.com/logpare/logpare/internal/session"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <file>",
	Short: "Ask an LLM to propose filter patterns from a scan",
	Long: `Scan the file for its most frequent line shapes, then ask the configured
LLM which of them look like noise and what filter patterns would remove
them. The suggestions are starting points for 'logpare filter'; nothing is
filtered by this command.

Requires a running LLM provider (by default Ollama at localhost:11434).

Examples:
  logpare suggest /var/log/app.log
  logpare suggest --top 5 app.log`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

// newSuggestProvider builds the LLM provider; tests swap it out.
var newSuggestProvider = func(cfg *config.Config) (llm.Provider, error) {
	return llm.NewProvider(cfg)
}

func init() {
	suggestCmd.Flags().Int("top", 0, "number of line shapes to send (default from scan_top config)")

	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
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
		return nil
	}
	_ = incomplete // a partial sample is still a usable sample

	rows := ag.Top(top)
	if len(rows) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No lines found.")
		return nil
	}

	cfg := &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Normalize()

	provider, err := newSuggestProvider(cfg)
	if err != nil {
		return fmt.Errorf("failed to create LLM provider: %w", err)
	}

	ctx := cmd.Context()
	if err := provider.Heartbeat(ctx); err != nil {
		return fmt.Errorf("cannot reach LLM provider at %s: %w\n\nStart Ollama with: ollama serve",
			cfg.LLM.Ollama.Host, err)
	}

	messages := []llm.Message{
		{Role: "system", Content: buildSuggestSystemPrompt()},
		{Role: "user", Content: buildSuggestUserPrompt(sess.InputPath(), ag.Lines(), rows)},
	}

	resp, err := provider.Chat(ctx, messages, &llm.ChatOptions{
		Model:       cfg.LLM.Ollama.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(resp.Content))
	return nil
}
