package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/logpare/logpare/internal/config"
	"github.com/logpare/logpare/internal/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "logpare",
	Short: "A streaming log file reducer",
	Long: `Logpare pares noisy log files down before analysis or storage.

It streams the source in bounded chunks and writes a filtered copy next to
it, named filtered-<source>. Re-running picks up the filtered copy as its
input, so passes in different modes compose.

Examples:
  logpare clean /var/log/app.log
  logpare filter ERROR /var/log/app.log
  logpare filter '$ip$ timeout' 'WARN' /var/log/app.log
  logpare reuse /var/log/app.log
  logpare scan /var/log/app.log`,
	SilenceUsage: true,
}

// Execute is called by main.main(). It runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.logpare.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".logpare")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("LOGPARE")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("verbose", false)
	viper.SetDefault("chunk_size", config.DefaultChunkSize)
	viper.SetDefault("max_line_length", config.DefaultMaxLineLength)
	viper.SetDefault("scan_top", config.DefaultScanTop)
	viper.SetDefault("llm.provider", "ollama")
	viper.SetDefault("llm.temperature", 0)
	viper.SetDefault("llm.ollama.host", "http://localhost:11434")
	viper.SetDefault("llm.ollama.model", "llama3.2")

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}

	logger.Initialize(viper.GetBool("verbose"))
}
