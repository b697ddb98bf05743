// Package config provides configuration types and helpers for logpare.
package config

// Config holds the application-wide configuration.
type Config struct {
	Verbose       bool      `mapstructure:"verbose"`
	ChunkSize     int       `mapstructure:"chunk_size"`
	MaxLineLength int       `mapstructure:"max_line_length"`
	ScanTop       int       `mapstructure:"scan_top"`
	LLM           LLMConfig `mapstructure:"llm"`
}

// Defaults for the streaming pipeline. A chunk and a line share the same
// bound so byte and line passes have the same worst-case buffer footprint.
const (
	DefaultChunkSize     = 64 * 1024
	DefaultMaxLineLength = 64 * 1024
	DefaultScanTop       = 10
)

// LLMConfig holds configuration for the suggest command's LLM provider.
type LLMConfig struct {
	// Provider selects which LLM to use. Only "ollama" is supported.
	Provider string `mapstructure:"provider"`

	// Global settings applied to all providers
	Temperature float32 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`

	Ollama OllamaConfig `mapstructure:"ollama"`
}

// OllamaConfig holds Ollama-specific settings.
type OllamaConfig struct {
	Host      string `mapstructure:"host"`       // API endpoint
	Model     string `mapstructure:"model"`      // Default model name
	KeepAlive string `mapstructure:"keep_alive"` // e.g., "5m"
}

// Normalize fills in zero values with the package defaults.
func (c *Config) Normalize() {
	if c.ChunkSize <= 0 {
		c.ChunkSize = DefaultChunkSize
	}
	if c.MaxLineLength <= 0 {
		c.MaxLineLength = DefaultMaxLineLength
	}
	if c.ScanTop <= 0 {
		c.ScanTop = DefaultScanTop
	}
}
