// Package llm provides the abstraction over the language model used by the
// suggest command.
//
// The Provider interface keeps the consuming code independent of a concrete
// backend; only Ollama is implemented.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/logpare/logpare/internal/config"
	"github.com/logpare/logpare/internal/llm/ollama"
)

// Provider defines the interface for LLM interactions. Implementations
// must be safe for concurrent use.
type Provider interface {
	// Chat sends messages and returns a complete response. The context can
	// be used to cancel the request.
	Chat(ctx context.Context, messages []Message, opts *ChatOptions) (*Response, error)

	// Heartbeat checks if the provider is reachable and healthy.
	Heartbeat(ctx context.Context) error
}

// Message represents a single message in a conversation.
type Message struct {
	// Role identifies the message sender: "system", "user", or "assistant"
	Role string

	// Content is the message text
	Content string
}

// ChatOptions configures chat behavior. Nil opts uses provider defaults.
type ChatOptions struct {
	// Model specifies which model to use (e.g., "llama3.2")
	Model string

	// Temperature controls randomness; 0 keeps suggestions reproducible.
	Temperature float32

	// MaxTokens limits the response length (0 = provider default)
	MaxTokens int
}

// Response represents a complete LLM response.
type Response struct {
	Content string
	Model   string
}

// ErrProviderUnavailable indicates the LLM provider is not reachable.
var ErrProviderUnavailable = errors.New("llm provider is not reachable")

// NewProvider creates an LLM provider from the configuration.
func NewProvider(cfg *config.Config) (Provider, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	switch strings.ToLower(cfg.LLM.Provider) {
	case "ollama", "":
		provider, err := ollama.New(ollama.Config{
			Host:      cfg.LLM.Ollama.Host,
			Model:     cfg.LLM.Ollama.Model,
			KeepAlive: cfg.LLM.Ollama.KeepAlive,
		})
		if err != nil {
			return nil, err
		}
		return &ollamaAdapter{provider: provider}, nil

	default:
		return nil, fmt.Errorf("unknown llm provider: %s (supported: ollama)", cfg.LLM.Provider)
	}
}

// ollamaAdapter adapts ollama.Provider to the llm.Provider interface. The
// ollama package defines its own mirror types to avoid an import cycle.
type ollamaAdapter struct {
	provider *ollama.Provider
}

func (a *ollamaAdapter) Chat(ctx context.Context, messages []Message, opts *ChatOptions) (*Response, error) {
	ollamaMessages := make([]ollama.Message, len(messages))
	for i, msg := range messages {
		ollamaMessages[i] = ollama.Message{Role: msg.Role, Content: msg.Content}
	}

	var ollamaOpts *ollama.ChatOptions
	if opts != nil {
		ollamaOpts = &ollama.ChatOptions{
			Model:       opts.Model,
			Temperature: opts.Temperature,
			MaxTokens:   opts.MaxTokens,
		}
	}

	resp, err := a.provider.Chat(ctx, ollamaMessages, ollamaOpts)
	if err != nil {
		return nil, err
	}
	return &Response{Content: resp.Content, Model: resp.Model}, nil
}

func (a *ollamaAdapter) Heartbeat(ctx context.Context) error {
	return a.provider.Heartbeat(ctx)
}
