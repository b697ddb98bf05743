// Package ollama provides the Ollama implementation of the llm.Provider
// interface.
//
// Note: To avoid import cycles, this package defines its own types that
// mirror the llm package; the parent adapts between them.
package ollama

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/logpare/logpare/internal/logger"
)

// Provider implements the LLM provider interface for Ollama.
type Provider struct {
	client *api.Client
	config Config
}

// Config holds Ollama-specific configuration.
type Config struct {
	// Host is the Ollama API endpoint (e.g., "http://localhost:11434")
	Host string

	// Model is the default model to use (e.g., "llama3.2")
	Model string

	// KeepAlive controls how long the model stays loaded (e.g., "5m")
	KeepAlive string
}

// Message represents a single message in a conversation.
type Message struct {
	Role    string
	Content string
}

// ChatOptions configures chat behavior.
type ChatOptions struct {
	Model       string
	Temperature float32
	MaxTokens   int
}

// Response represents a complete LLM response.
type Response struct {
	Content string
	Model   string
}

// ErrProviderUnavailable indicates the Ollama service is not reachable.
var ErrProviderUnavailable = errors.New("llm provider is not reachable")

// New creates a new Ollama provider. If cfg.Host is empty, the OLLAMA_HOST
// environment variable decides, defaulting to http://localhost:11434.
func New(cfg Config) (*Provider, error) {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	if cfg.Host != "" {
		parsedURL, err := url.Parse(cfg.Host)
		if err != nil {
			return nil, fmt.Errorf("invalid ollama host: %w", err)
		}
		client = api.NewClient(parsedURL, http.DefaultClient)
	}

	if cfg.Model == "" {
		cfg.Model = "llama3.2"
	}

	return &Provider{client: client, config: cfg}, nil
}

// Chat sends messages to Ollama and returns the complete response.
func (p *Provider) Chat(ctx context.Context, messages []Message, opts *ChatOptions) (*Response, error) {
	if len(messages) == 0 {
		return nil, errors.New("messages cannot be empty")
	}

	model := p.config.Model
	temperature := float32(0)
	maxTokens := 0
	if opts != nil {
		if opts.Model != "" {
			model = opts.Model
		}
		temperature = opts.Temperature
		maxTokens = opts.MaxTokens
	}

	logger.Debug("sending chat request", "model", model, "messages", len(messages))

	apiMessages := make([]api.Message, len(messages))
	for i, msg := range messages {
		apiMessages[i] = api.Message{Role: msg.Role, Content: msg.Content}
	}

	req := &api.ChatRequest{
		Model:    model,
		Messages: apiMessages,
		Options: map[string]interface{}{
			"temperature": temperature,
		},
		Stream: new(bool), // complete response, no streaming
	}
	if maxTokens > 0 {
		req.Options["num_predict"] = maxTokens
	}
	if p.config.KeepAlive != "" {
		if d, err := time.ParseDuration(p.config.KeepAlive); err == nil {
			req.KeepAlive = &api.Duration{Duration: d}
		}
	}

	var response api.ChatResponse
	err := p.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		response = resp
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	logger.Debug("chat request completed", "model", response.Model)

	return &Response{
		Content: response.Message.Content,
		Model:   response.Model,
	}, nil
}

// Heartbeat checks if the Ollama service is reachable and healthy.
func (p *Provider) Heartbeat(ctx context.Context) error {
	if err := p.client.Heartbeat(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	return nil
}
