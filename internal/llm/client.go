// Package llm sends single-message chat completions to an OpenAI-compatible API.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"aiot_brain/internal/metrics"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultTimeout = 20 * time.Second
	metricsTarget  = "llm"
)

var (
	// ErrNoAPIKey is returned by New when no key is configured.
	ErrNoAPIKey = errors.New("llm: api key is not configured")
	// ErrEmptyResponse is returned when the API answers without any choice.
	ErrEmptyResponse = errors.New("llm: response contains no choices")
)

// Config configures the completion endpoint.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client is a thin wrapper over go-openai.
type Client struct {
	api *openai.Client
}

// New builds a client. It fails when the API key is missing.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNoAPIKey
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{api: openai.NewClientWithConfig(oc)}, nil
}

// Complete sends prompt as a single user message and returns the first choice's text.
func (c *Client) Complete(ctx context.Context, model, prompt string) (answer string, err error) {
	start := time.Now()
	defer func() { metrics.ObserveUpstream(metricsTarget, "chat_completion", start, err) }()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}
