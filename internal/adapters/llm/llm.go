// Package llm adapts the Anthropic messages API into a Completer port
package llm

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	perr "criticode/internal/platform/errors"
)

// Completer is the provider seam used by the analyzer. Implementations
// return the raw model text for a system and user prompt pair
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Config carries provider credentials and model selection
type Config struct {
	APIKey    string
	Model     string
	MaxTokens int64
}

// Configured reports whether the provider has a usable credential
func (c Config) Configured() bool { return c.APIKey != "" }

// Client wraps the Anthropic API behind Completer
type Client struct {
	api       *anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

// New builds an Anthropic-backed Completer
func New(cfg Config) *Client {
	opts := []option.RequestOption{}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	client := anthropic.NewClient(opts...)
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	return &Client{
		api:       &client,
		model:     anthropic.Model(cfg.Model),
		maxTokens: maxTokens,
	}
}

// Complete sends one message turn and returns the first text block
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", perr.Timeoutf("model call aborted: %v", ctx.Err())
		}
		return "", perr.Unavailablef("model call failed: %v", err)
	}

	for _, block := range msg.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", perr.Unavailablef("model response carried no text content")
}
