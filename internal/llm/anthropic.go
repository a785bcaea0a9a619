package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/kdduha/chat-assistant/internal/config"
	"github.com/kdduha/chat-assistant/internal/outcome"
)

type AnthropicBackend struct {
	client       anthropic.Client
	modelName    string
	maxTokens    int
	systemPrompt string
}

func NewAnthropicBackend(cfg config.ModelConfig, opts ...anthropicopt.RequestOption) *AnthropicBackend {
	base := []anthropicopt.RequestOption{
		anthropicopt.WithAPIKey(cfg.APIKey),
		anthropicopt.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		base = append(base, anthropicopt.WithBaseURL(cfg.BaseURL))
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &AnthropicBackend{
		client:       anthropic.NewClient(append(base, opts...)...),
		modelName:    cfg.Name,
		maxTokens:    maxTokens,
		systemPrompt: cfg.SystemPrompt,
	}
}

// Complete sends a single-turn Messages API request and concatenates the text blocks.
func (a *AnthropicBackend) Complete(ctx context.Context, prompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.modelName),
		MaxTokens: int64(a.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if a.systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: a.systemPrompt}}
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", outcome.Rejected(apiErr.StatusCode, firstLine(apiErr.Error()))
		}
		return "", fmt.Errorf("anthropic client error: %w", err)
	}

	var (
		b     strings.Builder
		found bool
	)
	for _, cb := range msg.Content {
		if tb, ok := cb.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(tb.Text)
			found = true
		}
	}
	if !found {
		return "", outcome.ErrEmptyCompletion
	}
	return b.String(), nil
}

// firstLine trims the SDK error text to its "METHOD url: status" line.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
