package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/kdduha/chat-assistant/internal/config"
	"github.com/kdduha/chat-assistant/internal/outcome"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

// OpenAIBackend talks to any OpenAI-compatible chat completions endpoint.
type OpenAIBackend struct {
	client       openai.Client
	modelName    string
	maxTokens    int
	systemPrompt string
}

func NewOpenAIBackend(cfg config.ModelConfig, opts ...option.RequestOption) *OpenAIBackend {
	base := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		// one call, one outcome
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		base = append(base, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIBackend{
		client:       openai.NewClient(append(base, opts...)...),
		modelName:    cfg.Name,
		maxTokens:    cfg.MaxTokens,
		systemPrompt: cfg.SystemPrompt,
	}
}

func (o *OpenAIBackend) Complete(ctx context.Context, prompt string) (string, error) {
	var messages []openai.ChatCompletionMessageParamUnion
	if o.systemPrompt != "" {
		messages = append(messages, openai.SystemMessage(o.systemPrompt))
	}
	messages = append(messages, openai.UserMessage(prompt))

	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(o.modelName),
		Messages: messages,
	}
	if o.maxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(o.maxTokens))
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", outcome.Rejected(apiErr.StatusCode, apiErr.Message)
		}
		return "", fmt.Errorf("openai client error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", outcome.ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}
