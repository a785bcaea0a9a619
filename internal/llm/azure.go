package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/kdduha/chat-assistant/internal/config"
	"github.com/kdduha/chat-assistant/internal/outcome"
	goopenai "github.com/sashabaranov/go-openai"
)

// AzureBackend calls an Azure OpenAI deployment. cfg.Name is the deployment name.
type AzureBackend struct {
	client       *goopenai.Client
	deployment   string
	maxTokens    int
	systemPrompt string
}

func NewAzureBackend(cfg config.ModelConfig) *AzureBackend {
	clientCfg := goopenai.DefaultAzureConfig(cfg.APIKey, cfg.BaseURL)
	if cfg.APIVersion != "" {
		clientCfg.APIVersion = cfg.APIVersion
	}
	clientCfg.HTTPClient = &http.Client{}

	return &AzureBackend{
		client:       goopenai.NewClientWithConfig(clientCfg),
		deployment:   cfg.Name,
		maxTokens:    cfg.MaxTokens,
		systemPrompt: cfg.SystemPrompt,
	}
}

func (a *AzureBackend) Complete(ctx context.Context, prompt string) (string, error) {
	var messages []goopenai.ChatCompletionMessage
	if a.systemPrompt != "" {
		messages = append(messages, goopenai.ChatCompletionMessage{
			Role:    goopenai.ChatMessageRoleSystem,
			Content: a.systemPrompt,
		})
	}
	messages = append(messages, goopenai.ChatCompletionMessage{
		Role:    goopenai.ChatMessageRoleUser,
		Content: prompt,
	})

	resp, err := a.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:     a.deployment,
		Messages:  messages,
		MaxTokens: a.maxTokens,
	})
	if err != nil {
		var (
			apiErr *goopenai.APIError
			reqErr *goopenai.RequestError
		)
		switch {
		case errors.As(err, &apiErr):
			return "", outcome.Rejected(apiErr.HTTPStatusCode, apiErr.Message)
		case errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0:
			return "", outcome.Rejected(reqErr.HTTPStatusCode, reqErr.Error())
		}
		return "", fmt.Errorf("azure openai error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", outcome.ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}
