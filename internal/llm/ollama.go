package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/kdduha/chat-assistant/internal/config"
	"github.com/kdduha/chat-assistant/internal/outcome"
	ollama "github.com/ollama/ollama/api"
)

const (
	defaultOllamaHost = "http://localhost:11434"
	maxErrorBodyBytes = 4096
)

type OllamaBackend struct {
	client       *ollama.Client
	modelName    string
	maxTokens    int
	systemPrompt string
}

// NewOllamaBackend has no client timeout of its own; the invoker context bounds each call.
func NewOllamaBackend(cfg config.ModelConfig) (*OllamaBackend, error) {
	host := cfg.BaseURL
	if host == "" {
		host = defaultOllamaHost
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama base url %q: %w", host, err)
	}

	return &OllamaBackend{
		client:       ollama.NewClient(u, &http.Client{Transport: statusTransport{base: http.DefaultTransport}}),
		modelName:    cfg.Name,
		maxTokens:    cfg.MaxTokens,
		systemPrompt: cfg.SystemPrompt,
	}, nil
}

func (o *OllamaBackend) Complete(ctx context.Context, prompt string) (string, error) {
	var messages []ollama.Message
	if o.systemPrompt != "" {
		messages = append(messages, ollama.Message{Role: "system", Content: o.systemPrompt})
	}
	messages = append(messages, ollama.Message{Role: "user", Content: prompt})

	stream := false
	req := &ollama.ChatRequest{
		Model:    o.modelName,
		Messages: messages,
		Stream:   &stream,
	}
	if o.maxTokens > 0 {
		req.Options = map[string]any{"num_predict": o.maxTokens}
	}

	var (
		text strings.Builder
		done bool
	)
	err := o.client.Chat(ctx, req, func(cr ollama.ChatResponse) error {
		text.WriteString(cr.Message.Content)
		done = done || cr.Done
		return nil
	})
	if err != nil {
		var rejected *outcome.Error
		if errors.As(err, &rejected) {
			return "", rejected
		}
		var statusErr ollama.StatusError
		if errors.As(err, &statusErr) {
			return "", outcome.Rejected(statusErr.StatusCode, statusErr.ErrorMessage)
		}
		return "", fmt.Errorf("ollama chat: %w", err)
	}

	if !done && text.Len() == 0 {
		return "", outcome.ErrEmptyCompletion
	}
	return text.String(), nil
}

// statusTransport rejects error statuses before the ollama client decodes the
// body, which it does line by line as JSON even for plain-text or HTML errors.
type statusTransport struct {
	base http.RoundTripper
}

func (t statusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusBadRequest {
		return resp, nil
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	return nil, outcome.Rejected(resp.StatusCode, ollamaErrorMessage(resp.StatusCode, raw))
}

func ollamaErrorMessage(status int, raw []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := sonic.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return body.Error
	}
	if msg := strings.TrimSpace(string(raw)); msg != "" {
		return msg
	}
	return http.StatusText(status)
}
