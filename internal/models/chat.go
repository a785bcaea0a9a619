package models

import "fmt"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one user turn. It is never stored.
type Message struct {
	Text           string
	ConversationID string
	History        []Turn
}

// Turn is an earlier exchange supplied by the client.
type Turn struct {
	Role    string `json:"role" example:"user"`
	Content string `json:"content" example:"Hi!"`
}

func validateHistory(history []Turn) error {
	for i, t := range history {
		if t.Role != RoleUser && t.Role != RoleAssistant {
			return fmt.Errorf("history[%d]: unknown role %q", i, t.Role)
		}
	}
	return nil
}

// ChatRequest represents request for chat endpoint
type ChatRequest struct {
	Message        string `json:"message" example:"What is a goroutine?"`
	ConversationID string `json:"conversationId,omitempty" example:"6f1c9b7e-4a0e-4d8e-9a53-0c2f3f1b2a10"`
	History        []Turn `json:"history,omitempty"`
}

func (r ChatRequest) Validate() error {
	return validateHistory(r.History)
}

func (r ChatRequest) ToMessage() Message {
	return Message{
		Text:           r.Message,
		ConversationID: r.ConversationID,
		History:        r.History,
	}
}

type ChatResponse struct {
	Reply          string `json:"reply"`
	ModelID        string `json:"modelId"`
	ConversationID string `json:"conversationId"`
}

// CompareRequest represents request for compare endpoint.
// A missing modelIds field selects the configured pair; an empty list compares nothing.
type CompareRequest struct {
	Prompt   string   `json:"prompt" example:"Explain CAP theorem"`
	ModelIDs []string `json:"modelIds" example:"model_a,model_b"`
	History  []Turn   `json:"history,omitempty"`
}

func (r CompareRequest) Validate() error {
	return validateHistory(r.History)
}

type CompareResult struct {
	ModelID   string     `json:"modelId"`
	Reply     string     `json:"reply,omitempty"`
	Error     *ErrorBody `json:"error,omitempty"`
	ElapsedMs int64      `json:"elapsedMs"`
}

type CompareResponse struct {
	Results []CompareResult `json:"results"`
}

type UploadResult struct {
	Filename    string     `json:"filename"`
	OK          bool       `json:"ok"`
	Size        int64      `json:"size,omitempty"`
	ContentType string     `json:"contentType,omitempty"`
	Pages       int        `json:"pages,omitempty"`
	Error       *ErrorBody `json:"error,omitempty"`
}

type UploadResponse struct {
	Results []UploadResult `json:"results"`
}

type ModelsResponse struct {
	Default string      `json:"default"`
	Compare []string    `json:"compare"`
	Models  []ModelInfo `json:"models"`
}

type ModelInfo struct {
	ID       string `json:"id"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

type StatsResponse struct {
	Models map[string]map[string]int64 `json:"models"`
}

type ErrorBody struct {
	Kind    string `json:"kind" example:"transport"`
	Message string `json:"message" example:"backend call timed out"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}
