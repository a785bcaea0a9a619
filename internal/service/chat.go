package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/kdduha/chat-assistant/internal/llm"
	"github.com/kdduha/chat-assistant/internal/models"
)

type ChatService struct {
	logger   *log.Logger
	registry *llm.Registry
}

func NewChatService(logger *log.Logger, registry *llm.Registry) *ChatService {
	return &ChatService{
		logger:   logger,
		registry: registry,
	}
}

// HandleChat answers one turn with the default model. Every call is
// independent; the conversation id is not used for any lookup.
func (c *ChatService) HandleChat(ctx context.Context, msg models.Message) llm.InvocationResult {
	inv, err := c.registry.Default()
	if err != nil {
		return llm.Failed(c.registry.DefaultID(), err)
	}
	return inv.Invoke(ctx, buildPrompt(msg.Text, msg.History))
}

// ConversationID returns id, or a fresh one when the client sent none.
func ConversationID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}
