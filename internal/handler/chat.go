package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/kdduha/chat-assistant/internal/llm"
	"github.com/kdduha/chat-assistant/internal/models"
	"github.com/kdduha/chat-assistant/internal/service"
)

const kindBadRequest = "bad_request"

type chatService interface {
	HandleChat(ctx context.Context, msg models.Message) llm.InvocationResult
}

type ChatHandler struct {
	service chatService
}

func NewChatHandler(service chatService) *ChatHandler {
	return &ChatHandler{
		service: service,
	}
}

// Chat godoc
// @Summary Chat with the default model
// @Description Sends one user message (plus optional client-side history) to the default model. Any model selector is ignored.
// @Tags chat
// @Accept json
// @Produce json
// @Param request body models.ChatRequest true "Chat request"
// @Success 200 {object} models.ChatResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /chat [post]
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, kindBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, kindBadRequest, fmt.Sprintf("request validation failed: %s", err))
		return
	}

	msg := req.ToMessage()
	msg.ConversationID = service.ConversationID(msg.ConversationID)

	res := h.service.HandleChat(r.Context(), msg)
	if !res.OK() {
		writeOutcome(w, res.Err)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{
		Reply:          res.Text,
		ModelID:        res.ModelID,
		ConversationID: msg.ConversationID,
	})
}
