package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/kdduha/chat-assistant/internal/llm"
	"github.com/kdduha/chat-assistant/internal/models"
)

type compareService interface {
	CompareMessage(ctx context.Context, text string, history []models.Turn, modelIDs []string) []llm.InvocationResult
	Defaults() []string
}

type CompareHandler struct {
	service compareService
}

func NewCompareHandler(service compareService) *CompareHandler {
	return &CompareHandler{
		service: service,
	}
}

// Compare godoc
// @Summary Compare models
// @Description Runs one prompt against several models concurrently. Results follow the order of modelIds; omitting modelIds uses the configured pair. Per-model failures are reported in place.
// @Tags compare
// @Accept json
// @Produce json
// @Param request body models.CompareRequest true "Compare request"
// @Success 200 {object} models.CompareResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /compare [post]
func (h *CompareHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var req models.CompareRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, kindBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, kindBadRequest, fmt.Sprintf("request validation failed: %s", err))
		return
	}

	ids := req.ModelIDs
	if ids == nil {
		ids = h.service.Defaults()
	}

	results := h.service.CompareMessage(r.Context(), req.Prompt, req.History, ids)

	resp := models.CompareResponse{Results: make([]models.CompareResult, 0, len(results))}
	for _, res := range results {
		resp.Results = append(resp.Results, compareResult(res))
	}
	writeJSON(w, http.StatusOK, resp)
}
