package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kdduha/chat-assistant/internal/llm"
	"github.com/kdduha/chat-assistant/internal/models"
)

type modelRegistry interface {
	DefaultID() string
	IDs() []string
	Models() []llm.Info
}

type statsReader interface {
	Snapshot(ctx context.Context, modelIDs []string) (map[string]map[string]int64, error)
}

type ModelsHandler struct {
	registry modelRegistry
	compare  []string
	stats    statsReader
}

func NewModelsHandler(registry modelRegistry, compare []string) *ModelsHandler {
	return &ModelsHandler{
		registry: registry,
		compare:  compare,
	}
}

func (h *ModelsHandler) SetStatsReader(stats statsReader) {
	h.stats = stats
}

// Models godoc
// @Summary List configured models
// @Tags models
// @Produce json
// @Success 200 {object} models.ModelsResponse
// @Router /models [get]
func (h *ModelsHandler) Models(w http.ResponseWriter, r *http.Request) {
	infos := h.registry.Models()
	resp := models.ModelsResponse{
		Default: h.registry.DefaultID(),
		Compare: h.compare,
		Models:  make([]models.ModelInfo, 0, len(infos)),
	}
	for _, info := range infos {
		resp.Models = append(resp.Models, models.ModelInfo(info))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Stats godoc
// @Summary Invocation outcome counters per model
// @Tags models
// @Produce json
// @Success 200 {object} models.StatsResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /stats [get]
func (h *ModelsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if h.stats == nil {
		writeError(w, http.StatusNotFound, "not_found", "usage stats are disabled")
		return
	}

	snapshot, err := h.stats.Snapshot(r.Context(), h.registry.IDs())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "stats", fmt.Sprintf("stats error: %s", err))
		return
	}
	writeJSON(w, http.StatusOK, models.StatsResponse{Models: snapshot})
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
