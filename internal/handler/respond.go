package handler

import (
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/kdduha/chat-assistant/internal/llm"
	"github.com/kdduha/chat-assistant/internal/models"
	"github.com/kdduha/chat-assistant/internal/outcome"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, models.ErrorResponse{Error: models.ErrorBody{Kind: kind, Message: message}})
}

func writeOutcome(w http.ResponseWriter, err *outcome.Error) {
	writeJSON(w, err.Kind.HTTPStatus(), models.ErrorResponse{Error: *errorBody(err)})
}

func errorBody(err *outcome.Error) *models.ErrorBody {
	if err == nil {
		return nil
	}
	return &models.ErrorBody{Kind: string(err.Kind), Message: err.Message}
}

func compareResult(r llm.InvocationResult) models.CompareResult {
	return models.CompareResult{
		ModelID:   r.ModelID,
		Reply:     r.Text,
		Error:     errorBody(r.Err),
		ElapsedMs: r.Elapsed.Milliseconds(),
	}
}
