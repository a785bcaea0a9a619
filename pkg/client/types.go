package client

import "github.com/kdduha/chat-assistant/internal/models"

// Wire types re-exported so callers outside this module can name them.
type (
	Turn            = models.Turn
	ChatRequest     = models.ChatRequest
	ChatResponse    = models.ChatResponse
	CompareRequest  = models.CompareRequest
	CompareResponse = models.CompareResponse
	CompareResult   = models.CompareResult
	UploadResponse  = models.UploadResponse
	UploadResult    = models.UploadResult
	ModelsResponse  = models.ModelsResponse
	ModelInfo       = models.ModelInfo
	ErrorBody       = models.ErrorBody
)
