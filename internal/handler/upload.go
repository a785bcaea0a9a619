package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"

	"github.com/kdduha/chat-assistant/internal/config"
	"github.com/kdduha/chat-assistant/internal/models"
	"github.com/kdduha/chat-assistant/internal/service"
)

const kindTooLarge = "too_large"

type uploadService interface {
	HandleUpload(ctx context.Context, files []service.UploadedFile) []service.UploadAck
}

type UploadHandler struct {
	service uploadService
	limits  config.UploadConfig
}

func NewUploadHandler(service uploadService, limits config.UploadConfig) *UploadHandler {
	return &UploadHandler{
		service: service,
		limits:  limits,
	}
}

// Upload godoc
// @Summary Upload files
// @Description Accepts one or more multipart file parts (any field name). Each file is acknowledged separately; nothing is kept after the response.
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Files to upload"
// @Success 200 {object} models.UploadResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 413 {object} models.ErrorResponse
// @Router /upload [post]
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.limits.MaxBytes)

	if err := r.ParseMultipartForm(h.limits.MemoryBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, kindTooLarge,
				fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, kindBadRequest, fmt.Sprintf("invalid multipart form: %s", err))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	files := collectFiles(r.MultipartForm)
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, kindBadRequest, "no file parts in request")
		return
	}

	acks := h.service.HandleUpload(r.Context(), files)

	resp := models.UploadResponse{Results: make([]models.UploadResult, 0, len(acks))}
	for _, ack := range acks {
		resp.Results = append(resp.Results, models.UploadResult{
			Filename:    ack.Filename,
			OK:          ack.OK(),
			Size:        ack.Size,
			ContentType: ack.ContentType,
			Pages:       ack.Pages,
			Error:       errorBody(ack.Err),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// collectFiles orders parts by field name, then by position within the field.
func collectFiles(form *multipart.Form) []service.UploadedFile {
	fields := make([]string, 0, len(form.File))
	for field := range form.File {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var files []service.UploadedFile
	for _, field := range fields {
		for _, fh := range form.File[field] {
			files = append(files, service.UploadedFile{
				Filename: fh.Filename,
				Open: func() (io.ReadCloser, error) {
					return fh.Open()
				},
			})
		}
	}
	return files
}
