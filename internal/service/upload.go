package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/kdduha/chat-assistant/internal/metrics"
	"github.com/kdduha/chat-assistant/internal/outcome"
)

// UploadedFile lives only for the request that carried it.
type UploadedFile struct {
	Filename string
	Open     func() (io.ReadCloser, error)
}

// UploadAck holds either the file facts or Err.
type UploadAck struct {
	Filename    string
	Size        int64
	ContentType string
	Pages       int
	Err         *outcome.Error
}

func (a UploadAck) OK() bool {
	return a.Err == nil
}

type UploadService struct {
	logger   *log.Logger
	pdfPages func([]byte) (int, error)
}

func NewUploadService(logger *log.Logger) *UploadService {
	return &UploadService{
		logger:   logger,
		pdfPages: countPDFPages,
	}
}

// HandleUpload reads every file fully and acknowledges each one on its own.
// A failing file never stops the rest of the batch, and no bytes outlive the call.
func (u *UploadService) HandleUpload(ctx context.Context, files []UploadedFile) []UploadAck {
	acks := make([]UploadAck, 0, len(files))
	for _, f := range files {
		var ack UploadAck
		if err := ctx.Err(); err != nil {
			ack = UploadAck{Filename: f.Filename, Err: outcome.Normalize(err)}
		} else {
			ack = u.inspect(f)
		}

		status := uploadStatusOK
		if !ack.OK() {
			status = uploadStatusError
			u.logger.Printf("upload %q failed: %v\n", f.Filename, ack.Err)
		}
		metrics.UploadFile(status, ack.ContentType, ack.Size)
		acks = append(acks, ack)
	}
	return acks
}

func (u *UploadService) inspect(f UploadedFile) UploadAck {
	ack := UploadAck{Filename: f.Filename}

	data, err := readAll(f)
	if err != nil {
		ack.Err = err
		return ack
	}
	if len(data) == 0 {
		ack.Err = outcome.New(outcome.Malformed, "empty payload")
		return ack
	}

	ack.Size = int64(len(data))
	ack.ContentType = contentType(data)

	if ack.ContentType == contentTypePDF {
		pages, err := u.pdfPages(data)
		if err != nil {
			ack.Err = outcome.Wrap(outcome.Malformed, fmt.Errorf("unreadable pdf: %w", err))
			return ack
		}
		ack.Pages = pages
	}
	return ack
}

func readAll(f UploadedFile) ([]byte, *outcome.Error) {
	if f.Open == nil {
		return nil, outcome.New(outcome.NotFound, "no content for %q", f.Filename)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, streamError("open", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, streamError("read", err)
	}
	return data, nil
}

func streamError(op string, err error) *outcome.Error {
	wrapped := fmt.Errorf("%s upload: %w", op, err)
	if errors.Is(err, fs.ErrNotExist) {
		return outcome.Wrap(outcome.NotFound, wrapped)
	}
	return outcome.Wrap(outcome.Transport, wrapped)
}

func contentType(data []byte) string {
	ct := http.DetectContentType(data)
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return ct
}

func countPDFPages(data []byte) (int, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return 0, err
	}
	defer doc.Close()

	// MuPDF repairs some broken files into an empty document.
	pages := doc.NumPage()
	if pages == 0 {
		return 0, errors.New("pdf has no pages")
	}
	return pages, nil
}
