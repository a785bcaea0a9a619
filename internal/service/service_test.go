package service

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"testing/iotest"
	"time"

	"github.com/kdduha/chat-assistant/internal/llm"
	"github.com/kdduha/chat-assistant/internal/models"
	"github.com/kdduha/chat-assistant/internal/outcome"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = log.New(io.Discard, "", 0)

func delayed(reply string, delay time.Duration) llm.Backend {
	return llm.BackendFunc(func(ctx context.Context, prompt string) (string, error) {
		select {
		case <-time.After(delay):
			return reply + ": " + prompt, nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	})
}

func failing(err error) llm.Backend {
	return llm.BackendFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", err
	})
}

func newRegistry(backends map[string]llm.Backend, order ...string) *llm.Registry {
	r := llm.NewRegistry(order[0], time.Second, discard)
	for _, id := range order {
		r.Register(llm.Info{ID: id, Provider: "test", Model: id}, backends[id])
	}
	return r
}

func TestBuildPrompt(t *testing.T) {
	assert.Equal(t, "plain", buildPrompt("plain", nil))

	got := buildPrompt("and now?", []models.Turn{
		{Role: models.RoleUser, Content: "hi"},
		{Role: models.RoleAssistant, Content: "hello"},
	})
	assert.Equal(t, "User: hi\nAssistant: hello\nUser: and now?\n", got)
}

func TestChatService_UsesDefaultModel(t *testing.T) {
	r := newRegistry(map[string]llm.Backend{
		"model_a": delayed("a", 0),
		"model_b": delayed("b", 0),
	}, "model_a", "model_b")
	svc := NewChatService(discard, r)

	res := svc.HandleChat(context.Background(), models.Message{Text: "hello", ConversationID: "conv-1"})

	require.True(t, res.OK())
	assert.Equal(t, "model_a", res.ModelID)
	assert.Equal(t, "a: hello", res.Text)
}

func TestChatService_FailureNormalized(t *testing.T) {
	r := newRegistry(map[string]llm.Backend{
		"model_a": failing(&os.PathError{Op: "dial", Path: "x", Err: errors.New("boom")}),
	}, "model_a")
	svc := NewChatService(discard, r)

	res := svc.HandleChat(context.Background(), models.Message{Text: "hello"})

	require.False(t, res.OK())
	assert.Empty(t, res.Text)
	assert.NotEmpty(t, res.Err.Kind)
}

func TestChatService_DefaultMissing(t *testing.T) {
	r := llm.NewRegistry("model_a", time.Second, discard)
	svc := NewChatService(discard, r)

	res := svc.HandleChat(context.Background(), models.Message{Text: "hello"})

	require.False(t, res.OK())
	assert.Equal(t, outcome.Unconfigured, res.Err.Kind)
	assert.Equal(t, "model_a", res.ModelID)
}

func TestConversationID(t *testing.T) {
	assert.Equal(t, "given", ConversationID("given"))
	assert.Len(t, ConversationID(""), 36)
	assert.NotEqual(t, ConversationID(""), ConversationID(""))
}

func TestCompare_OrderFollowsRequest(t *testing.T) {
	r := newRegistry(map[string]llm.Backend{
		"model_a": delayed("a", 80*time.Millisecond),
		"model_b": delayed("b", 0),
	}, "model_a", "model_b")
	svc := NewCompareService(discard, r, []string{"model_a", "model_b"})

	res := svc.Compare(context.Background(), "q", []string{"model_a", "model_b"})

	require.Len(t, res, 2)
	assert.Equal(t, "model_a", res[0].ModelID)
	assert.Equal(t, "a: q", res[0].Text)
	assert.Equal(t, "model_b", res[1].ModelID)
	assert.Equal(t, "b: q", res[1].Text)
}

func TestCompare_RunsConcurrently(t *testing.T) {
	r := newRegistry(map[string]llm.Backend{
		"model_a": delayed("a", 150*time.Millisecond),
		"model_b": delayed("b", 150*time.Millisecond),
		"model_c": delayed("c", 150*time.Millisecond),
	}, "model_a", "model_b", "model_c")
	svc := NewCompareService(discard, r, nil)

	start := time.Now()
	res := svc.Compare(context.Background(), "q", []string{"model_a", "model_b", "model_c"})

	assert.Len(t, res, 3)
	assert.Less(t, time.Since(start), 400*time.Millisecond)
}

func TestCompare_FailureIsolated(t *testing.T) {
	r := newRegistry(map[string]llm.Backend{
		"model_a": failing(outcome.Rejected(500, "down")),
		"model_b": delayed("b", 10*time.Millisecond),
	}, "model_a", "model_b")
	svc := NewCompareService(discard, r, nil)

	res := svc.Compare(context.Background(), "q", []string{"model_a", "model_b"})

	require.Len(t, res, 2)
	assert.False(t, res[0].OK())
	assert.Equal(t, outcome.ModelRejected, res[0].Err.Kind)
	assert.Empty(t, res[0].Text)
	assert.True(t, res[1].OK())
	assert.Equal(t, "b: q", res[1].Text)
}

func TestCompare_EmptyList(t *testing.T) {
	r := newRegistry(map[string]llm.Backend{"model_a": delayed("a", 0)}, "model_a")
	svc := NewCompareService(discard, r, []string{"model_a"})

	res := svc.Compare(context.Background(), "q", []string{})

	assert.NotNil(t, res)
	assert.Empty(t, res)
}

func TestCompare_DuplicatesInvokedIndependently(t *testing.T) {
	var calls atomic.Int32
	r := newRegistry(map[string]llm.Backend{
		"model_a": llm.BackendFunc(func(ctx context.Context, prompt string) (string, error) {
			calls.Add(1)
			return "x", nil
		}),
	}, "model_a")
	svc := NewCompareService(discard, r, nil)

	res := svc.Compare(context.Background(), "q", []string{"model_a", "model_a"})

	require.Len(t, res, 2)
	assert.True(t, res[0].OK())
	assert.True(t, res[1].OK())
	assert.Equal(t, int32(2), calls.Load())
}

func TestCompare_UnknownModelFillsOwnSlot(t *testing.T) {
	r := newRegistry(map[string]llm.Backend{"model_a": delayed("a", 0)}, "model_a")
	svc := NewCompareService(discard, r, nil)

	res := svc.Compare(context.Background(), "q", []string{"model_z", "model_a"})

	require.Len(t, res, 2)
	assert.Equal(t, "model_z", res[0].ModelID)
	assert.Equal(t, outcome.Unconfigured, res[0].Err.Kind)
	assert.True(t, res[1].OK())
}

func TestCompareMessage_RendersHistory(t *testing.T) {
	var got atomic.Value
	r := newRegistry(map[string]llm.Backend{
		"model_a": llm.BackendFunc(func(ctx context.Context, prompt string) (string, error) {
			got.Store(prompt)
			return "ok", nil
		}),
	}, "model_a")
	svc := NewCompareService(discard, r, nil)

	svc.CompareMessage(context.Background(), "next", []models.Turn{{Role: models.RoleUser, Content: "first"}}, []string{"model_a"})

	assert.Equal(t, "User: first\nUser: next\n", got.Load())
}

func fileFrom(name string, r io.Reader) UploadedFile {
	return UploadedFile{
		Filename: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(r), nil
		},
	}
}

func TestUpload_BatchDoesNotShortCircuit(t *testing.T) {
	svc := NewUploadService(discard)

	acks := svc.HandleUpload(context.Background(), []UploadedFile{
		fileFrom("a.txt", strings.NewReader("hello world")),
		fileFrom("b.bin", iotest.ErrReader(errors.New("connection reset"))),
		fileFrom("c.txt", strings.NewReader("still processed")),
	})

	require.Len(t, acks, 3)
	assert.True(t, acks[0].OK())
	assert.Equal(t, "a.txt", acks[0].Filename)
	assert.Equal(t, int64(11), acks[0].Size)
	assert.Equal(t, "text/plain", acks[0].ContentType)

	assert.False(t, acks[1].OK())
	assert.Equal(t, "b.bin", acks[1].Filename)
	assert.Equal(t, outcome.Transport, acks[1].Err.Kind)

	assert.True(t, acks[2].OK())
}

func TestUpload_EmptyPayload(t *testing.T) {
	svc := NewUploadService(discard)

	acks := svc.HandleUpload(context.Background(), []UploadedFile{fileFrom("empty.txt", strings.NewReader(""))})

	require.Len(t, acks, 1)
	assert.Equal(t, outcome.Malformed, acks[0].Err.Kind)
}

func TestUpload_OpenMissingFile(t *testing.T) {
	svc := NewUploadService(discard)

	acks := svc.HandleUpload(context.Background(), []UploadedFile{{
		Filename: "gone.txt",
		Open: func() (io.ReadCloser, error) {
			return os.Open("/does/not/exist/gone.txt")
		},
	}})

	require.Len(t, acks, 1)
	assert.Equal(t, outcome.NotFound, acks[0].Err.Kind)
}

func TestUpload_PDFPages(t *testing.T) {
	svc := NewUploadService(discard)
	svc.pdfPages = func(b []byte) (int, error) { return 3, nil }

	acks := svc.HandleUpload(context.Background(), []UploadedFile{fileFrom("doc.pdf", strings.NewReader("%PDF-1.7 fake"))})

	require.Len(t, acks, 1)
	require.True(t, acks[0].OK())
	assert.Equal(t, "application/pdf", acks[0].ContentType)
	assert.Equal(t, 3, acks[0].Pages)
}

func TestUpload_CorruptPDF(t *testing.T) {
	svc := NewUploadService(discard)
	svc.pdfPages = func(b []byte) (int, error) { return 0, errors.New("no objects found") }

	acks := svc.HandleUpload(context.Background(), []UploadedFile{
		fileFrom("broken.pdf", strings.NewReader("%PDF-1.7 garbage")),
		fileFrom("ok.txt", strings.NewReader("fine")),
	})

	require.Len(t, acks, 2)
	assert.Equal(t, outcome.Malformed, acks[0].Err.Kind)
	assert.True(t, acks[1].OK())
}

func TestUpload_CanceledContext(t *testing.T) {
	svc := NewUploadService(discard)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	acks := svc.HandleUpload(ctx, []UploadedFile{fileFrom("a.txt", strings.NewReader("x"))})

	require.Len(t, acks, 1)
	assert.Equal(t, outcome.Transport, acks[0].Err.Kind)
}
