package llm

import (
	"context"
	"errors"
	"io"
	"log"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kdduha/chat-assistant/internal/outcome"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var discard = log.New(io.Discard, "", 0)

type mockStats struct {
	mock.Mock
}

func (m *mockStats) Record(ctx context.Context, modelID, outcome string) error {
	args := m.Called(modelID, outcome)
	return args.Error(0)
}

func echoBackend(calls *atomic.Int32) Backend {
	return BackendFunc(func(ctx context.Context, prompt string) (string, error) {
		calls.Add(1)
		return "echo: " + prompt, nil
	})
}

func TestInvoker_Success(t *testing.T) {
	var calls atomic.Int32
	inv := NewInvoker(Info{ID: "model_a"}, echoBackend(&calls), time.Second, discard)

	res := inv.Invoke(context.Background(), "hello")

	require.True(t, res.OK())
	assert.Equal(t, "model_a", res.ModelID)
	assert.Equal(t, "echo: hello", res.Text)
	assert.Equal(t, int32(1), calls.Load())
}

func TestInvoker_EmptyPromptPassedThrough(t *testing.T) {
	var got atomic.Value
	inv := NewInvoker(Info{ID: "model_a"}, BackendFunc(func(ctx context.Context, prompt string) (string, error) {
		got.Store(prompt)
		return "ok", nil
	}), time.Second, discard)

	res := inv.Invoke(context.Background(), "")

	require.True(t, res.OK())
	assert.Equal(t, "", got.Load())
}

func TestInvoker_Idempotent_NoCaching(t *testing.T) {
	var calls atomic.Int32
	inv := NewInvoker(Info{ID: "model_a"}, echoBackend(&calls), time.Second, discard)

	first := inv.Invoke(context.Background(), "same")
	second := inv.Invoke(context.Background(), "same")

	assert.True(t, first.OK())
	assert.True(t, second.OK())
	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, int32(2), calls.Load())
}

func TestInvoker_FailureNotRetried(t *testing.T) {
	var calls atomic.Int32
	inv := NewInvoker(Info{ID: "model_b"}, BackendFunc(func(ctx context.Context, prompt string) (string, error) {
		calls.Add(1)
		return "", outcome.Rejected(500, "upstream exploded")
	}), time.Second, discard)

	res := inv.Invoke(context.Background(), "hello")

	require.False(t, res.OK())
	assert.Empty(t, res.Text)
	assert.Equal(t, outcome.ModelRejected, res.Err.Kind)
	assert.Equal(t, int32(1), calls.Load())
}

func TestInvoker_Timeout(t *testing.T) {
	inv := NewInvoker(Info{ID: "slow"}, BackendFunc(func(ctx context.Context, prompt string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}), 20*time.Millisecond, discard)

	start := time.Now()
	res := inv.Invoke(context.Background(), "hello")

	require.False(t, res.OK())
	assert.Equal(t, outcome.Transport, res.Err.Kind)
	assert.Less(t, time.Since(start), time.Second)
}

func TestInvoker_PanicContained(t *testing.T) {
	inv := NewInvoker(Info{ID: "broken"}, BackendFunc(func(ctx context.Context, prompt string) (string, error) {
		panic("nil choice")
	}), time.Second, discard)

	res := inv.Invoke(context.Background(), "hello")

	require.False(t, res.OK())
	assert.Equal(t, outcome.Malformed, res.Err.Kind)
}

func TestInvoker_RecordsStats(t *testing.T) {
	stats := new(mockStats)
	stats.On("Record", "model_a", "ok").Return(nil).Once()
	stats.On("Record", "model_a", "transport").Return(errors.New("redis down")).Once()

	fail := false
	inv := NewInvoker(Info{ID: "model_a"}, BackendFunc(func(ctx context.Context, prompt string) (string, error) {
		if fail {
			return "", context.DeadlineExceeded
		}
		return "fine", nil
	}), time.Second, discard)
	inv.stats = stats

	assert.True(t, inv.Invoke(context.Background(), "a").OK())
	fail = true
	res := inv.Invoke(context.Background(), "b")
	assert.Equal(t, outcome.Transport, res.Err.Kind, "stats errors must not change the outcome")

	stats.AssertExpectations(t)
}

func TestRegistry_LookupAndDefault(t *testing.T) {
	var calls atomic.Int32
	r := NewRegistry("model_a", time.Second, discard)
	r.Register(Info{ID: "model_a", Provider: "openai", Model: "gpt"}, echoBackend(&calls))
	r.Register(Info{ID: "model_b", Provider: "ollama", Model: "llama"}, echoBackend(&calls))

	def, err := r.Default()
	require.NoError(t, err)
	assert.Equal(t, "model_a", def.ID())

	b, err := r.Lookup("model_b")
	require.NoError(t, err)
	assert.Equal(t, "model_b", b.ID())

	assert.Equal(t, []string{"model_a", "model_b"}, r.IDs())
	assert.Equal(t, "llama", r.Models()[1].Model)
}

func TestRegistry_UnknownModel(t *testing.T) {
	r := NewRegistry("model_a", time.Second, discard)

	_, err := r.Lookup("model_z")

	require.Error(t, err)
	assert.Equal(t, outcome.Unconfigured, outcome.Normalize(err).Kind)

	_, err = r.Default()
	assert.Equal(t, outcome.Unconfigured, outcome.Normalize(err).Kind)
}

func TestFailed(t *testing.T) {
	res := Failed("model_x", outcome.New(outcome.Unconfigured, "nope"))

	assert.False(t, res.OK())
	assert.Equal(t, "model_x", res.ModelID)
	assert.Equal(t, outcome.Unconfigured, res.Err.Kind)
}
