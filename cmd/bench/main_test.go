package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kdduha/chat-assistant/pkg/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPrompts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.txt")
	require.NoError(t, os.WriteFile(path, []byte("first\n\n  second  \n"), 0o600))

	prompts, err := readPrompts(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, prompts)
}

func TestReadPrompts_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n\n"), 0o600))

	_, err := readPrompts(path)

	assert.Error(t, err)
}

func TestBenchmarkPrompt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"results":[{"modelId":"model_a","reply":"abc","elapsedMs":20},`+
			`{"modelId":"model_b","error":{"kind":"transport","message":"down"},"elapsedMs":3}]}`)
	}))
	defer srv.Close()

	results := benchmarkPrompt(context.Background(), client.New(srv.URL), "q", nil)

	require.Len(t, results, 2)
	assert.Equal(t, "model_a", results[0].Model)
	assert.Equal(t, 20*time.Millisecond, results[0].Duration)
	assert.Equal(t, 3, results[0].Chars)
	assert.NoError(t, results[0].Err)
	assert.EqualError(t, results[1].Err, "transport: down")
}

func TestAggregateAndPrint(t *testing.T) {
	results := []BenchResult{
		{Model: "model_b", Duration: 10 * time.Millisecond, Chars: 10},
		{Model: "model_a", Duration: 30 * time.Millisecond, Chars: 2000},
		{Model: "model_a", Duration: 10 * time.Millisecond, Chars: 1000},
		{Model: "model_a", Err: errors.New("boom")},
	}

	agg := aggregate(results)
	assert.Equal(t, 3, agg["model_a"].Count)
	assert.Equal(t, 1, agg["model_a"].Errors)
	assert.Equal(t, 20*time.Millisecond, agg["model_a"].Avg())
	assert.Equal(t, 1500, agg["model_a"].AvgChars())

	var out bytes.Buffer
	printMarkdown(&out, results)
	assert.Contains(t, out.String(), "| model_a | 3 | 1 | 20ms | 40ms | 1.50k chars |")
	assert.Less(t, bytes.Index(out.Bytes(), []byte("model_a")), bytes.Index(out.Bytes(), []byte("model_b")))
}

func TestAgg_AllFailed(t *testing.T) {
	a := Agg{Count: 2, Errors: 2}

	assert.Zero(t, a.Avg())
	assert.Zero(t, a.AvgChars())
}
