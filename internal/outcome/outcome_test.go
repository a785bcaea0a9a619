package outcome

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	var syntaxErr *json.SyntaxError
	require.ErrorAs(t, json.Unmarshal([]byte("{"), &struct{}{}), &syntaxErr)

	_, notExist := os.Open("/definitely/not/here.txt")

	tests := []struct {
		name string
		err  error
		kind ErrorKind
	}{
		{"deadline", context.DeadlineExceeded, Transport},
		{"canceled", fmt.Errorf("call: %w", context.Canceled), Transport},
		{"url error", &url.Error{Op: "Post", URL: "http://x", Err: errors.New("connection refused")}, Transport},
		{"json syntax", fmt.Errorf("decode: %w", syntaxErr), Malformed},
		{"empty completion", ErrEmptyCompletion, Malformed},
		{"missing file", notExist, NotFound},
		{"opaque", errors.New("boom"), ModelRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.kind, got.Kind)
			assert.NotEmpty(t, got.Message)
		})
	}
}

func TestNormalize_KeepsTypedError(t *testing.T) {
	orig := Rejected(http.StatusTooManyRequests, "slow down")

	got := Normalize(fmt.Errorf("anthropic: %w", orig))

	assert.Same(t, orig, got)
	assert.Equal(t, ModelRejected, got.Kind)
	assert.Equal(t, http.StatusTooManyRequests, got.Status)
}

func TestNormalize_Nil(t *testing.T) {
	assert.Nil(t, Normalize(nil))
}

func TestOf(t *testing.T) {
	ok := Of("hello", nil)
	assert.True(t, ok.OK())
	assert.Equal(t, "hello", ok.Value)

	failed := Of("ignored", New(Unconfigured, "model %q", "x"))
	assert.False(t, failed.OK())
	assert.Empty(t, failed.Value)
	assert.Equal(t, Unconfigured, failed.Err.Kind)
}

func TestErrorKind_HTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadGateway, Transport.HTTPStatus())
	assert.Equal(t, http.StatusBadGateway, ModelRejected.HTTPStatus())
	assert.Equal(t, http.StatusBadGateway, Malformed.HTTPStatus())
	assert.Equal(t, http.StatusNotFound, NotFound.HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, Unconfigured.HTTPStatus())
}
