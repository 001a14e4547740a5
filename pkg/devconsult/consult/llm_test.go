package consult

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestClient points a client at a handler served by httptest.
func newTestClient(t *testing.T, handler http.HandlerFunc) *LLMClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.API.BaseURL = srv.URL + "/openai/v1/"
	client := NewLLMClient(cfg, discardLogger())
	t.Cleanup(client.httpClient.CloseIdleConnections)
	return client
}

func respondJSON(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}
}

var testTurns = []Turn{
	{Role: RoleSystem, Content: "sys"},
	{Role: RoleUser, Content: "q"},
}

func TestLLMClientEndpoint(t *testing.T) {
	tests := []struct {
		baseURL  string
		expected string
	}{
		{"https://api.groq.com/openai/v1", "https://api.groq.com/openai/v1/chat/completions"},
		{"https://api.groq.com/openai/v1/", "https://api.groq.com/openai/v1/chat/completions"},
		{"", DefaultBaseURL + "/chat/completions"},
	}

	for _, tt := range tests {
		t.Run(tt.baseURL, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.API.BaseURL = tt.baseURL
			client := NewLLMClient(cfg, discardLogger())
			if got := client.Endpoint(); got != tt.expected {
				t.Errorf("Endpoint() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCompleteReturnsFirstChoice(t *testing.T) {
	client := newTestClient(t, respondJSON(`{"choices":[{"message":{"content":"X"}},{"message":{"content":"Y"}}]}`))

	got, err := client.Complete(context.Background(), testTurns, "m", "gsk_test_key_123")
	require.NoError(t, err)
	assert.Equal(t, "X", got)
}

func TestCompleteSendsRequest(t *testing.T) {
	var (
		gotReq  *http.Request
		gotBody map[string]any
	)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotReq = r
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		respondJSON(`{"choices":[{"message":{"content":"ok"}}]}`)(w, r)
	})

	_, err := client.Complete(context.Background(), testTurns, "qwen-2.5-coder-32b", "gsk_secret")
	require.NoError(t, err)

	require.NotNil(t, gotReq)
	assert.Equal(t, http.MethodPost, gotReq.Method)
	assert.Equal(t, "/openai/v1/chat/completions", gotReq.URL.Path)
	assert.Equal(t, "application/json", gotReq.Header.Get("Content-Type"))
	assert.Equal(t, "Bearer gsk_secret", gotReq.Header.Get("Authorization"))
	assert.Equal(t, UserAgent, gotReq.Header.Get("User-Agent"))

	assert.Equal(t, "qwen-2.5-coder-32b", gotBody["model"])
	assert.InDelta(t, 0.3, gotBody["temperature"], 1e-9)
	assert.InDelta(t, 2048, gotBody["max_tokens"], 1e-9)
	assert.InDelta(t, 0.95, gotBody["top_p"], 1e-9)
	assert.Equal(t, false, gotBody["stream"])
	assert.Equal(t, []any{
		map[string]any{"role": "system", "content": "sys"},
		map[string]any{"role": "user", "content": "q"},
	}, gotBody["messages"])
}

func TestCompleteMalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty choices", `{"choices":[]}`},
		{"no choices", `{"id":"x"}`},
		{"no message", `{"choices":[{"finish_reason":"stop"}]}`},
		{"empty content", `{"choices":[{"message":{"content":""}}]}`},
		{"not json", `<html>gateway</html>`},
		{"error object with choices", `{"error":{"message":"quota"},"choices":[{"message":{"content":"X"}}]}`},
		{"error string", `{"error":"overloaded"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, respondJSON(tt.body))

			got, err := client.Complete(context.Background(), testTurns, "m", "gsk_test_key_123")
			assert.Empty(t, got)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedResponse)

			var rerr *RemoteError
			require.ErrorAs(t, err, &rerr)
			assert.Equal(t, ErrorKindMalformedResponse, rerr.Kind)
			assert.Equal(t, http.StatusOK, rerr.StatusCode)
		})
	}
}

func TestCompleteNullErrorIsIgnored(t *testing.T) {
	client := newTestClient(t, respondJSON(`{"error":null,"choices":[{"message":{"content":"X"}}]}`))

	got, err := client.Complete(context.Background(), testTurns, "m", "gsk_test_key_123")
	require.NoError(t, err)
	assert.Equal(t, "X", got)
}

func TestCompleteNon2xxIsTransport(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusTooManyRequests, http.StatusBadGateway} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(status)
				_, _ = io.WriteString(w, `{"error":{"message":"nope"}}`)
			})

			_, err := client.Complete(context.Background(), testTurns, "m", "gsk_test_key_123")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrTransport)
			assert.NotErrorIs(t, err, ErrMalformedResponse)

			var rerr *RemoteError
			require.ErrorAs(t, err, &rerr)
			assert.Equal(t, status, rerr.StatusCode)
			assert.Contains(t, rerr.Error(), "nope")
		})
	}
}

func TestCompleteConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	cfg := DefaultConfig()
	cfg.API.BaseURL = "http://" + addr
	client := NewLLMClient(cfg, discardLogger())

	_, err = client.Complete(context.Background(), testTurns, "m", "gsk_test_key_123")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)

	var rerr *RemoteError
	require.ErrorAs(t, err, &rerr)
	assert.Zero(t, rerr.StatusCode)
}

func TestCompleteTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	cfg := DefaultConfig()
	cfg.API.BaseURL = srv.URL
	cfg.API.Timeout = 50 * time.Millisecond
	client := NewLLMClient(cfg, discardLogger())
	defer client.httpClient.CloseIdleConnections()

	start := time.Now()
	_, err := client.Complete(context.Background(), testTurns, "m", "gsk_test_key_123")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestCompleteHonoursCancellation(t *testing.T) {
	client := newTestClient(t, respondJSON(`{"choices":[{"message":{"content":"X"}}]}`))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Complete(ctx, testTurns, "m", "gsk_test_key_123")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		expected string
	}{
		{ErrorKindMissingCredential, "missing_credential"},
		{ErrorKindTransport, "transport"},
		{ErrorKindMalformedResponse, "malformed_response"},
		{ErrorKind(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status   int
		expected string
	}{
		{401, "auth"},
		{403, "auth"},
		{402, "billing"},
		{429, "rate_limit"},
		{400, "bad_request"},
		{500, "server"},
		{503, "server"},
		{404, "other"},
	}

	for _, tt := range tests {
		if got := classifyStatus(tt.status); got != tt.expected {
			t.Errorf("classifyStatus(%d) = %q, want %q", tt.status, got, tt.expected)
		}
	}
}
