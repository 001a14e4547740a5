// Package consult – llm.go implements the chat-completion client.
// Uses the OpenAI-compatible API format (Groq, OpenAI, any compatible endpoint).
// Exactly one request per call, no retries, no streaming.
package consult

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// ---------- Wire Types (OpenAI-compatible) ----------

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	TopP        float64       `json:"top_p"`
	Stream      bool          `json:"stream"`
}

// chatResponse decodes only what we need. Pointers distinguish a missing
// message object from an empty one.
type chatResponse struct {
	Choices []struct {
		Message *struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage chatResponseUsage `json:"usage"`
	// Error is set by some gateways on a 2xx reply; its presence voids choices.
	Error json.RawMessage `json:"error"`
}

const (
	requestTemperature = 0.3
	requestMaxTokens   = 2048
	requestTopP        = 0.95
)

// ---------- Error Classification ----------

// ErrorKind classifies why a consultation could not be answered remotely.
type ErrorKind int

const (
	ErrorKindMissingCredential ErrorKind = iota // empty or implausible key
	ErrorKindTransport                          // DNS, connect, timeout, non-2xx
	ErrorKindMalformedResponse                  // unexpected JSON shape or empty content
)

// String returns a human-readable label for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindMissingCredential:
		return "missing_credential"
	case ErrorKindTransport:
		return "transport"
	case ErrorKindMalformedResponse:
		return "malformed_response"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is against a *RemoteError.
var (
	ErrMissingCredential = errors.New("missing credential")
	ErrTransport         = errors.New("transport failure")
	ErrMalformedResponse = errors.New("malformed response")
)

// RemoteError is the only error type Complete returns.
type RemoteError struct {
	Kind       ErrorKind
	StatusCode int // HTTP status, 0 when no response was received
	Err        error
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (HTTP %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Is matches the sentinel for the error's kind.
func (e *RemoteError) Is(target error) bool {
	switch target {
	case ErrMissingCredential:
		return e.Kind == ErrorKindMissingCredential
	case ErrTransport:
		return e.Kind == ErrorKindTransport
	case ErrMalformedResponse:
		return e.Kind == ErrorKindMalformedResponse
	}
	return false
}

// classifyStatus labels a non-2xx status for logs.
func classifyStatus(statusCode int) string {
	switch {
	case statusCode == 401 || statusCode == 403:
		return "auth"
	case statusCode == 402:
		return "billing"
	case statusCode == 429:
		return "rate_limit"
	case statusCode == 400:
		return "bad_request"
	case statusCode >= 500:
		return "server"
	default:
		return "other"
	}
}

// ---------- Client ----------

// LLMClient issues chat-completion requests.
type LLMClient struct {
	endpoint   string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// NewLLMClient creates a client for cfg's endpoint.
func NewLLMClient(cfg *Config, logger *slog.Logger) *LLMClient {
	baseURL := cfg.API.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.API.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &LLMClient{
		endpoint: strings.TrimRight(baseURL, "/") + "/chat/completions",
		timeout:  timeout,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        4,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		logger: logger.With("component", "llm"),
	}
}

// Endpoint returns the full chat-completions URL.
func (c *LLMClient) Endpoint() string { return c.endpoint }

// Complete sends turns to the model and returns the first choice's content.
// The key is not checked here; callers decide whether a call is worthwhile.
func (c *LLMClient) Complete(ctx context.Context, turns []Turn, model, apiKey string) (string, error) {
	messages := make([]chatMessage, 0, len(turns))
	for _, t := range turns {
		messages = append(messages, chatMessage{Role: string(t.Role), Content: t.Content})
	}

	bodyBytes, err := json.Marshal(chatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: requestTemperature,
		MaxTokens:   requestMaxTokens,
		TopP:        requestTopP,
		Stream:      false,
	})
	if err != nil {
		return "", &RemoteError{Kind: ErrorKindTransport, Err: fmt.Errorf("marshaling request: %w", err)}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", &RemoteError{Kind: ErrorKindTransport, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("User-Agent", UserAgent)

	c.logger.Debug("sending chat completion",
		"model", model,
		"messages", len(messages),
		"endpoint", c.endpoint,
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &RemoteError{Kind: ErrorKindTransport, Err: fmt.Errorf("API request failed: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &RemoteError{Kind: ErrorKindTransport, StatusCode: resp.StatusCode, Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("API error",
			"model", model,
			"status", resp.StatusCode,
			"class", classifyStatus(resp.StatusCode),
			"body", truncate(string(respBody), 300),
		)
		return "", &RemoteError{
			Kind:       ErrorKindTransport,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("API returned %d: %s", resp.StatusCode, truncate(string(respBody), 200)),
		}
	}

	content, usage, err := parseChatResponse(respBody)
	if err != nil {
		return "", &RemoteError{Kind: ErrorKindMalformedResponse, StatusCode: resp.StatusCode, Err: err}
	}

	c.logger.Info("chat completion done",
		"model", model,
		"duration_ms", time.Since(start).Milliseconds(),
		"prompt_tokens", usage.PromptTokens,
		"completion_tokens", usage.CompletionTokens,
	)
	return content, nil
}

// parseChatResponse extracts choices[0].message.content.
func parseChatResponse(body []byte) (string, chatResponseUsage, error) {
	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", chatResponseUsage{}, fmt.Errorf("parsing response: %w", err)
	}
	usage := chatResp.Usage
	if e := bytes.TrimSpace(chatResp.Error); len(e) > 0 && !bytes.Equal(e, []byte("null")) {
		return "", usage, fmt.Errorf("response carries an error: %s", truncate(string(e), 200))
	}
	if len(chatResp.Choices) == 0 {
		return "", usage, errors.New("no choices in response")
	}
	msg := chatResp.Choices[0].Message
	if msg == nil {
		return "", usage, errors.New("first choice has no message")
	}
	if msg.Content == "" {
		return "", usage, errors.New("first choice has empty content")
	}
	return msg.Content, usage, nil
}

type chatResponseUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

// truncate shortens s to at most n bytes, appending "..." when cut.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
