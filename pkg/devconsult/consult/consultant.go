// Package consult implements the software-engineering consultant: a remote
// chat-completion path with a deterministic templated fallback.
package consult

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Completer answers a conversation. *LLMClient implements it.
type Completer interface {
	Complete(ctx context.Context, turns []Turn, model, apiKey string) (string, error)
}

// ConsultantConfig is everything a consultant needs, resolved up front so
// nothing reads the environment mid-call.
type ConsultantConfig struct {
	Credentials  Credentials
	SystemPrompt string
}

// Consultant answers questions for one session. Ask always returns text.
type Consultant struct {
	id        string
	creds     Credentials
	completer Completer
	history   *History
	logger    *slog.Logger

	// mu serialises Ask so concurrent callers cannot interleave exchanges.
	mu sync.Mutex
}

// NewConsultant creates a consultant with a history seeded by the system prompt.
func NewConsultant(cfg ConsultantConfig, completer Completer, logger *slog.Logger) *Consultant {
	id := uuid.NewString()
	return &Consultant{
		id:        id,
		creds:     cfg.Credentials,
		completer: completer,
		history:   NewHistory(cfg.SystemPrompt),
		logger:    logger.With("component", "consultant", "session", id),
	}
}

// Option adjusts the resolved ConsultantConfig in New.
type Option func(*ConsultantConfig)

// WithModel overrides the resolved model. An empty model is ignored.
func WithModel(model string) Option {
	return func(cc *ConsultantConfig) {
		if model != "" {
			cc.Credentials.Model = model
		}
	}
}

// New builds a consultant from a loaded config using the real HTTP client.
func New(cfg *Config, logger *slog.Logger, opts ...Option) *Consultant {
	cc := ConsultantConfig{
		Credentials:  ResolveCredentials(cfg),
		SystemPrompt: cfg.SystemPrompt(),
	}
	for _, opt := range opts {
		opt(&cc)
	}
	return NewConsultant(cc, NewLLMClient(cfg, logger), logger)
}

// SessionID identifies this consultant in logs.
func (c *Consultant) SessionID() string { return c.id }

// Credentials returns the credentials resolved at construction.
func (c *Consultant) Credentials() Credentials { return c.creds }

// History returns a copy of the conversation so far.
func (c *Consultant) History() []Turn { return c.history.Turns() }

// Ask answers query remotely when possible and falls back to the topic
// templates otherwise. History only records successful exchanges.
func (c *Consultant) Ask(ctx context.Context, query string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.completer == nil || !plausibleKey(c.creds.APIKey) {
		c.logFallback(ctx, query, &RemoteError{Kind: ErrorKindMissingCredential, Err: ErrMissingCredential})
		return Route(query)
	}

	text, err := c.completer.Complete(ctx, c.history.WithUser(query), c.creds.Model, c.creds.APIKey)
	if err == nil && strings.TrimSpace(text) == "" {
		err = &RemoteError{Kind: ErrorKindMalformedResponse, Err: errors.New("blank completion")}
	}
	if err != nil {
		c.logFallback(ctx, query, err)
		return Route(query)
	}

	c.history.AppendExchange(query, text)
	c.logger.Debug("consultation answered remotely",
		"model", c.creds.Model,
		"history_len", c.history.Len(),
	)
	return text
}

func (c *Consultant) logFallback(ctx context.Context, query string, err error) {
	kind := ErrorKindTransport
	var rerr *RemoteError
	if errors.As(err, &rerr) {
		kind = rerr.Kind
	}
	level := slog.LevelWarn
	if kind == ErrorKindMissingCredential {
		level = slog.LevelInfo
	}
	c.logger.Log(ctx, level, "using templated consultation",
		"reason", kind.String(),
		"topic", Classify(query),
		"error", err,
	)
}
