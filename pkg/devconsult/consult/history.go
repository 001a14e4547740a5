package consult

import "sync"

// Role tags a conversation turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one role-tagged message. Values are copied, never shared.
type Turn struct {
	Role    Role
	Content string
}

// History is the running exchange log of one consultant session.
// It always starts with exactly one system turn and only grows by whole
// user/assistant exchanges.
type History struct {
	mu    sync.RWMutex
	turns []Turn
}

// NewHistory seeds a history with the system prompt.
func NewHistory(systemPrompt string) *History {
	return &History{
		turns: []Turn{{Role: RoleSystem, Content: systemPrompt}},
	}
}

// AppendExchange commits a user turn and its assistant reply together.
func (h *History) AppendExchange(user, assistant string) {
	h.mu.Lock()
	h.turns = append(h.turns,
		Turn{Role: RoleUser, Content: user},
		Turn{Role: RoleAssistant, Content: assistant},
	)
	h.mu.Unlock()
}

// Turns returns a copy of the history, oldest first.
func (h *History) Turns() []Turn {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

// WithUser returns a copy of the history followed by a pending user turn.
// The history itself is not modified.
func (h *History) WithUser(query string) []Turn {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Turn, len(h.turns), len(h.turns)+1)
	copy(out, h.turns)
	return append(out, Turn{Role: RoleUser, Content: query})
}

// Len returns the number of turns, system seed included.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.turns)
}
