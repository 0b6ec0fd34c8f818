package types

import "time"

// SessionMode is decided once from configuration when the advice service is
// built, never re-decided per call.
type SessionMode string

const (
	// ModeDemo serves deterministic local stand-in responses because no
	// endpoint or provider key is configured.
	ModeDemo SessionMode = "demo"
	// ModeDirect calls the completion provider directly with an API key.
	ModeDirect SessionMode = "direct"
	// ModeProxy posts to a backend that owns the provider integration.
	ModeProxy SessionMode = "proxy"
)

// ChatSession threads multiple chat turns together. The ID is an opaque token;
// it may be locally fabricated, so callers must not assume a remote session
// backs it.
type ChatSession struct {
	ID        string      `json:"session_id"`
	Mode      SessionMode `json:"mode"`
	CreatedAt time.Time   `json:"created_at"`
}

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is one turn of a conversation. Messages are append-only and never
// mutated after creation; IDs are monotonic per session.
type Message struct {
	ID        int         `json:"id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
}

// ChatReply is the assistant's side of one exchange.
type ChatReply struct {
	Text      string `json:"text"`
	SessionID string `json:"session_id,omitempty"`
}
