package domain

import "context"

// ContextEntry is one role-tagged line of generation context. Index is the
// entry's position in the source transcript, carried explicitly so merged
// windows can be ordered without matching content back against the log.
type ContextEntry struct {
	Role    Role
	Content string
	Index   int
}

// GenerationClient defines how the core talks to a text-generation backend.
type GenerationClient interface {
	// Generate produces one reply in the persona's voice. On the happy path
	// it always returns displayable text; an empty extraction is degraded
	// to a fixed apology string rather than an error.
	Generate(ctx context.Context, persona Persona, userMessage string, history []ContextEntry) (string, error)

	// HasCredential reports whether the backend has a credential configured.
	// Callers check it before attempting a turn.
	HasCredential() bool
}

// HistoryStore persists conversation snapshots keyed by conversation id.
// Upsert is a whole-object replace: last write wins, no merge logic.
type HistoryStore interface {
	Upsert(ctx context.Context, conv *Conversation) error
	// Get returns (nil, nil) when the id is not present.
	Get(ctx context.Context, id ConversationID) (*Conversation, error)
	List(ctx context.Context) ([]*Conversation, error)
	Delete(ctx context.Context, id ConversationID) error
}
