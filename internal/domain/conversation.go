package domain

// Message is one entry in a conversation timeline (user or persona).
// Messages are immutable once appended; the core never edits or deletes them.
type Message struct {
	ID        MessageID `json:"id"`
	Content   string    `json:"content"`
	Sender    Sender    `json:"sender"`
	Timestamp Timestamp `json:"timestamp"`
}

// DefaultTitle is the sentinel a fresh conversation starts with. Title
// derivation only fires while the title still equals this value.
const DefaultTitle = "New Conversation"

const titleMaxRunes = 30

// Conversation is an append-only ordered transcript. Insertion order is
// chronological order.
type Conversation struct {
	ID        ConversationID `json:"id"`
	Title     string         `json:"title"`
	Messages  []Message      `json:"messages"`
	CreatedAt Timestamp      `json:"createdAt"`
	UpdatedAt Timestamp      `json:"updatedAt"`
}

func NewConversation(id ConversationID, now Timestamp) *Conversation {
	return &Conversation{
		ID:        id,
		Title:     DefaultTitle,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Append adds a message to the end of the transcript and bumps UpdatedAt.
func (c *Conversation) Append(msg Message) {
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = msg.Timestamp
}

// DeriveTitle sets the title to a 30-rune prefix of the first user message,
// with an ellipsis marker when truncated. It fires at most once: only while
// the title still equals the DefaultTitle sentinel and the message is
// non-empty. Returns whether the title changed.
func (c *Conversation) DeriveTitle(userMessage string) bool {
	if c.Title != DefaultTitle || len(userMessage) == 0 {
		return false
	}
	runes := []rune(userMessage)
	if len(runes) > titleMaxRunes {
		c.Title = string(runes[:titleMaxRunes]) + "..."
	} else {
		c.Title = userMessage
	}
	return true
}

// Clone returns a deep copy. History stores keep clones so later mutations
// of the active conversation cannot reach a stored snapshot.
func (c *Conversation) Clone() *Conversation {
	cp := *c
	cp.Messages = make([]Message, len(c.Messages))
	copy(cp.Messages, c.Messages)
	return &cp
}

// PersonaIDs returns the unique persona ids appearing among the non-user
// messages, in first-seen order.
func PersonaIDs(messages []Message) []PersonaID {
	seen := make(map[PersonaID]bool)
	var out []PersonaID
	for _, msg := range messages {
		if msg.Sender.IsUser() {
			continue
		}
		if id := msg.Sender.Persona; !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
