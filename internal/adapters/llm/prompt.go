package llm

import (
	"strings"

	"github.com/Yash7702/perspective-pals/internal/domain"
)

// apologyReply is returned whenever a backend's extraction yields nothing
// usable, so callers always receive displayable text on the happy path.
const apologyReply = "Sorry, I couldn't generate a response at this time. Please try again later."

// ChatMessage is the role-tagged wire shape shared by chat-style backends.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// BuildChatMessages assembles the request for a chat-style backend: the
// persona's system prompt, the context window, then the new user message.
func BuildChatMessages(persona domain.Persona, userMessage string, history []domain.ContextEntry) []ChatMessage {
	msgs := make([]ChatMessage, 0, len(history)+2)
	msgs = append(msgs, ChatMessage{Role: "system", Content: persona.SystemPrompt})
	for _, entry := range history {
		msgs = append(msgs, ChatMessage{Role: string(entry.Role), Content: entry.Content})
	}
	msgs = append(msgs, ChatMessage{Role: "user", Content: userMessage})
	return msgs
}

// BuildRawPrompt flattens the same request into a single prompt for
// raw-continuation backends. The trailing persona label invites the model
// to continue as that persona.
func BuildRawPrompt(persona domain.Persona, userMessage string, history []domain.ContextEntry) string {
	var b strings.Builder
	b.WriteString(persona.SystemPrompt)
	b.WriteString("\n\n")
	for _, entry := range history {
		if entry.Role == domain.RoleAssistant {
			b.WriteString(persona.Name)
		} else {
			b.WriteString("User")
		}
		b.WriteString(": ")
		b.WriteString(entry.Content)
		b.WriteString("\n")
	}
	b.WriteString("User: ")
	b.WriteString(userMessage)
	b.WriteString("\n")
	b.WriteString(persona.Name)
	b.WriteString(": ")
	return b.String()
}

// TruncateReply cuts a raw continuation at the first turn-boundary marker,
// so a hallucinated next turn never bleeds into the reply.
func TruncateReply(text, personaName string) string {
	cut := len(text)
	for _, marker := range []string{"User:", personaName + ":"} {
		if idx := strings.Index(text, marker); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	return strings.TrimSpace(text[:cut])
}
