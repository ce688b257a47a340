package roundtable

import (
	"sort"

	"github.com/Yash7702/perspective-pals/internal/domain"
)

// contextWindow bounds each of the two trailing windows independently.
const contextWindow = 3

// BuildContext derives the generation context for one persona from the full
// transcript: the last 3 user messages and the last 3 messages by that
// persona, merged back into original chronological order. Each entry carries
// its transcript index, so merging never has to match content back against
// the log (identical messages stay unambiguous). Pure function, no side
// effects; returns at most 6 entries.
func BuildContext(messages []domain.Message, personaID domain.PersonaID) []domain.ContextEntry {
	var userEntries, personaEntries []domain.ContextEntry

	for i, msg := range messages {
		switch {
		case msg.Sender.IsUser():
			userEntries = append(userEntries, domain.ContextEntry{
				Role:    domain.RoleUser,
				Content: msg.Content,
				Index:   i,
			})
		case msg.Sender.Persona == personaID:
			personaEntries = append(personaEntries, domain.ContextEntry{
				Role:    domain.RoleAssistant,
				Content: msg.Content,
				Index:   i,
			})
		}
	}

	userEntries = tail(userEntries, contextWindow)
	personaEntries = tail(personaEntries, contextWindow)

	merged := make([]domain.ContextEntry, 0, len(userEntries)+len(personaEntries))
	merged = append(merged, userEntries...)
	merged = append(merged, personaEntries...)
	sort.Slice(merged, func(a, b int) bool {
		return merged[a].Index < merged[b].Index
	})

	return merged
}

func tail(entries []domain.ContextEntry, n int) []domain.ContextEntry {
	if len(entries) > n {
		return entries[len(entries)-n:]
	}
	return entries
}
