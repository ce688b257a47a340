package conversation

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Yash7702/perspective-pals/internal/app/roundtable"
	"github.com/Yash7702/perspective-pals/internal/domain"
	"github.com/Yash7702/perspective-pals/internal/observability"
)

// Service owns the active conversation and the selected-persona set, and
// persists snapshots into history on every mutation that leaves the
// conversation non-empty. The mutex serializes turns: at most one
// SendMessage is in flight per service.
type Service struct {
	mu       sync.Mutex
	orch     *roundtable.Orchestrator
	personas *domain.Registry
	history  domain.HistoryStore
	now      func() time.Time
	newID    func() string

	conv     *domain.Conversation
	selected []domain.PersonaID
}

func NewService(
	orch *roundtable.Orchestrator,
	personas *domain.Registry,
	history domain.HistoryStore,
) *Service {
	s := &Service{
		orch:     orch,
		personas: personas,
		history:  history,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	s.conv = domain.NewConversation(domain.ConversationID(s.newID()), s.now())
	return s
}

// Conversation returns a snapshot of the active conversation.
func (s *Service) Conversation() *domain.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conv.Clone()
}

// SelectedPersonas returns the selected persona ids in selection order.
func (s *Service) SelectedPersonas() []domain.PersonaID {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.PersonaID, len(s.selected))
	copy(out, s.selected)
	return out
}

// SendMessage runs one turn: append the user message, then let the
// orchestrator produce the persona replies. A blank message or an empty
// persona selection is a no-op. Returns a snapshot of the conversation
// after the turn; every failure inside the turn surfaces as a notice in
// the transcript, never as an error.
func (s *Service) SendMessage(ctx context.Context, text string) *domain.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := observability.LoggerFromContext(ctx).With("conversation_id", s.conv.ID)

	if strings.TrimSpace(text) == "" || len(s.selected) == 0 {
		log.Info("send ignored", "selected_count", len(s.selected))
		return s.conv.Clone()
	}

	log.Info("turn started", "selected_count", len(s.selected))

	appendMsg := func(content string, sender domain.Sender) {
		s.appendMessage(ctx, content, sender)
	}

	appendMsg(text, domain.UserSender())
	s.orch.Run(ctx, text, s.conv, s.selected, appendMsg)

	// Title derivation happens inside the turn; persist it.
	s.persist(ctx)

	log.Info("turn completed", "message_count", len(s.conv.Messages))
	return s.conv.Clone()
}

// TogglePersona adds the id if absent and removes it if present.
func (s *Service) TogglePersona(id domain.PersonaID) []domain.PersonaID {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sel := range s.selected {
		if sel == id {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			return s.selectedCopy()
		}
	}
	s.selected = append(s.selected, id)
	return s.selectedCopy()
}

// StartNew replaces the active conversation with a fresh empty one.
// History is untouched.
func (s *Service) StartNew() *domain.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conv = domain.NewConversation(domain.ConversationID(s.newID()), s.now())
	return s.conv.Clone()
}

// Load replaces the active conversation with the stored snapshot and
// recomputes the selected personas from the personas referenced in its
// messages. An id not present in history is silently ignored; the active
// conversation and selection stay unchanged.
func (s *Service) Load(ctx context.Context, id domain.ConversationID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved, err := s.history.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if saved == nil {
		return false, nil
	}

	s.conv = saved.Clone()
	s.selected = domain.PersonaIDs(saved.Messages)

	observability.LoggerFromContext(ctx).Info("conversation loaded",
		"conversation_id", id,
		"message_count", len(saved.Messages),
		"selected_count", len(s.selected))
	return true, nil
}

// ListHistory returns all stored conversation snapshots.
func (s *Service) ListHistory(ctx context.Context) ([]*domain.Conversation, error) {
	return s.history.List(ctx)
}

// DeleteConversation removes a snapshot from history. The active
// conversation is unaffected.
func (s *Service) DeleteConversation(ctx context.Context, id domain.ConversationID) error {
	return s.history.Delete(ctx, id)
}

func (s *Service) selectedCopy() []domain.PersonaID {
	out := make([]domain.PersonaID, len(s.selected))
	copy(out, s.selected)
	return out
}

// appendMessage writes into the active conversation and upserts the
// snapshot into history. Persistence failures are logged, not propagated:
// the transcript itself is the source of truth for the session.
func (s *Service) appendMessage(ctx context.Context, content string, sender domain.Sender) {
	s.conv.Append(domain.Message{
		ID:        domain.MessageID(s.newID()),
		Content:   content,
		Sender:    sender,
		Timestamp: s.now(),
	})
	s.persist(ctx)
}

// persist upserts the active conversation into history once it is
// non-empty. The stored snapshot's UpdatedAt is refreshed to the upsert
// time, independent of the timestamps on the active object.
func (s *Service) persist(ctx context.Context) {
	if len(s.conv.Messages) == 0 {
		return
	}

	snapshot := s.conv.Clone()
	snapshot.UpdatedAt = s.now()
	if err := s.history.Upsert(ctx, snapshot); err != nil {
		observability.LoggerFromContext(ctx).Error("failed to persist conversation",
			"conversation_id", s.conv.ID,
			"error", err)
	}
}
