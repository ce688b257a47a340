package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Yash7702/perspective-pals/internal/domain"
)

// HistoryStore is an in-memory implementation of domain.HistoryStore.
// It is NOT persistent and is only suitable for development / local mode.
type HistoryStore struct {
	mu            sync.RWMutex
	conversations map[domain.ConversationID]*domain.Conversation
}

func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		conversations: make(map[domain.ConversationID]*domain.Conversation),
	}
}

func (s *HistoryStore) Upsert(ctx context.Context, conv *domain.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Stored snapshots are clones so callers can keep mutating their copy.
	s.conversations[conv.ID] = conv.Clone()
	return nil
}

func (s *HistoryStore) Get(ctx context.Context, id domain.ConversationID) (*domain.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.conversations[id]
	if !ok {
		return nil, nil
	}
	return conv.Clone(), nil
}

func (s *HistoryStore) List(ctx context.Context) ([]*domain.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Conversation, 0, len(s.conversations))
	for _, conv := range s.conversations {
		out = append(out, conv.Clone())
	}
	sort.Slice(out, func(a, b int) bool {
		return out[a].UpdatedAt.After(out[b].UpdatedAt)
	})
	return out, nil
}

func (s *HistoryStore) Delete(ctx context.Context, id domain.ConversationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.conversations, id)
	return nil
}
