package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Yash7702/perspective-pals/internal/domain"
)

// Store implements domain.HistoryStore on Firestore: one document per
// conversation id, messages embedded as an array field so upserts stay
// whole-object replaces.
type Store struct {
	client *firestore.Client
}

// NewStore creates a Firestore store.
// Uses the project passed (PALS_GCP_PROJECT).
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) conversationsCol() *firestore.CollectionRef {
	return s.client.Collection("conversations")
}

func (s *Store) conversationDocRef(id domain.ConversationID) *firestore.DocumentRef {
	return s.conversationsCol().Doc(string(id))
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

type conversationDoc struct {
	Title     string       `firestore:"title"`
	Messages  []messageDoc `firestore:"messages"`
	CreatedAt time.Time    `firestore:"created_at"`
	UpdatedAt time.Time    `firestore:"updated_at"`
}

type messageDoc struct {
	ID        string    `firestore:"id"`
	Content   string    `firestore:"content"`
	Sender    string    `firestore:"sender"` // "user" or "persona"
	PersonaID string    `firestore:"persona_id"`
	Timestamp time.Time `firestore:"timestamp"`
}

func toConversationDoc(conv *domain.Conversation) conversationDoc {
	msgs := make([]messageDoc, 0, len(conv.Messages))
	for _, m := range conv.Messages {
		doc := messageDoc{
			ID:        string(m.ID),
			Content:   m.Content,
			Sender:    "user",
			Timestamp: m.Timestamp,
		}
		if !m.Sender.IsUser() {
			doc.Sender = "persona"
			doc.PersonaID = string(m.Sender.Persona)
		}
		msgs = append(msgs, doc)
	}

	return conversationDoc{
		Title:     conv.Title,
		Messages:  msgs,
		CreatedAt: conv.CreatedAt,
		UpdatedAt: conv.UpdatedAt,
	}
}

func fromConversationDoc(id domain.ConversationID, doc conversationDoc) *domain.Conversation {
	msgs := make([]domain.Message, 0, len(doc.Messages))
	for _, m := range doc.Messages {
		sender := domain.UserSender()
		if m.Sender == "persona" {
			sender = domain.PersonaSender(domain.PersonaID(m.PersonaID))
		}
		msgs = append(msgs, domain.Message{
			ID:        domain.MessageID(m.ID),
			Content:   m.Content,
			Sender:    sender,
			Timestamp: m.Timestamp,
		})
	}

	return &domain.Conversation{
		ID:        id,
		Title:     doc.Title,
		Messages:  msgs,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

// ─────────────────────────────────────────
// HistoryStore implementation
// ─────────────────────────────────────────

func (s *Store) Upsert(ctx context.Context, conv *domain.Conversation) error {
	_, err := s.conversationDocRef(conv.ID).Set(ctx, toConversationDoc(conv))
	if err != nil {
		return fmt.Errorf("firestore Upsert: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id domain.ConversationID) (*domain.Conversation, error) {
	snap, err := s.conversationDocRef(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("firestore Get: %w", err)
	}

	var doc conversationDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore Get decode: %w", err)
	}
	return fromConversationDoc(id, doc), nil
}

func (s *Store) List(ctx context.Context) ([]*domain.Conversation, error) {
	q := s.conversationsCol().OrderBy("updated_at", firestore.Desc)

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []*domain.Conversation
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore List: %w", err)
		}

		var doc conversationDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode conversationDoc: %w", err)
		}
		out = append(out, fromConversationDoc(domain.ConversationID(snap.Ref.ID), doc))
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id domain.ConversationID) error {
	_, err := s.conversationDocRef(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("firestore Delete: %w", err)
	}
	return nil
}
