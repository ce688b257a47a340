package memory

import (
	"context"
	"testing"
	"time"

	"github.com/Yash7702/perspective-pals/internal/domain"
)

func sampleConversation(id domain.ConversationID) *domain.Conversation {
	conv := domain.NewConversation(id, time.Now())
	conv.Append(domain.Message{
		ID:        "m1",
		Content:   "hello",
		Sender:    domain.UserSender(),
		Timestamp: time.Now(),
	})
	return conv
}

func TestUpsertAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewHistoryStore()

	conv := sampleConversation("c1")
	if err := store.Upsert(ctx, conv); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	got, err := store.Get(ctx, "c1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil || got.ID != "c1" || len(got.Messages) != 1 {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
}

func TestGetAbsentReturnsNil(t *testing.T) {
	store := NewHistoryStore()

	got, err := store.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for absent id, got %+v", got)
	}
}

func TestUpsertIsLastWriteWins(t *testing.T) {
	ctx := context.Background()
	store := NewHistoryStore()

	conv := sampleConversation("c1")
	if err := store.Upsert(ctx, conv); err != nil {
		t.Fatal(err)
	}

	conv.Append(domain.Message{
		ID:        "m2",
		Content:   "again",
		Sender:    domain.PersonaSender("rational"),
		Timestamp: time.Now(),
	})
	if err := store.Upsert(ctx, conv); err != nil {
		t.Fatal(err)
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected one entry per id, got %d", len(all))
	}
	if len(all[0].Messages) != 2 {
		t.Fatalf("latest snapshot must win, got %d messages", len(all[0].Messages))
	}
}

func TestStoredSnapshotIsIsolated(t *testing.T) {
	ctx := context.Background()
	store := NewHistoryStore()

	conv := sampleConversation("c1")
	if err := store.Upsert(ctx, conv); err != nil {
		t.Fatal(err)
	}

	// Mutating the caller's copy after the upsert must not reach the store.
	conv.Append(domain.Message{ID: "m2", Content: "late", Sender: domain.UserSender(), Timestamp: time.Now()})

	got, err := store.Get(ctx, "c1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Messages) != 1 {
		t.Fatalf("stored snapshot shares state with the caller")
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store := NewHistoryStore()

	if err := store.Upsert(ctx, sampleConversation("c1")); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, "c1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	got, err := store.Get(ctx, "c1")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("expected nil after delete, got %+v", got)
	}
}

func TestListOrderedByUpdatedAt(t *testing.T) {
	ctx := context.Background()
	store := NewHistoryStore()

	older := sampleConversation("old")
	older.UpdatedAt = time.Now().Add(-time.Hour)
	newer := sampleConversation("new")
	newer.UpdatedAt = time.Now()

	if err := store.Upsert(ctx, older); err != nil {
		t.Fatal(err)
	}
	if err := store.Upsert(ctx, newer); err != nil {
		t.Fatal(err)
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].ID != "new" {
		t.Fatalf("expected newest first, got %+v", all)
	}
}
