package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDeriveTitle(t *testing.T) {
	now := time.Now()

	t.Run("short message is used unchanged", func(t *testing.T) {
		conv := NewConversation("c1", now)
		if !conv.DeriveTitle("Short question") {
			t.Fatalf("expected title to change")
		}
		if conv.Title != "Short question" {
			t.Fatalf("got %q", conv.Title)
		}
	})

	t.Run("long message is truncated with ellipsis", func(t *testing.T) {
		conv := NewConversation("c1", now)
		msg := "This message is definitely longer than thirty characters"
		conv.DeriveTitle(msg)
		want := msg[:30] + "..."
		if conv.Title != want {
			t.Fatalf("got %q, want %q", conv.Title, want)
		}
	})

	t.Run("fires at most once", func(t *testing.T) {
		conv := NewConversation("c1", now)
		conv.DeriveTitle("first message")
		if conv.DeriveTitle("second message") {
			t.Fatalf("title derived twice")
		}
		if conv.Title != "first message" {
			t.Fatalf("got %q", conv.Title)
		}
	})

	t.Run("empty message is ignored", func(t *testing.T) {
		conv := NewConversation("c1", now)
		if conv.DeriveTitle("") {
			t.Fatalf("empty message must not derive a title")
		}
		if conv.Title != DefaultTitle {
			t.Fatalf("got %q", conv.Title)
		}
	})
}

func TestAppendBumpsUpdatedAt(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	later := created.Add(time.Minute)

	conv := NewConversation("c1", created)
	conv.Append(Message{ID: "m1", Content: "hi", Sender: UserSender(), Timestamp: later})

	if !conv.UpdatedAt.Equal(later) {
		t.Fatalf("UpdatedAt not bumped: %v", conv.UpdatedAt)
	}
	if conv.UpdatedAt.Before(conv.CreatedAt) {
		t.Fatalf("UpdatedAt before CreatedAt")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	conv := NewConversation("c1", time.Now())
	conv.Append(Message{ID: "m1", Content: "hi", Sender: UserSender(), Timestamp: time.Now()})

	clone := conv.Clone()
	conv.Append(Message{ID: "m2", Content: "again", Sender: UserSender(), Timestamp: time.Now()})

	if len(clone.Messages) != 1 {
		t.Fatalf("clone shares the message slice with the original")
	}
}

func TestPersonaIDsDeduplicates(t *testing.T) {
	messages := []Message{
		{ID: "m1", Sender: UserSender()},
		{ID: "m2", Sender: PersonaSender("rational")},
		{ID: "m3", Sender: PersonaSender("empath")},
		{ID: "m4", Sender: PersonaSender("rational")},
	}

	ids := PersonaIDs(messages)
	if len(ids) != 2 {
		t.Fatalf("expected 2 unique ids, got %v", ids)
	}
	if ids[0] != "rational" || ids[1] != "empath" {
		t.Fatalf("unexpected ids: %v", ids)
	}
}

func TestSenderJSONRoundTrip(t *testing.T) {
	t.Run("user", func(t *testing.T) {
		data, err := json.Marshal(UserSender())
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != `"user"` {
			t.Fatalf("got %s", data)
		}

		var s Sender
		if err := json.Unmarshal(data, &s); err != nil {
			t.Fatal(err)
		}
		if !s.IsUser() {
			t.Fatalf("round trip lost the user variant")
		}
	})

	t.Run("persona", func(t *testing.T) {
		data, err := json.Marshal(PersonaSender("strategist"))
		if err != nil {
			t.Fatal(err)
		}

		var s Sender
		if err := json.Unmarshal(data, &s); err != nil {
			t.Fatal(err)
		}
		if s.IsUser() || s.Persona != "strategist" {
			t.Fatalf("round trip lost the persona ref: %+v", s)
		}
	})

	t.Run("unknown string rejected", func(t *testing.T) {
		var s Sender
		if err := json.Unmarshal([]byte(`"robot"`), &s); err == nil {
			t.Fatalf("expected error for unknown sender string")
		}
	})
}

func TestRegistryFind(t *testing.T) {
	reg := DefaultRegistry()

	if _, err := reg.Find("rational"); err != nil {
		t.Fatalf("known persona not found: %v", err)
	}

	_, err := reg.Find("nope")
	if err == nil {
		t.Fatalf("expected error for unknown persona")
	}
}

func TestDefaultRegistryCatalog(t *testing.T) {
	personas := DefaultRegistry().List()
	if len(personas) != 5 {
		t.Fatalf("expected 5 personas, got %d", len(personas))
	}
	for _, p := range personas {
		if p.SystemPrompt == "" {
			t.Fatalf("persona %s has no system prompt", p.ID)
		}
	}
}
