package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

type ConversationID string
type MessageID string
type PersonaID string

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Timestamp = time.Time

// SenderKind discriminates the two Sender variants.
type SenderKind int

const (
	SenderUser SenderKind = iota
	SenderPersona
)

// Sender is a tagged union: either the user, or a reference to a persona.
// Consumption sites switch on Kind so the distinction stays exhaustive.
type Sender struct {
	Kind    SenderKind
	Persona PersonaID // set only when Kind == SenderPersona
}

func UserSender() Sender {
	return Sender{Kind: SenderUser}
}

func PersonaSender(id PersonaID) Sender {
	return Sender{Kind: SenderPersona, Persona: id}
}

func (s Sender) IsUser() bool {
	return s.Kind == SenderUser
}

// MarshalJSON keeps the stored record shape: "user" for the user variant,
// {"id": "..."} for a persona reference.
func (s Sender) MarshalJSON() ([]byte, error) {
	if s.Kind == SenderUser {
		return json.Marshal("user")
	}
	return json.Marshal(struct {
		ID PersonaID `json:"id"`
	}{ID: s.Persona})
}

func (s *Sender) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if str != "user" {
			return fmt.Errorf("unknown sender %q", str)
		}
		*s = UserSender()
		return nil
	}

	var ref struct {
		ID PersonaID `json:"id"`
	}
	if err := json.Unmarshal(data, &ref); err != nil {
		return fmt.Errorf("decode sender: %w", err)
	}
	if ref.ID == "" {
		return fmt.Errorf("persona sender without id")
	}
	*s = PersonaSender(ref.ID)
	return nil
}
