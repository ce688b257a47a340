package conversation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yash7702/perspective-pals/internal/adapters/llm"
	"github.com/Yash7702/perspective-pals/internal/adapters/storage/memory"
	"github.com/Yash7702/perspective-pals/internal/app/conversation"
	"github.com/Yash7702/perspective-pals/internal/app/roundtable"
	"github.com/Yash7702/perspective-pals/internal/domain"
)

// stubClient lets scenario tests control credential presence and failures.
type stubClient struct {
	hasKey bool
	err    error
}

func (s *stubClient) HasCredential() bool { return s.hasKey }

func (s *stubClient) Generate(
	ctx context.Context,
	persona domain.Persona,
	userMessage string,
	history []domain.ContextEntry,
) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return persona.Name + " weighs in on " + userMessage, nil
}

func newTestService(client domain.GenerationClient) (*conversation.Service, *memory.HistoryStore) {
	personas := domain.DefaultRegistry()
	orch := roundtable.NewOrchestrator(client, personas).
		WithPacing(func() time.Duration { return 0 }, func(time.Duration) {})
	history := memory.NewHistoryStore()
	return conversation.NewService(orch, personas, history), history
}

func TestSendMessageBlankIsNoOp(t *testing.T) {
	svc, _ := newTestService(llm.NewMockClient())
	svc.TogglePersona("rational")

	conv := svc.SendMessage(context.Background(), "   \t ")
	assert.Empty(t, conv.Messages)
}

func TestSendMessageWithoutPersonasIsNoOp(t *testing.T) {
	svc, history := newTestService(llm.NewMockClient())

	conv := svc.SendMessage(context.Background(), "hello?")
	assert.Empty(t, conv.Messages)

	stored, err := history.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored, "empty conversation must not be persisted")
}

func TestSendMessageRunsTurn(t *testing.T) {
	svc, history := newTestService(&stubClient{hasKey: true})
	svc.TogglePersona("rational")
	svc.TogglePersona("empath")

	conv := svc.SendMessage(context.Background(), "Should I take the job?")

	require.Len(t, conv.Messages, 3)
	assert.True(t, conv.Messages[0].Sender.IsUser())
	assert.Equal(t, domain.PersonaID("rational"), conv.Messages[1].Sender.Persona)
	assert.Equal(t, domain.PersonaID("empath"), conv.Messages[2].Sender.Persona)

	stored, err := history.Get(context.Background(), conv.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Len(t, stored.Messages, 3)
}

func TestMissingCredentialScenario(t *testing.T) {
	svc, _ := newTestService(&stubClient{hasKey: false})
	svc.TogglePersona("rational")
	svc.TogglePersona("empath")

	conv := svc.SendMessage(context.Background(), "Should I take the job?")

	require.Len(t, conv.Messages, 2, "user message plus one missing-credential notice")
	notice := conv.Messages[1]
	assert.Equal(t, domain.PersonaID("rational"), notice.Sender.Persona)
	for _, m := range conv.Messages {
		assert.NotEqual(t, domain.PersonaID("empath"), m.Sender.Persona)
	}
}

func TestFailingBackendScenario(t *testing.T) {
	svc, _ := newTestService(&stubClient{hasKey: true, err: errors.New("boom")})
	svc.TogglePersona("strategist")

	conv := svc.SendMessage(context.Background(), "What now?")

	require.Len(t, conv.Messages, 2)
	notice := conv.Messages[1]
	assert.Equal(t, domain.PersonaID("strategist"), notice.Sender.Persona)
	assert.Contains(t, notice.Content, "Strategist")
}

func TestTitleDerivedFromFirstMessage(t *testing.T) {
	svc, _ := newTestService(&stubClient{hasKey: true})
	svc.TogglePersona("rational")

	long := "This message is definitely longer than thirty characters"
	conv := svc.SendMessage(context.Background(), long)
	assert.Equal(t, long[:30]+"...", conv.Title)

	conv = svc.SendMessage(context.Background(), "short follow-up")
	assert.Equal(t, long[:30]+"...", conv.Title, "second send must not re-derive the title")
}

func TestTogglePersona(t *testing.T) {
	svc, _ := newTestService(llm.NewMockClient())

	selected := svc.TogglePersona("rational")
	assert.Equal(t, []domain.PersonaID{"rational"}, selected)

	selected = svc.TogglePersona("empath")
	assert.Equal(t, []domain.PersonaID{"rational", "empath"}, selected)

	selected = svc.TogglePersona("rational")
	assert.Equal(t, []domain.PersonaID{"empath"}, selected)
}

func TestStartNewKeepsHistory(t *testing.T) {
	svc, history := newTestService(&stubClient{hasKey: true})
	svc.TogglePersona("rational")

	old := svc.SendMessage(context.Background(), "first conversation")
	fresh := svc.StartNew()

	assert.NotEqual(t, old.ID, fresh.ID)
	assert.Equal(t, domain.DefaultTitle, fresh.Title)
	assert.Empty(t, fresh.Messages)

	stored, err := history.Get(context.Background(), old.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored, "startNew must not clear history")
}

func TestLoadUnknownIDIsNoOp(t *testing.T) {
	svc, _ := newTestService(&stubClient{hasKey: true})
	svc.TogglePersona("rational")
	before := svc.SendMessage(context.Background(), "hello")

	loaded, err := svc.Load(context.Background(), "missing-id")
	require.NoError(t, err)
	assert.False(t, loaded)

	assert.Equal(t, before.ID, svc.Conversation().ID)
	assert.Equal(t, []domain.PersonaID{"rational"}, svc.SelectedPersonas())
}

func TestLoadRecomputesSelection(t *testing.T) {
	svc, _ := newTestService(&stubClient{hasKey: true})
	svc.TogglePersona("rational")
	svc.TogglePersona("empath")
	saved := svc.SendMessage(context.Background(), "remember me")

	svc.StartNew()
	svc.TogglePersona("strategist")

	loaded, err := svc.Load(context.Background(), saved.ID)
	require.NoError(t, err)
	require.True(t, loaded)

	assert.Equal(t, saved.ID, svc.Conversation().ID)
	assert.ElementsMatch(t, []domain.PersonaID{"rational", "empath"}, svc.SelectedPersonas())
}

func TestHistoryUpsertLastWriteWins(t *testing.T) {
	svc, history := newTestService(&stubClient{hasKey: true})
	svc.TogglePersona("rational")

	conv := svc.SendMessage(context.Background(), "first")
	conv = svc.SendMessage(context.Background(), "second")

	stored, err := history.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1, "one entry per conversation id")
	assert.Equal(t, conv.ID, stored[0].ID)
	assert.Len(t, stored[0].Messages, 4)
	assert.False(t, stored[0].UpdatedAt.Before(stored[0].CreatedAt))
}

func TestDeleteConversation(t *testing.T) {
	svc, history := newTestService(&stubClient{hasKey: true})
	svc.TogglePersona("rational")
	conv := svc.SendMessage(context.Background(), "to be deleted")

	require.NoError(t, svc.DeleteConversation(context.Background(), conv.ID))

	stored, err := history.Get(context.Background(), conv.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}
