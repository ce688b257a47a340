package llm

import (
	"context"
	"math/rand/v2"

	"github.com/Yash7702/perspective-pals/internal/domain"
)

// MockClient serves canned openers per persona, useful for dev mode and tests.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

var mockReplies = map[domain.PersonaID][]string{
	"rational": {
		"Based on the available facts, I must analyze this objectively. The evidence suggests that...",
		"From a logical standpoint, we should consider the following factors...",
		"Let's break this down systematically and examine each component...",
	},
	"empath": {
		"I'm sensing that this situation has deep emotional implications. People might feel...",
		"The human impact here cannot be overlooked. Many would experience...",
		"From a compassionate perspective, we need to consider how this affects...",
	},
	"traditionalist": {
		"Traditional wisdom offers clear guidance here. Our established principles suggest...",
		"History has shown us that in similar situations, the proper approach is to...",
		"From a principled standpoint, there are certain standards we must uphold...",
	},
	"freethinker": {
		"What if we looked at this from an entirely new angle? Consider the possibility that...",
		"Let's challenge our assumptions and consider some creative alternatives...",
		"Breaking from tradition might yield better results. We could attempt...",
	},
	"strategist": {
		"Let's focus on action and results. The most effective strategy would be to...",
		"This situation calls for bold action. I suggest immediately...",
		"Let's not overthink this. The winning move is clearly to...",
	},
}

func (m *MockClient) HasCredential() bool {
	return true
}

func (m *MockClient) Generate(
	ctx context.Context,
	persona domain.Persona,
	userMessage string,
	history []domain.ContextEntry,
) (string, error) {
	replies, ok := mockReplies[persona.ID]
	if !ok {
		return apologyReply, nil
	}
	return replies[rand.IntN(len(replies))], nil
}
