package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/Yash7702/perspective-pals/internal/domain"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiClient implements domain.GenerationClient using Vertex AI (Gemini),
// the third chat-style backend. Authentication uses application default
// credentials, validated when the client is constructed.
type GeminiClient struct {
	client    *genai.Client
	modelName string
}

func NewGeminiClient(ctx context.Context, projectID, location, modelName string) (*GeminiClient, error) {
	if projectID == "" || location == "" {
		return nil, fmt.Errorf("gemini: project and location are required")
	}
	if modelName == "" {
		modelName = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: creating client: %w", err)
	}

	return &GeminiClient{
		client:    client,
		modelName: modelName,
	}, nil
}

// HasCredential is always true once the client exists: Vertex auth is
// resolved at construction, not per call.
func (g *GeminiClient) HasCredential() bool {
	return g.client != nil
}

// Generate implements domain.GenerationClient.
func (g *GeminiClient) Generate(
	ctx context.Context,
	persona domain.Persona,
	userMessage string,
	history []domain.ContextEntry,
) (string, error) {
	var contents []*genai.Content
	for _, entry := range history {
		var role genai.Role = genai.RoleUser
		if entry.Role == domain.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(entry.Content, role))
	}
	contents = append(contents, genai.NewContentFromText(userMessage, genai.RoleUser))

	temp := float32(0.7)
	topP := float32(0.9)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(persona.SystemPrompt, genai.RoleUser),
		Temperature:       &temp,
		TopP:              &topP,
		MaxOutputTokens:   int32(500),
	}

	res, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	if text := res.Text(); text != "" {
		return text, nil
	}
	return apologyReply, nil
}
