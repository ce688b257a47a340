package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Yash7702/perspective-pals/internal/domain"
)

const defaultOpenAIModel = "gpt-4o"

// OpenAIClient implements domain.GenerationClient against the OpenAI
// chat-completions API. The credential is passed in at construction, never
// read from ambient process state.
type OpenAIClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIClient{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    "https://api.openai.com/v1",
		apiKey:     apiKey,
		model:      model,
	}
}

func (c *OpenAIClient) HasCredential() bool {
	return c.apiKey != ""
}

type openAIRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type openAIError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate implements domain.GenerationClient.
func (c *OpenAIClient) Generate(
	ctx context.Context,
	persona domain.Persona,
	userMessage string,
	history []domain.ContextEntry,
) (string, error) {
	if c.apiKey == "" {
		return "", domain.ErrMissingCredential
	}

	body, err := json.Marshal(openAIRequest{
		Model:       c.model,
		Messages:    BuildChatMessages(persona, userMessage, history),
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		return "", fmt.Errorf("openai: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("openai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr openAIError
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return "", &domain.ProviderError{
			Provider: "openai",
			Status:   resp.StatusCode,
			Message:  apiErr.Error.Message,
		}
	}

	var out openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("openai: decode response: %w", err)
	}

	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return apologyReply, nil
	}
	return out.Choices[0].Message.Content, nil
}
