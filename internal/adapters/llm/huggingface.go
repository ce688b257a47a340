package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Yash7702/perspective-pals/internal/domain"
)

const defaultHuggingFaceModel = "HuggingFaceH4/zephyr-7b-beta"

// HuggingFaceClient implements domain.GenerationClient against the Hugging
// Face inference API. This is a raw text-generation backend: the model
// continues a concatenated prompt, so replies must be truncated at the
// first turn-boundary marker.
type HuggingFaceClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

func NewHuggingFaceClient(apiKey, model string) *HuggingFaceClient {
	if model == "" {
		model = defaultHuggingFaceModel
	}
	return &HuggingFaceClient{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    "https://api-inference.huggingface.co",
		apiKey:     apiKey,
		model:      model,
	}
}

func (c *HuggingFaceClient) HasCredential() bool {
	return c.apiKey != ""
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	TopP           float64 `json:"top_p"`
	ReturnFullText bool    `json:"return_full_text"`
}

type hfCompletion struct {
	GeneratedText string `json:"generated_text"`
}

// Generate implements domain.GenerationClient.
func (c *HuggingFaceClient) Generate(
	ctx context.Context,
	persona domain.Persona,
	userMessage string,
	history []domain.ContextEntry,
) (string, error) {
	if c.apiKey == "" {
		return "", domain.ErrMissingCredential
	}

	body, err := json.Marshal(hfRequest{
		Inputs: BuildRawPrompt(persona, userMessage, history),
		Parameters: hfParameters{
			MaxNewTokens:   500,
			Temperature:    0.7,
			TopP:           0.9,
			ReturnFullText: false,
		},
	})
	if err != nil {
		return "", fmt.Errorf("huggingface: encode request: %w", err)
	}

	url := c.baseURL + "/models/" + c.model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("huggingface: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("huggingface: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &domain.ProviderError{
			Provider: "huggingface",
			Status:   resp.StatusCode,
			Message:  strings.TrimSpace(string(detail)),
		}
	}

	var completions []hfCompletion
	if err := json.NewDecoder(resp.Body).Decode(&completions); err != nil {
		return "", fmt.Errorf("huggingface: decode response: %w", err)
	}
	if len(completions) == 0 {
		return apologyReply, nil
	}

	reply := TruncateReply(completions[0].GeneratedText, persona.Name)
	if reply == "" {
		return apologyReply, nil
	}
	return reply, nil
}
