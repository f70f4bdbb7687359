package reviewer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultOpenAIURL = "https://api.openai.com/v1/chat/completions"

const maxCompletionTokens = 4096

// Completer issues one chat-completion request and returns the raw message
// content.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// OpenAI implements Completer against the OpenAI chat-completions API.
type OpenAI struct {
	apiKey      string
	model       string
	temperature float64
	baseURL     string
	client      *http.Client
}

// NewOpenAI creates a completion client. baseURL overrides the public API
// endpoint when non-empty (tests, proxies).
func NewOpenAI(apiKey, model string, temperature float64, baseURL string) *OpenAI {
	if baseURL == "" {
		baseURL = defaultOpenAIURL
	}
	return &OpenAI{
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		baseURL:     baseURL,
		client:      &http.Client{Timeout: 120 * time.Second},
	}
}

type openaiRequest struct {
	Model       string          `json:"model"`
	Messages    []openaiMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiResponse struct {
	Choices []struct {
		Message openaiMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends a single request with no retries; the caller decides what a
// failure means.
func (o *OpenAI) Complete(ctx context.Context, system, user string) (string, error) {
	payload, err := json.Marshal(openaiRequest{
		Model: o.model,
		Messages: []openaiMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   maxCompletionTokens,
		Temperature: o.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result openaiResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	if result.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty message content in response")
	}
	return result.Choices[0].Message.Content, nil
}
