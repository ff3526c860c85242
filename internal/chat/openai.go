package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const openaiAPI = "https://api.openai.com/v1/chat/completions"

// The bubble next to the sprite fits a couple of sentences, so replies are
// kept short and a little playful.
const (
	defaultMaxTokens = 150
	temperature      = 0.7
)

// OpenAI calls the OpenAI chat-completions API directly.
type OpenAI struct {
	apiKey    string
	model     string
	maxTokens int
	baseURL   string
	client    *http.Client
}

// NewOpenAI creates a new OpenAI API client.
func NewOpenAI(apiKey, model string, maxTokens int, timeout time.Duration) *OpenAI {
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAI{
		apiKey:    apiKey,
		model:     model,
		maxTokens: maxTokens,
		baseURL:   openaiAPI,
		client:    &http.Client{Timeout: timeout},
	}
}

// Complete sends the messages to the chat-completions endpoint and returns
// the first choice's content.
func (o *OpenAI) Complete(ctx context.Context, messages []Message) (string, error) {
	reqBody := map[string]any{
		"model":       o.model,
		"messages":    messages,
		"max_tokens":  o.maxTokens,
		"temperature": temperature,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai api: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai api status %d: %s", resp.StatusCode, respBody)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("openai api: empty choices")
	}

	return result.Choices[0].Message.Content, nil
}
