package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Makarios44/smart-plan-eats-sub000/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Gateway billing/limit signals, surfaced as typed errors so handlers can
// translate them into user-facing messages. Never retried here.
var (
	ErrRateLimited    = errors.New("llm gateway rate limited")
	ErrQuotaExhausted = errors.New("llm gateway quota exhausted")
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

type Choice struct {
	Index   int     `json:"index"`
	Message Message `json:"message"`
}

type ChatResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Choices []Choice `json:"choices"`
}

// Client speaks the OpenAI-compatible chat completions protocol against
// whatever gateway LLM_BASE_URL points to.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewClient() *Client {
	baseURL := os.Getenv("LLM_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := os.Getenv("LLM_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &Client{
		apiKey:  os.Getenv("LLM_API_KEY"),
		baseURL: baseURL,
		model:   model,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// NewClientWithBase is for tests and non-default gateways.
func NewClientWithBase(baseURL, apiKey, model string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *Client) Model() string { return c.model }

func (c *Client) Chat(messages []Message) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("LLM_API_KEY not configured")
	}

	reqBody := ChatRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   2000,
		Temperature: 0.7,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	logger.Debug("llm gateway call",
		zap.String("request_id", reqID),
		zap.String("model", c.model),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)))

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusTooManyRequests:
		return "", fmt.Errorf("%w (status %d)", ErrRateLimited, resp.StatusCode)
	case http.StatusPaymentRequired:
		return "", fmt.Errorf("%w (status %d)", ErrQuotaExhausted, resp.StatusCode)
	default:
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// ChatJSON runs Chat and unmarshals the reply into out. Models often wrap
// JSON in markdown fences; those are stripped first. The raw (unstripped)
// reply is returned so callers can persist it verbatim.
func (c *Client) ChatJSON(messages []Message, out any) (string, error) {
	raw, err := c.Chat(messages)
	if err != nil {
		return "", err
	}
	if err := json.Unmarshal([]byte(StripFences(raw)), out); err != nil {
		preview := raw
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		return raw, fmt.Errorf("gateway returned non-JSON payload: %v | body: %s", err, preview)
	}
	return raw, nil
}

// StripFences removes a surrounding ```json ... ``` (or plain ```) block.
func StripFences(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```json")
	t = strings.TrimPrefix(t, "```")
	t = strings.TrimSuffix(strings.TrimSpace(t), "```")
	return strings.TrimSpace(t)
}
