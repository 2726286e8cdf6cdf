// Package llm wraps the Gemini chat API behind a small message-based
// interface.
package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"genaikit/internal/logging"
)

// Message roles.
const (
	RoleSystem = "system"
	RoleUser   = "user"
	RoleModel  = "model"
)

// Message is one turn of a chat conversation.
type Message struct {
	Role    string
	Content string
}

// Usage holds the token accounting of one model response.
type Usage struct {
	TotalTokens      int
	PromptTokens     int
	CompletionTokens int
}

// Response is a processed model reply: trimmed text plus token usage.
type Response struct {
	Text  string
	Usage Usage
}

// Invoker sends a conversation to a model and returns its reply.
// Satisfied by Client; tests and the chat runner take fakes.
type Invoker interface {
	Invoke(ctx context.Context, messages []Message) (*Response, error)
}

// Client is a Gemini chat client with a fixed model and temperature.
type Client struct {
	client      *genai.Client
	model       string
	temperature float64
	apiKey      string
}

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

// NewClient creates a Gemini chat client.
func NewClient(ctx context.Context, apiKey, model string, temperature float64) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		client:      client,
		model:       model,
		temperature: temperature,
		apiKey:      apiKey,
	}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Invoke sends the conversation and returns the processed reply.
// System messages become the system instruction; user and model turns
// are passed through in order.
func (c *Client) Invoke(ctx context.Context, messages []Message) (*Response, error) {
	timer := logging.StartTimer(logging.CategoryLLM, "Invoke")
	defer timer.Stop()

	var system string
	var contents []*genai.Content
	for _, msg := range messages {
		switch msg.Role {
		case RoleSystem:
			if system != "" {
				system += "\n"
			}
			system += msg.Content
		case RoleModel:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}
	if len(contents) == 0 {
		return nil, fmt.Errorf("no user or model messages to send")
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(c.temperature)),
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("Gemini invocation failed: %w", err)
	}

	resp := &Response{Text: strings.TrimSpace(result.Text())}
	if result.UsageMetadata != nil {
		resp.Usage = Usage{
			TotalTokens:      int(result.UsageMetadata.TotalTokenCount),
			PromptTokens:     int(result.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(result.UsageMetadata.CandidatesTokenCount),
		}
	}

	logging.LLM("Model %s replied with %d tokens total", c.model, resp.Usage.TotalTokens)
	return resp, nil
}
