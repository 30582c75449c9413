// Package llm wraps the chat-completion service every language task in the
// controller goes through: classification, phrasing, and reasoning.
package llm

// #region imports
import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/caiti-ai/session-controller/internal/config"
)

// #endregion

// #region interface

// Client is the completion surface the controller depends on. Implementations
// return the assistant text for one system/user prompt pair.
type Client interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// #endregion

// #region openai

// OpenAIClient calls a chat-completion endpoint with fixed sampling settings.
type OpenAIClient struct {
	api         *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewOpenAIClient builds a client from the configured endpoint and model.
func NewOpenAIClient(cfg config.OpenAI, apiKey string) *OpenAIClient {
	oc := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	return &OpenAIClient{
		api:         openai.NewClientWithConfig(oc),
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
		maxTokens:   cfg.MaxTokens,
	}
}

// Complete sends one system/user exchange and returns the trimmed reply.
func (c *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// #endregion
