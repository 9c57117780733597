// Package openai adapts an OpenAI-compatible chat API into the taste advisor
// contract.
package openai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kinoworks/cinedex/internal/metrics"
)

// Advisor produces short structured copy via chat completions.
type Advisor struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// Config holds the chat provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  *zap.Logger
}

// NewAdvisor creates an OpenAI-compatible chat advisor.
func NewAdvisor(cfg *Config) *Advisor {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Advisor{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: cfg.Logger,
	}
}

// Advise sends one system+user exchange and returns the raw completion text.
// The model is pinned to JSON-object responses so callers can parse without
// scraping prose.
func (a *Advisor) Advise(ctx context.Context, system, user string) (string, error) {
	start := time.Now()

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.7,
	})
	if err != nil {
		metrics.TasteRequestsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		metrics.TasteRequestsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("empty chat completion response")
	}

	metrics.TasteRequestsTotal.WithLabelValues("success").Inc()
	a.logger.Debug("taste completion",
		zap.String("model", a.model),
		zap.Duration("duration", time.Since(start)),
		zap.Int("total_tokens", resp.Usage.TotalTokens))

	return resp.Choices[0].Message.Content, nil
}
