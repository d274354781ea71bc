package llm

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIConfig configures the OpenAI-backed generator.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// OpenAIGenerator adapts the chat completion API to the Generator contract.
// It carries the same failure semantics as the Gemini client: one attempt,
// any backend problem collapses to ErrUnavailable.
type OpenAIGenerator struct {
	client *openai.Client
	cfg    OpenAIConfig
	logger zerolog.Logger
}

// NewOpenAIGenerator builds the generator.
func NewOpenAIGenerator(cfg OpenAIConfig) *OpenAIGenerator {
	if cfg.Model == "" {
		cfg.Model = openai.GPT4oMini
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1024
	}

	return &OpenAIGenerator{
		client: openai.NewClient(cfg.APIKey),
		cfg:    cfg,
		logger: cfg.Logger.With().Str("component", "openai_generator").Logger(),
	}
}

// ModelVersion implements Generator.
func (g *OpenAIGenerator) ModelVersion() string {
	return g.cfg.Model
}

// Generate implements Generator.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.cfg.APIKey == "" {
		return "", ErrMissingAPIKey
	}

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.cfg.Model,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	generationDuration.WithLabelValues(g.cfg.Model).Observe(time.Since(start).Seconds())
	if err != nil {
		generationFailures.WithLabelValues(g.cfg.Model).Inc()
		g.logger.Warn().Err(err).Msg("chat completion failed")
		return "", ErrUnavailable
	}

	if len(resp.Choices) == 0 {
		generationFailures.WithLabelValues(g.cfg.Model).Inc()
		g.logger.Warn().Msg("chat completion returned no choices")
		return "", ErrUnavailable
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
