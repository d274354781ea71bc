package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var (
	generationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "consultigo",
		Subsystem: "llm",
		Name:      "generation_duration_seconds",
		Help:      "Duration of LLM generation requests",
	}, []string{"model"})

	generationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "consultigo",
		Subsystem: "llm",
		Name:      "generation_failures_total",
		Help:      "Number of failed LLM generation requests",
	}, []string{"model"})
)

// DefaultGeminiEndpoint is the generateContent endpoint of the hosted model.
const DefaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1/models/gemini-pro:generateContent"

const defaultTimeout = 30 * time.Second

// GeminiConfig configures the Gemini HTTP client.
type GeminiConfig struct {
	APIKey   string
	Endpoint string
	Model    string
	Timeout  time.Duration
	Logger   zerolog.Logger
}

// GeminiClient calls the generateContent HTTP API. A single attempt per
// request: any transport or payload problem maps to ErrUnavailable so the
// caller's fallback path stays simple.
type GeminiClient struct {
	cfg    GeminiConfig
	client *http.Client
	logger zerolog.Logger
}

// NewGeminiClient builds a Gemini-backed generator.
func NewGeminiClient(cfg GeminiConfig) *GeminiClient {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultGeminiEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-pro"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	return &GeminiClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: cfg.Logger.With().Str("component", "gemini_client").Logger(),
	}
}

// ModelVersion implements Generator.
func (c *GeminiClient) ModelVersion() string {
	return c.cfg.Model
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends the prompt and returns the first candidate's first text
// part. The response is decoded into a typed schema; any missing field on
// the candidates path is reported as ErrUnavailable, never as a panic or a
// decode-specific error.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", ErrMissingAPIKey
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encode generation request: %w", err)
	}

	endpoint := fmt.Sprintf("%s?key=%s", c.cfg.Endpoint, url.QueryEscape(c.cfg.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	generationDuration.WithLabelValues(c.cfg.Model).Observe(time.Since(start).Seconds())
	if err != nil {
		generationFailures.WithLabelValues(c.cfg.Model).Inc()
		c.logger.Warn().Err(err).Msg("generation request failed")
		return "", ErrUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		generationFailures.WithLabelValues(c.cfg.Model).Inc()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn().Int("status", resp.StatusCode).Bytes("body", snippet).Msg("generation returned non-2xx status")
		return "", ErrUnavailable
	}

	var payload generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		generationFailures.WithLabelValues(c.cfg.Model).Inc()
		c.logger.Warn().Err(err).Msg("generation response is not valid json")
		return "", ErrUnavailable
	}

	if len(payload.Candidates) == 0 || len(payload.Candidates[0].Content.Parts) == 0 {
		generationFailures.WithLabelValues(c.cfg.Model).Inc()
		c.logger.Warn().Msg("generation response missing candidates content")
		return "", ErrUnavailable
	}

	return payload.Candidates[0].Content.Parts[0].Text, nil
}
