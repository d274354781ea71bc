package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName         string
	AppEnv          string
	AppPort         string
	DatabaseURL     string
	RedisURL        string
	JWTSecret       string
	TokenTTL        time.Duration
	LLMProvider     string
	GeminiAPIKey    string
	GeminiAPIURL    string
	OpenAIAPIKey    string
	LLMTimeout      time.Duration
	ProblemCacheTTL time.Duration
	RateLimitMax    int
	RateLimitWindow time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("CONSULTIGO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Consultigo API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("token.ttl", "24h")
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.timeout", "30s")
	v.SetDefault("problem.cache_ttl", "5m")
	v.SetDefault("rate_limit.max", 30)
	v.SetDefault("rate_limit.window", "1m")

	tokenTTL, err := parseDuration(v.GetString("token.ttl"), "24h", "token ttl")
	if err != nil {
		return Config{}, err
	}

	llmTimeout, err := parseDuration(v.GetString("llm.timeout"), "30s", "llm timeout")
	if err != nil {
		return Config{}, err
	}

	cacheTTL, err := parseDuration(v.GetString("problem.cache_ttl"), "5m", "problem cache ttl")
	if err != nil {
		return Config{}, err
	}

	rateWindow, err := parseDuration(v.GetString("rate_limit.window"), "1m", "rate limit window")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppName:         v.GetString("app.name"),
		AppEnv:          v.GetString("app.env"),
		AppPort:         v.GetString("app.port"),
		DatabaseURL:     v.GetString("database.url"),
		RedisURL:        v.GetString("redis.url"),
		JWTSecret:       v.GetString("jwt.secret"),
		TokenTTL:        tokenTTL,
		LLMProvider:     strings.ToLower(v.GetString("llm.provider")),
		GeminiAPIKey:    v.GetString("gemini_api_key"),
		GeminiAPIURL:    v.GetString("gemini_api_url"),
		OpenAIAPIKey:    v.GetString("openai_api_key"),
		LLMTimeout:      llmTimeout,
		ProblemCacheTTL: cacheTTL,
		RateLimitMax:    v.GetInt("rate_limit.max"),
		RateLimitWindow: rateWindow,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.RateLimitMax <= 0 {
		cfg.RateLimitMax = 30
	}

	return cfg, nil
}

func parseDuration(value, fallback, name string) (time.Duration, error) {
	if value == "" {
		value = fallback
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}

	return d, nil
}
