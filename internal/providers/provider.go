// Package providers contains clients for remote text-generation
// endpoints. Clients take a prompt and return raw text; everything else
// (normalization, placeholder substitution) happens in the caller.
package providers

import (
	"context"
	"fmt"
	"time"
)

// Generator is the interface for text-generation clients.
type Generator interface {
	// Generate sends one prompt and returns the raw generated text.
	// One network call per invocation; no retry, no backoff.
	Generate(ctx context.Context, prompt string) (string, error)

	// Name returns the client identifier (e.g., "gemini").
	Name() string
}

// GeneratorConfig configures a generation client.
type GeneratorConfig struct {
	Type   string `mapstructure:"type" yaml:"type"`       // "gemini" or "mock"
	Model  string `mapstructure:"model" yaml:"model"`     // e.g. "gemini-2.0-flash"
	APIKey string `mapstructure:"api_key" yaml:"api_key"` // supports ${ENV_VAR} syntax upstream

	// RateLimit is requests per minute. Zero disables limiting.
	RateLimit int `mapstructure:"rate_limit" yaml:"rate_limit"`

	// TimeoutSeconds bounds a single generation round trip.
	TimeoutSeconds int `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`

	// Sampling parameters sent with every request.
	Temperature     float64 `mapstructure:"temperature" yaml:"temperature"`
	TopK            int     `mapstructure:"top_k" yaml:"top_k"`
	TopP            float64 `mapstructure:"top_p" yaml:"top_p"`
	MaxOutputTokens int     `mapstructure:"max_output_tokens" yaml:"max_output_tokens"`
}

// Timeout returns the configured timeout as a duration, with a default.
func (c GeneratorConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 120 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// NewGenerator builds a generator from config.
func NewGenerator(cfg GeneratorConfig) (Generator, error) {
	switch cfg.Type {
	case "gemini", "":
		return NewGeminiClient(cfg)
	case "mock":
		return NewMockGenerator(), nil
	default:
		return nil, fmt.Errorf("unknown generator type: %s", cfg.Type)
	}
}
