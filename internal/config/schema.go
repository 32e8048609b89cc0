package config

import (
	"github.com/hablemosbien/bookforge/internal/assemble"
	"github.com/hablemosbien/bookforge/internal/providers"
)

// Config holds bookforge configuration.
// Stored at: ~/.bookforge/config.yaml
type Config struct {
	Generator providers.GeneratorConfig `mapstructure:"generator" yaml:"generator"`
	Pipeline  PipelineCfg               `mapstructure:"pipeline" yaml:"pipeline"`
}

// PipelineCfg tunes the section assembler.
type PipelineCfg struct {
	// MinChapterWords is the word-count floor for chapters. Zero
	// disables padding entirely (the legacy behavior).
	MinChapterWords int `mapstructure:"min_chapter_words" yaml:"min_chapter_words"`

	// MaxFloorAttempts bounds extra fetches for an under-length chapter.
	MaxFloorAttempts int `mapstructure:"max_floor_attempts" yaml:"max_floor_attempts"`

	// MaxChapters caps the requested chapter count.
	MaxChapters int `mapstructure:"max_chapters" yaml:"max_chapters"`

	// DefaultLanguage is used when a request omits the language.
	DefaultLanguage string `mapstructure:"default_language" yaml:"default_language"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Generator: providers.GeneratorConfig{
			Type:            "gemini",
			Model:           "gemini-2.0-flash",
			APIKey:          "${GOOGLE_API_KEY}",
			RateLimit:       15,
			TimeoutSeconds:  120,
			Temperature:     1,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 8192,
		},
		Pipeline: PipelineCfg{
			MinChapterWords:  assemble.DefaultMinChapterWords,
			MaxFloorAttempts: assemble.DefaultMaxFloorAttempts,
			MaxChapters:      assemble.DefaultMaxChapters,
			DefaultLanguage:  "english",
		},
	}
}

// ResolvedGenerator returns the generator config with the API key's
// ${ENV_VAR} reference expanded.
func (c *Config) ResolvedGenerator() providers.GeneratorConfig {
	gen := c.Generator
	gen.APIKey = ResolveEnvVars(gen.APIKey)
	return gen
}
