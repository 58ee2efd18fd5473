// Package provider implements the capability providers the analysis core
// consumes: a rule-based keyword scanner, an OpenAI-compatible LLM
// analyzer, a Gemini analyzer, and a local sentiment provider. Providers
// translate transport failures into the two sentinel errors below; the
// pipeline maps either to "zero signals" and keeps going.
package provider

import (
	"errors"
	"fmt"

	"lyriclens/internal/analysis"
	"lyriclens/internal/config"
)

// ErrUnavailable marks a provider that timed out, was rate-limited, or
// otherwise failed at the transport layer.
var ErrUnavailable = errors.New("provider unavailable")

// ErrMalformed marks provider output that could not be parsed even after
// best-effort repair.
var ErrMalformed = errors.New("malformed provider output")

// New builds the configured capability provider.
func New(cfg config.ProviderConfig) (analysis.Provider, error) {
	switch cfg.Kind {
	case "keyword", "":
		return NewKeywordProvider(), nil
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return NewOpenAIProvider(cfg), nil
	case "gemini":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini provider requires an API key")
		}
		return NewGeminiProvider(cfg)
	default:
		return nil, fmt.Errorf("unknown provider kind %q", cfg.Kind)
	}
}
