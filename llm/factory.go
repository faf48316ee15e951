package llm

import (
	"context"
	"fmt"
	"strings"

	"home-route-agent/config"
)

// NewClient builds the configured collaborator. Provider "none" (or a missing
// API key for hosted providers) returns a nil generator, which makes the
// narrative adapter answer with fallback text only.
func NewClient(ctx context.Context, cfg config.LLMConfig) (TextGenerator, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case "none", "":
		return nil, nil
	case "openai":
		if cfg.APIKey == "" {
			return nil, nil
		}
		return NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.MaxTokens), nil
	case "claude":
		if cfg.APIKey == "" {
			return nil, nil
		}
		model := cfg.Model
		if model == "" {
			model = "claude-3-5-haiku-latest"
		}
		return NewClaudeClient(cfg.APIKey, model, cfg.BaseURL, cfg.MaxTokens), nil
	case "gemini":
		if cfg.APIKey == "" {
			return nil, nil
		}
		model := cfg.Model
		if model == "" {
			model = "gemini-1.5-flash"
		}
		return NewGeminiClient(ctx, cfg.APIKey, model, cfg.MaxTokens)
	case "ollama":
		// OpenAI-compatible endpoint; the key is ignored by Ollama.
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = strings.TrimRight(baseURL, "/") + "/v1"
		}
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama"
		}
		return NewOpenAIClient(apiKey, cfg.Model, baseURL, cfg.MaxTokens), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}
