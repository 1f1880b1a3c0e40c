package llm

import (
	"fmt"

	"codeberg.org/docqa/server/internal/config"
)

// combines a TextGenerator and Embedder into a single LLM
type CompositeLLM struct {
	TextGenerator
	Embedder
}

// creates a new LLM from application configuration
// recorder may be nil when call metrics are not collected
func NewLLM(cfg *config.Config, recorder UsageRecorder) (LLM, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	llmConfig := configFromApp(cfg)
	llmConfig.Recorder = recorder

	return NewLLMWithConfig(llmConfig)
}

// creates a new LLM with explicit configuration
func NewLLMWithConfig(config Config) (LLM, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("API key cannot be empty")
	}

	// create generator based on provider (for answers, analysis, and extraction)
	var generator TextGenerator

	switch config.Provider {
	case ProviderGroq, ProviderOpenAI:
		generator = NewOpenAIGenerator(OpenAIConfig{
			APIKey:   config.APIKey,
			BaseURL:  config.BaseURL,
			Model:    config.Model,
			Recorder: config.Recorder,
		})
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", config.Provider)
	}

	// create embedder (always served by an OpenAI-compatible endpoint)
	embedderKey := config.EmbedderAPIKey
	embedderBaseURL := config.EmbedderBaseURL

	if embedderKey == "" {
		embedderKey = config.APIKey
		embedderBaseURL = config.BaseURL
	}

	embedder := NewOpenAIEmbedder(OpenAIConfig{
		APIKey:     embedderKey,
		BaseURL:    embedderBaseURL,
		Model:      config.EmbeddingModel,
		Dimensions: config.EmbeddingDimensions,
		Recorder:   config.Recorder,
	})

	return &CompositeLLM{
		TextGenerator: generator,
		Embedder:      embedder,
	}, nil
}
