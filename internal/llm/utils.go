package llm

import "codeberg.org/docqa/server/internal/config"

// maps application configuration onto LLM configuration
func configFromApp(cfg *config.Config) Config {
	out := Config{
		Provider:            Provider(cfg.LLMProvider),
		APIKey:              cfg.APIKey(),
		BaseURL:             cfg.LLMBaseURL,
		Model:               cfg.LLMModel,
		EmbeddingModel:      cfg.EmbeddingModel,
		EmbeddingDimensions: cfg.EmbeddingDimensions,
	}

	// groq serves no embeddings endpoint, so a dedicated OpenAI key routes
	// embeddings to the OpenAI API while generation stays on groq
	if out.Provider == ProviderGroq && cfg.OpenAIKey != "" {
		out.EmbedderAPIKey = cfg.OpenAIKey
		out.EmbedderBaseURL = ""
	}

	return out
}
