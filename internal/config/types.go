package config

import "time"

// LLM providers
const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"
)

// vector store drivers
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

type Config struct {
	Environment string
	Port        string

	LLMProvider string
	LLMModel    string
	LLMBaseURL  string
	GroqKey     string
	OpenAIKey   string

	EmbeddingModel      string
	EmbeddingDimensions int

	StoreDriver string
	DatabaseURL string

	ChunkSize    int
	ChunkOverlap int
	MaxFileSize  int64

	SessionTTL time.Duration

	ReportTokenSecret string
	DataDir           string

	AllowedOrigins []string
}

type Flags struct {
	Path  string
	Clear bool
}

// returns the API key for the configured LLM provider
func (c *Config) APIKey() string {
	if c.LLMProvider == ProviderOpenAI {
		return c.OpenAIKey
	}
	return c.GroqKey
}

// reports whether the service runs against postgres-backed storage
func (c *Config) UsesPostgres() bool {
	return c.StoreDriver == DriverPostgres
}
