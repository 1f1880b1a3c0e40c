package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultLLMModel            = "llama-3.1-8b-instant"
	defaultGroqBaseURL         = "https://api.groq.com/openai/v1"
	defaultEmbeddingModel      = "text-embedding-3-small"
	defaultEmbeddingDimensions = 1536
	defaultChunkSize           = 500
	defaultChunkOverlap        = 100
	defaultMaxFileSize         = 10 * 1024 * 1024
	defaultSessionTTLMinutes   = 240
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	cfg := &Config{
		Environment:         getEnv("ENVIRONMENT", "development"),
		Port:                getEnv("PORT", "8080"),
		LLMProvider:         getEnv("LLM_PROVIDER", ProviderGroq),
		LLMModel:            getEnv("LLM_MODEL", defaultLLMModel),
		GroqKey:             os.Getenv("GROQ_API_KEY"),
		OpenAIKey:           os.Getenv("OPENAI_API_KEY"),
		EmbeddingModel:      getEnv("EMBEDDING_MODEL", defaultEmbeddingModel),
		EmbeddingDimensions: getEnvInt("EMBEDDING_DIMENSIONS", defaultEmbeddingDimensions),
		StoreDriver:         getEnv("STORE_DRIVER", DriverMemory),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		ChunkSize:           getEnvInt("CHUNK_SIZE", defaultChunkSize),
		ChunkOverlap:        getEnvInt("CHUNK_OVERLAP", defaultChunkOverlap),
		MaxFileSize:         int64(getEnvInt("MAX_FILE_SIZE", defaultMaxFileSize)),
		SessionTTL:          time.Duration(getEnvInt("SESSION_TTL_MINUTES", defaultSessionTTLMinutes)) * time.Minute,
		ReportTokenSecret:   os.Getenv("REPORT_TOKEN_SECRET"),
		DataDir:             getEnv("DATA_DIR", "./data"),
	}

	if cfg.LLMProvider == ProviderGroq {
		cfg.LLMBaseURL = getEnv("LLM_BASE_URL", defaultGroqBaseURL)
	} else {
		cfg.LLMBaseURL = os.Getenv("LLM_BASE_URL")
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// checks required variables and value ranges
func (c *Config) Validate() error {
	switch c.LLMProvider {
	case ProviderGroq:
		if c.GroqKey == "" {
			return fmt.Errorf("GROQ_API_KEY environment variable is required")
		}
	case ProviderOpenAI:
		if c.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable is required")
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q (want %q or %q)", c.LLMProvider, ProviderGroq, ProviderOpenAI)
	}

	switch c.StoreDriver {
	case DriverMemory:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required when STORE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want %q or %q)", c.StoreDriver, DriverMemory, DriverPostgres)
	}

	if c.ReportTokenSecret == "" {
		return fmt.Errorf("REPORT_TOKEN_SECRET environment variable is required")
	}

	if c.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}

	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("CHUNK_OVERLAP must be in [0, CHUNK_SIZE), got %d", c.ChunkOverlap)
	}

	if c.EmbeddingDimensions <= 0 {
		return fmt.Errorf("EMBEDDING_DIMENSIONS must be positive, got %d", c.EmbeddingDimensions)
	}

	if c.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive, got %d", c.MaxFileSize)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
