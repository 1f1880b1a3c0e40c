package llm

import (
	"context"
	"time"
)

// combines text generation and embedding generation
type LLM interface {
	TextGenerator
	Embedder
}

// represents different LLM providers
type Provider string

const (
	ProviderGroq   Provider = "groq"
	ProviderOpenAI Provider = "openai"
)

// chat roles understood by OpenAI-compatible APIs
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// a single turn in a chat exchange
type Message struct {
	Role    string
	Content string
}

// parameters for a single chat completion call
type TextGenerationRequest struct {
	SystemPrompt string
	Messages     []Message
	MaxTokens    int     // 0 uses the client default
	Temperature  float32 // 0 uses the client default
}

// generates chat completions
type TextGenerator interface {
	GenerateText(ctx context.Context, req TextGenerationRequest) (string, error)
	Model() string
}

// generates embeddings from text
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
}

// receives latency and token usage for outbound model calls
type UsageRecorder interface {
	RecordLLMCall(method string, latency time.Duration, promptTokens, completionTokens int)
}

// holds configuration for LLM initialization
type Config struct {
	// generator configuration
	Provider Provider
	APIKey   string
	BaseURL  string // empty uses the provider default
	Model    string // e.g., "llama-3.1-8b-instant"

	// embedder configuration
	EmbedderAPIKey      string // empty reuses APIKey
	EmbedderBaseURL     string // empty uses the OpenAI default
	EmbeddingModel      string // e.g., "text-embedding-3-small"
	EmbeddingDimensions int

	// optional, receives per-call latency and token usage
	Recorder UsageRecorder
}
