package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

const (
	defaultGenerationModel     = "llama-3.1-8b-instant"
	defaultEmbeddingModel      = "text-embedding-3-small"
	defaultEmbeddingDimensions = 1536
	defaultMaxTokens           = 1024
	defaultTemperature         = 0.1
)

// shared HTTP client for OpenAI-compatible API calls
// reuses connection pool and timeout configuration
var openaiHTTPClient = &http.Client{
	Timeout: 60 * time.Second, // total request timeout
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// rate limiter shared by generation and embedding calls (50 requests/second with burst capacity of 10)
var openaiRateLimiter = rate.NewLimiter(50, 10)

type OpenAIConfig struct {
	APIKey     string
	BaseURL    string // empty uses the OpenAI default
	Model      string
	Dimensions int           // embeddings only
	Recorder   UsageRecorder // optional
}

func newOpenAIClient(config OpenAIConfig) *openai.Client {
	clientConfig := openai.DefaultConfig(config.APIKey)
	clientConfig.HTTPClient = openaiHTTPClient

	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return openai.NewClientWithConfig(clientConfig)
}

// generates chat completions through any OpenAI-compatible endpoint,
// including groq's
type OpenAIGenerator struct {
	config OpenAIConfig
	client *openai.Client
}

func NewOpenAIGenerator(config OpenAIConfig) *OpenAIGenerator {
	if config.Model == "" {
		config.Model = defaultGenerationModel
	}

	return &OpenAIGenerator{
		config: config,
		client: newOpenAIClient(config),
	}
}

func (g *OpenAIGenerator) Model() string {
	return g.config.Model
}

func (g *OpenAIGenerator) GenerateText(ctx context.Context, req TextGenerationRequest) (string, error) {
	if err := openaiRateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter wait failed: %w", err)
	}

	if req.MaxTokens == 0 {
		req.MaxTokens = defaultMaxTokens
	}

	if req.Temperature == 0 {
		req.Temperature = defaultTemperature
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)

	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}

	for _, msg := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	started := time.Now()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.config.Model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}

	if g.config.Recorder != nil {
		g.config.Recorder.RecordLLMCall("chat", time.Since(started), resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// generates embeddings through an OpenAI-compatible endpoint
type OpenAIEmbedder struct {
	config OpenAIConfig
	client *openai.Client
}

func NewOpenAIEmbedder(config OpenAIConfig) *OpenAIEmbedder {
	if config.Model == "" {
		config.Model = defaultEmbeddingModel
	}

	if config.Dimensions == 0 {
		config.Dimensions = defaultEmbeddingDimensions
	}

	return &OpenAIEmbedder{
		config: config,
		client: newOpenAIClient(config),
	}
}

func (e *OpenAIEmbedder) Dimensions() int {
	return e.config.Dimensions
}

func (e *OpenAIEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.GenerateEmbeddings(ctx, []string{text})
	if err != nil {
		return nil, err
	}

	if len(embeddings) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}

	return embeddings[0], nil
}

func (e *OpenAIEmbedder) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no texts provided")
	}

	if err := openaiRateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	started := time.Now()

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      texts,
		Model:      openai.EmbeddingModel(e.config.Model),
		Dimensions: e.config.Dimensions,
	})
	if err != nil {
		return nil, fmt.Errorf("embeddings request failed: %w", err)
	}

	if e.config.Recorder != nil {
		e.config.Recorder.RecordLLMCall("embedding", time.Since(started), resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	embeddings := make([][]float32, len(resp.Data))
	for _, data := range resp.Data {
		embeddings[data.Index] = data.Embedding
	}

	return embeddings, nil
}
