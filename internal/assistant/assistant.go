package assistant

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/docqa/server/docqa/documents"
	"codeberg.org/docqa/server/internal/llm"
	"codeberg.org/docqa/server/internal/logger"
	"codeberg.org/docqa/server/internal/sessions"
)

const (
	answerTopK  = 6
	sourcesTopK = 4
	sourceLimit = 3

	qaTemperature = 0.1
	qaMaxTokens   = 1024

	contextualizeTemperature = 0.1
	contextualizeMaxTokens   = 256
)

func New(searcher Searcher, generator llm.TextGenerator, sessionManager *sessions.Manager, registry documents.Repository) *Assistant {
	return &Assistant{
		searcher:  searcher,
		generator: generator,
		sessions:  sessionManager,
		registry:  registry,
	}
}

// answers a question against a single document's index
func (a *Assistant) Ask(ctx context.Context, req AskRequest) (*AskResponse, error) {
	sessionID := a.sessions.GetOrCreate(req.SessionID)

	doc, err := a.resolveDocument(ctx, req.DocumentID)
	if errors.Is(err, documents.ErrNotFound) {
		return &AskResponse{
			Answer:    noDocumentMessage,
			Sources:   []string{},
			SessionID: sessionID,
		}, nil
	}

	if err != nil {
		return nil, err
	}

	// statistics questions never need retrieval
	if isStatsQuestion(req.Question) {
		answer := buildStatsAnswer(doc)
		a.recordExchange(sessionID, req.Question, answer)

		return &AskResponse{
			Answer:    answer,
			Sources:   []string{statsSource},
			SessionID: sessionID,
		}, nil
	}

	results, err := a.searcher.Search(ctx, doc.ID, req.Question, answerTopK)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve chunks: %w", err)
	}

	answer, err := a.generator.GenerateText(ctx, llm.TextGenerationRequest{
		SystemPrompt: qaSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildQAUserMessage(joinContents(results, "\n\n"), req.Question)},
		},
		MaxTokens:   qaMaxTokens,
		Temperature: qaTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	answer = cleanAnswer(answer)
	a.recordExchange(sessionID, req.Question, answer)

	return &AskResponse{
		Answer:    answer,
		Sources:   buildSources(results, sourceLimit),
		SessionID: sessionID,
	}, nil
}

// answers a question using the session's conversation history: follow-up
// questions are first reformulated into standalone ones
func (a *Assistant) AskWithMemory(ctx context.Context, req AskRequest) (*MemoryAskResponse, error) {
	sessionID := a.sessions.GetOrCreate(req.SessionID)

	doc, err := a.resolveDocument(ctx, req.DocumentID)
	if errors.Is(err, documents.ErrNotFound) {
		return &MemoryAskResponse{
			AskResponse: AskResponse{
				Answer:    noDocumentMessage,
				Sources:   []string{},
				SessionID: sessionID,
			},
		}, nil
	}

	if err != nil {
		return nil, err
	}

	history, _ := a.sessions.History(sessionID)
	exchanges := len(history) / 2

	query := req.Question

	if len(history) > 0 {
		reformulated, err := a.reformulate(ctx, history, req.Question)
		if err != nil {
			logger.Warn("question reformulation failed, using original", "error", err)
		} else {
			query = reformulated
		}
	}

	results, err := a.searcher.Search(ctx, doc.ID, query, answerTopK)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve chunks: %w", err)
	}

	messages := append(historyToMessages(history), llm.Message{Role: llm.RoleUser, Content: req.Question})

	answer, err := a.generator.GenerateText(ctx, llm.TextGenerationRequest{
		SystemPrompt: buildMemoryQASystemPrompt(joinContents(results, "\n\n")),
		Messages:     messages,
		MaxTokens:    qaMaxTokens,
		Temperature:  qaTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	sourceResults, err := a.searcher.Search(ctx, doc.ID, req.Question, sourcesTopK)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve sources: %w", err)
	}

	a.recordExchange(sessionID, req.Question, answer)

	return &MemoryAskResponse{
		AskResponse: AskResponse{
			Answer:    answer,
			Sources:   buildSources(sourceResults, len(sourceResults)),
			SessionID: sessionID,
		},
		MemoryUsed:         true,
		ConversationLength: exchanges,
	}, nil
}

// rewrites a follow-up question into a standalone one
func (a *Assistant) reformulate(ctx context.Context, history []sessions.Message, question string) (string, error) {
	messages := append(historyToMessages(history), llm.Message{Role: llm.RoleUser, Content: question})

	return a.generator.GenerateText(ctx, llm.TextGenerationRequest{
		SystemPrompt: contextualizeSystemPrompt,
		Messages:     messages,
		MaxTokens:    contextualizeMaxTokens,
		Temperature:  contextualizeTemperature,
	})
}

func (a *Assistant) resolveDocument(ctx context.Context, documentID string) (*documents.Document, error) {
	if documentID == "" {
		return a.registry.Active(ctx)
	}

	return a.registry.Get(ctx, documentID)
}

func (a *Assistant) recordExchange(sessionID, question, answer string) {
	a.sessions.Append(sessionID, sessions.RoleUser, question)
	a.sessions.Append(sessionID, sessions.RoleAssistant, answer)
}
