package sessions

import (
	sessioncore "codeberg.org/docqa/server/internal/sessions"
)

// one active session in a listing
type Entry struct {
	SessionID string `json:"session_id"`
	Exchanges int    `json:"exchanges"`
}

// response for the session listing
type ListResponse struct {
	Sessions []Entry `json:"sessions"`
	Total    int     `json:"total"`
}

// response carrying one session's chat history
type HistoryResponse struct {
	SessionID string                `json:"session_id"`
	History   []sessioncore.Message `json:"history"`
}

// full conversation export for one session
type ExportResponse struct {
	SessionID           string                `json:"session_id"`
	ConversationHistory []sessioncore.Message `json:"conversation_history"`
	MemorySummary       sessioncore.Summary   `json:"memory_summary"`
	TotalExchanges      int                   `json:"total_exchanges"`
}

// simple message payload
type MessageResponse struct {
	Message string `json:"message"`
}
