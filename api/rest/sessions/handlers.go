package sessions

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	sessioncore "codeberg.org/docqa/server/internal/sessions"
)

// ListHandler godoc
// @Summary List active sessions
// @Description Lists active chat sessions with their Q&A exchange counts
// @Tags sessions
// @Produce json
// @Success 200 {object} ListResponse
// @Router /api/v1/sessions [get]
func ListHandler(manager *sessioncore.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ids := manager.List()
		entries := make([]Entry, 0, len(ids))

		for _, id := range ids {
			history, _ := manager.History(id)

			entries = append(entries, Entry{
				SessionID: id,
				Exchanges: len(history) / 2,
			})
		}

		c.JSON(http.StatusOK, ListResponse{
			Sessions: entries,
			Total:    len(entries),
		})
	}
}

// HistoryHandler godoc
// @Summary Get a session's chat history
// @Description Returns the session's messages. Unknown sessions yield an empty history rather than an error.
// @Tags sessions
// @Produce json
// @Param id path string true "session id"
// @Success 200 {object} HistoryResponse
// @Router /api/v1/sessions/{id}/history [get]
func HistoryHandler(manager *sessioncore.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("id")

		history, _ := manager.History(sessionID)
		if history == nil {
			history = []sessioncore.Message{}
		}

		c.JSON(http.StatusOK, HistoryResponse{
			SessionID: sessionID,
			History:   history,
		})
	}
}

// ExportHandler godoc
// @Summary Export a session's conversation
// @Description Returns the full conversation together with the session's memory summary
// @Tags sessions
// @Produce json
// @Param id path string true "session id"
// @Success 200 {object} ExportResponse
// @Router /api/v1/sessions/{id}/export [get]
func ExportHandler(manager *sessioncore.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("id")

		history, _ := manager.History(sessionID)
		if history == nil {
			history = []sessioncore.Message{}
		}

		summary, _ := manager.Summary(sessionID)

		c.JSON(http.StatusOK, ExportResponse{
			SessionID:           sessionID,
			ConversationHistory: history,
			MemorySummary:       summary,
			TotalExchanges:      len(history) / 2,
		})
	}
}

// SummaryHandler godoc
// @Summary Get a session's memory summary
// @Description Describes the session's memory state. Unknown sessions yield an empty summary.
// @Tags sessions
// @Produce json
// @Param id path string true "session id"
// @Success 200 {object} sessions.Summary
// @Router /api/v1/sessions/{id}/summary [get]
func SummaryHandler(manager *sessioncore.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, _ := manager.Summary(c.Param("id"))

		c.JSON(http.StatusOK, summary)
	}
}

// ClearHandler godoc
// @Summary Clear a session's chat history
// @Description Removes the session's history. The response message states whether a history existed.
// @Tags sessions
// @Produce json
// @Param id path string true "session id"
// @Success 200 {object} MessageResponse
// @Router /api/v1/sessions/{id} [delete]
func ClearHandler(manager *sessioncore.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("id")

		if manager.Clear(sessionID) {
			c.JSON(http.StatusOK, MessageResponse{
				Message: fmt.Sprintf("Chat history cleared for session: %s", sessionID),
			})

			return
		}

		c.JSON(http.StatusOK, MessageResponse{
			Message: fmt.Sprintf("No chat history found for session: %s", sessionID),
		})
	}
}
