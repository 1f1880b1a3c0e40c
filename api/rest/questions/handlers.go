package questions

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"codeberg.org/docqa/server/internal/assistant"
	apierrors "codeberg.org/docqa/server/internal/errors"
	"codeberg.org/docqa/server/internal/metrics"
)

// metric labels for the two answering modes
const (
	modeStandard = "standard"
	modeMemory   = "memory"
)

// Handler godoc
// @Summary Ask a question about a document
// @Description Answers a question using retrieval over the active document (or the one named by document_id). With use_memory the session history is used to resolve follow-up questions.
// @Tags questions
// @Accept json
// @Produce json
// @Param request body Request true "question payload"
// @Success 200 {object} assistant.MemoryAskResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /api/v1/questions [post]
func Handler(answerer Answerer, recorder *metrics.Exporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Request

		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.ValidationError(c, err)
			return
		}

		askReq := assistant.AskRequest{
			Question:   req.Question,
			SessionID:  req.SessionID,
			DocumentID: req.DocumentID,
		}

		started := time.Now()

		if req.UseMemory {
			resp, err := answerer.AskWithMemory(c.Request.Context(), askReq)
			if err != nil {
				recorder.RecordQuestion(modeMemory, false, time.Since(started))
				apierrors.LLMError(c, "failed to answer question", err)

				return
			}

			recorder.RecordQuestion(modeMemory, true, time.Since(started))
			c.JSON(http.StatusOK, resp)

			return
		}

		resp, err := answerer.Ask(c.Request.Context(), askReq)
		if err != nil {
			recorder.RecordQuestion(modeStandard, false, time.Since(started))
			apierrors.LLMError(c, "failed to answer question", err)

			return
		}

		recorder.RecordQuestion(modeStandard, true, time.Since(started))
		c.JSON(http.StatusOK, resp)
	}
}
