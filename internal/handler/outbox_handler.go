package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskhub/pkg/outbox"
)

// OutboxHandler exposes the failed-event queue to admins: inspect events the
// dispatcher gave up on, and requeue them after the underlying fault is fixed.
type OutboxHandler struct {
	outbox *outbox.Repository
	logger *zap.Logger
}

func NewOutboxHandler(repo *outbox.Repository, logger *zap.Logger) *OutboxHandler {
	return &OutboxHandler{outbox: repo, logger: logger}
}

func (h *OutboxHandler) ListFailed(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	events, err := h.outbox.GetFailedEvents(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("ListFailed failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch outbox events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *OutboxHandler) Replay(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	if err := h.outbox.ReplayEvent(c.Request.Context(), eventID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to replay event"})
		return
	}

	h.logger.Info("Outbox event requeued", zap.Int64("event_id", eventID))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
