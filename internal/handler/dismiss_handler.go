package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/service/dispatch"
)

// DismissHandler removes a dismissed alert's queued push.
type DismissHandler struct {
	dispatcher *dispatch.Dispatcher
}

func NewDismissHandler(dispatcher *dispatch.Dispatcher) *DismissHandler {
	return &DismissHandler{dispatcher: dispatcher}
}

// HandleDismiss deletes the queued push for the task's alert tag. When no
// push channel is configured there is nothing queued and the dismissal is a
// no-op success.
func (h *DismissHandler) HandleDismiss(c *gin.Context) {
	ctx := c.Request.Context()
	taskID := c.Param("id")

	if err := h.dispatcher.Dismiss(ctx, taskID); err != nil {
		slog.ErrorContext(ctx, "failed to dismiss alert",
			slog.String("task_id", taskID),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "processing_error",
			"message": "failed to delete queued push",
		})
		return
	}

	slog.InfoContext(ctx, "alert dismissed",
		slog.String("task_id", taskID),
	)

	c.JSON(http.StatusOK, gin.H{
		"status":  "dismissed",
		"task_id": taskID,
	})
}
