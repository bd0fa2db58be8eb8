package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/service/alert"
)

type SessionHandler struct {
	coordinator *alert.Coordinator
}

func NewSessionHandler(coordinator *alert.Coordinator) *SessionHandler {
	return &SessionHandler{
		coordinator: coordinator,
	}
}

type sessionRequest struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
}

type sessionResponse struct {
	SessionID string        `json:"session_id"`
	UserID    string        `json:"user_id"`
	Cycle     cycleResponse `json:"cycle"`
}

// HandleSession records a login event: it sets the session identity the
// gates compare against and runs a login-triggered panel cycle.
func (h *SessionHandler) HandleSession(c *gin.Context) {
	ctx := c.Request.Context()

	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": err.Error(),
		})
		return
	}

	if req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": "user_id is required",
		})
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	h.coordinator.SetSession(sessionID, req.UserID)

	slog.InfoContext(ctx, "session established",
		slog.String("session_id", sessionID),
		slog.String("user_id", req.UserID),
	)

	result := h.coordinator.RunCycle(ctx, alert.SurfacePanel, alert.TriggerLogin)

	c.JSON(http.StatusOK, sessionResponse{
		SessionID: sessionID,
		UserID:    req.UserID,
		Cycle:     cycleToResponse(result),
	})
}
