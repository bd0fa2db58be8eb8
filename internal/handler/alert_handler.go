package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/domain"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/service/alert"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/service/present"
)

type AlertHandler struct {
	coordinator *alert.Coordinator
	model       *present.Model
}

func NewAlertHandler(coordinator *alert.Coordinator, model *present.Model) *AlertHandler {
	return &AlertHandler{
		coordinator: coordinator,
		model:       model,
	}
}

type dispatchResultItem struct {
	TaskID  string `json:"task_id"`
	Tag     string `json:"tag"`
	Tier    string `json:"tier"`
	Outcome string `json:"outcome"`
}

type cycleResponse struct {
	RunID          string               `json:"run_id"`
	Surface        string               `json:"surface"`
	Trigger        string               `json:"trigger"`
	Stale          bool                 `json:"stale"`
	Suppressed     bool                 `json:"suppressed"`
	CandidateCount int                  `json:"candidate_count"`
	RankedCount    int                  `json:"ranked_count"`
	NativeCount    int                  `json:"native_count"`
	FallbackCount  int                  `json:"fallback_count"`
	SkippedCount   int                  `json:"skipped_count"`
	FetchError     string               `json:"fetch_error,omitempty"`
	Results        []dispatchResultItem `json:"results"`
}

func cycleToResponse(result *alert.CycleResult) cycleResponse {
	resp := cycleResponse{
		RunID:          result.RunID,
		Surface:        string(result.Surface),
		Trigger:        string(result.Trigger),
		Stale:          result.Stale,
		Suppressed:     result.Suppressed,
		CandidateCount: result.CandidateCount,
		RankedCount:    result.RankedCount,
		NativeCount:    result.NativeCount,
		FallbackCount:  result.FallbackCount,
		SkippedCount:   result.SkippedCount,
		Results:        make([]dispatchResultItem, 0, len(result.Results)),
	}
	if result.FetchErr != nil {
		resp.FetchError = result.FetchErr.Error()
	}
	for _, r := range result.Results {
		resp.Results = append(resp.Results, dispatchResultItem{
			TaskID:  r.TaskID,
			Tag:     r.Tag,
			Tier:    string(r.Tier),
			Outcome: r.Outcome.String(),
		})
	}
	return resp
}

// HandleCheck runs a manual evaluation cycle for the requested surface.
func (h *AlertHandler) HandleCheck(c *gin.Context) {
	ctx := c.Request.Context()

	surface := alert.Surface(c.DefaultQuery("surface", string(alert.SurfacePanel)))
	if !surface.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": "surface must be panel or deadline",
		})
		return
	}

	result := h.coordinator.RunCycle(ctx, surface, alert.TriggerManual)

	slog.InfoContext(ctx, "manual check completed",
		slog.String("run_id", result.RunID),
		slog.String("surface", string(surface)),
		slog.Bool("suppressed", result.Suppressed),
	)

	c.JSON(http.StatusOK, cycleToResponse(result))
}

type alertListResponse struct {
	Alerts []domain.RankedTask `json:"alerts"`
	Total  int                 `json:"total"`
}

// HandleList returns the ranked snapshot, optionally truncated by ?limit=N.
func (h *AlertHandler) HandleList(c *gin.Context) {
	alerts := h.model.Alerts()
	total := len(alerts)

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "validation_error",
				"message": "limit must be a non-negative integer",
			})
			return
		}
		// 0 means unbounded, matching the ranker's truncation contract.
		if limit > 0 && limit < len(alerts) {
			alerts = alerts[:limit]
		}
	}

	c.JSON(http.StatusOK, alertListResponse{Alerts: alerts, Total: total})
}

type currentAlertResponse struct {
	Alert  *domain.RankedTask `json:"alert"`
	Cursor int                `json:"cursor"`
	Total  int                `json:"total"`
}

// HandleCurrent returns the single-item pager view.
func (h *AlertHandler) HandleCurrent(c *gin.Context) {
	c.JSON(http.StatusOK, h.currentResponse())
}

// HandleCursorNext advances the pager, wrapping past the end.
func (h *AlertHandler) HandleCursorNext(c *gin.Context) {
	h.model.Next()
	c.JSON(http.StatusOK, h.currentResponse())
}

// HandleCursorPrev moves the pager back, wrapping before the start.
func (h *AlertHandler) HandleCursorPrev(c *gin.Context) {
	h.model.Prev()
	c.JSON(http.StatusOK, h.currentResponse())
}

type setCursorRequest struct {
	Index int `json:"index"`
}

// HandleSetCursor positions the pager directly.
func (h *AlertHandler) HandleSetCursor(c *gin.Context) {
	var req setCursorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": "body must be {\"index\": n}",
		})
		return
	}

	h.model.SetCursor(req.Index)
	c.JSON(http.StatusOK, h.currentResponse())
}

func (h *AlertHandler) currentResponse() currentAlertResponse {
	resp := currentAlertResponse{
		Cursor: h.model.Cursor(),
		Total:  h.model.Len(),
	}
	if current, ok := h.model.Current(); ok {
		resp.Alert = &current
	}
	return resp
}
