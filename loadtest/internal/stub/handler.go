package stub

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	storage *TaskStorage
}

func NewHandler(storage *TaskStorage) *Handler {
	return &Handler{storage: storage}
}

func (h *Handler) HandleReset(c *gin.Context) {
	runID := c.DefaultQuery("run_id", "default")

	h.storage.Reset(runID)

	slog.Info("reset data", slog.String("run_id", runID))

	c.JSON(http.StatusOK, gin.H{
		"status": "reset complete",
		"run_id": runID,
	})
}

func (h *Handler) HandleSeed(c *gin.Context) {
	runID := c.DefaultQuery("run_id", "default")

	var req SeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	totalCount := 0
	for _, bucket := range req.Buckets {
		if bucket.Count <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bucket count must be positive"})
			return
		}
		totalCount += h.storage.Seed(runID, bucket, now)
	}

	slog.Info("seeded data",
		slog.String("run_id", runID),
		slog.Int("bucket_count", len(req.Buckets)),
		slog.Int("total_task_count", totalCount),
	)

	c.JSON(http.StatusOK, gin.H{
		"status":       "seeded",
		"run_id":       runID,
		"bucket_count": len(req.Buckets),
		"total_count":  totalCount,
	})
}

// GET /api/v1/tasks/upcoming?window_days=...&run_id=...
// Serves the same wire shape as the project-tracking API.
func (h *Handler) HandleGetUpcomingTasks(c *gin.Context) {
	runID := c.DefaultQuery("run_id", "default")
	windowStr := c.DefaultQuery("window_days", "14")

	windowDays, err := strconv.Atoi(windowStr)
	if err != nil || windowDays < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid window_days: " + windowStr})
		return
	}

	tasks := h.storage.UpcomingTasks(runID, time.Now(), windowDays)

	slog.Debug("get upcoming tasks",
		slog.String("run_id", runID),
		slog.Int("window_days", windowDays),
		slog.Int("count", len(tasks)),
	)

	c.JSON(http.StatusOK, TasksResponse{
		Tasks: tasks,
		Count: len(tasks),
	})
}

type pushEnvelope struct {
	Push struct {
		HTTPRequest struct {
			Body string `json:"body"`
		} `json:"httpRequest"`
	} `json:"push"`
}

type pushBody struct {
	Tag  string `json:"tag"`
	Tier string `json:"tier"`
}

// POST /pushes?run_id=...
// Captures enqueued alerts so a load-test run can assert on delivery counts.
func (h *Handler) HandlePushEnqueue(c *gin.Context) {
	runID := c.DefaultQuery("run_id", "default")

	var envelope pushEnvelope
	if err := c.ShouldBindJSON(&envelope); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	raw, err := base64.StdEncoding.DecodeString(envelope.Push.HTTPRequest.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid base64 body"})
		return
	}

	var body pushBody
	if err := json.Unmarshal(raw, &body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid push body"})
		return
	}

	now := time.Now()
	h.storage.RecordPush(runID, PushRecord{
		Tag:        body.Tag,
		Tier:       body.Tier,
		ReceivedAt: now,
	})

	slog.Debug("push recorded",
		slog.String("run_id", runID),
		slog.String("tag", body.Tag),
		slog.String("tier", body.Tier),
	)

	c.JSON(http.StatusOK, gin.H{
		"name":       "pushes/" + body.Tag,
		"createTime": now.UTC().Format(time.RFC3339),
	})
}

// GET /pushes?run_id=...
func (h *Handler) HandleListPushes(c *gin.Context) {
	runID := c.DefaultQuery("run_id", "default")

	pushes := h.storage.Pushes(runID)

	c.JSON(http.StatusOK, gin.H{
		"pushes": pushes,
		"count":  len(pushes),
	})
}
