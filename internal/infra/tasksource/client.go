package tasksource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/domain"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/observability/logging"
	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/observability/tracing"
)

// Client reads upcoming tasks from the project-tracking API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: newHTTPClient(baseURL),
	}
}

func (c *Client) FetchUpcomingTasks(ctx context.Context, windowDays int) ([]domain.TaskDeadline, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	u.Path = "/api/v1/tasks/upcoming"
	q := u.Query()
	q.Set("window_days", strconv.Itoa(windowDays))
	u.RawQuery = q.Encode()

	slog.DebugContext(ctx, "fetching upcoming tasks from project-tracking",
		slog.String("url", u.String()),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	requestID := logging.ValidateAndExtractRequestID(logging.RequestIDFromContext(ctx))
	req.Header.Set("x-request-id", requestID)
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "failed to send request to project-tracking",
			slog.String("url", u.String()),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.ErrorContext(ctx, "unexpected status code from project-tracking",
			slog.String("url", u.String()),
			slog.Int("status_code", resp.StatusCode),
		)
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var tasksResp TasksResponse
	if err := json.Unmarshal(body, &tasksResp); err != nil {
		slog.ErrorContext(ctx, "failed to decode response from project-tracking",
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	tasks := responseToTasks(&tasksResp)

	slog.DebugContext(ctx, "successfully fetched upcoming tasks",
		slog.Int("count", len(tasks)),
	)

	return tasks, nil
}

func responseToTasks(resp *TasksResponse) []domain.TaskDeadline {
	tasks := make([]domain.TaskDeadline, 0, len(resp.Tasks))
	for _, t := range resp.Tasks {
		var endDate time.Time
		if t.EndDate != nil {
			endDate = *t.EndDate
		}

		// Completed tasks never become candidates.
		if domain.Status(t.Status).IsCompleted() {
			continue
		}

		tasks = append(tasks, domain.TaskDeadline{
			ID:          t.ID,
			Title:       t.Title,
			ProjectName: t.ProjectName,
			EndDate:     endDate,
			Status:      domain.Status(t.Status),
			Priority:    domain.Priority(t.Priority),
			AssignedTo:  t.AssignedTo,
		})
	}
	return tasks
}
