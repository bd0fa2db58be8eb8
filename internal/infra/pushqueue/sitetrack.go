//go:build !gcloud

package pushqueue

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"
)

// SitetrackPushClient enqueues alerts on the sitetrack-push gateway.
type SitetrackPushClient struct {
	baseURL    string
	queueName  string
	httpClient *http.Client
	maxRetries int
}

func NewSitetrackPushClient(baseURL, queueName string, maxRetries int) *SitetrackPushClient {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &SitetrackPushClient{
		baseURL:   baseURL,
		queueName: queueName,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries: maxRetries,
	}
}

func (c *SitetrackPushClient) EnqueueAlert(ctx context.Context, task *AlertTask) (*PushResponse, error) {
	payload, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal alert task: %w", err)
	}

	encodedBody := base64.StdEncoding.EncodeToString(payload)

	pushReq := sitetrackPushRequest{
		Push: sitetrackPush{
			HTTPRequest: sitetrackHTTPRequest{
				Body: encodedBody,
				Headers: map[string]string{
					"Content-Type": "application/json",
				},
			},
		},
	}

	reqBody, err := json.Marshal(pushReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal push request: %w", err)
	}

	url := fmt.Sprintf("%s/pushes", c.baseURL)
	if c.queueName != "" && c.queueName != "default" {
		url = fmt.Sprintf("%s/pushes/%s", c.baseURL, c.queueName)
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * 100 * time.Millisecond
			slog.Debug("retrying alert enqueue",
				slog.String("task_id", task.TaskID),
				slog.String("tag", task.Tag),
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err := c.doRequest(ctx, url, reqBody, task.TaskID)
		if err == nil {
			return resp, nil
		}
		lastErr = err
	}

	slog.Error("all retries exhausted for alert enqueue",
		slog.String("task_id", task.TaskID),
		slog.Int("max_retries", c.maxRetries),
		slog.String("error", lastErr.Error()),
	)
	return nil, fmt.Errorf("failed to enqueue alert after %d retries: %w", c.maxRetries, lastErr)
}

func (c *SitetrackPushClient) doRequest(ctx context.Context, url string, body []byte, taskID string) (*PushResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var pushResp sitetrackPushResponse
	if err := json.Unmarshal(respBody, &pushResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	createTime, err := time.Parse(time.RFC3339, pushResp.CreateTime)
	if err != nil {
		createTime = time.Time{}
	}

	slog.Debug("alert enqueued",
		slog.String("task_id", taskID),
		slog.String("push_name", pushResp.Name),
	)

	return &PushResponse{
		Name:       pushResp.Name,
		CreateTime: createTime,
	}, nil
}

func (c *SitetrackPushClient) DeleteAlert(ctx context.Context, tag string) error {
	url := fmt.Sprintf("%s/pushes/%s", c.baseURL, tag)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return nil
}
