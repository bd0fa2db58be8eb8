//go:build gcloud

package pushqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"time"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type CloudTasksClient struct {
	client     *cloudtasks.Client
	projectID  string
	locationID string
	queueID    string
	targetURL  string
	maxRetries int
}

type CloudTasksConfig struct {
	ProjectID  string
	LocationID string
	QueueID    string
	TargetURL  string
	MaxRetries int
}

func NewCloudTasksClient(ctx context.Context, cfg CloudTasksConfig) (*CloudTasksClient, error) {
	client, err := cloudtasks.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud tasks client: %w", err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	return &CloudTasksClient{
		client:     client,
		projectID:  cfg.ProjectID,
		locationID: cfg.LocationID,
		queueID:    cfg.QueueID,
		targetURL:  cfg.TargetURL,
		maxRetries: maxRetries,
	}, nil
}

func (c *CloudTasksClient) EnqueueAlert(ctx context.Context, task *AlertTask) (*PushResponse, error) {
	queuePath := fmt.Sprintf("projects/%s/locations/%s/queues/%s",
		c.projectID, c.locationID, c.queueID)

	payload, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal alert task: %w", err)
	}

	taskName := fmt.Sprintf("projects/%s/locations/%s/queues/%s/tasks/%s",
		c.projectID, c.locationID, c.queueID, task.Tag)

	cloudTask := &taskspb.Task{
		Name: taskName,
		MessageType: &taskspb.Task_HttpRequest{
			HttpRequest: &taskspb.HttpRequest{
				HttpMethod: taskspb.HttpMethod_POST,
				Url:        c.targetURL,
				Headers: map[string]string{
					"Content-Type": "application/json",
				},
				Body: payload,
			},
		},
		// Alerts fire immediately.
		ScheduleTime: timestamppb.Now(),
	}

	req := &taskspb.CreateTaskRequest{
		Parent: queuePath,
		Task:   cloudTask,
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

		resp, err := c.createTask(ctx, req, task.TaskID, task.Tag)
		if err == nil {
			return resp, nil
		}
		lastErr = err
	}

	slog.Error("all retries exhausted for alert enqueue",
		slog.String("task_id", task.TaskID),
		slog.String("tag", task.Tag),
		slog.Int("max_retries", c.maxRetries),
		slog.String("error", lastErr.Error()),
	)
	return nil, fmt.Errorf("failed to enqueue alert after %d retries: %w", c.maxRetries, lastErr)
}

func (c *CloudTasksClient) createTask(ctx context.Context, req *taskspb.CreateTaskRequest, taskID, tag string) (*PushResponse, error) {
	slog.Debug("registering alert to Cloud Tasks",
		slog.String("queue_path", req.Parent),
		slog.String("task_id", taskID),
		slog.String("tag", tag),
	)

	createdTask, err := c.client.CreateTask(ctx, req)
	if err != nil {
		slog.Warn("failed to create cloud task",
			slog.String("task_id", taskID),
			slog.String("tag", tag),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to create cloud task: %w", err)
	}

	slog.Info("alert registered to Cloud Tasks",
		slog.String("task_name", createdTask.Name),
		slog.String("task_id", taskID),
		slog.String("tag", tag),
	)

	var createTime time.Time
	if createdTask.CreateTime != nil {
		createTime = createdTask.CreateTime.AsTime()
	}

	return &PushResponse{
		Name:       createdTask.Name,
		CreateTime: createTime,
	}, nil
}

func (c *CloudTasksClient) Close() error {
	return c.client.Close()
}

func (c *CloudTasksClient) DeleteAlert(ctx context.Context, tag string) error {
	taskPath := fmt.Sprintf("projects/%s/locations/%s/queues/%s/tasks/%s",
		c.projectID, c.locationID, c.queueID, tag)

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * 100 * time.Millisecond
			slog.Debug("retrying alert deletion",
				slog.String("tag", tag),
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		err := c.deleteTask(ctx, taskPath, tag)
		if err == nil {
			return nil
		}
		lastErr = err
	}

	slog.Error("all retries exhausted for alert deletion",
		slog.String("tag", tag),
		slog.Int("max_retries", c.maxRetries),
		slog.String("error", lastErr.Error()),
	)
	return fmt.Errorf("failed to delete alert after %d retries: %w", c.maxRetries, lastErr)
}

func (c *CloudTasksClient) deleteTask(ctx context.Context, taskPath, tag string) error {
	slog.Debug("deleting alert from Cloud Tasks",
		slog.String("task_path", taskPath),
		slog.String("tag", tag),
	)

	req := &taskspb.DeleteTaskRequest{
		Name: taskPath,
	}

	err := c.client.DeleteTask(ctx, req)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			slog.Info("alert not found in Cloud Tasks (may have been delivered)",
				slog.String("tag", tag),
			)
			return nil
		}

		slog.Warn("failed to delete cloud task",
			slog.String("tag", tag),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to delete cloud task: %w", err)
	}

	slog.Info("alert deleted from Cloud Tasks",
		slog.String("tag", tag),
	)
	return nil
}
