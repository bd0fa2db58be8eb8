package tasksource

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/domain"
)

func TestClientFetchUpcomingTasks(t *testing.T) {
	endDate := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/tasks/upcoming" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("window_days"); got != "14" {
			t.Errorf("window_days = %q, want %q", got, "14")
		}

		resp := TasksResponse{
			Tasks: []TaskResponse{
				{
					ID:          "t1",
					Title:       "Pour foundation",
					ProjectName: "Riverside Plaza",
					EndDate:     &endDate,
					Status:      "in-progress",
					Priority:    "high",
					AssignedTo:  "crew-7",
				},
				{
					ID:       "t2",
					Title:    "Final inspection",
					Status:   "completed",
					Priority: "medium",
				},
				{
					ID:       "t3",
					Title:    "Order rebar",
					Status:   "pending",
					Priority: "high",
				},
			},
			Count: 3,
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("failed to encode response: %v", err)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)

	tasks, err := client.FetchUpcomingTasks(context.Background(), 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The completed task is dropped by the guard.
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}

	first := tasks[0]
	if first.ID != "t1" || first.ProjectName != "Riverside Plaza" {
		t.Errorf("unexpected first task: %+v", first)
	}
	if !first.EndDate.Equal(endDate) {
		t.Errorf("EndDate = %v, want %v", first.EndDate, endDate)
	}
	if first.Priority != domain.PriorityHigh {
		t.Errorf("Priority = %v, want high", first.Priority)
	}

	if tasks[1].HasDueDate() {
		t.Errorf("task without end_date should have zero EndDate")
	}
}

func TestClientFetchUpcomingTasksServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	if _, err := client.FetchUpcomingTasks(context.Background(), 14); err == nil {
		t.Error("expected error on 500 response")
	}
}

func TestClientFetchUpcomingTasksContextCancelled(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	client := NewClient(server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.FetchUpcomingTasks(ctx, 14); err == nil {
		t.Error("expected error when context is cancelled")
	}
}
