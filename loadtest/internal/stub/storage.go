package stub

import (
	"fmt"
	"sync"
	"time"
)

type seededTask struct {
	ID          string
	Title       string
	ProjectName string
	EndDate     *time.Time
	Status      string
	Priority    string
}

// TaskStorage holds the synthetic task sets and captured pushes, keyed by
// run ID so concurrent load-test runs stay isolated.
type TaskStorage struct {
	mu     sync.RWMutex
	tasks  map[string][]*seededTask // runID -> tasks
	pushes map[string][]PushRecord  // runID -> received pushes
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		tasks:  make(map[string][]*seededTask),
		pushes: make(map[string][]PushRecord),
	}
}

func (s *TaskStorage) Reset(runID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tasks, runID)
	delete(s.pushes, runID)
}

func (s *TaskStorage) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = make(map[string][]*seededTask)
	s.pushes = make(map[string][]PushRecord)
}

// Seed materializes a bucket of tasks. Deadlines are resolved against the
// seed time so a run's data does not drift while the test executes.
func (s *TaskStorage) Seed(runID string, bucket SeedBucket, now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	priority := bucket.Priority
	if priority == "" {
		priority = "medium"
	}
	status := bucket.Status
	if status == "" {
		status = "pending"
	}
	project := bucket.ProjectName
	if project == "" {
		project = "Load Test Site"
	}

	base := len(s.tasks[runID])
	for i := 0; i < bucket.Count; i++ {
		task := &seededTask{
			ID:          fmt.Sprintf("%s-task-%d", runID, base+i),
			Title:       fmt.Sprintf("Seeded task %d", base+i),
			ProjectName: project,
			Status:      status,
			Priority:    priority,
		}
		if !bucket.NoDueDate {
			due := now.AddDate(0, 0, bucket.DaysFromNow)
			task.EndDate = &due
		}
		s.tasks[runID] = append(s.tasks[runID], task)
	}

	return bucket.Count
}

// UpcomingTasks returns the non-completed tasks due within the window,
// plus every task without a due date, mirroring the real API's contract.
func (s *TaskStorage) UpcomingTasks(runID string, now time.Time, windowDays int) []TaskResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	horizon := now.AddDate(0, 0, windowDays)
	out := make([]TaskResponse, 0)
	for _, task := range s.tasks[runID] {
		if task.Status == "completed" {
			continue
		}
		if task.EndDate != nil && task.EndDate.After(horizon) {
			continue
		}
		out = append(out, TaskResponse{
			ID:          task.ID,
			Title:       task.Title,
			ProjectName: task.ProjectName,
			EndDate:     task.EndDate,
			Status:      task.Status,
			Priority:    task.Priority,
		})
	}
	return out
}

func (s *TaskStorage) RecordPush(runID string, record PushRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushes[runID] = append(s.pushes[runID], record)
}

func (s *TaskStorage) Pushes(runID string) []PushRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]PushRecord, len(s.pushes[runID]))
	copy(out, s.pushes[runID])
	return out
}
