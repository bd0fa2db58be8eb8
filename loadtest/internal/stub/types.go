package stub

import "time"

type TaskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	ProjectName string     `json:"project_name"`
	EndDate     *time.Time `json:"end_date"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	AssignedTo  string     `json:"assigned_to"`
}

type TasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Count int            `json:"count"`
}

type SeedRequest struct {
	Buckets []SeedBucket `json:"buckets"`
}

// SeedBucket describes a batch of synthetic tasks sharing deadline offset
// and priority. DaysFromNow may be negative (overdue) or omitted together
// with NoDueDate.
type SeedBucket struct {
	Count       int    `json:"count"`
	DaysFromNow int    `json:"days_from_now"`
	NoDueDate   bool   `json:"no_due_date"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	ProjectName string `json:"project_name"`
}

type PushRecord struct {
	Tag        string    `json:"tag"`
	Tier       string    `json:"tier"`
	ReceivedAt time.Time `json:"received_at"`
}
