package tasksource

import "time"

type TaskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	ProjectName string     `json:"project_name"`
	EndDate     *time.Time `json:"end_date"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	AssignedTo  string     `json:"assigned_to"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type TasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Count int            `json:"count"`
}
