package tasksource

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/SitetrackLabs/sitetrack-deadline-alerting/internal/domain"
)

// taskRecord maps the project-tracking tasks table.
type taskRecord struct {
	ID          string     `gorm:"column:id;primaryKey"`
	Title       string     `gorm:"column:title"`
	ProjectName string     `gorm:"column:project_name"`
	EndDate     *time.Time `gorm:"column:end_date"`
	Status      string     `gorm:"column:status"`
	Priority    string     `gorm:"column:priority"`
	AssignedTo  *string    `gorm:"column:assigned_to"`
}

func (taskRecord) TableName() string {
	return "tasks"
}

// GormSource reads tasks straight from the project-tracking database. Used
// by deployments colocated with the database, skipping the API hop.
type GormSource struct {
	db *gorm.DB
}

func NewGormSource(db *gorm.DB) *GormSource {
	return &GormSource{
		db: db,
	}
}

// OpenDatabase opens the project-tracking Postgres database for a
// GormSource.
func OpenDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open tasks database: %w", err)
	}
	return db, nil
}

func (s *GormSource) FetchUpcomingTasks(ctx context.Context, windowDays int) ([]domain.TaskDeadline, error) {
	horizon := time.Now().AddDate(0, 0, windowDays)

	var records []taskRecord
	err := s.db.WithContext(ctx).
		Where("status <> ?", domain.StatusCompleted.String()).
		Where(
			s.db.Where("end_date IS NULL").Or("end_date <= ?", horizon),
		).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming tasks: %w", err)
	}

	tasks := make([]domain.TaskDeadline, 0, len(records))
	for _, r := range records {
		var endDate time.Time
		if r.EndDate != nil {
			endDate = *r.EndDate
		}
		var assignedTo string
		if r.AssignedTo != nil {
			assignedTo = *r.AssignedTo
		}

		tasks = append(tasks, domain.TaskDeadline{
			ID:          r.ID,
			Title:       r.Title,
			ProjectName: r.ProjectName,
			EndDate:     endDate,
			Status:      domain.Status(r.Status),
			Priority:    domain.Priority(r.Priority),
			AssignedTo:  assignedTo,
		})
	}

	return tasks, nil
}
