package models

import "time"

// ProjectBaseline is a named point-in-time snapshot of a project's schedule,
// taken so later runs can be diffed against it.
type ProjectBaseline struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProjectID   uint      `gorm:"not null;index" json:"project_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`

	Tasks []TaskBaseline `gorm:"foreignKey:BaselineID" json:"tasks,omitempty"`
}

// TaskBaseline freezes one task's dates and float at baseline time.
type TaskBaseline struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BaselineID uint `gorm:"not null;index" json:"baseline_id"`
	TaskID     uint `gorm:"not null;index" json:"task_id"`

	DurationHours float64    `json:"duration_hours"`
	EarlyStart    *time.Time `json:"early_start"`
	EarlyFinish   *time.Time `json:"early_finish"`
	LateStart     *time.Time `json:"late_start"`
	LateFinish    *time.Time `json:"late_finish"`
	TotalFloat    float64    `json:"total_float"`
	Status        string     `gorm:"size:16" json:"status"`
	PlannedCost   float64    `json:"planned_cost"`
}
