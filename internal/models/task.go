package models

import "time"

// Task statuses.
const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Task types.
const (
	TypeTask      = "task"
	TypeMilestone = "milestone"
)

// Task is one schedulable activity. DurationHours is working hours; a
// milestone carries zero. The five CPM columns (EarlyStart through TotalFloat)
// are owned by the scheduling run and overwritten as one snapshot; everything
// else is caller-maintained.
type Task struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	ProjectID   uint   `gorm:"not null;index" json:"project_id"`
	WBSCode     string `gorm:"size:32;index" json:"wbs_code"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Type        string `gorm:"size:16;default:task" json:"type"`
	Status      string `gorm:"size:16;default:not_started;index" json:"status"`
	Responsible string `gorm:"size:64" json:"responsible"`

	DurationHours  float64    `gorm:"default:0" json:"duration_hours"`
	ConstraintType string     `gorm:"size:32" json:"constraint_type"`
	ConstraintDate *time.Time `json:"constraint_date"`

	PlannedStart *time.Time `json:"planned_start"`
	PlannedEnd   *time.Time `json:"planned_end"`
	ActualStart  *time.Time `json:"actual_start"`
	ActualEnd    *time.Time `json:"actual_end"`

	// Computed by the scheduling run.
	EarlyStart  *time.Time `json:"early_start"`
	EarlyFinish *time.Time `json:"early_finish"`
	LateStart   *time.Time `json:"late_start"`
	LateFinish  *time.Time `json:"late_finish"`
	TotalFloat  float64    `gorm:"default:0" json:"total_float"`

	// Earned-value inputs, maintained by cost tracking.
	PlannedValue       float64 `gorm:"default:0" json:"planned_value"`
	EarnedValue        float64 `gorm:"default:0" json:"earned_value"`
	ActualCost         float64 `gorm:"default:0" json:"actual_cost"`
	BudgetAtCompletion float64 `gorm:"default:0" json:"budget_at_completion"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskRelationship is a precedence edge between two tasks of the same
// project. Type is FS, SS, FF or SF; LagHours is signed working hours
// (negative = lead).
type TaskRelationship struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	ProjectID     uint    `gorm:"not null;index" json:"project_id"`
	PredecessorID uint    `gorm:"not null;index" json:"predecessor_id"`
	SuccessorID   uint    `gorm:"not null;index" json:"successor_id"`
	Type          string  `gorm:"size:4;default:FS" json:"type"`
	LagHours      float64 `gorm:"default:0" json:"lag_hours"`

	Predecessor *Task `gorm:"foreignKey:PredecessorID" json:"-"`
	Successor   *Task `gorm:"foreignKey:SuccessorID" json:"-"`
}
