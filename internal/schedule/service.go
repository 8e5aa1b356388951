// Package schedule runs the CPM engine against persisted projects: it loads a
// project's tasks and relationships, executes a scheduling pass and writes the
// computed dates back in one transaction.
package schedule

import (
	"fmt"
	"time"

	"github.com/zulandar/trestle/internal/calendar"
	"github.com/zulandar/trestle/internal/cpm"
	"github.com/zulandar/trestle/internal/models"
	"gorm.io/gorm"
)

// Service schedules projects stored in db against a working calendar.
type Service struct {
	db  *gorm.DB
	cal cpm.Calendar
}

// NewService returns a scheduling service. A nil cal falls back to the
// default business calendar.
func NewService(db *gorm.DB, cal cpm.Calendar) *Service {
	if cal == nil {
		cal = calendar.Default()
	}
	return &Service{db: db, cal: cal}
}

// TaskFloat pairs a task with its computed float for summaries and alerts.
type TaskFloat struct {
	TaskID     uint    `json:"task_id"`
	Title      string  `json:"title"`
	TotalFloat float64 `json:"total_float"`
}

// RunSummary describes one completed scheduling pass.
type RunSummary struct {
	ProjectID       uint        `json:"project_id"`
	ProjectTitle    string      `json:"project_title"`
	DataDate        time.Time   `json:"data_date"`
	TaskCount       int         `json:"task_count"`
	DroppedEdges    int         `json:"dropped_edges"`
	ProjectFinish   time.Time   `json:"project_finish"`
	CriticalTaskIDs []uint      `json:"critical_task_ids"`
	NegativeFloat   []TaskFloat `json:"negative_float,omitempty"`
}

// Run executes a full scheduling pass for one project. The data date anchors
// tasks with no predecessors; a zero dataDate means now. On a cycle the error
// propagates and no task rows are touched.
func (s *Service) Run(projectID uint, dataDate time.Time) (*RunSummary, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		return nil, fmt.Errorf("schedule: project %d: %w", projectID, err)
	}

	var tasks []models.Task
	if err := s.db.Where("project_id = ?", projectID).Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("schedule: load tasks for project %d: %w", projectID, err)
	}
	if len(tasks) == 0 {
		return nil, fmt.Errorf("schedule: project %d has no tasks", projectID)
	}

	var rels []models.TaskRelationship
	if err := s.db.Where("project_id = ?", projectID).Find(&rels).Error; err != nil {
		return nil, fmt.Errorf("schedule: load relationships for project %d: %w", projectID, err)
	}

	if dataDate.IsZero() {
		dataDate = time.Now()
	}

	activities := make([]cpm.Activity, len(tasks))
	for i, t := range tasks {
		activities[i] = cpm.Activity{
			ID:             t.ID,
			DurationHours:  t.DurationHours,
			Constraint:     cpm.ConstraintType(t.ConstraintType),
			ConstraintDate: t.ConstraintDate,
		}
	}
	edges := make([]cpm.Edge, len(rels))
	for i, r := range rels {
		edges[i] = cpm.Edge{
			PredecessorID: r.PredecessorID,
			SuccessorID:   r.SuccessorID,
			Type:          cpm.RelationType(r.Type),
			LagHours:      r.LagHours,
		}
	}

	res, err := cpm.Schedule(s.cal, activities, edges, dataDate)
	if err != nil {
		return nil, fmt.Errorf("schedule: project %d: %w", projectID, err)
	}

	if err := s.persist(tasks, res); err != nil {
		return nil, fmt.Errorf("schedule: persist project %d: %w", projectID, err)
	}

	summary := &RunSummary{
		ProjectID:       projectID,
		ProjectTitle:    project.Title,
		DataDate:        dataDate,
		TaskCount:       len(tasks),
		DroppedEdges:    res.DroppedEdges,
		ProjectFinish:   res.ProjectFinish,
		CriticalTaskIDs: res.CriticalPath,
	}
	for _, t := range tasks {
		d := res.Dates[t.ID]
		if d.TotalFloat < -cpm.CriticalEpsilon {
			summary.NegativeFloat = append(summary.NegativeFloat, TaskFloat{
				TaskID:     t.ID,
				Title:      t.Title,
				TotalFloat: d.TotalFloat,
			})
		}
	}
	return summary, nil
}

// persist writes the five computed columns for every task in one transaction,
// so readers never observe a half-applied pass.
func (s *Service) persist(tasks []models.Task, res *cpm.Result) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, t := range tasks {
			d, ok := res.Dates[t.ID]
			if !ok {
				continue
			}
			es, ef, ls, lf := d.EarlyStart, d.EarlyFinish, d.LateStart, d.LateFinish
			updates := map[string]interface{}{
				"early_start":  &es,
				"early_finish": &ef,
				"late_start":   &ls,
				"late_finish":  &lf,
				"total_float":  d.TotalFloat,
			}
			if err := tx.Model(&models.Task{}).Where("id = ?", t.ID).Updates(updates).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ActiveProjectIDs lists projects eligible for the periodic reschedule
// trigger: anything not completed or on hold.
func (s *Service) ActiveProjectIDs() ([]uint, error) {
	var ids []uint
	err := s.db.Model(&models.Project{}).
		Where("status NOT IN ?", []string{"completed", "on_hold"}).
		Order("id ASC").Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("schedule: list active projects: %w", err)
	}
	return ids, nil
}
