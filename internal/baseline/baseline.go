// Package baseline snapshots a project's computed schedule and diffs later
// runs against the snapshot.
package baseline

import (
	"fmt"
	"time"

	"github.com/zulandar/trestle/internal/cpm"
	"github.com/zulandar/trestle/internal/models"
	"gorm.io/gorm"
)

// Create snapshots every task of the project into a new named baseline.
func Create(db *gorm.DB, projectID uint, name, description string) (*models.ProjectBaseline, error) {
	var project models.Project
	if err := db.First(&project, projectID).Error; err != nil {
		return nil, fmt.Errorf("baseline: project %d: %w", projectID, err)
	}

	var tasks []models.Task
	if err := db.Where("project_id = ?", projectID).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("baseline: load tasks for project %d: %w", projectID, err)
	}

	bl := &models.ProjectBaseline{
		ProjectID:   projectID,
		Name:        name,
		Description: description,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(bl).Error; err != nil {
			return err
		}
		for _, t := range tasks {
			tb := models.TaskBaseline{
				BaselineID:    bl.ID,
				TaskID:        t.ID,
				DurationHours: t.DurationHours,
				EarlyStart:    t.EarlyStart,
				EarlyFinish:   t.EarlyFinish,
				LateStart:     t.LateStart,
				LateFinish:    t.LateFinish,
				TotalFloat:    t.TotalFloat,
				Status:        t.Status,
				PlannedCost:   t.PlannedValue,
			}
			if err := tx.Create(&tb).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("baseline: create %q for project %d: %w", name, projectID, err)
	}
	return bl, nil
}

// List returns a project's baselines, newest first.
func List(db *gorm.DB, projectID uint) ([]models.ProjectBaseline, error) {
	var baselines []models.ProjectBaseline
	if err := db.Where("project_id = ?", projectID).Order("created_at DESC, id DESC").Find(&baselines).Error; err != nil {
		return nil, fmt.Errorf("baseline: list for project %d: %w", projectID, err)
	}
	return baselines, nil
}

// Variance is the per-task schedule drift between the current plan and a
// baseline, measured in working hours. Positive means slipped later.
type Variance struct {
	TaskID              uint       `json:"task_id"`
	Title               string     `json:"title"`
	BaselineStart       *time.Time `json:"baseline_start"`
	BaselineFinish      *time.Time `json:"baseline_finish"`
	CurrentStart        *time.Time `json:"current_start"`
	CurrentFinish       *time.Time `json:"current_finish"`
	StartVarianceHours  float64    `json:"start_variance_hours"`
	FinishVarianceHours float64    `json:"finish_variance_hours"`
	FloatChange         float64    `json:"float_change"`
}

// Compare diffs the project's current tasks against one of its baselines.
// Tasks created after the baseline appear with nil baseline dates.
func Compare(db *gorm.DB, cal cpm.Calendar, projectID, baselineID uint) ([]Variance, error) {
	var bl models.ProjectBaseline
	if err := db.Where("id = ? AND project_id = ?", baselineID, projectID).First(&bl).Error; err != nil {
		return nil, fmt.Errorf("baseline: %d for project %d: %w", baselineID, projectID, err)
	}

	var tasks []models.Task
	if err := db.Where("project_id = ?", projectID).Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("baseline: load tasks for project %d: %w", projectID, err)
	}

	var snaps []models.TaskBaseline
	if err := db.Where("baseline_id = ?", baselineID).Find(&snaps).Error; err != nil {
		return nil, fmt.Errorf("baseline: load snapshot %d: %w", baselineID, err)
	}
	byTask := make(map[uint]models.TaskBaseline, len(snaps))
	for _, s := range snaps {
		byTask[s.TaskID] = s
	}

	variances := make([]Variance, 0, len(tasks))
	for _, t := range tasks {
		v := Variance{
			TaskID:        t.ID,
			Title:         t.Title,
			CurrentStart:  t.EarlyStart,
			CurrentFinish: t.EarlyFinish,
		}
		if snap, ok := byTask[t.ID]; ok {
			v.BaselineStart = snap.EarlyStart
			v.BaselineFinish = snap.EarlyFinish
			v.StartVarianceHours = workingDelta(cal, snap.EarlyStart, t.EarlyStart)
			v.FinishVarianceHours = workingDelta(cal, snap.EarlyFinish, t.EarlyFinish)
			v.FloatChange = t.TotalFloat - snap.TotalFloat
		}
		variances = append(variances, v)
	}
	return variances, nil
}

// workingDelta measures working hours from the baseline instant to the
// current one, negative when the current plan moved earlier.
func workingDelta(cal cpm.Calendar, from, to *time.Time) float64 {
	if from == nil || to == nil {
		return 0
	}
	if to.Before(*from) {
		return -cal.HoursBetween(*to, *from)
	}
	return cal.HoursBetween(*from, *to)
}
