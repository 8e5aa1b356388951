// Package analytics produces plain-data schedule summaries for reporting
// collaborators: status distribution, float spread and critical-path counts.
package analytics

import (
	"fmt"
	"time"

	"github.com/zulandar/trestle/internal/cpm"
	"github.com/zulandar/trestle/internal/models"
	"gorm.io/gorm"
)

// nearCriticalHours is the float ceiling for the near-critical bucket: one
// working day of slack.
const nearCriticalHours = 8.0

// Summary is a reporting snapshot of one project's schedule state.
type Summary struct {
	ProjectID          uint           `json:"project_id"`
	TotalTasks         int            `json:"total_tasks"`
	StatusCounts       map[string]int `json:"status_counts"`
	CriticalCount      int            `json:"critical_count"`
	NearCriticalCount  int            `json:"near_critical_count"`
	NegativeFloatCount int            `json:"negative_float_count"`
	MinFloat           float64        `json:"min_float"`
	MaxFloat           float64        `json:"max_float"`
	ProjectFinish      *time.Time     `json:"project_finish"`
}

// ProjectSummary computes the reporting snapshot from persisted tasks. Float
// buckets only count tasks that have been through a scheduling run (tasks
// with no computed dates contribute to status counts only).
func ProjectSummary(db *gorm.DB, projectID uint) (*Summary, error) {
	var project models.Project
	if err := db.First(&project, projectID).Error; err != nil {
		return nil, fmt.Errorf("analytics: project %d: %w", projectID, err)
	}

	var tasks []models.Task
	if err := db.Where("project_id = ?", projectID).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("analytics: load tasks for project %d: %w", projectID, err)
	}

	s := &Summary{
		ProjectID:    projectID,
		TotalTasks:   len(tasks),
		StatusCounts: make(map[string]int),
	}

	first := true
	for _, t := range tasks {
		s.StatusCounts[t.Status]++
		if t.EarlyStart == nil {
			continue
		}
		f := t.TotalFloat
		if first {
			s.MinFloat, s.MaxFloat = f, f
			first = false
		} else {
			if f < s.MinFloat {
				s.MinFloat = f
			}
			if f > s.MaxFloat {
				s.MaxFloat = f
			}
		}
		switch {
		case f < -cpm.CriticalEpsilon:
			s.NegativeFloatCount++
			s.CriticalCount++
		case f < cpm.CriticalEpsilon:
			s.CriticalCount++
		case f <= nearCriticalHours:
			s.NearCriticalCount++
		}
		if t.EarlyFinish != nil && (s.ProjectFinish == nil || t.EarlyFinish.After(*s.ProjectFinish)) {
			s.ProjectFinish = t.EarlyFinish
		}
	}
	return s, nil
}
