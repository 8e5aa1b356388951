// Package evm rolls task-level earned-value inputs up to project metrics.
package evm

import (
	"fmt"
	"math"

	"github.com/zulandar/trestle/internal/models"
	"gorm.io/gorm"
)

// Metrics is the standard earned-value indicator set for one project.
type Metrics struct {
	ProjectID uint    `json:"project_id"`
	SPI       float64 `json:"spi"` // schedule performance index, EV/PV
	CPI       float64 `json:"cpi"` // cost performance index, EV/AC
	SV        float64 `json:"sv"`  // schedule variance, EV-PV
	CV        float64 `json:"cv"`  // cost variance, EV-AC
	BAC       float64 `json:"bac"`
	PV        float64 `json:"pv"`
	EV        float64 `json:"ev"`
	AC        float64 `json:"ac"`
	EAC       float64 `json:"eac"` // estimate at completion, BAC/CPI
	ETC       float64 `json:"etc"` // estimate to complete, EAC-AC
	Status    string  `json:"status"`
}

// ProjectMetrics aggregates every task's PV/EV/AC/BAC and derives the
// indicator set. Ratios default to 1.0 when the denominator is zero so a
// freshly planned project reads as on track.
func ProjectMetrics(db *gorm.DB, projectID uint) (*Metrics, error) {
	var tasks []models.Task
	if err := db.Where("project_id = ?", projectID).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("evm: load tasks for project %d: %w", projectID, err)
	}

	m := &Metrics{ProjectID: projectID}
	for _, t := range tasks {
		m.PV += t.PlannedValue
		m.EV += t.EarnedValue
		m.AC += t.ActualCost
		m.BAC += t.BudgetAtCompletion
	}

	m.SPI = ratio(m.EV, m.PV)
	m.CPI = ratio(m.EV, m.AC)
	m.SV = m.EV - m.PV
	m.CV = m.EV - m.AC
	if m.CPI > 0 {
		m.EAC = m.BAC / m.CPI
	} else {
		m.EAC = m.BAC
	}
	m.ETC = m.EAC - m.AC

	if m.SPI >= 1.0 && m.CPI >= 1.0 {
		m.Status = "on_track"
	} else {
		m.Status = "at_risk"
	}

	m.round()
	return m, nil
}

func ratio(num, den float64) float64 {
	if den <= 0 {
		return 1.0
	}
	return num / den
}

func (m *Metrics) round() {
	m.SPI = round3(m.SPI)
	m.CPI = round3(m.CPI)
	m.SV = round2(m.SV)
	m.CV = round2(m.CV)
	m.BAC = round2(m.BAC)
	m.PV = round2(m.PV)
	m.EV = round2(m.EV)
	m.AC = round2(m.AC)
	m.EAC = round2(m.EAC)
	m.ETC = round2(m.ETC)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
