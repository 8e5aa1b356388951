package evm

import (
	"testing"

	"github.com/zulandar/trestle/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupEVMDB(t *testing.T) *gorm.DB {
	t.Helper()
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := gormDB.AutoMigrate(&models.Task{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return gormDB
}

func seedTask(t *testing.T, gormDB *gorm.DB, projectID uint, pv, ev, ac, bac float64) {
	t.Helper()
	task := models.Task{
		ProjectID: projectID, Title: "t",
		PlannedValue: pv, EarnedValue: ev, ActualCost: ac, BudgetAtCompletion: bac,
	}
	if err := gormDB.Create(&task).Error; err != nil {
		t.Fatalf("create task: %v", err)
	}
}

func TestProjectMetrics_AtRisk(t *testing.T) {
	gormDB := setupEVMDB(t)
	seedTask(t, gormDB, 1, 1000, 800, 1000, 2000)
	seedTask(t, gormDB, 1, 500, 400, 500, 1000)
	seedTask(t, gormDB, 2, 999, 1, 1, 999) // different project, ignored

	m, err := ProjectMetrics(gormDB, 1)
	if err != nil {
		t.Fatalf("ProjectMetrics: %v", err)
	}

	if m.PV != 1500 || m.EV != 1200 || m.AC != 1500 || m.BAC != 3000 {
		t.Fatalf("sums = PV %v EV %v AC %v BAC %v", m.PV, m.EV, m.AC, m.BAC)
	}
	if m.SPI != 0.8 {
		t.Errorf("SPI = %v, want 0.8", m.SPI)
	}
	if m.CPI != 0.8 {
		t.Errorf("CPI = %v, want 0.8", m.CPI)
	}
	if m.SV != -300 || m.CV != -300 {
		t.Errorf("SV = %v, CV = %v, want -300 each", m.SV, m.CV)
	}
	if m.EAC != 3750 {
		t.Errorf("EAC = %v, want 3750", m.EAC)
	}
	if m.ETC != 2250 {
		t.Errorf("ETC = %v, want 2250", m.ETC)
	}
	if m.Status != "at_risk" {
		t.Errorf("Status = %q, want at_risk", m.Status)
	}
}

func TestProjectMetrics_OnTrack(t *testing.T) {
	gormDB := setupEVMDB(t)
	seedTask(t, gormDB, 1, 1000, 1100, 1000, 2000)

	m, err := ProjectMetrics(gormDB, 1)
	if err != nil {
		t.Fatalf("ProjectMetrics: %v", err)
	}
	if m.SPI != 1.1 || m.CPI != 1.1 {
		t.Errorf("SPI = %v, CPI = %v, want 1.1 each", m.SPI, m.CPI)
	}
	if m.Status != "on_track" {
		t.Errorf("Status = %q, want on_track", m.Status)
	}
}

func TestProjectMetrics_FreshProjectReadsOnTrack(t *testing.T) {
	gormDB := setupEVMDB(t)
	seedTask(t, gormDB, 1, 0, 0, 0, 5000)

	m, err := ProjectMetrics(gormDB, 1)
	if err != nil {
		t.Fatalf("ProjectMetrics: %v", err)
	}
	if m.SPI != 1 || m.CPI != 1 {
		t.Errorf("SPI = %v, CPI = %v, want 1 each for zero denominators", m.SPI, m.CPI)
	}
	if m.EAC != 5000 || m.ETC != 5000 {
		t.Errorf("EAC = %v, ETC = %v, want BAC", m.EAC, m.ETC)
	}
	if m.Status != "on_track" {
		t.Errorf("Status = %q, want on_track", m.Status)
	}
}
