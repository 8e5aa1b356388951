package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/zulandar/trestle/internal/cpm"
	"github.com/zulandar/trestle/internal/db"
	"github.com/zulandar/trestle/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := gormDB.AutoMigrate(db.AllModels()...); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return gormDB
}

func createProject(t *testing.T, gormDB *gorm.DB, title string) *models.Project {
	t.Helper()
	p := &models.Project{Title: title, Status: "active"}
	if err := gormDB.Create(p).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}
	return p
}

func createTask(t *testing.T, gormDB *gorm.DB, projectID uint, title string, hours float64) *models.Task {
	t.Helper()
	task := &models.Task{ProjectID: projectID, Title: title, DurationHours: hours}
	if err := gormDB.Create(task).Error; err != nil {
		t.Fatalf("create task %q: %v", title, err)
	}
	return task
}

func link(t *testing.T, gormDB *gorm.DB, projectID, pred, succ uint, relType string, lag float64) {
	t.Helper()
	rel := &models.TaskRelationship{
		ProjectID: projectID, PredecessorID: pred, SuccessorID: succ,
		Type: relType, LagHours: lag,
	}
	if err := gormDB.Create(rel).Error; err != nil {
		t.Fatalf("create relationship %d->%d: %v", pred, succ, err)
	}
}

// 2026-01-05 is a Monday.
var testDataDate = time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

func TestRunPersistsDates(t *testing.T) {
	gormDB := setupTestDB(t)
	p := createProject(t, gormDB, "Bridge refit")
	a := createTask(t, gormDB, p.ID, "Design", 8)
	b := createTask(t, gormDB, p.ID, "Build", 16)
	link(t, gormDB, p.ID, a.ID, b.ID, "FS", 0)

	summary, err := NewService(gormDB, nil).Run(p.ID, testDataDate)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.TaskCount != 2 {
		t.Errorf("TaskCount = %d, want 2", summary.TaskCount)
	}
	if summary.ProjectTitle != "Bridge refit" {
		t.Errorf("ProjectTitle = %q", summary.ProjectTitle)
	}
	wantFinish := time.Date(2026, 1, 7, 17, 0, 0, 0, time.UTC)
	if !summary.ProjectFinish.Equal(wantFinish) {
		t.Errorf("ProjectFinish = %v, want %v", summary.ProjectFinish, wantFinish)
	}

	var got models.Task
	if err := gormDB.First(&got, b.ID).Error; err != nil {
		t.Fatalf("reload task: %v", err)
	}
	if got.EarlyStart == nil || got.LateFinish == nil {
		t.Fatalf("computed dates not persisted: %+v", got)
	}
	wantStart := time.Date(2026, 1, 6, 8, 0, 0, 0, time.UTC)
	if !got.EarlyStart.Equal(wantStart) {
		t.Errorf("EarlyStart = %v, want %v", got.EarlyStart, wantStart)
	}
	if got.TotalFloat != 0 {
		t.Errorf("TotalFloat = %v, want 0", got.TotalFloat)
	}
}

func TestRunCriticalAndNegativeFloat(t *testing.T) {
	gormDB := setupTestDB(t)
	p := createProject(t, gormDB, "Deadline job")
	deadline := time.Date(2026, 1, 5, 17, 0, 0, 0, time.UTC)
	late := &models.Task{
		ProjectID: p.ID, Title: "Pour foundation", DurationHours: 16,
		ConstraintType: string(cpm.FinishNoLaterThan), ConstraintDate: &deadline,
	}
	if err := gormDB.Create(late).Error; err != nil {
		t.Fatalf("create task: %v", err)
	}

	summary, err := NewService(gormDB, nil).Run(p.ID, testDataDate)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(summary.NegativeFloat) != 1 {
		t.Fatalf("NegativeFloat = %+v, want one entry", summary.NegativeFloat)
	}
	nf := summary.NegativeFloat[0]
	if nf.TaskID != late.ID || nf.TotalFloat != -8 {
		t.Errorf("NegativeFloat[0] = %+v, want task %d with -8h", nf, late.ID)
	}
}

func TestRunCycleLeavesRowsUntouched(t *testing.T) {
	gormDB := setupTestDB(t)
	p := createProject(t, gormDB, "Tangle")
	a := createTask(t, gormDB, p.ID, "A", 8)
	b := createTask(t, gormDB, p.ID, "B", 8)
	link(t, gormDB, p.ID, a.ID, b.ID, "FS", 0)
	link(t, gormDB, p.ID, b.ID, a.ID, "FS", 0)

	_, err := NewService(gormDB, nil).Run(p.ID, testDataDate)
	if !errors.Is(err, cpm.ErrCycleDetected) {
		t.Fatalf("err = %v, want ErrCycleDetected", err)
	}

	var got models.Task
	if err := gormDB.First(&got, a.ID).Error; err != nil {
		t.Fatalf("reload task: %v", err)
	}
	if got.EarlyStart != nil || got.LateFinish != nil {
		t.Errorf("cycle run wrote dates: %+v", got)
	}
}

func TestRunDanglingRelationshipReported(t *testing.T) {
	gormDB := setupTestDB(t)
	p := createProject(t, gormDB, "Partial import")
	a := createTask(t, gormDB, p.ID, "A", 8)
	link(t, gormDB, p.ID, a.ID, 9999, "FS", 0)

	summary, err := NewService(gormDB, nil).Run(p.ID, testDataDate)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.DroppedEdges != 1 {
		t.Errorf("DroppedEdges = %d, want 1", summary.DroppedEdges)
	}
}

func TestRunUnknownProject(t *testing.T) {
	gormDB := setupTestDB(t)
	_, err := NewService(gormDB, nil).Run(42, testDataDate)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v, want ErrRecordNotFound", err)
	}
}

func TestRunEmptyProject(t *testing.T) {
	gormDB := setupTestDB(t)
	p := createProject(t, gormDB, "Empty")
	_, err := NewService(gormDB, nil).Run(p.ID, testDataDate)
	if err == nil {
		t.Fatal("expected error for project with no tasks")
	}
}

func TestActiveProjectIDs(t *testing.T) {
	gormDB := setupTestDB(t)
	active := createProject(t, gormDB, "Active")
	planning := &models.Project{Title: "Planning", Status: "planning"}
	done := &models.Project{Title: "Done", Status: "completed"}
	held := &models.Project{Title: "Held", Status: "on_hold"}
	for _, p := range []*models.Project{planning, done, held} {
		if err := gormDB.Create(p).Error; err != nil {
			t.Fatalf("create project: %v", err)
		}
	}

	ids, err := NewService(gormDB, nil).ActiveProjectIDs()
	if err != nil {
		t.Fatalf("ActiveProjectIDs: %v", err)
	}
	want := []uint{active.ID, planning.ID}
	if len(ids) != 2 || ids[0] != want[0] || ids[1] != want[1] {
		t.Errorf("ActiveProjectIDs = %v, want %v", ids, want)
	}
}
