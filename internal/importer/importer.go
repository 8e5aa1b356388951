// Package importer ingests project files (CSV, JSON, MS-Project-style XML)
// into a staged form and persists them as a new project with remapped ids.
package importer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/zulandar/trestle/internal/models"
	"gorm.io/gorm"
)

// StagedTask is one task parsed from an import file. Ref is the external
// identifier relationships point at (a CSV row id, JSON id or XML UID).
type StagedTask struct {
	Ref           string
	WBSCode       string
	Title         string
	Description   string
	Type          string
	Status        string
	DurationHours float64
	Responsible   string
}

// StagedRelationship is a precedence edge expressed in external refs.
type StagedRelationship struct {
	PredecessorRef string
	SuccessorRef   string
	Type           string
	LagHours       float64
}

// StagedProject is the parsed, not-yet-persisted form of an import file.
type StagedProject struct {
	Title         string
	Description   string
	Tasks         []StagedTask
	Relationships []StagedRelationship
}

// Parse dispatches to the parser for the given format ("csv", "json", "xml").
func Parse(format string, data []byte) (*StagedProject, error) {
	switch strings.ToLower(format) {
	case "csv":
		return ParseCSV(data)
	case "json":
		return ParseJSON(data)
	case "xml":
		return ParseXML(data)
	default:
		return nil, fmt.Errorf("importer: unsupported format %q", format)
	}
}

// FormatForFile guesses the import format from a file name extension.
func FormatForFile(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return "csv"
	case ".json":
		return "json"
	case ".xml":
		return "xml"
	default:
		return ""
	}
}

// Import persists a staged project: project row, tasks with fresh ids, then
// relationships with refs remapped to the new task ids. Relationships whose
// refs resolve to no staged task are skipped, mirroring the engine's
// dangling-edge policy. Returns the project and the skipped count.
func Import(db *gorm.DB, staged *StagedProject) (*models.Project, int, error) {
	if staged == nil || len(staged.Tasks) == 0 {
		return nil, 0, fmt.Errorf("importer: no tasks to import")
	}

	project := &models.Project{
		Title:       staged.Title,
		Description: staged.Description,
		Status:      "planning",
	}
	skipped := 0
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		idByRef := make(map[string]uint, len(staged.Tasks))
		for _, st := range staged.Tasks {
			task := models.Task{
				ProjectID:     project.ID,
				WBSCode:       st.WBSCode,
				Title:         st.Title,
				Description:   st.Description,
				Type:          orDefault(st.Type, models.TypeTask),
				Status:        orDefault(st.Status, models.StatusNotStarted),
				DurationHours: st.DurationHours,
				Responsible:   st.Responsible,
			}
			if err := tx.Create(&task).Error; err != nil {
				return err
			}
			if st.Ref != "" {
				idByRef[st.Ref] = task.ID
			}
		}
		for _, sr := range staged.Relationships {
			predID, okPred := idByRef[sr.PredecessorRef]
			succID, okSucc := idByRef[sr.SuccessorRef]
			if !okPred || !okSucc || predID == succID {
				skipped++
				continue
			}
			rel := models.TaskRelationship{
				ProjectID:     project.ID,
				PredecessorID: predID,
				SuccessorID:   succID,
				Type:          orDefault(sr.Type, "FS"),
				LagHours:      sr.LagHours,
			}
			if err := tx.Create(&rel).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("importer: persist %q: %w", staged.Title, err)
	}
	return project, skipped, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
