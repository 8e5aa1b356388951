package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

// ParseCSV reads a task list with a header row. Column names are normalized
// (lowercased, spaces to underscores) and matched leniently: title may arrive
// as title/task_name/name, duration as duration/hours/estimated_hours,
// predecessors as predecessors/dependencies (comma-separated refs).
func ParseCSV(data []byte) (*StagedProject, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("importer: read csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("importer: csv has no data rows")
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = normalizeHeader(h)
	}

	staged := &StagedProject{Title: "Imported CSV Project"}
	for rowNum, rec := range records[1:] {
		row := make(map[string]string, len(headers))
		for i, v := range rec {
			if i < len(headers) {
				row[headers[i]] = strings.TrimSpace(v)
			}
		}

		title := firstOf(row, "title", "task_name", "activity_name", "name", "task")
		if title == "" {
			continue
		}
		if len(staged.Tasks) == 0 {
			if p := firstOf(row, "project", "project_title"); p != "" {
				staged.Title = p
			}
		}

		ref := firstOf(row, "id", "ref", "uid")
		if ref == "" {
			ref = strconv.Itoa(rowNum + 1)
		}

		taskType := "task"
		if t := strings.ToLower(firstOf(row, "type", "task_type")); t == "milestone" || t == "ms" {
			taskType = "milestone"
		}

		staged.Tasks = append(staged.Tasks, StagedTask{
			Ref:           ref,
			WBSCode:       firstOf(row, "wbs", "wbs_code"),
			Title:         title,
			Description:   firstOf(row, "description", "scope"),
			Type:          taskType,
			Status:        normalizeStatus(firstOf(row, "status")),
			DurationHours: parseFloat(firstOf(row, "duration", "duration_hours", "estimated_hours", "hours")),
			Responsible:   firstOf(row, "responsible", "responsible_party", "owner"),
		})

		deps := firstOf(row, "predecessors", "dependencies", "depends_on")
		for _, dep := range strings.Split(deps, ",") {
			dep = strings.TrimSpace(dep)
			if dep == "" {
				continue
			}
			staged.Relationships = append(staged.Relationships, StagedRelationship{
				PredecessorRef: dep,
				SuccessorRef:   ref,
				Type:           "FS",
			})
		}
	}

	if len(staged.Tasks) == 0 {
		return nil, fmt.Errorf("importer: csv contains no tasks")
	}
	return staged, nil
}

func normalizeHeader(h string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
}

func firstOf(row map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := row[k]; v != "" {
			return v
		}
	}
	return ""
}

func normalizeStatus(v string) string {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(v)), " ", "_") {
	case "in_progress", "active":
		return "in_progress"
	case "completed", "complete", "done":
		return "completed"
	case "":
		return ""
	default:
		return "not_started"
	}
}

func parseFloat(v string) float64 {
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}
