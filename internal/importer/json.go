package importer

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type jsonProject struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Tasks       []jsonTask `json:"tasks"`
}

type jsonTask struct {
	ID            json.Number        `json:"id"`
	Ref           string             `json:"ref"`
	WBSCode       string             `json:"wbs_code"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Type          string             `json:"type"`
	Status        string             `json:"status"`
	DurationHours float64            `json:"duration_hours"`
	Responsible   string             `json:"responsible"`
	Dependencies  []json.Number      `json:"dependencies"`
	Predecessors  []jsonPredecessor  `json:"predecessors"`
}

type jsonPredecessor struct {
	ID       json.Number `json:"id"`
	Type     string      `json:"type"`
	LagHours float64     `json:"lag_hours"`
}

// ParseJSON reads a project document: {title, description, tasks: [...]}, or
// a bare task array. Dependencies are plain FS edges; predecessors carry an
// explicit type and lag.
func ParseJSON(data []byte) (*StagedProject, error) {
	var doc jsonProject
	if err := json.Unmarshal(data, &doc); err != nil {
		// A bare array of tasks is also accepted.
		var tasks []jsonTask
		if arrErr := json.Unmarshal(data, &tasks); arrErr != nil {
			return nil, fmt.Errorf("importer: parse json: %w", err)
		}
		doc.Tasks = tasks
	}
	if doc.Title == "" {
		doc.Title = "Imported JSON Project"
	}

	staged := &StagedProject{Title: doc.Title, Description: doc.Description}
	for i, jt := range doc.Tasks {
		if jt.Title == "" {
			continue
		}
		ref := jt.Ref
		if ref == "" {
			ref = jt.ID.String()
		}
		if ref == "" {
			ref = strconv.Itoa(i + 1)
		}
		staged.Tasks = append(staged.Tasks, StagedTask{
			Ref:           ref,
			WBSCode:       jt.WBSCode,
			Title:         jt.Title,
			Description:   jt.Description,
			Type:          jt.Type,
			Status:        normalizeStatus(jt.Status),
			DurationHours: jt.DurationHours,
			Responsible:   jt.Responsible,
		})
		for _, dep := range jt.Dependencies {
			staged.Relationships = append(staged.Relationships, StagedRelationship{
				PredecessorRef: dep.String(),
				SuccessorRef:   ref,
				Type:           "FS",
			})
		}
		for _, p := range jt.Predecessors {
			staged.Relationships = append(staged.Relationships, StagedRelationship{
				PredecessorRef: p.ID.String(),
				SuccessorRef:   ref,
				Type:           orDefault(p.Type, "FS"),
				LagHours:       p.LagHours,
			})
		}
	}

	if len(staged.Tasks) == 0 {
		return nil, fmt.Errorf("importer: json contains no tasks")
	}
	return staged, nil
}
