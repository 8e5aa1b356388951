package importer

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type xmlProject struct {
	Name  string    `xml:"Name"`
	Title string    `xml:"Title"`
	Tasks []xmlTask `xml:"Tasks>Task"`
}

type xmlTask struct {
	UID          string    `xml:"UID"`
	Name         string    `xml:"Name"`
	WBS          string    `xml:"WBS"`
	Notes        string    `xml:"Notes"`
	Duration     string    `xml:"Duration"`
	Milestone    string    `xml:"Milestone"`
	Summary      string    `xml:"Summary"`
	Predecessors []xmlLink `xml:"PredecessorLink"`
}

type xmlLink struct {
	PredecessorUID string `xml:"PredecessorUID"`
	Type           string `xml:"Type"`
	LinkLag        string `xml:"LinkLag"`
}

// MS Project PredecessorLink type codes.
var xmlLinkTypes = map[string]string{
	"0": "FF",
	"1": "FS",
	"2": "SF",
	"3": "SS",
}

var isoDurationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseXML reads an MS-Project-style XML export: Project/Tasks/Task with
// UID, Name, ISO-8601 Duration and PredecessorLink elements. Summary rows
// (container tasks) are skipped; link lag arrives in tenths of minutes.
func ParseXML(data []byte) (*StagedProject, error) {
	var doc xmlProject
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("importer: parse xml: %w", err)
	}

	title := doc.Name
	if title == "" {
		title = doc.Title
	}
	if title == "" {
		title = "Imported XML Project"
	}

	staged := &StagedProject{Title: title}
	for i, xt := range doc.Tasks {
		name := strings.TrimSpace(xt.Name)
		if name == "" || xt.Summary == "1" {
			continue
		}
		ref := xt.UID
		if ref == "" {
			ref = strconv.Itoa(i + 1)
		}
		taskType := "task"
		if xt.Milestone == "1" {
			taskType = "milestone"
		}
		staged.Tasks = append(staged.Tasks, StagedTask{
			Ref:           ref,
			WBSCode:       xt.WBS,
			Title:         name,
			Description:   strings.TrimSpace(xt.Notes),
			Type:          taskType,
			DurationHours: parseISODuration(xt.Duration),
		})
		for _, link := range xt.Predecessors {
			if link.PredecessorUID == "" {
				continue
			}
			relType, ok := xmlLinkTypes[link.Type]
			if !ok {
				relType = "FS"
			}
			staged.Relationships = append(staged.Relationships, StagedRelationship{
				PredecessorRef: link.PredecessorUID,
				SuccessorRef:   ref,
				Type:           relType,
				LagHours:       parseLinkLag(link.LinkLag),
			})
		}
	}

	if len(staged.Tasks) == 0 {
		return nil, fmt.Errorf("importer: xml contains no tasks")
	}
	return staged, nil
}

// parseISODuration handles MS Project's PT8H0M0S form plus plain numbers
// (read as hours).
func parseISODuration(v string) float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if m := isoDurationRe.FindStringSubmatch(v); m != nil {
		hours := atoiOrZero(m[1])
		mins := atoiOrZero(m[2])
		return float64(hours) + float64(mins)/60
	}
	return parseFloat(v)
}

// parseLinkLag converts LinkLag (tenths of minutes) to hours.
func parseLinkLag(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0
	}
	return f / 600
}

func atoiOrZero(v string) int {
	n, _ := strconv.Atoi(v)
	return n
}
