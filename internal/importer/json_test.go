package importer

import "testing"

func TestParseJSON_Document(t *testing.T) {
	data := []byte(`{
		"title": "Warehouse extension",
		"description": "Phase 2",
		"tasks": [
			{"id": 1, "title": "Survey", "duration_hours": 8},
			{"id": 2, "title": "Groundwork", "duration_hours": 24, "dependencies": [1]},
			{"id": 3, "title": "Steelwork", "duration_hours": 40,
			 "predecessors": [{"id": 2, "type": "SS", "lag_hours": 16}]}
		]
	}`)

	staged, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if staged.Title != "Warehouse extension" {
		t.Errorf("Title = %q", staged.Title)
	}
	if len(staged.Tasks) != 3 {
		t.Fatalf("tasks = %d, want 3", len(staged.Tasks))
	}
	if len(staged.Relationships) != 2 {
		t.Fatalf("relationships = %+v, want 2", staged.Relationships)
	}

	fs := staged.Relationships[0]
	if fs.PredecessorRef != "1" || fs.SuccessorRef != "2" || fs.Type != "FS" || fs.LagHours != 0 {
		t.Errorf("dependency edge = %+v", fs)
	}
	ss := staged.Relationships[1]
	if ss.PredecessorRef != "2" || ss.SuccessorRef != "3" || ss.Type != "SS" || ss.LagHours != 16 {
		t.Errorf("predecessor edge = %+v", ss)
	}
}

func TestParseJSON_BareArray(t *testing.T) {
	data := []byte(`[{"title": "Only task", "duration_hours": 4}]`)
	staged, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if staged.Title != "Imported JSON Project" {
		t.Errorf("Title = %q, want default", staged.Title)
	}
	if len(staged.Tasks) != 1 || staged.Tasks[0].Title != "Only task" {
		t.Errorf("tasks = %+v", staged.Tasks)
	}
}

func TestParseJSON_RefFallbacks(t *testing.T) {
	data := []byte(`{"tasks": [
		{"ref": "T-1", "title": "Named ref"},
		{"id": 7, "title": "Numeric id"},
		{"title": "Neither"}
	]}`)
	staged, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	refs := []string{staged.Tasks[0].Ref, staged.Tasks[1].Ref, staged.Tasks[2].Ref}
	if refs[0] != "T-1" || refs[1] != "7" || refs[2] != "3" {
		t.Errorf("refs = %v", refs)
	}
}

func TestParseJSON_Invalid(t *testing.T) {
	if _, err := ParseJSON([]byte(`{"tasks": "nope"`)); err == nil {
		t.Fatal("expected error for malformed json")
	}
	if _, err := ParseJSON([]byte(`{"tasks": []}`)); err == nil {
		t.Fatal("expected error for empty task list")
	}
}
