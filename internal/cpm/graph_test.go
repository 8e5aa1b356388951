package cpm

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildGraph_NegativeDuration(t *testing.T) {
	_, err := buildGraph([]Activity{{ID: 1, DurationHours: -4}}, nil)
	if !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("err = %v, want ErrInvalidDuration", err)
	}
}

func TestBuildGraph_DuplicateID(t *testing.T) {
	_, err := buildGraph([]Activity{{ID: 1}, {ID: 1}}, nil)
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("err = %v, want duplicate id error", err)
	}
}

func TestBuildGraph_DropsDanglingEdges(t *testing.T) {
	g, err := buildGraph(
		[]Activity{{ID: 1}, {ID: 2}},
		[]Edge{
			{PredecessorID: 1, SuccessorID: 2, Type: FinishToStart},
			{PredecessorID: 1, SuccessorID: 99, Type: FinishToStart},
			{PredecessorID: 99, SuccessorID: 2, Type: FinishToStart},
		},
	)
	if err != nil {
		t.Fatalf("buildGraph: %v", err)
	}
	if g.dropped != 2 {
		t.Errorf("dropped = %d, want 2", g.dropped)
	}
	if len(g.preds[2]) != 1 {
		t.Errorf("preds[2] = %v, want one edge", g.preds[2])
	}
}

func TestTopoSort_Deterministic(t *testing.T) {
	activities := []Activity{{ID: 5}, {ID: 3}, {ID: 1}, {ID: 4}, {ID: 2}}
	edges := []Edge{
		{PredecessorID: 3, SuccessorID: 4, Type: FinishToStart},
		{PredecessorID: 1, SuccessorID: 4, Type: FinishToStart},
	}

	g, err := buildGraph(activities, edges)
	if err != nil {
		t.Fatalf("buildGraph: %v", err)
	}
	order, err := g.topoSort()
	if err != nil {
		t.Fatalf("topoSort: %v", err)
	}
	want := []uint{1, 2, 3, 5, 4}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestTopoSort_PredecessorsFirst(t *testing.T) {
	activities := []Activity{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}
	edges := []Edge{
		{PredecessorID: 4, SuccessorID: 3, Type: FinishToStart},
		{PredecessorID: 3, SuccessorID: 2, Type: StartToStart},
		{PredecessorID: 2, SuccessorID: 1, Type: FinishToFinish},
	}

	g, err := buildGraph(activities, edges)
	if err != nil {
		t.Fatalf("buildGraph: %v", err)
	}
	order, err := g.topoSort()
	if err != nil {
		t.Fatalf("topoSort: %v", err)
	}

	pos := make(map[uint]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	for _, e := range edges {
		if pos[e.PredecessorID] > pos[e.SuccessorID] {
			t.Errorf("predecessor %d sorted after successor %d in %v", e.PredecessorID, e.SuccessorID, order)
		}
	}
}

func TestTopoSort_CycleListsStuckActivities(t *testing.T) {
	activities := []Activity{{ID: 1}, {ID: 2}, {ID: 3}}
	edges := []Edge{
		{PredecessorID: 1, SuccessorID: 2, Type: FinishToStart},
		{PredecessorID: 2, SuccessorID: 3, Type: FinishToStart},
		{PredecessorID: 3, SuccessorID: 2, Type: FinishToStart},
	}

	g, err := buildGraph(activities, edges)
	if err != nil {
		t.Fatalf("buildGraph: %v", err)
	}
	_, err = g.topoSort()
	if !errors.Is(err, ErrCycleDetected) {
		t.Fatalf("err = %v, want ErrCycleDetected", err)
	}
	if !strings.Contains(err.Error(), "[2 3]") {
		t.Errorf("err = %q, want stuck activity ids listed", err)
	}
}
