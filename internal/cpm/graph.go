package cpm

import (
	"fmt"
	"sort"
)

// graph is the adjacency view of a loaded activity set. Edges whose endpoints
// are not both present have already been dropped.
type graph struct {
	activities map[uint]Activity
	preds      map[uint][]Edge // keyed by successor id
	succs      map[uint][]Edge // keyed by predecessor id
	dropped    int
}

// buildGraph indexes activities and edges into adjacency maps. Activities with
// negative duration are rejected; edges referencing unknown ids are counted
// and skipped rather than failing the run.
func buildGraph(activities []Activity, edges []Edge) (*graph, error) {
	g := &graph{
		activities: make(map[uint]Activity, len(activities)),
		preds:      make(map[uint][]Edge),
		succs:      make(map[uint][]Edge),
	}
	for _, a := range activities {
		if a.DurationHours < 0 {
			return nil, fmt.Errorf("cpm: activity %d: %w (%.2fh)", a.ID, ErrInvalidDuration, a.DurationHours)
		}
		if _, ok := g.activities[a.ID]; ok {
			return nil, fmt.Errorf("cpm: duplicate activity id %d", a.ID)
		}
		g.activities[a.ID] = a
	}
	for _, e := range edges {
		_, okPred := g.activities[e.PredecessorID]
		_, okSucc := g.activities[e.SuccessorID]
		if !okPred || !okSucc {
			g.dropped++
			continue
		}
		g.preds[e.SuccessorID] = append(g.preds[e.SuccessorID], e)
		g.succs[e.PredecessorID] = append(g.succs[e.PredecessorID], e)
	}
	return g, nil
}

// topoSort runs Kahn's algorithm over the graph. Ties are broken by ascending
// id so repeated runs visit activities in the same order.
func (g *graph) topoSort() ([]uint, error) {
	inDegree := make(map[uint]int, len(g.activities))
	for id := range g.activities {
		inDegree[id] = len(g.preds[id])
	}

	var queue []uint
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}
	sortIDs(queue)

	order := make([]uint, 0, len(g.activities))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		var ready []uint
		for _, e := range g.succs[id] {
			inDegree[e.SuccessorID]--
			if inDegree[e.SuccessorID] == 0 {
				ready = append(ready, e.SuccessorID)
			}
		}
		sortIDs(ready)
		queue = append(queue, ready...)
	}

	if len(order) != len(g.activities) {
		var stuck []uint
		ordered := make(map[uint]bool, len(order))
		for _, id := range order {
			ordered[id] = true
		}
		for id := range g.activities {
			if !ordered[id] {
				stuck = append(stuck, id)
			}
		}
		sortIDs(stuck)
		return nil, fmt.Errorf("cpm: %w among activities %v", ErrCycleDetected, stuck)
	}
	return order, nil
}

func sortIDs(ids []uint) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
