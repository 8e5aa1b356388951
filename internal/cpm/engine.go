// Package cpm implements the Critical Path Method scheduling engine: given
// activities, precedence edges and a data date it computes early/late
// start/finish and total float for every activity against a working calendar.
package cpm

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrCycleDetected means the precedence graph is not a DAG. No dates are
	// computed; any partial CPM result would be meaningless.
	ErrCycleDetected = errors.New("schedule contains a circular dependency")
	// ErrInvalidDuration means an activity carries a negative duration.
	ErrInvalidDuration = errors.New("negative duration")
	// ErrNotLoaded means Run was called before Load.
	ErrNotLoaded = errors.New("cpm: no activity set loaded")
)

// Engine schedules one activity set. An Engine holds no shared state beyond
// what Load gave it, so independent instances may run concurrently; a single
// instance must not be re-Loaded while a Run is in flight.
type Engine struct {
	cal Calendar
	g   *graph
}

// NewEngine returns an engine that schedules against cal.
func NewEngine(cal Calendar) *Engine {
	return &Engine{cal: cal}
}

// Load ingests the working set and builds the adjacency maps. Activities with
// negative durations fail fast with ErrInvalidDuration; edges referencing ids
// outside the set are dropped silently (their count is reported on the Result).
func (e *Engine) Load(activities []Activity, edges []Edge) error {
	g, err := buildGraph(activities, edges)
	if err != nil {
		return err
	}
	e.g = g
	return nil
}

// DroppedEdges returns how many edges Load skipped for dangling references.
func (e *Engine) DroppedEdges() int {
	if e.g == nil {
		return 0
	}
	return e.g.dropped
}

// Run executes the full pass sequence: topological sort, forward pass,
// backward pass, float. It returns a fresh Result and never mutates the
// loaded set, so a failed run observably computes nothing and a second Run
// with the same data date reproduces the first exactly.
func (e *Engine) Run(dataDate time.Time) (*Result, error) {
	if e.g == nil {
		return nil, ErrNotLoaded
	}
	order, err := e.g.topoSort()
	if err != nil {
		return nil, err
	}

	res := &Result{
		Dates:        make(map[uint]Dates, len(order)),
		Order:        order,
		DroppedEdges: e.g.dropped,
	}

	e.forwardPass(res, dataDate)
	e.backwardPass(res)

	for _, id := range order {
		if res.Dates[id].Critical {
			res.CriticalPath = append(res.CriticalPath, id)
		}
	}
	return res, nil
}

// forwardPass computes early start/finish in topological order. FS and SS
// edges bound the successor's start; FF and SF bound its finish, which both
// converts to a start bound (minus the activity's own duration) and can hold
// the finish open past the duration-derived finish when the lag demands it.
func (e *Engine) forwardPass(res *Result, dataDate time.Time) {
	projectStart := e.cal.NextWorkingTime(dataDate)

	for _, id := range res.Order {
		a := e.g.activities[id]
		es := projectStart
		var finishBounds []time.Time

		for _, edge := range e.g.preds[id] {
			p := res.Dates[edge.PredecessorID]
			switch edge.Type {
			case StartToStart:
				es = laterOf(es, e.cal.AddHours(p.EarlyStart, edge.LagHours))
			case FinishToFinish:
				fb := e.cal.AddHours(p.EarlyFinish, edge.LagHours)
				finishBounds = append(finishBounds, fb)
				es = laterOf(es, e.cal.SubHours(fb, a.DurationHours))
			case StartToFinish:
				fb := e.cal.AddHours(p.EarlyStart, edge.LagHours)
				finishBounds = append(finishBounds, fb)
				es = laterOf(es, e.cal.SubHours(fb, a.DurationHours))
			default: // FS
				es = laterOf(es, e.cal.AddHours(p.EarlyFinish, edge.LagHours))
			}
		}

		if a.Constraint == StartNoEarlierThan && a.ConstraintDate != nil {
			es = laterOf(es, e.cal.NextWorkingTime(*a.ConstraintDate))
		}

		es = e.cal.NextWorkingTime(es)
		ef := e.cal.AddHours(es, a.DurationHours)
		for _, fb := range finishBounds {
			ef = laterOf(ef, fb)
		}

		res.Dates[id] = Dates{EarlyStart: es, EarlyFinish: ef}
		if ef.After(res.ProjectFinish) {
			res.ProjectFinish = ef
		}
	}
}

// backwardPass computes late finish/start in reverse topological order,
// mirroring the forward formulas: FS and FF edges bound the predecessor's
// finish, SS and SF bound its start. The SF mirror reads the successor's late
// finish, keeping all four types symmetric with the forward pass.
func (e *Engine) backwardPass(res *Result) {
	for i := len(res.Order) - 1; i >= 0; i-- {
		id := res.Order[i]
		a := e.g.activities[id]
		d := res.Dates[id]

		lf := res.ProjectFinish
		var startBounds []time.Time

		for _, edge := range e.g.succs[id] {
			s := res.Dates[edge.SuccessorID]
			switch edge.Type {
			case StartToStart:
				sb := e.cal.SubHours(s.LateStart, edge.LagHours)
				startBounds = append(startBounds, sb)
				lf = earlierOf(lf, e.cal.AddHours(sb, a.DurationHours))
			case FinishToFinish:
				lf = earlierOf(lf, e.cal.SubHours(s.LateFinish, edge.LagHours))
			case StartToFinish:
				sb := e.cal.SubHours(s.LateFinish, edge.LagHours)
				startBounds = append(startBounds, sb)
				lf = earlierOf(lf, e.cal.AddHours(sb, a.DurationHours))
			default: // FS
				lf = earlierOf(lf, e.cal.SubHours(s.LateStart, edge.LagHours))
			}
		}

		if (a.Constraint == FinishNoLaterThan || a.Constraint == MustFinishBy) && a.ConstraintDate != nil {
			lf = earlierOf(lf, *a.ConstraintDate)
		}

		ls := e.cal.NextWorkingTime(e.cal.SubHours(lf, a.DurationHours))
		for _, sb := range startBounds {
			ls = earlierOf(ls, e.cal.NextWorkingTime(sb))
		}

		d.LateFinish = lf
		d.LateStart = ls
		d.TotalFloat = e.signedHoursBetween(d.EarlyStart, ls)
		d.Critical = math.Abs(d.TotalFloat) < CriticalEpsilon
		res.Dates[id] = d
	}
}

// signedHoursBetween measures working hours from a to b, negative when b
// precedes a. Negative float is surfaced as-is, never clamped.
func (e *Engine) signedHoursBetween(a, b time.Time) float64 {
	if b.Before(a) {
		return -e.cal.HoursBetween(b, a)
	}
	return e.cal.HoursBetween(a, b)
}

// Schedule is the one-shot convenience wrapper: load, run, return.
func Schedule(cal Calendar, activities []Activity, edges []Edge, dataDate time.Time) (*Result, error) {
	eng := NewEngine(cal)
	if err := eng.Load(activities, edges); err != nil {
		return nil, fmt.Errorf("cpm: load: %w", err)
	}
	return eng.Run(dataDate)
}

func laterOf(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

func earlierOf(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}
