package cpm

import "time"

// RelationType identifies the precedence semantics between two activities.
type RelationType string

const (
	FinishToStart  RelationType = "FS"
	StartToStart   RelationType = "SS"
	FinishToFinish RelationType = "FF"
	StartToFinish  RelationType = "SF"
)

// ConstraintType restricts when an activity may be scheduled.
type ConstraintType string

const (
	ConstraintNone     ConstraintType = ""
	StartNoEarlierThan ConstraintType = "start_no_earlier_than"
	FinishNoLaterThan  ConstraintType = "finish_no_later_than"
	MustFinishBy       ConstraintType = "must_finish_by"
	AsSoonAsPossible   ConstraintType = "as_soon_as_possible"
)

// Activity is one schedulable unit of work. DurationHours is working hours;
// zero marks a milestone.
type Activity struct {
	ID             uint
	DurationHours  float64
	Constraint     ConstraintType
	ConstraintDate *time.Time
}

// Edge is a precedence relationship between two activities. LagHours is
// signed: negative values are a lead (acceleration).
type Edge struct {
	PredecessorID uint
	SuccessorID   uint
	Type          RelationType
	LagHours      float64
}

// Dates holds the computed CPM fields for one activity. All five values are
// written together; a Dates value never represents a half-finished pass.
type Dates struct {
	EarlyStart  time.Time
	EarlyFinish time.Time
	LateStart   time.Time
	LateFinish  time.Time
	TotalFloat  float64 // working hours; negative when a constraint is missed
	Critical    bool
}

// Result is the outcome of a full scheduling run.
type Result struct {
	Dates         map[uint]Dates
	Order         []uint // topological order used for the passes
	ProjectFinish time.Time
	CriticalPath  []uint // critical activity ids in topological order
	DroppedEdges  int    // edges skipped for referencing unknown activities
}

// Calendar is the working-time arithmetic the engine schedules against.
// *calendar.Calendar satisfies it; substitute implementations may carry
// different weekly patterns.
type Calendar interface {
	NextWorkingTime(t time.Time) time.Time
	AddHours(start time.Time, hours float64) time.Time
	SubHours(end time.Time, hours float64) time.Time
	HoursBetween(start, end time.Time) float64
}

// CriticalEpsilon is the float magnitude below which an activity counts as
// critical, absorbing minute-rounding at the API boundary.
const CriticalEpsilon = 0.001
