package store

import "time"

// Slot is one of the two daily scheduling positions.
type Slot string

const (
	SlotMorning Slot = "morning"
	SlotEvening Slot = "evening"
)

func (s Slot) Valid() bool {
	return s == SlotMorning || s == SlotEvening
}

// Date layouts used throughout the store. Days key schedule and completion
// rows, months scope them for eviction.
const (
	DayLayout   = "2006-01-02"
	MonthLayout = "2006-01"
)

// DayKey formats t as a schedule/completion day key.
func DayKey(t time.Time) string { return t.Format(DayLayout) }

// MonthKey formats t as the month scope key.
func MonthKey(t time.Time) string { return t.Format(MonthLayout) }

// DaySchedule is the (possibly partial) assignment for one date. Values are
// catalog plan IDs.
type DaySchedule struct {
	Morning *string
	Evening *string
}

// Empty reports whether neither slot has an assignment.
func (d DaySchedule) Empty() bool { return d.Morning == nil && d.Evening == nil }

// ScheduleEntry is one persisted slot assignment.
type ScheduleEntry struct {
	Month  string
	Day    string
	Slot   Slot
	PlanID string
}

// DayCompletion holds the completion flags for one date.
type DayCompletion struct {
	Morning bool
	Evening bool
}

// Streak is the persisted consecutive-day completion counter.
type Streak struct {
	Count    int
	LastDate string // DayLayout, empty when no completion was ever recorded
}

// Session outcomes as stored in session_logs.
const (
	OutcomeRunning   = "running"
	OutcomeCompleted = "completed"
	OutcomeCancelled = "cancelled"
)

// SessionLog is one recorded workout run.
type SessionLog struct {
	ID              string
	PlanID          string
	Day             string
	Slot            Slot
	ExerciseSeconds int
	RestSeconds     int
	StartedAt       time.Time
	EndedAt         *time.Time
	Outcome         string
}

type Setting struct {
	Key   string
	Value string
}
