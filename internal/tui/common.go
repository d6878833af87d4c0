package tui

import (
	"fmt"
	"time"

	"github.com/omini25/fitsched/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewCalendar viewState = iota
	viewPlans
	viewWorkout
	viewStats
	viewSettings
)

var viewNames = []string{"Calendar", "Plans", "Workout", "Stats", "Settings"}

// --- Messages ---

type tickMsg time.Time

type statusMsg struct {
	text    string
	isError bool
}

// dateChangedMsg is emitted by the calendar when the selected date moves, so
// the rest of the app schedules against the same day.
type dateChangedMsg struct {
	day time.Time
}

// startWorkoutMsg asks the app root to open the time planner for a scheduled
// workout.
type startWorkoutMsg struct {
	planID string
	day    string
	slot   store.Slot
}

// sessionFinishedMsg reports a session's terminal outcome to the app root,
// which owns completion marking and the streak.
type sessionFinishedMsg struct {
	day       string
	slot      store.Slot
	logID     string
	completed bool
}

type scheduleChangedMsg struct{}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatCountdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func formatDay(day string) string {
	t, err := time.Parse(store.DayLayout, day)
	if err != nil {
		return day
	}
	return t.Format("Monday, January 2, 2006")
}

func slotLabel(slot store.Slot) string {
	if slot == store.SlotMorning {
		return "Morning"
	}
	return "Evening"
}
