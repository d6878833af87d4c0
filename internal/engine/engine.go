// Package engine implements the workout execution state machine: a
// tick-driven countdown that sequences preparation, exercise and rest phases
// for a plan and reports the session outcome exactly once.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/omini25/fitsched/internal/catalog"
)

// PrepSeconds is the countdown shown before every sequence element.
const PrepSeconds = 10

// RestBudgetSeconds is subtracted from the plan duration before spreading it
// across exercises when the sequence contains rest periods. It is also the
// rest length used when the caller does not choose one.
const RestBudgetSeconds = 30

type State int

const (
	StateIdle State = iota
	StatePreparing
	StateActive
	StateCompleted
	StateCancelled
)

var stateNames = map[State]string{
	StateIdle:      "idle",
	StatePreparing: "preparing",
	StateActive:    "active",
	StateCompleted: "completed",
	StateCancelled: "cancelled",
}

func (s State) String() string { return stateNames[s] }

// Notification identifies the cue sound requested on a transition.
type Notification string

const (
	NotifyStart    Notification = "start"
	NotifyRest     Notification = "rest"
	NotifyNext     Notification = "next"
	NotifyComplete Notification = "complete"
)

// Sink plays a notification cue. Playback is best effort: the engine logs and
// discards any error, so implementations may fail freely.
type Sink interface {
	Play(n Notification) error
}

// ErrEmptySequence is returned when a plan has no exercises to run.
var ErrEmptySequence = errors.New("engine: plan has no exercises")

// Session is a single run-through of a plan. It is driven externally: the
// owner calls Tick once per elapsed second and the user-action methods on
// input. Sessions are not safe for concurrent use; the TUI event loop is the
// only caller.
type Session struct {
	Plan catalog.Plan

	// Sink receives transition cues; nil disables them. Log receives sink
	// failures; nil falls back to slog.Default. OnDone is invoked exactly
	// once when the session reaches a terminal state, with true for natural
	// (or skip-to-end) completion and false for cancellation.
	Sink   Sink
	Log    *slog.Logger
	OnDone func(completed bool)

	sequence        []string
	exerciseSeconds int
	restSeconds     int

	state     State
	index     int
	remaining int
	paused    bool
	reported  bool
}

// BuildSequence returns the session's element sequence. With restSeconds > 0
// and no pre-existing rest marker, a rest is inserted between every pair of
// consecutive exercises; otherwise the list is used unchanged.
func BuildSequence(exercises []string, restSeconds int) []string {
	if restSeconds <= 0 || slices.Contains(exercises, catalog.RestMarker) {
		return slices.Clone(exercises)
	}
	seq := make([]string, 0, 2*len(exercises)-1)
	for i, e := range exercises {
		if i > 0 {
			seq = append(seq, catalog.RestMarker)
		}
		seq = append(seq, e)
	}
	return seq
}

// DefaultExerciseSeconds spreads the plan's total duration evenly across the
// non-rest elements of sequence, minus the rest budget when rests are present.
func DefaultExerciseSeconds(durationMinutes int, sequence []string) int {
	hasRest := slices.Contains(sequence, catalog.RestMarker)
	count := 0
	for _, e := range sequence {
		if !catalog.IsRest(e) {
			count++
		}
	}
	if count == 0 {
		return 0
	}
	total := durationMinutes * 60
	if hasRest {
		total -= RestBudgetSeconds
	}
	return total / count
}

// SuggestDurations computes the planner's suggested (exercise, rest) seconds
// for a plan before any user override, from the plan's own exercise list.
func SuggestDurations(plan catalog.Plan) (exerciseSeconds, restSeconds int) {
	exerciseSeconds = DefaultExerciseSeconds(plan.Duration, plan.Exercises)
	if slices.Contains(plan.Exercises, catalog.RestMarker) {
		restSeconds = RestBudgetSeconds
	}
	return exerciseSeconds, restSeconds
}

// NewSession builds a session from a plan and the chosen per-phase durations.
// Zero acts as the "unset" sentinel for both: exercise time falls back to the
// computed default, rest time falls back to 30s when the sequence contains a
// rest marker and stays 0 otherwise.
func NewSession(plan catalog.Plan, exerciseSeconds, restSeconds int) (*Session, error) {
	if len(plan.Exercises) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySequence, plan.ID)
	}

	seq := BuildSequence(plan.Exercises, restSeconds)
	if restSeconds == 0 && slices.Contains(seq, catalog.RestMarker) {
		restSeconds = RestBudgetSeconds
	}
	if exerciseSeconds == 0 {
		exerciseSeconds = DefaultExerciseSeconds(plan.Duration, seq)
	}

	return &Session{
		Plan:            plan,
		sequence:        seq,
		exerciseSeconds: exerciseSeconds,
		restSeconds:     restSeconds,
		state:           StateIdle,
	}, nil
}

// Start begins the preparation countdown for the first element and emits the
// start cue. No-op unless the session is idle.
func (s *Session) Start() {
	if s.state != StateIdle {
		return
	}
	s.notify(NotifyStart)
	s.state = StatePreparing
	s.index = 0
	s.remaining = PrepSeconds
	s.paused = false
}

// Tick advances logical time by one second. A tick either decrements the
// current countdown or performs exactly one transition, never both. Ticks are
// ignored while paused or outside a running state, so the caller's timer
// source can keep firing without drift.
func (s *Session) Tick() {
	if !s.Running() || s.paused {
		return
	}
	if s.remaining > 0 {
		s.remaining--
		return
	}

	switch s.state {
	case StatePreparing:
		if catalog.IsRest(s.sequence[s.index]) {
			s.notify(NotifyRest)
			s.remaining = s.restSeconds
		} else {
			s.notify(NotifyNext)
			s.remaining = s.exerciseSeconds
		}
		s.state = StateActive
	case StateActive:
		s.advance()
	}
}

// Skip moves to the next element's preparation window. Skipping the final
// element counts as finishing it.
func (s *Session) Skip() {
	if !s.Running() {
		return
	}
	s.advance()
}

func (s *Session) advance() {
	if s.index < len(s.sequence)-1 {
		s.index++
		s.state = StatePreparing
		s.remaining = PrepSeconds
		return
	}
	s.notify(NotifyComplete)
	s.finish(StateCompleted, true)
}

// Pause freezes the countdown. The tick source keeps running; paused ticks
// are simply ignored.
func (s *Session) Pause() {
	if s.Running() {
		s.paused = true
	}
}

// Resume lifts a pause, continuing from the exact remaining countdown.
func (s *Session) Resume() {
	if s.Running() {
		s.paused = false
	}
}

func (s *Session) TogglePause() {
	if s.paused {
		s.Resume()
	} else {
		s.Pause()
	}
}

// Cancel ends the session before completion. No cue is played.
func (s *Session) Cancel() {
	if s.Terminal() {
		return
	}
	s.finish(StateCancelled, false)
}

func (s *Session) finish(st State, completed bool) {
	s.state = st
	if s.reported {
		return
	}
	s.reported = true
	if s.OnDone != nil {
		s.OnDone(completed)
	}
}

func (s *Session) notify(n Notification) {
	if s.Sink == nil {
		return
	}
	if err := s.Sink.Play(n); err != nil {
		log := s.Log
		if log == nil {
			log = slog.Default()
		}
		log.Warn("notification playback failed", "cue", string(n), "error", err)
	}
}

// --- Read accessors for the presentation layer ---

func (s *Session) State() State { return s.state }

// Running reports whether the session is ticking (preparing or active),
// paused or not.
func (s *Session) Running() bool {
	return s.state == StatePreparing || s.state == StateActive
}

func (s *Session) Terminal() bool {
	return s.state == StateCompleted || s.state == StateCancelled
}

func (s *Session) Paused() bool { return s.paused }

// Current returns the sequence element the session is on.
func (s *Session) Current() string {
	if len(s.sequence) == 0 {
		return ""
	}
	return s.sequence[min(s.index, len(s.sequence)-1)]
}

func (s *Session) IsRestNow() bool { return catalog.IsRest(s.Current()) }

func (s *Session) Index() int     { return s.index }
func (s *Session) Len() int       { return len(s.sequence) }
func (s *Session) Remaining() int { return s.remaining }

func (s *Session) ExerciseSeconds() int { return s.exerciseSeconds }
func (s *Session) RestSeconds() int     { return s.restSeconds }

// Sequence returns a copy of the fixed element sequence.
func (s *Session) Sequence() []string { return slices.Clone(s.sequence) }

// Progress is the fraction of the sequence finished, counting the current
// element once its preparation window has elapsed.
func (s *Session) Progress() float64 {
	done := s.index
	if s.state != StatePreparing && s.state != StateIdle {
		done++
	}
	return float64(done) / float64(len(s.sequence))
}
