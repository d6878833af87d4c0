package engine

import (
	"errors"
	"testing"

	"github.com/omini25/fitsched/internal/catalog"
)

func testPlan(duration int, exercises ...string) catalog.Plan {
	return catalog.Plan{
		ID:        "test-plan",
		Name:      "Test Plan",
		Duration:  duration,
		Intensity: catalog.IntensityMedium,
		Type:      catalog.TypeCardio,
		Exercises: exercises,
	}
}

// recorder captures cues in order.
type recorder struct {
	cues []Notification
}

func (r *recorder) Play(n Notification) error {
	r.cues = append(r.cues, n)
	return nil
}

func (r *recorder) last() Notification {
	if len(r.cues) == 0 {
		return ""
	}
	return r.cues[len(r.cues)-1]
}

func newTestSession(t *testing.T, plan catalog.Plan, exSec, restSec int) (*Session, *recorder) {
	t.Helper()
	s, err := NewSession(plan, exSec, restSec)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	rec := &recorder{}
	s.Sink = rec
	return s, rec
}

func tick(s *Session, n int) {
	for i := 0; i < n; i++ {
		s.Tick()
	}
}

// ============================================================
// Sequence construction
// ============================================================

func TestBuildSequenceInterleavesRest(t *testing.T) {
	seq := BuildSequence([]string{"A", "B", "C", "D", "E"}, 30)
	if len(seq) != 9 {
		t.Fatalf("expected 9 elements, got %d: %v", len(seq), seq)
	}
	for i, e := range seq {
		wantRest := i%2 == 1
		if catalog.IsRest(e) != wantRest {
			t.Errorf("element %d = %q, rest placement wrong", i, e)
		}
	}
}

func TestBuildSequenceNoRestTime(t *testing.T) {
	in := []string{"A", "B", "C"}
	seq := BuildSequence(in, 0)
	if len(seq) != 3 {
		t.Fatalf("expected unchanged sequence, got %v", seq)
	}
}

func TestBuildSequenceKeepsExistingRests(t *testing.T) {
	in := []string{"A", "Rest", "B"}
	seq := BuildSequence(in, 30)
	if len(seq) != 3 {
		t.Fatalf("expected sequence kept as-is, got %v", seq)
	}
}

func TestBuildSequenceSingleExercise(t *testing.T) {
	seq := BuildSequence([]string{"A"}, 30)
	if len(seq) != 1 || seq[0] != "A" {
		t.Fatalf("expected [A], got %v", seq)
	}
}

// ============================================================
// Default durations
// ============================================================

func TestDefaultExerciseSecondsNoRest(t *testing.T) {
	// 20 minutes over 5 exercises
	got := DefaultExerciseSeconds(20, []string{"A", "B", "C", "D", "E"})
	if got != 240 {
		t.Fatalf("expected 240, got %d", got)
	}
}

func TestDefaultExerciseSecondsWithRest(t *testing.T) {
	// 20 minutes, minus the 30s rest budget, over 5 exercises
	seq := BuildSequence([]string{"A", "B", "C", "D", "E"}, 30)
	got := DefaultExerciseSeconds(20, seq)
	if got != 234 {
		t.Fatalf("expected 234, got %d", got)
	}
}

func TestDefaultExerciseSecondsEmpty(t *testing.T) {
	if got := DefaultExerciseSeconds(20, []string{"Rest"}); got != 0 {
		t.Fatalf("expected 0 for rest-only sequence, got %d", got)
	}
}

func TestSuggestDurations(t *testing.T) {
	ex, rest := SuggestDurations(testPlan(20, "A", "B", "C", "D", "E"))
	if ex != 240 || rest != 0 {
		t.Fatalf("expected (240, 0), got (%d, %d)", ex, rest)
	}

	ex, rest = SuggestDurations(testPlan(20, "A", "Rest", "B"))
	if rest != 30 {
		t.Fatalf("expected rest suggestion 30, got %d", rest)
	}
	if ex != (20*60-30)/2 {
		t.Fatalf("unexpected exercise suggestion %d", ex)
	}
}

// ============================================================
// Session construction
// ============================================================

func TestNewSessionEmptyPlan(t *testing.T) {
	_, err := NewSession(testPlan(20), 0, 0)
	if !errors.Is(err, ErrEmptySequence) {
		t.Fatalf("expected ErrEmptySequence, got %v", err)
	}
}

func TestNewSessionResolvesDefaults(t *testing.T) {
	s, _ := newTestSession(t, testPlan(20, "A", "Rest", "B"), 0, 0)
	if s.RestSeconds() != RestBudgetSeconds {
		t.Errorf("expected rest default %d, got %d", RestBudgetSeconds, s.RestSeconds())
	}
	if s.ExerciseSeconds() != (20*60-30)/2 {
		t.Errorf("unexpected exercise default %d", s.ExerciseSeconds())
	}
}

func TestNewSessionKeepsOverrides(t *testing.T) {
	s, _ := newTestSession(t, testPlan(20, "A", "B"), 45, 15)
	if s.ExerciseSeconds() != 45 || s.RestSeconds() != 15 {
		t.Fatalf("expected overrides kept, got (%d, %d)", s.ExerciseSeconds(), s.RestSeconds())
	}
	if s.Len() != 3 {
		t.Fatalf("expected rest inserted, len 3, got %d", s.Len())
	}
}

// ============================================================
// State machine
// ============================================================

func TestStartEntersPreparation(t *testing.T) {
	s, rec := newTestSession(t, testPlan(20, "A", "B"), 5, 0)
	if s.State() != StateIdle {
		t.Fatalf("expected idle before start")
	}

	s.Start()
	if s.State() != StatePreparing {
		t.Errorf("expected preparing, got %v", s.State())
	}
	if s.Remaining() != PrepSeconds {
		t.Errorf("expected %ds preparation, got %d", PrepSeconds, s.Remaining())
	}
	if rec.last() != NotifyStart {
		t.Errorf("expected start cue, got %v", rec.cues)
	}

	// Start again is a no-op once running
	s.Start()
	if len(rec.cues) != 1 {
		t.Errorf("second Start should not re-cue: %v", rec.cues)
	}
}

func TestTickCountdownThenTransition(t *testing.T) {
	s, rec := newTestSession(t, testPlan(20, "A"), 2, 0)
	s.Start()

	// Preparation runs down to zero without leaving the phase.
	tick(s, PrepSeconds)
	if s.State() != StatePreparing || s.Remaining() != 0 {
		t.Fatalf("after %d ticks: state %v remaining %d", PrepSeconds, s.State(), s.Remaining())
	}

	// The next tick performs exactly one transition.
	s.Tick()
	if s.State() != StateActive {
		t.Fatalf("expected active, got %v", s.State())
	}
	if s.Remaining() != 2 {
		t.Fatalf("expected exercise countdown 2, got %d", s.Remaining())
	}
	if rec.last() != NotifyNext {
		t.Errorf("expected next cue, got %v", rec.cues)
	}

	tick(s, 2)
	if s.Remaining() != 0 || s.State() != StateActive {
		t.Fatalf("countdown should reach 0 while still active")
	}

	s.Tick()
	if s.State() != StateCompleted {
		t.Fatalf("expected completed, got %v", s.State())
	}
	if rec.last() != NotifyComplete {
		t.Errorf("expected complete cue, got %v", rec.cues)
	}
}

func TestRestPhaseUsesRestDuration(t *testing.T) {
	s, rec := newTestSession(t, testPlan(20, "A", "B"), 1, 5)
	s.Start()

	// Through A's preparation and active phase into Rest's preparation.
	tick(s, PrepSeconds+1) // prep + transition
	tick(s, 1+1)           // exercise + transition to rest prep
	if !s.IsRestNow() || s.State() != StatePreparing {
		t.Fatalf("expected rest preparation, got %q %v", s.Current(), s.State())
	}

	tick(s, PrepSeconds+1)
	if s.State() != StateActive {
		t.Fatalf("expected rest active, got %v", s.State())
	}
	if s.Remaining() != 5 {
		t.Errorf("expected rest countdown 5, got %d", s.Remaining())
	}
	if rec.last() != NotifyRest {
		t.Errorf("expected rest cue, got %v", rec.cues)
	}
}

func TestSkipAdvancesToNextPreparation(t *testing.T) {
	s, _ := newTestSession(t, testPlan(20, "A", "B"), 100, 0)
	s.Start()
	tick(s, 3)

	s.Skip()
	if s.Index() != 1 || s.State() != StatePreparing || s.Remaining() != PrepSeconds {
		t.Fatalf("skip should enter next preparation: index %d state %v remaining %d",
			s.Index(), s.State(), s.Remaining())
	}
}

func TestSkipOnLastElementCompletes(t *testing.T) {
	s, rec := newTestSession(t, testPlan(20, "A"), 100, 0)
	var completed *bool
	s.OnDone = func(c bool) { completed = &c }
	s.Start()

	s.Skip()
	if s.State() != StateCompleted {
		t.Fatalf("expected completed, got %v", s.State())
	}
	if completed == nil || !*completed {
		t.Errorf("expected OnDone(true)")
	}
	if rec.last() != NotifyComplete {
		t.Errorf("expected complete cue, got %v", rec.cues)
	}
}

func TestCancelReportsNotCompleted(t *testing.T) {
	s, rec := newTestSession(t, testPlan(20, "A", "B"), 5, 0)
	calls := 0
	completed := true
	s.OnDone = func(c bool) { calls++; completed = c }
	s.Start()
	tick(s, 4)

	s.Cancel()
	if s.State() != StateCancelled {
		t.Fatalf("expected cancelled, got %v", s.State())
	}
	if calls != 1 || completed {
		t.Errorf("expected exactly one OnDone(false), got %d calls completed=%v", calls, completed)
	}
	if rec.last() == NotifyComplete {
		t.Errorf("cancel must not play the completion cue")
	}

	// Further interaction is inert.
	s.Cancel()
	s.Tick()
	s.Skip()
	if calls != 1 {
		t.Errorf("terminal session re-reported: %d calls", calls)
	}
}

func TestPauseFreezesCountdown(t *testing.T) {
	s, _ := newTestSession(t, testPlan(20, "A"), 30, 0)
	s.Start()
	tick(s, 3)
	before := s.Remaining()

	s.Pause()
	if !s.Paused() {
		t.Fatalf("expected paused")
	}
	tick(s, 10)
	if s.Remaining() != before {
		t.Errorf("paused ticks must not drain the countdown: %d -> %d", before, s.Remaining())
	}

	s.Resume()
	s.Tick()
	if s.Remaining() != before-1 {
		t.Errorf("expected resume to continue from %d, got %d", before, s.Remaining())
	}
}

func TestTogglePause(t *testing.T) {
	s, _ := newTestSession(t, testPlan(20, "A"), 30, 0)
	s.Start()
	s.TogglePause()
	if !s.Paused() {
		t.Fatal("expected paused after toggle")
	}
	s.TogglePause()
	if s.Paused() {
		t.Fatal("expected resumed after second toggle")
	}
}

func TestTickIgnoredOutsideRunning(t *testing.T) {
	s, _ := newTestSession(t, testPlan(20, "A"), 5, 0)
	s.Tick() // idle
	if s.State() != StateIdle {
		t.Fatalf("tick must not start an idle session")
	}

	s.Start()
	s.Cancel()
	before := s.Remaining()
	s.Tick()
	if s.Remaining() != before {
		t.Errorf("terminal session ticked")
	}
}

func TestOnDoneFiresOnceOnCompletion(t *testing.T) {
	s, _ := newTestSession(t, testPlan(20, "A"), 1, 0)
	calls := 0
	s.OnDone = func(bool) { calls++ }
	s.Start()
	tick(s, PrepSeconds+1+1+1)
	if s.State() != StateCompleted {
		t.Fatalf("expected completed, got %v", s.State())
	}

	s.Cancel()
	if calls != 1 {
		t.Errorf("expected one OnDone call, got %d", calls)
	}
	if s.State() != StateCompleted {
		t.Errorf("cancel after completion must not change the outcome")
	}
}

// ============================================================
// Progress
// ============================================================

func TestProgress(t *testing.T) {
	s, _ := newTestSession(t, testPlan(20, "A", "B"), 1, 0) // len 2
	if s.Progress() != 0 {
		t.Errorf("idle progress should be 0, got %f", s.Progress())
	}

	s.Start()
	if s.Progress() != 0 {
		t.Errorf("preparing progress should be 0, got %f", s.Progress())
	}

	tick(s, PrepSeconds+1) // into active
	if s.Progress() != 0.5 {
		t.Errorf("first active element of two should be 0.5, got %f", s.Progress())
	}

	tick(s, 1+1)           // advance to B's preparation
	tick(s, PrepSeconds+1) // B active
	if s.Progress() != 1 {
		t.Errorf("last active element should be 1, got %f", s.Progress())
	}
}

// ============================================================
// Cues through failing sinks
// ============================================================

type failingSink struct{}

func (failingSink) Play(Notification) error { return errors.New("device gone") }

func TestSinkFailureDoesNotStopSession(t *testing.T) {
	s, err := NewSession(testPlan(20, "A"), 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	s.Sink = failingSink{}

	s.Start()
	tick(s, PrepSeconds+1+1+1)
	if s.State() != StateCompleted {
		t.Fatalf("session must complete despite sink errors, got %v", s.State())
	}
}
