package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/omini25/fitsched/internal/catalog"
	"github.com/omini25/fitsched/internal/engine"
	"github.com/omini25/fitsched/internal/store"
)

type workoutPhase int

const (
	phaseIdle workoutPhase = iota
	phasePlanning
	phaseRunning
	phaseDone
)

// sessionResult is shared between the engine's completion callback and the
// model copies the event loop produces, so the outcome survives value-receiver
// updates.
type sessionResult struct {
	fired     bool
	completed bool
}

type workoutModel struct {
	store   *store.Store
	catalog *catalog.Catalog
	width   int
	height  int

	phase workoutPhase
	plan  catalog.Plan
	day   string
	slot  store.Slot

	form *huh.Form
	// Pointer-backed so value copies of the model share the form inputs.
	formExercise *string
	formRest     *string

	session *engine.Session
	sink    *cueSink
	bar     progress.Model
	logID   string
	result  *sessionResult
	emitted bool

	doneCompleted bool
}

func newWorkoutModel(s *store.Store, c *catalog.Catalog) workoutModel {
	return workoutModel{
		store:   s,
		catalog: c,
		bar:     progress.New(progress.WithDefaultGradient()),
	}
}

func (m *workoutModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.bar.Width = w - 16
	if m.bar.Width > 60 {
		m.bar.Width = 60
	}
}

func (m workoutModel) active() bool {
	return m.phase == phaseRunning
}

func (m workoutModel) formActive() bool {
	return m.phase == phasePlanning
}

// beginPlanning opens the time planner form for a scheduled workout with the
// plan's suggested durations pre-filled.
func (m workoutModel) beginPlanning(plan catalog.Plan, day string, slot store.Slot, bell bool) (workoutModel, tea.Cmd) {
	m.phase = phasePlanning
	m.plan = plan
	m.day = day
	m.slot = slot
	m.sink = &cueSink{bell: bell}
	m.session = nil
	m.result = nil
	m.emitted = false
	m.logID = ""

	exSec, restSec := engine.SuggestDurations(plan)
	exStr, restStr := strconv.Itoa(exSec), strconv.Itoa(restSec)
	m.formExercise = &exStr
	m.formRest = &restStr

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Seconds per exercise").
				Description("How long to hold each exercise").
				Value(m.formExercise).
				Validate(validatePositiveSeconds),
			huh.NewInput().
				Title("Rest seconds").
				Description("Rest between exercises, 0 for none").
				Value(m.formRest).
				Validate(validateSeconds),
		),
	).WithShowHelp(false)

	return m, m.form.Init()
}

func validatePositiveSeconds(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a positive number of seconds")
	}
	return nil
}

func validateSeconds(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return fmt.Errorf("enter a number of seconds")
	}
	return nil
}

func (m workoutModel) update(msg tea.Msg) (workoutModel, tea.Cmd) {
	switch m.phase {
	case phasePlanning:
		return m.updatePlanning(msg)
	case phaseRunning:
		return m.updateRunning(msg)
	case phaseDone:
		if msg, ok := msg.(tea.KeyMsg); ok {
			if key.Matches(msg, keys.Enter) || key.Matches(msg, keys.Back) {
				m.phase = phaseIdle
			}
		}
	}
	return m, nil
}

func (m workoutModel) updatePlanning(msg tea.Msg) (workoutModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, keys.Back) {
		m.phase = phaseIdle
		m.form = nil
		return m, func() tea.Msg { return statusMsg{text: "Workout not started"} }
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m.startSession()
	}
	if m.form.State == huh.StateAborted {
		m.phase = phaseIdle
		m.form = nil
		return m, func() tea.Msg { return statusMsg{text: "Workout not started"} }
	}
	return m, cmd
}

func (m workoutModel) startSession() (workoutModel, tea.Cmd) {
	exSec, _ := strconv.Atoi(strings.TrimSpace(*m.formExercise))
	restSec, _ := strconv.Atoi(strings.TrimSpace(*m.formRest))
	m.form = nil

	session, err := engine.NewSession(m.plan, exSec, restSec)
	if err != nil {
		m.phase = phaseIdle
		return m, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
	}

	result := &sessionResult{}
	session.Sink = m.sink
	session.OnDone = func(completed bool) {
		result.fired = true
		result.completed = completed
	}

	m.session = session
	m.result = result
	m.phase = phaseRunning

	logID, err := m.store.StartSessionLog(m.plan.ID, m.day, m.slot, session.ExerciseSeconds(), session.RestSeconds())
	if err == nil {
		m.logID = logID
	}

	m.session.Start()
	return m, m.cueCmd()
}

func (m workoutModel) updateRunning(msg tea.Msg) (workoutModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.session.Tick()
		return m.afterEngine()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Pause):
			m.session.TogglePause()
			return m, nil
		case key.Matches(msg, keys.Skip):
			m.session.Skip()
			return m.afterEngine()
		case key.Matches(msg, keys.Cancel), key.Matches(msg, keys.Back):
			m.session.Cancel()
			return m.afterEngine()
		}
	}
	return m, nil
}

// afterEngine runs after any call into the session: it surfaces pending cues
// and, once the session reaches a terminal state, reports the outcome upward
// exactly once.
func (m workoutModel) afterEngine() (workoutModel, tea.Cmd) {
	cmds := []tea.Cmd{m.cueCmd()}

	if m.result != nil && m.result.fired && !m.emitted {
		m.emitted = true
		m.phase = phaseDone
		m.doneCompleted = m.result.completed

		day, slot, logID, completed := m.day, m.slot, m.logID, m.result.completed
		cmds = append(cmds, func() tea.Msg {
			return sessionFinishedMsg{day: day, slot: slot, logID: logID, completed: completed}
		})
	}
	return m, tea.Batch(cmds...)
}

func (m workoutModel) cueCmd() tea.Cmd {
	if m.sink == nil {
		return nil
	}
	text, ok := m.sink.drain()
	if !ok {
		return nil
	}
	return func() tea.Msg { return statusMsg{text: text} }
}

// --- Rendering ---

func (m workoutModel) view() string {
	switch m.phase {
	case phaseIdle:
		return panelStyle.Width(m.width - 4).Render(
			titleStyle.Render("No workout in progress") + "\n\n" +
				mutedStyle.Render("Start one from the Calendar (s on a scheduled slot)\nor from the Plans tab."),
		)
	case phasePlanning:
		header := titleStyle.Render(fmt.Sprintf("Plan your session: %s", m.plan.Name))
		return lipgloss.JoinVertical(lipgloss.Left, header, "", m.form.View())
	case phaseRunning:
		return m.viewRunning()
	case phaseDone:
		return m.viewDone()
	}
	return ""
}

func (m workoutModel) viewRunning() string {
	s := m.session
	current := s.Current()

	var rows []string
	rows = append(rows, titleStyle.Render(m.plan.Name)+mutedStyle.Render(fmt.Sprintf("  %s · %s", formatDay(m.day), slotLabel(m.slot))))
	rows = append(rows, "")

	countStyle := countdownStyle
	label := current
	switch {
	case s.State() == engine.StatePreparing:
		label = "Get ready: " + current
	case s.IsRestNow():
		countStyle = countdownRestStyle
	}
	if s.Paused() {
		countStyle = countdownPausedStyle
	}

	rows = append(rows, accentStyle.Render(label))
	if desc := m.catalog.Describe(current); s.State() == engine.StateActive && !s.IsRestNow() {
		rows = append(rows, mutedStyle.Render(desc.Description))
	}
	rows = append(rows, "")
	rows = append(rows, countStyle.Render(formatCountdown(s.Remaining())))
	if s.Paused() {
		rows = append(rows, warningStyle.Render("PAUSED"))
	}
	rows = append(rows, "")
	rows = append(rows, m.bar.ViewAs(s.Progress()))
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("Step %d of %d", s.Index()+1, s.Len())))
	rows = append(rows, "")
	rows = append(rows, m.renderSequence())
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("space: pause  n: skip  x: cancel"))

	return panelStyle.Width(m.width - 4).Render(strings.Join(rows, "\n"))
}

func (m workoutModel) renderSequence() string {
	s := m.session
	var parts []string
	for i, name := range s.Sequence() {
		switch {
		case i < s.Index():
			parts = append(parts, successStyle.Render("✓ "+name))
		case i == s.Index():
			parts = append(parts, highlightStyle.Render("▶ "+name))
		default:
			parts = append(parts, mutedStyle.Render(name))
		}
	}
	return strings.Join(parts, mutedStyle.Render("  ·  "))
}

func (m workoutModel) viewDone() string {
	var rows []string
	if m.doneCompleted {
		rows = append(rows, successStyle.Render("🎉 Workout complete!"))
		rows = append(rows, "")
		rows = append(rows, fmt.Sprintf("%s · %s, %s", m.plan.Name, formatDay(m.day), slotLabel(m.slot)))
		rows = append(rows, mutedStyle.Render("Marked as done on your calendar."))
	} else {
		rows = append(rows, warningStyle.Render("Workout cancelled"))
		rows = append(rows, "")
		rows = append(rows, mutedStyle.Render("No completion recorded. Try again anytime."))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("enter: back"))
	return panelStyle.Width(m.width - 4).Render(strings.Join(rows, "\n"))
}
