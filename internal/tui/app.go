package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/omini25/fitsched/internal/catalog"
	"github.com/omini25/fitsched/internal/export"
	"github.com/omini25/fitsched/internal/store"
)

// App is the root Bubble Tea model. It owns the completion/streak lifecycle:
// child views run sessions and report outcomes, the app records them.
type App struct {
	store   *store.Store
	catalog *catalog.Catalog
	width   int
	height  int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	calendar calendarModel
	plans    plansModel
	workout  workoutModel
	stats    statsModel
	settings settingsModel

	streak int

	help      help.Model
	status    string
	statusErr bool
}

func NewApp(s *store.Store, c *catalog.Catalog, streak int) App {
	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		catalog:    c,
		activeView: viewCalendar,
		calendar:   newCalendarModel(s, c),
		plans:      newPlansModel(s, c),
		workout:    newWorkoutModel(s, c),
		stats:      newStatsModel(s, c, streak),
		settings:   newSettingsModel(s),
		streak:     streak,
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.calendar.Init(),
		a.stats.refresh(),
		a.settings.refresh(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.calendar.setSize(a.width, contentHeight)
		a.plans.setSize(a.width, contentHeight)
		a.workout.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (form or overlay), delegate first.
		if a.isCapturing() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewCalendar
			return a, a.calendar.refresh()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewPlans
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewWorkout
			return a, nil
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewStats
			return a, a.stats.refresh()
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 5
			return a, a.refreshCurrentView()
		}

	case tickMsg:
		cmds = append(cmds, tickCmd())
		// The workout countdown keeps running regardless of the active view.
		var cmd tea.Cmd
		a.workout, cmd = a.workout.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case dateChangedMsg:
		var cmd tea.Cmd
		a.plans, cmd = a.plans.update(msg)
		return a, cmd

	case startWorkoutMsg:
		return a.beginWorkout(msg)

	case sessionFinishedMsg:
		return a.finishSession(msg)

	case scheduleChangedMsg:
		var cmd1, cmd2 tea.Cmd
		a.calendar, cmd1 = a.calendar.update(msg)
		a.stats, cmd2 = a.stats.update(msg)
		return a, tea.Batch(cmd1, cmd2)

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusErr = false
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewCalendar:
		a.calendar, cmd = a.calendar.update(msg)
	case viewPlans:
		a.plans, cmd = a.plans.update(msg)
	case viewWorkout:
		a.workout, cmd = a.workout.update(msg)
	case viewStats:
		a.stats, cmd = a.stats.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isCapturing() bool {
	switch a.activeView {
	case viewCalendar:
		return a.calendar.picking
	case viewWorkout:
		return a.workout.formActive() || a.workout.active()
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewCalendar:
		return a.calendar.refresh()
	case viewStats:
		return a.stats.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) beginWorkout(msg startWorkoutMsg) (tea.Model, tea.Cmd) {
	plan, ok := a.catalog.PlanByID(msg.planID)
	if !ok {
		a.status = "Unknown workout plan: " + msg.planID
		a.statusErr = true
		return a, nil
	}

	bell := true
	if v, err := a.store.GetSetting("sound"); err == nil && v == "off" {
		bell = false
	}

	var cmd tea.Cmd
	a.workout, cmd = a.workout.beginPlanning(plan, msg.day, msg.slot, bell)
	a.activeView = viewWorkout
	return a, cmd
}

// finishSession records a session outcome: completions and streak for a
// finished workout, the session log either way.
func (a App) finishSession(msg sessionFinishedMsg) (tea.Model, tea.Cmd) {
	outcome := store.OutcomeCancelled
	if msg.completed {
		outcome = store.OutcomeCompleted
	}
	if msg.logID != "" {
		if err := a.store.FinishSessionLog(msg.logID, outcome); err != nil {
			a.status = fmt.Sprintf("Error: %v", err)
			a.statusErr = true
		}
	}

	if msg.completed {
		now := time.Now()
		if err := a.store.MarkCompleted(msg.day, msg.slot, now); err != nil {
			a.status = fmt.Sprintf("Error: %v", err)
			a.statusErr = true
			return a, nil
		}
		count, err := a.store.RecordCompletion(now)
		if err == nil {
			a.streak = count
			a.stats.setStreak(count)
		}
	}

	return a, tea.Batch(a.calendar.refresh(), a.stats.refresh())
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewCalendar:
		content = a.calendar.view()
	case viewPlans:
		content = a.plans.view()
	case viewWorkout:
		content = a.workout.view()
	case viewStats:
		content = a.stats.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("fitsched")
	streak := ""
	if a.streak > 0 {
		streak = accentStyle.Render(fmt.Sprintf(" 🔥%d", a.streak))
	}

	gap := a.width - lipgloss.Width(title) - lipgloss.Width(streak) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, streak, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.statusErr {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	// Countdown indicator regardless of the active view.
	sessionInfo := ""
	if a.workout.active() {
		s := a.workout.session
		sessionInfo = successStyle.Render(" ● " + formatCountdown(s.Remaining()))
		if s.Paused() {
			sessionInfo = warningStyle.Render(" ⏸ " + formatCountdown(s.Remaining()))
		}
	}

	left := footerStyle.Render(helpView)
	right := sessionInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Month")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		month := store.MonthKey(time.Now())

		schedule, err := a.store.ListSchedule(month)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		completions, err := a.store.CompletedDays(month)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		names := make(map[string]string)
		for _, p := range a.catalog.Plans() {
			names[p.ID] = p.Name
		}

		data := export.MonthData{
			Month:       month,
			Schedule:    schedule,
			Completions: completions,
			PlanNames:   names,
		}

		home, _ := os.UserHomeDir()

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("fitsched-%s.csv", month))
			if err := export.ToCSV(data, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("fitsched-%s.json", month))
			if err := export.ToJSON(data, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
