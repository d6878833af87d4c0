package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/omini25/fitsched/internal/catalog"
	"github.com/omini25/fitsched/internal/store"
)

type calendarModel struct {
	store   *store.Store
	catalog *catalog.Catalog
	width   int
	height  int

	cursor time.Time  // selected date
	focus  store.Slot // which slot card actions apply to

	schedule    map[string]store.DaySchedule
	completions map[string]store.DayCompletion
	weekStart   time.Weekday

	// Plan picker overlay state
	picking      bool
	pickerCursor int
}

func newCalendarModel(s *store.Store, c *catalog.Catalog) calendarModel {
	now := time.Now()
	return calendarModel{
		store:     s,
		catalog:   c,
		cursor:    time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local),
		focus:     store.SlotMorning,
		weekStart: time.Monday,
	}
}

func (c calendarModel) Init() tea.Cmd {
	return c.refresh()
}

func (c *calendarModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

type calendarDataMsg struct {
	schedule    map[string]store.DaySchedule
	completions map[string]store.DayCompletion
	weekStart   time.Weekday
}

func (c calendarModel) refresh() tea.Cmd {
	month := store.MonthKey(c.cursor)
	return func() tea.Msg {
		schedule, _ := c.store.MonthSchedule(month)
		completions, _ := c.store.CompletedDays(month)

		weekStart := time.Monday
		if v, err := c.store.GetSetting("week_start"); err == nil && v == "sunday" {
			weekStart = time.Sunday
		}

		return calendarDataMsg{schedule: schedule, completions: completions, weekStart: weekStart}
	}
}

func (c calendarModel) update(msg tea.Msg) (calendarModel, tea.Cmd) {
	switch msg := msg.(type) {
	case calendarDataMsg:
		c.schedule = msg.schedule
		c.completions = msg.completions
		c.weekStart = msg.weekStart
		return c, nil

	case scheduleChangedMsg:
		return c, c.refresh()

	case tea.KeyMsg:
		if c.picking {
			return c.updatePicker(msg)
		}

		switch {
		case key.Matches(msg, keys.Left):
			return c.moveCursor(-1)
		case key.Matches(msg, keys.Right):
			return c.moveCursor(1)
		case key.Matches(msg, keys.Up):
			return c.moveCursor(-7)
		case key.Matches(msg, keys.Down):
			return c.moveCursor(7)

		case key.Matches(msg, keys.Slot):
			if c.focus == store.SlotMorning {
				c.focus = store.SlotEvening
			} else {
				c.focus = store.SlotMorning
			}
			return c, nil

		case key.Matches(msg, keys.Assign), key.Matches(msg, keys.Enter):
			c.picking = true
			c.pickerCursor = 0
			return c, nil

		case key.Matches(msg, keys.Remove):
			return c.removeFocused()

		case key.Matches(msg, keys.Start):
			return c.startFocused()
		}
	}
	return c, nil
}

func (c calendarModel) moveCursor(days int) (calendarModel, tea.Cmd) {
	prevMonth := store.MonthKey(c.cursor)
	c.cursor = c.cursor.AddDate(0, 0, days)

	cmds := []tea.Cmd{c.announceDate()}
	if store.MonthKey(c.cursor) != prevMonth {
		cmds = append(cmds, c.refresh())
	}
	return c, tea.Batch(cmds...)
}

func (c calendarModel) announceDate() tea.Cmd {
	day := c.cursor
	return func() tea.Msg { return dateChangedMsg{day: day} }
}

func (c calendarModel) removeFocused() (calendarModel, tea.Cmd) {
	day := store.DayKey(c.cursor)
	if c.assignedPlan(day, c.focus) == nil {
		return c, func() tea.Msg {
			return statusMsg{text: "Nothing scheduled in that slot", isError: true}
		}
	}
	if err := c.store.RemoveWorkout(day, c.focus); err != nil {
		return c, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
	}
	label := slotLabel(c.focus)
	return c, tea.Batch(c.refresh(), func() tea.Msg {
		return statusMsg{text: label + " workout removed"}
	})
}

func (c calendarModel) startFocused() (calendarModel, tea.Cmd) {
	day := store.DayKey(c.cursor)
	plan := c.assignedPlan(day, c.focus)
	if plan == nil {
		return c, func() tea.Msg {
			return statusMsg{text: "No workout scheduled in that slot. Press a to assign one.", isError: true}
		}
	}
	planID, slot := *plan, c.focus
	return c, func() tea.Msg {
		return startWorkoutMsg{planID: planID, day: day, slot: slot}
	}
}

// assignedPlan returns the plan ID assigned to day+slot, or nil.
func (c calendarModel) assignedPlan(day string, slot store.Slot) *string {
	ds, ok := c.schedule[day]
	if !ok {
		return nil
	}
	if slot == store.SlotMorning {
		return ds.Morning
	}
	return ds.Evening
}

// --- Plan picker overlay ---

func (c calendarModel) pickerPlans() []catalog.Plan {
	if c.focus == store.SlotMorning {
		return c.catalog.MorningPlans()
	}
	return c.catalog.EveningPlans()
}

func (c calendarModel) updatePicker(msg tea.KeyMsg) (calendarModel, tea.Cmd) {
	plans := c.pickerPlans()
	switch {
	case key.Matches(msg, keys.Up):
		if c.pickerCursor > 0 {
			c.pickerCursor--
		}
	case key.Matches(msg, keys.Down):
		if c.pickerCursor < len(plans)-1 {
			c.pickerCursor++
		}
	case key.Matches(msg, keys.Enter):
		c.picking = false
		if len(plans) == 0 {
			return c, nil
		}
		plan := plans[c.pickerCursor]
		day := store.DayKey(c.cursor)
		if err := c.store.AssignWorkout(day, c.focus, plan.ID); err != nil {
			return c, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
		}
		label := slotLabel(c.focus)
		return c, tea.Batch(c.refresh(), func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Scheduled %s for the %s", plan.Name, strings.ToLower(label))}
		})
	case key.Matches(msg, keys.Back):
		c.picking = false
	}
	return c, nil
}

// --- Rendering ---

func (c calendarModel) view() string {
	if c.width < 40 {
		return "Terminal too small"
	}

	gridWidth := 30
	panelWidth := c.width - gridWidth - 8
	if panelWidth < 30 {
		panelWidth = 30
	}

	grid := panelStyle.Width(gridWidth).Render(c.renderGrid())

	var right string
	if c.picking {
		right = c.renderPicker(panelWidth)
	} else {
		right = c.renderDayPanel(panelWidth)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, grid, right)
}

func (c calendarModel) renderGrid() string {
	var rows []string
	rows = append(rows, titleStyle.Render(c.cursor.Format("January 2006")))
	rows = append(rows, "")

	// Weekday header row honoring the week start setting.
	var names []string
	for i := 0; i < 7; i++ {
		wd := time.Weekday((int(c.weekStart) + i) % 7)
		names = append(names, wd.String()[:2])
	}
	rows = append(rows, mutedStyle.Render(strings.Join(names, "  ")))

	first := time.Date(c.cursor.Year(), c.cursor.Month(), 1, 0, 0, 0, 0, time.Local)
	offset := (int(first.Weekday()) - int(c.weekStart) + 7) % 7
	daysInMonth := first.AddDate(0, 1, -1).Day()

	var cells []string
	for i := 0; i < offset; i++ {
		cells = append(cells, "  ")
	}
	for d := 1; d <= daysInMonth; d++ {
		date := time.Date(c.cursor.Year(), c.cursor.Month(), d, 0, 0, 0, 0, time.Local)
		cells = append(cells, c.renderDayCell(date))
		if len(cells) == 7 {
			rows = append(rows, strings.Join(cells, "  "))
			cells = nil
		}
	}
	if len(cells) > 0 {
		rows = append(rows, strings.Join(cells, "  "))
	}

	rows = append(rows, "")
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Bottom,
		dayMorningStyle.Render("●"), mutedStyle.Render(" am  "),
		dayEveningStyle.Render("●"), mutedStyle.Render(" pm  "),
		dayBothStyle.Render("●"), mutedStyle.Render(" both"),
	))

	return strings.Join(rows, "\n")
}

func (c calendarModel) renderDayCell(date time.Time) string {
	label := fmt.Sprintf("%2d", date.Day())

	style := dayStyle
	if dc, ok := c.completions[store.DayKey(date)]; ok {
		switch {
		case dc.Morning && dc.Evening:
			style = dayBothStyle
		case dc.Morning:
			style = dayMorningStyle
		case dc.Evening:
			style = dayEveningStyle
		}
	} else if _, scheduled := c.schedule[store.DayKey(date)]; scheduled {
		style = highlightStyle
	}

	if date.Equal(c.cursor) {
		style = dayCursorStyle
	}
	return style.Render(label)
}

func (c calendarModel) renderDayPanel(w int) string {
	title := titleStyle.Render(c.cursor.Format("Monday, January 2, 2006"))

	morning := c.renderSlotCard(store.SlotMorning, w-6)
	evening := c.renderSlotCard(store.SlotEvening, w-6)

	hint := mutedStyle.Render("m: slot  a: assign  d: remove  s: start")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", morning, "", evening, "", hint),
	)
}

func (c calendarModel) renderSlotCard(slot store.Slot, w int) string {
	day := store.DayKey(c.cursor)

	icon := "🌅"
	if slot == store.SlotEvening {
		icon = "🌙"
	}
	header := titleStyle.Render(fmt.Sprintf("%s %s Session", icon, slotLabel(slot)))
	if dc, ok := c.completions[day]; ok {
		if (slot == store.SlotMorning && dc.Morning) || (slot == store.SlotEvening && dc.Evening) {
			header += successStyle.Render("  ✓ done")
		}
	}

	var rows []string
	rows = append(rows, header)

	if planID := c.assignedPlan(day, slot); planID != nil {
		if plan, ok := c.catalog.PlanByID(*planID); ok {
			rows = append(rows, highlightStyle.Render(plan.Name))
			rows = append(rows, fmt.Sprintf("%s  %s  %s",
				mutedStyle.Render(fmt.Sprintf("%d min", plan.Duration)),
				intensityIcon(plan.Intensity)+string(plan.Intensity),
				typeBadgeStyle(string(plan.Type)).Render(string(plan.Type)),
			))
			rows = append(rows, mutedStyle.Render(exercisePreview(plan.Exercises)))
		} else {
			rows = append(rows, mutedStyle.Render(*planID))
		}
	} else {
		rows = append(rows, mutedStyle.Render("No workout scheduled"))
	}

	style := panelStyle
	if slot == c.focus {
		style = activePanelStyle
	}
	return style.Width(w).Render(strings.Join(rows, "\n"))
}

func (c calendarModel) renderPicker(w int) string {
	plans := c.pickerPlans()

	var rows []string
	rows = append(rows, titleStyle.Render(fmt.Sprintf("Assign %s Workout", slotLabel(c.focus))))
	rows = append(rows, "")
	for i, p := range plans {
		cursor := "  "
		style := normalItemStyle
		if i == c.pickerCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		line := fmt.Sprintf("%s%s (%d min, %s)", cursor, p.Name, p.Duration, p.Intensity)
		rows = append(rows, style.Render(line))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: assign  esc: cancel"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func intensityIcon(i catalog.Intensity) string {
	switch i {
	case catalog.IntensityLow:
		return "○ "
	case catalog.IntensityMedium:
		return "◐ "
	case catalog.IntensityHigh:
		return "● "
	}
	return ""
}

func exercisePreview(exercises []string) string {
	if len(exercises) <= 3 {
		return strings.Join(exercises, ", ")
	}
	return fmt.Sprintf("%s +%d more", strings.Join(exercises[:3], ", "), len(exercises)-3)
}
