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

// plansModel browses the workout catalog, split into morning and
// evening groups, and assigns a plan to the calendar's selected day.
type plansModel struct {
	store   *store.Store
	catalog *catalog.Catalog
	width   int
	height  int

	group  store.Slot // which plan group is shown
	cursor int

	selectedDay time.Time
}

func newPlansModel(s *store.Store, c *catalog.Catalog) plansModel {
	now := time.Now()
	return plansModel{
		store:       s,
		catalog:     c,
		group:       store.SlotMorning,
		selectedDay: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local),
	}
}

func (p *plansModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p plansModel) plans() []catalog.Plan {
	if p.group == store.SlotMorning {
		return p.catalog.MorningPlans()
	}
	return p.catalog.EveningPlans()
}

func (p plansModel) update(msg tea.Msg) (plansModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dateChangedMsg:
		p.selectedDay = msg.day
		return p, nil

	case tea.KeyMsg:
		plans := p.plans()
		switch {
		case key.Matches(msg, keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(msg, keys.Down):
			if p.cursor < len(plans)-1 {
				p.cursor++
			}
		case key.Matches(msg, keys.Left), key.Matches(msg, keys.Right), key.Matches(msg, keys.Slot):
			if p.group == store.SlotMorning {
				p.group = store.SlotEvening
			} else {
				p.group = store.SlotMorning
			}
			p.cursor = 0
		case key.Matches(msg, keys.Assign), key.Matches(msg, keys.Enter):
			return p.assignSelected()
		case key.Matches(msg, keys.Start):
			return p.startSelected()
		}
	}
	return p, nil
}

func (p plansModel) assignSelected() (plansModel, tea.Cmd) {
	plans := p.plans()
	if len(plans) == 0 {
		return p, nil
	}
	plan := plans[p.cursor]
	day := store.DayKey(p.selectedDay)

	if err := p.store.AssignWorkout(day, p.group, plan.ID); err != nil {
		return p, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
	}
	text := fmt.Sprintf("Scheduled %s for %s (%s)", plan.Name, formatDay(day), strings.ToLower(slotLabel(p.group)))
	return p, tea.Batch(
		func() tea.Msg { return scheduleChangedMsg{} },
		func() tea.Msg { return statusMsg{text: text} },
	)
}

func (p plansModel) startSelected() (plansModel, tea.Cmd) {
	plans := p.plans()
	if len(plans) == 0 {
		return p, nil
	}
	plan := plans[p.cursor]
	day := store.DayKey(p.selectedDay)
	slot := p.group
	return p, func() tea.Msg {
		return startWorkoutMsg{planID: plan.ID, day: day, slot: slot}
	}
}

func (p plansModel) view() string {
	plans := p.plans()

	listWidth := 34
	detailWidth := p.width - listWidth - 8
	if detailWidth < 30 {
		detailWidth = 30
	}

	var rows []string
	morning, evening := "Morning", "Evening"
	if p.group == store.SlotMorning {
		morning = accentStyle.Render("[" + morning + "]")
		evening = mutedStyle.Render(" " + evening + " ")
	} else {
		morning = mutedStyle.Render(" " + morning + " ")
		evening = accentStyle.Render("[" + evening + "]")
	}
	rows = append(rows, morning+" "+evening)
	rows = append(rows, "")

	for i, plan := range plans {
		cursor := "  "
		style := normalItemStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+plan.Name))
	}
	list := panelStyle.Width(listWidth).Render(strings.Join(rows, "\n"))

	var detail string
	if len(plans) > 0 {
		detail = p.renderDetail(plans[p.cursor], detailWidth)
	} else {
		detail = panelStyle.Width(detailWidth).Render(mutedStyle.Render("No plans in this group"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
}

func (p plansModel) renderDetail(plan catalog.Plan, w int) string {
	var rows []string
	rows = append(rows, titleStyle.Render(plan.Name))
	rows = append(rows, fmt.Sprintf("%s  %s%s  %s",
		mutedStyle.Render(fmt.Sprintf("%d min", plan.Duration)),
		intensityIcon(plan.Intensity), string(plan.Intensity),
		typeBadgeStyle(string(plan.Type)).Render(string(plan.Type)),
	))
	rows = append(rows, "")
	rows = append(rows, accentStyle.Render(fmt.Sprintf("Exercises (%d)", len(plan.Exercises))))
	for _, name := range plan.Exercises {
		ex := p.catalog.Describe(name)
		rows = append(rows, "  • "+name)
		rows = append(rows, mutedStyle.Render("    "+ex.Description))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("a: schedule for %s  s: start now  ←/→: group", formatDay(store.DayKey(p.selectedDay)))))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
