package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/omini25/fitsched/internal/catalog"
	"github.com/omini25/fitsched/internal/store"
)

// statsModel shows the completion streak, a bar chart of the current week's
// completed sessions, and the recent session history.
type statsModel struct {
	store   *store.Store
	catalog *catalog.Catalog
	width   int
	height  int

	streak      int
	completions map[string]store.DayCompletion
	sessions    []store.SessionLog
	weekStart   time.Weekday

	chart barchart.Model
}

func newStatsModel(s *store.Store, c *catalog.Catalog, streak int) statsModel {
	return statsModel{
		store:     s,
		catalog:   c,
		streak:    streak,
		weekStart: time.Monday,
		chart:     barchart.New(40, 8),
	}
}

func (s *statsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type statsDataMsg struct {
	completions map[string]store.DayCompletion
	sessions    []store.SessionLog
	weekStart   time.Weekday
}

func (s statsModel) refresh() tea.Cmd {
	month := store.MonthKey(time.Now())
	return func() tea.Msg {
		completions, _ := s.store.CompletedDays(month)
		sessions, _ := s.store.RecentSessions(8)

		weekStart := time.Monday
		if v, err := s.store.GetSetting("week_start"); err == nil && v == "sunday" {
			weekStart = time.Sunday
		}
		return statsDataMsg{completions: completions, sessions: sessions, weekStart: weekStart}
	}
}

func (s statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		s.completions = msg.completions
		s.sessions = msg.sessions
		s.weekStart = msg.weekStart
		s.buildChart()
		return s, nil
	case scheduleChangedMsg:
		return s, s.refresh()
	}
	return s, nil
}

func (s *statsModel) setStreak(n int) { s.streak = n }

func (s *statsModel) buildChart() {
	chartWidth := s.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	s.chart = barchart.New(chartWidth, 8)

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	offset := (int(today.Weekday()) - int(s.weekStart) + 7) % 7
	weekStart := today.AddDate(0, 0, -offset)

	var bars []barchart.BarData
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		label := day.Format("Mon")

		var values []barchart.BarValue
		if dc, ok := s.completions[store.DayKey(day)]; ok {
			if dc.Morning {
				values = append(values, barchart.BarValue{
					Name:  "Morning",
					Value: 1,
					Style: lipgloss.NewStyle().Foreground(colorMorning),
				})
			}
			if dc.Evening {
				values = append(values, barchart.BarValue{
					Name:  "Evening",
					Value: 1,
					Style: lipgloss.NewStyle().Foreground(colorEvening),
				})
			}
		}
		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}

		bars = append(bars, barchart.BarData{Label: label, Values: values})
	}

	s.chart.PushAll(bars)
	s.chart.Draw()
}

func (s statsModel) view() string {
	w := s.width - 4

	streakLine := titleStyle.Render("🔥 Current streak: ") + accentStyle.Render(fmt.Sprintf("%d", s.streak))
	switch s.streak {
	case 0:
		streakLine += mutedStyle.Render("  Complete a workout to start one!")
	case 1:
		streakLine += mutedStyle.Render("  day")
	default:
		streakLine += mutedStyle.Render("  days")
	}
	banner := panelStyle.Width(w).Render(streakLine)

	chartPanel := panelStyle.Width(w).Render(
		titleStyle.Render("This week") + "\n" + s.chart.View(),
	)

	var rows []string
	rows = append(rows, titleStyle.Render("Recent sessions"))
	if len(s.sessions) == 0 {
		rows = append(rows, mutedStyle.Render("No sessions yet"))
	}
	for _, sl := range s.sessions {
		name := sl.PlanID
		if plan, ok := s.catalog.PlanByID(sl.PlanID); ok {
			name = plan.Name
		}
		outcome := mutedStyle.Render(sl.Outcome)
		switch sl.Outcome {
		case store.OutcomeCompleted:
			outcome = successStyle.Render("completed")
		case store.OutcomeCancelled:
			outcome = warningStyle.Render("cancelled")
		}
		rows = append(rows, fmt.Sprintf("%s  %s %s  %s",
			mutedStyle.Render(sl.Day),
			name,
			mutedStyle.Render("("+strings.ToLower(slotLabel(sl.Slot))+")"),
			outcome,
		))
	}
	history := panelStyle.Width(w).Render(strings.Join(rows, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left, banner, chartPanel, history)
}
