package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/omini25/fitsched/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	form       *huh.Form
	formActive bool

	formSound     *string
	formWeekStart *string

	settings map[string]string
}

func newSettingsModel(s *store.Store) settingsModel {
	return settingsModel{store: s}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsLoadedMsg struct {
	settings map[string]string
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		list, err := s.store.GetAllSettings()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		settings := make(map[string]string, len(list))
		for _, kv := range list {
			settings[kv.Key] = kv.Value
		}
		return settingsLoadedMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsLoadedMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		if s.formActive {
			return s.updateForm(msg)
		}
		if key.Matches(msg, keys.Enter) {
			return s.openForm()
		}
	}
	return s, nil
}

func (s settingsModel) openForm() (settingsModel, tea.Cmd) {
	sound := s.settings["sound"]
	if sound == "" {
		sound = "on"
	}
	weekStart := s.settings["week_start"]
	if weekStart == "" {
		weekStart = "monday"
	}
	s.formSound = &sound
	s.formWeekStart = &weekStart

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Sound cues").
				Options(
					huh.NewOption("On (terminal bell)", "on"),
					huh.NewOption("Off", "off"),
				).
				Value(s.formSound),
			huh.NewSelect[string]().
				Title("Week starts on").
				Options(
					huh.NewOption("Monday", "monday"),
					huh.NewOption("Sunday", "sunday"),
				).
				Value(s.formWeekStart),
		),
	).WithShowHelp(false)
	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, keys.Back) {
		s.formActive = false
		s.form = nil
		return s, nil
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.form = nil

		if err := s.store.SetSetting("sound", *s.formSound); err != nil {
			return s, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
		}
		if err := s.store.SetSetting("week_start", *s.formWeekStart); err != nil {
			return s, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
		}
		return s, tea.Batch(s.refresh(), func() tea.Msg {
			return statusMsg{text: "Settings saved"}
		})
	}
	if s.form.State == huh.StateAborted {
		s.formActive = false
		s.form = nil
	}
	return s, cmd
}

func (s settingsModel) view() string {
	if s.formActive {
		return s.form.View()
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Settings"))
	rows = append(rows, "")

	sound := s.settings["sound"]
	if sound == "" {
		sound = "on"
	}
	weekStart := s.settings["week_start"]
	if weekStart == "" {
		weekStart = "monday"
	}
	weekStartLabel := "Monday"
	if weekStart == "sunday" {
		weekStartLabel = "Sunday"
	}
	rows = append(rows, fmt.Sprintf("%s %s", mutedStyle.Render("Sound cues:"), sound))
	rows = append(rows, fmt.Sprintf("%s %s", mutedStyle.Render("Week starts on:"), weekStartLabel))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("enter: edit"))

	return panelStyle.Width(s.width - 4).Render(strings.Join(rows, "\n"))
}
