package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/omini25/fitsched/internal/catalog"
	"github.com/omini25/fitsched/internal/config"
	"github.com/omini25/fitsched/internal/store"
	"github.com/omini25/fitsched/internal/tui"
)

func main() {
	cfgPath, _ := config.DefaultPath()
	cfg := config.Load(cfgPath)

	dbPath := cfg.Database.Path
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	now := time.Now()

	// Schedule and completion data only matter for the current month.
	if err := s.EvictStaleMonths(store.MonthKey(now)); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	streak, err := s.LoadStreak(now)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	cat, err := catalog.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading workout catalog: %v\n", err)
		os.Exit(1)
	}

	app := tui.NewApp(s, cat, streak.Count)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
