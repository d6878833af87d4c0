package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/omini25/fitsched/internal/store"
)

// MonthData is everything the exporters write for one calendar month.
type MonthData struct {
	Month       string
	Schedule    []store.ScheduleEntry
	Completions map[string]store.DayCompletion
	PlanNames   map[string]string // plan ID -> display name
}

func (d MonthData) planName(id string) string {
	if name, ok := d.PlanNames[id]; ok {
		return name
	}
	return id
}

func (d MonthData) completed(day string, slot store.Slot) bool {
	dc, ok := d.Completions[day]
	if !ok {
		return false
	}
	if slot == store.SlotMorning {
		return dc.Morning
	}
	return dc.Evening
}

func ToCSV(data MonthData, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Date", "Slot", "Plan", "Completed"}); err != nil {
		return err
	}

	for _, e := range data.Schedule {
		completed := "no"
		if data.completed(e.Day, e.Slot) {
			completed = "yes"
		}
		row := []string{
			e.Day,
			string(e.Slot),
			data.planName(e.PlanID),
			completed,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
