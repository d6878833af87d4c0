package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Month      string      `json:"month"`
	Count      int         `json:"count"`
	Entries    []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	Date      string `json:"date"`
	Slot      string `json:"slot"`
	PlanID    string `json:"plan_id"`
	Plan      string `json:"plan"`
	Completed bool   `json:"completed"`
}

func ToJSON(data MonthData, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Month:      data.Month,
		Count:      len(data.Schedule),
	}

	for _, e := range data.Schedule {
		export.Entries = append(export.Entries, jsonEntry{
			Date:      e.Day,
			Slot:      string(e.Slot),
			PlanID:    e.PlanID,
			Plan:      data.planName(e.PlanID),
			Completed: data.completed(e.Day, e.Slot),
		})
	}

	payload, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
