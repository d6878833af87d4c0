package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/omini25/fitsched/internal/store"
)

func sampleData() MonthData {
	return MonthData{
		Month: "2026-08",
		Schedule: []store.ScheduleEntry{
			{Month: "2026-08", Day: "2026-08-14", Slot: store.SlotMorning, PlanID: "morning-cardio"},
			{Month: "2026-08", Day: "2026-08-14", Slot: store.SlotEvening, PlanID: "evening-strength"},
			{Month: "2026-08", Day: "2026-08-20", Slot: store.SlotMorning, PlanID: "mystery-plan"},
		},
		Completions: map[string]store.DayCompletion{
			"2026-08-14": {Morning: true},
		},
		PlanNames: map[string]string{
			"morning-cardio":   "Morning Energy Boost",
			"evening-strength": "Evening Strength",
		},
	}
}

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := ToCSV(sampleData(), path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(records))
	}
	if records[0][0] != "Date" {
		t.Errorf("unexpected header %v", records[0])
	}

	// First data row: completed morning session with a resolved plan name.
	row := records[1]
	if row[0] != "2026-08-14" || row[1] != "morning" || row[2] != "Morning Energy Boost" || row[3] != "yes" {
		t.Errorf("unexpected row %v", row)
	}

	// Evening slot on the same day is scheduled but not completed.
	if records[2][3] != "no" {
		t.Errorf("expected evening incomplete, got %v", records[2])
	}

	// Unknown plan IDs fall back to the raw ID.
	if records[3][2] != "mystery-plan" {
		t.Errorf("expected raw plan id fallback, got %v", records[3])
	}
}

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := ToJSON(sampleData(), path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var out jsonExport
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Month != "2026-08" || out.Count != 3 {
		t.Errorf("unexpected envelope %+v", out)
	}
	if len(out.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(out.Entries))
	}
	first := out.Entries[0]
	if first.Plan != "Morning Energy Boost" || !first.Completed {
		t.Errorf("unexpected first entry %+v", first)
	}
	if out.Entries[1].Completed {
		t.Errorf("evening entry should be incomplete: %+v", out.Entries[1])
	}
}

func TestToCSVEmptyMonth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := ToCSV(MonthData{Month: "2026-08"}, path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected header only, got %d rows", len(records))
	}
}
