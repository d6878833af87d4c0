package store

import (
	"fmt"
	"strings"
)

// AssignWorkout sets (or overwrites) the plan for a day and slot.
func (s *Store) AssignWorkout(day string, slot Slot, planID string) error {
	if !slot.Valid() {
		return fmt.Errorf("assign workout: invalid slot %q", slot)
	}
	month := monthOfDay(day)
	_, err := s.db.Exec(
		`INSERT INTO schedule (month, day, slot, plan_id) VALUES (?, ?, ?, ?)
		 ON CONFLICT(day, slot) DO UPDATE SET plan_id = excluded.plan_id, month = excluded.month`,
		month, day, slot, planID,
	)
	if err != nil {
		return fmt.Errorf("assign workout: %w", err)
	}
	return nil
}

// RemoveWorkout clears the plan for a day and slot. Removing the last
// assigned slot leaves no trace of the day at all.
func (s *Store) RemoveWorkout(day string, slot Slot) error {
	_, err := s.db.Exec(`DELETE FROM schedule WHERE day = ? AND slot = ?`, day, slot)
	if err != nil {
		return fmt.Errorf("remove workout: %w", err)
	}
	return nil
}

// GetDaySchedule returns the assignment for one date. Both slots nil when the
// day has none.
func (s *Store) GetDaySchedule(day string) (DaySchedule, error) {
	rows, err := s.db.Query(`SELECT slot, plan_id FROM schedule WHERE day = ?`, day)
	if err != nil {
		return DaySchedule{}, fmt.Errorf("get day schedule: %w", err)
	}
	defer rows.Close()

	var ds DaySchedule
	for rows.Next() {
		var slot Slot
		var planID string
		if err := rows.Scan(&slot, &planID); err != nil {
			return DaySchedule{}, err
		}
		switch slot {
		case SlotMorning:
			ds.Morning = &planID
		case SlotEvening:
			ds.Evening = &planID
		}
	}
	return ds, rows.Err()
}

// MonthSchedule returns every assignment in a month, keyed by day.
func (s *Store) MonthSchedule(month string) (map[string]DaySchedule, error) {
	rows, err := s.db.Query(
		`SELECT day, slot, plan_id FROM schedule WHERE month = ? ORDER BY day, slot`, month,
	)
	if err != nil {
		return nil, fmt.Errorf("month schedule: %w", err)
	}
	defer rows.Close()

	out := make(map[string]DaySchedule)
	for rows.Next() {
		var day string
		var slot Slot
		var planID string
		if err := rows.Scan(&day, &slot, &planID); err != nil {
			return nil, err
		}
		ds := out[day]
		id := planID
		switch slot {
		case SlotMorning:
			ds.Morning = &id
		case SlotEvening:
			ds.Evening = &id
		}
		out[day] = ds
	}
	return out, rows.Err()
}

// ListSchedule returns a month's raw schedule rows, for export.
func (s *Store) ListSchedule(month string) ([]ScheduleEntry, error) {
	rows, err := s.db.Query(
		`SELECT month, day, slot, plan_id FROM schedule WHERE month = ? ORDER BY day, slot`, month,
	)
	if err != nil {
		return nil, fmt.Errorf("list schedule: %w", err)
	}
	defer rows.Close()

	var entries []ScheduleEntry
	for rows.Next() {
		var e ScheduleEntry
		if err := rows.Scan(&e.Month, &e.Day, &e.Slot, &e.PlanID); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// monthOfDay derives the month scope key from a day key ("2006-01-02").
func monthOfDay(day string) string {
	if i := strings.LastIndexByte(day, '-'); i > 0 {
		return day[:i]
	}
	return day
}
