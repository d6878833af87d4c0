package store

import (
	"fmt"
	"time"
)

// MarkCompleted records that the workout for day+slot was finished. The flag
// is only ever set by a natural (or skip-to-end) session completion and never
// cleared except by month eviction.
func (s *Store) MarkCompleted(day string, slot Slot, at time.Time) error {
	if !slot.Valid() {
		return fmt.Errorf("mark completed: invalid slot %q", slot)
	}
	_, err := s.db.Exec(
		`INSERT INTO completions (month, day, slot, completed_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(day, slot) DO UPDATE SET completed_at = excluded.completed_at`,
		monthOfDay(day), day, slot, at.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}
	return nil
}

// IsCompleted reports the completion flag for one day and slot.
func (s *Store) IsCompleted(day string, slot Slot) (bool, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM completions WHERE day = ? AND slot = ?`, day, slot,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("is completed: %w", err)
	}
	return n > 0, nil
}

// CompletedDays returns the per-day completion flags for a month, keyed by
// day. The calendar uses them to color days morning-only, evening-only or
// both.
func (s *Store) CompletedDays(month string) (map[string]DayCompletion, error) {
	rows, err := s.db.Query(
		`SELECT day, slot FROM completions WHERE month = ?`, month,
	)
	if err != nil {
		return nil, fmt.Errorf("completed days: %w", err)
	}
	defer rows.Close()

	out := make(map[string]DayCompletion)
	for rows.Next() {
		var day string
		var slot Slot
		if err := rows.Scan(&day, &slot); err != nil {
			return nil, err
		}
		dc := out[day]
		switch slot {
		case SlotMorning:
			dc.Morning = true
		case SlotEvening:
			dc.Evening = true
		}
		out[day] = dc
	}
	return out, rows.Err()
}
