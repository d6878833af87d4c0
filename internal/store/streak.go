package store

import (
	"fmt"
	"time"
)

// LoadStreak reads the streak and applies the gap correction: when the last
// completion date is neither today nor yesterday the counter resets to zero.
// The reset is persisted so later increments build on the corrected value.
//
// This is the only place the gap is ever checked. RecordCompletion adds one
// unconditionally, so a gap that opens while the app stays running is only
// corrected on the next load.
func (s *Store) LoadStreak(today time.Time) (Streak, error) {
	var st Streak
	err := s.db.QueryRow(`SELECT count, last_date FROM streak WHERE id = 1`).Scan(&st.Count, &st.LastDate)
	if err != nil {
		return Streak{}, fmt.Errorf("load streak: %w", err)
	}
	if st.LastDate == "" || st.Count == 0 {
		return st, nil
	}

	todayKey := DayKey(today)
	yesterdayKey := DayKey(today.AddDate(0, 0, -1))
	if st.LastDate != todayKey && st.LastDate != yesterdayKey {
		st.Count = 0
		if _, err := s.db.Exec(`UPDATE streak SET count = 0 WHERE id = 1`); err != nil {
			return Streak{}, fmt.Errorf("reset streak: %w", err)
		}
	}
	return st, nil
}

// RecordCompletion bumps the counter by one and stamps today as the last
// completion date, returning the new count. No gap or same-day check here;
// see LoadStreak.
func (s *Store) RecordCompletion(today time.Time) (int, error) {
	todayKey := DayKey(today)
	_, err := s.db.Exec(
		`UPDATE streak SET count = count + 1, last_date = ? WHERE id = 1`, todayKey,
	)
	if err != nil {
		return 0, fmt.Errorf("record completion: %w", err)
	}
	var count int
	if err := s.db.QueryRow(`SELECT count FROM streak WHERE id = 1`).Scan(&count); err != nil {
		return 0, fmt.Errorf("read streak count: %w", err)
	}
	return count, nil
}
