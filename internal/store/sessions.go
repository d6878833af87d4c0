package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StartSessionLog records the beginning of a workout run and returns its ID.
func (s *Store) StartSessionLog(planID, day string, slot Slot, exerciseSeconds, restSeconds int) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO session_logs (id, plan_id, day, slot, exercise_seconds, rest_seconds, started_at, outcome)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, planID, day, slot, exerciseSeconds, restSeconds, now, OutcomeRunning,
	)
	if err != nil {
		return "", fmt.Errorf("start session log: %w", err)
	}
	return id, nil
}

// FinishSessionLog stamps a run's end time and outcome.
func (s *Store) FinishSessionLog(id, outcome string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE session_logs SET ended_at = ?, outcome = ? WHERE id = ?`, now, outcome, id,
	)
	if err != nil {
		return fmt.Errorf("finish session log: %w", err)
	}
	return nil
}

// GetSessionLog fetches one run by ID.
func (s *Store) GetSessionLog(id string) (*SessionLog, error) {
	l := &SessionLog{}
	var startedAt string
	var endedAt sql.NullString
	err := s.db.QueryRow(
		`SELECT id, plan_id, day, slot, exercise_seconds, rest_seconds, started_at, ended_at, outcome
		 FROM session_logs WHERE id = ?`, id,
	).Scan(&l.ID, &l.PlanID, &l.Day, &l.Slot, &l.ExerciseSeconds, &l.RestSeconds, &startedAt, &endedAt, &l.Outcome)
	if err != nil {
		return nil, fmt.Errorf("get session log %s: %w", id, err)
	}
	l.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	if endedAt.Valid {
		t, _ := time.Parse(time.RFC3339, endedAt.String)
		l.EndedAt = &t
	}
	return l, nil
}

// RecentSessions lists the most recent runs, newest first.
func (s *Store) RecentSessions(limit int) ([]SessionLog, error) {
	query := `SELECT id, plan_id, day, slot, exercise_seconds, rest_seconds, started_at, ended_at, outcome
	          FROM session_logs ORDER BY started_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, limit)
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("recent sessions: %w", err)
	}
	defer rows.Close()

	var logs []SessionLog
	for rows.Next() {
		var l SessionLog
		var startedAt string
		var endedAt sql.NullString
		if err := rows.Scan(&l.ID, &l.PlanID, &l.Day, &l.Slot, &l.ExerciseSeconds, &l.RestSeconds, &startedAt, &endedAt, &l.Outcome); err != nil {
			return nil, err
		}
		l.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		if endedAt.Valid {
			t, _ := time.Parse(time.RFC3339, endedAt.String)
			l.EndedAt = &t
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
