package store

import (
	"database/sql"
	"fmt"
	"time"
)

// RecordCurrentTodo appends a row to the current-todo history. History is
// append-only: selecting the same todo twice records two rows.
func (s *Store) RecordCurrentTodo(todoID int64) error {
	_, err := s.db.Exec(
		"INSERT INTO current_todo_history (todo_id, selected_at) VALUES (?, ?)",
		todoID, timeText(time.Now()))
	if err != nil {
		return fmt.Errorf("record current todo %d: %w", todoID, err)
	}
	return nil
}

// CurrentTodo returns the todo id from the most recent history row, or
// ErrNotFound when nothing has ever been selected. History is append-only,
// so the autoincrement id reflects selection order exactly; selected_at is
// variable-width text and cannot be ordered on.
func (s *Store) CurrentTodo() (int64, error) {
	var todoID int64
	err := s.db.QueryRow(
		"SELECT todo_id FROM current_todo_history ORDER BY id DESC LIMIT 1",
	).Scan(&todoID)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get current todo: %w", err)
	}
	return todoID, nil
}
