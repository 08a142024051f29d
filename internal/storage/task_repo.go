package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

type TaskRepo struct {
	db dbtx
}

func NewTaskRepo(db dbtx) *TaskRepo {
	return &TaskRepo{db: db}
}

const taskColumns = `id, user_id, name, frequency, created_at, last_completed_time, current_streak`

func (r *TaskRepo) GetTask(ctx context.Context, userID, taskID string) (*Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE user_id = ? AND id = ?
	`, userID, taskID)

	t, err := scanTaskRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %s: %w", taskID, ErrNotFound)
		}
		return nil, err
	}
	return t, nil
}

// ListTasks returns the user's tasks, most recently completed first.
func (r *TaskRepo) ListTasks(ctx context.Context, userID string) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE user_id = ?
		ORDER BY last_completed_time DESC, created_at ASC, id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("task list: %w", err)
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		t, err := scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task list rows: %w", err)
	}
	return out, nil
}

// PutTask inserts the task or replaces every column of an existing one.
func (r *TaskRepo) PutTask(ctx context.Context, t Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			frequency = excluded.frequency,
			created_at = excluded.created_at,
			last_completed_time = excluded.last_completed_time,
			current_streak = excluded.current_streak
		WHERE tasks.user_id = excluded.user_id
	`, t.ID, t.UserID, t.Name, t.Frequency, toMillis(t.CreatedAt), toMillis(t.LastCompletedTime), t.CurrentStreak)
	if err != nil {
		return fmt.Errorf("task put: %w", err)
	}
	return nil
}

// PatchTask updates only the fields set on p.
func (r *TaskRepo) PatchTask(ctx context.Context, userID, taskID string, p TaskPatch) error {
	if p.IsEmpty() {
		return nil
	}
	var (
		sets []string
		args []any
	)
	if p.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *p.Name)
	}
	if p.Frequency != nil {
		sets = append(sets, "frequency = ?")
		args = append(args, *p.Frequency)
	}
	if p.LastCompletedTime != nil {
		sets = append(sets, "last_completed_time = ?")
		args = append(args, toMillis(*p.LastCompletedTime))
	}
	if p.CurrentStreak != nil {
		sets = append(sets, "current_streak = ?")
		args = append(args, *p.CurrentStreak)
	}
	args = append(args, userID, taskID)

	res, err := r.db.ExecContext(ctx, `UPDATE tasks SET `+strings.Join(sets, ", ")+` WHERE user_id = ? AND id = ?`, args...)
	if err != nil {
		return fmt.Errorf("task patch: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("task patch rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("task %s: %w", taskID, ErrNotFound)
	}
	return nil
}

func (r *TaskRepo) DeleteTask(ctx context.Context, userID, taskID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE user_id = ? AND id = ?`, userID, taskID)
	if err != nil {
		return fmt.Errorf("task delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("task delete rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("task %s: %w", taskID, ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTaskRow(row scanner) (*Task, error) {
	var (
		t             Task
		createdAt     int64
		lastCompleted int64
	)
	if err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Frequency, &createdAt, &lastCompleted, &t.CurrentStreak); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("task scan: %w", err)
	}
	t.CreatedAt = fromMillis(createdAt)
	t.LastCompletedTime = fromMillis(lastCompleted)
	return &t, nil
}
