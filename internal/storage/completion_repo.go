package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

type CompletionRepo struct {
	db dbtx
}

func NewCompletionRepo(db dbtx) *CompletionRepo {
	return &CompletionRepo{db: db}
}

// AppendCompletion adds a history record. A second record for the same task at
// the same millisecond is rejected with ErrDuplicateCompletion.
func (r *CompletionRepo) AppendCompletion(ctx context.Context, rec CompletionRecord) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO completed_tasks (user_id, parent_id, days_completed, completed_at, xp_awarded)
		VALUES (?, ?, ?, ?, ?)
	`, rec.UserID, rec.ParentID, rec.DaysCompleted, toMillis(rec.CompletedAt), rec.XPAwarded)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, fmt.Errorf("completion insert: %w", ErrDuplicateCompletion)
		}
		return 0, fmt.Errorf("completion insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("completion last insert id: %w", err)
	}
	return id, nil
}

// FindMostRecentCompletionBefore returns the newest record for the task with
// completed_at strictly before the given time, or nil when there is none.
func (r *CompletionRepo) FindMostRecentCompletionBefore(ctx context.Context, userID, taskID string, before time.Time) (*CompletionRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, parent_id, days_completed, completed_at, xp_awarded
		FROM completed_tasks
		WHERE user_id = ? AND parent_id = ? AND completed_at < ?
		ORDER BY completed_at DESC
		LIMIT 1
	`, userID, taskID, toMillis(before))

	rec, err := scanCompletionRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

// DeleteCompletion removes at most one record matching the task and
// completed_at exactly and returns it, or nil when nothing matched.
func (r *CompletionRepo) DeleteCompletion(ctx context.Context, userID, taskID string, at time.Time) (*CompletionRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		DELETE FROM completed_tasks
		WHERE id = (
			SELECT id FROM completed_tasks
			WHERE user_id = ? AND parent_id = ? AND completed_at = ?
			ORDER BY id DESC
			LIMIT 1
		)
		RETURNING id, user_id, parent_id, days_completed, completed_at, xp_awarded
	`, userID, taskID, toMillis(at))

	rec, err := scanCompletionRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("completion delete: %w", err)
	}
	return rec, nil
}

// ListCompletions returns history newest first. An empty taskID lists every
// task of the user.
func (r *CompletionRepo) ListCompletions(ctx context.Context, userID, taskID string) ([]CompletionRecord, error) {
	query := `
		SELECT id, user_id, parent_id, days_completed, completed_at, xp_awarded
		FROM completed_tasks
		WHERE user_id = ?`
	args := []any{userID}
	if taskID != "" {
		query += ` AND parent_id = ?`
		args = append(args, taskID)
	}
	query += ` ORDER BY completed_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("completion list: %w", err)
	}
	defer rows.Close()

	var out []CompletionRecord
	for rows.Next() {
		rec, err := scanCompletionRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("completion rows: %w", err)
	}
	return out, nil
}

func scanCompletionRow(row scanner) (*CompletionRecord, error) {
	var (
		rec         CompletionRecord
		completedAt int64
	)
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.ParentID, &rec.DaysCompleted, &completedAt, &rec.XPAwarded); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("completion scan: %w", err)
	}
	rec.CompletedAt = fromMillis(completedAt)
	return &rec, nil
}
