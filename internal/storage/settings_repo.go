package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type SettingsRepo struct {
	db dbtx
}

func NewSettingsRepo(db dbtx) *SettingsRepo {
	return &SettingsRepo{db: db}
}

func (r *SettingsRepo) GetSettings(ctx context.Context, userID string) (*Settings, error) {
	row := r.db.QueryRowContext(ctx, `SELECT notifications FROM user_settings WHERE user_id = ?`, userID)
	s := Settings{UserID: userID}
	var on int
	if err := row.Scan(&on); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &s, nil
		}
		return nil, fmt.Errorf("settings get: %w", err)
	}
	s.Notifications = on != 0
	return &s, nil
}

func (r *SettingsRepo) PutSettings(ctx context.Context, s Settings) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_settings (user_id, notifications) VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET notifications = excluded.notifications
	`, s.UserID, boolToInt(s.Notifications))
	if err != nil {
		return fmt.Errorf("settings put: %w", err)
	}
	return nil
}

// ListUsersWithNotifications returns the ids of users who opted in to reminders.
func (r *SettingsRepo) ListUsersWithNotifications(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT user_id FROM user_settings WHERE notifications = 1 ORDER BY user_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("settings list: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("settings scan: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("settings rows: %w", err)
	}
	return out, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
