package storage

import (
	"context"
	"fmt"
	"strings"
)

type TokenRepo struct {
	db dbtx
}

func NewTokenRepo(db dbtx) *TokenRepo {
	return &TokenRepo{db: db}
}

func (r *TokenRepo) SaveToken(ctx context.Context, tok DeviceToken) error {
	platform := strings.TrimSpace(tok.Platform)
	if platform == "" {
		platform = "web"
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notification_tokens (user_id, token, platform, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, token) DO UPDATE SET platform = excluded.platform, updated_at = excluded.updated_at
	`, tok.UserID, tok.Token, platform, toMillis(tok.UpdatedAt))
	if err != nil {
		return fmt.Errorf("token save: %w", err)
	}
	return nil
}

func (r *TokenRepo) RemoveToken(ctx context.Context, userID, token string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notification_tokens WHERE user_id = ? AND token = ?`, userID, token); err != nil {
		return fmt.Errorf("token remove: %w", err)
	}
	return nil
}

// DeleteTokenEverywhere removes a token from every user that registered it.
func (r *TokenRepo) DeleteTokenEverywhere(ctx context.Context, token string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notification_tokens WHERE token = ?`, token)
	if err != nil {
		return 0, fmt.Errorf("token cleanup: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("token cleanup rows affected: %w", err)
	}
	return n, nil
}

func (r *TokenRepo) ListTokens(ctx context.Context, userID string) ([]DeviceToken, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, token, platform, updated_at
		FROM notification_tokens
		WHERE user_id = ?
		ORDER BY token ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("token list: %w", err)
	}
	defer rows.Close()

	var out []DeviceToken
	for rows.Next() {
		var (
			t         DeviceToken
			updatedAt int64
		)
		if err := rows.Scan(&t.UserID, &t.Token, &t.Platform, &updatedAt); err != nil {
			return nil, fmt.Errorf("token scan: %w", err)
		}
		t.UpdatedAt = fromMillis(updatedAt)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("token rows: %w", err)
	}
	return out, nil
}
