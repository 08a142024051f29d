package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

type StatsRepo struct {
	db dbtx
}

func NewStatsRepo(db dbtx) *StatsRepo {
	return &StatsRepo{db: db}
}

// GetStats returns the user's stats, or zero stats when none were written yet.
func (r *StatsRepo) GetStats(ctx context.Context, userID string) (*UserStats, error) {
	row := r.db.QueryRowContext(ctx, `SELECT xp, streak, last_streak_date FROM user_stats WHERE user_id = ?`, userID)

	st := UserStats{UserID: userID}
	var last int64
	if err := row.Scan(&st.XP, &st.Streak, &last); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &st, nil
		}
		return nil, fmt.Errorf("stats get: %w", err)
	}
	st.LastStreakDate = fromMillis(last)
	return &st, nil
}

// PutStats merges the set fields of p into the user's stats row.
func (r *StatsRepo) PutStats(ctx context.Context, userID string, p StatsPatch) error {
	if p.IsEmpty() {
		return nil
	}
	cols := []string{"user_id"}
	args := []any{userID}
	var sets []string
	if p.XP != nil {
		cols = append(cols, "xp")
		args = append(args, *p.XP)
		sets = append(sets, "xp = excluded.xp")
	}
	if p.Streak != nil {
		cols = append(cols, "streak")
		args = append(args, *p.Streak)
		sets = append(sets, "streak = excluded.streak")
	}
	if p.LastStreakDate != nil {
		cols = append(cols, "last_streak_date")
		args = append(args, toMillis(*p.LastStreakDate))
		sets = append(sets, "last_streak_date = excluded.last_streak_date")
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_stats (`+strings.Join(cols, ", ")+`)
		VALUES (`+placeholders+`)
		ON CONFLICT(user_id) DO UPDATE SET `+strings.Join(sets, ", "), args...)
	if err != nil {
		return fmt.Errorf("stats put: %w", err)
	}
	return nil
}
