package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrDuplicateCompletion = errors.New("completion already recorded at this time")
)

// Gateway is the per-user document access used by the engine. Every method is
// scoped by userID.
type Gateway interface {
	GetTask(ctx context.Context, userID, taskID string) (*Task, error)
	ListTasks(ctx context.Context, userID string) ([]Task, error)
	PutTask(ctx context.Context, t Task) error
	PatchTask(ctx context.Context, userID, taskID string, p TaskPatch) error
	DeleteTask(ctx context.Context, userID, taskID string) error

	GetStats(ctx context.Context, userID string) (*UserStats, error)
	PutStats(ctx context.Context, userID string, p StatsPatch) error

	AppendCompletion(ctx context.Context, rec CompletionRecord) (int64, error)
	FindMostRecentCompletionBefore(ctx context.Context, userID, taskID string, before time.Time) (*CompletionRecord, error)
	DeleteCompletion(ctx context.Context, userID, taskID string, at time.Time) (*CompletionRecord, error)
	ListCompletions(ctx context.Context, userID, taskID string) ([]CompletionRecord, error)

	GetSettings(ctx context.Context, userID string) (*Settings, error)
	PutSettings(ctx context.Context, s Settings) error

	SaveToken(ctx context.Context, tok DeviceToken) error
	RemoveToken(ctx context.Context, userID, token string) error
	ListTokens(ctx context.Context, userID string) ([]DeviceToken, error)

	DeleteUser(ctx context.Context, userID string) error
}

// Store is the SQLite-backed Gateway. The embedded repos are bound either to
// the database or, inside WithTx, to a transaction.
type Store struct {
	db   *sql.DB
	q    dbtx
	inTx bool
	*TaskRepo
	*CompletionRepo
	*StatsRepo
	*SettingsRepo
	*TokenRepo
}

var _ Gateway = (*Store)(nil)

func NewStore(db *sql.DB) *Store {
	return bind(db, db, false)
}

func bind(db *sql.DB, q dbtx, inTx bool) *Store {
	return &Store{
		db:             db,
		q:              q,
		inTx:           inTx,
		TaskRepo:       NewTaskRepo(q),
		CompletionRepo: NewCompletionRepo(q),
		StatsRepo:      NewStatsRepo(q),
		SettingsRepo:   NewSettingsRepo(q),
		TokenRepo:      NewTokenRepo(q),
	}
}

func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// WithTx runs fn against a Gateway bound to one SQL transaction. Any error
// returned by fn rolls back every write made through the gateway. Nested
// calls reuse the outer transaction.
func (s *Store) WithTx(ctx context.Context, fn func(g Gateway) error) error {
	if s.inTx {
		return fn(s)
	}
	return WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(bind(s.db, tx, true))
	})
}

// DeleteUser removes every document owned by userID.
func (s *Store) DeleteUser(ctx context.Context, userID string) error {
	return s.WithTx(ctx, func(g Gateway) error {
		st := g.(*Store)
		for _, q := range []string{
			`DELETE FROM completed_tasks WHERE user_id = ?`,
			`DELETE FROM tasks WHERE user_id = ?`,
			`DELETE FROM user_stats WHERE user_id = ?`,
			`DELETE FROM user_settings WHERE user_id = ?`,
			`DELETE FROM notification_tokens WHERE user_id = ?`,
		} {
			if _, err := st.q.ExecContext(ctx, q, userID); err != nil {
				return fmt.Errorf("delete user: %w", err)
			}
		}
		return nil
	})
}
