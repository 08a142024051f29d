package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "gyst.db"))
	require.NoError(t, err)
	st := NewStore(db)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestMigrateIsIdempotent(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, Migrate(context.Background(), st.DB()))
}

func TestMigrateAddsXPAwardedToOldHistory(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "old.db")
	db, err := OpenSQLite(path)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `CREATE TABLE completed_tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		parent_id TEXT NOT NULL,
		days_completed INTEGER NOT NULL,
		completed_at INTEGER NOT NULL
	)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO completed_tasks (user_id, parent_id, days_completed, completed_at) VALUES ('u1', 't1', 1, ?)`, toMillis(base))
	require.NoError(t, err)

	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Migrate(ctx, db))

	st := NewStore(db)
	t.Cleanup(func() { _ = st.Close() })
	recs, err := st.ListCompletions(ctx, "u1", "t1")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, XPUnknown, recs[0].XPAwarded)

	_, err = st.AppendCompletion(ctx, CompletionRecord{UserID: "u1", ParentID: "t1", DaysCompleted: 2, CompletedAt: base.Add(time.Hour), XPAwarded: 50})
	require.NoError(t, err)
	removed, err := st.DeleteCompletion(ctx, "u1", "t1", base.Add(time.Hour))
	require.NoError(t, err)
	require.NotNil(t, removed)
	assert.Equal(t, 50, removed.XPAwarded)
}

func TestTaskCRUD(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.GetTask(ctx, "u1", "t1")
	assert.ErrorIs(t, err, ErrNotFound)

	task := Task{ID: "t1", UserID: "u1", Name: "Read", Frequency: "daily", CreatedAt: base}
	require.NoError(t, st.PutTask(ctx, task))

	got, err := st.GetTask(ctx, "u1", "t1")
	require.NoError(t, err)
	assert.Equal(t, "Read", got.Name)
	assert.True(t, got.CreatedAt.Equal(base))
	assert.True(t, got.LastCompletedTime.IsZero())

	done := base.Add(time.Hour)
	require.NoError(t, st.PatchTask(ctx, "u1", "t1", TaskPatch{LastCompletedTime: &done, CurrentStreak: ptr(3)}))
	got, err = st.GetTask(ctx, "u1", "t1")
	require.NoError(t, err)
	assert.Equal(t, 3, got.CurrentStreak)
	assert.True(t, got.LastCompletedTime.Equal(done))
	assert.Equal(t, "Read", got.Name, "unset patch fields are untouched")

	var zero time.Time
	require.NoError(t, st.PatchTask(ctx, "u1", "t1", TaskPatch{LastCompletedTime: &zero}))
	got, err = st.GetTask(ctx, "u1", "t1")
	require.NoError(t, err)
	assert.True(t, got.LastCompletedTime.IsZero())

	assert.ErrorIs(t, st.PatchTask(ctx, "u2", "t1", TaskPatch{CurrentStreak: ptr(1)}), ErrNotFound)
	assert.ErrorIs(t, st.DeleteTask(ctx, "u2", "t1"), ErrNotFound)
	require.NoError(t, st.DeleteTask(ctx, "u1", "t1"))
	_, err = st.GetTask(ctx, "u1", "t1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNegativeStreakRejected(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, st.PutTask(ctx, Task{ID: "t1", UserID: "u1", Name: "Read", Frequency: "daily", CreatedAt: base}))
	assert.Error(t, st.PatchTask(ctx, "u1", "t1", TaskPatch{CurrentStreak: ptr(-1)}))
}

func TestListTasksOrder(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, st.PutTask(ctx, Task{ID: "a", UserID: "u1", Name: "A", Frequency: "daily", CreatedAt: base}))
	require.NoError(t, st.PutTask(ctx, Task{ID: "b", UserID: "u1", Name: "B", Frequency: "daily", CreatedAt: base.Add(time.Minute), LastCompletedTime: base.Add(time.Hour)}))
	require.NoError(t, st.PutTask(ctx, Task{ID: "c", UserID: "u2", Name: "C", Frequency: "daily", CreatedAt: base}))

	tasks, err := st.ListTasks(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "b", tasks[0].ID)
	assert.Equal(t, "a", tasks[1].ID)
}

func TestCompletionHistory(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := st.AppendCompletion(ctx, CompletionRecord{UserID: "u1", ParentID: "t1", DaysCompleted: i + 1, CompletedAt: base.Add(time.Duration(i) * 24 * time.Hour)})
		require.NoError(t, err)
	}
	_, err := st.AppendCompletion(ctx, CompletionRecord{UserID: "u1", ParentID: "t1", DaysCompleted: 9, CompletedAt: base})
	assert.ErrorIs(t, err, ErrDuplicateCompletion)

	prev, err := st.FindMostRecentCompletionBefore(ctx, "u1", "t1", base.Add(48*time.Hour))
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.Equal(t, 2, prev.DaysCompleted)
	assert.True(t, prev.CompletedAt.Equal(base.Add(24*time.Hour)))

	prev, err = st.FindMostRecentCompletionBefore(ctx, "u1", "t1", base)
	require.NoError(t, err)
	assert.Nil(t, prev)

	removed, err := st.DeleteCompletion(ctx, "u1", "t1", base.Add(48*time.Hour))
	require.NoError(t, err)
	require.NotNil(t, removed)
	assert.Equal(t, 3, removed.DaysCompleted)
	assert.True(t, removed.CompletedAt.Equal(base.Add(48*time.Hour)))
	removed, err = st.DeleteCompletion(ctx, "u1", "t1", base.Add(48*time.Hour))
	require.NoError(t, err)
	assert.Nil(t, removed)

	recs, err := st.ListCompletions(ctx, "u1", "t1")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.True(t, recs[0].CompletedAt.After(recs[1].CompletedAt))

	recs, err = st.ListCompletions(ctx, "u1", "other")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestStatsMergeSemantics(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	stats, err := st.GetStats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, UserStats{UserID: "u1"}, *stats)

	require.NoError(t, st.PutStats(ctx, "u1", StatsPatch{XP: ptr(40)}))
	require.NoError(t, st.PutStats(ctx, "u1", StatsPatch{Streak: ptr(2), LastStreakDate: &base}))
	stats, err = st.GetStats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 40, stats.XP)
	assert.Equal(t, 2, stats.Streak)
	assert.True(t, stats.LastStreakDate.Equal(base))

	var zero time.Time
	require.NoError(t, st.PutStats(ctx, "u1", StatsPatch{LastStreakDate: &zero}))
	stats, err = st.GetStats(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, stats.LastStreakDate.IsZero())
	assert.Equal(t, 40, stats.XP)
}

func TestSettingsAndTokens(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.PutSettings(ctx, Settings{UserID: "u1", Notifications: true}))
	require.NoError(t, st.PutSettings(ctx, Settings{UserID: "u2", Notifications: false}))
	users, err := st.ListUsersWithNotifications(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, users)

	require.NoError(t, st.SaveToken(ctx, DeviceToken{UserID: "u1", Token: "42", UpdatedAt: base}))
	require.NoError(t, st.SaveToken(ctx, DeviceToken{UserID: "u2", Token: "42", Platform: "telegram", UpdatedAt: base}))
	toks, err := st.ListTokens(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, "web", toks[0].Platform)

	n, err := st.DeleteTokenEverywhere(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestWithTxRollsBack(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := st.WithTx(ctx, func(g Gateway) error {
		if err := g.PutTask(ctx, Task{ID: "t1", UserID: "u1", Name: "Read", Frequency: "daily", CreatedAt: base}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = st.GetTask(ctx, "u1", "t1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUserInsideTx(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, st.PutTask(ctx, Task{ID: "t1", UserID: "u1", Name: "Read", Frequency: "daily", CreatedAt: base}))
	require.NoError(t, st.PutTask(ctx, Task{ID: "t2", UserID: "u2", Name: "Run", Frequency: "daily", CreatedAt: base}))

	require.NoError(t, st.WithTx(ctx, func(g Gateway) error {
		return g.DeleteUser(ctx, "u1")
	}))

	tasks, err := st.ListTasks(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, tasks)
	tasks, err = st.ListTasks(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func ptr[T any](v T) *T { return &v }
