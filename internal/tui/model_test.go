package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gyst/internal/engine"
	"gyst/internal/storage"
)

func newTestModel(t *testing.T) (boardModel, *engine.Service) {
	t.Helper()
	ctx := context.Background()
	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "gyst.db"))
	require.NoError(t, err)
	st := storage.NewStore(db)
	t.Cleanup(func() { _ = st.Close() })

	now := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)
	svc := engine.NewService(st, engine.WithClock(func() time.Time { return now }), engine.WithLocation(time.UTC))
	return newBoardModel(ctx, svc, "alice"), svc
}

// run executes a command and feeds its message back into the model.
func run(t *testing.T, m boardModel, cmd tea.Cmd) boardModel {
	t.Helper()
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	return next.(boardModel)
}

func TestBoardToggleSelectedTask(t *testing.T) {
	m, svc := newTestModel(t)
	_, err := svc.CreateTask(context.Background(), "alice", engine.CreateTaskInput{Name: "Read", Frequency: "daily"})
	require.NoError(t, err)

	m = run(t, m, m.Init())
	require.Len(t, m.tasks, 1)
	assert.Contains(t, m.View(), "[ ] Read")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	m = next.(boardModel)
	next, reload := m.Update(cmd())
	m = next.(boardModel)
	assert.Contains(t, m.lastLog, "Completed Read")

	m = run(t, m, reload)
	assert.True(t, m.tasks[0].CompletedPeriod)
	assert.Contains(t, m.View(), "[x] Read")
	assert.Contains(t, m.View(), "Streak 1")
}

func TestBoardEmpty(t *testing.T) {
	m, _ := newTestModel(t)
	m = run(t, m, m.Init())
	assert.Contains(t, m.View(), "no tasks")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
