package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gyst/internal/storage"
)

func task(freq string, created, last time.Time) storage.Task {
	return storage.Task{ID: freq, Frequency: freq, CreatedAt: created, LastCompletedTime: last}
}

func TestIsStreakAlive(t *testing.T) {
	now := t0
	ms := time.Millisecond
	for _, tc := range []struct {
		name string
		task storage.Task
		want bool
	}{
		{"daily grace edge", task("daily", now.Add(-24*time.Hour), time.Time{}), true},
		{"daily grace over", task("daily", now.Add(-24*time.Hour-ms), time.Time{}), false},
		{"daily renewal edge", task("daily", now.Add(-30*24*time.Hour), now.Add(-48*time.Hour)), true},
		{"daily renewal over", task("daily", now.Add(-30*24*time.Hour), now.Add(-48*time.Hour-ms)), false},
		{"weekly grace", task("weekly", now.Add(-7*24*time.Hour), time.Time{}), true},
		{"weekly renewal over", task("weekly", time.Time{}, now.Add(-8*24*time.Hour-ms)), false},
		{"monthly renewal edge", task("monthly", time.Time{}, now.Add(-31*24*time.Hour)), true},
		{"monthly grace over", task("monthly", now.Add(-30*24*time.Hour-ms), time.Time{}), false},
		{"unknown frequency", task("hourly", now.Add(-365*24*time.Hour), time.Time{}), true},
		{"no created_at", task("daily", time.Time{}, time.Time{}), true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsStreakAlive(tc.task, now))
		})
	}
}

func TestIsCompletedThisPeriod(t *testing.T) {
	now := time.Date(2026, time.March, 10, 0, 30, 0, 0, time.UTC)
	for _, tc := range []struct {
		name string
		task storage.Task
		want bool
	}{
		{"never completed", task("daily", now, time.Time{}), false},
		{"daily same day", task("daily", now, now.Add(-20*time.Minute)), true},
		{"daily yesterday", task("daily", now, now.Add(-40*time.Minute)), false},
		{"weekly within seven days", task("weekly", now, now.Add(-7*24*time.Hour)), true},
		{"weekly past seven days", task("weekly", now, now.Add(-7*24*time.Hour-time.Millisecond)), false},
		{"monthly same month", task("monthly", now, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)), true},
		{"monthly previous month", task("monthly", now, time.Date(2026, time.February, 28, 23, 59, 0, 0, time.UTC)), false},
		{"unknown frequency", task("hourly", now, now), false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsCompletedThisPeriod(tc.task, now))
		})
	}
}

func TestIsCompletedThisPeriodUsesNowLocation(t *testing.T) {
	chicago := time.FixedZone("CST", -6*60*60)
	// 03:00 UTC on the 11th is still the 10th in Chicago.
	last := time.Date(2026, time.March, 11, 3, 0, 0, 0, time.UTC)
	now := time.Date(2026, time.March, 10, 23, 0, 0, 0, chicago)
	assert.True(t, IsCompletedThisPeriod(task("daily", last, last), now))
	assert.False(t, IsCompletedThisPeriod(task("daily", last, last), now.Add(2*time.Hour)))
}

func TestEvaluateGlobalStreak(t *testing.T) {
	now := t0
	done := task("daily", now.Add(-time.Hour), now.Add(-time.Minute))
	pending := task("daily", now.Add(-time.Hour), time.Time{})
	lapsed := task("daily", now.Add(-72*time.Hour), now.Add(-72*time.Hour))
	stats := storage.UserStats{Streak: 4, LastStreakDate: now.Add(-24 * time.Hour)}

	t.Run("no tasks holds", func(t *testing.T) {
		assert.Equal(t, GlobalStreakResult{Streak: 4}, EvaluateGlobalStreak(nil, stats, now, true))
	})
	t.Run("lapsed task resets", func(t *testing.T) {
		got := EvaluateGlobalStreak([]storage.Task{done, lapsed}, stats, now, true)
		assert.Equal(t, GlobalStreakResult{Streak: 0}, got)
	})
	t.Run("all done increments", func(t *testing.T) {
		got := EvaluateGlobalStreak([]storage.Task{done}, stats, now, true)
		assert.Equal(t, GlobalStreakResult{Streak: 5, Incremented: true}, got)
	})
	t.Run("passive check never increments", func(t *testing.T) {
		got := EvaluateGlobalStreak([]storage.Task{done}, stats, now, false)
		assert.Equal(t, GlobalStreakResult{Streak: 4}, got)
	})
	t.Run("pending task holds", func(t *testing.T) {
		got := EvaluateGlobalStreak([]storage.Task{done, pending}, stats, now, true)
		assert.Equal(t, GlobalStreakResult{Streak: 4}, got)
	})
	t.Run("already granted today holds", func(t *testing.T) {
		granted := storage.UserStats{Streak: 4, LastStreakDate: now.Add(-time.Hour)}
		got := EvaluateGlobalStreak([]storage.Task{done}, granted, now, true)
		assert.Equal(t, GlobalStreakResult{Streak: 4}, got)
	})
}

func TestParseFrequency(t *testing.T) {
	for in, want := range map[string]Frequency{
		"daily": FrequencyDaily, " D ": FrequencyDaily, "week": FrequencyWeekly,
		"Monthly": FrequencyMonthly, "m": FrequencyMonthly,
	} {
		got, err := ParseFrequency(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFrequency("yearly")
	assert.ErrorIs(t, err, ErrInvalidFrequency)
}

func TestLevelCurve(t *testing.T) {
	assert.Equal(t, 0, XPRequiredForLevel(0))
	assert.Equal(t, 100, XPRequiredForLevel(1))
	assert.Equal(t, 283, XPRequiredForLevel(2))
	assert.Equal(t, 0, LevelForXP(99))
	assert.Equal(t, 1, LevelForXP(100))
	assert.Equal(t, 1, LevelForXP(282))
	assert.Equal(t, 2, LevelForXP(283))

	p := ProgressForXP(150)
	assert.Equal(t, LevelProgress{Level: 1, Current: 50, Needed: 183}, p)
}

func TestMonthlyGraceExpires(t *testing.T) {
	created := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC)
	assert.False(t, IsStreakAlive(task("monthly", created, time.Time{}), now))
}

func TestSameDayReevaluationDoesNotDoubleIncrement(t *testing.T) {
	now := t0
	done := task("daily", now.Add(-time.Hour), now.Add(-time.Minute))
	stats := storage.UserStats{Streak: 2, LastStreakDate: now.Add(-24 * time.Hour)}

	first := EvaluateGlobalStreak([]storage.Task{done}, stats, now, true)
	assert.Equal(t, GlobalStreakResult{Streak: 3, Incremented: true}, first)

	stats.Streak, stats.LastStreakDate = first.Streak, now
	second := EvaluateGlobalStreak([]storage.Task{done}, stats, now.Add(time.Hour), true)
	assert.Equal(t, GlobalStreakResult{Streak: 3}, second)
}
