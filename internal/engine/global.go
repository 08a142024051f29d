package engine

import (
	"time"

	"gyst/internal/storage"
)

type GlobalStreakResult struct {
	Streak      int
	Incremented bool
}

// EvaluateGlobalStreak folds every task into one global streak transition.
//
// A lapsed task resets the streak regardless of anything else. The streak is
// incremented only when shouldIncrement is set, every task is completed for
// its current period, and the increment was not already granted on now's day.
// Passive checks pass shouldIncrement=false so they can observe decay without
// earning progress.
func EvaluateGlobalStreak(tasks []storage.Task, stats storage.UserStats, now time.Time, shouldIncrement bool) GlobalStreakResult {
	if len(tasks) == 0 {
		return GlobalStreakResult{Streak: stats.Streak}
	}

	allDone := true
	for _, t := range tasks {
		if !IsStreakAlive(t, now) {
			return GlobalStreakResult{Streak: 0}
		}
		if !IsCompletedThisPeriod(t, now) {
			allDone = false
		}
	}

	if allDone && shouldIncrement && !grantedOn(stats, now) {
		return GlobalStreakResult{Streak: stats.Streak + 1, Incremented: true}
	}
	return GlobalStreakResult{Streak: stats.Streak}
}

// grantedOn reports whether the idempotency guard already holds now's day.
func grantedOn(stats storage.UserStats, now time.Time) bool {
	if stats.LastStreakDate.IsZero() {
		return false
	}
	return sameDay(stats.LastStreakDate.In(now.Location()), now)
}

func allCompletedThisPeriod(tasks []storage.Task, now time.Time) bool {
	if len(tasks) == 0 {
		return false
	}
	for _, t := range tasks {
		if !IsCompletedThisPeriod(t, now) {
			return false
		}
	}
	return true
}
