package engine

import (
	"time"

	"gyst/internal/storage"
)

// IsStreakAlive reports whether the task's streak survives at now.
func IsStreakAlive(t storage.Task, now time.Time) bool {
	p, ok := PolicyFor(Frequency(t.Frequency))
	if !ok {
		return true
	}

	if t.LastCompletedTime.IsZero() {
		// Legacy rows without created_at get the benefit of the doubt.
		if t.CreatedAt.IsZero() {
			return true
		}
		return now.Sub(t.CreatedAt) <= p.Grace
	}
	return now.Sub(t.LastCompletedTime) <= p.Renewal
}

// IsCompletedThisPeriod reports whether the task was already completed in the
// period containing now. Calendar comparisons use now's location.
func IsCompletedThisPeriod(t storage.Task, now time.Time) bool {
	if t.LastCompletedTime.IsZero() {
		return false
	}
	last := t.LastCompletedTime.In(now.Location())

	switch Frequency(t.Frequency) {
	case FrequencyDaily:
		return sameDay(last, now)
	case FrequencyWeekly:
		return now.Sub(last) <= 7*day
	case FrequencyMonthly:
		return sameMonth(last, now)
	default:
		return false
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
