package storage

import "time"

// Task is a user-defined recurring task. A zero LastCompletedTime means the
// task has never been completed.
type Task struct {
	ID                string
	UserID            string
	Name              string
	Frequency         string
	CreatedAt         time.Time
	LastCompletedTime time.Time
	CurrentStreak     int
}

// TaskPatch is a partial task update. nil => "no change".
type TaskPatch struct {
	Name              *string
	Frequency         *string
	LastCompletedTime *time.Time
	CurrentStreak     *int
}

func (p TaskPatch) IsEmpty() bool {
	return p.Name == nil && p.Frequency == nil && p.LastCompletedTime == nil && p.CurrentStreak == nil
}

// XPUnknown marks a completion recorded before awarded XP was stored.
const XPUnknown = -1

// CompletionRecord is one entry of the append-only completion history.
// XPAwarded is the reward granted when the record was written.
type CompletionRecord struct {
	ID            int64
	UserID        string
	ParentID      string
	DaysCompleted int
	CompletedAt   time.Time
	XPAwarded     int
}

// UserStats is the per-user XP and global streak document. A zero
// LastStreakDate means the global streak has never been granted.
type UserStats struct {
	UserID         string
	XP             int
	Streak         int
	LastStreakDate time.Time
}

// StatsPatch is a partial stats update applied with merge semantics.
type StatsPatch struct {
	XP             *int
	Streak         *int
	LastStreakDate *time.Time
}

func (p StatsPatch) IsEmpty() bool {
	return p.XP == nil && p.Streak == nil && p.LastStreakDate == nil
}

type Settings struct {
	UserID        string
	Notifications bool
}

// DeviceToken is a registered reminder destination.
type DeviceToken struct {
	UserID    string
	Token     string
	Platform  string
	UpdatedAt time.Time
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
