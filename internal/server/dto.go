package server

import (
	"time"

	"gyst/internal/engine"
	"gyst/internal/storage"
)

type taskJSON struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Frequency           string     `json:"frequency"`
	CreatedAt           *time.Time `json:"created_at,omitempty"`
	LastCompletedTime   *time.Time `json:"last_completed_time,omitempty"`
	CurrentStreak       int        `json:"current_streak"`
	Alive               *bool      `json:"alive,omitempty"`
	CompletedThisPeriod *bool      `json:"completed_this_period,omitempty"`
}

type statsJSON struct {
	XP             int        `json:"xp"`
	Streak         int        `json:"streak"`
	LastStreakDate *time.Time `json:"last_streak_date,omitempty"`
	Level          int        `json:"level"`
	LevelXP        int        `json:"level_xp"`
	LevelXPNeeded  int        `json:"level_xp_needed"`
}

type toggleJSON struct {
	TaskID      string    `json:"task_id"`
	Action      string    `json:"action"`
	TaskStreak  int       `json:"task_streak"`
	XPDelta     int       `json:"xp_delta"`
	StreakDelta int       `json:"streak_delta"`
	Stats       statsJSON `json:"stats"`
}

func toToggleJSON(res *engine.ToggleResult) toggleJSON {
	return toggleJSON{
		TaskID:      res.TaskID,
		Action:      string(res.Action),
		TaskStreak:  res.TaskStreak,
		XPDelta:     res.XPDelta,
		StreakDelta: res.StreakDelta,
		Stats:       toStatsJSON(res.Stats),
	}
}

type completionJSON struct {
	TaskID        string    `json:"task_id"`
	DaysCompleted int       `json:"days_completed"`
	CompletedAt   time.Time `json:"completed_at"`
	XPAwarded     int       `json:"xp_awarded"`
}

type badgeJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Earned      bool   `json:"earned"`
}

type settingsJSON struct {
	Notifications bool `json:"notifications"`
}

type createTaskRequest struct {
	Name      string `json:"name"`
	Frequency string `json:"frequency"`
}

type updateTaskRequest struct {
	Name      *string `json:"name"`
	Frequency *string `json:"frequency"`
}

type tokenRequest struct {
	Platform string `json:"platform"`
}

func optTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func toTaskJSON(t storage.Task) taskJSON {
	return taskJSON{
		ID:                t.ID,
		Name:              t.Name,
		Frequency:         t.Frequency,
		CreatedAt:         optTime(t.CreatedAt),
		LastCompletedTime: optTime(t.LastCompletedTime),
		CurrentStreak:     t.CurrentStreak,
	}
}

func toTaskViewJSON(v engine.TaskView) taskJSON {
	out := toTaskJSON(v.Task)
	out.Alive = &v.Alive
	out.CompletedThisPeriod = &v.CompletedPeriod
	return out
}

func toStatsJSON(st storage.UserStats) statsJSON {
	p := engine.ProgressForXP(st.XP)
	return statsJSON{
		XP:             st.XP,
		Streak:         st.Streak,
		LastStreakDate: optTime(st.LastStreakDate),
		Level:          p.Level,
		LevelXP:        p.Current,
		LevelXPNeeded:  p.Needed,
	}
}
