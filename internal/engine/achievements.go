package engine

import (
	"context"

	"gyst/internal/storage"
)

// Badge is a milestone the user can earn.
type Badge struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Earned      bool
}

// BadgeChecker works out which badges the user has earned. Badges are derived
// on read and never stored.
type BadgeChecker struct {
	stats       storage.UserStats
	tasks       []storage.Task
	completions int
}

func NewBadgeChecker(stats storage.UserStats, tasks []storage.Task, completions int) *BadgeChecker {
	return &BadgeChecker{stats: stats, tasks: tasks, completions: completions}
}

func (c *BadgeChecker) Badges() []Badge {
	return []Badge{
		// global streak
		c.streakBadge("first_perfect_day", "Perfect Day", "Complete every task in a period", "🌱", 1),
		c.streakBadge("on_a_roll", "On a Roll", "Global streak of 7", "🔥", 7),
		c.streakBadge("unstoppable", "Unstoppable", "Global streak of 30", "🏆", 30),

		// levels
		c.levelBadge("apprentice", "Apprentice", "Reach level 2", "⭐", 2),
		c.levelBadge("veteran", "Veteran", "Reach level 10", "🌟", 10),

		// completions
		c.completionBadge("first_task", "First Step", "Complete 1 task", "✓", 1),
		c.completionBadge("productive", "Productive", "Complete 50 tasks", "📋", 50),
		c.completionBadge("powerhouse", "Powerhouse", "Complete 250 tasks", "💪", 250),

		// per-task streaks
		c.taskStreakBadge("habit_former", "Habit Former", "Any task streak of 10", "🔁", 10),
		c.frequencyBadge("long_game", "Long Game", "Track a monthly task", "📅", FrequencyMonthly),
	}
}

func (c *BadgeChecker) CountEarned() int {
	n := 0
	for _, b := range c.Badges() {
		if b.Earned {
			n++
		}
	}
	return n
}

func (c *BadgeChecker) streakBadge(id, name, desc, icon string, streak int) Badge {
	return Badge{ID: id, Name: name, Description: desc, Icon: icon, Earned: c.stats.Streak >= streak}
}

func (c *BadgeChecker) levelBadge(id, name, desc, icon string, level int) Badge {
	return Badge{ID: id, Name: name, Description: desc, Icon: icon, Earned: LevelForXP(c.stats.XP) >= level}
}

func (c *BadgeChecker) completionBadge(id, name, desc, icon string, count int) Badge {
	return Badge{ID: id, Name: name, Description: desc, Icon: icon, Earned: c.completions >= count}
}

func (c *BadgeChecker) taskStreakBadge(id, name, desc, icon string, streak int) Badge {
	earned := false
	for _, t := range c.tasks {
		if t.CurrentStreak >= streak {
			earned = true
			break
		}
	}
	return Badge{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *BadgeChecker) frequencyBadge(id, name, desc, icon string, f Frequency) Badge {
	earned := false
	for _, t := range c.tasks {
		if Frequency(t.Frequency) == f {
			earned = true
			break
		}
	}
	return Badge{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

// Badges loads the user's stats, tasks and history and evaluates every badge.
func (s *Service) Badges(ctx context.Context, userID string) ([]Badge, error) {
	user, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	stats, err := s.store.GetStats(ctx, user)
	if err != nil {
		return nil, storeErr("get stats", err)
	}
	tasks, err := s.store.ListTasks(ctx, user)
	if err != nil {
		return nil, storeErr("list tasks", err)
	}
	recs, err := s.store.ListCompletions(ctx, user, "")
	if err != nil {
		return nil, storeErr("list completions", err)
	}
	return NewBadgeChecker(*stats, tasks, len(recs)).Badges(), nil
}
