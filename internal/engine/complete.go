package engine

import (
	"context"
	"errors"
	"time"

	"gyst/internal/storage"
)

type ToggleAction string

const (
	ActionCompleted   ToggleAction = "completed"
	ActionUncompleted ToggleAction = "uncompleted"
	ActionNoop        ToggleAction = "noop"
)

type ToggleResult struct {
	TaskID      string
	Action      ToggleAction
	TaskStreak  int
	XPDelta     int
	StreakDelta int
	Stats       storage.UserStats
}

// ToggleComplete completes the task for its current period, or undoes that
// completion when the task is already completed this period. Task, history and
// stats are written in one transaction.
func (s *Service) ToggleComplete(ctx context.Context, userID, taskID string) (*ToggleResult, error) {
	user, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	// Stored timestamps have millisecond precision; undo matches them exactly.
	now := s.now().Truncate(time.Millisecond)

	var res *ToggleResult
	err = s.store.WithTx(ctx, func(g storage.Gateway) error {
		task, err := g.GetTask(ctx, user, taskID)
		if err != nil {
			return storeErr("get task", err)
		}
		if IsCompletedThisPeriod(*task, now) {
			res, err = s.unmarkComplete(ctx, g, user, *task, now)
		} else {
			res, err = s.markComplete(ctx, g, user, *task, now)
		}
		return err
	})
	if err != nil {
		return nil, storeErr("toggle complete", err)
	}

	s.log.Info("task toggled",
		"user", user,
		"task", taskID,
		"action", res.Action,
		"task_streak", res.TaskStreak,
		"xp_delta", res.XPDelta,
		"streak", res.Stats.Streak,
	)
	return res, nil
}

// UndoComplete undoes the task's completion for its current period. A missing
// task, or one not completed this period, is left alone and reported as
// ActionNoop with the unchanged stats.
func (s *Service) UndoComplete(ctx context.Context, userID, taskID string) (*ToggleResult, error) {
	user, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	now := s.now().Truncate(time.Millisecond)

	var res *ToggleResult
	err = s.store.WithTx(ctx, func(g storage.Gateway) error {
		task, err := g.GetTask(ctx, user, taskID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return storeErr("get task", err)
		}
		if task == nil || !IsCompletedThisPeriod(*task, now) {
			stats, err := g.GetStats(ctx, user)
			if err != nil {
				return storeErr("get stats", err)
			}
			res = &ToggleResult{TaskID: taskID, Action: ActionNoop, Stats: *stats}
			if task != nil {
				res.TaskStreak = task.CurrentStreak
			}
			return nil
		}
		res, err = s.unmarkComplete(ctx, g, user, *task, now)
		return err
	})
	if err != nil {
		return nil, storeErr("undo complete", err)
	}

	s.log.Info("task undo",
		"user", user,
		"task", taskID,
		"action", res.Action,
		"xp_delta", res.XPDelta,
		"streak", res.Stats.Streak,
	)
	return res, nil
}

func (s *Service) markComplete(ctx context.Context, g storage.Gateway, user string, task storage.Task, now time.Time) (*ToggleResult, error) {
	// A broken streak restarts at one: completing now is the first period.
	alive := IsStreakAlive(task, now)
	newStreak := 1
	if alive {
		newStreak = task.CurrentStreak + 1
	}

	if err := g.PatchTask(ctx, user, task.ID, storage.TaskPatch{
		LastCompletedTime: timePtr(now),
		CurrentStreak:     intPtr(newStreak),
	}); err != nil {
		return nil, storeErr("put task", err)
	}
	reward := RewardFor(Frequency(task.Frequency))
	if _, err := g.AppendCompletion(ctx, storage.CompletionRecord{
		UserID:        user,
		ParentID:      task.ID,
		DaysCompleted: newStreak,
		CompletedAt:   now,
		XPAwarded:     reward,
	}); err != nil {
		return nil, storeErr("append completion", err)
	}

	tasks, err := g.ListTasks(ctx, user)
	if err != nil {
		return nil, storeErr("list tasks", err)
	}
	stats, err := g.GetStats(ctx, user)
	if err != nil {
		return nil, storeErr("get stats", err)
	}
	global := EvaluateGlobalStreak(tasks, *stats, now, true)

	patch := storage.StatsPatch{
		XP:     intPtr(stats.XP + reward),
		Streak: intPtr(global.Streak),
	}
	if global.Incremented {
		patch.LastStreakDate = timePtr(now)
	}
	if err := g.PutStats(ctx, user, patch); err != nil {
		return nil, storeErr("put stats", err)
	}

	s.log.Debug("task marked complete",
		"user", user,
		"task", task.ID,
		"alive", alive,
		"global_incremented", global.Incremented,
	)

	after := *stats
	after.XP = *patch.XP
	after.Streak = global.Streak
	if global.Incremented {
		after.LastStreakDate = now
	}
	return &ToggleResult{
		TaskID:      task.ID,
		Action:      ActionCompleted,
		TaskStreak:  newStreak,
		XPDelta:     reward,
		StreakDelta: global.Streak - stats.Streak,
		Stats:       after,
	}, nil
}

func (s *Service) unmarkComplete(ctx context.Context, g storage.Gateway, user string, task storage.Task, now time.Time) (*ToggleResult, error) {
	tasks, err := g.ListTasks(ctx, user)
	if err != nil {
		return nil, storeErr("list tasks", err)
	}
	// Only an undo that breaks a perfect period costs a global streak point.
	wasFullyComplete := allCompletedThisPeriod(tasks, now)

	prev, err := g.FindMostRecentCompletionBefore(ctx, user, task.ID, task.LastCompletedTime)
	if err != nil {
		return nil, storeErr("find previous completion", err)
	}
	var restored time.Time
	if prev != nil {
		restored = prev.CompletedAt
	}
	newStreak := max(0, task.CurrentStreak-1)

	if err := g.PatchTask(ctx, user, task.ID, storage.TaskPatch{
		LastCompletedTime: timePtr(restored),
		CurrentStreak:     intPtr(newStreak),
	}); err != nil {
		return nil, storeErr("put task", err)
	}
	removed, err := g.DeleteCompletion(ctx, user, task.ID, task.LastCompletedTime)
	if err != nil {
		return nil, storeErr("delete completion", err)
	}
	// The refund is what the completion earned, even if the frequency changed since.
	refund := RewardFor(Frequency(task.Frequency))
	switch {
	case removed == nil:
		s.log.Warn("no completion record matched undo", "user", user, "task", task.ID, "completed_at", task.LastCompletedTime)
	case removed.XPAwarded != storage.XPUnknown:
		refund = removed.XPAwarded
	}

	stats, err := g.GetStats(ctx, user)
	if err != nil {
		return nil, storeErr("get stats", err)
	}
	streak := stats.Streak
	if wasFullyComplete {
		streak = max(0, streak-1)
	}
	xp := max(0, stats.XP-refund)

	if err := g.PutStats(ctx, user, storage.StatsPatch{
		XP:     intPtr(xp),
		Streak: intPtr(streak),
		// Cleared so the next perfect period is evaluated afresh.
		LastStreakDate: timePtr(time.Time{}),
	}); err != nil {
		return nil, storeErr("put stats", err)
	}

	s.log.Debug("task completion undone",
		"user", user,
		"task", task.ID,
		"restored_last_completed", restored,
		"was_fully_complete", wasFullyComplete,
	)

	after := *stats
	after.XP = xp
	after.Streak = streak
	after.LastStreakDate = time.Time{}
	return &ToggleResult{
		TaskID:      task.ID,
		Action:      ActionUncompleted,
		TaskStreak:  newStreak,
		XPDelta:     xp - stats.XP,
		StreakDelta: streak - stats.Streak,
		Stats:       after,
	}, nil
}
