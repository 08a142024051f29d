package engine

import (
	"context"

	"gyst/internal/storage"
)

// TaskView is a task with its streak predicates evaluated at read time.
type TaskView struct {
	storage.Task
	Alive           bool
	CompletedPeriod bool
}

func (s *Service) view(t storage.Task) TaskView {
	now := s.now()
	return TaskView{
		Task:            t,
		Alive:           IsStreakAlive(t, now),
		CompletedPeriod: IsCompletedThisPeriod(t, now),
	}
}

func (s *Service) GetTask(ctx context.Context, userID, taskID string) (*TaskView, error) {
	user, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	t, err := s.store.GetTask(ctx, user, taskID)
	if err != nil {
		return nil, storeErr("get task", err)
	}
	v := s.view(*t)
	return &v, nil
}

func (s *Service) ListTasks(ctx context.Context, userID string) ([]TaskView, error) {
	user, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.store.ListTasks(ctx, user)
	if err != nil {
		return nil, storeErr("list tasks", err)
	}
	out := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, s.view(t))
	}
	return out, nil
}

func (s *Service) GetStats(ctx context.Context, userID string) (*storage.UserStats, error) {
	user, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	st, err := s.store.GetStats(ctx, user)
	if err != nil {
		return nil, storeErr("get stats", err)
	}
	return st, nil
}

// RefreshStats applies decay observed since the last action: if any task has
// lapsed the global streak is reset. It never increments.
func (s *Service) RefreshStats(ctx context.Context, userID string) (*storage.UserStats, error) {
	user, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	now := s.now()

	var out *storage.UserStats
	err = s.store.WithTx(ctx, func(g storage.Gateway) error {
		tasks, err := g.ListTasks(ctx, user)
		if err != nil {
			return storeErr("list tasks", err)
		}
		stats, err := g.GetStats(ctx, user)
		if err != nil {
			return storeErr("get stats", err)
		}
		global := EvaluateGlobalStreak(tasks, *stats, now, false)
		if global.Streak != stats.Streak {
			if err := g.PutStats(ctx, user, storage.StatsPatch{Streak: intPtr(global.Streak)}); err != nil {
				return storeErr("put stats", err)
			}
			s.log.Info("global streak reset", "user", user, "from", stats.Streak)
			stats.Streak = global.Streak
		}
		out = stats
		return nil
	})
	if err != nil {
		return nil, storeErr("refresh stats", err)
	}
	return out, nil
}

// History lists completion records newest first. An empty taskID lists all.
func (s *Service) History(ctx context.Context, userID, taskID string) ([]storage.CompletionRecord, error) {
	user, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	recs, err := s.store.ListCompletions(ctx, user, taskID)
	if err != nil {
		return nil, storeErr("list completions", err)
	}
	return recs, nil
}
