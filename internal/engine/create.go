package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gyst/internal/storage"
)

type CreateTaskInput struct {
	Name      string
	Frequency string
}

type CreateResult struct {
	Task storage.Task
	// StreakRevoked is set when today's global streak increment was taken back
	// because the new task is not yet completed.
	StreakRevoked bool
}

func newTaskID() string {
	return uuid.NewString()
}

// CreateTask adds a task for the user.
//
// When every existing task is already completed for its period and the global
// streak was granted today, the grant is revoked: the day is no longer perfect
// until the new task is completed too, which earns the increment back.
func (s *Service) CreateTask(ctx context.Context, userID string, in CreateTaskInput) (*CreateResult, error) {
	user, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}
	freq, err := ParseFrequency(in.Frequency)
	if err != nil {
		return nil, err
	}

	now := s.now().Truncate(time.Millisecond)
	task := storage.Task{
		ID:        s.newID(),
		UserID:    user,
		Name:      name,
		Frequency: string(freq),
		CreatedAt: now,
	}

	res := &CreateResult{}
	err = s.store.WithTx(ctx, func(g storage.Gateway) error {
		existing, err := g.ListTasks(ctx, user)
		if err != nil {
			return storeErr("list tasks", err)
		}
		if allCompletedThisPeriod(existing, now) {
			stats, err := g.GetStats(ctx, user)
			if err != nil {
				return storeErr("get stats", err)
			}
			if grantedOn(*stats, now) {
				if err := g.PutStats(ctx, user, storage.StatsPatch{
					Streak:         intPtr(max(0, stats.Streak-1)),
					LastStreakDate: timePtr(time.Time{}),
				}); err != nil {
					return storeErr("put stats", err)
				}
				res.StreakRevoked = true
			}
		}
		if err := g.PutTask(ctx, task); err != nil {
			return storeErr("put task", err)
		}
		return nil
	})
	if err != nil {
		return nil, storeErr("create task", err)
	}

	s.log.Info("task created", "user", user, "task", task.ID, "frequency", task.Frequency, "streak_revoked", res.StreakRevoked)
	res.Task = task
	return res, nil
}
