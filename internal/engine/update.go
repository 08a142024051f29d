package engine

import (
	"context"

	"gyst/internal/storage"
)

// UpdateTaskInput carries the user-editable task fields. nil => unchanged.
type UpdateTaskInput struct {
	Name      *string
	Frequency *string
}

// UpdateTask renames a task or changes its frequency. Streak counters are left
// alone; the next evaluation applies the new frequency's windows.
func (s *Service) UpdateTask(ctx context.Context, userID, taskID string, in UpdateTaskInput) (*storage.Task, error) {
	user, err := requireUser(userID)
	if err != nil {
		return nil, err
	}

	var patch storage.TaskPatch
	if in.Name != nil {
		name, err := normalizeName(*in.Name)
		if err != nil {
			return nil, err
		}
		patch.Name = strPtr(name)
	}
	if in.Frequency != nil {
		freq, err := ParseFrequency(*in.Frequency)
		if err != nil {
			return nil, err
		}
		patch.Frequency = strPtr(string(freq))
	}

	var out *storage.Task
	err = s.store.WithTx(ctx, func(g storage.Gateway) error {
		if err := g.PatchTask(ctx, user, taskID, patch); err != nil {
			return storeErr("patch task", err)
		}
		t, err := g.GetTask(ctx, user, taskID)
		if err != nil {
			return storeErr("get task", err)
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, storeErr("update task", err)
	}
	return out, nil
}

// DeleteTask removes the task. Its completion history is kept.
func (s *Service) DeleteTask(ctx context.Context, userID, taskID string) error {
	user, err := requireUser(userID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteTask(ctx, user, taskID); err != nil {
		return storeErr("delete task", err)
	}
	s.log.Info("task deleted", "user", user, "task", taskID)
	return nil
}
