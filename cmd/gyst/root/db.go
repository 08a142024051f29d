package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gyst/internal/engine"
	"gyst/internal/storage"
)

func openStore(ctx context.Context) (*storage.Store, error) {
	path, err := storage.ResolveDBPath(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	return storage.NewStore(db), nil
}

func openService(ctx context.Context) (*engine.Service, *storage.Store, func(), error) {
	st, err := openStore(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		_ = st.Close()
		return nil, nil, nil, err
	}
	svc := engine.NewService(st, engine.WithLocation(loc), engine.WithLogger(logger))
	cleanup := func() {
		_ = st.Close()
	}
	return svc, st, cleanup, nil
}

// resolveTask finds a task by exact id, unique id prefix or exact name.
func resolveTask(ctx context.Context, svc *engine.Service, ref string) (*engine.TaskView, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New("task reference is required")
	}
	tasks, err := svc.ListTasks(ctx, cfg.User)
	if err != nil {
		return nil, err
	}

	var matches []engine.TaskView
	for _, t := range tasks {
		if t.ID == ref {
			return &t, nil
		}
		if strings.HasPrefix(t.ID, ref) || strings.EqualFold(t.Name, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("task %q: %w", ref, engine.ErrNotFound)
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("task %q is ambiguous (%d matches)", ref, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
