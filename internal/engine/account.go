package engine

import (
	"context"
	"strings"

	"gyst/internal/storage"
)

func (s *Service) GetSettings(ctx context.Context, userID string) (*storage.Settings, error) {
	user, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	st, err := s.store.GetSettings(ctx, user)
	if err != nil {
		return nil, storeErr("get settings", err)
	}
	return st, nil
}

func (s *Service) UpdateSettings(ctx context.Context, userID string, notifications bool) (*storage.Settings, error) {
	user, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	st := storage.Settings{UserID: user, Notifications: notifications}
	if err := s.store.PutSettings(ctx, st); err != nil {
		return nil, storeErr("put settings", err)
	}
	return &st, nil
}

// RegisterToken records a reminder destination for the user.
func (s *Service) RegisterToken(ctx context.Context, userID, token, platform string) error {
	user, err := requireUser(userID)
	if err != nil {
		return err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrInvalidToken
	}
	if err := s.store.SaveToken(ctx, storage.DeviceToken{
		UserID:    user,
		Token:     token,
		Platform:  platform,
		UpdatedAt: s.now(),
	}); err != nil {
		return storeErr("save token", err)
	}
	return nil
}

func (s *Service) UnregisterToken(ctx context.Context, userID, token string) error {
	user, err := requireUser(userID)
	if err != nil {
		return err
	}
	if err := s.store.RemoveToken(ctx, user, strings.TrimSpace(token)); err != nil {
		return storeErr("remove token", err)
	}
	return nil
}

func (s *Service) ListTokens(ctx context.Context, userID string) ([]storage.DeviceToken, error) {
	user, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	toks, err := s.store.ListTokens(ctx, user)
	if err != nil {
		return nil, storeErr("list tokens", err)
	}
	return toks, nil
}

// DeleteAccount removes every task, record, stat, setting and token of the user.
func (s *Service) DeleteAccount(ctx context.Context, userID string) error {
	user, err := requireUser(userID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteUser(ctx, user); err != nil {
		return storeErr("delete account", err)
	}
	s.log.Info("account deleted", "user", user)
	return nil
}
