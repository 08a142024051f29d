package notify

import (
	"context"
	"errors"
	"log/slog"
)

// ErrTokenInvalid is returned by a Sender when the destination no longer
// exists. The dispatcher prunes such tokens.
var ErrTokenInvalid = errors.New("notification token is not registered")

// Message is one reminder addressed to one registered token.
type Message struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

type Sender interface {
	Send(ctx context.Context, m Message) error
}

// LogSender writes reminders to the log instead of delivering them.
type LogSender struct {
	Log *slog.Logger
}

func (s LogSender) Send(ctx context.Context, m Message) error {
	log := s.Log
	if log == nil {
		log = slog.Default()
	}
	log.InfoContext(ctx, "reminder", "user", m.UserID, "token", m.Token, "title", m.Title, "body", m.Body)
	return nil
}
