package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"gyst/internal/storage"
)

// TokenSource lists reminder recipients. *storage.Store satisfies it.
type TokenSource interface {
	ListUsersWithNotifications(ctx context.Context) ([]string, error)
	ListTokens(ctx context.Context, userID string) ([]storage.DeviceToken, error)
	DeleteTokenEverywhere(ctx context.Context, token string) (int64, error)
}

type Dispatcher struct {
	src     TokenSource
	sender  Sender
	title   string
	body    string
	workers int
	log     *slog.Logger
}

type DispatcherOptions struct {
	Title   string
	Body    string
	Workers int
	Log     *slog.Logger
}

func NewDispatcher(src TokenSource, sender Sender, opts DispatcherOptions) *Dispatcher {
	d := &Dispatcher{
		src:     src,
		sender:  sender,
		title:   opts.Title,
		body:    opts.Body,
		workers: opts.Workers,
		log:     opts.Log,
	}
	if d.title == "" {
		d.title = "GYST Reminder"
	}
	if d.body == "" {
		d.body = "Time to knock out a task!"
	}
	if d.workers < 1 {
		d.workers = 1
	}
	if d.log == nil {
		d.log = slog.Default()
	}
	return d
}

// Report summarizes one reminder run.
type Report struct {
	Users  int
	Sent   int
	Failed int
	Pruned int64
}

// Build collects one message per registered token of every opted-in user.
func (d *Dispatcher) Build(ctx context.Context) ([]Message, int, error) {
	users, err := d.src.ListUsersWithNotifications(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list recipients: %w", err)
	}
	var msgs []Message
	for _, u := range users {
		toks, err := d.src.ListTokens(ctx, u)
		if err != nil {
			return nil, 0, fmt.Errorf("list tokens for %s: %w", u, err)
		}
		for _, t := range toks {
			msgs = append(msgs, Message{UserID: u, Token: t.Token, Title: d.title, Body: d.body})
		}
	}
	return msgs, len(users), nil
}

// Run sends the daily reminder. Send failures are counted and logged; tokens
// the transport reports as gone are deleted for every user.
func (d *Dispatcher) Run(ctx context.Context) (Report, error) {
	msgs, users, err := d.Build(ctx)
	if err != nil {
		return Report{}, err
	}
	rep := Report{Users: users}
	if len(msgs) == 0 {
		d.log.Info("no reminders to send", "users", users)
		return rep, nil
	}

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		jobs = make(chan Message)
	)
	for i := 0; i < min(d.workers, len(msgs)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for m := range jobs {
				sent, pruned := d.deliver(ctx, m)
				mu.Lock()
				if sent {
					rep.Sent++
				} else {
					rep.Failed++
				}
				rep.Pruned += pruned
				mu.Unlock()
			}
		}()
	}

feed:
	for _, m := range msgs {
		select {
		case jobs <- m:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	d.log.Info("reminders dispatched", "users", rep.Users, "sent", rep.Sent, "failed", rep.Failed, "pruned", rep.Pruned)
	if err := ctx.Err(); err != nil {
		return rep, err
	}
	return rep, nil
}

func (d *Dispatcher) deliver(ctx context.Context, m Message) (sent bool, pruned int64) {
	err := d.sender.Send(ctx, m)
	if err == nil {
		return true, 0
	}
	if !errors.Is(err, ErrTokenInvalid) {
		d.log.Error("failed to send reminder", "user", m.UserID, "token", m.Token, "err", err)
		return false, 0
	}
	n, derr := d.src.DeleteTokenEverywhere(ctx, m.Token)
	if derr != nil {
		d.log.Error("failed to prune token", "token", m.Token, "err", derr)
		return false, 0
	}
	d.log.Info("pruned stale token", "token", m.Token, "rows", n)
	return false, n
}
