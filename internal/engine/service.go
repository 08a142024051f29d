package engine

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"gyst/internal/storage"
)

// Store is the persistence the Service needs: a gateway plus a way to run a
// group of gateway calls atomically.
type Store interface {
	storage.Gateway
	WithTx(ctx context.Context, fn func(g storage.Gateway) error) error
}

// Clock returns the current time.
type Clock func() time.Time

type Service struct {
	store Store
	clock Clock
	loc   *time.Location
	log   *slog.Logger
	newID func() string
}

type Option func(*Service)

// WithClock overrides the time source (tests).
func WithClock(c Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithLocation sets the zone whose calendar days and months define periods.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithIDGenerator overrides task id generation (tests).
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		clock: time.Now,
		loc:   time.Local,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		newID: newTaskID,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) Store() Store { return s.store }

func (s *Service) Location() *time.Location { return s.loc }

func (s *Service) now() time.Time {
	return s.clock().In(s.loc)
}

func requireUser(userID string) (string, error) {
	u := strings.TrimSpace(userID)
	if u == "" {
		return "", ErrUnauthenticated
	}
	return u, nil
}

func normalizeName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", ErrInvalidName
	}
	return n, nil
}

func intPtr(v int) *int              { return &v }
func timePtr(v time.Time) *time.Time { return &v }
func strPtr(v string) *string        { return &v }
