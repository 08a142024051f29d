package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the dispatcher on a cron schedule in a fixed time zone.
type Scheduler struct {
	cron     *cron.Cron
	schedule cron.Schedule
	d        *Dispatcher
	log      *slog.Logger
	ctx      context.Context
}

// NewScheduler parses a standard five-field cron spec such as "0 11 * * *".
func NewScheduler(d *Dispatcher, spec string, loc *time.Location, log *slog.Logger) (*Scheduler, error) {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = slog.Default()
	}
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("reminder schedule %q: %w", spec, err)
	}
	s := &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		schedule: sched,
		d:        d,
		log:      log,
		ctx:      context.Background(),
	}
	s.cron.Schedule(sched, cron.FuncJob(s.tick))
	return s, nil
}

// Start runs jobs in the background until ctx is done or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	s.ctx = ctx
	s.cron.Start()
	s.log.Info("reminder scheduler started", "next", s.Next(time.Now()))
	go func() {
		<-ctx.Done()
		s.Stop()
	}()
}

// Stop halts scheduling and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Next returns the first run after t, in the scheduler's zone.
func (s *Scheduler) Next(t time.Time) time.Time {
	return s.schedule.Next(t.In(s.cron.Location()))
}

func (s *Scheduler) tick() {
	if _, err := s.d.Run(s.ctx); err != nil {
		s.log.Error("reminder run failed", "err", err)
	}
}
