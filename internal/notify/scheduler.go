package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Scheduler arms one timer per future alert. Timers are independent of each
// other: there is no ordering between them and no retry when delivery fails.
type Scheduler struct {
	notifier   Notifier
	permission func() Permission
	logger     zerolog.Logger
	now        func() time.Time

	mu     sync.Mutex
	timers []*time.Timer
	wg     sync.WaitGroup
}

// NewScheduler creates a scheduler that delivers through n. permission is
// consulted each time a timer fires, not when it is armed.
func NewScheduler(n Notifier, permission func() Permission, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		notifier:   n,
		permission: permission,
		logger:     logger,
		now:        time.Now,
	}
}

// Schedule arms a timer for every alert that is still in the future and
// returns how many were armed. Alerts at or before now are dropped.
func (s *Scheduler) Schedule(ctx context.Context, alerts []Alert) int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	armed := 0
	for _, a := range alerts {
		diff := a.At.Sub(now)
		if diff <= 0 {
			continue
		}

		a := a
		s.wg.Add(1)
		s.timers = append(s.timers, time.AfterFunc(diff, func() {
			defer s.wg.Done()
			s.fire(ctx, a)
		}))
		armed++

		s.logger.Debug().
			Str("prayer", a.Prayer).
			Time("at", a.At).
			Dur("in", diff).
			Msg("reminder armed")
	}
	return armed
}

// Wait blocks until every armed timer has fired, or until ctx is done, in
// which case the timers still pending are discarded.
func (s *Scheduler) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.Stop()
		<-done
		return ctx.Err()
	}
}

// Stop discards every timer that has not fired yet.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.timers {
		if t.Stop() {
			s.wg.Done()
		}
	}
	s.timers = nil
}

func (s *Scheduler) fire(ctx context.Context, a Alert) {
	if p := s.permission(); p != PermissionGranted {
		s.logger.Debug().Str("prayer", a.Prayer).Str("permission", string(p)).Msg("reminder suppressed")
		return
	}

	if err := s.notifier.Notify(ctx, NewNotification(a.Prayer, a.At)); err != nil {
		s.logger.Warn().Err(err).Str("prayer", a.Prayer).Msg("failed to deliver reminder")
		return
	}
	s.logger.Debug().Str("prayer", a.Prayer).Msg("reminder delivered")
}
