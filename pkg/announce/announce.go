// Package announce logs the engineers on duty on a cron schedule.
package announce

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/swof/bau-api-go/pkg/scheduler"
)

const defaultTimeout = 10 * time.Second

// Announcer logs the current duty pair each time its cron spec fires
type Announcer struct {
	Service *scheduler.Service
	Log     zerolog.Logger
	Timeout time.Duration
	Now     func() time.Time

	mu     sync.Mutex
	parser cron.Parser
	c      *cron.Cron
}

// New creates an announcer. Call Start to schedule it.
func New(svc *scheduler.Service, log zerolog.Logger) *Announcer {
	return &Announcer{
		Service: svc,
		Log:     log.With().Str("component", "announce").Logger(),
		Timeout: defaultTimeout,
		parser:  cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
	}
}

func (a *Announcer) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// Announce looks up the pair on duty now and logs it
func (a *Announcer) Announce(ctx context.Context) error {
	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}

	duty, members, err := a.Service.LookupAt(ctx, a.now())
	if err != nil {
		a.Log.Error().Err(err).Msg("duty announcement failed")
		return err
	}

	a.Log.Info().
		Str("first", duty.Pair.First.Name).
		Str("second", duty.Pair.Second.Name).
		Strs("baus", duty.Pair.IDs()).
		Int64("period", duty.Period).
		Int("slot", duty.SlotIndex).
		Time("until", duty.End).
		Int("engineers", len(members)).
		Msg("on duty")
	return nil
}

// Start schedules Announce on spec, evaluated in UTC
func (a *Announcer) Start(ctx context.Context, spec string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.c != nil {
		return nil
	}

	c := cron.New(cron.WithParser(a.parser), cron.WithLocation(time.UTC))
	if _, err := c.AddFunc(spec, func() { _ = a.Announce(ctx) }); err != nil {
		return fmt.Errorf("invalid announce schedule %q: %w", spec, err)
	}
	c.Start()
	a.c = c
	a.Log.Info().Str("spec", spec).Msg("announcer started")
	return nil
}

// Stop halts the cron loop and waits for a running announcement
func (a *Announcer) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.c == nil {
		return
	}
	<-a.c.Stop().Done()
	a.c = nil
}
