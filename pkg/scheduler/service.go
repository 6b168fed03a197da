package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/swof/bau-api-go/pkg/models"
)

// RosterProvider supplies the ordered roster the rotation is computed from.
// The order must be stable for a given dataset: it is shuffle input.
type RosterProvider interface {
	FetchRoster(ctx context.Context) ([]models.Member, error)
}

// Service binds a roster provider to a scheduler.
// It holds no state between calls; every lookup fetches the roster again.
type Service struct {
	Roster    RosterProvider
	Scheduler *Scheduler
}

// NewService creates a duty service
func NewService(roster RosterProvider, s *Scheduler) *Service {
	return &Service{Roster: roster, Scheduler: s}
}

// ListMembers returns the roster in provider order
func (svc *Service) ListMembers(ctx context.Context) ([]models.Member, error) {
	members, err := svc.Roster.FetchRoster(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRosterFetch, err)
	}
	return members, nil
}

// Lookup returns the duty for an ISO-8601 date along with the roster it was computed from
func (svc *Service) Lookup(ctx context.Context, date string) (*models.Duty, []models.Member, error) {
	t, err := ParseDate(date)
	if err != nil {
		return nil, nil, err
	}
	return svc.LookupAt(ctx, t)
}

// LookupAt returns the duty covering an instant along with the roster it was computed from
func (svc *Service) LookupAt(ctx context.Context, t time.Time) (*models.Duty, []models.Member, error) {
	members, err := svc.ListMembers(ctx)
	if err != nil {
		return nil, nil, err
	}
	duty, err := svc.Scheduler.DutyAt(t, members)
	if err != nil {
		return nil, members, err
	}
	return duty, members, nil
}

// ScheduleRange returns the duties for every slot starting in [from, to)
func (svc *Service) ScheduleRange(ctx context.Context, from, to time.Time) ([]models.Duty, []models.Member, error) {
	members, err := svc.ListMembers(ctx)
	if err != nil {
		return nil, nil, err
	}
	duties, err := svc.Scheduler.Schedule(from, to, members)
	if err != nil {
		return nil, members, err
	}
	return duties, members, nil
}
