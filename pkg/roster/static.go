package roster

import (
	"context"
	"sync"

	"github.com/swof/bau-api-go/pkg/models"
	"github.com/swof/bau-api-go/pkg/scheduler"
)

// Static implements a roster source with a fixed list of engineers.
type Static struct {
	mu      sync.RWMutex
	members []models.Member
}

var _ scheduler.RosterProvider = (*Static)(nil)

// NewStatic creates a new static roster source.
//
// The order of members is kept as given; it feeds the rotation shuffle.
//
// Example:
//
//	src := roster.NewStatic([]models.Member{{ID: "e1", Name: "Ada"}, {ID: "e2", Name: "Linus"}})
//	svc := scheduler.NewService(src, scheduler.NewScheduler(0, nil))
func NewStatic(members []models.Member) *Static {
	s := &Static{}
	s.Update(members)
	return s
}

// FetchRoster returns a copy of the static list.
func (s *Static) FetchRoster(_ context.Context) ([]models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Member, len(s.members))
	copy(result, s.members)

	return result, nil
}

// Update replaces the roster.
func (s *Static) Update(members []models.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.members = make([]models.Member, len(members))
	copy(s.members, members)
}
