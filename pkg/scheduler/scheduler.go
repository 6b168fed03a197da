package scheduler

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/swof/bau-api-go/pkg/models"
)

// MaxScheduleSlots caps the number of slots a single Schedule call may compute
const MaxScheduleSlots = 1000

// Scheduler handles the logic of picking the pair on duty for a date
type Scheduler struct {
	SlotDuration time.Duration
	Strategy     Strategy
}

// NewScheduler creates a new scheduler instance.
// Zero values fall back to half-day slots and the triple-adjacent strategy.
func NewScheduler(slotDuration time.Duration, strategy Strategy) *Scheduler {
	if slotDuration == 0 {
		slotDuration = DefaultSlotDuration
	}
	if strategy == nil {
		strategy = NewTripleAdjacent(nil)
	}
	return &Scheduler{
		SlotDuration: slotDuration,
		Strategy:     strategy,
	}
}

// ValidateRoster checks that a roster can be rotated
func ValidateRoster(members []models.Member) error {
	if len(members) < 2 {
		return fmt.Errorf("%w: got %d", ErrInsufficientRoster, len(members))
	}
	seen := make(map[string]bool, len(members))
	for _, m := range members {
		if strings.TrimSpace(m.ID) == "" {
			return fmt.Errorf("%w: entry for %q", ErrBlankMemberID, m.Name)
		}
		if seen[m.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateMember, m.ID)
		}
		seen[m.ID] = true
	}
	return nil
}

// Window concatenates the rotations of period-1, period and period+1.
// Slot i of the period is covered by window[n+i] and window[n+i+1].
func (s *Scheduler) Window(members []models.Member, period int64) ([]models.Member, error) {
	if err := ValidateRoster(members); err != nil {
		return nil, err
	}
	n := len(members)
	window := make([]models.Member, 0, 3*n)
	for p := period - 1; p <= period+1; p++ {
		window = append(window, s.Strategy.Rotation(members, p)...)
	}
	return window, nil
}

// ComputePair returns the pair on duty for a slot.
// The last slot of a period wraps into the next period's rotation.
func (s *Scheduler) ComputePair(members []models.Member, slot Slot) (models.Pair, error) {
	window, err := s.Window(members, slot.Period)
	if err != nil {
		return models.Pair{}, err
	}
	n := len(members)
	if slot.Index < 0 || slot.Index >= n {
		return models.Pair{}, fmt.Errorf("slot index %d out of range for %d engineers", slot.Index, n)
	}

	pair := models.Pair{First: window[n+slot.Index], Second: window[n+slot.Index+1]}
	if pair.First.ID == pair.Second.ID {
		return models.Pair{}, fmt.Errorf("%w: %q at period %d slot %d", ErrSeamCollision, pair.First.ID, slot.Period, slot.Index)
	}
	return pair, nil
}

// DutyAt returns the duty covering an instant
func (s *Scheduler) DutyAt(date time.Time, members []models.Member) (*models.Duty, error) {
	if err := ValidateRoster(members); err != nil {
		return nil, err
	}
	slot, err := Calculate(date, s.SlotDuration, len(members))
	if err != nil {
		return nil, err
	}
	pair, err := s.ComputePair(members, slot)
	if err != nil {
		return nil, err
	}
	return &models.Duty{
		Date:      date,
		Period:    slot.Period,
		SlotIndex: slot.Index,
		Start:     slot.Start,
		End:       slot.End,
		Pair:      pair,
		Strategy:  s.Strategy.Name(),
	}, nil
}

// GetDutyPair parses an ISO-8601 date and returns the duty covering it
func (s *Scheduler) GetDutyPair(date string, members []models.Member) (*models.Duty, error) {
	t, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	return s.DutyAt(t, members)
}

// Schedule returns one duty per slot starting in [from, to)
func (s *Scheduler) Schedule(from, to time.Time, members []models.Member) ([]models.Duty, error) {
	if !to.After(from) {
		return nil, fmt.Errorf("%w: %s is not after %s", ErrInvalidRange, to.Format(time.RFC3339), from.Format(time.RFC3339))
	}
	if err := ValidateRoster(members); err != nil {
		return nil, err
	}
	first, err := Calculate(from, s.SlotDuration, len(members))
	if err != nil {
		return nil, err
	}

	n := len(members)
	raw := first.Period*int64(n) + int64(first.Index)
	if first.Start.Before(from) {
		raw++
	}

	// rotations are cached per call only; nothing outlives the request
	rotations := make(map[int64][]models.Member)
	rotation := func(p int64) []models.Member {
		if r, ok := rotations[p]; ok {
			return r
		}
		r := s.Strategy.Rotation(members, p)
		rotations[p] = r
		return r
	}

	var duties []models.Duty
	for ; ; raw++ {
		slot := SlotAt(floorDiv(raw, int64(n)), int(floorMod(raw, int64(n))), s.SlotDuration, n)
		if !slot.Start.Before(to) {
			break
		}
		if len(duties) == MaxScheduleSlots {
			return nil, fmt.Errorf("%w: more than %d slots", ErrRangeTooLarge, MaxScheduleSlots)
		}

		cur := rotation(slot.Period)
		second := rotation(slot.Period + 1)[0]
		if slot.Index+1 < n {
			second = cur[slot.Index+1]
		}
		pair := models.Pair{First: cur[slot.Index], Second: second}
		if pair.First.ID == pair.Second.ID {
			return nil, fmt.Errorf("%w: %q at period %d slot %d", ErrSeamCollision, pair.First.ID, slot.Period, slot.Index)
		}

		duties = append(duties, models.Duty{
			Date:      slot.Start,
			Period:    slot.Period,
			SlotIndex: slot.Index,
			Start:     slot.Start,
			End:       slot.End,
			Pair:      pair,
			Strategy:  s.Strategy.Name(),
		})
	}
	return duties, nil
}

// Load counts how many slots each member is on duty in duties.
// Every roster member is present in the result, even with zero slots.
func Load(duties []models.Duty, members []models.Member) map[string]int {
	load := make(map[string]int, len(members))
	for _, m := range members {
		load[m.ID] = 0
	}
	for _, d := range duties {
		load[d.Pair.First.ID]++
		load[d.Pair.Second.ID]++
	}
	return load
}

// FairnessScore returns a percentage (0-100) representing how evenly
// duty slots are distributed. 100% is perfectly fair (Standard Deviation = 0).
func FairnessScore(load map[string]int) float64 {
	if len(load) == 0 {
		return 100.0
	}

	var sum float64
	for _, v := range load {
		sum += float64(v)
	}

	if sum == 0 {
		return 100.0
	}

	mean := sum / float64(len(load))

	var varianceSum float64
	for _, v := range load {
		diff := float64(v) - mean
		varianceSum += diff * diff
	}
	stdDev := math.Sqrt(varianceSum / float64(len(load)))

	// 100% means SD is 0. 0% means SD is >= mean.
	score := (1.0 - (stdDev / mean)) * 100.0
	if score < 0 {
		return 0.0
	}
	return score
}
