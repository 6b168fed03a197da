package scheduler

import (
	"fmt"
	"strings"

	"github.com/swof/bau-api-go/pkg/models"
)

// Strategy names accepted by StrategyByName
const (
	StrategySplitTeam      = "split"
	StrategyTripleAdjacent = "triple"
)

// Strategy lays out the rotation of a period.
//
// Rotation must return a permutation of members that depends only on
// members and period. Consecutive rotations must never put the same member
// at the last position of one period and the first position of the next.
type Strategy interface {
	Name() string
	Rotation(members []models.Member, period int64) []models.Member
}

// StrategyByName returns the strategy registered under name.
// A nil randFn uses NewRand.
func StrategyByName(name string, randFn RandFunc) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StrategyTripleAdjacent, "triple-adjacent":
		return NewTripleAdjacent(randFn), nil
	case StrategySplitTeam, "split-team":
		return NewSplitTeam(randFn), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// SplitTeam shuffles the roster once with the team size as seed, splits it
// into two halves and reshuffles each half per period.
//
// The last slot of a period always belongs to the second half and the first
// slot of the next period to the first half, so the seam never repeats a
// member. With four or more members the first two and last two positions
// are in different halves too.
type SplitTeam struct {
	rand RandFunc
}

var _ Strategy = (*SplitTeam)(nil)

// NewSplitTeam creates a split-team strategy
func NewSplitTeam(randFn RandFunc) *SplitTeam {
	if randFn == nil {
		randFn = NewRand
	}
	return &SplitTeam{rand: randFn}
}

// Name implements Strategy
func (s *SplitTeam) Name() string { return StrategySplitTeam }

// Rotation implements Strategy
func (s *SplitTeam) Rotation(members []models.Member, period int64) []models.Member {
	n := len(members)
	base := Shuffle(s.rand(Seed(seedLabelTeam, int64(n))), members)

	seed := Seed(seedLabelPeriod, period)
	first := Shuffle(s.rand(seed), base[:n/2])
	second := Shuffle(s.rand(seed), base[n/2:])

	return append(first, second...)
}

// TripleAdjacent shuffles each period independently with the period as seed
// and then repairs the head of the rotation against the tail of the previous
// period's shuffle.
//
// The repair never moves the last two positions, so the tail a period hands
// to its successor is always its raw shuffle and no history beyond one
// period is needed.
//
//   - 2 members: the order is fixed by the team-size seed for every period.
//   - 3-4 members: the first member is swapped away from the previous last
//     member, so a seam pair is never the same person twice.
//   - 5+ members: additionally nobody serves more than two slots in a row
//     across the seam.
type TripleAdjacent struct {
	rand RandFunc
}

var _ Strategy = (*TripleAdjacent)(nil)

// NewTripleAdjacent creates a triple-adjacent strategy
func NewTripleAdjacent(randFn RandFunc) *TripleAdjacent {
	if randFn == nil {
		randFn = NewRand
	}
	return &TripleAdjacent{rand: randFn}
}

// Name implements Strategy
func (t *TripleAdjacent) Name() string { return StrategyTripleAdjacent }

func (t *TripleAdjacent) raw(members []models.Member, period int64) []models.Member {
	return Shuffle(t.rand(Seed(seedLabelPeriod, period)), members)
}

// Rotation implements Strategy
func (t *TripleAdjacent) Rotation(members []models.Member, period int64) []models.Member {
	n := len(members)
	if n == 2 {
		return Shuffle(t.rand(Seed(seedLabelTeam, 2)), members)
	}

	cur := t.raw(members, period)
	if n < 2 {
		return cur
	}
	prev := t.raw(members, period-1)
	last := prev[n-1].ID

	if n < 5 {
		if cur[0].ID == last {
			cur[0], cur[1] = cur[1], cur[0]
		}
		return cur
	}

	beforeLast := prev[n-2].ID
	// positions [n-2, n) stay put
	movable := n - 2
	if cur[0].ID == last || cur[0].ID == beforeLast {
		for j := 1; j < movable; j++ {
			if cur[j].ID != last && cur[j].ID != beforeLast {
				cur[0], cur[j] = cur[j], cur[0]
				break
			}
		}
	}
	if cur[1].ID == last {
		for j := 2; j < movable; j++ {
			if cur[j].ID != last {
				cur[1], cur[j] = cur[j], cur[1]
				break
			}
		}
	}

	return cur
}

// LimitsConsecutiveSlots reports whether the named strategy guarantees that
// no engineer of a team of teamSize serves more than two slots in a row.
func LimitsConsecutiveSlots(name string, teamSize int) bool {
	switch name {
	case StrategySplitTeam:
		return teamSize >= 4
	case StrategyTripleAdjacent:
		return teamSize >= 5
	default:
		return false
	}
}
