package scheduler

import (
	"math/rand"
	"strconv"

	"github.com/swof/bau-api-go/pkg/models"
	"github.com/zeebo/xxh3"
)

// Seed labels keep the team-size shuffle and the per-period shuffles on
// separate random streams even when the numbers coincide.
const (
	seedLabelTeam   = "team"
	seedLabelPeriod = "period"
)

// RandFunc builds the pseudo-random generator used for a seed.
// The same seed must always produce the same sequence.
type RandFunc func(seed int64) *rand.Rand

// NewRand is the default RandFunc. math/rand sources are stable for a given seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed)) // #nosec G404 -- seeded for reproducible rotations
}

// Seed derives an int64 seed from a label and a number
func Seed(label string, n int64) int64 {
	return int64(xxh3.HashString(label + ":" + strconv.FormatInt(n, 10)))
}

// Shuffle returns a permuted copy of members using the modern Fisher-Yates algorithm.
// members is left untouched.
func Shuffle(rng *rand.Rand, members []models.Member) []models.Member {
	out := make([]models.Member, len(members))
	copy(out, members)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
