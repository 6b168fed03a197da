package scheduler

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swof/bau-api-go/pkg/models"
)

// zeroSource makes every Fisher-Yates draw return 0
type zeroSource struct{}

func (zeroSource) Int63() int64 { return 0 }
func (zeroSource) Seed(int64)   {}

func zeroRand(int64) *rand.Rand { return rand.New(zeroSource{}) }

func team(ids ...string) []models.Member {
	out := make([]models.Member, len(ids))
	for i, id := range ids {
		out[i] = models.Member{ID: id, Name: "Engineer " + id}
	}
	return out
}

func teamOf(n int) []models.Member {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("e%02d", i)
	}
	return team(ids...)
}

func ids(members []models.Member) []string {
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.ID
	}
	return out
}

func TestShuffle(t *testing.T) {
	t.Run("zero draws give a known permutation", func(t *testing.T) {
		got := Shuffle(zeroRand(0), team("A", "B", "C", "D"))
		require.Equal(t, []string{"B", "C", "D", "A"}, ids(got))
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		in := team("A", "B", "C", "D", "E")
		_ = Shuffle(NewRand(42), in)
		require.Equal(t, []string{"A", "B", "C", "D", "E"}, ids(in))
	})

	t.Run("same seed gives the same permutation", func(t *testing.T) {
		in := teamOf(9)
		a := Shuffle(NewRand(Seed(seedLabelPeriod, 17)), in)
		b := Shuffle(NewRand(Seed(seedLabelPeriod, 17)), in)
		require.Equal(t, a, b)
	})

	t.Run("returns a permutation", func(t *testing.T) {
		in := teamOf(11)
		got := Shuffle(NewRand(7), in)
		require.ElementsMatch(t, ids(in), ids(got))
	})

	t.Run("different seeds spread permutations", func(t *testing.T) {
		in := teamOf(6)
		seen := make(map[string]bool)
		for p := int64(0); p < 50; p++ {
			seen[fmt.Sprint(ids(Shuffle(NewRand(Seed(seedLabelPeriod, p)), in)))] = true
		}
		require.Greater(t, len(seen), 25)
	})

	t.Run("every position is reachable", func(t *testing.T) {
		in := teamOf(5)
		firsts := make(map[string]int)
		for p := int64(0); p < 500; p++ {
			firsts[Shuffle(NewRand(Seed(seedLabelPeriod, p)), in)[0].ID]++
		}
		require.Len(t, firsts, 5)
		for id, count := range firsts {
			require.Greater(t, count, 50, "member %s led only %d of 500 shuffles", id, count)
		}
	})

	t.Run("handles empty and single rosters", func(t *testing.T) {
		require.Empty(t, Shuffle(NewRand(1), nil))
		require.Equal(t, []string{"A"}, ids(Shuffle(NewRand(1), team("A"))))
	})
}

func TestSeed(t *testing.T) {
	require.Equal(t, Seed(seedLabelPeriod, 3), Seed(seedLabelPeriod, 3))
	require.NotEqual(t, Seed(seedLabelPeriod, 3), Seed(seedLabelPeriod, 4))
	require.NotEqual(t, Seed(seedLabelPeriod, 4), Seed(seedLabelTeam, 4))
}
