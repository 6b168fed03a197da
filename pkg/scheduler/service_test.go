package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/swof/bau-api-go/pkg/models"
)

type fakeRoster struct {
	members []models.Member
	err     error
	calls   int
}

func (f *fakeRoster) FetchRoster(context.Context) ([]models.Member, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Member, len(f.members))
	copy(out, f.members)
	return out, nil
}

func TestService_ListMembers(t *testing.T) {
	t.Run("returns provider order on every call", func(t *testing.T) {
		src := &fakeRoster{members: team("D", "A", "C", "B")}
		svc := NewService(src, NewScheduler(0, nil))

		first, err := svc.ListMembers(context.Background())
		require.NoError(t, err)
		second, err := svc.ListMembers(context.Background())
		require.NoError(t, err)

		require.Equal(t, []string{"D", "A", "C", "B"}, ids(first))
		require.Equal(t, first, second)
		require.Equal(t, 2, src.calls)
	})

	t.Run("wraps provider failures", func(t *testing.T) {
		boom := errors.New("table scan failed")
		svc := NewService(&fakeRoster{err: boom}, NewScheduler(0, nil))

		_, err := svc.ListMembers(context.Background())
		require.ErrorIs(t, err, ErrRosterFetch)
		require.ErrorIs(t, err, boom)
	})
}

func TestService_Lookup(t *testing.T) {
	src := &fakeRoster{members: team("A", "B", "C", "D")}
	svc := NewService(src, NewScheduler(12*time.Hour, NewTripleAdjacent(zeroRand)))

	t.Run("fetches the roster for every lookup", func(t *testing.T) {
		src.calls = 0
		duty, members, err := svc.Lookup(context.Background(), "1970-01-01T00:00:00Z")
		require.NoError(t, err)
		require.Equal(t, []string{"B", "C"}, duty.Pair.IDs())
		require.Equal(t, []string{"A", "B", "C", "D"}, ids(members))

		_, _, err = svc.Lookup(context.Background(), "1970-01-01T00:00:00Z")
		require.NoError(t, err)
		require.Equal(t, 2, src.calls)
	})

	t.Run("rejects bad dates before fetching", func(t *testing.T) {
		src.calls = 0
		_, _, err := svc.Lookup(context.Background(), "tomorrow")
		require.ErrorIs(t, err, ErrInvalidDate)
		require.Zero(t, src.calls)
	})

	t.Run("reports small rosters", func(t *testing.T) {
		small := NewService(&fakeRoster{members: team("A")}, NewScheduler(0, nil))
		_, members, err := small.Lookup(context.Background(), "2024-01-15")
		require.ErrorIs(t, err, ErrInsufficientRoster)
		require.Len(t, members, 1)
	})

	t.Run("propagates fetch errors", func(t *testing.T) {
		broken := NewService(&fakeRoster{err: context.DeadlineExceeded}, NewScheduler(0, nil))
		_, _, err := broken.Lookup(context.Background(), "2024-01-15")
		require.ErrorIs(t, err, ErrRosterFetch)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("schedules a range", func(t *testing.T) {
		from := time.Unix(0, 0).UTC()
		duties, members, err := svc.ScheduleRange(context.Background(), from, from.Add(24*time.Hour))
		require.NoError(t, err)
		require.Len(t, members, 4)
		require.Len(t, duties, 2)
		require.Equal(t, []string{"B", "C"}, duties[0].Pair.IDs())
		require.Equal(t, []string{"C", "D"}, duties[1].Pair.IDs())
	})
}
