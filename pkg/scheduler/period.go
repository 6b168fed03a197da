package scheduler

import (
	"fmt"
	"strings"
	"time"
)

// DefaultSlotDuration is the length of one duty slot: half a day
const DefaultSlotDuration = 12 * time.Hour

// Slot is the position of an instant inside the rotation.
// Periods and slots are counted from the Unix epoch.
type Slot struct {
	Period int64
	Index  int
	Start  time.Time
	End    time.Time
}

// dateLayouts are tried in order; layouts without a zone are read as UTC
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate parses an ISO-8601 date or date-time
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// Calculate returns the period and slot index a date falls in for a team of teamSize.
// A period is exactly long enough for every member to take one slot.
func Calculate(date time.Time, slotDuration time.Duration, teamSize int) (Slot, error) {
	if teamSize < 2 {
		return Slot{}, fmt.Errorf("%w: got %d", ErrInsufficientRoster, teamSize)
	}
	slotMs := slotDuration.Milliseconds()
	if slotMs < 1 {
		return Slot{}, fmt.Errorf("%w: got %s", ErrInvalidSlotDuration, slotDuration)
	}

	ms := date.UnixMilli()
	n := int64(teamSize)
	rawSlot := floorDiv(ms, slotMs)
	start := time.UnixMilli(rawSlot * slotMs).UTC()

	return Slot{
		Period: floorDiv(ms, slotMs*n),
		Index:  int(floorMod(rawSlot, n)),
		Start:  start,
		End:    start.Add(time.Duration(slotMs) * time.Millisecond),
	}, nil
}

// SlotAt is the inverse of Calculate: the slot with the given period and index
func SlotAt(period int64, index int, slotDuration time.Duration, teamSize int) Slot {
	slotMs := slotDuration.Milliseconds()
	raw := period*int64(teamSize) + int64(index)
	start := time.UnixMilli(raw * slotMs).UTC()
	return Slot{
		Period: period,
		Index:  index,
		Start:  start,
		End:    start.Add(time.Duration(slotMs) * time.Millisecond),
	}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}
