package scheduler

import "errors"

// Sentinel errors returned by the rotation engine and the duty service.
var (
	// ErrInvalidDate is returned when a date string cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInsufficientRoster is returned when fewer than two members are available.
	ErrInsufficientRoster = errors.New("at least two engineers are required")

	// ErrRosterFetch is returned when the roster provider fails.
	ErrRosterFetch = errors.New("unable to fetch roster")

	// ErrBlankMemberID is returned when a roster entry has an empty id.
	ErrBlankMemberID = errors.New("engineer id is required")

	// ErrDuplicateMember is returned when two roster entries share an id.
	ErrDuplicateMember = errors.New("duplicate engineer id")

	// ErrInvalidSlotDuration is returned for slot durations under one millisecond.
	ErrInvalidSlotDuration = errors.New("slot duration must be at least 1ms")

	// ErrInvalidRange is returned when a schedule range ends before it starts.
	ErrInvalidRange = errors.New("invalid schedule range")

	// ErrRangeTooLarge is returned when a schedule range covers too many slots.
	ErrRangeTooLarge = errors.New("schedule range too large")

	// ErrSeamCollision is returned if a strategy ever yields the same member twice in a pair.
	ErrSeamCollision = errors.New("seam collision")

	// ErrUnknownStrategy is returned for an unrecognised seam strategy name.
	ErrUnknownStrategy = errors.New("unknown seam strategy")
)
