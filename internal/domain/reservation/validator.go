package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrPastBooking      = errors.New("start time cannot be in the past")
	ErrScheduleConflict = errors.New("schedule conflict")
)

// BookedSlot is the slice of an existing confirmed reservation the
// conflict check needs. Callers fetch the set for a room (excluding the
// candidate's own id on updates) and pass it in; the validator itself
// performs no I/O.
type BookedSlot struct {
	ID     uuid.UUID
	Title  string
	Slot   TimeSlot
	UserID uuid.UUID
}

// ConflictError carries the overlapping reservations for client display.
type ConflictError struct {
	Conflicts []BookedSlot
}

func (e *ConflictError) Error() string {
	return ErrScheduleConflict.Error()
}

func (e *ConflictError) Unwrap() error {
	return ErrScheduleConflict
}

// FindConflicts returns every booked slot whose half-open interval
// intersects the candidate's, preserving input order.
func FindConflicts(candidate TimeSlot, existing []BookedSlot) []BookedSlot {
	var conflicts []BookedSlot
	for _, booked := range existing {
		if candidate.Overlaps(booked.Slot) {
			conflicts = append(conflicts, booked)
		}
	}
	return conflicts
}

// ValidateNew decides whether a candidate slot may become a confirmed
// reservation. Checks run in order and short-circuit: range (enforced by
// TimeSlot construction), no booking into the past, then conflicts
// against the room's confirmed set. Room existence and activity are the
// caller's responsibility since they need the catalog.
func ValidateNew(candidate TimeSlot, now time.Time, existing []BookedSlot) error {
	if candidate.StartsBefore(now) {
		return ErrPastBooking
	}
	return validateAgainstSchedule(candidate, existing)
}

// ValidateReschedule validates a time change on an existing reservation.
// The checks are the same as for a new booking; only metadata-only
// updates skip them. The existing set must already exclude the
// reservation being moved so it cannot conflict with itself.
func ValidateReschedule(candidate TimeSlot, now time.Time, existing []BookedSlot) error {
	if candidate.StartsBefore(now) {
		return ErrPastBooking
	}
	return validateAgainstSchedule(candidate, existing)
}

func validateAgainstSchedule(candidate TimeSlot, existing []BookedSlot) error {
	if conflicts := FindConflicts(candidate, existing); len(conflicts) > 0 {
		return &ConflictError{Conflicts: conflicts}
	}
	return nil
}
