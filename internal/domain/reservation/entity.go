package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus = errors.New("invalid reservation status")
)

type Reservation struct {
	id          uuid.UUID
	title       Title
	description Description
	timeSlot    TimeSlot
	status      Status
	roomID      uuid.UUID
	userID      uuid.UUID
	createdAt   time.Time
	updatedAt   time.Time
}

// NewReservation builds a confirmed reservation ready for persistence.
// Temporal and conflict rules live in the Validator; callers must run it
// first.
func NewReservation(title Title, description Description, slot TimeSlot, roomID, userID uuid.UUID) *Reservation {
	return &Reservation{
		id:          uuid.New(),
		title:       title,
		description: description,
		timeSlot:    slot,
		status:      StatusConfirmed,
		roomID:      roomID,
		userID:      userID,
	}
}

func ReconstructReservation(
	id uuid.UUID,
	title Title,
	description Description,
	slot TimeSlot,
	status Status,
	roomID, userID uuid.UUID,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:          id,
		title:       title,
		description: description,
		timeSlot:    slot,
		status:      status,
		roomID:      roomID,
		userID:      userID,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (r *Reservation) Rename(title Title) {
	r.title = title
}

func (r *Reservation) Describe(description Description) {
	r.description = description
}

func (r *Reservation) ChangeStatus(status Status) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	r.status = status
	return nil
}

// Reschedule moves the reservation; validity against the room's calendar
// is the Validator's job.
func (r *Reservation) Reschedule(slot TimeSlot) {
	r.timeSlot = slot
}

// Cancel is idempotent: cancelling a cancelled reservation is a no-op.
// The record persists for audit; only the status changes.
func (r *Reservation) Cancel() {
	r.status = StatusCancelled
}

func (r *Reservation) IsConfirmed() bool {
	return r.status == StatusConfirmed
}

func (r *Reservation) IsCancelled() bool {
	return r.status == StatusCancelled
}

func (r *Reservation) IsOwnedBy(userID uuid.UUID) bool {
	return r.userID == userID
}

func (r *Reservation) ID() uuid.UUID           { return r.id }
func (r *Reservation) Title() Title            { return r.title }
func (r *Reservation) Description() Description { return r.description }
func (r *Reservation) TimeSlot() TimeSlot      { return r.timeSlot }
func (r *Reservation) Status() Status          { return r.status }
func (r *Reservation) RoomID() uuid.UUID       { return r.roomID }
func (r *Reservation) UserID() uuid.UUID       { return r.userID }
func (r *Reservation) CreatedAt() time.Time    { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time    { return r.updatedAt }
