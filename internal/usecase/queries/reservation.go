package queries

import (
	"context"
	"time"

	"reservas-backend/internal/domain/reservation"
	"reservas-backend/internal/pkg/errs"
	"reservas-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrRoomNotFound        = errs.New("room not found")
	ErrNotAllowed          = errs.New("not allowed")
)

type ReservationViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	List(ctx context.Context, filter ReservationFilter) ([]*ReservationListItem, error)
	FindBookedSlots(ctx context.Context, roomID uuid.UUID, excludeID *uuid.UUID) ([]reservation.BookedSlot, error)
}

type ReservationQueries interface {
	GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*ReservationView, error)
	List(ctx context.Context, actor shared.Actor, filter ReservationFilter) ([]*ReservationListItem, error)
	CheckAvailability(ctx context.Context, roomID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (*AvailabilityView, error)
}

type reservationQueriesImpl struct {
	repo     ReservationViewRepo
	roomRepo RoomViewRepo
}

func NewReservationQueries(repo ReservationViewRepo, roomRepo RoomViewRepo) ReservationQueries {
	return &reservationQueriesImpl{repo: repo, roomRepo: roomRepo}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*ReservationView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && view.UserID != actor.ID {
		return nil, ErrNotAllowed
	}
	return view, nil
}

// List scopes non-admin callers to their own reservations regardless of
// the requested filter.
func (q *reservationQueriesImpl) List(ctx context.Context, actor shared.Actor, filter ReservationFilter) ([]*ReservationListItem, error) {
	if !actor.IsAdmin() {
		owner := actor.ID
		filter.OwnerID = &owner
	}
	return q.repo.List(ctx, filter)
}

// CheckAvailability is advisory: it answers from the live calendar
// without locking, so a booking racing this call can still win the slot.
// The booking command re-validates inside its transaction.
func (q *reservationQueriesImpl) CheckAvailability(ctx context.Context, roomID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (*AvailabilityView, error) {
	slot, err := reservation.NewTimeSlot(start, end)
	if err != nil {
		return nil, err
	}

	roomView, err := q.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	// A deactivated room has no calendar to answer for
	if !roomView.IsActive {
		return nil, ErrRoomNotFound
	}

	booked, err := q.repo.FindBookedSlots(ctx, roomID, excludeID)
	if err != nil {
		return nil, err
	}

	conflicts := reservation.FindConflicts(slot, booked)
	items := make([]ConflictItem, len(conflicts))
	for i, c := range conflicts {
		items[i] = ConflictItem{
			ID:       c.ID,
			Title:    c.Title,
			StartsAt: c.Slot.Start(),
			EndsAt:   c.Slot.End(),
			UserID:   c.UserID,
		}
	}

	return &AvailabilityView{
		RoomID:    roomID,
		StartsAt:  slot.Start(),
		EndsAt:    slot.End(),
		Available: len(items) == 0,
		Conflicts: items,
	}, nil
}
