package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"reservas-backend/internal/domain/reservation"
	reqdto "reservas-backend/internal/handler/dto/request"
	"reservas-backend/internal/infra"
	"reservas-backend/internal/observability/metrics"
	"reservas-backend/internal/pkg/clock"
	"reservas-backend/internal/pkg/errs"
	"reservas-backend/internal/usecase/queries"
	"reservas-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrRoomNotFound        = errs.New("room not found")
	ErrRoomUnavailable     = errs.New("room is not available for booking")
	ErrReservationNotFound = errs.New("reservation not found")
	ErrNotOwner            = errs.New("reservation belongs to another user")
)

type ReservationCommands interface {
	Create(ctx context.Context, actor shared.Actor, req reqdto.CreateReservationRequest) (*queries.ReservationView, error)
	Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req reqdto.UpdateReservationRequest) (*queries.ReservationView, error)
	Cancel(ctx context.Context, actor shared.Actor, id uuid.UUID) error
}

type reservationCommandsImpl struct {
	uow   shared.UnitOfWork
	views queries.ReservationViewRepo
	clock clock.Clock
}

func NewReservationCommands(uow shared.UnitOfWork, views queries.ReservationViewRepo, clk clock.Clock) ReservationCommands {
	return &reservationCommandsImpl{
		uow:   uow,
		views: views,
		clock: clk,
	}
}

// Create books a room slot. The room row is locked before the conflict
// check, so two requests for the same room serialize; the calendar the
// validator sees cannot change before the insert commits.
func (r *reservationCommandsImpl) Create(ctx context.Context, actor shared.Actor, req reqdto.CreateReservationRequest) (*queries.ReservationView, error) {
	title, err := reservation.NewTitle(req.Title)
	if err != nil {
		return nil, err
	}
	slot, err := reservation.NewTimeSlot(req.StartsAt, req.EndsAt)
	if err != nil {
		return nil, err
	}

	var description reservation.Description
	if req.Description != nil {
		description = reservation.NewDescription(strings.TrimSpace(*req.Description))
	}

	res := reservation.NewReservation(title, description, slot, req.RoomID, actor.ID)

	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		room, err := tx.Rooms().LockByID(ctx, tx.DB(), req.RoomID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrRoomNotFound)
			}
			return err
		}
		if err := room.EnsureBookable(); err != nil {
			return errs.Mark(err, ErrRoomUnavailable)
		}

		existing, err := tx.Reservations().FindConfirmedByRoom(ctx, tx.DB(), req.RoomID, nil)
		if err != nil {
			return err
		}
		if err := reservation.ValidateNew(slot, r.clock.Now(), existing); err != nil {
			return err
		}

		_, err = tx.Reservations().Create(ctx, tx.DB(), res)
		return err
	})
	if err != nil {
		return nil, markConstraintConflict(err)
	}

	metrics.ObserveReservationCreated()
	slog.Info("reservation created",
		"reservation_id", res.ID(),
		"room_id", req.RoomID,
		"user_id", actor.ID)

	return r.views.FindByID(ctx, res.ID())
}

func (r *reservationCommandsImpl) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req reqdto.UpdateReservationRequest) (*queries.ReservationView, error) {
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().FindByID(ctx, tx.DB(), id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrReservationNotFound)
			}
			return err
		}
		if !actor.IsAdmin() && !res.IsOwnedBy(actor.ID) {
			return ErrNotOwner
		}

		if req.Title != nil {
			title, err := reservation.NewTitle(*req.Title)
			if err != nil {
				return err
			}
			res.Rename(title)
		}
		if req.Description != nil {
			res.Describe(reservation.NewDescription(strings.TrimSpace(*req.Description)))
		}
		if req.Status != nil {
			status, err := reservation.NewStatus(*req.Status)
			if err != nil {
				return err
			}
			if err := res.ChangeStatus(status); err != nil {
				return err
			}
		}

		if req.ChangesSlot() {
			start := res.TimeSlot().Start()
			end := res.TimeSlot().End()
			if req.StartsAt != nil {
				start = *req.StartsAt
			}
			if req.EndsAt != nil {
				end = *req.EndsAt
			}
			slot, err := reservation.NewTimeSlot(start, end)
			if err != nil {
				return err
			}

			// Same lock order as Create: room first, then calendar.
			if _, err := tx.Rooms().LockByID(ctx, tx.DB(), res.RoomID()); err != nil {
				return err
			}
			resID := res.ID()
			existing, err := tx.Reservations().FindConfirmedByRoom(ctx, tx.DB(), res.RoomID(), &resID)
			if err != nil {
				return err
			}
			if err := reservation.ValidateReschedule(slot, r.clock.Now(), existing); err != nil {
				return err
			}
			res.Reschedule(slot)
		}

		return tx.Reservations().Update(ctx, tx.DB(), res)
	})
	if err != nil {
		return nil, markConstraintConflict(err)
	}

	return r.views.FindByID(ctx, id)
}

// Cancel soft-deletes: the record stays with status cancelled and the
// slot is released. Cancelling twice succeeds.
func (r *reservationCommandsImpl) Cancel(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	return r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().FindByID(ctx, tx.DB(), id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrReservationNotFound)
			}
			return err
		}
		if !actor.IsAdmin() && !res.IsOwnedBy(actor.ID) {
			return ErrNotOwner
		}

		res.Cancel()
		return tx.Reservations().Update(ctx, tx.DB(), res)
	})
}

// markConstraintConflict translates an exclusion constraint violation
// into the same error the validator raises, so callers see one conflict
// shape regardless of which layer caught the overlap.
func markConstraintConflict(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, reservation.ErrScheduleConflict) {
		metrics.ObserveReservationConflict()
		return err
	}
	if infra.IsKind(err, infra.KindConflict) {
		metrics.ObserveReservationConflict()
		return errs.Mark(err, reservation.ErrScheduleConflict)
	}
	return err
}
