package commands

import (
	"context"
	"log/slog"

	"reservas-backend/internal/domain/room"
	reqdto "reservas-backend/internal/handler/dto/request"
	"reservas-backend/internal/infra"
	"reservas-backend/internal/pkg/clock"
	"reservas-backend/internal/pkg/errs"
	"reservas-backend/internal/usecase/queries"
	"reservas-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrDuplicateRoomName = errs.New("room name already in use")

type RoomCommands interface {
	Create(ctx context.Context, req reqdto.CreateRoomRequest) (*queries.RoomView, error)
	Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateRoomRequest) (*queries.RoomView, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type roomCommandsImpl struct {
	uow   shared.UnitOfWork
	views queries.RoomViewRepo
	clock clock.Clock
}

func NewRoomCommands(uow shared.UnitOfWork, views queries.RoomViewRepo, clk clock.Clock) RoomCommands {
	return &roomCommandsImpl{
		uow:   uow,
		views: views,
		clock: clk,
	}
}

func (r *roomCommandsImpl) Create(ctx context.Context, req reqdto.CreateRoomRequest) (*queries.RoomView, error) {
	newRoom, err := room.NewRoom(req.Name, req.Capacity, req.Location, req.RoomType, room.NewEquipment(req.Equipment))
	if err != nil {
		return nil, err
	}

	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		taken, err := tx.Rooms().NameTaken(ctx, tx.DB(), newRoom.Name(), nil)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateRoomName
		}

		_, err = tx.Rooms().Create(ctx, tx.DB(), newRoom)
		return err
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Mark(err, ErrDuplicateRoomName)
		}
		return nil, err
	}

	slog.Info("room created", "room_id", newRoom.ID(), "name", newRoom.Name())

	return r.views.FindByID(ctx, newRoom.ID())
}

func (r *roomCommandsImpl) Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateRoomRequest) (*queries.RoomView, error) {
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rm, err := tx.Rooms().FindByID(ctx, tx.DB(), id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrRoomNotFound)
			}
			return err
		}

		name := rm.Name()
		capacity := rm.Capacity()
		location := rm.Location()
		roomType := rm.RoomType()
		equipment := rm.Equipment()

		if req.Name != nil {
			name = *req.Name
		}
		if req.Capacity != nil {
			capacity = *req.Capacity
		}
		if req.Location != nil {
			location = *req.Location
		}
		if req.RoomType != nil {
			roomType = *req.RoomType
		}
		if req.Equipment != nil {
			equipment = room.NewEquipment(*req.Equipment)
		}

		if req.Name != nil && name != rm.Name() {
			taken, err := tx.Rooms().NameTaken(ctx, tx.DB(), name, &id)
			if err != nil {
				return err
			}
			if taken {
				return ErrDuplicateRoomName
			}
		}

		if err := rm.UpdateDetails(name, capacity, location, roomType, equipment); err != nil {
			return err
		}
		return tx.Rooms().Update(ctx, tx.DB(), rm)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Mark(err, ErrDuplicateRoomName)
		}
		return nil, err
	}

	return r.views.FindByID(ctx, id)
}

// Deactivate soft-deletes a room. The row is locked so a booking racing
// the deletion either lands before the count or waits and finds the
// room inactive.
func (r *roomCommandsImpl) Deactivate(ctx context.Context, id uuid.UUID) error {
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rm, err := tx.Rooms().LockByID(ctx, tx.DB(), id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrRoomNotFound)
			}
			return err
		}

		futureConfirmed, err := tx.Reservations().CountFutureConfirmedByRoom(ctx, tx.DB(), id, r.clock.Now())
		if err != nil {
			return err
		}
		if err := rm.Deactivate(futureConfirmed); err != nil {
			return err
		}
		return tx.Rooms().Update(ctx, tx.DB(), rm)
	})
	if err != nil {
		return err
	}

	slog.Info("room deactivated", "room_id", id)
	return nil
}
