package queries

import (
	"context"

	"reservas-backend/internal/domain/room"
	"reservas-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

type RoomViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	List(ctx context.Context, filter RoomFilter) ([]*RoomView, error)
}

type RoomQueries interface {
	GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*RoomView, error)
	List(ctx context.Context, actor shared.Actor, filter RoomFilter) ([]*RoomView, error)
	ListTypes() []string
}

type roomQueriesImpl struct {
	repo RoomViewRepo
}

func NewRoomQueries(repo RoomViewRepo) RoomQueries {
	return &roomQueriesImpl{repo: repo}
}

// GetByID hides inactive rooms from non-admins; to them a soft-deleted
// room is indistinguishable from one that never existed.
func (q *roomQueriesImpl) GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*RoomView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !view.IsActive && !actor.IsAdmin() {
		return nil, ErrRoomNotFound
	}
	return view, nil
}

func (q *roomQueriesImpl) List(ctx context.Context, actor shared.Actor, filter RoomFilter) ([]*RoomView, error) {
	if !actor.IsAdmin() {
		filter.IncludeInactive = false
	}
	return q.repo.List(ctx, filter)
}

func (q *roomQueriesImpl) ListTypes() []string {
	types := make([]string, len(room.KnownTypes))
	copy(types, room.KnownTypes)
	return types
}
