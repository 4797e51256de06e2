package shared

import (
	"context"
	"time"

	"reservas-backend/internal/domain/reservation"
	"reservas-backend/internal/domain/room"
	"reservas-backend/internal/domain/user"
	"reservas-backend/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
}

type Tx interface {
	Users() UserRepository
	Rooms() RoomRepository
	Reservations() ReservationRepository
	DB() db.DBTX
}

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error)
	UsernameTaken(ctx context.Context, tx db.DBTX, username string) (bool, error)
	EmailTaken(ctx context.Context, tx db.DBTX, email string) (bool, error)
}

type RoomRepository interface {
	Create(ctx context.Context, tx db.DBTX, rm *room.Room) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, rm *room.Room) error
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*room.Room, error)
	// LockByID must be used by any command that writes to the room's
	// calendar, so concurrent bookings on one room serialize.
	LockByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*room.Room, error)
	NameTaken(ctx context.Context, tx db.DBTX, name string, excludeID *uuid.UUID) (bool, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*reservation.Reservation, error)
	FindConfirmedByRoom(ctx context.Context, tx db.DBTX, roomID uuid.UUID, excludeID *uuid.UUID) ([]reservation.BookedSlot, error)
	CountFutureConfirmedByRoom(ctx context.Context, tx db.DBTX, roomID uuid.UUID, after time.Time) (int, error)
}
