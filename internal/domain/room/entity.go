package room

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyRoomName    = errors.New("room name cannot be empty")
	ErrRoomNameTooLong  = errors.New("room name is too long (max 100 characters)")
	ErrInvalidCapacity  = errors.New("room capacity must be positive")
	ErrEmptyLocation    = errors.New("room location cannot be empty")
	ErrEmptyRoomType    = errors.New("room type cannot be empty")
	ErrRoomHasBookings  = errors.New("room has future confirmed reservations")
	ErrRoomNotBookable  = errors.New("room is inactive")
)

const MaxRoomNameLength = 100

// KnownTypes mirrors the categories the booking UI offers. Type is stored
// as free text, so this list is advisory, not a constraint.
var KnownTypes = []string{
	"Reunião",
	"Auditório",
	"Laboratório",
	"Sala de Treinamento",
	"Escritório",
	"Coworking",
}

type Room struct {
	id        uuid.UUID
	name      string
	capacity  int
	location  string
	roomType  string
	equipment Equipment
	isActive  bool
	createdAt time.Time
	updatedAt time.Time
}

func NewRoom(name string, capacity int, location, roomType string, equipment Equipment) (*Room, error) {
	if err := validateFields(name, capacity, location, roomType); err != nil {
		return nil, err
	}

	return &Room{
		id:        uuid.New(),
		name:      strings.TrimSpace(name),
		capacity:  capacity,
		location:  strings.TrimSpace(location),
		roomType:  strings.TrimSpace(roomType),
		equipment: equipment,
		isActive:  true,
	}, nil
}

func ReconstructRoom(
	id uuid.UUID,
	name string,
	capacity int,
	location, roomType string,
	equipment Equipment,
	isActive bool,
	createdAt, updatedAt time.Time,
) *Room {
	return &Room{
		id:        id,
		name:      name,
		capacity:  capacity,
		location:  location,
		roomType:  roomType,
		equipment: equipment,
		isActive:  isActive,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func validateFields(name string, capacity int, location, roomType string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyRoomName
	}
	if len(name) > MaxRoomNameLength {
		return ErrRoomNameTooLong
	}
	if capacity <= 0 {
		return ErrInvalidCapacity
	}
	if strings.TrimSpace(location) == "" {
		return ErrEmptyLocation
	}
	if strings.TrimSpace(roomType) == "" {
		return ErrEmptyRoomType
	}
	return nil
}

// UpdateDetails replaces the room's describable attributes after
// validating them as a set.
func (r *Room) UpdateDetails(name string, capacity int, location, roomType string, equipment Equipment) error {
	if err := validateFields(name, capacity, location, roomType); err != nil {
		return err
	}
	r.name = strings.TrimSpace(name)
	r.capacity = capacity
	r.location = strings.TrimSpace(location)
	r.roomType = strings.TrimSpace(roomType)
	r.equipment = equipment
	return nil
}

// EnsureBookable rejects booking attempts on a deactivated room.
func (r *Room) EnsureBookable() error {
	if !r.isActive {
		return ErrRoomNotBookable
	}
	return nil
}

// Deactivate soft-deletes the room. futureConfirmed is the number of
// confirmed reservations starting after now; deactivation is refused
// while any remain.
func (r *Room) Deactivate(futureConfirmed int) error {
	if futureConfirmed > 0 {
		return ErrRoomHasBookings
	}
	r.isActive = false
	return nil
}

func (r *Room) ID() uuid.UUID        { return r.id }
func (r *Room) Name() string         { return r.name }
func (r *Room) Capacity() int        { return r.capacity }
func (r *Room) Location() string     { return r.location }
func (r *Room) RoomType() string     { return r.roomType }
func (r *Room) Equipment() Equipment { return r.equipment }
func (r *Room) IsActive() bool       { return r.isActive }
func (r *Room) CreatedAt() time.Time { return r.createdAt }
func (r *Room) UpdatedAt() time.Time { return r.updatedAt }
