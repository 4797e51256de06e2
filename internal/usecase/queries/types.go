package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ReservationView struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"titulo"`
	Description *string   `json:"descricao,omitempty"`
	StartsAt    time.Time `json:"data_inicio"`
	EndsAt      time.Time `json:"data_fim"`
	Status      string    `json:"status"`
	RoomID      uuid.UUID `json:"sala_id"`
	RoomName    string    `json:"sala_nome"`
	UserID      uuid.UUID `json:"usuario_id"`
	Username    string    `json:"usuario_nome"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ReservationListItem struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"titulo"`
	StartsAt  time.Time `json:"data_inicio"`
	EndsAt    time.Time `json:"data_fim"`
	Status    string    `json:"status"`
	RoomID    uuid.UUID `json:"sala_id"`
	RoomName  string    `json:"sala_nome"`
	UserID    uuid.UUID `json:"usuario_id"`
	Username  string    `json:"usuario_nome"`
	CreatedAt time.Time `json:"created_at"`
}

type RoomView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"nome"`
	Capacity  int32     `json:"capacidade"`
	Location  string    `json:"localizacao"`
	RoomType  string    `json:"tipo"`
	Equipment []string  `json:"equipamentos"`
	IsActive  bool      `json:"ativa"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AuthorizedUserView struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	AccessLevel string    `json:"nivel_acesso"`
	IsActive    bool      `json:"ativo"`
	CreatedAt   time.Time `json:"created_at"`
}

// CredentialsView carries the stored password hash for login checks.
// It never crosses the handler boundary.
type CredentialsView struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	AccessLevel  string
	IsActive     bool
}

// ConflictItem is one reservation blocking a requested slot.
type ConflictItem struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"titulo"`
	StartsAt time.Time `json:"data_inicio"`
	EndsAt   time.Time `json:"data_fim"`
	UserID   uuid.UUID `json:"usuario_id"`
}

type AvailabilityView struct {
	RoomID    uuid.UUID      `json:"sala_id"`
	StartsAt  time.Time      `json:"data_inicio"`
	EndsAt    time.Time      `json:"data_fim"`
	Available bool           `json:"disponivel"`
	Conflicts []ConflictItem `json:"conflitos"`
}

// ReservationFilter narrows reservation listings. Nil fields are
// ignored. Non-admin callers always get OwnerID forced to themselves.
type ReservationFilter struct {
	OwnerID *uuid.UUID
	RoomID  *uuid.UUID
	Status  *string
	From    *time.Time
	Until   *time.Time
}

type RoomFilter struct {
	RoomType        *string
	MinCapacity     *int32
	Equipment       *string
	IncludeInactive bool
}
