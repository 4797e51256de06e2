package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	Title       string    `json:"titulo" binding:"required"`
	Description *string   `json:"descricao,omitempty"`
	StartsAt    time.Time `json:"data_inicio" binding:"required"`
	EndsAt      time.Time `json:"data_fim" binding:"required"`
	RoomID      uuid.UUID `json:"sala_id" binding:"required"`
}

// UpdateReservationRequest is a partial update; nil fields keep their
// current value. Providing either endpoint of the slot triggers a full
// reschedule validation.
type UpdateReservationRequest struct {
	Title       *string    `json:"titulo,omitempty"`
	Description *string    `json:"descricao,omitempty"`
	StartsAt    *time.Time `json:"data_inicio,omitempty"`
	EndsAt      *time.Time `json:"data_fim,omitempty"`
	Status      *string    `json:"status,omitempty"`
}

func (r UpdateReservationRequest) ChangesSlot() bool {
	return r.StartsAt != nil || r.EndsAt != nil
}
