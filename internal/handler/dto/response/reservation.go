package response

import (
	"time"

	"reservas-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
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

type ReservationItemResponse struct {
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

type ReservationDetailResponse struct {
	Reservation ReservationResponse `json:"reserva"`
}

type ReservationListResponse struct {
	Reservations []ReservationItemResponse `json:"reservas"`
	Total        int                       `json:"total"`
}

type ConflictResponse struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"titulo"`
	StartsAt time.Time `json:"data_inicio"`
	EndsAt   time.Time `json:"data_fim"`
	UserID   uuid.UUID `json:"usuario_id"`
}

type AvailabilityResponse struct {
	RoomID    uuid.UUID          `json:"sala_id"`
	StartsAt  time.Time          `json:"data_inicio"`
	EndsAt    time.Time          `json:"data_fim"`
	Available bool               `json:"disponivel"`
	Conflicts []ConflictResponse `json:"conflitos"`
}

func FromReservationView(view *queries.ReservationView) ReservationDetailResponse {
	var resp ReservationResponse
	_ = copier.Copy(&resp, view)
	return ReservationDetailResponse{Reservation: resp}
}

func FromReservationList(items []*queries.ReservationListItem) ReservationListResponse {
	result := make([]ReservationItemResponse, len(items))
	for i, item := range items {
		_ = copier.Copy(&result[i], item)
	}
	return ReservationListResponse{Reservations: result, Total: len(result)}
}

func FromAvailabilityView(view *queries.AvailabilityView) AvailabilityResponse {
	conflicts := make([]ConflictResponse, len(view.Conflicts))
	for i, c := range view.Conflicts {
		_ = copier.Copy(&conflicts[i], &c)
	}
	return AvailabilityResponse{
		RoomID:    view.RoomID,
		StartsAt:  view.StartsAt,
		EndsAt:    view.EndsAt,
		Available: view.Available,
		Conflicts: conflicts,
	}
}
