//go:build unit || e2e

package builder

import (
	"time"

	reqdto "reservas-backend/internal/handler/dto/request"
	"reservas-backend/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	Title       string
	Description string
	StartsAt    time.Time
	EndsAt      time.Time
	Status      string
	RoomID      uuid.UUID
	RoomName    string
	UserID      uuid.UUID
	Username    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Now().Truncate(time.Second)
	start := now.Add(24 * time.Hour)
	return &ReservationBuilder{
		Title:       "Reuniao de planejamento",
		Description: "Sprint planning",
		StartsAt:    start,
		EndsAt:      start.Add(time.Hour),
		Status:      "confirmed",
		RoomID:      uuid.New(),
		RoomName:    "Sala Alpha",
		UserID:      uuid.New(),
		Username:    "joao",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Build methods
func (r *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	desc := r.Description
	return reqdto.CreateReservationRequest{
		Title:       r.Title,
		Description: &desc,
		StartsAt:    r.StartsAt,
		EndsAt:      r.EndsAt,
		RoomID:      r.RoomID,
	}
}

func (r *ReservationBuilder) BuildUpdateRequestDTO() reqdto.UpdateReservationRequest {
	title := r.Title
	desc := r.Description
	return reqdto.UpdateReservationRequest{
		Title:       &title,
		Description: &desc,
	}
}

func (r *ReservationBuilder) BuildViewQuery() *queries.ReservationView {
	desc := r.Description
	return &queries.ReservationView{
		ID:          uuid.New(),
		Title:       r.Title,
		Description: &desc,
		StartsAt:    r.StartsAt,
		EndsAt:      r.EndsAt,
		Status:      r.Status,
		RoomID:      r.RoomID,
		RoomName:    r.RoomName,
		UserID:      r.UserID,
		Username:    r.Username,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r *ReservationBuilder) BuildListItem() *queries.ReservationListItem {
	return &queries.ReservationListItem{
		ID:        uuid.New(),
		Title:     r.Title,
		StartsAt:  r.StartsAt,
		EndsAt:    r.EndsAt,
		Status:    r.Status,
		RoomID:    r.RoomID,
		RoomName:  r.RoomName,
		UserID:    r.UserID,
		Username:  r.Username,
		CreatedAt: r.CreatedAt,
	}
}

// Fluent builder methods
func (r *ReservationBuilder) WithUserID(userID uuid.UUID) *ReservationBuilder {
	r.UserID = userID
	return r
}

func (r *ReservationBuilder) WithRoomID(roomID uuid.UUID) *ReservationBuilder {
	r.RoomID = roomID
	return r
}

func (r *ReservationBuilder) WithSlot(start, end time.Time) *ReservationBuilder {
	r.StartsAt = start
	r.EndsAt = end
	return r
}

func (r *ReservationBuilder) WithStatus(status string) *ReservationBuilder {
	r.Status = status
	return r
}

func (r *ReservationBuilder) WithTitle(title string) *ReservationBuilder {
	r.Title = title
	return r
}
