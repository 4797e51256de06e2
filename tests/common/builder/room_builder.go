//go:build unit || e2e

package builder

import (
	"time"

	reqdto "reservas-backend/internal/handler/dto/request"
	"reservas-backend/internal/usecase/queries"

	"github.com/google/uuid"
)

type RoomBuilder struct {
	Name      string
	Capacity  int
	Location  string
	RoomType  string
	Equipment []string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewRoomBuilder() *RoomBuilder {
	now := time.Now().Truncate(time.Second)
	return &RoomBuilder{
		Name:      "Sala Alpha",
		Capacity:  10,
		Location:  "2o andar",
		RoomType:  "reuniao",
		Equipment: []string{"projetor", "quadro"},
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Build methods
func (r *RoomBuilder) BuildCreateRequestDTO() reqdto.CreateRoomRequest {
	return reqdto.CreateRoomRequest{
		Name:      r.Name,
		Capacity:  r.Capacity,
		Location:  r.Location,
		RoomType:  r.RoomType,
		Equipment: r.Equipment,
	}
}

func (r *RoomBuilder) BuildUpdateRequestDTO() reqdto.UpdateRoomRequest {
	name := r.Name
	capacity := r.Capacity
	return reqdto.UpdateRoomRequest{
		Name:     &name,
		Capacity: &capacity,
	}
}

func (r *RoomBuilder) BuildViewQuery() *queries.RoomView {
	return &queries.RoomView{
		ID:        uuid.New(),
		Name:      r.Name,
		Capacity:  int32(r.Capacity),
		Location:  r.Location,
		RoomType:  r.RoomType,
		Equipment: r.Equipment,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Fluent builder methods
func (r *RoomBuilder) WithName(name string) *RoomBuilder {
	r.Name = name
	return r
}

func (r *RoomBuilder) WithCapacity(capacity int) *RoomBuilder {
	r.Capacity = capacity
	return r
}

func (r *RoomBuilder) WithRoomType(roomType string) *RoomBuilder {
	r.RoomType = roomType
	return r
}

func (r *RoomBuilder) Inactive() *RoomBuilder {
	r.IsActive = false
	return r
}
