package response

import (
	"time"

	"reservas-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type RoomResponse struct {
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

type RoomDetailResponse struct {
	Room RoomResponse `json:"sala"`
}

type RoomListResponse struct {
	Rooms []RoomResponse `json:"salas"`
	Total int            `json:"total"`
}

type RoomTypesResponse struct {
	Types []string `json:"tipos"`
}

func FromRoomView(view *queries.RoomView) RoomDetailResponse {
	var resp RoomResponse
	_ = copier.Copy(&resp, view)
	if resp.Equipment == nil {
		resp.Equipment = []string{}
	}
	return RoomDetailResponse{Room: resp}
}

func FromRoomList(views []*queries.RoomView) RoomListResponse {
	result := make([]RoomResponse, len(views))
	for i, view := range views {
		result[i] = FromRoomView(view).Room
	}
	return RoomListResponse{Rooms: result, Total: len(result)}
}
