package request

type CreateRoomRequest struct {
	Name      string   `json:"nome" binding:"required"`
	Capacity  int      `json:"capacidade" binding:"required"`
	Location  string   `json:"localizacao" binding:"required"`
	RoomType  string   `json:"tipo" binding:"required"`
	Equipment []string `json:"equipamentos,omitempty"`
}

type UpdateRoomRequest struct {
	Name      *string   `json:"nome,omitempty"`
	Capacity  *int      `json:"capacidade,omitempty"`
	Location  *string   `json:"localizacao,omitempty"`
	RoomType  *string   `json:"tipo,omitempty"`
	Equipment *[]string `json:"equipamentos,omitempty"`
}
