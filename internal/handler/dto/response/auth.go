package response

import (
	"time"

	"reservas-backend/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	AccessLevel string    `json:"nivel_acesso"`
	IsActive    bool      `json:"ativo"`
	CreatedAt   time.Time `json:"created_at"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type RegisterResponse struct {
	User UserResponse `json:"user"`
}

type MeResponse struct {
	User UserResponse `json:"user"`
}

type VerifyResponse struct {
	Valid bool          `json:"valid"`
	User  *UserResponse `json:"user,omitempty"`
}

func FromUserView(view *queries.AuthorizedUserView) UserResponse {
	return UserResponse{
		ID:          view.ID,
		Username:    view.Username,
		Email:       view.Email,
		AccessLevel: view.AccessLevel,
		IsActive:    view.IsActive,
		CreatedAt:   view.CreatedAt,
	}
}
