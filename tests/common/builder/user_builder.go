//go:build unit || e2e

package builder

import (
	"time"

	reqdto "reservas-backend/internal/handler/dto/request"
	"reservas-backend/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID          uuid.UUID
	Username    string
	Email       string
	Password    string
	AccessLevel string
	IsActive    bool
	CreatedAt   time.Time
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:          uuid.New(),
		Username:    "joao",
		Email:       "joao@example.com",
		Password:    "Str0ngPass!",
		AccessLevel: "user",
		IsActive:    true,
		CreatedAt:   time.Now().Truncate(time.Second),
	}
}

// Build methods
func (u *UserBuilder) BuildLoginRequestDTO() reqdto.LoginRequest {
	return reqdto.LoginRequest{
		Username: u.Username,
		Password: u.Password,
	}
}

func (u *UserBuilder) BuildRegisterRequestDTO() reqdto.RegisterRequest {
	return reqdto.RegisterRequest{
		Username: u.Username,
		Email:    u.Email,
		Password: u.Password,
	}
}

func (u *UserBuilder) BuildViewQuery() *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		AccessLevel: u.AccessLevel,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
	}
}

// Fluent builder methods
func (u *UserBuilder) WithUsername(username string) *UserBuilder {
	u.Username = username
	return u
}

func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) AsAdmin() *UserBuilder {
	u.AccessLevel = "admin"
	return u
}

func (u *UserBuilder) Inactive() *UserBuilder {
	u.IsActive = false
	return u
}
