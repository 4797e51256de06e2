package user

import (
	"time"

	"github.com/google/uuid"
)

// User entity. Registration and authentication only; users are never
// deleted, just deactivated.
type User struct {
	id           uuid.UUID
	username     Username
	email        Email
	passwordHash string
	accessLevel  AccessLevel
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(username Username, email Email, passwordHash string, level AccessLevel) *User {
	return &User{
		id:           uuid.New(),
		username:     username,
		email:        email,
		passwordHash: passwordHash,
		accessLevel:  level,
		isActive:     true,
	}
}

func ReconstructUser(
	id uuid.UUID,
	username Username,
	email Email,
	passwordHash string,
	level AccessLevel,
	isActive bool,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:           id,
		username:     username,
		email:        email,
		passwordHash: passwordHash,
		accessLevel:  level,
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u *User) ID() uuid.UUID            { return u.id }
func (u *User) Username() Username       { return u.username }
func (u *User) Email() Email             { return u.email }
func (u *User) PasswordHash() string     { return u.passwordHash }
func (u *User) AccessLevel() AccessLevel { return u.accessLevel }
func (u *User) IsActive() bool           { return u.isActive }
func (u *User) CreatedAt() time.Time     { return u.createdAt }
func (u *User) UpdatedAt() time.Time     { return u.updatedAt }
