package repository

import (
	"context"

	"reservas-backend/internal/domain/user"
	"reservas-backend/internal/infra"
	"reservas-backend/internal/infra/db"

	"github.com/google/uuid"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

const createUserSQL = `
INSERT INTO users (id, username, email, password_hash, nivel_acesso, ativo)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

func (r *UserRepository) Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createUserSQL,
		u.ID(),
		u.Username().Value(),
		u.Email().Value(),
		u.PasswordHash(),
		u.AccessLevel().String(),
		u.IsActive(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create user", err)
	}
	return id, nil
}

const usernameTakenSQL = `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`
const emailTakenSQL = `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`

func (r *UserRepository) UsernameTaken(ctx context.Context, tx db.DBTX, username string) (bool, error) {
	var taken bool
	if err := tx.QueryRow(ctx, usernameTakenSQL, username).Scan(&taken); err != nil {
		return false, infra.WrapRepoErr("failed to check username", err)
	}
	return taken, nil
}

func (r *UserRepository) EmailTaken(ctx context.Context, tx db.DBTX, email string) (bool, error) {
	var taken bool
	if err := tx.QueryRow(ctx, emailTakenSQL, email).Scan(&taken); err != nil {
		return false, infra.WrapRepoErr("failed to check email", err)
	}
	return taken, nil
}
