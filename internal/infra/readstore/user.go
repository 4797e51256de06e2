package readstore

import (
	"context"

	"reservas-backend/internal/infra"
	"reservas-backend/internal/infra/db"
	"reservas-backend/internal/pkg/pgconv"
	"reservas-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

const userViewSQL = `
SELECT id, username, email, nivel_acesso, ativo, created_at
FROM users
WHERE id = $1`

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var (
		view      queries.AuthorizedUserView
		createdAt pgtype.Timestamptz
	)

	err := r.db.QueryRow(ctx, userViewSQL, id).Scan(
		&view.ID, &view.Username, &view.Email, &view.AccessLevel, &view.IsActive, &createdAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	return &view, nil
}

const credentialsSQL = `
SELECT id, username, email, password_hash, nivel_acesso, ativo
FROM users
WHERE username = $1`

// FindCredentialsByUsername backs the login flow. The hash stays inside
// the usecase layer.
func (r *UserReadStore) FindCredentialsByUsername(ctx context.Context, username string) (*queries.CredentialsView, error) {
	var view queries.CredentialsView

	err := r.db.QueryRow(ctx, credentialsSQL, username).Scan(
		&view.ID, &view.Username, &view.Email, &view.PasswordHash, &view.AccessLevel, &view.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user credentials", err)
	}
	return &view, nil
}
