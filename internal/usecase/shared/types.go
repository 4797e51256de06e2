package shared

import (
	"reservas-backend/internal/domain/user"

	"github.com/google/uuid"
)

// Actor identifies the authenticated caller of a command or query.
// Built by the auth middleware from validated token claims.
type Actor struct {
	ID          uuid.UUID
	Username    string
	AccessLevel user.AccessLevel
}

func (a Actor) IsAdmin() bool {
	return a.AccessLevel.IsAdmin()
}
