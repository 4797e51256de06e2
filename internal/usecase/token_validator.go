package usecase

import (
	"reservas-backend/internal/domain/user"
	"reservas-backend/internal/pkg/jwt"
	"reservas-backend/internal/usecase/shared"
)

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (shared.Actor, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (shared.Actor, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return shared.Actor{}, err
	}

	level, err := user.NewAccessLevel(claims.AccessLevel)
	if err != nil {
		return shared.Actor{}, err
	}

	return shared.Actor{
		ID:          claims.UserID,
		Username:    claims.Username,
		AccessLevel: level,
	}, nil
}
