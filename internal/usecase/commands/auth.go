package commands

import (
	"context"
	"log/slog"

	"reservas-backend/internal/domain/user"
	reqdto "reservas-backend/internal/handler/dto/request"
	"reservas-backend/internal/infra"
	"reservas-backend/internal/pkg/errs"
	"reservas-backend/internal/pkg/jwt"
	"reservas-backend/internal/pkg/password"
	"reservas-backend/internal/usecase/queries"
	"reservas-backend/internal/usecase/shared"
)

var (
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrUserInactive         = errs.New("user inactive")
	ErrDuplicateUsername    = errs.New("username already taken")
	ErrDuplicateEmail       = errs.New("email already registered")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
)

type LoginResult struct {
	Token string
	User  *queries.AuthorizedUserView
}

type AuthCommands interface {
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
	Register(ctx context.Context, req reqdto.RegisterRequest) (*queries.AuthorizedUserView, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	userViews  queries.UserViewRepo
	jwtService *jwt.Service
}

func NewAuthCommands(uow shared.UnitOfWork, userViews queries.UserViewRepo, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		userViews:  userViews,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	credentials, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	// Unknown user and wrong password produce the same error so the
	// endpoint cannot be used to enumerate accounts.
	stored, err := a.userViews.FindCredentialsByUsername(ctx, credentials.Username.Value())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrInvalidCredentials)
		}
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	if err := password.ComparePassword(stored.PasswordHash, credentials.Password.Value()); err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	if !stored.IsActive {
		return nil, ErrUserInactive
	}

	level, err := user.NewAccessLevel(stored.AccessLevel)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	token, err := a.jwtService.GenerateToken(stored.ID, stored.Username, level)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	view, err := a.userViews.FindByID(ctx, stored.ID)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	slog.Info("user logged in", "user_id", stored.ID, "username", stored.Username)

	return &LoginResult{Token: token, User: view}, nil
}

func (a *authCommandsImpl) Register(ctx context.Context, req reqdto.RegisterRequest) (*queries.AuthorizedUserView, error) {
	username, err := user.NewUsername(req.Username)
	if err != nil {
		return nil, err
	}
	email, err := user.NewEmail(req.Email)
	if err != nil {
		return nil, err
	}
	pw, err := user.NewPassword(req.Password)
	if err != nil {
		return nil, err
	}

	hash, err := password.HashPassword(pw.Value())
	if err != nil {
		return nil, errs.Wrap(err, "failed to hash password")
	}

	newUser := user.NewUser(username, email, hash, user.LevelUser)

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		taken, err := tx.Users().UsernameTaken(ctx, tx.DB(), username.Value())
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateUsername
		}

		taken, err = tx.Users().EmailTaken(ctx, tx.DB(), email.Value())
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateEmail
		}

		_, err = tx.Users().Create(ctx, tx.DB(), newUser)
		return err
	})
	if err != nil {
		// The unique indexes catch inserts racing the pre-checks.
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Mark(err, ErrDuplicateUsername)
		}
		return nil, err
	}

	slog.Info("user registered", "user_id", newUser.ID(), "username", username.Value())

	return a.userViews.FindByID(ctx, newUser.ID())
}
