//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"reservas-backend/internal/domain/user"
	reqdto "reservas-backend/internal/handler/dto/request"
	"reservas-backend/internal/infra"
	"reservas-backend/internal/infra/db"
	"reservas-backend/internal/pkg/jwt"
	"reservas-backend/internal/pkg/password"
	"reservas-backend/internal/usecase/commands"
	"reservas-backend/internal/usecase/queries"
	"reservas-backend/internal/usecase/shared"
	queriesmock "reservas-backend/tests/mock/queries"
	sharedmock "reservas-backend/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthCommandsTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockUow       *sharedmock.MockUnitOfWork
	mockTx        *sharedmock.MockTx
	mockUsers     *sharedmock.MockUserRepository
	mockUserViews *queriesmock.MockUserViewRepo
	jwtService    *jwt.Service
	commands      commands.AuthCommands
}

func (s *AuthCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUow = sharedmock.NewMockUnitOfWork(s.mockCtrl)
	s.mockTx = sharedmock.NewMockTx(s.mockCtrl)
	s.mockUsers = sharedmock.NewMockUserRepository(s.mockCtrl)
	s.mockUserViews = queriesmock.NewMockUserViewRepo(s.mockCtrl)
	s.jwtService = jwt.NewService("test-secret", time.Hour)
	s.commands = commands.NewAuthCommands(s.mockUow, s.mockUserViews, s.jwtService)

	s.mockTx.EXPECT().DB().Return(nil).AnyTimes()
	s.mockTx.EXPECT().Users().Return(s.mockUsers).AnyTimes()
}

func (s *AuthCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthCommandsSuite(t *testing.T) {
	suite.Run(t, new(AuthCommandsTestSuite))
}

func (s *AuthCommandsTestSuite) expectWithin() {
	s.mockUow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.mockTx)
		}).Times(1)
}

func (s *AuthCommandsTestSuite) storedCredentials(plainPassword string, active bool) *queries.CredentialsView {
	hash, err := password.HashPassword(plainPassword)
	s.Require().NoError(err)
	return &queries.CredentialsView{
		ID:           uuid.New(),
		Username:     "joao",
		Email:        "joao@example.com",
		PasswordHash: hash,
		AccessLevel:  "user",
		IsActive:     active,
	}
}

func (s *AuthCommandsTestSuite) TestLogin() {
	req := reqdto.LoginRequest{Username: "joao", Password: "Str0ngPass!"}

	s.Run("success: returns a verifiable token and the user view", func() {
		stored := s.storedCredentials(req.Password, true)
		s.mockUserViews.EXPECT().FindCredentialsByUsername(gomock.Any(), "joao").
			Return(stored, nil).Times(1)
		s.mockUserViews.EXPECT().FindByID(gomock.Any(), stored.ID).
			Return(&queries.AuthorizedUserView{ID: stored.ID, Username: stored.Username}, nil).Times(1)

		result, err := s.commands.Login(context.Background(), req)
		s.Require().NoError(err)
		s.NotEmpty(result.Token)

		claims, err := s.jwtService.ValidateToken(result.Token)
		s.Require().NoError(err)
		s.Equal(stored.ID, claims.UserID)
		s.Equal("joao", claims.Username)
	})

	s.Run("error: wrong password yields invalid credentials", func() {
		stored := s.storedCredentials("SomethingElse1!", true)
		s.mockUserViews.EXPECT().FindCredentialsByUsername(gomock.Any(), "joao").
			Return(stored, nil).Times(1)

		_, err := s.commands.Login(context.Background(), req)
		s.ErrorIs(err, commands.ErrInvalidCredentials)
	})

	s.Run("error: unknown user yields the same invalid credentials error", func() {
		s.mockUserViews.EXPECT().FindCredentialsByUsername(gomock.Any(), "joao").
			Return(nil, infra.WrapRepoErr("user not found", errors.New("no rows"), infra.KindNotFound)).Times(1)

		_, err := s.commands.Login(context.Background(), req)
		s.ErrorIs(err, commands.ErrInvalidCredentials)
	})

	s.Run("error: deactivated account cannot log in even with the right password", func() {
		stored := s.storedCredentials(req.Password, false)
		s.mockUserViews.EXPECT().FindCredentialsByUsername(gomock.Any(), "joao").
			Return(stored, nil).Times(1)

		_, err := s.commands.Login(context.Background(), req)
		s.ErrorIs(err, commands.ErrUserInactive)
	})
}

func (s *AuthCommandsTestSuite) TestRegister() {
	req := reqdto.RegisterRequest{Username: "maria", Email: "maria@example.com", Password: "Str0ngPass!"}

	s.Run("success: hashes the password and stores the user", func() {
		s.expectWithin()
		s.mockUsers.EXPECT().UsernameTaken(gomock.Any(), gomock.Any(), "maria").Return(false, nil).Times(1)
		s.mockUsers.EXPECT().EmailTaken(gomock.Any(), gomock.Any(), "maria@example.com").Return(false, nil).Times(1)

		var createdID uuid.UUID
		s.mockUsers.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.DBTX, u *user.User) (uuid.UUID, error) {
				s.NotEqual(req.Password, u.PasswordHash(), "password must never be stored in clear")
				s.NoError(password.ComparePassword(u.PasswordHash(), req.Password))
				createdID = u.ID()
				return u.ID(), nil
			}).Times(1)
		s.mockUserViews.EXPECT().FindByID(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
				s.Equal(createdID, id)
				return &queries.AuthorizedUserView{ID: id, Username: "maria", AccessLevel: "user"}, nil
			}).Times(1)

		view, err := s.commands.Register(context.Background(), req)
		s.Require().NoError(err)
		s.Equal("user", view.AccessLevel, "self-registration always yields the default level")
	})

	s.Run("error: taken username is rejected before insert", func() {
		s.expectWithin()
		s.mockUsers.EXPECT().UsernameTaken(gomock.Any(), gomock.Any(), "maria").Return(true, nil).Times(1)

		_, err := s.commands.Register(context.Background(), req)
		s.ErrorIs(err, commands.ErrDuplicateUsername)
	})

	s.Run("error: registered email is rejected before insert", func() {
		s.expectWithin()
		s.mockUsers.EXPECT().UsernameTaken(gomock.Any(), gomock.Any(), "maria").Return(false, nil).Times(1)
		s.mockUsers.EXPECT().EmailTaken(gomock.Any(), gomock.Any(), "maria@example.com").Return(true, nil).Times(1)

		_, err := s.commands.Register(context.Background(), req)
		s.ErrorIs(err, commands.ErrDuplicateEmail)
	})

	s.Run("error: a unique index violation racing the pre-checks maps to duplicate", func() {
		s.expectWithin()
		s.mockUsers.EXPECT().UsernameTaken(gomock.Any(), gomock.Any(), "maria").Return(false, nil).Times(1)
		s.mockUsers.EXPECT().EmailTaken(gomock.Any(), gomock.Any(), "maria@example.com").Return(false, nil).Times(1)
		s.mockUsers.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(uuid.Nil, infra.WrapRepoErr("insert user", errors.New("unique violation"), infra.KindDuplicateKey)).Times(1)

		_, err := s.commands.Register(context.Background(), req)
		s.ErrorIs(err, commands.ErrDuplicateUsername)
	})
}
