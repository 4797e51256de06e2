//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"reservas-backend/internal/handler/api"
	resdto "reservas-backend/internal/handler/dto/response"
	"reservas-backend/internal/usecase/commands"
	"reservas-backend/internal/usecase/shared"
	"reservas-backend/tests/common/builder"
	"reservas-backend/tests/common/httptest"
	"reservas-backend/tests/common/testutil"
	commandsmock "reservas-backend/tests/mock/commands"
	queriesmock "reservas-backend/tests/mock/queries"
	usecasemock "reservas-backend/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockCtrl           *gomock.Controller
	mockCommands       *commandsmock.MockAuthCommands
	mockQueries        *queriesmock.MockUserQueries
	mockTokenValidator *usecasemock.MockTokenValidator
	handler            *api.AuthHandler
	actorID            uuid.UUID
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	s.mockTokenValidator = usecasemock.NewMockTokenValidator(s.mockCtrl)
	s.handler = api.NewAuthHandler(s.mockCommands, s.mockQueries, s.mockTokenValidator)
	s.actorID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("auth_actor", shared.Actor{ID: s.actorID, Username: "joao", AccessLevel: "user"})
		c.Next()
	}

	s.router.POST("/auth/login", s.handler.Login)
	s.router.POST("/auth/register", s.handler.Register)
	s.router.POST("/auth/verify", s.handler.Verify)
	s.router.GET("/auth/me", authMiddleware, s.handler.Me)
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/auth/login"
	user := builder.NewUserBuilder()
	reqBody := user.BuildLoginRequestDTO()

	s.Run("success: returns 200 with token and user", func() {
		result := &commands.LoginResult{Token: "signed-token", User: user.BuildViewQuery()}
		s.mockCommands.EXPECT().Login(gomock.Any(), reqBody).Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var resp resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal("signed-token", resp.Token)
		s.Equal(user.Username, resp.User.Username)
	})

	s.Run("error: returns 401 for wrong credentials", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrInvalidCredentials).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid username or password")
	})

	s.Run("error: returns 401 for inactive account with the same message", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrUserInactive).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid username or password")
	})

	s.Run("error: returns 400 when a required field is missing", func() {
		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("password", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *AuthHandlerTestSuite) TestRegister() {
	url := "/auth/register"
	user := builder.NewUserBuilder()
	reqBody := user.BuildRegisterRequestDTO()

	s.Run("success: returns 201 with the created user", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), reqBody).
			Return(user.BuildViewQuery(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var resp resdto.RegisterResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.Equal(user.Email, resp.User.Email)
		s.Equal("user", resp.User.AccessLevel)
	})

	s.Run("error: returns 400 for a taken username", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrDuplicateUsername).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Username already taken")
	})

	s.Run("error: returns 400 for a registered email", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrDuplicateEmail).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Email already registered")
	})

	s.Run("error: returns 500 for unexpected failures", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("connection refused")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

func (s *AuthHandlerTestSuite) TestMe() {
	url := "/auth/me"

	s.Run("success: returns the authenticated user's profile", func() {
		view := builder.NewUserBuilder().BuildViewQuery()
		view.ID = s.actorID
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.actorID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var resp resdto.MeResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(s.actorID, resp.User.ID)
	})

	s.Run("error: returns 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

func (s *AuthHandlerTestSuite) TestVerify() {
	url := "/auth/verify"

	s.Run("success: returns valid with the token's user", func() {
		view := builder.NewUserBuilder().BuildViewQuery()
		actor := shared.Actor{ID: view.ID, Username: view.Username, AccessLevel: "user"}
		s.mockTokenValidator.EXPECT().ValidateToken("good-token").Return(actor, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"token": "good-token"}, "")

		var resp resdto.VerifyResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.True(resp.Valid)
		s.NotNil(resp.User)
	})

	s.Run("error: returns 401 invalid for a bad token", func() {
		s.mockTokenValidator.EXPECT().ValidateToken("bad-token").
			Return(shared.Actor{}, errors.New("token is invalid")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"token": "bad-token"}, "")

		s.Equal(http.StatusUnauthorized, rec.Code)
		s.Contains(rec.Body.String(), `"valid":false`)
	})

	s.Run("error: returns 401 invalid when the body has no token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}
