package api

import (
	"errors"
	"net/http"

	"reservas-backend/internal/domain/user"
	reqdto "reservas-backend/internal/handler/dto/request"
	resdto "reservas-backend/internal/handler/dto/response"
	"reservas-backend/internal/handler/httperr"
	"reservas-backend/internal/handler/middleware"
	"reservas-backend/internal/usecase"
	"reservas-backend/internal/usecase/commands"
	"reservas-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authCommands   commands.AuthCommands
	userQueries    queries.UserQueries
	tokenValidator usecase.TokenValidator
}

func NewAuthHandler(authCommands commands.AuthCommands, userQueries queries.UserQueries, tokenValidator usecase.TokenValidator) *AuthHandler {
	return &AuthHandler{
		authCommands:   authCommands,
		userQueries:    userQueries,
		tokenValidator: tokenValidator,
	}
}

// @Summary Login
// @Description Authenticate with username and password, returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Credentials"
// @Success 200 {object} response.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.authCommands.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidCredentials),
			errors.Is(err, commands.ErrUserInactive):
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid username or password", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.LoginResponse{
		Token: result.Token,
		User:  resdto.FromUserView(result.User),
	})
}

// @Summary Register
// @Description Create a new user account with the default access level
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.RegisterRequest true "New account"
// @Success 201 {object} response.RegisterResponse
// @Failure 400 {object} httperr.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req reqdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.authCommands.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrDuplicateUsername):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Username already taken", nil)
		case errors.Is(err, commands.ErrDuplicateEmail):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Email already registered", nil)
		case errors.Is(err, user.ErrInvalidUsername),
			errors.Is(err, user.ErrInvalidEmail),
			errors.Is(err, user.ErrPasswordTooWeak):
			httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.RegisterResponse{User: resdto.FromUserView(view)})
}

// @Summary Current user
// @Description Return the profile of the authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.MeResponse
// @Failure 401 {object} httperr.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("actor missing from context"), "Internal server error", nil)
		return
	}

	view, err := h.userQueries.GetByID(c.Request.Context(), actor.ID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.MeResponse{User: resdto.FromUserView(view)})
}

// @Summary Verify token
// @Description Check a token and return the user it belongs to
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.VerifyTokenRequest true "Token to verify"
// @Success 200 {object} response.VerifyResponse
// @Failure 401 {object} response.VerifyResponse
// @Router /auth/verify [post]
func (h *AuthHandler) Verify(c *gin.Context) {
	var req reqdto.VerifyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, resdto.VerifyResponse{Valid: false})
		return
	}

	actor, err := h.tokenValidator.ValidateToken(req.Token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, resdto.VerifyResponse{Valid: false})
		return
	}

	view, err := h.userQueries.GetByID(c.Request.Context(), actor.ID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, resdto.VerifyResponse{Valid: false})
		return
	}

	userResp := resdto.FromUserView(view)
	c.JSON(http.StatusOK, resdto.VerifyResponse{Valid: true, User: &userResp})
}
