//go:build e2e

package helper

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"reservas-backend/internal/handler/dto/request"
	"reservas-backend/internal/handler/dto/response"
	"reservas-backend/tests/common/dbtest"
	"reservas-backend/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const TestPassword = "Str0ngPass!"

// AuthHelper drives users through the real registration and login
// endpoints so e2e tests exercise the same paths as clients do.
type AuthHelper struct {
	db dbtest.DBLike
}

func NewAuthHelper(db dbtest.DBLike) *AuthHelper {
	return &AuthHelper{db: db}
}

func (h *AuthHelper) Register(t *testing.T, router *gin.Engine, username, email string) uuid.UUID {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/auth/register",
		request.RegisterRequest{Username: username, Email: email, Password: TestPassword}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp response.RegisterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.User.ID
}

func (h *AuthHelper) Login(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/auth/login",
		request.LoginRequest{Username: username, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp response.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token, "login response did not carry a token")
	return resp.Token
}

// RegisterAndLogin creates a regular user and returns its bearer token.
func (h *AuthHelper) RegisterAndLogin(t *testing.T, router *gin.Engine, username, email string) string {
	t.Helper()
	h.Register(t, router, username, email)
	return h.Login(t, router, username, TestPassword)
}

// RegisterAdmin creates a user and promotes it directly in the database,
// since registration itself never hands out the admin level.
func (h *AuthHelper) RegisterAdmin(t *testing.T, router *gin.Engine, username, email string) string {
	t.Helper()
	h.Register(t, router, username, email)
	h.promote(t, username)
	return h.Login(t, router, username, TestPassword)
}

func (h *AuthHelper) promote(t *testing.T, username string) {
	t.Helper()
	tag, err := h.db.Exec(context.Background(),
		"UPDATE users SET nivel_acesso = 'admin' WHERE username = $1", username)
	require.NoError(t, err)
	require.EqualValues(t, 1, tag.RowsAffected())
}

// Deactivate flips the user off directly in the database.
func (h *AuthHelper) Deactivate(t *testing.T, username string) {
	t.Helper()
	_, err := h.db.Exec(context.Background(),
		"UPDATE users SET ativo = false WHERE username = $1", username)
	require.NoError(t, err)
}
