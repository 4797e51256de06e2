//go:build e2e

package helper

import (
	"encoding/json"
	"net/http"
	"testing"

	"reservas-backend/internal/handler/dto/request"
	"reservas-backend/internal/handler/dto/response"
	"reservas-backend/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// CreateRoom provisions a sala through the admin endpoint and returns its id.
func CreateRoom(t *testing.T, router *gin.Engine, adminToken, name string) uuid.UUID {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/salas",
		request.CreateRoomRequest{
			Name:      name,
			Capacity:  10,
			Location:  "2o andar",
			RoomType:  "Reunião",
			Equipment: []string{"projetor", "quadro"},
		}, adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp response.RoomDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Room.ID
}
