//go:build e2e

package room_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"reservas-backend/internal/handler/dto/request"
	"reservas-backend/internal/handler/dto/response"
	"reservas-backend/tests/common/httptest"
	"reservas-backend/tests/e2e"
	"reservas-backend/tests/e2e/common/helper"

	"github.com/stretchr/testify/suite"
)

const roomsURL = "/salas"

type roomSuite struct {
	e2e.SharedSuite
	auth *helper.AuthHelper

	userToken  string
	adminToken string
}

func TestRoomSuite(t *testing.T) {
	suite.Run(t, new(roomSuite))
}

func (s *roomSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.auth = helper.NewAuthHelper(s.DB)
}

func (s *roomSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	s.userToken = s.auth.RegisterAndLogin(s.T(), s.Router, "joao", "joao@example.com")
	s.adminToken = s.auth.RegisterAdmin(s.T(), s.Router, "admin", "admin@example.com")
}

func (s *roomSuite) TestLifecycle() {
	s.Run("an admin can create a room and anyone can read it", func() {
		id := helper.CreateRoom(s.T(), s.Router, s.adminToken, "Sala Alpha")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			fmt.Sprintf("%s/%s", roomsURL, id), nil, s.userToken)

		var resp response.RoomDetailResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal("Sala Alpha", resp.Room.Name)
		s.True(resp.Room.IsActive)
		s.ElementsMatch([]string{"projetor", "quadro"}, resp.Room.Equipment)
	})

	s.Run("updates merge over the existing room", func() {
		id := helper.CreateRoom(s.T(), s.Router, s.adminToken, "Sala Alpha")

		capacity := 25
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPut,
			fmt.Sprintf("%s/%s", roomsURL, id),
			request.UpdateRoomRequest{Capacity: &capacity}, s.adminToken)

		var resp response.RoomDetailResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.EqualValues(25, resp.Room.Capacity)
		s.Equal("Sala Alpha", resp.Room.Name)
		s.Equal("2o andar", resp.Room.Location)
	})

	s.Run("a deactivated room vanishes for regular users", func() {
		id := helper.CreateRoom(s.T(), s.Router, s.adminToken, "Sala Alpha")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodDelete,
			fmt.Sprintf("%s/%s", roomsURL, id), nil, s.adminToken)
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		s.Contains(w.Body.String(), "Sala desativada")

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			fmt.Sprintf("%s/%s", roomsURL, id), nil, s.userToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Room not found")

		// Admins still see it when explicitly asking for inactive rooms
		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			roomsURL+"?incluir_inativas=true", nil, s.adminToken)
		var list response.RoomListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &list)
		s.Equal(1, list.Total)
		s.False(list.Rooms[0].IsActive)
	})

	s.Run("a duplicate name is refused", func() {
		helper.CreateRoom(s.T(), s.Router, s.adminToken, "Sala Alpha")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, roomsURL,
			request.CreateRoomRequest{
				Name: "Sala Alpha", Capacity: 4, Location: "terreo", RoomType: "Reunião",
			}, s.adminToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Room name already in use")
	})
}

func (s *roomSuite) TestListFilters() {
	s.Run("rooms can be filtered by minimum capacity", func() {
		helper.CreateRoom(s.T(), s.Router, s.adminToken, "Sala Alpha")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			roomsURL+"?capacidade_min=8", nil, s.userToken)
		var list response.RoomListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &list)
		s.Equal(1, list.Total)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			roomsURL+"?capacidade_min=50", nil, s.userToken)
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &list)
		s.Equal(0, list.Total)
	})

	s.Run("the known room types are published", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			roomsURL+"/tipos", nil, s.userToken)

		var resp response.RoomTypesResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Contains(resp.Types, "Reunião")
	})
}

func (s *roomSuite) TestPermissions() {
	s.Run("regular users cannot create rooms", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, roomsURL,
			request.CreateRoomRequest{
				Name: "Sala Beta", Capacity: 4, Location: "terreo", RoomType: "Reunião",
			}, s.userToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("a room with future confirmed reservations cannot be deactivated", func() {
		id := helper.CreateRoom(s.T(), s.Router, s.adminToken, "Sala Alpha")

		start := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Hour)
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/reservas",
			request.CreateReservationRequest{
				Title:    "Reuniao de planejamento",
				StartsAt: start,
				EndsAt:   start.Add(time.Hour),
				RoomID:   id,
			}, s.userToken)
		s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodDelete,
			fmt.Sprintf("%s/%s", roomsURL, id), nil, s.adminToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Room has future confirmed reservations")
	})
}
