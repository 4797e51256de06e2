//go:build unit

package api_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"reservas-backend/internal/domain/reservation"
	"reservas-backend/internal/handler/api"
	resdto "reservas-backend/internal/handler/dto/response"
	"reservas-backend/internal/usecase/commands"
	"reservas-backend/internal/usecase/queries"
	"reservas-backend/internal/usecase/shared"
	"reservas-backend/tests/common/builder"
	"reservas-backend/tests/common/httptest"
	"reservas-backend/tests/common/testutil"
	commandsmock "reservas-backend/tests/mock/commands"
	queriesmock "reservas-backend/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	handler      *api.ReservationHandler
	actorID      uuid.UUID
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries)
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

	group := s.router.Group("/reservas", authMiddleware)
	group.GET("", s.handler.List)
	group.POST("", s.handler.Create)
	group.GET("/disponibilidade", s.handler.CheckAvailability)
	group.GET("/:id", s.handler.Get)
	group.PUT("/:id", s.handler.Update)
	group.DELETE("/:id", s.handler.Cancel)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func (s *ReservationHandlerTestSuite) TestCreate() {
	url := "/reservas"
	b := builder.NewReservationBuilder().WithUserID(s.actorID)
	reqBody := b.BuildCreateRequestDTO()
	view := b.BuildViewQuery()

	s.Run("success: returns 201 with the booked reservation", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var resp resdto.ReservationDetailResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.Equal(view.ID, resp.Reservation.ID)
		s.Equal("confirmed", resp.Reservation.Status)
	})

	s.Run("error: returns 409 with the blocking reservations on conflict", func() {
		blocking, err := reservation.NewTimeSlot(b.StartsAt, b.EndsAt)
		s.Require().NoError(err)
		conflictErr := &reservation.ConflictError{Conflicts: []reservation.BookedSlot{
			{ID: uuid.New(), Title: "Outra reuniao", Slot: blocking, UserID: uuid.New()},
		}}
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, conflictErr).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		titles := httptest.AssertConflictResponse(s.T(), rec)
		s.Equal([]string{"Outra reuniao"}, titles)
	})

	s.Run("error: returns 409 without detail when the constraint catches the race", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, reservation.ErrScheduleConflict).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Time slot is already booked")
	})

	s.Run("error: returns 404 for an unknown or inactive room", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrRoomUnavailable).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Room not found")
	})

	s.Run("error: returns 400 for a slot starting in the past", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, reservation.ErrPastBooking).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "past")
	})

	s.Run("error: returns 400 when required fields are missing", func() {
		for _, field := range []string{"titulo", "data_inicio", "data_fim", "sala_id"} {
			body := testutil.DtoMap(s.T(), reqBody, testutil.Field(field, nil))
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
		}
	})

	s.Run("error: returns 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

func (s *ReservationHandlerTestSuite) TestList() {
	url := "/reservas"

	s.Run("success: returns 200 with items and total", func() {
		items := []*queries.ReservationListItem{
			builder.NewReservationBuilder().WithUserID(s.actorID).BuildListItem(),
			builder.NewReservationBuilder().WithUserID(s.actorID).BuildListItem(),
		}
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var resp resdto.ReservationListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(2, resp.Total)
		s.Len(resp.Reservations, 2)
	})

	s.Run("success: passes parsed filters to the query layer", func() {
		roomID := uuid.New()
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, _ shared.Actor, filter queries.ReservationFilter) ([]*queries.ReservationListItem, error) {
				s.Require().NotNil(filter.RoomID)
				s.Equal(roomID, *filter.RoomID)
				s.Require().NotNil(filter.Status)
				s.Equal("cancelled", *filter.Status)
				return nil, nil
			}).Times(1)

		q := fmt.Sprintf("%s?sala_id=%s&status=cancelled", url, roomID)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, q, nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: returns 400 for an unknown status filter", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?status=done", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid filter parameters")
	})

	s.Run("error: returns 400 for a malformed time bound", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?start=yesterday", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid filter parameters")
	})
}

func (s *ReservationHandlerTestSuite) TestGet() {
	view := builder.NewReservationBuilder().WithUserID(s.actorID).BuildViewQuery()
	url := "/reservas/" + view.ID.String()

	s.Run("success: returns 200 with the reservation", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), view.ID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var resp resdto.ReservationDetailResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(view.ID, resp.Reservation.ID)
	})

	s.Run("error: returns 403 when the reservation belongs to someone else", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), view.ID).
			Return(nil, queries.ErrNotAllowed).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Not allowed")
	})

	s.Run("error: returns 400 for a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservas/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid reservation ID format")
	})
}

func (s *ReservationHandlerTestSuite) TestUpdate() {
	b := builder.NewReservationBuilder().WithUserID(s.actorID)
	view := b.BuildViewQuery()
	url := "/reservas/" + view.ID.String()
	reqBody := b.BuildUpdateRequestDTO()

	s.Run("success: returns 200 with the updated reservation", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), gomock.Any(), view.ID, gomock.Any()).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")

		var resp resdto.ReservationDetailResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(view.ID, resp.Reservation.ID)
	})

	s.Run("error: returns 403 for another user's reservation", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), gomock.Any(), view.ID, gomock.Any()).
			Return(nil, commands.ErrNotOwner).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "another user")
	})

	s.Run("error: returns 404 for an unknown reservation", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), gomock.Any(), view.ID, gomock.Any()).
			Return(nil, commands.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})

	s.Run("error: returns 400 for an over-long title", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), gomock.Any(), view.ID, gomock.Any()).
			Return(nil, reservation.ErrTitleTooLong).Times(1)

		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("titulo", strings.Repeat("a", 201)))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, body, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *ReservationHandlerTestSuite) TestCancel() {
	id := uuid.New()
	url := "/reservas/" + id.String()

	s.Run("success: returns 200 with a confirmation message", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), gomock.Any(), id).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "Reserva cancelada")
	})

	s.Run("error: returns 404 for an unknown reservation", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), gomock.Any(), id).
			Return(commands.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})
}

func (s *ReservationHandlerTestSuite) TestCheckAvailability() {
	roomID := uuid.New()
	start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	end := start.Add(time.Hour)
	url := fmt.Sprintf("/reservas/disponibilidade?sala_id=%s&data_inicio=%s&data_fim=%s",
		roomID, start.Format(time.RFC3339), end.Format(time.RFC3339))

	s.Run("success: returns 200 with an available slot", func() {
		s.mockQueries.EXPECT().CheckAvailability(gomock.Any(), roomID, gomock.Any(), gomock.Any(), nil).
			Return(&queries.AvailabilityView{
				RoomID:    roomID,
				StartsAt:  start,
				EndsAt:    end,
				Available: true,
				Conflicts: []queries.ConflictItem{},
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var resp resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.True(resp.Available)
		s.Empty(resp.Conflicts)
	})

	s.Run("success: returns 200 listing conflicts for a taken slot", func() {
		s.mockQueries.EXPECT().CheckAvailability(gomock.Any(), roomID, gomock.Any(), gomock.Any(), nil).
			Return(&queries.AvailabilityView{
				RoomID:    roomID,
				StartsAt:  start,
				EndsAt:    end,
				Available: false,
				Conflicts: []queries.ConflictItem{
					{ID: uuid.New(), Title: "Treinamento", StartsAt: start, EndsAt: end, UserID: uuid.New()},
				},
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var resp resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.False(resp.Available)
		s.Len(resp.Conflicts, 1)
	})

	s.Run("error: returns 400 when sala_id is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservas/disponibilidade", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "sala_id")
	})

	s.Run("error: returns 400 for a malformed data_inicio", func() {
		badURL := fmt.Sprintf("/reservas/disponibilidade?sala_id=%s&data_inicio=amanha&data_fim=%s",
			roomID, end.Format(time.RFC3339))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, badURL, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "data_inicio")
	})
}
