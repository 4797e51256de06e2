package api

import (
	"errors"
	"net/http"
	"time"

	"reservas-backend/internal/domain/reservation"
	reqdto "reservas-backend/internal/handler/dto/request"
	resdto "reservas-backend/internal/handler/dto/response"
	"reservas-backend/internal/handler/httperr"
	"reservas-backend/internal/handler/middleware"
	"reservas-backend/internal/infra"
	"reservas-backend/internal/usecase/commands"
	"reservas-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	commands commands.ReservationCommands
	queries  queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, qrs queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{
		commands: cmds,
		queries:  qrs,
	}
}

// @Summary List reservations
// @Description List reservations; non-admins only see their own
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param sala_id query string false "Filter by room"
// @Param status query string false "Filter by status"
// @Param start query string false "Only reservations ending after this instant (RFC3339)"
// @Param end query string false "Only reservations starting before this instant (RFC3339)"
// @Success 200 {object} response.ReservationListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /reservas [get]
func (h *ReservationHandler) List(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("actor missing from context"), "Internal server error", nil)
		return
	}

	filter, err := parseReservationFilter(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid filter parameters", nil)
		return
	}

	items, err := h.queries.List(c.Request.Context(), actor, filter)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationList(items))
}

// @Summary Get reservation
// @Description Get a reservation by id; owner or admin only
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.ReservationDetailResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservas/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("actor missing from context"), "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID format", nil)
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrNotAllowed):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Not allowed to view this reservation", nil)
		case infra.IsKind(err, infra.KindNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Create reservation
// @Description Book a room for a time slot
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.CreateReservationRequest true "Reservation"
// @Success 201 {object} response.ReservationDetailResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservas [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("actor missing from context"), "Internal server error", nil)
		return
	}

	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.commands.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.abortWithBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReservationView(view))
}

// @Summary Update reservation
// @Description Change title, description, status or time slot; owner or admin only
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body request.UpdateReservationRequest true "Fields to change"
// @Success 200 {object} response.ReservationDetailResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservas/{id} [put]
func (h *ReservationHandler) Update(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("actor missing from context"), "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID format", nil)
		return
	}

	var req reqdto.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.commands.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.abortWithBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Cancel reservation
// @Description Cancel a reservation; the record is kept with status cancelled
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservas/{id} [delete]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("actor missing from context"), "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID format", nil)
		return
	}

	if err := h.commands.Cancel(c.Request.Context(), actor, id); err != nil {
		h.abortWithBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reserva cancelada"})
}

// @Summary Check availability
// @Description Check whether a room is free for a time slot
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param sala_id query string true "Room ID"
// @Param data_inicio query string true "Slot start (RFC3339)"
// @Param data_fim query string true "Slot end (RFC3339)"
// @Param reserva_id query string false "Reservation to exclude (when rescheduling)"
// @Success 200 {object} response.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservas/disponibilidade [get]
func (h *ReservationHandler) CheckAvailability(c *gin.Context) {
	roomID, err := uuid.Parse(c.Query("sala_id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid or missing sala_id", nil)
		return
	}
	start, err := time.Parse(time.RFC3339, c.Query("data_inicio"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid or missing data_inicio", nil)
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("data_fim"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid or missing data_fim", nil)
		return
	}

	var excludeID *uuid.UUID
	if raw := c.Query("reserva_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reserva_id", nil)
			return
		}
		excludeID = &id
	}

	view, err := h.queries.CheckAvailability(c.Request.Context(), roomID, start, end, excludeID)
	if err != nil {
		switch {
		case errors.Is(err, reservation.ErrInvalidTimeRange):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "data_inicio must be before data_fim", nil)
		case errors.Is(err, queries.ErrRoomNotFound), infra.IsKind(err, infra.KindNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}

// abortWithBookingError maps command and domain errors onto the wire.
// Conflicts carry the blocking reservations in the `conflito` detail
// when the validator caught them.
func (h *ReservationHandler) abortWithBookingError(c *gin.Context, err error) {
	var conflictErr *reservation.ConflictError

	switch {
	case errors.Is(err, commands.ErrReservationNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
	case errors.Is(err, commands.ErrNotOwner):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Reservation belongs to another user", nil)
	case errors.Is(err, commands.ErrRoomNotFound), errors.Is(err, commands.ErrRoomUnavailable):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
	case errors.As(err, &conflictErr):
		httperr.AbortWithConflict(c, err, "Time slot is already booked",
			conflictItems(conflictErr.Conflicts))
	case errors.Is(err, reservation.ErrScheduleConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Time slot is already booked", nil)
	case errors.Is(err, reservation.ErrPastBooking):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Reservations cannot start in the past", nil)
	case errors.Is(err, reservation.ErrInvalidTimeRange):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "data_inicio must be before data_fim", nil)
	case errors.Is(err, reservation.ErrEmptyTitle),
		errors.Is(err, reservation.ErrTitleTooLong),
		errors.Is(err, reservation.ErrInvalidStatus):
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func conflictItems(conflicts []reservation.BookedSlot) []resdto.ConflictResponse {
	items := make([]resdto.ConflictResponse, len(conflicts))
	for i, b := range conflicts {
		items[i] = resdto.ConflictResponse{
			ID:       b.ID,
			Title:    b.Title,
			StartsAt: b.Slot.Start(),
			EndsAt:   b.Slot.End(),
			UserID:   b.UserID,
		}
	}
	return items
}

func parseReservationFilter(c *gin.Context) (queries.ReservationFilter, error) {
	var filter queries.ReservationFilter

	if raw := c.Query("sala_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, err
		}
		filter.RoomID = &id
	}
	if raw := c.Query("status"); raw != "" {
		status, err := reservation.NewStatus(raw)
		if err != nil {
			return filter, err
		}
		s := status.String()
		filter.Status = &s
	}
	if raw := c.Query("start"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, err
		}
		filter.From = &t
	}
	if raw := c.Query("end"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, err
		}
		filter.Until = &t
	}

	return filter, nil
}
