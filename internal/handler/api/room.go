package api

import (
	"errors"
	"net/http"
	"strconv"

	"reservas-backend/internal/domain/room"
	reqdto "reservas-backend/internal/handler/dto/request"
	resdto "reservas-backend/internal/handler/dto/response"
	"reservas-backend/internal/handler/httperr"
	"reservas-backend/internal/handler/middleware"
	"reservas-backend/internal/infra"
	"reservas-backend/internal/usecase/commands"
	"reservas-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type RoomHandler struct {
	commands  commands.RoomCommands
	queries   queries.RoomQueries
	listCache *cache.Cache
}

// listCache is the store backing the GET /salas cache middleware; write
// handlers flush it so mutations become visible immediately.
func NewRoomHandler(cmds commands.RoomCommands, qrs queries.RoomQueries, listCache *cache.Cache) *RoomHandler {
	return &RoomHandler{
		commands:  cmds,
		queries:   qrs,
		listCache: listCache,
	}
}

// @Summary List rooms
// @Description List rooms with optional filters
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param tipo query string false "Filter by room type"
// @Param capacidade_min query int false "Minimum capacity"
// @Param equipamento query string false "Require a piece of equipment"
// @Param incluir_inativas query bool false "Include deactivated rooms (admin only)"
// @Success 200 {object} response.RoomListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /salas [get]
func (h *RoomHandler) List(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("actor missing from context"), "Internal server error", nil)
		return
	}

	filter, err := parseRoomFilter(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid filter parameters", nil)
		return
	}

	views, err := h.queries.List(c.Request.Context(), actor, filter)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoomList(views))
}

// @Summary Get room
// @Description Get a room by id; inactive rooms are hidden from non-admins
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Success 200 {object} response.RoomDetailResponse
// @Failure 404 {object} httperr.Response
// @Router /salas/{id} [get]
func (h *RoomHandler) Get(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("actor missing from context"), "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room ID format", nil)
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.abortWithRoomError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoomView(view))
}

// @Summary Create room
// @Description Create a room (admin only)
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.CreateRoomRequest true "Room"
// @Success 201 {object} response.RoomDetailResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /salas [post]
func (h *RoomHandler) Create(c *gin.Context) {
	var req reqdto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.commands.Create(c.Request.Context(), req)
	if err != nil {
		h.abortWithRoomError(c, err)
		return
	}

	h.listCache.Flush()
	c.JSON(http.StatusCreated, resdto.FromRoomView(view))
}

// @Summary Update room
// @Description Update a room's attributes (admin only)
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param request body request.UpdateRoomRequest true "Fields to change"
// @Success 200 {object} response.RoomDetailResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /salas/{id} [put]
func (h *RoomHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room ID format", nil)
		return
	}

	var req reqdto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.commands.Update(c.Request.Context(), id, req)
	if err != nil {
		h.abortWithRoomError(c, err)
		return
	}

	h.listCache.Flush()
	c.JSON(http.StatusOK, resdto.FromRoomView(view))
}

// @Summary Delete room
// @Description Deactivate a room (admin only); refused while future confirmed reservations exist
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /salas/{id} [delete]
func (h *RoomHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room ID format", nil)
		return
	}

	if err := h.commands.Deactivate(c.Request.Context(), id); err != nil {
		h.abortWithRoomError(c, err)
		return
	}

	h.listCache.Flush()
	c.JSON(http.StatusOK, gin.H{"message": "Sala desativada"})
}

// @Summary List room types
// @Description Return the known room type names
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.RoomTypesResponse
// @Failure 401 {object} httperr.Response
// @Router /salas/tipos [get]
func (h *RoomHandler) ListTypes(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.RoomTypesResponse{Types: h.queries.ListTypes()})
}

func (h *RoomHandler) abortWithRoomError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrRoomNotFound),
		errors.Is(err, queries.ErrRoomNotFound),
		infra.IsKind(err, infra.KindNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
	case errors.Is(err, commands.ErrDuplicateRoomName):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Room name already in use", nil)
	case errors.Is(err, room.ErrRoomHasBookings):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Room has future confirmed reservations", nil)
	case errors.Is(err, room.ErrEmptyRoomName),
		errors.Is(err, room.ErrRoomNameTooLong),
		errors.Is(err, room.ErrInvalidCapacity),
		errors.Is(err, room.ErrEmptyLocation),
		errors.Is(err, room.ErrEmptyRoomType):
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func parseRoomFilter(c *gin.Context) (queries.RoomFilter, error) {
	var filter queries.RoomFilter

	if raw := c.Query("tipo"); raw != "" {
		filter.RoomType = &raw
	}
	if raw := c.Query("capacidade_min"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || n < 0 {
			return filter, errors.New("capacidade_min must be a non-negative integer")
		}
		min := int32(n)
		filter.MinCapacity = &min
	}
	if raw := c.Query("equipamento"); raw != "" {
		filter.Equipment = &raw
	}
	if raw := c.Query("incluir_inativas"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, errors.New("incluir_inativas must be a boolean")
		}
		filter.IncludeInactive = include
	}

	return filter, nil
}
