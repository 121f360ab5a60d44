package room

import (
	"hotel/infras/otel"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/validator"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router mounts the room routes under both /habitacion and /habitaciones.
func (handler *Handler) Router(router chi.Router) {
	for _, prefix := range []string{"/habitacion", "/habitaciones"} {
		router.Route(prefix, handler.routes)
	}
}

func (handler *Handler) routes(routerGroup chi.Router) {
	routerGroup.Get("/", handler.GetRooms)
	routerGroup.Post("/", handler.CreateRoom)
	routerGroup.Put("/", handler.UpdateRoom)
	routerGroup.Get("/disponibles", handler.GetAvailableRooms)
	routerGroup.Get("/{id}", handler.GetRoomByID)
	routerGroup.Delete("/{id}", handler.DeleteRoom)
}

// GetRooms lists every room.
// @Summary List rooms
// @Tags Room
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Envelope[[]dto.RoomResponse]
// @Failure 404 {object} response.Envelope[[]dto.RoomResponse] "No rooms"
// @Failure 500 {object} response.Envelope[any]
// @Router /habitacion [get]
// @Router /habitaciones [get]
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	params := gDto.QueryParams{}
	params.FromRequest(r, false)

	rooms, err := handler.service.GetAll(ctx, params)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	if len(rooms) == 0 {
		response.WithEmpty(w, http.StatusNotFound, []dto.RoomResponse{}, "no rooms found")

		return
	}

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetAvailableRooms lists the rooms flagged as available.
// @Summary List available rooms
// @Tags Room
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Envelope[[]dto.RoomResponse]
// @Failure 404 {object} response.Envelope[[]dto.RoomResponse] "No available rooms"
// @Failure 500 {object} response.Envelope[any]
// @Router /habitacion/disponibles [get]
func (handler *Handler) GetAvailableRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailableRooms")
	defer scope.End()

	params := gDto.QueryParams{}
	params.FromRequest(r, false)

	rooms, err := handler.service.GetAvailable(ctx, params)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get available rooms")

		response.WithError(w, err)

		return
	}

	if len(rooms) == 0 {
		response.WithEmpty(w, http.StatusNotFound, []dto.RoomResponse{}, "no available rooms found")

		return
	}

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetRoomByID returns one room.
// @Summary Get a room
// @Tags Room
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} response.Envelope[dto.RoomResponse]
// @Failure 400 {object} response.Envelope[any]
// @Failure 404 {object} response.Envelope[any]
// @Router /habitacion/{id} [get]
// @Router /habitaciones/{id} [get]
func (handler *Handler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	room, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to get room")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, room)
}

// CreateRoom stores a new room. The body must not carry an id.
// @Summary Create a room
// @Tags Room
// @Accept json
// @Produce json
// @Param request body dto.RoomRequest true "Room"
// @Success 200 {object} response.Envelope[dto.RoomResponse]
// @Failure 400 {object} response.Envelope[any]
// @Router /habitacion [post]
// @Router /habitaciones [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	req := dto.RoomRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	room, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room created")

	response.WithJSON(w, http.StatusOK, room, "room created")
}

// UpdateRoom replaces a stored room. The body must carry the id.
// @Summary Update a room
// @Tags Room
// @Accept json
// @Produce json
// @Param request body dto.RoomRequest true "Room"
// @Success 200 {object} response.Envelope[dto.RoomResponse]
// @Failure 400 {object} response.Envelope[any]
// @Router /habitacion [put]
// @Router /habitaciones [put]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	req := dto.RoomRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	room, err := handler.service.Update(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room updated")

	response.WithJSON(w, http.StatusOK, room, "room updated")
}

// DeleteRoom removes a room without reservations.
// @Summary Delete a room
// @Tags Room
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} response.Envelope[any]
// @Failure 400 {object} response.Envelope[any] "Unknown room or room with reservations"
// @Router /habitacion/{id} [delete]
// @Router /habitaciones/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to delete room")

		response.WithDeleteError(w, err)

		return
	}

	scope.AddEvent("Room deleted")

	response.WithMessage(w, http.StatusOK, "room deleted")
}
