package reservation

import (
	"hotel/infras/otel"
	"hotel/internal/domains/reservation/model/dto"
	"hotel/internal/domains/reservation/service"
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
	service service.Reservation
	otel    otel.Otel
}

func New(service service.Reservation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reserva", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetReservations)
		routerGroup.Post("/", handler.SaveReservation)
		routerGroup.Put("/", handler.UpdateReservation)
		routerGroup.Post("/solicitud", handler.RequestReservation)
		routerGroup.Get("/{id}", handler.GetReservationByID)
		routerGroup.Delete("/{id}", handler.DeleteReservation)
	})
}

// GetReservations lists reservations, optionally only those of a client and/or a room.
// @Summary List reservations
// @Tags Reservation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param clientId query int false "Only reservations of this client"
// @Param roomId query int false "Only reservations of this room"
// @Success 200 {object} response.Envelope[[]dto.ReservationResponse]
// @Failure 404 {object} response.Envelope[[]dto.ReservationResponse] "No reservations"
// @Failure 500 {object} response.Envelope[any]
// @Router /reserva [get]
func (handler *Handler) GetReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservations")
	defer scope.End()

	params := gDto.QueryParams{}
	params.FromRequest(r, false)

	query := r.URL.Query()
	filter := dto.ReservationFilter{}

	for key, target := range map[string]**int64{
		constant.RequestParamClientID: &filter.ClientID,
		constant.RequestParamRoomID:   &filter.RoomID,
	} {
		value := query.Get(key)
		if value == "" {
			continue
		}

		id, err := shared.ParseID(value)
		if err != nil {
			response.WithError(w, err)

			return
		}

		*target = &id
	}

	reservations, err := handler.service.GetAll(ctx, params, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(w, err)

		return
	}

	if len(reservations) == 0 {
		response.WithEmpty(w, http.StatusNotFound, []dto.ReservationResponse{}, "no reservations found")

		return
	}

	response.WithJSON(w, http.StatusOK, reservations)
}

// GetReservationByID returns one reservation with its room, client and services.
// @Summary Get a reservation
// @Tags Reservation
// @Produce json
// @Param id path int true "Reservation ID"
// @Success 200 {object} response.Envelope[dto.ReservationResponse]
// @Failure 400 {object} response.Envelope[any]
// @Failure 404 {object} response.Envelope[any]
// @Router /reserva/{id} [get]
func (handler *Handler) GetReservationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservationByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	reservation, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to get reservation")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reservation)
}

// RequestReservation books a room for a client. Nights and total are computed from the stored rates
// and the reservation starts PENDING.
// @Summary Request a reservation
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.CreateReservationRequest true "Reservation request"
// @Success 200 {object} response.Envelope[dto.ReservationResponse]
// @Failure 400 {object} response.Envelope[any]
// @Failure 404 {object} response.Envelope[any] "Unknown room or client"
// @Router /reserva/solicitud [post]
// @Security BearerAuth
func (handler *Handler) RequestReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RequestReservation")
	defer scope.End()

	req := dto.CreateReservationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	reservation, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to request reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation requested")

	response.WithJSON(w, http.StatusOK, reservation, "reservation created")
}

// SaveReservation stores a reservation as sent, with its state. The body must not carry an id.
// @Summary Create a reservation
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.ReservationRequest true "Reservation"
// @Success 200 {object} response.Envelope[dto.ReservationResponse]
// @Failure 400 {object} response.Envelope[any]
// @Failure 404 {object} response.Envelope[any] "Unknown room or client"
// @Router /reserva [post]
// @Security BearerAuth
func (handler *Handler) SaveReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SaveReservation")
	defer scope.End()

	req := dto.ReservationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	reservation, err := handler.service.Save(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to save reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation saved")

	response.WithJSON(w, http.StatusOK, reservation, "reservation created")
}

// UpdateReservation replaces a stored reservation and prices it again.
// @Summary Update a reservation
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.ReservationRequest true "Reservation"
// @Success 200 {object} response.Envelope[dto.ReservationResponse]
// @Failure 400 {object} response.Envelope[any]
// @Failure 404 {object} response.Envelope[any] "Unknown room or client"
// @Router /reserva [put]
// @Security BearerAuth
func (handler *Handler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateReservation")
	defer scope.End()

	req := dto.ReservationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	reservation, err := handler.service.Update(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation updated")

	response.WithJSON(w, http.StatusOK, reservation, "reservation updated")
}

// DeleteReservation removes a reservation that was never invoiced.
// @Summary Delete a reservation
// @Tags Reservation
// @Produce json
// @Param id path int true "Reservation ID"
// @Success 200 {object} response.Envelope[any]
// @Failure 400 {object} response.Envelope[any] "Unknown reservation or invoiced reservation"
// @Router /reserva/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteReservation")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to delete reservation")

		response.WithDeleteError(w, err)

		return
	}

	scope.AddEvent("Reservation deleted")

	response.WithMessage(w, http.StatusOK, "reservation deleted")
}
