package hotelservice

import (
	"hotel/infras/otel"
	"hotel/internal/domains/hotelservice/model/dto"
	"hotel/internal/domains/hotelservice/service"
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
	service service.HotelService
	otel    otel.Otel
}

func New(service service.HotelService, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router mounts the service routes under both /servicio and /servicios.
func (handler *Handler) Router(router chi.Router) {
	for _, prefix := range []string{"/servicio", "/servicios"} {
		router.Route(prefix, handler.routes)
	}
}

func (handler *Handler) routes(routerGroup chi.Router) {
	routerGroup.Get("/", handler.GetServices)
	routerGroup.Post("/", handler.CreateService)
	routerGroup.Put("/", handler.UpdateService)
	routerGroup.Get("/{id}", handler.GetServiceByID)
	routerGroup.Delete("/{id}", handler.DeleteService)
}

// GetServices lists every service.
// @Summary List services
// @Tags Service
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Envelope[[]dto.ServiceResponse]
// @Failure 404 {object} response.Envelope[[]dto.ServiceResponse] "No services"
// @Failure 500 {object} response.Envelope[any]
// @Router /servicio [get]
// @Router /servicios [get]
func (handler *Handler) GetServices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServices")
	defer scope.End()

	params := gDto.QueryParams{}
	params.FromRequest(r, false)

	services, err := handler.service.GetAll(ctx, params)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get services")

		response.WithError(w, err)

		return
	}

	if len(services) == 0 {
		response.WithEmpty(w, http.StatusNotFound, []dto.ServiceResponse{}, "no services found")

		return
	}

	response.WithJSON(w, http.StatusOK, services)
}

// GetServiceByID returns one service.
// @Summary Get a service
// @Tags Service
// @Produce json
// @Param id path int true "Service ID"
// @Success 200 {object} response.Envelope[dto.ServiceResponse]
// @Failure 400 {object} response.Envelope[any]
// @Failure 404 {object} response.Envelope[any]
// @Router /servicio/{id} [get]
// @Router /servicios/{id} [get]
func (handler *Handler) GetServiceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServiceByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	hotelService, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to get service")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, hotelService)
}

// CreateService stores a new service. The body must not carry an id.
// @Summary Create a service
// @Tags Service
// @Accept json
// @Produce json
// @Param request body dto.ServiceRequest true "Service"
// @Success 200 {object} response.Envelope[dto.ServiceResponse]
// @Failure 400 {object} response.Envelope[any]
// @Router /servicio [post]
// @Router /servicios [post]
// @Security BearerAuth
func (handler *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateService")
	defer scope.End()

	req := dto.ServiceRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	hotelService, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create service")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Service created")

	response.WithJSON(w, http.StatusOK, hotelService, "service created")
}

// UpdateService replaces a stored service. The body must carry the id.
// @Summary Update a service
// @Tags Service
// @Accept json
// @Produce json
// @Param request body dto.ServiceRequest true "Service"
// @Success 200 {object} response.Envelope[dto.ServiceResponse]
// @Failure 400 {object} response.Envelope[any]
// @Router /servicio [put]
// @Router /servicios [put]
// @Security BearerAuth
func (handler *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateService")
	defer scope.End()

	req := dto.ServiceRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	hotelService, err := handler.service.Update(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update service")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Service updated")

	response.WithJSON(w, http.StatusOK, hotelService, "service updated")
}

// DeleteService removes a service and its employee assignments.
// @Summary Delete a service
// @Tags Service
// @Produce json
// @Param id path int true "Service ID"
// @Success 200 {object} response.Envelope[any]
// @Failure 400 {object} response.Envelope[any] "Unknown service or service booked by a reservation"
// @Router /servicio/{id} [delete]
// @Router /servicios/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteService")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to delete service")

		response.WithDeleteError(w, err)

		return
	}

	scope.AddEvent("Service deleted")

	response.WithMessage(w, http.StatusOK, "service deleted")
}
