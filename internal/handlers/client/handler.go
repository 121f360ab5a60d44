package client

import (
	"hotel/infras/otel"
	"hotel/internal/domains/client/model/dto"
	"hotel/internal/domains/client/service"
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
	service service.Client
	otel    otel.Otel
}

func New(service service.Client, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/cliente", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetClients)
		routerGroup.Post("/", handler.CreateClient)
		routerGroup.Put("/", handler.UpdateClient)
		routerGroup.Get("/{id}", handler.GetClientByID)
		routerGroup.Delete("/{id}", handler.DeleteClient)
	})
}

// GetClients lists every client.
// @Summary List clients
// @Tags Client
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Envelope[[]dto.ClientResponse]
// @Failure 404 {object} response.Envelope[[]dto.ClientResponse] "No clients"
// @Failure 500 {object} response.Envelope[any]
// @Router /cliente [get]
func (handler *Handler) GetClients(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetClients")
	defer scope.End()

	params := gDto.QueryParams{}
	params.FromRequest(r, false)

	clients, err := handler.service.GetAll(ctx, params)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get clients")

		response.WithError(w, err)

		return
	}

	if len(clients) == 0 {
		response.WithEmpty(w, http.StatusNotFound, []dto.ClientResponse{}, "no clients found")

		return
	}

	response.WithJSON(w, http.StatusOK, clients)
}

// GetClientByID returns one client.
// @Summary Get a client
// @Tags Client
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} response.Envelope[dto.ClientResponse]
// @Failure 400 {object} response.Envelope[any]
// @Failure 404 {object} response.Envelope[any]
// @Router /cliente/{id} [get]
func (handler *Handler) GetClientByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetClientByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	client, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to get client")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, client)
}

// CreateClient stores a new client. The body must not carry an id.
// @Summary Create a client
// @Tags Client
// @Accept json
// @Produce json
// @Param request body dto.ClientRequest true "Client"
// @Success 200 {object} response.Envelope[dto.ClientResponse]
// @Failure 400 {object} response.Envelope[any]
// @Router /cliente [post]
// @Security BearerAuth
func (handler *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateClient")
	defer scope.End()

	req := dto.ClientRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	client, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create client")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Client created")

	response.WithJSON(w, http.StatusOK, client, "client created")
}

// UpdateClient replaces a stored client. The body must carry the id.
// @Summary Update a client
// @Tags Client
// @Accept json
// @Produce json
// @Param request body dto.ClientRequest true "Client"
// @Success 200 {object} response.Envelope[dto.ClientResponse]
// @Failure 400 {object} response.Envelope[any]
// @Router /cliente [put]
// @Security BearerAuth
func (handler *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateClient")
	defer scope.End()

	req := dto.ClientRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	client, err := handler.service.Update(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update client")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Client updated")

	response.WithJSON(w, http.StatusOK, client, "client updated")
}

// DeleteClient removes a client without reservations.
// @Summary Delete a client
// @Tags Client
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} response.Envelope[any]
// @Failure 400 {object} response.Envelope[any] "Unknown client or client with reservations"
// @Router /cliente/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteClient")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to delete client")

		response.WithDeleteError(w, err)

		return
	}

	scope.AddEvent("Client deleted")

	response.WithMessage(w, http.StatusOK, "client deleted")
}
