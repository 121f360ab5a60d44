package invoice

import (
	"hotel/infras/otel"
	"hotel/internal/domains/invoice/model/dto"
	"hotel/internal/domains/invoice/service"
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
	service service.Invoice
	otel    otel.Otel
}

func New(service service.Invoice, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/factura", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetInvoices)
		routerGroup.Post("/", handler.CreateInvoice)
		routerGroup.Put("/", handler.UpdateInvoice)
		routerGroup.Get("/{id}", handler.GetInvoiceByID)
		routerGroup.Delete("/{id}", handler.DeleteInvoice)
		routerGroup.Get("/reserva/{id}", handler.GetInvoiceByReservation)
		routerGroup.Post("/reserva/{id}", handler.GenerateInvoice)
	})
}

// GetInvoices lists every invoice.
// @Summary List invoices
// @Tags Invoice
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Envelope[[]dto.InvoiceResponse]
// @Failure 404 {object} response.Envelope[[]dto.InvoiceResponse] "No invoices"
// @Failure 500 {object} response.Envelope[any]
// @Router /factura [get]
func (handler *Handler) GetInvoices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInvoices")
	defer scope.End()

	params := gDto.QueryParams{}
	params.FromRequest(r, false)

	invoices, err := handler.service.GetAll(ctx, params)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get invoices")

		response.WithError(w, err)

		return
	}

	if len(invoices) == 0 {
		response.WithEmpty(w, http.StatusNotFound, []dto.InvoiceResponse{}, "no invoices found")

		return
	}

	response.WithJSON(w, http.StatusOK, invoices)
}

// GetInvoiceByID returns one invoice.
// @Summary Get an invoice
// @Tags Invoice
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} response.Envelope[dto.InvoiceResponse]
// @Failure 400 {object} response.Envelope[any]
// @Failure 404 {object} response.Envelope[any]
// @Router /factura/{id} [get]
func (handler *Handler) GetInvoiceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInvoiceByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	invoice, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to get invoice")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, invoice)
}

// GetInvoiceByReservation returns the invoice issued for a reservation.
// @Summary Get the invoice of a reservation
// @Tags Invoice
// @Produce json
// @Param id path int true "Reservation ID"
// @Success 200 {object} response.Envelope[dto.InvoiceResponse]
// @Failure 400 {object} response.Envelope[any]
// @Failure 404 {object} response.Envelope[any]
// @Router /factura/reserva/{id} [get]
func (handler *Handler) GetInvoiceByReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInvoiceByReservation")
	defer scope.End()

	reservationID, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	invoice, err := handler.service.GetByReservation(ctx, reservationID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("reservation_id", reservationID).Msg("failed to get invoice of reservation")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, invoice)
}

// GenerateInvoice issues the invoice of a reservation from its stored total and bookings.
// @Summary Generate the invoice of a reservation
// @Tags Invoice
// @Produce json
// @Param id path int true "Reservation ID"
// @Success 200 {object} response.Envelope[dto.InvoiceResponse]
// @Failure 400 {object} response.Envelope[any] "Reservation already invoiced"
// @Failure 404 {object} response.Envelope[any] "Unknown reservation"
// @Router /factura/reserva/{id} [post]
// @Security BearerAuth
func (handler *Handler) GenerateInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GenerateInvoice")
	defer scope.End()

	reservationID, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	invoice, err := handler.service.Generate(ctx, reservationID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("reservation_id", reservationID).Msg("failed to generate invoice")

		response.WithErrorRemapped(w, err, http.StatusBadRequest, http.StatusConflict)

		return
	}

	scope.AddEvent("Invoice generated")

	response.WithJSON(w, http.StatusOK, invoice, "invoice generated")
}

// CreateInvoice stores an invoice as sent. The body must not carry an id.
// @Summary Create an invoice
// @Tags Invoice
// @Accept json
// @Produce json
// @Param request body dto.InvoiceRequest true "Invoice"
// @Success 200 {object} response.Envelope[dto.InvoiceResponse]
// @Failure 400 {object} response.Envelope[any]
// @Failure 404 {object} response.Envelope[any] "Unknown reservation"
// @Router /factura [post]
// @Security BearerAuth
func (handler *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateInvoice")
	defer scope.End()

	req := dto.InvoiceRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	invoice, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create invoice")

		response.WithErrorRemapped(w, err, http.StatusBadRequest, http.StatusConflict)

		return
	}

	scope.AddEvent("Invoice created")

	response.WithJSON(w, http.StatusOK, invoice, "invoice created")
}

// UpdateInvoice replaces a stored invoice. The body must carry the id.
// @Summary Update an invoice
// @Tags Invoice
// @Accept json
// @Produce json
// @Param request body dto.InvoiceRequest true "Invoice"
// @Success 200 {object} response.Envelope[dto.InvoiceResponse]
// @Failure 400 {object} response.Envelope[any]
// @Router /factura [put]
// @Security BearerAuth
func (handler *Handler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateInvoice")
	defer scope.End()

	req := dto.InvoiceRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	invoice, err := handler.service.Update(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update invoice")

		response.WithErrorRemapped(w, err, http.StatusBadRequest, http.StatusConflict)

		return
	}

	scope.AddEvent("Invoice updated")

	response.WithJSON(w, http.StatusOK, invoice, "invoice updated")
}

// DeleteInvoice removes an invoice and its archived document.
// @Summary Delete an invoice
// @Tags Invoice
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} response.Envelope[any]
// @Failure 400 {object} response.Envelope[any] "Unknown invoice"
// @Router /factura/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteInvoice")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to delete invoice")

		response.WithDeleteError(w, err)

		return
	}

	scope.AddEvent("Invoice deleted")

	response.WithMessage(w, http.StatusOK, "invoice deleted")
}
