package auth

import (
	"hotel/infras/otel"
	"hotel/internal/domains/auth/model/dto"
	"hotel/internal/domains/auth/service"
	"hotel/shared/constant"
	"hotel/shared/validator"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/auth", func(routerGroup chi.Router) {
		routerGroup.Post("/token", handler.IssueToken)
	})
}

// IssueToken exchanges the staff API key for a short lived access token.
// @Summary Issue an access token
// @Description Trade the configured API key for a bearer token accepted by the mutating endpoints.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.TokenRequest true "Token request"
// @Success 200 {object} response.Envelope[dto.TokenResponse]
// @Failure 400 {object} response.Envelope[any]
// @Failure 401 {object} response.Envelope[any]
// @Router /auth/token [post]
func (handler *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".IssueToken")
	defer scope.End()

	req := dto.TokenRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	token, err := handler.service.IssueToken(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("subject", req.Subject).Msg("failed to issue token")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Token issued")

	response.WithJSON(w, http.StatusOK, token)
}
