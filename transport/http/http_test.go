package http

import (
	"hotel/config"
	jwtMocks "hotel/infras/jwt/mocks"
	"hotel/infras/otel/mocks"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newServer(t *testing.T) *HTTP {
	t.Helper()

	ctrl := gomock.NewController(t)
	cfg := &config.Config{}
	ot := mocks.NewOtel()

	return New(
		cfg,
		router.New(router.DomainHandlers{}),
		middleware.NewAppMiddleware(ot, cfg, cacheMocks.NewMockRedisCache(ctrl)),
		middleware.NewAuthRoleMiddleware(jwtMocks.NewMockJWT(ctrl), ot, nil, cfg),
		ot,
	)
}

func TestHTTP_Health(t *testing.T) {
	server := newServer(t)

	tests := []struct {
		name       string
		state      ServerState
		expectCode int
	}{
		{name: "ready", state: ServerStateReady, expectCode: http.StatusOK},
		{name: "grace period", state: ServerStateInGracePeriod, expectCode: http.StatusServiceUnavailable},
		{name: "cleanup period", state: ServerStateInCleanupPeriod, expectCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server.setup()
			server.setState(tt.state)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.expectCode, recorder.Code)
		})
	}
}

func TestHTTP_RequestIDOnEveryResponse(t *testing.T) {
	server := newServer(t)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/unknown", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
}
