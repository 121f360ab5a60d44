package auth_test

import (
	"encoding/json"
	"hotel/infras/otel/mocks"
	authMocks "hotel/internal/domains/auth/mocks"
	"hotel/internal/domains/auth/model/dto"
	"hotel/internal/handlers/auth"
	"hotel/shared/failure"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type envelope struct {
	Success  bool            `json:"success"`
	Messages []string        `json:"messages"`
	Data     json.RawMessage `json:"data"`
}

func TestHandler_IssueToken(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		configure  func(svc *authMocks.MockAuthService)
		expectCode int
		expectMsg  []string
	}{
		{
			name: "issued",
			body: `{"apiKey":"secret","subject":"front-desk"}`,
			configure: func(svc *authMocks.MockAuthService) {
				svc.EXPECT().
					IssueToken(gomock.Any(), dto.TokenRequest{APIKey: "secret", Subject: "front-desk"}).
					Return(dto.TokenResponse{AccessToken: "abc", TokenType: "Bearer", ExpiresIn: 900}, nil)
			},
			expectCode: http.StatusOK,
			expectMsg:  []string{},
		},
		{
			name: "wrong key",
			body: `{"apiKey":"nope","subject":"front-desk"}`,
			configure: func(svc *authMocks.MockAuthService) {
				svc.EXPECT().IssueToken(gomock.Any(), gomock.Any()).Return(dto.TokenResponse{}, failure.Unauthorized("invalid api key"))
			},
			expectCode: http.StatusUnauthorized,
			expectMsg:  []string{"invalid api key"},
		},
		{
			name:       "missing subject",
			body:       `{"apiKey":"secret"}`,
			configure:  func(*authMocks.MockAuthService) {},
			expectCode: http.StatusBadRequest,
			expectMsg:  []string{"subject is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := authMocks.NewMockAuthService(ctrl)
			tt.configure(svc)

			handler := auth.New(svc, mocks.NewOtel())
			router := chi.NewRouter()
			handler.Router(router)

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(tt.body)))

			var res envelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))

			assert.Equal(t, tt.expectCode, recorder.Code)
			assert.Equal(t, tt.expectMsg, res.Messages)
		})
	}
}
