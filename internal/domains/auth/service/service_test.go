package service_test

import (
	"context"
	"errors"
	"hotel/config"
	"hotel/infras/jwt"
	jwtMocks "hotel/infras/jwt/mocks"
	"hotel/infras/otel/mocks"
	"hotel/internal/domains/auth/model/dto"
	"hotel/internal/domains/auth/service"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAuthService_IssueToken(t *testing.T) {
	tests := []struct {
		name      string
		apiKey    string
		req       dto.TokenRequest
		setupMock func(mockJWT *jwtMocks.MockJWT)
		wantCode  int
	}{
		{
			name:   "valid api key",
			apiKey: "secret-key",
			req:    dto.TokenRequest{APIKey: "secret-key", Subject: "front-desk"},
			setupMock: func(mockJWT *jwtMocks.MockJWT) {
				mockJWT.EXPECT().
					GenerateToken("front-desk", constant.RoleStaff).
					Return(&jwt.Token{AccessToken: "token", TokenType: jwt.TokenTypeBearer, ExpiresIn: 3600}, nil)
			},
		},
		{
			name:      "wrong api key",
			apiKey:    "secret-key",
			req:       dto.TokenRequest{APIKey: "guess", Subject: "front-desk"},
			setupMock: func(_ *jwtMocks.MockJWT) {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name:      "api key not configured",
			req:       dto.TokenRequest{APIKey: "", Subject: "front-desk"},
			setupMock: func(_ *jwtMocks.MockJWT) {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name:   "signing failure",
			apiKey: "secret-key",
			req:    dto.TokenRequest{APIKey: "secret-key", Subject: "front-desk"},
			setupMock: func(mockJWT *jwtMocks.MockJWT) {
				mockJWT.EXPECT().GenerateToken(gomock.Any(), gomock.Any()).Return(nil, errors.New("no secret"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockJWT := jwtMocks.NewMockJWT(ctrl)
			tt.setupMock(mockJWT)

			cfg := &config.Config{}
			cfg.App.APIKey = tt.apiKey

			svc := service.New(cfg, mocks.NewOtel(), mockJWT)

			res, err := svc.IssueToken(context.Background(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "token", res.AccessToken)
			assert.Equal(t, jwt.TokenTypeBearer, res.TokenType)
			assert.Equal(t, int64(3600), res.ExpiresIn)
		})
	}
}
