package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Auth=MockAuthService

import (
	"context"
	"crypto/subtle"
	"fmt"
	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/otel"
	"hotel/internal/domains/auth/model/dto"
	"hotel/shared/constant"
	"hotel/shared/failure"

	"github.com/rs/zerolog/log"
)

type Auth interface {
	IssueToken(ctx context.Context, req dto.TokenRequest) (dto.TokenResponse, error)
}

type serviceImpl struct {
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

// IssueToken signs a staff token when the API key matches the configured one.
func (s *serviceImpl) IssueToken(ctx context.Context, req dto.TokenRequest) (res dto.TokenResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IssueToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if s.cfg.App.APIKey == "" || subtle.ConstantTimeCompare([]byte(req.APIKey), []byte(s.cfg.App.APIKey)) != 1 {
		log.Warn().Str("subject", req.Subject).Msg("rejected token request with invalid api key")

		return res, failure.Unauthorized("invalid api key") // nolint:wrapcheck
	}

	token, err := s.jwtService.GenerateToken(req.Subject, constant.RoleStaff)
	if err != nil {
		log.Error().Err(err).Str("subject", req.Subject).Msg("failed to generate token")

		return res, fmt.Errorf("failed to generate token: %w", err)
	}

	res.FromToken(token)

	return res, nil
}
