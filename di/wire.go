//go:build wireinject
// +build wireinject

package di

import (
	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/infras/redis"
	"hotel/infras/s3"
	authService "hotel/internal/domains/auth/service"
	clientRepository "hotel/internal/domains/client/repository"
	clientService "hotel/internal/domains/client/service"
	employeeRepository "hotel/internal/domains/employee/repository"
	employeeService "hotel/internal/domains/employee/service"
	hotelServiceRepository "hotel/internal/domains/hotelservice/repository"
	hotelServiceService "hotel/internal/domains/hotelservice/service"
	invoiceRepository "hotel/internal/domains/invoice/repository"
	invoiceService "hotel/internal/domains/invoice/service"
	reservationRepository "hotel/internal/domains/reservation/repository"
	reservationService "hotel/internal/domains/reservation/service"
	roomRepository "hotel/internal/domains/room/repository"
	roomService "hotel/internal/domains/room/service"
	authHandler "hotel/internal/handlers/auth"
	clientHandler "hotel/internal/handlers/client"
	employeeHandler "hotel/internal/handlers/employee"
	hotelServiceHandler "hotel/internal/handlers/hotelservice"
	invoiceHandler "hotel/internal/handlers/invoice"
	reservationHandler "hotel/internal/handlers/reservation"
	roomHandler "hotel/internal/handlers/room"
	"hotel/permissions"
	"hotel/shared/cache"
	"hotel/transport/http"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var repositories = wire.NewSet(
	clientRepository.New,
	employeeRepository.New,
	roomRepository.New,
	hotelServiceRepository.New,
	reservationRepository.New,
	invoiceRepository.New,
)

var domains = wire.NewSet(
	authService.New,
	clientService.New,
	employeeService.New,
	roomService.New,
	hotelServiceService.New,
	reservationService.New,
	invoiceService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	clientHandler.New,
	employeeHandler.New,
	roomHandler.New,
	hotelServiceHandler.New,
	reservationHandler.New,
	invoiceHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		repositories,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
