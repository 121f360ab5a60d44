package main

import (
	"hotel/config"
	"hotel/di"
	"hotel/helper"
	"hotel/shared/logger"
)

// @title Hotel API
// @version 1.0
// @description Clients, employees, rooms, services, reservations and invoices of a hotel.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.Configure(cfg)

	helper.AutoMigrate(cfg)

	http := di.InitializeService()
	http.Serve()
}
