package router

import (
	"hotel/internal/handlers/auth"
	"hotel/internal/handlers/client"
	"hotel/internal/handlers/employee"
	"hotel/internal/handlers/hotelservice"
	"hotel/internal/handlers/invoice"
	"hotel/internal/handlers/reservation"
	"hotel/internal/handlers/room"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth         auth.Handler
	Client       client.Handler
	Employee     employee.Handler
	Room         room.Handler
	HotelService hotelservice.Handler
	Reservation  reservation.Handler
	Invoice      invoice.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

// SetupRoutes mounts every entity at the root, e.g. /cliente and /reserva.
func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Auth.Router(router)
	r.DomainHandlers.Client.Router(router)
	r.DomainHandlers.Employee.Router(router)
	r.DomainHandlers.Room.Router(router)
	r.DomainHandlers.HotelService.Router(router)
	r.DomainHandlers.Reservation.Router(router)
	r.DomainHandlers.Invoice.Router(router)
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
