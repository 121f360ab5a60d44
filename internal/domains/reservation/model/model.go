package model

import "hotel/shared/model"

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID         = "id"
	FieldStartDate  = "start_date"
	FieldEndDate    = "end_date"
	FieldNights     = "nights"
	FieldTotalPrice = "total_price"
	FieldRoomID     = "room_id"
	FieldClientID   = "client_id"
	FieldState      = "state"

	ServiceLinkTable       = "reservation_services"
	ServiceLinkEntityName  = "reservation_service"
	FieldLinkReservationID = "reservation_id"
	FieldLinkServiceID     = "service_id"

	ReferencedByTable  = "invoices"
	ReferencedByColumn = "reservation_id"
)

type Reservation struct {
	ID         int64      `db:"id"`
	StartDate  model.Date `db:"start_date"`
	EndDate    model.Date `db:"end_date"`
	Nights     int        `db:"nights"`
	TotalPrice float64    `db:"total_price"`
	RoomID     int64      `db:"room_id"`
	ClientID   int64      `db:"client_id"`
	State      string     `db:"state"`
	model.Metadata
}

// ReservationService is a row of the link between a reservation and the services booked with it.
type ReservationService struct {
	ReservationID int64 `db:"reservation_id"`
	ServiceID     int64 `db:"service_id"`
}

func NewServiceLinks(reservationID int64, serviceIDs []int64) []ReservationService {
	links := make([]ReservationService, 0, len(serviceIDs))
	for _, serviceID := range serviceIDs {
		links = append(links, ReservationService{ReservationID: reservationID, ServiceID: serviceID})
	}

	return links
}
