package dto

import (
	clientDto "hotel/internal/domains/client/model/dto"
	serviceDto "hotel/internal/domains/hotelservice/model/dto"
	"hotel/internal/domains/reservation/model"
	roomDto "hotel/internal/domains/room/model/dto"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
)

// CreateReservationRequest asks for a new reservation priced from the stored room and service rates.
type CreateReservationRequest struct {
	StartDate  string  `json:"startDate" validate:"required,date"`
	EndDate    string  `json:"endDate" validate:"required,date"`
	RoomID     int64   `json:"roomId" validate:"required,gte=1"`
	ClientID   int64   `json:"clientId" validate:"required,gte=1"`
	ServiceIDs []int64 `json:"serviceIds" validate:"omitempty,dive,gte=1"`
}

// ReservationRequest is a full reservation as sent to the plain create and update endpoints.
// Nights and total are always derived, so the body does not carry them.
type ReservationRequest struct {
	ID         *int64  `json:"id" validate:"omitempty,gte=1"`
	StartDate  string  `json:"startDate" validate:"required,date"`
	EndDate    string  `json:"endDate" validate:"required,date"`
	RoomID     int64   `json:"roomId" validate:"required,gte=1"`
	ClientID   int64   `json:"clientId" validate:"required,gte=1"`
	ServiceIDs []int64 `json:"serviceIds" validate:"omitempty,dive,gte=1"`
	State      string  `json:"state" validate:"omitempty,reservation_state"`
}

// Stay holds the parsed dates of a request.
type Stay struct {
	Start gModel.Date
	End   gModel.Date
}

// ParseStay reads both dates. A malformed date is a bad request.
func ParseStay(startDate, endDate string) (Stay, error) {
	start, err := gModel.ParseDate(startDate)
	if err != nil {
		return Stay{}, failure.BadRequestFromString("startDate must be a date formatted as YYYY-MM-DD") // nolint:wrapcheck
	}

	end, err := gModel.ParseDate(endDate)
	if err != nil {
		return Stay{}, failure.BadRequestFromString("endDate must be a date formatted as YYYY-MM-DD") // nolint:wrapcheck
	}

	return Stay{Start: start, End: end}, nil
}

// ReservationFilter narrows a listing to a client and/or a room.
type ReservationFilter struct {
	ClientID *int64
	RoomID   *int64
}

func (f ReservationFilter) ToFilterGroup() gDto.FilterGroup {
	filters := []any{}

	if f.ClientID != nil {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldClientID,
			Value:    *f.ClientID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if f.RoomID != nil {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldRoomID,
			Value:    *f.RoomID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if len(filters) == 0 {
		return gDto.FilterGroup{}
	}

	return gDto.FilterGroup{Filters: filters, Operator: gDto.FilterGroupOperatorAnd}
}

type ReservationResponse struct {
	ID         int64                        `json:"id"`
	StartDate  string                       `json:"startDate"`
	EndDate    string                       `json:"endDate"`
	Nights     int                          `json:"nights"`
	TotalPrice float64                      `json:"totalPrice"`
	State      string                       `json:"state"`
	RoomID     int64                        `json:"roomId"`
	ClientID   int64                        `json:"clientId"`
	ServiceIDs []int64                      `json:"serviceIds"`
	Room       *roomDto.RoomResponse        `json:"room"`
	Client     *clientDto.ClientResponse    `json:"client"`
	Services   []serviceDto.ServiceResponse `json:"services"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.StartDate = model.StartDate.String()
	r.EndDate = model.EndDate.String()
	r.Nights = model.Nights
	r.TotalPrice = model.TotalPrice
	r.State = model.State
	r.RoomID = model.RoomID
	r.ClientID = model.ClientID
	r.ServiceIDs = []int64{}
	r.Services = []serviceDto.ServiceResponse{}
	r.Metadata.FromModel(model.Metadata)
}

// WithServices attaches the booked services and keeps ServiceIDs in step with them.
func (r *ReservationResponse) WithServices(services []serviceDto.ServiceResponse) {
	r.Services = services
	r.ServiceIDs = make([]int64, len(services))

	for i, service := range services {
		r.ServiceIDs[i] = service.ID
	}
}

// ReservationEvent is the payload published when a reservation changes.
type ReservationEvent struct {
	Event       string              `json:"event"`
	Reservation ReservationResponse `json:"reservation"`
	OccurredAt  string              `json:"occurredAt"`
}

func NewReservationEvent(event string, reservation ReservationResponse) ReservationEvent {
	return ReservationEvent{
		Event:       event,
		Reservation: reservation,
		OccurredAt:  timezone.Format(timezone.Now(), constant.DateFormat),
	}
}
