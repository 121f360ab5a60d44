package dto

import (
	"hotel/internal/domains/invoice/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
	"time"
)

// InvoiceRequest is the body of the plain create and update endpoints.
type InvoiceRequest struct {
	ID            *int64  `json:"id" validate:"omitempty,gte=1"`
	ReservationID int64   `json:"reservationId" validate:"required,gte=1"`
	Total         float64 `json:"total" validate:"gte=0"`
	Details       string  `json:"details" validate:"max=2000"`
}

func (i *InvoiceRequest) ToModel(user string) model.Invoice {
	return model.Invoice{
		ReservationID: i.ReservationID,
		Total:         i.Total,
		Details:       i.Details,
		Metadata:      gModel.NewMetadata(user, timezone.Now()),
	}
}

func (i *InvoiceRequest) ToUpdateFields(user string) map[string]any {
	return map[string]any{
		model.FieldReservationID: i.ReservationID,
		model.FieldTotal:         i.Total,
		model.FieldDetails:       i.Details,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}
}

type InvoiceResponse struct {
	ID            int64   `json:"id"`
	ReservationID int64   `json:"reservationId"`
	Total         float64 `json:"total"`
	Details       string  `json:"details"`
	DocumentURL   string  `json:"documentUrl,omitempty"`
	gDto.Metadata
}

func (r *InvoiceResponse) FromModel(model model.Invoice) {
	r.ID = model.ID
	r.ReservationID = model.ReservationID
	r.Total = model.Total
	r.Details = model.Details
	r.DocumentURL = model.DocumentURL
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Invoice) []InvoiceResponse {
	res := make([]InvoiceResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

// DocumentLine is one billed service of an archived invoice.
type DocumentLine struct {
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Amount float64 `json:"amount"`
}

// Document is the JSON invoice archived to object storage.
type Document struct {
	InvoiceID     int64          `json:"invoiceId"`
	ReservationID int64          `json:"reservationId"`
	ClientID      int64          `json:"clientId"`
	RoomNumber    int            `json:"roomNumber"`
	RoomPrice     float64        `json:"roomPrice"`
	StartDate     string         `json:"startDate"`
	EndDate       string         `json:"endDate"`
	Nights        int            `json:"nights"`
	Services      []DocumentLine `json:"services"`
	Total         float64        `json:"total"`
	IssuedAt      string         `json:"issuedAt"`
}

// InvoiceEvent is the payload published once an invoice is generated.
type InvoiceEvent struct {
	Event      string          `json:"event"`
	Invoice    InvoiceResponse `json:"invoice"`
	OccurredAt string          `json:"occurredAt"`
}

func NewInvoiceEvent(event string, invoice InvoiceResponse, at time.Time) InvoiceEvent {
	return InvoiceEvent{
		Event:      event,
		Invoice:    invoice,
		OccurredAt: timezone.Format(at, constant.DateFormat),
	}
}
