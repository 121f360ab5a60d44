package model

import "hotel/shared/model"

const (
	TableName  = "invoices"
	EntityName = "invoice"

	FieldID            = "id"
	FieldReservationID = "reservation_id"
	FieldTotal         = "total"
	FieldDetails       = "details"
	FieldDocumentURL   = "document_url"

	DocumentDirectory = "invoice"
)

type Invoice struct {
	ID            int64   `db:"id"`
	ReservationID int64   `db:"reservation_id"`
	Total         float64 `db:"total"`
	Details       string  `db:"details"`
	DocumentURL   string  `db:"document_url"`
	model.Metadata
}
