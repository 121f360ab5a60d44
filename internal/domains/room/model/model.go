package model

import "hotel/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID        = "id"
	FieldNumber    = "number"
	FieldType      = "type"
	FieldPrice     = "price"
	FieldStatus    = "status"
	FieldAvailable = "available"

	ReferencedByTable  = "reservations"
	ReferencedByColumn = "room_id"
)

type Room struct {
	ID        int64   `db:"id"`
	Number    int     `db:"number"`
	Type      string  `db:"type"`
	Price     float64 `db:"price"`
	Status    string  `db:"status"`
	Available bool    `db:"available"`
	model.Metadata
}
