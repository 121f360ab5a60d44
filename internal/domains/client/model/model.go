package model

import "hotel/shared/model"

const (
	TableName  = "clients"
	EntityName = "client"

	FieldID      = "id"
	FieldName    = "name"
	FieldAddress = "address"
	FieldPhone   = "phone"
	FieldEmail   = "email"

	ReferencedByTable  = "reservations"
	ReferencedByColumn = "client_id"
)

type Client struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	Address string `db:"address"`
	Phone   string `db:"phone"`
	Email   string `db:"email"`
	model.Metadata
}
