package model

import (
	"hotel/shared/model"
	"time"
)

const (
	TableName  = "employees"
	EntityName = "employee"

	FieldID                   = "id"
	FieldName                 = "name"
	FieldRole                 = "role"
	FieldIdentificationNumber = "identification_number"
	FieldSalary               = "salary"
	FieldHiredAt              = "hired_at"

	ReferencedByTable  = "service_employees"
	ReferencedByColumn = "employee_id"
)

type Employee struct {
	ID                   int64     `db:"id"`
	Name                 string    `db:"name"`
	Role                 string    `db:"role"`
	IdentificationNumber int64     `db:"identification_number"`
	Salary               float64   `db:"salary"`
	HiredAt              time.Time `db:"hired_at"`
	model.Metadata
}
