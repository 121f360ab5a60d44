package model

import "hotel/shared/model"

const (
	TableName  = "services"
	EntityName = "service"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldAvailable   = "available"

	EmployeeLinkTable      = "service_employees"
	EmployeeLinkEntityName = "service_employee"
	FieldLinkServiceID     = "service_id"
	FieldLinkEmployeeID    = "employee_id"
)

type Service struct {
	ID          int64   `db:"id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	Available   bool    `db:"available"`
	model.Metadata
}

// ServiceEmployee is a row of the link between services and the employees assigned to them.
type ServiceEmployee struct {
	ServiceID  int64 `db:"service_id"`
	EmployeeID int64 `db:"employee_id"`
}

func NewEmployeeLinks(serviceID int64, employeeIDs []int64) []ServiceEmployee {
	links := make([]ServiceEmployee, 0, len(employeeIDs))
	for _, employeeID := range employeeIDs {
		links = append(links, ServiceEmployee{ServiceID: serviceID, EmployeeID: employeeID})
	}

	return links
}
