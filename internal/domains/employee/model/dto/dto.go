package dto

import (
	"hotel/internal/domains/employee/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
	"time"
)

type EmployeeRequest struct {
	ID                   *int64    `json:"id" validate:"omitempty,gte=1"`
	Name                 string    `json:"name" validate:"required,notblank,max=255"`
	Role                 string    `json:"role" validate:"required,notblank,max=100"`
	IdentificationNumber int64     `json:"identificationNumber" validate:"gte=1"`
	Salary               float64   `json:"salary" validate:"gte=0"`
	HiredAt              time.Time `json:"hiredAt" validate:"required"`
}

func (e *EmployeeRequest) ToModel(user string) model.Employee {
	return model.Employee{
		Name:                 e.Name,
		Role:                 e.Role,
		IdentificationNumber: e.IdentificationNumber,
		Salary:               e.Salary,
		HiredAt:              e.HiredAt,
		Metadata:             gModel.NewMetadata(user, timezone.Now()),
	}
}

func (e *EmployeeRequest) ToUpdateFields(user string) map[string]any {
	return map[string]any{
		model.FieldName:                 e.Name,
		model.FieldRole:                 e.Role,
		model.FieldIdentificationNumber: e.IdentificationNumber,
		model.FieldSalary:               e.Salary,
		model.FieldHiredAt:              e.HiredAt,
		constant.FieldModifiedAt:        timezone.Now(),
		constant.FieldModifiedBy:        user,
	}
}

type EmployeeResponse struct {
	ID                   int64   `json:"id"`
	Name                 string  `json:"name"`
	Role                 string  `json:"role"`
	IdentificationNumber int64   `json:"identificationNumber"`
	Salary               float64 `json:"salary"`
	HiredAt              string  `json:"hiredAt"`
	gDto.Metadata
}

func (r *EmployeeResponse) FromModel(model model.Employee) {
	r.ID = model.ID
	r.Name = model.Name
	r.Role = model.Role
	r.IdentificationNumber = model.IdentificationNumber
	r.Salary = model.Salary
	r.HiredAt = timezone.Format(model.HiredAt, constant.DateFormat)
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
