package dto

import (
	"hotel/internal/domains/hotelservice/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
)

type ServiceRequest struct {
	ID          *int64  `json:"id" validate:"omitempty,gte=1"`
	Name        string  `json:"name" validate:"required,notblank,max=255"`
	Description string  `json:"description" validate:"max=1000"`
	Price       float64 `json:"price" validate:"gte=0"`
	Available   bool    `json:"available"`
	EmployeeIDs []int64 `json:"employeeIds" validate:"omitempty,dive,gte=1"`
}

func (r *ServiceRequest) ToModel(user string) model.Service {
	return model.Service{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Available:   r.Available,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

func (r *ServiceRequest) ToUpdateFields(user string) map[string]any {
	return map[string]any{
		model.FieldName:          r.Name,
		model.FieldDescription:   r.Description,
		model.FieldPrice:         r.Price,
		model.FieldAvailable:     r.Available,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}
}

type ServiceResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Available   bool    `json:"available"`
	EmployeeIDs []int64 `json:"employeeIds"`
	gDto.Metadata
}

func (r *ServiceResponse) FromModel(model model.Service, employeeIDs []int64) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Price = model.Price
	r.Available = model.Available
	r.EmployeeIDs = employeeIDs

	if r.EmployeeIDs == nil {
		r.EmployeeIDs = []int64{}
	}

	r.Metadata.FromModel(model.Metadata)
}

// FromModels pairs each service with its employee ids, keyed by service id.
func FromModels(models []model.Service, employeeIDs map[int64][]int64) []ServiceResponse {
	res := make([]ServiceResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod, employeeIDs[mod.ID])
	}

	return res
}
