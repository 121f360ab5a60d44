package dto

import (
	"hotel/internal/domains/room/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
)

type RoomRequest struct {
	ID        *int64  `json:"id" validate:"omitempty,gte=1"`
	Number    int     `json:"number" validate:"gte=1"`
	Type      string  `json:"type" validate:"required,notblank,max=100"`
	Price     float64 `json:"price" validate:"gte=0"`
	Status    string  `json:"status" validate:"required,notblank,max=50"`
	Available bool    `json:"available"`
}

func (r *RoomRequest) ToModel(user string) model.Room {
	return model.Room{
		Number:    r.Number,
		Type:      r.Type,
		Price:     r.Price,
		Status:    r.Status,
		Available: r.Available,
		Metadata:  gModel.NewMetadata(user, timezone.Now()),
	}
}

func (r *RoomRequest) ToUpdateFields(user string) map[string]any {
	return map[string]any{
		model.FieldNumber:        r.Number,
		model.FieldType:          r.Type,
		model.FieldPrice:         r.Price,
		model.FieldStatus:        r.Status,
		model.FieldAvailable:     r.Available,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}
}

type RoomResponse struct {
	ID        int64   `json:"id"`
	Number    int     `json:"number"`
	Type      string  `json:"type"`
	Price     float64 `json:"price"`
	Status    string  `json:"status"`
	Available bool    `json:"available"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Number = model.Number
	r.Type = model.Type
	r.Price = model.Price
	r.Status = model.Status
	r.Available = model.Available
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Room) []RoomResponse {
	res := make([]RoomResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
