package dto

import (
	"hotel/internal/domains/client/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
)

// ClientRequest is the body of both create and update. Create must omit the id, update must carry it.
type ClientRequest struct {
	ID      *int64 `json:"id" validate:"omitempty,gte=1"`
	Name    string `json:"name" validate:"required,notblank,max=255"`
	Address string `json:"address" validate:"required,notblank,max=255"`
	Phone   string `json:"phone" validate:"required,notblank,max=50"`
	Email   string `json:"email" validate:"required,email,max=255"`
}

func (c *ClientRequest) ToModel(user string) model.Client {
	return model.Client{
		Name:     c.Name,
		Address:  c.Address,
		Phone:    c.Phone,
		Email:    c.Email,
		Metadata: gModel.NewMetadata(user, timezone.Now()),
	}
}

// ToUpdateFields lists every editable column, so a PUT replaces the stored values.
func (c *ClientRequest) ToUpdateFields(user string) map[string]any {
	return map[string]any{
		model.FieldName:          c.Name,
		model.FieldAddress:       c.Address,
		model.FieldPhone:         c.Phone,
		model.FieldEmail:         c.Email,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}
}

type ClientResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	gDto.Metadata
}

func (r *ClientResponse) FromModel(model model.Client) {
	r.ID = model.ID
	r.Name = model.Name
	r.Address = model.Address
	r.Phone = model.Phone
	r.Email = model.Email
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Client) []ClientResponse {
	res := make([]ClientResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
