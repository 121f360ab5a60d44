package dto_test

import (
	"hotel/internal/domains/client/model"
	"hotel/internal/domains/client/model/dto"
	"hotel/shared/constant"
	gModel "hotel/shared/model"
	"hotel/shared/validator"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientRequest_ToModel(t *testing.T) {
	req := dto.ClientRequest{
		Name:    "Ana Torres",
		Address: "Calle 10 #4-20",
		Phone:   "3001234567",
		Email:   "ana@example.com",
	}

	mod := req.ToModel("staff-1")

	assert.Zero(t, mod.ID)
	assert.Equal(t, "Ana Torres", mod.Name)
	assert.Equal(t, "Calle 10 #4-20", mod.Address)
	assert.Equal(t, "3001234567", mod.Phone)
	assert.Equal(t, "ana@example.com", mod.Email)
	assert.Equal(t, "staff-1", mod.CreatedBy)
	assert.Equal(t, "staff-1", mod.ModifiedBy)
	assert.False(t, mod.CreatedAt.IsZero())
}

func TestClientRequest_ToUpdateFields(t *testing.T) {
	req := dto.ClientRequest{Name: "Ana", Address: "Calle 1", Phone: "1", Email: "ana@example.com"}

	fields := req.ToUpdateFields("staff-1")

	assert.Equal(t, "Ana", fields[model.FieldName])
	assert.Equal(t, "Calle 1", fields[model.FieldAddress])
	assert.Equal(t, "1", fields[model.FieldPhone])
	assert.Equal(t, "ana@example.com", fields[model.FieldEmail])
	assert.Equal(t, "staff-1", fields[constant.FieldModifiedBy])
	assert.Contains(t, fields, constant.FieldModifiedAt)
	assert.NotContains(t, fields, constant.FieldCreatedBy)
}

func TestClientResponse_FromModel(t *testing.T) {
	created := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	var res dto.ClientResponse
	res.FromModel(model.Client{
		ID:       7,
		Name:     "Ana",
		Address:  "Calle 1",
		Phone:    "1",
		Email:    "ana@example.com",
		Metadata: gModel.NewMetadata("staff-1", created),
	})

	assert.Equal(t, int64(7), res.ID)
	assert.Equal(t, "Ana", res.Name)
	assert.Equal(t, "staff-1", res.CreatedBy)
	assert.NotEmpty(t, res.CreatedAt)
}

func TestClientRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.ClientRequest
		wantErr string
	}{
		{
			name: "valid",
			req:  dto.ClientRequest{Name: "Ana", Address: "Calle 1", Phone: "1", Email: "ana@example.com"},
		},
		{
			name:    "missing name",
			req:     dto.ClientRequest{Address: "Calle 1", Phone: "1", Email: "ana@example.com"},
			wantErr: "name is required",
		},
		{
			name:    "blank address",
			req:     dto.ClientRequest{Name: "Ana", Address: "   ", Phone: "1", Email: "ana@example.com"},
			wantErr: "address must not be blank",
		},
		{
			name:    "invalid email",
			req:     dto.ClientRequest{Name: "Ana", Address: "Calle 1", Phone: "1", Email: "not-an-email"},
			wantErr: "email must be a valid email address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)

			if tt.wantErr == "" {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}
