package dto_test

import (
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/shared/validator"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomRequest_ToUpdateFields_KeepsFalseFlags(t *testing.T) {
	req := dto.RoomRequest{Number: 101, Type: "double", Price: 0, Status: "maintenance", Available: false}

	fields := req.ToUpdateFields("staff-1")

	assert.Equal(t, false, fields[model.FieldAvailable])
	assert.Equal(t, 0.0, fields[model.FieldPrice])
	assert.Equal(t, 101, fields[model.FieldNumber])
}

func TestRoomRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.RoomRequest
		wantErr string
	}{
		{
			name: "valid free room",
			req:  dto.RoomRequest{Number: 1, Type: "single", Price: 0, Status: "clean"},
		},
		{
			name:    "room number below one",
			req:     dto.RoomRequest{Number: 0, Type: "single", Price: 10, Status: "clean"},
			wantErr: "number must be greater than or equal to 1",
		},
		{
			name:    "negative price",
			req:     dto.RoomRequest{Number: 1, Type: "single", Price: -1, Status: "clean"},
			wantErr: "price must be greater than or equal to 0",
		},
		{
			name:    "missing type",
			req:     dto.RoomRequest{Number: 1, Price: 10, Status: "clean"},
			wantErr: "type is required",
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
