package dto_test

import (
	"hotel/internal/domains/reservation/model"
	"hotel/internal/domains/reservation/model/dto"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStay(t *testing.T) {
	stay, err := dto.ParseStay("2024-01-01", "2024-01-04")

	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", stay.Start.String())
	assert.Equal(t, "2024-01-04", stay.End.String())

	_, err = dto.ParseStay("2024-01-01", "2024-13-01")

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Equal(t, "endDate must be a date formatted as YYYY-MM-DD", err.Error())
}

func TestReservationFilter_ToFilterGroup(t *testing.T) {
	clientID := int64(3)
	roomID := int64(8)

	t.Run("no filter", func(t *testing.T) {
		group := dto.ReservationFilter{}.ToFilterGroup()

		where, _ := group.GetWhereClause()
		assert.Empty(t, where)
	})

	t.Run("client and room", func(t *testing.T) {
		group := dto.ReservationFilter{ClientID: &clientID, RoomID: &roomID}.ToFilterGroup()

		where, args := group.GetWhereClause()

		assert.Equal(t, "(reservations.client_id = :client_id AND reservations.room_id = :room_id)", where)
		assert.Equal(t, clientID, args[model.FieldClientID])
		assert.Equal(t, roomID, args[model.FieldRoomID])
	})
}

func TestReservationResponse_WithServices(t *testing.T) {
	var res dto.ReservationResponse
	res.FromModel(model.Reservation{ID: 1})

	assert.Equal(t, []int64{}, res.ServiceIDs)
	assert.Empty(t, res.Services)
}

func TestCreateReservationRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.CreateReservationRequest
		wantErr string
	}{
		{
			name: "valid",
			req:  dto.CreateReservationRequest{StartDate: "2024-01-01", EndDate: "2024-01-04", RoomID: 1, ClientID: 1},
		},
		{
			name:    "bad start date",
			req:     dto.CreateReservationRequest{StartDate: "2024/01/01", EndDate: "2024-01-04", RoomID: 1, ClientID: 1},
			wantErr: "startDate must be a date formatted as YYYY-MM-DD",
		},
		{
			name:    "missing room",
			req:     dto.CreateReservationRequest{StartDate: "2024-01-01", EndDate: "2024-01-04", ClientID: 1},
			wantErr: "roomId is required",
		},
		{
			name:    "invalid service id",
			req:     dto.CreateReservationRequest{StartDate: "2024-01-01", EndDate: "2024-01-04", RoomID: 1, ClientID: 1, ServiceIDs: []int64{0}},
			wantErr: "serviceIds[0] must be greater than or equal to 1",
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

func TestReservationRequest_StateValidation(t *testing.T) {
	req := dto.ReservationRequest{StartDate: "2024-01-01", EndDate: "2024-01-04", RoomID: 1, ClientID: 1, State: "ARCHIVED"}

	err := validator.ValidateStruct(&req)

	require.Error(t, err)
	assert.Equal(t, "state must be one of CONFIRMED PENDING CANCELLED", err.Error())
}
