package dto_test

import (
	"hotel/internal/domains/invoice/model"
	"hotel/internal/domains/invoice/model/dto"
	"hotel/shared/constant"
	"hotel/shared/validator"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceRequest_ToModel(t *testing.T) {
	req := dto.InvoiceRequest{ReservationID: 4, Total: 250.5, Details: "room 1, 2 night(s), no services"}

	invoice := req.ToModel("staff-1")

	assert.Equal(t, int64(4), invoice.ReservationID)
	assert.InDelta(t, 250.5, invoice.Total, 0.0001)
	assert.Equal(t, "room 1, 2 night(s), no services", invoice.Details)
	assert.Equal(t, "staff-1", invoice.CreatedBy)
	assert.Empty(t, invoice.DocumentURL)
}

func TestInvoiceRequest_ToUpdateFields(t *testing.T) {
	req := dto.InvoiceRequest{ReservationID: 4, Total: 10, Details: "x"}

	fields := req.ToUpdateFields("staff-1")

	assert.Equal(t, int64(4), fields[model.FieldReservationID])
	assert.InDelta(t, 10.0, fields[model.FieldTotal], 0.0001)
	assert.Equal(t, "x", fields[model.FieldDetails])
	assert.Equal(t, "staff-1", fields[constant.FieldModifiedBy])
	assert.NotContains(t, fields, model.FieldDocumentURL)
}

func TestInvoiceRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.InvoiceRequest
		wantErr string
	}{
		{name: "valid", req: dto.InvoiceRequest{ReservationID: 1, Total: 0}},
		{name: "missing reservation", req: dto.InvoiceRequest{Total: 1}, wantErr: "reservationId is required"},
		{name: "negative total", req: dto.InvoiceRequest{ReservationID: 1, Total: -1}, wantErr: "total must be greater than or equal to 0"},
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

func TestFromModels(t *testing.T) {
	res := dto.FromModels([]model.Invoice{
		{ID: 1, ReservationID: 2, Total: 3, Details: "d", DocumentURL: "https://cdn.example.com/invoice/1.json"},
	})

	require.Len(t, res, 1)
	assert.Equal(t, int64(1), res[0].ID)
	assert.Equal(t, int64(2), res[0].ReservationID)
	assert.Equal(t, "https://cdn.example.com/invoice/1.json", res[0].DocumentURL)
}
