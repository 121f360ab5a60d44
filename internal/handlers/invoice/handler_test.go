package invoice_test

import (
	"encoding/json"
	"hotel/infras/otel/mocks"
	invoiceMocks "hotel/internal/domains/invoice/mocks"
	"hotel/internal/domains/invoice/model/dto"
	"hotel/internal/handlers/invoice"
	"hotel/shared/failure"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type envelope struct {
	Success  bool            `json:"success"`
	Messages []string        `json:"messages"`
	Data     json.RawMessage `json:"data"`
}

func setup(t *testing.T) (*invoiceMocks.MockInvoiceService, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := invoiceMocks.NewMockInvoiceService(ctrl)

	handler := invoice.New(svc, mocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func serve(t *testing.T, router http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	request := httptest.NewRequest(method, target, strings.NewReader(body))
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	var res envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))

	return recorder, res
}

func TestHandler_GenerateInvoice(t *testing.T) {
	tests := []struct {
		name       string
		result     dto.InvoiceResponse
		err        error
		expectCode int
		expectMsg  []string
	}{
		{
			name:       "generated",
			result:     dto.InvoiceResponse{ID: 1, ReservationID: 8, Total: 300, Details: "room 101, 3 night(s), no services"},
			expectCode: http.StatusOK,
			expectMsg:  []string{"invoice generated"},
		},
		{
			name:       "unknown reservation",
			err:        failure.NotFound("reservation 8 not found"),
			expectCode: http.StatusNotFound,
			expectMsg:  []string{"reservation 8 not found"},
		},
		{
			name:       "already invoiced",
			err:        failure.Conflict("reservation 8 is already invoiced"),
			expectCode: http.StatusBadRequest,
			expectMsg:  []string{"reservation 8 is already invoiced"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := setup(t)
			svc.EXPECT().Generate(gomock.Any(), int64(8)).Return(tt.result, tt.err)

			recorder, res := serve(t, router, http.MethodPost, "/factura/reserva/8", "")

			assert.Equal(t, tt.expectCode, recorder.Code)
			assert.Equal(t, tt.expectMsg, res.Messages)
		})
	}
}

func TestHandler_GetInvoiceByReservation(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc, router := setup(t)
		svc.EXPECT().GetByReservation(gomock.Any(), int64(8)).Return(dto.InvoiceResponse{ID: 2, ReservationID: 8, Total: 120}, nil)

		recorder, res := serve(t, router, http.MethodGet, "/factura/reserva/8", "")

		assert.Equal(t, http.StatusOK, recorder.Code)

		var data dto.InvoiceResponse
		require.NoError(t, json.Unmarshal(res.Data, &data))
		assert.Equal(t, int64(8), data.ReservationID)
		assert.InDelta(t, 120.0, data.Total, 0.0001)
	})

	t.Run("none", func(t *testing.T) {
		svc, router := setup(t)
		svc.EXPECT().GetByReservation(gomock.Any(), int64(8)).Return(dto.InvoiceResponse{}, failure.NotFound("reservation 8 has no invoice"))

		recorder, _ := serve(t, router, http.MethodGet, "/factura/reserva/8", "")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, router := setup(t)

		recorder, _ := serve(t, router, http.MethodGet, "/factura/reserva/0", "")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestHandler_GetInvoices(t *testing.T) {
	svc, router := setup(t)
	svc.EXPECT().GetAll(gomock.Any(), gomock.Any()).Return(nil, nil)

	recorder, res := serve(t, router, http.MethodGet, "/factura", "")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, []string{"no invoices found"}, res.Messages)
}

func TestHandler_CreateInvoice(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc, router := setup(t)
		svc.EXPECT().
			Create(gomock.Any(), dto.InvoiceRequest{ReservationID: 8, Total: 99.5, Details: "late checkout"}).
			Return(dto.InvoiceResponse{ID: 3}, nil)

		recorder, _ := serve(t, router, http.MethodPost, "/factura", `{"reservationId":8,"total":99.5,"details":"late checkout"}`)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("reservation already invoiced", func(t *testing.T) {
		svc, router := setup(t)
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.InvoiceResponse{}, failure.Conflict("reservation 8 is already invoiced"))

		recorder, _ := serve(t, router, http.MethodPost, "/factura", `{"reservationId":8,"total":1}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("negative total", func(t *testing.T) {
		_, router := setup(t)

		recorder, _ := serve(t, router, http.MethodPost, "/factura", `{"reservationId":8,"total":-1}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestHandler_DeleteInvoice(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		svc, router := setup(t)
		svc.EXPECT().Delete(gomock.Any(), int64(2)).Return(nil)

		recorder, res := serve(t, router, http.MethodDelete, "/factura/2", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, []string{"invoice deleted"}, res.Messages)
	})

	t.Run("missing", func(t *testing.T) {
		svc, router := setup(t)
		svc.EXPECT().Delete(gomock.Any(), int64(2)).Return(failure.NotFound("invoice 2 not found"))

		recorder, _ := serve(t, router, http.MethodDelete, "/factura/2", "")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
