package reservation_test

import (
	"encoding/json"
	"hotel/infras/otel/mocks"
	reservationMocks "hotel/internal/domains/reservation/mocks"
	"hotel/internal/domains/reservation/model/dto"
	"hotel/internal/handlers/reservation"
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

func setup(t *testing.T) (*reservationMocks.MockReservationService, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := reservationMocks.NewMockReservationService(ctrl)

	handler := reservation.New(svc, mocks.NewOtel())
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

func TestHandler_GetReservations(t *testing.T) {
	t.Run("filters by client and room", func(t *testing.T) {
		svc, router := setup(t)
		svc.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, _ any, filter dto.ReservationFilter) ([]dto.ReservationResponse, error) {
				require.NotNil(t, filter.ClientID)
				require.NotNil(t, filter.RoomID)
				assert.Equal(t, int64(2), *filter.ClientID)
				assert.Equal(t, int64(5), *filter.RoomID)

				return []dto.ReservationResponse{{ID: 1}}, nil
			})

		recorder, res := serve(t, router, http.MethodGet, "/reserva?clientId=2&roomId=5", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.True(t, res.Success)
	})

	t.Run("no filter", func(t *testing.T) {
		svc, router := setup(t)
		svc.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), dto.ReservationFilter{}).
			Return([]dto.ReservationResponse{}, nil)

		recorder, res := serve(t, router, http.MethodGet, "/reserva", "")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.JSONEq(t, `[]`, string(res.Data))
	})

	t.Run("malformed filter", func(t *testing.T) {
		_, router := setup(t)

		recorder, _ := serve(t, router, http.MethodGet, "/reserva?clientId=x", "")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestHandler_GetReservationByID(t *testing.T) {
	svc, router := setup(t)
	svc.EXPECT().Get(gomock.Any(), int64(9)).Return(dto.ReservationResponse{}, failure.NotFound("reservation 9 not found"))

	recorder, res := serve(t, router, http.MethodGet, "/reserva/9", "")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, []string{"reservation 9 not found"}, res.Messages)
}

func TestHandler_RequestReservation(t *testing.T) {
	body := `{"startDate":"2024-05-01","endDate":"2024-05-04","roomId":1,"clientId":2,"serviceIds":[3]}`

	t.Run("priced and pending", func(t *testing.T) {
		svc, router := setup(t)
		svc.EXPECT().
			Create(gomock.Any(), dto.CreateReservationRequest{
				StartDate:  "2024-05-01",
				EndDate:    "2024-05-04",
				RoomID:     1,
				ClientID:   2,
				ServiceIDs: []int64{3},
			}).
			Return(dto.ReservationResponse{ID: 1, Nights: 3, TotalPrice: 320, State: "PENDING"}, nil)

		recorder, res := serve(t, router, http.MethodPost, "/reserva/solicitud", body)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var data dto.ReservationResponse
		require.NoError(t, json.Unmarshal(res.Data, &data))
		assert.Equal(t, 3, data.Nights)
		assert.Equal(t, "PENDING", data.State)
	})

	t.Run("unknown room", func(t *testing.T) {
		svc, router := setup(t)
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.ReservationResponse{}, failure.NotFound("room 1 not found"))

		recorder, _ := serve(t, router, http.MethodPost, "/reserva/solicitud", body)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("missing room", func(t *testing.T) {
		_, router := setup(t)

		recorder, res := serve(t, router, http.MethodPost, "/reserva/solicitud", `{"startDate":"2024-05-01","endDate":"2024-05-04","clientId":2}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, []string{"roomId is required"}, res.Messages)
	})

	t.Run("stay rejected", func(t *testing.T) {
		svc, router := setup(t)
		svc.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(dto.ReservationResponse{}, failure.BadRequestFromString("endDate must be after startDate"))

		recorder, _ := serve(t, router, http.MethodPost, "/reserva/solicitud", body)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestHandler_SaveAndUpdateReservation(t *testing.T) {
	body := `{"startDate":"2024-05-01","endDate":"2024-05-04","roomId":1,"clientId":2,"state":"CONFIRMED"}`

	t.Run("save", func(t *testing.T) {
		svc, router := setup(t)
		svc.EXPECT().Save(gomock.Any(), gomock.Any()).Return(dto.ReservationResponse{ID: 4, State: "CONFIRMED"}, nil)

		recorder, res := serve(t, router, http.MethodPost, "/reserva", body)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, []string{"reservation created"}, res.Messages)
	})

	t.Run("update without id", func(t *testing.T) {
		svc, router := setup(t)
		svc.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			Return(dto.ReservationResponse{}, failure.BadRequestFromString("a valid id is required to update a reservation"))

		recorder, _ := serve(t, router, http.MethodPut, "/reserva", body)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("unknown state", func(t *testing.T) {
		_, router := setup(t)

		recorder, res := serve(t, router, http.MethodPost, "/reserva", strings.Replace(body, "CONFIRMED", "BOOKED", 1))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, []string{"state must be one of CONFIRMED PENDING CANCELLED"}, res.Messages)
	})
}

func TestHandler_DeleteReservation(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		expectCode int
	}{
		{name: "deleted", expectCode: http.StatusOK},
		{name: "missing", err: failure.NotFound("reservation 6 not found"), expectCode: http.StatusBadRequest},
		{name: "invoiced", err: failure.Conflict("reservation 6 has an invoice"), expectCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := setup(t)
			svc.EXPECT().Delete(gomock.Any(), int64(6)).Return(tt.err)

			recorder, res := serve(t, router, http.MethodDelete, "/reserva/6", "")

			assert.Equal(t, tt.expectCode, recorder.Code)
			assert.Equal(t, tt.err == nil, res.Success)
		})
	}
}
