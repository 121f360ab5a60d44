package room_test

import (
	"encoding/json"
	"hotel/infras/otel/mocks"
	roomMocks "hotel/internal/domains/room/mocks"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/handlers/room"
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

func setup(t *testing.T) (*roomMocks.MockRoomService, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := roomMocks.NewMockRoomService(ctrl)

	handler := room.New(svc, mocks.NewOtel())
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

func TestHandler_GetRooms(t *testing.T) {
	for _, target := range []string{"/habitacion", "/habitaciones"} {
		t.Run(target, func(t *testing.T) {
			svc, router := setup(t)
			svc.EXPECT().GetAll(gomock.Any(), gomock.Any()).Return([]dto.RoomResponse{{ID: 1, Number: 101}}, nil)

			recorder, res := serve(t, router, http.MethodGet, target, "")

			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.True(t, res.Success)
		})
	}
}

func TestHandler_GetAvailableRooms(t *testing.T) {
	t.Run("some free", func(t *testing.T) {
		svc, router := setup(t)
		svc.EXPECT().GetAvailable(gomock.Any(), gomock.Any()).Return([]dto.RoomResponse{{ID: 2, Available: true}}, nil)

		recorder, res := serve(t, router, http.MethodGet, "/habitacion/disponibles", "")

		assert.Equal(t, http.StatusOK, recorder.Code)

		var data []dto.RoomResponse
		require.NoError(t, json.Unmarshal(res.Data, &data))
		require.Len(t, data, 1)
		assert.True(t, data[0].Available)
	})

	t.Run("none free", func(t *testing.T) {
		svc, router := setup(t)
		svc.EXPECT().GetAvailable(gomock.Any(), gomock.Any()).Return([]dto.RoomResponse{}, nil)

		recorder, res := serve(t, router, http.MethodGet, "/habitacion/disponibles", "")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.JSONEq(t, `[]`, string(res.Data))
	})
}

func TestHandler_CreateRoom(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc, router := setup(t)
		svc.EXPECT().
			Create(gomock.Any(), dto.RoomRequest{Number: 101, Type: "double", Price: 100, Status: "clean", Available: true}).
			Return(dto.RoomResponse{ID: 1, Number: 101}, nil)

		recorder, res := serve(t, router, http.MethodPost, "/habitacion", `{"number":101,"type":"double","price":100,"status":"clean","available":true}`)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, []string{"room created"}, res.Messages)
	})

	t.Run("missing number", func(t *testing.T) {
		_, router := setup(t)

		recorder, res := serve(t, router, http.MethodPost, "/habitacion", `{"type":"double","price":100,"status":"clean"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, []string{"number must be greater than or equal to 1"}, res.Messages)
	})
}

func TestHandler_DeleteRoom(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		expectCode int
	}{
		{name: "deleted", expectCode: http.StatusOK},
		{name: "missing", err: failure.NotFound("room 1 not found"), expectCode: http.StatusBadRequest},
		{name: "has reservations", err: failure.Conflict("room 1 has 1 reservation(s)"), expectCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := setup(t)
			svc.EXPECT().Delete(gomock.Any(), int64(1)).Return(tt.err)

			recorder, _ := serve(t, router, http.MethodDelete, "/habitacion/1", "")

			assert.Equal(t, tt.expectCode, recorder.Code)
		})
	}
}

func TestHandler_PluralPrefix(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().Get(gomock.Any(), int64(4)).Return(dto.RoomResponse{ID: 4, Number: 104}, nil)
	svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.RoomResponse{ID: 5, Number: 105}, nil)
	svc.EXPECT().Update(gomock.Any(), gomock.Any()).Return(dto.RoomResponse{ID: 5, Number: 106}, nil)
	svc.EXPECT().Delete(gomock.Any(), int64(5)).Return(nil)

	body := `{"number":105,"type":"double","price":100,"status":"clean"}`

	tests := []struct {
		method string
		target string
		body   string
	}{
		{method: http.MethodGet, target: "/habitaciones/4"},
		{method: http.MethodPost, target: "/habitaciones", body: body},
		{method: http.MethodPut, target: "/habitaciones", body: `{"id":5,"number":106,"type":"double","price":100,"status":"clean"}`},
		{method: http.MethodDelete, target: "/habitaciones/5"},
	}

	for _, tt := range tests {
		recorder, res := serve(t, router, tt.method, tt.target, tt.body)

		assert.Equal(t, http.StatusOK, recorder.Code, "%s %s", tt.method, tt.target)
		assert.True(t, res.Success, "%s %s", tt.method, tt.target)
	}
}
