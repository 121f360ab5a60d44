package service_test

import (
	"context"
	"errors"
	"hotel/config"
	"hotel/infras/kafka"
	kafkaMocks "hotel/infras/kafka/mocks"
	"hotel/infras/otel/mocks"
	clientMocks "hotel/internal/domains/client/mocks"
	clientModel "hotel/internal/domains/client/model"
	serviceMocks "hotel/internal/domains/hotelservice/mocks"
	serviceModel "hotel/internal/domains/hotelservice/model"
	reservationMocks "hotel/internal/domains/reservation/mocks"
	"hotel/internal/domains/reservation/model"
	"hotel/internal/domains/reservation/model/dto"
	"hotel/internal/domains/reservation/service"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	gRepo "hotel/shared/repository"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	svc      service.Reservation
	cfg      *config.Config
	repo     *reservationMocks.MockReservation
	rooms    *roomMocks.MockRoom
	clients  *clientMocks.MockClient
	services *serviceMocks.MockHotelService
	kafka    *kafkaMocks.MockClient
}

func newFixture(t *testing.T, configure ...func(cfg *config.Config)) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.Topic.Reservation = "hotel.reservations"

	for _, fn := range configure {
		fn(cfg)
	}

	f := fixture{
		cfg:      cfg,
		repo:     reservationMocks.NewMockReservation(ctrl),
		rooms:    roomMocks.NewMockRoom(ctrl),
		clients:  clientMocks.NewMockClient(ctrl),
		services: serviceMocks.NewMockHotelService(ctrl),
		kafka:    kafkaMocks.NewMockClient(ctrl),
	}

	f.svc = service.New(f.repo, f.rooms, f.clients, f.services, f.kafka, cfg, mockCache, mocks.NewOtel())

	return f
}

func (f fixture) quietEvents() {
	f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func (f fixture) withRoom(id int64, price float64) {
	f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{ID: id, Number: 101, Price: price}, nil)
}

func (f fixture) withClient(id int64) {
	f.clients.EXPECT().Get(gomock.Any(), gomock.Any()).Return(clientModel.Client{ID: id, Name: "Ana"}, nil)
}

func (f fixture) withoutEmployees() {
	f.services.EXPECT().GetEmployeeIDs(gomock.Any(), gomock.Any()).Return(map[int64][]int64{}, nil).AnyTimes()
}

func mustDate(t *testing.T, value string) gModel.Date {
	t.Helper()

	date, err := gModel.ParseDate(value)
	require.NoError(t, err)

	return date
}

func int64Ptr(v int64) *int64 {
	return &v
}

func TestReservationService_Create_PricesRoomOnlyStay(t *testing.T) {
	f := newFixture(t)
	f.quietEvents()
	f.withRoom(1, 100)
	f.withClient(1)
	f.withoutEmployees()

	f.repo.EXPECT().
		Insert(gomock.Any(), gomock.Any(), []int64{}).
		DoAndReturn(func(_ context.Context, reservation model.Reservation, _ []int64) (int64, error) {
			assert.Equal(t, 3, reservation.Nights)
			assert.InDelta(t, 300.0, reservation.TotalPrice, 1e-9)
			assert.Equal(t, constant.ReservationStatePending, reservation.State)
			assert.Equal(t, int64(1), reservation.RoomID)
			assert.Equal(t, int64(1), reservation.ClientID)
			assert.Equal(t, "test-user-id", reservation.CreatedBy)

			return 12, nil
		})

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
	res, err := f.svc.Create(ctx, dto.CreateReservationRequest{
		StartDate: "2024-01-01",
		EndDate:   "2024-01-04",
		RoomID:    1,
		ClientID:  1,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(12), res.ID)
	assert.Equal(t, "2024-01-01", res.StartDate)
	assert.Equal(t, "2024-01-04", res.EndDate)
	assert.Equal(t, 3, res.Nights)
	assert.InDelta(t, 300.0, res.TotalPrice, 1e-9)
	assert.Equal(t, constant.ReservationStatePending, res.State)
	require.NotNil(t, res.Room)
	require.NotNil(t, res.Client)
	assert.Equal(t, int64(1), res.Room.ID)
	assert.Equal(t, "Ana", res.Client.Name)
	assert.Empty(t, res.Services)
	assert.Equal(t, []int64{}, res.ServiceIDs)
}

func TestReservationService_Create_RoomRemovedBeforeInsert(t *testing.T) {
	f := newFixture(t)
	f.withRoom(1, 100)
	f.withClient(1)
	f.withoutEmployees()

	f.repo.EXPECT().
		Insert(gomock.Any(), gomock.Any(), []int64{}).
		Return(int64(0), failure.NotFound("rooms referenced by reservation not found"))

	_, err := f.svc.Create(context.Background(), dto.CreateReservationRequest{
		StartDate: "2024-01-01",
		EndDate:   "2024-01-04",
		RoomID:    1,
		ClientID:  1,
	})

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	assert.Equal(t, "rooms referenced by reservation not found", err.Error())
}

func TestReservationService_Create_DropsUnknownServices(t *testing.T) {
	f := newFixture(t)
	f.quietEvents()
	f.withRoom(1, 100)
	f.withClient(1)

	f.services.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]serviceModel.Service{{ID: 1, Name: "Spa", Price: 10}, {ID: 2, Name: "Gym", Price: 5}}, nil)
	f.services.EXPECT().
		GetEmployeeIDs(gomock.Any(), []int64{2, 1}).
		Return(map[int64][]int64{1: {4}}, nil)

	f.repo.EXPECT().
		Insert(gomock.Any(), gomock.Any(), []int64{2, 1}).
		DoAndReturn(func(_ context.Context, reservation model.Reservation, _ []int64) (int64, error) {
			assert.InDelta(t, 345.0, reservation.TotalPrice, 1e-9)

			return 3, nil
		})

	res, err := f.svc.Create(context.Background(), dto.CreateReservationRequest{
		StartDate:  "2024-01-01",
		EndDate:    "2024-01-04",
		RoomID:     1,
		ClientID:   1,
		ServiceIDs: []int64{2, 99, 1, 2},
	})

	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1}, res.ServiceIDs)
	require.Len(t, res.Services, 2)
	assert.Equal(t, "Gym", res.Services[0].Name)
	assert.Equal(t, []int64{4}, res.Services[1].EmployeeIDs)
}

func TestReservationService_Create_Failures(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateReservationRequest
		configure func(cfg *config.Config)
		setup     func(f fixture)
		wantCode  int
		wantMsg   string
	}{
		{
			name: "unknown room",
			req:  dto.CreateReservationRequest{StartDate: "2024-01-01", EndDate: "2024-01-04", RoomID: 9, ClientID: 1},
			setup: func(f fixture) {
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)
			},
			wantCode: http.StatusNotFound,
			wantMsg:  "room 9 not found",
		},
		{
			name: "unknown client",
			req:  dto.CreateReservationRequest{StartDate: "2024-01-01", EndDate: "2024-01-04", RoomID: 1, ClientID: 8},
			setup: func(f fixture) {
				f.withRoom(1, 100)
				f.clients.EXPECT().Get(gomock.Any(), gomock.Any()).Return(clientModel.Client{}, nil)
			},
			wantCode: http.StatusNotFound,
			wantMsg:  "client 8 not found",
		},
		{
			name: "malformed date",
			req:  dto.CreateReservationRequest{StartDate: "01/01/2024", EndDate: "2024-01-04", RoomID: 1, ClientID: 1},
			setup: func(f fixture) {
				f.withRoom(1, 100)
				f.withClient(1)
			},
			wantCode: http.StatusBadRequest,
			wantMsg:  "startDate must be a date formatted as YYYY-MM-DD",
		},
		{
			name: "room lookup fails",
			req:  dto.CreateReservationRequest{StartDate: "2024-01-01", EndDate: "2024-01-04", RoomID: 1, ClientID: 1},
			setup: func(f fixture) {
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{}, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "empty stay rejected when configured",
			req:  dto.CreateReservationRequest{StartDate: "2024-01-04", EndDate: "2024-01-04", RoomID: 1, ClientID: 1},
			configure: func(cfg *config.Config) {
				cfg.Reservation.RequirePositiveStay = true
			},
			setup: func(f fixture) {
				f.withRoom(1, 100)
				f.withClient(1)
			},
			wantCode: http.StatusBadRequest,
			wantMsg:  "endDate must be after startDate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f fixture
			if tt.configure != nil {
				f = newFixture(t, tt.configure)
			} else {
				f = newFixture(t)
			}

			tt.setup(f)

			_, err := f.svc.Create(context.Background(), tt.req)

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))

			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, err.Error())
			}
		})
	}
}

func TestReservationService_Create_AcceptsReversedDatesByDefault(t *testing.T) {
	f := newFixture(t)
	f.quietEvents()
	f.withRoom(1, 50)
	f.withClient(1)
	f.withoutEmployees()

	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)

	res, err := f.svc.Create(context.Background(), dto.CreateReservationRequest{
		StartDate: "2024-01-04",
		EndDate:   "2024-01-01",
		RoomID:    1,
		ClientID:  1,
	})

	require.NoError(t, err)
	assert.Equal(t, -3, res.Nights)
	assert.InDelta(t, -150.0, res.TotalPrice, 1e-9)
}

func TestReservationService_Create_PublishesEvent(t *testing.T) {
	f := newFixture(t)
	f.withRoom(1, 100)
	f.withClient(1)
	f.withoutEmployees()
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(21), nil)

	sent := make(chan kafka.Message, 1)

	f.kafka.EXPECT().
		SendMessages(gomock.Any(), "hotel.reservations", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			sent <- messages[0]

			return nil
		})

	_, err := f.svc.Create(context.Background(), dto.CreateReservationRequest{
		StartDate: "2024-01-01",
		EndDate:   "2024-01-02",
		RoomID:    1,
		ClientID:  1,
	})
	require.NoError(t, err)

	select {
	case msg := <-sent:
		assert.Equal(t, "21", msg.Key)

		event, ok := msg.Value.(dto.ReservationEvent)
		require.True(t, ok)
		assert.Equal(t, constant.EventReservationCreated, event.Event)
		assert.Equal(t, int64(21), event.Reservation.ID)
	case <-time.After(time.Second):
		t.Fatal("reservation event was not published")
	}
}

func TestReservationService_Save(t *testing.T) {
	t.Run("keeps the given state and recomputes price", func(t *testing.T) {
		f := newFixture(t)
		f.quietEvents()
		f.withRoom(2, 80)
		f.withClient(1)
		f.withoutEmployees()

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, reservation model.Reservation, _ []int64) (int64, error) {
				assert.Equal(t, constant.ReservationStateConfirmed, reservation.State)
				assert.InDelta(t, 160.0, reservation.TotalPrice, 1e-9)

				return 5, nil
			})

		res, err := f.svc.Save(context.Background(), dto.ReservationRequest{
			StartDate: "2024-06-10",
			EndDate:   "2024-06-12",
			RoomID:    2,
			ClientID:  1,
			State:     constant.ReservationStateConfirmed,
		})

		require.NoError(t, err)
		assert.Equal(t, constant.ReservationStateConfirmed, res.State)
	})

	t.Run("defaults to pending", func(t *testing.T) {
		f := newFixture(t)
		f.quietEvents()
		f.withRoom(2, 80)
		f.withClient(1)
		f.withoutEmployees()
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(5), nil)

		res, err := f.svc.Save(context.Background(), dto.ReservationRequest{
			StartDate: "2024-06-10",
			EndDate:   "2024-06-12",
			RoomID:    2,
			ClientID:  1,
		})

		require.NoError(t, err)
		assert.Equal(t, constant.ReservationStatePending, res.State)
	})

	t.Run("rejects an id", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.Save(context.Background(), dto.ReservationRequest{ID: int64Ptr(5)})

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Equal(t, "reservation 5 already exists", err.Error())
	})
}

func TestReservationService_Update(t *testing.T) {
	t.Run("reprices and reloads", func(t *testing.T) {
		f := newFixture(t)
		f.quietEvents()
		f.withoutEmployees()

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.withRoom(1, 100)
		f.withClient(1)

		f.repo.EXPECT().
			Update(gomock.Any(), int64(7), gomock.Any(), []int64{}).
			DoAndReturn(func(_ context.Context, _ int64, fields map[string]any, _ []int64) error {
				assert.Equal(t, 2, fields[model.FieldNights])
				assert.InDelta(t, 200.0, fields[model.FieldTotalPrice], 1e-9)
				assert.Equal(t, constant.ReservationStateCancelled, fields[model.FieldState])

				return nil
			})

		stored := model.Reservation{
			ID:         7,
			StartDate:  mustDate(t, "2024-01-01"),
			EndDate:    mustDate(t, "2024-01-03"),
			Nights:     2,
			TotalPrice: 200,
			RoomID:     1,
			ClientID:   1,
			State:      constant.ReservationStateCancelled,
		}

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
		f.rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]roomModel.Room{{ID: 1, Price: 100}}, nil)
		f.clients.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]clientModel.Client{{ID: 1}}, nil)
		f.repo.EXPECT().GetServiceIDs(gomock.Any(), []int64{7}).Return(map[int64][]int64{}, nil)

		res, err := f.svc.Update(context.Background(), dto.ReservationRequest{
			ID:        int64Ptr(7),
			StartDate: "2024-01-01",
			EndDate:   "2024-01-03",
			RoomID:    1,
			ClientID:  1,
			State:     constant.ReservationStateCancelled,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(7), res.ID)
		assert.Equal(t, 2, res.Nights)
		assert.Equal(t, constant.ReservationStateCancelled, res.State)
	})

	t.Run("missing id", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Update(context.Background(), dto.ReservationRequest{})

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown id", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.Update(context.Background(), dto.ReservationRequest{ID: int64Ptr(70)})

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown room on update", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)

		_, err := f.svc.Update(context.Background(), dto.ReservationRequest{
			ID:        int64Ptr(7),
			StartDate: "2024-01-01",
			EndDate:   "2024-01-03",
			RoomID:    42,
			ClientID:  1,
		})

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestReservationService_GetAll(t *testing.T) {
	f := newFixture(t)

	stored := []model.Reservation{
		{ID: 1, StartDate: mustDate(t, "2024-01-01"), EndDate: mustDate(t, "2024-01-02"), RoomID: 1, ClientID: 3},
		{ID: 2, StartDate: mustDate(t, "2024-02-01"), EndDate: mustDate(t, "2024-02-03"), RoomID: 2, ClientID: 3},
	}

	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Reservation, error) {
			_, args := filter.GetWhereClause()
			assert.Equal(t, int64(3), args[model.FieldClientID])

			return stored, nil
		})
	f.rooms.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]roomModel.Room{{ID: 1, Number: 101}, {ID: 2, Number: 102}}, nil)
	f.clients.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]clientModel.Client{{ID: 3, Name: "Ana"}}, nil)
	f.repo.EXPECT().
		GetServiceIDs(gomock.Any(), []int64{1, 2}).
		Return(map[int64][]int64{2: {5}}, nil)
	f.services.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]serviceModel.Service{{ID: 5, Name: "Spa"}}, nil)
	f.services.EXPECT().
		GetEmployeeIDs(gomock.Any(), []int64{5}).
		Return(map[int64][]int64{}, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{}, dto.ReservationFilter{ClientID: int64Ptr(3)})

	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, 101, res[0].Room.Number)
	assert.Equal(t, 102, res[1].Room.Number)
	assert.Equal(t, "Ana", res[1].Client.Name)
	assert.Empty(t, res[0].Services)
	assert.Equal(t, []int64{5}, res[1].ServiceIDs)
	assert.Equal(t, "Spa", res[1].Services[0].Name)
}

func TestReservationService_GetAll_Empty(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Reservation{}, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{}, dto.ReservationFilter{})

	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestReservationService_Get_NotFound(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Reservation{}, nil)

	_, err := f.svc.Get(context.Background(), 4)

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestReservationService_Exists_Nil(t *testing.T) {
	f := newFixture(t)

	exist, err := f.svc.Exists(context.Background(), nil)

	require.NoError(t, err)
	assert.False(t, exist)
}

func TestReservationService_Delete(t *testing.T) {
	tests := []struct {
		name     string
		result   gRepo.DeleteResult
		wantCode int
		wantMsg  string
	}{
		{
			name:   "without invoice",
			result: gRepo.DeleteResult{Found: true, Deleted: true},
		},
		{
			name:     "absent",
			wantCode: http.StatusNotFound,
		},
		{
			name:     "invoiced",
			result:   gRepo.DeleteResult{Found: true, Dependents: 1},
			wantCode: http.StatusConflict,
			wantMsg:  "reservation 4 has 1 invoice(s)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.quietEvents()
			f.repo.EXPECT().DeleteIfUnreferenced(gomock.Any(), int64(4)).Return(tt.result, nil)

			err := f.svc.Delete(context.Background(), 4)

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))

			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, err.Error())
			}
		})
	}
}
