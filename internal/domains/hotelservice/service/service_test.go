package service_test

import (
	"context"
	"errors"
	"hotel/config"
	"hotel/infras/otel/mocks"
	employeeMocks "hotel/internal/domains/employee/mocks"
	employeeModel "hotel/internal/domains/employee/model"
	serviceMocks "hotel/internal/domains/hotelservice/mocks"
	"hotel/internal/domains/hotelservice/model"
	"hotel/internal/domains/hotelservice/model/dto"
	"hotel/internal/domains/hotelservice/service"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	svc       service.HotelService
	repo      *serviceMocks.MockHotelService
	employees *employeeMocks.MockEmployee
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f := fixture{
		repo:      serviceMocks.NewMockHotelService(ctrl),
		employees: employeeMocks.NewMockEmployee(ctrl),
	}
	f.svc = service.New(f.repo, f.employees, cfg, mockCache, mocks.NewOtel())

	return f
}

func TestHotelService_Create_DropsUnknownEmployees(t *testing.T) {
	f := newFixture(t)

	f.employees.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any(), employeeModel.FieldID).
		Return([]employeeModel.Employee{{ID: 1}, {ID: 3}}, nil)

	f.repo.EXPECT().
		Insert(gomock.Any(), gomock.Any(), []int64{1, 3}).
		DoAndReturn(func(_ context.Context, service model.Service, _ []int64) (int64, error) {
			assert.Equal(t, "Spa", service.Name)
			assert.Equal(t, 45.5, service.Price)

			return 10, nil
		})

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
	res, err := f.svc.Create(ctx, dto.ServiceRequest{
		Name:        "Spa",
		Price:       45.5,
		Available:   true,
		EmployeeIDs: []int64{1, 2, 3, 3},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(10), res.ID)
	assert.Equal(t, []int64{1, 3}, res.EmployeeIDs)
}

func TestHotelService_Create_WithoutEmployees(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any(), []int64{}).Return(int64(2), nil)

	res, err := f.svc.Create(context.Background(), dto.ServiceRequest{Name: "Laundry", Price: 8})

	require.NoError(t, err)
	assert.Equal(t, []int64{}, res.EmployeeIDs)
}

func TestHotelService_Get(t *testing.T) {
	t.Run("found with employees", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Service{ID: 4, Name: "Spa", Price: 30}, nil)
		f.repo.EXPECT().GetEmployeeIDs(gomock.Any(), []int64{4}).Return(map[int64][]int64{4: {7, 8}}, nil)

		res, err := f.svc.Get(context.Background(), 4)

		require.NoError(t, err)
		assert.Equal(t, "Spa", res.Name)
		assert.Equal(t, []int64{7, 8}, res.EmployeeIDs)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Service{}, nil)

		_, err := f.svc.Get(context.Background(), 4)

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestHotelService_GetAll(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Service{{ID: 1, Name: "Spa"}, {ID: 2, Name: "Gym"}}, nil)
	f.repo.EXPECT().
		GetEmployeeIDs(gomock.Any(), []int64{1, 2}).
		Return(map[int64][]int64{1: {5}}, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{})

	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, []int64{5}, res[0].EmployeeIDs)
	assert.Equal(t, []int64{}, res[1].EmployeeIDs)
}

func TestHotelService_Delete(t *testing.T) {
	tests := []struct {
		name     string
		deleted  int64
		repoErr  error
		wantCode int
	}{
		{
			name:    "deleted",
			deleted: 1,
		},
		{
			name:     "absent",
			wantCode: http.StatusNotFound,
		},
		{
			name:     "still booked by a reservation",
			repoErr:  failure.Conflict("service is still referenced by other records"),
			wantCode: http.StatusConflict,
		},
		{
			name:     "database error",
			repoErr:  errors.New("database error"),
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.repo.EXPECT().Delete(gomock.Any(), int64(5)).Return(tt.deleted, tt.repoErr)

			err := f.svc.Delete(context.Background(), 5)

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestHotelService_Exists_Nil(t *testing.T) {
	f := newFixture(t)

	exist, err := f.svc.Exists(context.Background(), nil)

	require.NoError(t, err)
	assert.False(t, exist)
}
