package service_test

import (
	"context"
	"errors"
	"hotel/config"
	"hotel/infras/otel/mocks"
	employeeMocks "hotel/internal/domains/employee/mocks"
	"hotel/internal/domains/employee/model"
	"hotel/internal/domains/employee/model/dto"
	"hotel/internal/domains/employee/service"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gRepo "hotel/shared/repository"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (service.Employee, *employeeMocks.MockEmployee) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := employeeMocks.NewMockEmployee(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo
}

func hiredAt() time.Time {
	return time.Date(2023, 5, 2, 8, 0, 0, 0, time.UTC)
}

func TestEmployeeService_Create(t *testing.T) {
	svc, repo := newService(t)

	repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, employee model.Employee) (int64, error) {
			assert.Equal(t, int64(1032456789), employee.IdentificationNumber)
			assert.True(t, employee.HiredAt.Equal(hiredAt()))

			return 4, nil
		})

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
	res, err := svc.Create(ctx, dto.EmployeeRequest{
		Name:                 "Marta Gil",
		Role:                 "receptionist",
		IdentificationNumber: 1032456789,
		Salary:               1800,
		HiredAt:              hiredAt(),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(4), res.ID)
	assert.Equal(t, 1800.0, res.Salary)
	assert.NotEmpty(t, res.HiredAt)
}

func TestEmployeeService_GetAll(t *testing.T) {
	svc, repo := newService(t)

	repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Employee{{ID: 1, Name: "Marta"}, {ID: 2, Name: "Pablo"}}, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{})

	require.NoError(t, err)
	assert.Len(t, res, 2)
}

func TestEmployeeService_Update_MissingID(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Update(context.Background(), dto.EmployeeRequest{Name: "Marta"})

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Equal(t, "a valid id is required to update an employee", err.Error())
}

func TestEmployeeService_Delete(t *testing.T) {
	tests := []struct {
		name     string
		result   gRepo.DeleteResult
		wantCode int
		wantMsg  string
	}{
		{
			name:   "not assigned",
			result: gRepo.DeleteResult{Found: true, Deleted: true},
		},
		{
			name:     "absent",
			wantCode: http.StatusNotFound,
			wantMsg:  "employee 6 not found",
		},
		{
			name:     "assigned to services",
			result:   gRepo.DeleteResult{Found: true, Dependents: 3},
			wantCode: http.StatusConflict,
			wantMsg:  "employee 6 is assigned to 3 service(s)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t)
			repo.EXPECT().DeleteIfUnreferenced(gomock.Any(), int64(6)).Return(tt.result, nil)

			err := svc.Delete(context.Background(), 6)

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}
