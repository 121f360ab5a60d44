package service_test

import (
	"context"
	"errors"
	"hotel/config"
	"hotel/infras/otel/mocks"
	roomMocks "hotel/internal/domains/room/mocks"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gRepo "hotel/shared/repository"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (service.Room, *roomMocks.MockRoom) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo
}

func TestRoomService_GetAvailable(t *testing.T) {
	svc, repo := newService(t)

	repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Room, error) {
			where, args := filter.GetWhereClause()

			assert.True(t, strings.Contains(where, "rooms.available"))
			assert.Equal(t, true, args[model.FieldAvailable])

			return []model.Room{{ID: 1, Number: 101, Available: true}}, nil
		})

	res, err := svc.GetAvailable(context.Background(), gDto.QueryParams{})

	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.True(t, res[0].Available)
}

func TestRoomService_GetAll(t *testing.T) {
	svc, repo := newService(t)

	repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gDto.FilterGroup{}).
		Return([]model.Room{{ID: 1, Number: 101}, {ID: 2, Number: 102, Price: 80}}, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{})

	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, 80.0, res[1].Price)
}

func TestRoomService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc, repo := newService(t)
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: 5, Number: 305, Price: 120}, nil)

		res, err := svc.Get(context.Background(), 5)

		require.NoError(t, err)
		assert.Equal(t, 305, res.Number)
		assert.Equal(t, 120.0, res.Price)
	})

	t.Run("not found", func(t *testing.T) {
		svc, repo := newService(t)
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		_, err := svc.Get(context.Background(), 5)

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRoomService_Create(t *testing.T) {
	svc, repo := newService(t)

	repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, room model.Room) (int64, error) {
			assert.Equal(t, 101, room.Number)
			assert.True(t, room.Available)

			return 1, nil
		})

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
	res, err := svc.Create(ctx, dto.RoomRequest{Number: 101, Type: "double", Price: 100, Status: "clean", Available: true})

	require.NoError(t, err)
	assert.Equal(t, int64(1), res.ID)
	assert.Equal(t, "test-user-id", res.CreatedBy)
}

func TestRoomService_Exists_Nil(t *testing.T) {
	svc, _ := newService(t)

	exist, err := svc.Exists(context.Background(), nil)

	require.NoError(t, err)
	assert.False(t, exist)
}

func TestRoomService_Delete(t *testing.T) {
	tests := []struct {
		name     string
		result   gRepo.DeleteResult
		wantCode int
		wantMsg  string
	}{
		{
			name:   "no reservations",
			result: gRepo.DeleteResult{Found: true, Deleted: true},
		},
		{
			name:     "absent",
			wantCode: http.StatusNotFound,
		},
		{
			name:     "referenced by a reservation",
			result:   gRepo.DeleteResult{Found: true, Dependents: 1},
			wantCode: http.StatusConflict,
			wantMsg:  "room 8 has 1 reservation(s)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t)
			repo.EXPECT().DeleteIfUnreferenced(gomock.Any(), int64(8)).Return(tt.result, nil)

			err := svc.Delete(context.Background(), 8)

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
