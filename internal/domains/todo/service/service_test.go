package service_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tasklist/config"
	"tasklist/infras/otel/mocks"
	todoMocks "tasklist/internal/domains/todo/mocks"
	"tasklist/internal/domains/todo/model"
	"tasklist/internal/domains/todo/model/dto"
	"tasklist/internal/domains/todo/service"
	"tasklist/shared/cache"
	cacheMocks "tasklist/shared/cache/mocks"
	"tasklist/shared/failure"
)

const (
	todoID      = "7f1c2e9a-4c1b-4e5f-9a7d-2b3c4d5e6f70"
	listCacheID = "todos:list"
)

func newService(t *testing.T) (service.Todo, *todoMocks.MockTodo, *cacheMocks.MockCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := todoMocks.NewMockTodo(ctrl)
	mockCache := cacheMocks.NewMockCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func TestTodoService_List(t *testing.T) {
	createdAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("cache miss reads repository and fills cache", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), listCacheID, gomock.Any()).Return(cache.Nil)
		mockRepo.EXPECT().FindAll(gomock.Any()).Return([]model.Todo{
			{ID: todoID, Title: "Buy milk", CreatedAt: createdAt},
		}, nil)
		mockCache.EXPECT().Save(gomock.Any(), listCacheID, gomock.Any(), 60).Return(nil)

		res, err := svc.List(context.Background())
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, "Buy milk", res[0].Title)
		assert.Equal(t, "2024-05-01T10:00:00Z", res[0].CreatedAt)
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		svc, _, mockCache := newService(t)

		cached := []dto.TodoResponse{{ID: todoID, Title: "cached"}}
		mockCache.EXPECT().Get(gomock.Any(), listCacheID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				*value.(*[]dto.TodoResponse) = cached

				return nil
			})

		res, err := svc.List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, cached, res)
	})

	t.Run("empty store returns empty list", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), listCacheID, gomock.Any()).Return(cache.Nil)
		mockRepo.EXPECT().FindAll(gomock.Any()).Return([]model.Todo{}, nil)
		mockCache.EXPECT().Save(gomock.Any(), listCacheID, gomock.Any(), 60).Return(nil)

		res, err := svc.List(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, res)
		assert.Empty(t, res)
	})

	t.Run("cache failures do not fail the read", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), listCacheID, gomock.Any()).Return(errors.New("connection refused"))
		mockRepo.EXPECT().FindAll(gomock.Any()).Return([]model.Todo{{ID: todoID, Title: "a"}}, nil)
		mockCache.EXPECT().Save(gomock.Any(), listCacheID, gomock.Any(), 60).Return(errors.New("connection refused"))

		res, err := svc.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, res, 1)
	})

	t.Run("repository error", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), listCacheID, gomock.Any()).Return(cache.Nil)
		mockRepo.EXPECT().FindAll(gomock.Any()).Return(nil, errors.New("database error"))

		_, err := svc.List(context.Background())
		assert.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestTodoService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateTodoRequest
		setupMock func(repo *todoMocks.MockTodo, c *cacheMocks.MockCache)
		wantCode  int
		wantTitle string
	}{
		{
			name: "successful creation trims title",
			req:  dto.CreateTodoRequest{Title: "  Buy milk  "},
			setupMock: func(repo *todoMocks.MockTodo, c *cacheMocks.MockCache) {
				repo.EXPECT().
					Insert(gomock.Any(), model.Todo{Title: "Buy milk"}).
					Return(model.Todo{ID: todoID, Title: "Buy milk", CreatedAt: time.Now()}, nil)
				c.EXPECT().Delete(gomock.Any(), listCacheID).Return(nil)
			},
			wantTitle: "Buy milk",
		},
		{
			name:      "blank title",
			req:       dto.CreateTodoRequest{Title: "   "},
			setupMock: func(*todoMocks.MockTodo, *cacheMocks.MockCache) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "title too long",
			req:       dto.CreateTodoRequest{Title: strings.Repeat("a", 256)},
			setupMock: func(*todoMocks.MockTodo, *cacheMocks.MockCache) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "invalidation failure is not fatal",
			req:  dto.CreateTodoRequest{Title: "Walk dog"},
			setupMock: func(repo *todoMocks.MockTodo, c *cacheMocks.MockCache) {
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(model.Todo{ID: todoID, Title: "Walk dog"}, nil)
				c.EXPECT().Delete(gomock.Any(), listCacheID).Return(errors.New("timeout"))
			},
			wantTitle: "Walk dog",
		},
		{
			name: "repository error",
			req:  dto.CreateTodoRequest{Title: "Walk dog"},
			setupMock: func(repo *todoMocks.MockTodo, _ *cacheMocks.MockCache) {
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(model.Todo{}, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := newService(t)
			tt.setupMock(mockRepo, mockCache)

			res, err := svc.Create(context.Background(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, todoID, res.ID)
			assert.Equal(t, tt.wantTitle, res.Title)
			assert.False(t, res.Completed)
		})
	}
}

func TestTodoService_ToggleComplete(t *testing.T) {
	tests := []struct {
		name          string
		id            string
		setupMock     func(repo *todoMocks.MockTodo, c *cacheMocks.MockCache)
		wantCode      int
		wantCompleted bool
	}{
		{
			name: "incomplete becomes complete",
			id:   todoID,
			setupMock: func(repo *todoMocks.MockTodo, c *cacheMocks.MockCache) {
				repo.EXPECT().FindByID(gomock.Any(), todoID).Return(model.Todo{ID: todoID, Completed: false}, nil)
				repo.EXPECT().SetCompleted(gomock.Any(), todoID, true).Return(model.Todo{ID: todoID, Completed: true}, nil)
				c.EXPECT().Delete(gomock.Any(), listCacheID).Return(nil)
			},
			wantCompleted: true,
		},
		{
			name: "complete becomes incomplete",
			id:   todoID,
			setupMock: func(repo *todoMocks.MockTodo, c *cacheMocks.MockCache) {
				repo.EXPECT().FindByID(gomock.Any(), todoID).Return(model.Todo{ID: todoID, Completed: true}, nil)
				repo.EXPECT().SetCompleted(gomock.Any(), todoID, false).Return(model.Todo{ID: todoID, Completed: false}, nil)
				c.EXPECT().Delete(gomock.Any(), listCacheID).Return(nil)
			},
			wantCompleted: false,
		},
		{
			name:      "malformed id",
			id:        "not-a-uuid",
			setupMock: func(*todoMocks.MockTodo, *cacheMocks.MockCache) {},
			wantCode:  http.StatusNotFound,
		},
		{
			name: "unknown id",
			id:   todoID,
			setupMock: func(repo *todoMocks.MockTodo, _ *cacheMocks.MockCache) {
				repo.EXPECT().FindByID(gomock.Any(), todoID).Return(model.Todo{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "removed between read and update",
			id:   todoID,
			setupMock: func(repo *todoMocks.MockTodo, _ *cacheMocks.MockCache) {
				repo.EXPECT().FindByID(gomock.Any(), todoID).Return(model.Todo{ID: todoID}, nil)
				repo.EXPECT().SetCompleted(gomock.Any(), todoID, true).Return(model.Todo{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "read error",
			id:   todoID,
			setupMock: func(repo *todoMocks.MockTodo, _ *cacheMocks.MockCache) {
				repo.EXPECT().FindByID(gomock.Any(), todoID).Return(model.Todo{}, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "update error",
			id:   todoID,
			setupMock: func(repo *todoMocks.MockTodo, _ *cacheMocks.MockCache) {
				repo.EXPECT().FindByID(gomock.Any(), todoID).Return(model.Todo{ID: todoID}, nil)
				repo.EXPECT().SetCompleted(gomock.Any(), todoID, true).Return(model.Todo{}, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := newService(t)
			tt.setupMock(mockRepo, mockCache)

			res, err := svc.ToggleComplete(context.Background(), tt.id)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantCompleted, res.Completed)
		})
	}
}

func TestTodoService_Remove(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		setupMock func(repo *todoMocks.MockTodo, c *cacheMocks.MockCache)
		wantCode  int
	}{
		{
			name: "successful removal",
			id:   todoID,
			setupMock: func(repo *todoMocks.MockTodo, c *cacheMocks.MockCache) {
				repo.EXPECT().Delete(gomock.Any(), todoID).Return(int64(1), nil)
				c.EXPECT().Delete(gomock.Any(), listCacheID).Return(nil)
			},
		},
		{
			name: "unknown id",
			id:   todoID,
			setupMock: func(repo *todoMocks.MockTodo, _ *cacheMocks.MockCache) {
				repo.EXPECT().Delete(gomock.Any(), todoID).Return(int64(0), nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:      "malformed id",
			id:        "42",
			setupMock: func(*todoMocks.MockTodo, *cacheMocks.MockCache) {},
			wantCode:  http.StatusNotFound,
		},
		{
			name: "repository error",
			id:   todoID,
			setupMock: func(repo *todoMocks.MockTodo, _ *cacheMocks.MockCache) {
				repo.EXPECT().Delete(gomock.Any(), todoID).Return(int64(0), errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := newService(t)
			tt.setupMock(mockRepo, mockCache)

			err := svc.Remove(context.Background(), tt.id)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}
