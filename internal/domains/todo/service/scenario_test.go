package service_test

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklist/config"
	"tasklist/infras/otel/mocks"
	"tasklist/internal/domains/todo/model"
	"tasklist/internal/domains/todo/model/dto"
	"tasklist/internal/domains/todo/service"
	"tasklist/shared/cache"
	"tasklist/shared/failure"
)

// memoryRepo mimics the todos table: ids and timestamps are assigned on insert.
type memoryRepo struct {
	mu    sync.Mutex
	rows  []model.Todo
	clock time.Time
}

func (m *memoryRepo) Insert(_ context.Context, todo model.Todo) (model.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clock = m.clock.Add(time.Second)
	todo.ID = uuid.NewString()
	todo.CreatedAt = m.clock
	m.rows = append(m.rows, todo)

	return todo, nil
}

func (m *memoryRepo) FindByID(_ context.Context, id string) (model.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, row := range m.rows {
		if row.ID == id {
			return row, nil
		}
	}

	return model.Todo{}, nil
}

func (m *memoryRepo) FindAll(_ context.Context) ([]model.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res := slices.Clone(m.rows)
	slices.SortFunc(res, func(a, b model.Todo) int { return b.CreatedAt.Compare(a.CreatedAt) })

	if res == nil {
		res = []model.Todo{}
	}

	return res, nil
}

func (m *memoryRepo) SetCompleted(_ context.Context, id string, completed bool) (model.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].Completed = completed

			return m.rows[i], nil
		}
	}

	return model.Todo{}, nil
}

func (m *memoryRepo) Delete(_ context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	before := len(m.rows)
	m.rows = slices.DeleteFunc(m.rows, func(row model.Todo) bool { return row.ID == id })

	return int64(before - len(m.rows)), nil
}

func newMemoryService() service.Todo {
	repo := &memoryRepo{clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

	return service.New(repo, &config.Config{}, cache.New(nil, mocks.NewOtel()), mocks.NewOtel())
}

func titles(todos []dto.TodoResponse) []string {
	res := make([]string, 0, len(todos))
	for _, todo := range todos {
		res = append(res, todo.Title)
	}

	return res
}

func TestTodoService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService()

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	milk, err := svc.Create(ctx, dto.CreateTodoRequest{Title: "Buy milk"})
	require.NoError(t, err)
	assert.False(t, milk.Completed)
	assert.NotEmpty(t, milk.ID)
	assert.NotEmpty(t, milk.CreatedAt)

	dog, err := svc.Create(ctx, dto.CreateTodoRequest{Title: "Walk dog"})
	require.NoError(t, err)
	assert.NotEqual(t, milk.ID, dog.ID)

	list, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Walk dog", "Buy milk"}, titles(list))

	toggled, err := svc.ToggleComplete(ctx, milk.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)
	assert.Equal(t, milk.ID, toggled.ID)
	assert.Equal(t, milk.Title, toggled.Title)
	assert.Equal(t, milk.CreatedAt, toggled.CreatedAt)

	toggled, err = svc.ToggleComplete(ctx, milk.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)

	require.NoError(t, svc.Remove(ctx, milk.ID))

	list, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Walk dog"}, titles(list))

	err = svc.Remove(ctx, milk.ID)
	assert.True(t, failure.IsNotFound(err))

	_, err = svc.ToggleComplete(ctx, milk.ID)
	assert.True(t, failure.IsNotFound(err))
}

func TestTodoService_RejectedCreateLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService()

	_, err := svc.Create(ctx, dto.CreateTodoRequest{Title: ""})
	require.Error(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
