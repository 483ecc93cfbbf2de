package store

//go:generate go run go.uber.org/mock/mockgen -source=./store.go -destination=./mocks/api_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"tasklist/internal/domains/todo/model/dto"

	"github.com/rs/zerolog/log"
)

var (
	ErrCreateInFlight = errors.New("a todo is already being created")

	// ErrStale wraps a refetch failure that follows a mutation the server
	// already applied. The mutation must not be retried.
	ErrStale = errors.New("todo list is out of date")
)

type API interface {
	List(ctx context.Context) ([]dto.TodoResponse, error)
	Create(ctx context.Context, title string) (dto.TodoResponse, error)
	Toggle(ctx context.Context, id string) (dto.TodoResponse, error)
	Delete(ctx context.Context, id string) error
}

// Todos caches the server's todo list. Every successful mutation is followed
// by a full refetch; the cache is never patched locally.
type Todos struct {
	api API

	mu       sync.Mutex
	items    []dto.TodoResponse
	loaded   bool
	creating bool
}

func New(api API) *Todos {
	return &Todos{api: api}
}

// Snapshot returns a copy of the cached list and whether it was ever loaded.
func (t *Todos) Snapshot() ([]dto.TodoResponse, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return slices.Clone(t.items), t.loaded
}

// Creating reports whether a Create is outstanding.
func (t *Todos) Creating() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.creating
}

// Load fetches the list on first use and serves the cache afterwards.
func (t *Todos) Load(ctx context.Context) ([]dto.TodoResponse, error) {
	if items, loaded := t.Snapshot(); loaded {
		return items, nil
	}

	return t.Refetch(ctx)
}

// Refetch replaces the cache with the server's current list. On failure the
// cache is left as it was.
func (t *Todos) Refetch(ctx context.Context) ([]dto.TodoResponse, error) {
	items, err := t.api.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch todos")

		return nil, fmt.Errorf("failed to fetch todos: %w", err)
	}

	t.mu.Lock()
	t.items = items
	t.loaded = true
	t.mu.Unlock()

	return slices.Clone(items), nil
}

func (t *Todos) Create(ctx context.Context, title string) (dto.TodoResponse, error) {
	t.mu.Lock()
	if t.creating {
		t.mu.Unlock()

		return dto.TodoResponse{}, ErrCreateInFlight
	}

	t.creating = true
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.creating = false
		t.mu.Unlock()
	}()

	todo, err := t.api.Create(ctx, title)
	if err != nil {
		log.Error().Err(err).Msg("failed to create todo")

		return dto.TodoResponse{}, fmt.Errorf("failed to create todo: %w", err)
	}

	return todo, t.refetchAfterMutation(ctx)
}

func (t *Todos) Toggle(ctx context.Context, id string) error {
	if _, err := t.api.Toggle(ctx, id); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to toggle todo")

		return fmt.Errorf("failed to toggle todo: %w", err)
	}

	return t.refetchAfterMutation(ctx)
}

func (t *Todos) Delete(ctx context.Context, id string) error {
	if err := t.api.Delete(ctx, id); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete todo")

		return fmt.Errorf("failed to delete todo: %w", err)
	}

	return t.refetchAfterMutation(ctx)
}

func (t *Todos) refetchAfterMutation(ctx context.Context) error {
	if _, err := t.Refetch(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStale, err)
	}

	return nil
}
