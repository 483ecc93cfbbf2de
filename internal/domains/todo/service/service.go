package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"tasklist/config"
	"tasklist/infras/otel"
	"tasklist/internal/domains/todo/model"
	"tasklist/internal/domains/todo/model/dto"
	"tasklist/internal/domains/todo/repository"
	"tasklist/shared"
	"tasklist/shared/cache"
	"tasklist/shared/constant"
	"tasklist/shared/failure"
	"tasklist/shared/validator"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheTodo     = "todos"
	cacheTodoList = "list"

	msgTodoNotFound = "todo not found"
)

type Todo interface {
	List(ctx context.Context) ([]dto.TodoResponse, error)
	Create(ctx context.Context, req dto.CreateTodoRequest) (dto.TodoResponse, error)
	ToggleComplete(ctx context.Context, id string) (dto.TodoResponse, error)
	Remove(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Todo
	cfg   *config.Config
	cache cache.Cache
	otel  otel.Otel
}

func New(repo repository.Todo, cfg *config.Config, cache cache.Cache, otel otel.Otel) Todo {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// List returns every todo, newest first.
func (s *serviceImpl) List(ctx context.Context) (res []dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := listCacheKey()

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil && res != nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for todos")

		return res, nil
	}

	if err != nil && !errors.Is(err, cache.Nil) {
		log.Warn().Err(err).Str("cacheKey", cacheKey).Msg("failed to read todos from cache")
	}

	todos, err := s.repo.FindAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get todos")

		return nil, fmt.Errorf("failed to get todos: %w", err)
	}

	res = dto.FromModels(todos)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Warn().Err(err).Str("cacheKey", cacheKey).Msg("failed to save todos to cache")
	}

	return res, nil
}

// Create stores a new, incomplete todo with a trimmed title.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTodoRequest) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Normalize()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	todo, err := s.repo.Insert(ctx, req.ToModel())
	if err != nil {
		log.Error().Err(err).Msg("failed to create todo")

		return res, fmt.Errorf("failed to create todo: %w", err)
	}

	s.invalidateList(ctx)

	res.FromModel(todo)

	return res, nil
}

// ToggleComplete flips the completed flag of the todo with the given id.
func (s *serviceImpl) ToggleComplete(ctx context.Context, id string) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ToggleComplete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(model.FieldID, id)

	if !isValidID(id) {
		return res, failure.NotFound(msgTodoNotFound) //nolint:wrapcheck
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get todo")

		return res, fmt.Errorf("failed to get todo: %w", err)
	}

	if current.ID == "" {
		return res, failure.NotFound(msgTodoNotFound) //nolint:wrapcheck
	}

	// Last write wins if two toggles race between the read and the update.
	updated, err := s.repo.SetCompleted(ctx, id, !current.Completed)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update todo")

		return res, fmt.Errorf("failed to update todo: %w", err)
	}

	if updated.ID == "" {
		return res, failure.NotFound(msgTodoNotFound) //nolint:wrapcheck
	}

	s.invalidateList(ctx)

	res.FromModel(updated)

	return res, nil
}

// Remove deletes the todo with the given id.
func (s *serviceImpl) Remove(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Remove")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(model.FieldID, id)

	if !isValidID(id) {
		return failure.NotFound(msgTodoNotFound) //nolint:wrapcheck
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete todo")

		return fmt.Errorf("failed to delete todo: %w", err)
	}

	if affected == 0 {
		return failure.NotFound(msgTodoNotFound) //nolint:wrapcheck
	}

	s.invalidateList(ctx)

	return nil
}

// invalidateList runs before the mutation returns so the next List never
// serves a list older than the write.
func (s *serviceImpl) invalidateList(ctx context.Context) {
	cacheKey := listCacheKey()

	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		log.Warn().Err(err).Str("cacheKey", cacheKey).Msg("failed to invalidate todos cache")
	}
}

func listCacheKey() string {
	return shared.BuildCacheKey(cacheTodo, cacheTodoList)
}

func isValidID(id string) bool {
	_, err := uuid.Parse(id)

	return err == nil
}
