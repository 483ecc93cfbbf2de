package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"tasklist/infras/otel"
	"tasklist/infras/postgres"
	"tasklist/internal/domains/todo/model"
	"tasklist/shared"
	gDto "tasklist/shared/dto"
	gRepo "tasklist/shared/repository"
)

type Todo interface {
	Insert(ctx context.Context, todo model.Todo) (model.Todo, error)
	FindByID(ctx context.Context, id string) (model.Todo, error)
	FindAll(ctx context.Context) ([]model.Todo, error)
	SetCompleted(ctx context.Context, id string, completed bool) (model.Todo, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Todo]
}

func New(db *postgres.Connection, otel otel.Otel) Todo {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Todo](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// FindByID returns the zero Todo when no row has the given id.
func (r *repositoryImpl) FindByID(ctx context.Context, id string) (model.Todo, error) {
	return r.Get(ctx, byID(id)) //nolint:wrapcheck
}

// FindAll returns every todo, newest first.
func (r *repositoryImpl) FindAll(ctx context.Context) ([]model.Todo, error) {
	return r.GetAll(ctx, gDto.Sort{Field: model.FieldCreatedAt, Direction: gDto.SortDirDesc}, gDto.FilterGroup{}) //nolint:wrapcheck
}

// SetCompleted returns the zero Todo when no row has the given id.
func (r *repositoryImpl) SetCompleted(ctx context.Context, id string, completed bool) (model.Todo, error) {
	return r.Update(ctx, map[string]any{model.FieldCompleted: completed}, byID(id)) //nolint:wrapcheck
}

func (r *repositoryImpl) Delete(ctx context.Context, id string) (int64, error) {
	return r.Repository.Delete(ctx, byID(id)) //nolint:wrapcheck
}

func byID(id string) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}
