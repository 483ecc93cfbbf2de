package dto

import (
	"strings"
	"tasklist/internal/domains/todo/model"
	"tasklist/shared/constant"
	"tasklist/shared/timezone"
)

type CreateTodoRequest struct {
	Title string `json:"title" validate:"required,notblank,max=255"`
}

// Normalize trims surrounding whitespace from the title.
func (c *CreateTodoRequest) Normalize() {
	c.Title = strings.TrimSpace(c.Title)
}

func (c *CreateTodoRequest) ToModel() model.Todo {
	return model.Todo{
		Title:     c.Title,
		Completed: false,
	}
}

type TodoResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"`
}

func (r *TodoResponse) FromModel(model model.Todo) {
	r.ID = model.ID
	r.Title = model.Title
	r.Completed = model.Completed
	r.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
}

// FromModels maps rows to responses, keeping their order. The result is never nil.
func FromModels(models []model.Todo) []TodoResponse {
	res := make([]TodoResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
