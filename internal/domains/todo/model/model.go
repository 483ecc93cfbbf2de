package model

import "time"

const (
	TableName  = "todos"
	EntityName = "todo"

	FieldID        = "id"
	FieldTitle     = "title"
	FieldCompleted = "completed"
	FieldCreatedAt = "created_at"
)

// Todo is one row of the todos table. ID and CreatedAt are assigned by the
// database on insert.
type Todo struct {
	ID        string    `db:"id"         generated:"true"`
	Title     string    `db:"title"`
	Completed bool      `db:"completed"`
	CreatedAt time.Time `db:"created_at" generated:"true"`
}
