package repository

import (
	"context"
	"tasklist/infras/otel/mocks"
	"tasklist/infras/postgres"
	"tasklist/shared/dto"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type embedded struct {
	CreatedAt time.Time `db:"created_at" generated:"true"`
}

type record struct {
	ID      string `db:"id"    generated:"true"`
	Title   string `db:"title"`
	Ignored string
	Skipped string `db:"-"`
	embedded
}

func TestGetColumns(t *testing.T) {
	repo := NewRepository[record]("record", "records", "id", nil, mocks.NewOtel())

	assert.Equal(t, []string{"id", "title", "created_at"}, repo.columns)
	assert.Equal(t, []string{"title"}, repo.InsertColumns)
	assert.Equal(t, "records.id, records.title, records.created_at", repo.getSelectQuery())
}

func TestBuildWhereClause(t *testing.T) {
	repo := NewRepository[record]("record", "records", "id", nil, mocks.NewOtel())

	where, args := repo.BuildWhereClause(dto.FilterGroup{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = repo.BuildWhereClause(dto.FilterGroup{Filters: []any{
		dto.Filter{Field: "id", Value: "abc", Operator: dto.FilterOperatorEq, Table: "records"},
	}})
	assert.Equal(t, " WHERE (records.id = :id) ", where)
	assert.Equal(t, map[string]any{"id": "abc"}, args)
}

func TestMutationsRequireFilter(t *testing.T) {
	repo := NewRepository[record]("record", "records", "id", nil, mocks.NewOtel())
	ctx := context.Background()

	_, err := repo.Get(ctx, dto.FilterGroup{})
	assert.ErrorIs(t, err, errRequiredFilter)

	_, err = repo.Update(ctx, map[string]any{"title": "x"}, dto.FilterGroup{})
	assert.ErrorIs(t, err, errRequiredFilter)

	_, err = repo.Update(ctx, map[string]any{}, dto.FilterGroup{})
	assert.ErrorIs(t, err, errEmptyUpdate)

	_, err = repo.Delete(ctx, dto.FilterGroup{})
	assert.ErrorIs(t, err, errRequiredFilter)
}

func TestUpdate_SetsColumnsInSortedOrder(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	defer db.Close()

	conn := &postgres.Connection{DB: sqlx.NewDb(db, "postgres")}
	repo := NewRepository[record]("record", "records", "id", conn, mocks.NewOtel())
	createdAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectPrepare("UPDATE records SET created_at = $1, title = $2 WHERE (records.id = $3) RETURNING records.id, records.title, records.created_at").
		ExpectQuery().
		WithArgs(createdAt, "renamed", "abc").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "created_at"}).AddRow("abc", "renamed", createdAt))

	res, err := repo.Update(context.Background(), map[string]any{"title": "renamed", "created_at": createdAt}, dto.FilterGroup{Filters: []any{
		dto.Filter{Field: "id", Value: "abc", Operator: dto.FilterOperatorEq, Table: "records"},
	}})
	require.NoError(t, err)

	assert.Equal(t, "abc", res.ID)
	assert.Equal(t, "renamed", res.Title)
	assert.Equal(t, createdAt, res.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
