package helper_test

import (
	"context"
	"errors"
	"tasklist/config"
	"tasklist/helper"
	"tasklist/infras/postgres"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoMigrate_Disabled(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.AutoMigrate = false

	assert.NoError(t, helper.AutoMigrate(context.Background(), cfg, nil))
}

func TestAutoMigrate_UsesEstablishedConnection(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { _ = mockDB.Close() })

	// Nothing listens on this address, so any attempt to dial from the config
	// instead of using the pool would fail with connection refused.
	cfg := &config.Config{}
	cfg.DB.AutoMigrate = true
	cfg.DB.Host = "127.0.0.1"
	cfg.DB.Port = "1"
	cfg.DB.Name = "tasklist"
	cfg.DB.SSLMode = "disable"
	cfg.DB.MigrationTable = "schema_migrations"

	mock.ExpectQuery(`SELECT CURRENT_DATABASE\(\)`).WillReturnError(errors.New("pool connection used"))

	db := &postgres.Connection{DB: sqlx.NewDb(mockDB, "postgres")}

	err = helper.AutoMigrate(context.Background(), cfg, db)
	require.Error(t, err)
	assert.ErrorContains(t, err, "pool connection used")
	assert.NotContains(t, err.Error(), "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())

	require.NoError(t, db.Ping(context.Background()), "pool must stay open after a failed migration")
}
