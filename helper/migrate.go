package helper

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"tasklist/config"
	"tasklist/infras/postgres"
	"tasklist/migrations"
	"tasklist/shared/constant"

	"github.com/golang-migrate/migrate/v4"
	migratePostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"
)

var errUnknownAction = errors.New("unknown migration action")

func getConnection(config *config.Config) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.Postgres, migrations.PostgresDir)
	if err != nil {
		return nil, fmt.Errorf("error opening embedded migrations: %w", err)
	}

	connectionString := postgres.DSN(config, url.Values{
		"x-migrations-table": []string{config.DB.MigrationTable},
	})

	mig, err := migrate.NewWithSourceInstance("iofs", source, connectionString)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

// withConnection builds a migrator on one connection borrowed from an already
// established pool. Closing the migrator returns the connection to the pool.
func withConnection(ctx context.Context, config *config.Config, db *postgres.Connection) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.Postgres, migrations.PostgresDir)
	if err != nil {
		return nil, fmt.Errorf("error opening embedded migrations: %w", err)
	}

	conn, err := db.DB.Conn(ctx)
	if err != nil {
		_ = source.Close()

		return nil, fmt.Errorf("error acquiring migration connection: %w", err)
	}

	driver, err := migratePostgres.WithConnection(ctx, conn, &migratePostgres.Config{
		MigrationsTable: config.DB.MigrationTable,
	})
	if err != nil {
		_ = conn.Close()
		_ = source.Close()

		return nil, fmt.Errorf("error creating migrate driver: %w", err)
	}

	mig, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		_ = driver.Close()
		_ = source.Close()

		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func Runner(config *config.Config, action string) error {
	mig, err := getConnection(config)
	if err != nil {
		return err
	}

	defer mig.Close()

	return run(mig, action)
}

func run(mig *migrate.Migrate, action string) error {
	switch action {
	case ActionUp:
		if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Info().Msg("Database migrations completed successfully")

		return nil
	case ActionDown:
		if err := mig.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Msg("Database migrations rolled back successfully")

		return nil
	case ActionStepUp:
		if err := mig.Steps(1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Info().Msg("Database migrations completed successfully")

		return nil
	case ActionDrop:
		if err := mig.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Msg("Database migrations rolled back successfully")

		return nil
	}

	return fmt.Errorf("%w: %s", errUnknownAction, action)
}

func Up(config *config.Config) error {
	return Runner(config, ActionUp)
}

func StepUp(config *config.Config) error {
	return Runner(config, ActionStepUp)
}

func Down(config *config.Config) error {
	return Runner(config, ActionDown)
}

func Drop(config *config.Config) error {
	return Runner(config, ActionDrop)
}

// AutoMigrate applies pending migrations when DB_AUTO_MIGRATE is set. It runs
// over db, so the first contact with the database has already gone through
// the connect-retry loop in postgres.New.
func AutoMigrate(ctx context.Context, config *config.Config, db *postgres.Connection) error {
	if !config.DB.AutoMigrate {
		log.Info().Msg("Schema auto-migration disabled")

		return nil
	}

	if config.Server.Env == constant.ServerEnvProduction {
		log.Warn().Msg("Schema auto-migration is enabled in production")
	}

	mig, err := withConnection(ctx, config, db)
	if err != nil {
		return err
	}

	defer mig.Close()

	return run(mig, ActionUp)
}
