package postgres

//nolint:revive
import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"tasklist/config"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
)

type Connection struct {
	DB *sqlx.DB
}

func New(config *config.Config) *Connection {
	db := CreatePostgresConnection(DSN(config, nil), config.DB.Host, config.DB.Port, config.DB.Name, config.DB.MaxRetry, config.DB.RetryWaitTime)
	if db == nil {
		log.Fatal().Str("host", config.DB.Host).Str("dbName", config.DB.Name).Msg("Could not connect to database")
	}

	return &Connection{DB: db}
}

// Ping reports whether the database still answers.
func (c *Connection) Ping(ctx context.Context) error {
	if err := c.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

func (c *Connection) Close() error {
	if err := c.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}

// DSN builds a lib/pq connection URL. A host beginning with "/" is a unix
// socket directory and is passed through the host query parameter.
func DSN(config *config.Config, extra url.Values) string {
	query := url.Values{}
	query.Set("sslmode", config.DB.SSLMode)

	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(config.DB.Username, config.DB.Password),
		Path:   "/" + config.DB.Name,
	}

	if strings.HasPrefix(config.DB.Host, "/") {
		query.Set("host", config.DB.Host)
	} else {
		dsn.Host = net.JoinHostPort(config.DB.Host, config.DB.Port)
	}

	for key, values := range extra {
		for _, value := range values {
			query.Add(key, value)
		}
	}

	dsn.RawQuery = query.Encode()

	return dsn.String()
}

// CreatePostgresConnection creates a database connection, retrying up to maxRetry times.
func CreatePostgresConnection(descriptor, host, port, dbName string, maxRetry, waitTime int) *sqlx.DB {
	for retry := range maxRetry {
		sqlDB, err := sqlx.Connect("postgres", descriptor)
		if err == nil {
			log.
				Info().
				Str("host", host).
				Str("port", port).
				Str("dbName", dbName).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)

			return sqlDB
		}

		log.
			Error().
			Err(err).
			Str("host", host).
			Str("port", port).
			Str("dbName", dbName).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	return nil
}
