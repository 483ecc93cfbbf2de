//go:build wireinject
// +build wireinject

package di

import (
	"tasklist/config"
	"tasklist/infras/otel"
	"tasklist/infras/postgres"
	"tasklist/infras/redis"
	todoHandler "tasklist/internal/handlers/todo"
	"tasklist/shared/cache"
	"tasklist/transport/http"
	"tasklist/transport/http/middleware"
	"tasklist/transport/http/router"

	todoRepository "tasklist/internal/domains/todo/repository"
	todoService "tasklist/internal/domains/todo/service"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.New,
)

var todoDomain = wire.NewSet(
	todoRepository.New,
	todoService.New,
)

var domains = wire.NewSet(
	todoDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	todoHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
