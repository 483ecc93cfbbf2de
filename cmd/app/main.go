package main

import (
	"context"
	"tasklist/config"
	"tasklist/di"
	"tasklist/helper"
	"tasklist/shared/logger"
	"tasklist/shared/timezone"

	"github.com/rs/zerolog/log"
)

// @title Tasklist API
// @version 1.0
// @description Create, list, toggle and delete todo items.
// @BasePath /
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	timezone.Init(cfg.App.Timezone)

	http := di.InitializeService()

	if err := helper.AutoMigrate(context.Background(), cfg, http.DB); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database schema")
	}

	http.Serve()
}
