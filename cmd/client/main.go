package main

import (
	"os"
	"tasklist/config"
	"tasklist/internal/client/api"
	"tasklist/internal/client/store"
	"tasklist/internal/client/tui"
	"tasklist/shared/logger"
	"time"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	closer, err := logger.InitFileLogger(cfg.Client.LogFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open client log file")
	}
	defer closer.Close()

	logger.SetLogLevel(cfg)

	log.Info().Str("apiURL", cfg.Client.APIURL).Msg("Starting todo client")

	todos := store.New(api.New(cfg))

	if err := tui.Run(todos, time.Duration(cfg.Client.TimeoutSeconds)*time.Second); err != nil {
		log.Error().Err(err).Msg("Client exited with error")
		closer.Close()
		os.Exit(1)
	}
}
