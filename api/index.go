package handler

import (
	"net/http"
	"sync"
	"tasklist/config"
	"tasklist/di"
	"tasklist/shared/logger"
	"tasklist/shared/timezone"
	transport "tasklist/transport/http"
)

var (
	once   sync.Once
	server *transport.HTTP
)

// Handler is the serverless entry point. The dependency graph is built on the
// first request and reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		timezone.Init(cfg.App.Timezone)

		server = di.InitializeService()
	})

	server.ServeHTTP(w, r)
}
