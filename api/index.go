package handler

import (
	"net/http"
	"sync"

	"todoapp/config"
	"todoapp/di"
	"todoapp/shared/logger"
	thttp "todoapp/transport/http"
)

var (
	service *thttp.HTTP
	once    sync.Once
)

// Handler serves every request through one application instance per process.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		service = di.InitializeService()
	})

	service.ServeHTTP(w, r)
}
